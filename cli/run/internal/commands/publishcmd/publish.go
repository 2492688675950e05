// Package publishcmd implements the publish recipe.
package publishcmd

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dpranke-dev/pyjson5/cli/run/internal/cmdregistry"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/execx"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/runner"
)

// Register adds the publish command.
func Register(r *cmdregistry.Registry) {
	r.Register(&cmdregistry.Spec{
		Name:        "publish",
		Description: "upload the built distributions with twine",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("publish", pflag.ContinueOnError)
			fs.Bool("test", false, "upload to the test package index")
			fs.Bool("prod", false, "upload to the production package index")
			return fs
		},
		Run: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	test, _ := ctx.Flags.GetBool("test")
	prod, _ := ctx.Flags.GetBool("prod")
	if test == prod {
		return &execx.ExitError{
			Code: 2,
			Msg:  "publish: exactly one of --test or --prod is required",
		}
	}

	version, err := ctx.Cfg.Version(ctx.Root)
	if err != nil {
		return err
	}
	sdist := ctx.Cfg.SdistPath(ctx.Root, version)
	wheel := ctx.Cfg.WheelPath(ctx.Root, version)
	if !ctx.Exec.DryRun {
		if missing(sdist) || missing(wheel) {
			// Not an error: tell the user what to do and stop.
			fmt.Fprintf(ctx.Stdout, "distribution artifacts for %s are missing; run `run build` first\n", version)
			return nil
		}
	}

	args := []string{"-m", "twine", "upload"}
	if test {
		args = append(args, "--repository", "testpypi")
	}
	return runner.Tool(ctx.Exec, append(args, sdist, wheel)...)
}

func missing(path string) bool {
	_, err := os.Stat(path)
	return err != nil
}
