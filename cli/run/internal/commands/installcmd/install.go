// Package installcmd implements the install recipe.
package installcmd

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dpranke-dev/pyjson5/cli/run/internal/cmdregistry"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/execx"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/runner"
)

// Register adds the install command.
func Register(r *cmdregistry.Registry) {
	r.Register(&cmdregistry.Spec{
		Name:        "install",
		Description: "install the package, either editable or from the built wheel",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("install", pflag.ContinueOnError)
			fs.Bool("editable", false, "install the local source tree in-place")
			fs.Bool("system", false, "install into the system interpreter instead of the project environment")
			return fs
		},
		Run: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	editable, _ := ctx.Flags.GetBool("editable")
	system, _ := ctx.Flags.GetBool("system")

	opts := ctx.Exec
	if system {
		opts.Prefix = []string{"python3"}
	}
	if editable {
		return runner.Tool(opts, "-m", "pip", "install", "-e", ctx.Root)
	}

	version, err := ctx.Cfg.Version(ctx.Root)
	if err != nil {
		return err
	}
	wheel := ctx.Cfg.WheelPath(ctx.Root, version)
	if !opts.DryRun {
		if _, err := os.Stat(wheel); err != nil {
			return &execx.ExitError{
				Code: 1,
				Msg:  fmt.Sprintf("%s not found; run `run build` first", wheel),
			}
		}
	}
	return runner.Tool(opts, "-m", "pip", "install", wheel)
}
