// Package buildcmd implements the build, clean, and devenv recipes.
package buildcmd

import (
	"github.com/dpranke-dev/pyjson5/cli/run/internal/cmdregistry"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/runner"
)

// Register adds the build, clean, and devenv commands.
func Register(r *cmdregistry.Registry) {
	r.Register(&cmdregistry.Spec{
		Name:        "build",
		Description: "build the sdist and wheel into the dist directory",
		Run:         Build,
	})
	r.Register(&cmdregistry.Spec{
		Name:        "clean",
		Description: "remove all untracked and ignored files (git clean -fxd)",
		Run:         Clean,
	})
	r.Register(&cmdregistry.Spec{
		Name:        "devenv",
		Description: "create or refresh the development environment with uv",
		Run:         Devenv,
	})
}

// Build invokes the packaging tool once; packaging failures fail the run.
func Build(ctx *cmdregistry.Context) error {
	return runner.Tool(ctx.Exec, "-m", "build")
}

// Clean removes every untracked and ignored file. Destructive and
// irreversible; under dry-run the command is only echoed.
func Clean(ctx *cmdregistry.Context) error {
	return runner.Host(ctx.Exec, "git", "clean", "-fxd")
}

// Devenv syncs the project environment with uv, invoked directly rather
// than through the interpreter prefix.
func Devenv(ctx *cmdregistry.Context) error {
	args := []string{"sync"}
	if ctx.Exec.Quiet {
		args = append(args, "-q")
	}
	return runner.Host(ctx.Exec, "uv", args...)
}
