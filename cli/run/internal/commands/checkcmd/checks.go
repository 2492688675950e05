// Package checkcmd implements the static-analysis recipes: lint, format,
// mypy, and pylint. Each is a fixed sequence of tool invocations over the
// configured source directories.
package checkcmd

import (
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/dpranke-dev/pyjson5/cli/run/internal/cmdregistry"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/runner"
)

// Register adds the lint, format, mypy, and pylint commands.
func Register(r *cmdregistry.Registry) {
	r.Register(&cmdregistry.Spec{
		Name:        "lint",
		Description: "run flake8 over the source directories",
		Run:         Lint,
	})
	r.Register(&cmdregistry.Spec{
		Name:        "format",
		Description: "reformat the source files with yapf",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("format", pflag.ContinueOnError)
			fs.Bool("check", false, "report files that would change without rewriting them")
			return fs
		},
		Run: func(ctx *cmdregistry.Context) error {
			check, _ := ctx.Flags.GetBool("check")
			return Format(ctx, check)
		},
	})
	r.Register(&cmdregistry.Spec{
		Name:        "mypy",
		Description: "typecheck the package with mypy",
		Run:         Mypy,
	})
	r.Register(&cmdregistry.Spec{
		Name:        "pylint",
		Description: "run pylint over the package",
		Run:         Pylint,
	})
}

func sourceDirs(ctx *cmdregistry.Context) []string {
	dirs := make([]string, 0, len(ctx.Cfg.Sources))
	for _, s := range ctx.Cfg.Sources {
		dirs = append(dirs, filepath.Join(ctx.Root, s))
	}
	return dirs
}

// Lint runs flake8 over the configured source directories.
func Lint(ctx *cmdregistry.Context) error {
	return runner.Tool(ctx.Exec, append([]string{"-m", "flake8"}, sourceDirs(ctx)...)...)
}

// Format runs yapf. In check mode it asks yapf for a diff, which exits
// nonzero when anything would change and never rewrites a file.
func Format(ctx *cmdregistry.Context, check bool) error {
	mode := "--in-place"
	if check {
		mode = "--diff"
	}
	args := append([]string{"-m", "yapf", mode, "--recursive"}, sourceDirs(ctx)...)
	return runner.Tool(ctx.Exec, args...)
}

// Mypy typechecks the package.
func Mypy(ctx *cmdregistry.Context) error {
	return runner.Tool(ctx.Exec, "-m", "mypy", filepath.Join(ctx.Root, ctx.Cfg.Package))
}

// Pylint runs pylint over the package.
func Pylint(ctx *cmdregistry.Context) error {
	return runner.Tool(ctx.Exec, "-m", "pylint", filepath.Join(ctx.Root, ctx.Cfg.Package))
}
