// Package presubmitcmd implements the composite workflow that runs every
// check a commit must pass, strictly in order, stopping at the first
// failure.
package presubmitcmd

import (
	"fmt"

	"github.com/dpranke-dev/pyjson5/cli/run/internal/cmdregistry"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/commands/checkcmd"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/commands/regencmd"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/commands/testcmd"
)

// Register adds the presubmit command and its check/checks aliases.
func Register(r *cmdregistry.Registry) {
	for _, name := range []string{"presubmit", "check", "checks"} {
		r.Register(&cmdregistry.Spec{
			Name:        name,
			Description: "run every presubmit step in order, stopping at the first failure",
			Run:         handle,
		})
	}
}

type step struct {
	name string
	fn   func(*cmdregistry.Context) error
}

// steps is the fixed order. Mutating sub-steps run with their check-only
// flag forced so presubmit never rewrites the tree.
func steps() []step {
	return []step{
		{"regen --check", func(ctx *cmdregistry.Context) error { return regencmd.Regen(ctx, true) }},
		{"format --check", func(ctx *cmdregistry.Context) error { return checkcmd.Format(ctx, true) }},
		{"lint", checkcmd.Lint},
		{"pylint", checkcmd.Pylint},
		{"mypy", checkcmd.Mypy},
		{"coverage", testcmd.Coverage},
	}
}

func handle(ctx *cmdregistry.Context) error {
	for _, s := range steps() {
		if !ctx.Exec.Quiet {
			fmt.Fprintf(ctx.Stdout, "== %s ==\n", s.name)
		}
		if err := s.fn(ctx); err != nil {
			return err
		}
	}
	fmt.Fprintln(ctx.Stdout, "presubmit passed")
	return nil
}
