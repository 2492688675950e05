// Package testcmd implements the tests and coverage recipes.
package testcmd

import (
	"github.com/dpranke-dev/pyjson5/cli/run/internal/cmdregistry"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/runner"
)

// Register adds the tests and coverage commands.
func Register(r *cmdregistry.Registry) {
	r.Register(&cmdregistry.Spec{
		Name:        "tests",
		Description: "discover and run the unit tests",
		Run:         Tests,
	})
	r.Register(&cmdregistry.Spec{
		Name:        "coverage",
		Description: "run the tests under coverage and print a report",
		Run:         Coverage,
	})
}

// Tests discovers and runs all test files matching the configured pattern.
func Tests(ctx *cmdregistry.Context) error {
	return runner.Tool(ctx.Exec, "-m", "unittest", "discover", "-p", ctx.Cfg.TestPattern)
}

// Coverage runs the test suite under coverage, then emits a report. The
// report only runs when the test run succeeds.
func Coverage(ctx *cmdregistry.Context) error {
	if err := runner.Tool(ctx.Exec, "-m", "coverage", "run", "-m",
		"unittest", "discover", "-p", ctx.Cfg.TestPattern); err != nil {
		return err
	}
	return runner.Tool(ctx.Exec, "-m", "coverage", "report", "--show-missing")
}
