package presubmitcmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dpranke-dev/pyjson5/cli/run/internal/cmdregistry"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/config"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/execx"
	"github.com/dpranke-dev/pyjson5/cli/run/internal/runner"
)

func newContext(t *testing.T, root string, dry bool) (*cmdregistry.Context, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cfg, err := config.Load(root)
	if err != nil {
		t.Fatal(err)
	}
	var echo, stdout bytes.Buffer
	return &cmdregistry.Context{
		Exec:   runner.Opts{DryRun: dry, Prefix: []string{"python"}, Echo: &echo},
		Cfg:    cfg,
		Root:   root,
		Stdout: &stdout,
		Stderr: &echo,
	}, &echo, &stdout
}

func TestStepsRunInFixedOrder(t *testing.T) {
	root := t.TempDir()
	ctx, echo, _ := newContext(t, root, true)
	if err := handle(ctx); err != nil {
		t.Fatal(err)
	}
	out := echo.String()
	order := []string{
		"glop",
		"yapf --in-place",
		"yapf --diff",
		"flake8",
		"pylint",
		"mypy",
		"coverage run",
		"coverage report",
	}
	last := -1
	for _, marker := range order {
		idx := strings.Index(out, marker)
		if idx < 0 {
			t.Fatalf("missing %q in echoed plan:\n%s", marker, out)
		}
		if idx < last {
			t.Fatalf("%q ran out of order:\n%s", marker, out)
		}
		last = idx
	}
}

func TestFirstFailureStopsTheSequence(t *testing.T) {
	// No glop checkout next to the temp root, so the regen check fails
	// before any other step may spawn a process.
	root := t.TempDir()
	ctx, echo, _ := newContext(t, root, false)
	err := handle(ctx)
	var ee *execx.ExitError
	if !errors.As(err, &ee) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if ee.Code != 2 {
		t.Fatalf("code = %d, want 2", ee.Code)
	}
	if echo.Len() != 0 {
		t.Fatalf("no later step may have executed: %q", echo.String())
	}
}

func TestCheckAliasesShareTheHandler(t *testing.T) {
	r := cmdregistry.New()
	Register(r)
	for _, name := range []string{"presubmit", "check", "checks"} {
		if _, ok := r.Lookup(name); !ok {
			t.Fatalf("%s not registered", name)
		}
	}
}
