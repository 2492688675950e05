package runner

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/dpranke-dev/pyjson5/cli/run/internal/execx"
)

func TestDryRunEchoesWithoutSpawning(t *testing.T) {
	var echo bytes.Buffer
	o := Opts{DryRun: true, Prefix: []string{"uv", "run", "python"}, Echo: &echo}
	// The binary does not exist; a real spawn would fail.
	if err := Tool(o, "-m", "definitely-not-a-module"); err != nil {
		t.Fatalf("dry run returned error: %v", err)
	}
	want := "+ uv run python -m definitely-not-a-module\n"
	if echo.String() != want {
		t.Fatalf("echo = %q, want %q", echo.String(), want)
	}
}

func TestVerboseEchoesBeforeRunning(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not on PATH")
	}
	var echo bytes.Buffer
	o := Opts{Verbose: true, Echo: &echo}
	if err := Host(o, "true"); err != nil {
		t.Fatalf("true failed: %v", err)
	}
	if !strings.HasPrefix(echo.String(), "+ true") {
		t.Fatalf("missing verbose echo, got %q", echo.String())
	}
}

func TestFailurePropagatesChildExitCode(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not on PATH")
	}
	err := Host(Opts{}, "sh", "-c", "exit 3")
	var ee *execx.ExitError
	if !errors.As(err, &ee) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if ee.Code != 3 {
		t.Fatalf("code = %d, want 3", ee.Code)
	}
}

func TestToolPrependsPrefix(t *testing.T) {
	var echo bytes.Buffer
	o := Opts{DryRun: true, Prefix: []string{"python"}, Echo: &echo}
	if err := Tool(o, "-m", "flake8", "json5"); err != nil {
		t.Fatal(err)
	}
	if got := echo.String(); got != "+ python -m flake8 json5\n" {
		t.Fatalf("unexpected argv echo %q", got)
	}
}
