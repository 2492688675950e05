package runner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dpranke-dev/pyjson5/cli/run/internal/execx"
)

// Opts is the process-wide execution state resolved once at startup and
// handed by reference into every command handler. Handlers never spawn a
// process except through this package.
type Opts struct {
	DryRun  bool
	Verbose bool
	Quiet   bool
	// Prefix is the interpreter/runner indirection every tool invocation is
	// wrapped in (e.g. ["python"] or ["uv", "run", "-q", "python"]).
	Prefix []string
	// Echo receives the "+ argv" lines printed in verbose and dry-run mode.
	// Defaults to os.Stderr.
	Echo io.Writer
}

func (o Opts) echoWriter() io.Writer {
	if o.Echo != nil {
		return o.Echo
	}
	return os.Stderr
}

// Tool runs a tool invocation through the resolved interpreter prefix.
// In dry-run mode the command is echoed and nothing is spawned.
func Tool(o Opts, args ...string) error {
	if len(o.Prefix) == 0 {
		return Host(o, args[0], args[1:]...)
	}
	return Host(o, o.Prefix[0], append(append([]string{}, o.Prefix[1:]...), args...)...)
}

// Host runs a host binary directly (git, uv), without the interpreter prefix.
func Host(o Opts, name string, args ...string) error {
	if o.DryRun || o.Verbose {
		fmt.Fprintln(o.echoWriter(), "+ "+strings.Join(append([]string{name}, args...), " "))
	}
	if o.DryRun {
		return nil
	}
	res := execx.Run(name, args...)
	if res.Code != 0 {
		return &execx.ExitError{
			Code: res.Code,
			Msg:  fmt.Sprintf("%s exited with code %d", name, res.Code),
		}
	}
	return nil
}
