// Package pyenv resolves, once per run, how tool invocations reach a
// Python interpreter: directly when an isolated environment is already
// active, or wrapped through uv's run indirection otherwise.
package pyenv

import (
	"os"
	"os/exec"

	"github.com/dpranke-dev/pyjson5/cli/run/internal/execx"
)

// ActiveEnvMarker is set by an activated virtualenv; when present the
// interpreter is invoked directly instead of through uv.
const ActiveEnvMarker = "VIRTUAL_ENV"

const envManager = "uv"

// Resolve returns the argv prefix every tool invocation is wrapped in.
// It fails with exit code 2 when uv is required but not on the search
// path; this is a precondition check, not a retryable condition.
func Resolve(quiet bool) ([]string, error) {
	if os.Getenv(ActiveEnvMarker) != "" {
		return []string{"python"}, nil
	}
	if _, err := exec.LookPath(envManager); err != nil {
		return nil, &execx.ExitError{
			Code: 2,
			Msg:  "uv not found on PATH; install it from https://docs.astral.sh/uv/ or activate a virtualenv",
		}
	}
	prefix := []string{envManager, "run"}
	if quiet {
		prefix = append(prefix, "-q")
	}
	return append(prefix, "python"), nil
}
