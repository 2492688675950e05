// Package paths locates the project root the tool operates on.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// markers identify a project root when walking up from the working
// directory. run.yaml wins so a nested checkout can pin its own root.
var markers = []string{"run.yaml", "pyproject.toml"}

// FindRoot returns the project root: PYJSON5_ROOT when set, otherwise the
// nearest ancestor of the working directory containing a marker file,
// otherwise the working directory itself.
func FindRoot() (string, error) {
	if v := strings.TrimSpace(os.Getenv("PYJSON5_ROOT")); v != "" {
		return filepath.Clean(v), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	dir := cwd
	for {
		for _, m := range markers {
			if st, err := os.Stat(filepath.Join(dir, m)); err == nil && !st.IsDir() {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}
