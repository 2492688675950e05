package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindRootEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PYJSON5_ROOT", dir)
	root, err := FindRoot()
	if err != nil {
		t.Fatal(err)
	}
	if root != filepath.Clean(dir) {
		t.Fatalf("root = %q, want %q", root, dir)
	}
}

func TestFindRootWalksUpToMarker(t *testing.T) {
	t.Setenv("PYJSON5_ROOT", "")
	top := t.TempDir()
	if err := os.WriteFile(filepath.Join(top, "pyproject.toml"), []byte("[project]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(top, "json5", "sub")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	restore := chdir(t, nested)
	defer restore()

	root, err := FindRoot()
	if err != nil {
		t.Fatal(err)
	}
	// Resolve symlinks: on some systems TempDir is behind one.
	wantReal, _ := filepath.EvalSymlinks(top)
	gotReal, _ := filepath.EvalSymlinks(root)
	if gotReal != wantReal {
		t.Fatalf("root = %q, want %q", gotReal, wantReal)
	}
}

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	return func() { _ = os.Chdir(prev) }
}
