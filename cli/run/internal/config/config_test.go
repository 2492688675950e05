package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Package != "json5" {
		t.Fatalf("package = %q", cfg.Package)
	}
	if cfg.Parser != "json5/parser.py" || cfg.Grammar != "json5/json5.g" {
		t.Fatalf("unexpected parser/grammar: %q %q", cfg.Parser, cfg.Grammar)
	}
	if cfg.TestPattern != "*_test.py" {
		t.Fatalf("test pattern = %q", cfg.TestPattern)
	}
}

func TestLoadOverlay(t *testing.T) {
	root := t.TempDir()
	overlay := "package: widget\ndist_dir: out\n"
	if err := os.WriteFile(filepath.Join(root, "run.yaml"), []byte(overlay), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Package != "widget" || cfg.DistDir != "out" {
		t.Fatalf("overlay not applied: %+v", cfg)
	}
	// untouched fields keep their defaults
	if cfg.Parser != "json5/parser.py" {
		t.Fatalf("parser = %q", cfg.Parser)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "run.yaml"), []byte("package: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(root); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestVersion(t *testing.T) {
	root := t.TempDir()
	cfg, _ := Load(root)
	path := filepath.Join(root, cfg.VersionFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("__version__ = '1.2.3'\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	v, err := cfg.Version(root)
	if err != nil {
		t.Fatal(err)
	}
	if v != "1.2.3" {
		t.Fatalf("version = %q", v)
	}
}

func TestVersionMissingAssignment(t *testing.T) {
	root := t.TempDir()
	cfg, _ := Load(root)
	path := filepath.Join(root, cfg.VersionFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("# no version here\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.Version(root); err == nil {
		t.Fatal("expected error for missing __version__")
	}
}

func TestArtifactPathsEmbedVersion(t *testing.T) {
	cfg, _ := Load(t.TempDir())
	sdist := cfg.SdistPath("/r", "0.9.1")
	wheel := cfg.WheelPath("/r", "0.9.1")
	if sdist != filepath.Join("/r", "dist", "json5-0.9.1.tar.gz") {
		t.Fatalf("sdist = %q", sdist)
	}
	if wheel != filepath.Join("/r", "dist", "json5-0.9.1-py3-none-any.whl") {
		t.Fatalf("wheel = %q", wheel)
	}
}
