package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config describes the project the tool orchestrates. All paths are
// relative to the project root. Defaults match the pyjson5 layout; an
// optional run.yaml at the root overrides individual fields.
type Config struct {
	// Package is the importable package name; it is also what pylint and
	// mypy are pointed at.
	Package string `yaml:"package"`
	// Sources are the directories lint and format sweep over.
	Sources []string `yaml:"sources"`
	// Grammar is the source grammar the parser is generated from.
	Grammar string `yaml:"grammar"`
	// Parser is the checked-in derived artifact.
	Parser string `yaml:"parser"`
	// Compiler is the grammar compiler's expected location, relative to
	// the project root (the glop checkout is a sibling of this repo).
	Compiler string `yaml:"compiler"`
	// DistDir holds packaging output; artifact names embed the version.
	DistDir string `yaml:"dist_dir"`
	// VersionFile is the Python source that defines __version__.
	VersionFile string `yaml:"version_file"`
	// TestPattern is the unittest discovery pattern.
	TestPattern string `yaml:"test_pattern"`
}

const fileName = "run.yaml"

func defaults() Config {
	return Config{
		Package:     "json5",
		Sources:     []string{"json5", "tests"},
		Grammar:     "json5/json5.g",
		Parser:      "json5/parser.py",
		Compiler:    "../glop/glop",
		DistDir:     "dist",
		VersionFile: "json5/version.py",
		TestPattern: "*_test.py",
	}
}

// Load returns the defaults overlaid with root/run.yaml when it exists.
func Load(root string) (Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(filepath.Join(root, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", fileName, err)
	}
	return cfg, nil
}

var versionPattern = regexp.MustCompile(`__version__\s*=\s*['"]([^'"]+)['"]`)

// Version reads the package version string out of the version file.
func (c Config) Version(root string) (string, error) {
	path := filepath.Join(root, c.VersionFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	m := versionPattern.FindSubmatch(data)
	if m == nil {
		return "", fmt.Errorf("no __version__ assignment in %s", path)
	}
	return string(m[1]), nil
}

// SdistPath returns the source distribution path for a version.
func (c Config) SdistPath(root, version string) string {
	return filepath.Join(root, c.DistDir, c.Package+"-"+version+".tar.gz")
}

// WheelPath returns the wheel path for a version.
func (c Config) WheelPath(root, version string) string {
	name := strings.ReplaceAll(c.Package, "-", "_")
	return filepath.Join(root, c.DistDir, name+"-"+version+"-py3-none-any.whl")
}
