package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FromFile {
		t.Error("FromFile should be false for defaults")
	}
	if len(cfg.Jobs) == 0 {
		t.Fatal("default jobs missing")
	}
	if cfg.Trigger.Manual == nil || !*cfg.Trigger.Manual {
		t.Error("manual dispatch should default to enabled")
	}
	if cfg.Tools.Package != "transform_myd_minimal" {
		t.Errorf("default package = %q", cfg.Tools.Package)
	}
}

func TestLoadManifest(t *testing.T) {
	manifest := `
trigger:
  push:
    branches: ["^main$"]
  merge_request:
    branches: ["^main$", "^develop$"]
jobs:
  - name: lint
    kind: lint
  - name: test
    kind: test
    matrix:
      python: ["3.11", "3.12"]
  - name: smoke
    command: ["./smoke.sh", "--fast"]
    advisory: true
tools:
  source_dirs: ["lib"]
  package: mypkg
workers: 4
`
	path := filepath.Join(t.TempDir(), ".pipewright.yml")
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.FromFile {
		t.Error("FromFile should be true")
	}
	if len(cfg.Jobs) != 3 {
		t.Fatalf("got %d jobs, want 3", len(cfg.Jobs))
	}
	if got := cfg.Jobs[1].Matrix.Python; len(got) != 2 || got[0] != "3.11" {
		t.Errorf("test matrix = %v", got)
	}
	if cfg.Jobs[2].Advisory == nil || !*cfg.Jobs[2].Advisory {
		t.Error("smoke job should be advisory")
	}
	if cfg.Workers != 4 {
		t.Errorf("workers = %d", cfg.Workers)
	}
	// Defaults still fill unset tool fields.
	if cfg.Tools.TestsDir != "tests" {
		t.Errorf("tests_dir = %q", cfg.Tools.TestsDir)
	}
	if got := cfg.Tools.TypecheckDirs; len(got) != 1 || got[0] != "lib" {
		t.Errorf("typecheck_dirs = %v, want first source dir", got)
	}
	// Manual unset in manifest defaults to enabled.
	if cfg.Trigger.Manual == nil || !*cfg.Trigger.Manual {
		t.Error("manual should default to enabled")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pipewright.yml")
	if err := os.WriteFile(path, []byte("jobs: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
