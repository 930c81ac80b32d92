package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonwraymond/allgood/ratelimit"
)

// chdir changes the working directory for the test and restores it on
// cleanup, standing in for t.Chdir (Go 1.24+) on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "allgood.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
environment: production
cache_dir: /var/cache/allgood
default_timeout: 5s
checks:
  disk space:
    timeout: 2s
    run: 1 time per hour
  legacy import:
    disabled: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Environment != "production" {
		t.Errorf("Environment = %q", cfg.Environment)
	}
	if cfg.CacheDir != "/var/cache/allgood" {
		t.Errorf("CacheDir = %q", cfg.CacheDir)
	}
	if cfg.DefaultTimeout.Std() != 5*time.Second {
		t.Errorf("DefaultTimeout = %v, want 5s", cfg.DefaultTimeout.Std())
	}

	disk, ok := cfg.Checks["disk space"]
	if !ok {
		t.Fatal("missing 'disk space' check config")
	}
	if disk.Timeout.Std() != 2*time.Second {
		t.Errorf("disk timeout = %v, want 2s", disk.Timeout.Std())
	}
	if disk.Run != "1 time per hour" {
		t.Errorf("disk run = %q", disk.Run)
	}
	if !cfg.Checks["legacy import"].Disabled {
		t.Error("legacy import should be disabled")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() on missing file = nil error")
	}
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeConfig(t, "default_timeout: soon\n")
	if _, err := Load(path); err == nil {
		t.Error("Load() with bad duration = nil error")
	}
}

func TestLoad_BadInterval(t *testing.T) {
	path := writeConfig(t, `
checks:
  flaky:
    run: every so often
`)
	_, err := Load(path)
	if !errors.Is(err, ratelimit.ErrInvalidInterval) {
		t.Errorf("Load() error = %v, want ErrInvalidInterval", err)
	}
}

func TestLoad_NotYAML(t *testing.T) {
	path := writeConfig(t, "{{{{")
	if _, err := Load(path); err == nil {
		t.Error("Load() on malformed YAML = nil error")
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, ".allgood.yaml")
	if err := os.WriteFile(want, []byte("environment: test\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	chdir(t, nested)

	got, err := Find()
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	// Resolve symlinks; macOS temp dirs live under /private.
	gotReal, _ := filepath.EvalSymlinks(got)
	wantReal, _ := filepath.EvalSymlinks(want)
	if gotReal != wantReal {
		t.Errorf("Find() = %q, want %q", got, want)
	}
}

func TestFind_PrefersUnhiddenName(t *testing.T) {
	dir := t.TempDir()
	for _, name := range FileNames {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	chdir(t, dir)

	got, err := Find()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(got) != "allgood.yaml" {
		t.Errorf("Find() = %q, want allgood.yaml first", got)
	}
}

func TestValidate_NegativeTimeout(t *testing.T) {
	cfg := &Config{DefaultTimeout: Duration(-time.Second)}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() with negative default_timeout = nil error")
	}

	cfg = &Config{Checks: map[string]CheckConfig{"x": {Timeout: Duration(-time.Second)}}}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() with negative check timeout = nil error")
	}
}
