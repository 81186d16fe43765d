package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLoadReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screencap.yaml")
	content := []byte("log_level: debug\nparallel_capture: true\nmax_capture_workers: 2\noutput: table\n")
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if !cfg.ParallelCapture {
		t.Fatal("ParallelCapture = false, want true")
	}
	if cfg.MaxCaptureWorkers != 2 {
		t.Fatalf("MaxCaptureWorkers = %d, want 2", cfg.MaxCaptureWorkers)
	}
	if cfg.Output != "table" {
		t.Fatalf("Output = %q, want table", cfg.Output)
	}
	// Untouched keys keep their defaults.
	if cfg.ImageFormat != "png" {
		t.Fatalf("ImageFormat = %q, want png", cfg.ImageFormat)
	}
	if cfg.JPEGQuality != 85 {
		t.Fatalf("JPEGQuality = %d, want 85", cfg.JPEGQuality)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screencap.yaml")
	if err := os.WriteFile(path, []byte("output: yaml\n"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SCREENCAP_OUTPUT", "table")
	t.Setenv("SCREENCAP_JPEG_QUALITY", "40")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output != "table" {
		t.Fatalf("Output = %q, want table from env", cfg.Output)
	}
	if cfg.JPEGQuality != 40 {
		t.Fatalf("JPEGQuality = %d, want 40 from env", cfg.JPEGQuality)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *Default() {
		t.Fatalf("cfg = %+v, want defaults", *cfg)
	}
}

func TestDirIsAbsolute(t *testing.T) {
	if runtime.GOOS == "windows" && os.Getenv("ProgramData") == "" {
		t.Skip("ProgramData not set")
	}
	if d := Dir(); !filepath.IsAbs(d) {
		t.Fatalf("Dir() = %q, want an absolute path", d)
	}
}
