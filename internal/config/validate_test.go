package config

import (
	"fmt"
	"strings"
	"testing"
)

func TestValidateTieredInvalidOutputIsFatal(t *testing.T) {
	cfg := Default()
	cfg.Output = "xml"
	result := cfg.ValidateTiered()
	if !result.HasFatals() {
		t.Fatal("unknown output should be fatal")
	}
	found := false
	for _, err := range result.Fatals {
		if strings.Contains(err.Error(), `output "xml"`) {
			found = true
		}
	}
	if !found {
		t.Fatal("expected output validation error in fatals")
	}
}

func TestValidateTieredInvalidImageFormatIsFatal(t *testing.T) {
	cfg := Default()
	cfg.ImageFormat = "bmp"
	result := cfg.ValidateTiered()
	if !result.HasFatals() {
		t.Fatal("unknown image format should be fatal")
	}
}

func TestValidateTieredNormalizesFormats(t *testing.T) {
	cfg := Default()
	cfg.Output = " TABLE "
	cfg.ImageFormat = "JPG"
	result := cfg.ValidateTiered()
	if result.HasFatals() {
		t.Fatalf("normalizable formats should not be fatal: %v", result.Fatals)
	}
	if cfg.Output != "table" {
		t.Fatalf("Output = %q, want table", cfg.Output)
	}
	if cfg.ImageFormat != "jpeg" {
		t.Fatalf("ImageFormat = %q, want jpeg", cfg.ImageFormat)
	}
}

func TestValidateTieredClampingIsWarning(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*Config)
		check func(*Config) (int, int)
	}{
		{
			name:  "jpeg quality low",
			mut:   func(c *Config) { c.JPEGQuality = 0 },
			check: func(c *Config) (int, int) { return c.JPEGQuality, 1 },
		},
		{
			name:  "jpeg quality high",
			mut:   func(c *Config) { c.JPEGQuality = 250 },
			check: func(c *Config) (int, int) { return c.JPEGQuality, 100 },
		},
		{
			name:  "workers low",
			mut:   func(c *Config) { c.MaxCaptureWorkers = 0 },
			check: func(c *Config) (int, int) { return c.MaxCaptureWorkers, 1 },
		},
		{
			name:  "workers high",
			mut:   func(c *Config) { c.MaxCaptureWorkers = 64 },
			check: func(c *Config) (int, int) { return c.MaxCaptureWorkers, 16 },
		},
		{
			name:  "log size low",
			mut:   func(c *Config) { c.LogMaxSizeMB = -5 },
			check: func(c *Config) (int, int) { return c.LogMaxSizeMB, 1 },
		},
		{
			name:  "log backups high",
			mut:   func(c *Config) { c.LogMaxBackups = 99 },
			check: func(c *Config) (int, int) { return c.LogMaxBackups, 20 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mut(cfg)
			result := cfg.ValidateTiered()
			if result.HasFatals() {
				t.Fatalf("clamped value should be warning, not fatal: %v", result.Fatals)
			}
			if len(result.Warnings) != 1 {
				t.Fatalf("warnings = %v, want exactly one", result.Warnings)
			}
			if got, want := tt.check(cfg); got != want {
				t.Fatalf("clamped value = %d, want %d", got, want)
			}
		})
	}
}

func TestValidateTieredUnknownLogLevelIsWarning(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "verbose"
	result := cfg.ValidateTiered()
	if result.HasFatals() {
		t.Fatal("unknown log level should not be fatal")
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected warning for unknown log level")
	}
}

func TestValidateTieredInvalidLogFormatIsWarning(t *testing.T) {
	cfg := Default()
	cfg.LogFormat = "xml"
	result := cfg.ValidateTiered()
	if result.HasFatals() {
		t.Fatal("invalid log format should not be fatal")
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected warning for invalid log format")
	}
	if cfg.LogFormat != "text" {
		t.Fatalf("LogFormat = %q, want text fallback", cfg.LogFormat)
	}
}

func TestHasFatals(t *testing.T) {
	r := ValidationResult{}
	if r.HasFatals() {
		t.Fatal("HasFatals() on empty result should be false")
	}
	r.Fatals = append(r.Fatals, fmt.Errorf("test error"))
	if !r.HasFatals() {
		t.Fatal("HasFatals() should be true with a fatal error")
	}
}

func TestAllErrorsReturnsBoth(t *testing.T) {
	cfg := Default()
	cfg.Output = "csv"     // fatal
	cfg.JPEGQuality = 1000 // warning
	result := cfg.ValidateTiered()

	all := result.AllErrors()
	if len(all) != 2 {
		t.Fatalf("AllErrors() returned %d errors, want 2 (fatals + warnings)", len(all))
	}
}

func TestDefaultConfigHasNoErrors(t *testing.T) {
	cfg := Default()
	result := cfg.ValidateTiered()
	if len(result.AllErrors()) > 0 {
		t.Fatalf("default config has errors: %v", result.AllErrors())
	}
}
