package config

import (
	"fmt"
	"log/slog"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

var validOutputs = map[string]bool{
	"json":  true,
	"yaml":  true,
	"table": true,
}

var validImageFormats = map[string]bool{
	"png":  true,
	"jpeg": true,
}

// ValidationResult separates problems that must stop the run from those
// that were corrected in place.
type ValidationResult struct {
	Fatals   []error
	Warnings []error
}

func (r ValidationResult) HasFatals() bool {
	return len(r.Fatals) > 0
}

// AllErrors returns fatals followed by warnings.
func (r ValidationResult) AllErrors() []error {
	all := make([]error, 0, len(r.Fatals)+len(r.Warnings))
	all = append(all, r.Fatals...)
	all = append(all, r.Warnings...)
	return all
}

// ValidateTiered checks the config. Out-of-range numbers are clamped and
// unknown log settings fall back to defaults; both are warnings. Output and
// image formats have no sensible fallback and are fatal.
func (c *Config) ValidateTiered() ValidationResult {
	var result ValidationResult
	warn := func(err error) { result.Warnings = append(result.Warnings, err) }
	fatal := func(err error) { result.Fatals = append(result.Fatals, err) }

	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	if !validOutputs[c.Output] {
		fatal(fmt.Errorf("output %q is not valid (use json, yaml or table)", c.Output))
	}

	c.ImageFormat = strings.ToLower(strings.TrimSpace(c.ImageFormat))
	if c.ImageFormat == "jpg" {
		c.ImageFormat = "jpeg"
	}
	if !validImageFormats[c.ImageFormat] {
		fatal(fmt.Errorf("image_format %q is not valid (use png or jpeg)", c.ImageFormat))
	}

	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		warn(fmt.Errorf("log_level %q is not valid (use debug, info, warn, error)", c.LogLevel))
	}

	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		warn(fmt.Errorf("log_format %q is not valid (use text or json)", c.LogFormat))
		c.LogFormat = "text"
	}

	if c.JPEGQuality < 1 {
		warn(fmt.Errorf("jpeg_quality %d is below minimum 1, clamping", c.JPEGQuality))
		c.JPEGQuality = 1
	} else if c.JPEGQuality > 100 {
		warn(fmt.Errorf("jpeg_quality %d exceeds maximum 100, clamping", c.JPEGQuality))
		c.JPEGQuality = 100
	}

	if c.MaxCaptureWorkers < 1 {
		warn(fmt.Errorf("max_capture_workers %d is below minimum 1, clamping", c.MaxCaptureWorkers))
		c.MaxCaptureWorkers = 1
	} else if c.MaxCaptureWorkers > 16 {
		warn(fmt.Errorf("max_capture_workers %d exceeds maximum 16, clamping", c.MaxCaptureWorkers))
		c.MaxCaptureWorkers = 16
	}

	if c.LogMaxSizeMB < 1 {
		warn(fmt.Errorf("log_max_size_mb %d is below minimum 1, clamping", c.LogMaxSizeMB))
		c.LogMaxSizeMB = 1
	} else if c.LogMaxSizeMB > 1024 {
		warn(fmt.Errorf("log_max_size_mb %d exceeds maximum 1024, clamping", c.LogMaxSizeMB))
		c.LogMaxSizeMB = 1024
	}

	if c.LogMaxBackups < 1 {
		warn(fmt.Errorf("log_max_backups %d is below minimum 1, clamping", c.LogMaxBackups))
		c.LogMaxBackups = 1
	} else if c.LogMaxBackups > 20 {
		warn(fmt.Errorf("log_max_backups %d exceeds maximum 20, clamping", c.LogMaxBackups))
		c.LogMaxBackups = 20
	}

	for _, err := range result.Warnings {
		slog.Warn("config validation", "error", err)
	}

	return result
}
