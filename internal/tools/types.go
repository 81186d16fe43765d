package tools

import (
	"github.com/breeze-rmm/screencap/internal/capture"
)

// Command names, used as the op in logs and in the result envelope.
const (
	CmdListMonitors          = "list_monitors"
	CmdGetMonitor            = "get_monitor"
	CmdBounds                = "bounds"
	CmdListWindows           = "list_windows"
	CmdWindowAt              = "window_at"
	CmdCaptureMonitor        = "capture_monitor"
	CmdCaptureVirtualDesktop = "capture_virtual_desktop"
	CmdCaptureWindow         = "capture_window"
	CmdCaptureRect           = "capture_rect"
	CmdDoctor                = "doctor"
	CmdVersion               = "version"
)

// Result statuses
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// CommandResult is the envelope every CLI command prints.
type CommandResult struct {
	Command    string `json:"command" yaml:"command"`
	Status     string `json:"status" yaml:"status"` // completed, failed
	ExitCode   int    `json:"exitCode" yaml:"exitCode"`
	Data       any    `json:"data,omitempty" yaml:"data,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorKind  string `json:"errorKind,omitempty" yaml:"errorKind,omitempty"`
	DurationMs int64  `json:"durationMs" yaml:"durationMs"`
}

// NewSuccessResult creates a successful command result with data
func NewSuccessResult(command string, data any, durationMs int64) CommandResult {
	return CommandResult{
		Command:    command,
		Status:     StatusCompleted,
		ExitCode:   ExitOK,
		Data:       data,
		DurationMs: durationMs,
	}
}

// NewErrorResult creates a failed command result. The exit code and kind
// come from the capture error taxonomy.
func NewErrorResult(command string, err error, durationMs int64) CommandResult {
	res := CommandResult{
		Command:    command,
		Status:     StatusFailed,
		ExitCode:   ExitCode(err),
		Error:      err.Error(),
		DurationMs: durationMs,
	}
	if kind := capture.KindOf(err); kind != capture.KindUnknown {
		res.ErrorKind = kind.String()
	}
	return res
}

// Failed reports whether the command did not complete.
func (r CommandResult) Failed() bool {
	return r.Status != StatusCompleted
}

// ScreenshotResponse describes an encoded capture.
type ScreenshotResponse struct {
	ImageBase64 string `json:"imageBase64,omitempty" yaml:"imageBase64,omitempty"`
	Width       int    `json:"width" yaml:"width"`
	Height      int    `json:"height" yaml:"height"`
	Format      string `json:"format" yaml:"format"`
	SizeBytes   int    `json:"sizeBytes" yaml:"sizeBytes"`
	Source      string `json:"source" yaml:"source"`
	CapturedAt  string `json:"capturedAt" yaml:"capturedAt"`
}

// BoundsResponse reports both desktop geometries: the aggregate working
// area and the true union of monitor rectangles.
type BoundsResponse struct {
	WorkingArea capture.MonitorInfo `json:"workingArea" yaml:"workingArea"`
	Virtual     capture.Rect        `json:"virtual" yaml:"virtual"`
}

// VersionInfo is printed by the version command.
type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	OS      string `json:"os" yaml:"os"`
	Arch    string `json:"arch" yaml:"arch"`
}
