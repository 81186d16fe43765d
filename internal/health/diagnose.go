package health

import (
	"errors"
	"fmt"
	"time"

	"github.com/breeze-rmm/screencap/internal/capture"
)

// Check names
const (
	CheckMonitors = "monitors"
	CheckPrimary  = "primary_monitor"
	CheckWindows  = "windows"
	CheckZOrder   = "z_order"
	CheckCapture  = "capture"
)

// Prober is the subset of capture.Service that Diagnose exercises.
type Prober interface {
	ListMonitors() ([]capture.MonitorInfo, error)
	PrimaryMonitor() (capture.MonitorInfo, error)
	ListWindows() ([]capture.WindowInfo, error)
	WindowAt(x, y int) (capture.WindowInfo, error)
	CaptureMonitor(name string) (*capture.Image, error)
}

// Report is the result of Diagnose.
type Report struct {
	Status Status  `json:"status" yaml:"status"`
	Checks []Check `json:"checks" yaml:"checks"`
}

// Diagnose probes each capture capability in turn. Monitor enumeration is
// required; window features and primary detection only degrade. Pixel
// capture is probed only when withCapture is set.
func Diagnose(p Prober, withCapture bool) Report {
	m := NewMonitor()
	timed := func(name string, fn func() (Status, string)) {
		start := time.Now()
		status, msg := fn()
		m.record(Check{Name: name, Status: status, Message: msg, DurationMs: time.Since(start).Milliseconds()})
	}

	var monitors []capture.MonitorInfo
	timed(CheckMonitors, func() (Status, string) {
		var err error
		if monitors, err = p.ListMonitors(); err != nil {
			return Unhealthy, err.Error()
		}
		return Healthy, fmt.Sprintf("%d monitor(s)", len(monitors))
	})

	probe := capture.Rect{}
	if len(monitors) > 0 {
		probe = monitors[0].Bounds()
	}
	timed(CheckPrimary, func() (Status, string) {
		if len(monitors) == 0 {
			return Degraded, "skipped: no monitors"
		}
		primary, err := p.PrimaryMonitor()
		switch {
		case err == nil:
			probe = primary.Bounds()
			return Healthy, primary.Name
		case errors.Is(err, capture.ErrNotFound), errors.Is(err, capture.ErrAmbiguous):
			return Degraded, err.Error()
		default:
			return Unhealthy, err.Error()
		}
	})

	windowsOK := false
	timed(CheckWindows, func() (Status, string) {
		windows, err := p.ListWindows()
		if err != nil {
			return Degraded, err.Error()
		}
		windowsOK = true
		return Healthy, fmt.Sprintf("%d window(s)", len(windows))
	})

	timed(CheckZOrder, func() (Status, string) {
		if !windowsOK {
			return Degraded, "skipped: window enumeration unavailable"
		}
		cx, cy := probe.X+probe.Width/2, probe.Y+probe.Height/2
		_, err := p.WindowAt(cx, cy)
		switch {
		case err == nil, errors.Is(err, capture.ErrNotFound):
			return Healthy, "stacking order available"
		case errors.Is(err, capture.ErrUnavailable):
			return Degraded, "stacking order unavailable, window hit testing disabled"
		default:
			return Unhealthy, err.Error()
		}
	})

	if withCapture {
		timed(CheckCapture, func() (Status, string) {
			if len(monitors) == 0 {
				return Degraded, "skipped: no monitors"
			}
			img, err := p.CaptureMonitor(monitors[0].Name)
			if err != nil {
				return Unhealthy, err.Error()
			}
			return Healthy, fmt.Sprintf("%dx%d from %s", img.Width, img.Height, monitors[0].Name)
		})
	}

	return Report{Status: m.Overall(), Checks: m.All()}
}
