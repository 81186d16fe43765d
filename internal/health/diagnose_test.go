package health

import (
	"errors"
	"testing"

	"github.com/breeze-rmm/screencap/internal/capture"
)

type fakeProber struct {
	monitors    []capture.MonitorInfo
	monitorsErr error
	primaryErr  error
	windowsErr  error
	windowAtErr error
	captureErr  error
	captured    string
}

func (f *fakeProber) ListMonitors() ([]capture.MonitorInfo, error) {
	return f.monitors, f.monitorsErr
}

func (f *fakeProber) PrimaryMonitor() (capture.MonitorInfo, error) {
	if f.primaryErr != nil {
		return capture.MonitorInfo{}, f.primaryErr
	}
	return capture.Primary(f.monitors)
}

func (f *fakeProber) ListWindows() ([]capture.WindowInfo, error) {
	return nil, f.windowsErr
}

func (f *fakeProber) WindowAt(x, y int) (capture.WindowInfo, error) {
	return capture.WindowInfo{}, f.windowAtErr
}

func (f *fakeProber) CaptureMonitor(name string) (*capture.Image, error) {
	f.captured = name
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	return capture.NewImage(4, 3), nil
}

func healthyProber() *fakeProber {
	return &fakeProber{monitors: []capture.MonitorInfo{
		{Index: 0, Name: "A", Width: 1920, Height: 1080, IsPrimary: true},
	}}
}

func checkStatus(t *testing.T, r Report, name string) Status {
	t.Helper()
	for _, c := range r.Checks {
		if c.Name == name {
			return c.Status
		}
	}
	t.Fatalf("check %q missing from %+v", name, r.Checks)
	return ""
}

func TestDiagnoseHealthy(t *testing.T) {
	p := healthyProber()
	r := Diagnose(p, true)
	if r.Status != Healthy {
		t.Fatalf("Status = %q, want healthy: %+v", r.Status, r.Checks)
	}
	if len(r.Checks) != 5 || r.Checks[0].Name != CheckMonitors || r.Checks[4].Name != CheckCapture {
		t.Fatalf("unexpected checks %+v", r.Checks)
	}
	if p.captured != "A" {
		t.Fatalf("capture probed %q, want A", p.captured)
	}
}

func TestDiagnoseSkipsCaptureByDefault(t *testing.T) {
	p := healthyProber()
	r := Diagnose(p, false)
	if len(r.Checks) != 4 || p.captured != "" {
		t.Fatalf("capture should not run: %+v", r.Checks)
	}
}

func TestDiagnoseNoMonitorsIsUnhealthy(t *testing.T) {
	p := &fakeProber{monitorsErr: errors.New("no display")}
	r := Diagnose(p, true)
	if r.Status != Unhealthy {
		t.Fatalf("Status = %q, want unhealthy", r.Status)
	}
	if got := checkStatus(t, r, CheckCapture); got != Degraded {
		t.Fatalf("capture check = %q, want degraded (skipped)", got)
	}
}

func TestDiagnoseMissingZOrderDegrades(t *testing.T) {
	p := healthyProber()
	p.windowAtErr = capture.ErrUnavailable
	r := Diagnose(p, false)
	if r.Status != Degraded {
		t.Fatalf("Status = %q, want degraded", r.Status)
	}
	if got := checkStatus(t, r, CheckZOrder); got != Degraded {
		t.Fatalf("z_order = %q", got)
	}
}

func TestDiagnoseWindowAtNotFoundIsHealthy(t *testing.T) {
	p := healthyProber()
	p.windowAtErr = capture.ErrNotFound
	if r := Diagnose(p, false); r.Status != Healthy {
		t.Fatalf("empty desktop should be healthy: %+v", r.Checks)
	}
}

func TestDiagnoseAmbiguousPrimaryDegrades(t *testing.T) {
	p := healthyProber()
	p.monitors = append(p.monitors, capture.MonitorInfo{Index: 1, Name: "B", X: 1920, Width: 100, Height: 100, IsPrimary: true})
	r := Diagnose(p, false)
	if got := checkStatus(t, r, CheckPrimary); got != Degraded {
		t.Fatalf("primary = %q, want degraded", got)
	}
}

func TestDiagnoseCaptureFailureIsUnhealthy(t *testing.T) {
	p := healthyProber()
	p.captureErr = errors.New("denied")
	if r := Diagnose(p, true); r.Status != Unhealthy {
		t.Fatalf("Status = %q, want unhealthy", r.Status)
	}
}
