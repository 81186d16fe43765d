package capture

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/breeze-rmm/screencap/internal/logging"
	"github.com/breeze-rmm/screencap/internal/workerpool"
)

var log = logging.L("capture")

// Config controls how a Service drives the platform.
type Config struct {
	// ParallelCapture captures monitors concurrently for virtual-desktop
	// composites. Composition order is unaffected.
	ParallelCapture bool

	// MaxWorkers bounds concurrent monitor captures.
	MaxWorkers int
}

// DefaultConfig returns sequential capture, matching the blocking model of
// the underlying OS APIs.
func DefaultConfig() Config {
	return Config{
		ParallelCapture: false,
		MaxWorkers:      4,
	}
}

// Service implements every public capture operation on top of a Platform.
// It holds no OS state between calls and is safe for concurrent use.
type Service struct {
	platform Platform
	config   Config
}

// NewService wraps p. A nil platform yields a Service whose every call fails
// with KindUnavailable.
func NewService(p Platform, config Config) *Service {
	if config.MaxWorkers < 1 {
		config.MaxWorkers = 1
	}
	return &Service{platform: p, config: config}
}

// ListMonitors snapshots every attached monitor.
func (s *Service) ListMonitors() ([]MonitorInfo, error) {
	infos, _, err := s.monitors("list_monitors")
	return infos, err
}

// monitors enumerates and snapshots monitors, returning the live handles
// alongside so callers can capture without a second enumeration.
func (s *Service) monitors(op string) ([]MonitorInfo, []Monitor, error) {
	if s.platform == nil {
		return nil, nil, newError(KindUnavailable, op, nil, "no capture platform")
	}

	handles, err := s.platform.Monitors()
	if err != nil {
		return nil, nil, newError(KindUnavailable, op, err, "enumerate monitors")
	}
	if len(handles) == 0 {
		return nil, nil, newError(KindUnavailable, op, nil, "no monitors found")
	}

	infos := make([]MonitorInfo, 0, len(handles))
	for i, h := range handles {
		info, err := snapshotMonitor(i, h)
		if err != nil {
			return nil, nil, newError(KindUnavailable, op, err, "read monitor")
		}
		infos = append(infos, info)
	}
	return infos, handles, nil
}

// MonitorByName returns the monitor whose name matches exactly.
func (s *Service) MonitorByName(name string) (MonitorInfo, error) {
	info, _, err := s.monitorByName("monitor_by_name", name)
	return info, err
}

func (s *Service) monitorByName(op, name string) (MonitorInfo, Monitor, error) {
	infos, handles, err := s.monitors(op)
	if err != nil {
		return MonitorInfo{}, nil, err
	}
	info, err := MonitorNamed(infos, name)
	if err != nil {
		return MonitorInfo{}, nil, err
	}
	return info, handles[info.Index], nil
}

// PrimaryMonitor returns the single monitor flagged primary.
func (s *Service) PrimaryMonitor() (MonitorInfo, error) {
	info, _, err := s.primary("primary_monitor")
	return info, err
}

func (s *Service) primary(op string) (MonitorInfo, Monitor, error) {
	infos, handles, err := s.monitors(op)
	if err != nil {
		return MonitorInfo{}, nil, err
	}
	info, err := Primary(infos)
	if err != nil {
		return MonitorInfo{}, nil, err
	}
	return info, handles[info.Index], nil
}

// MonitorAt returns the monitor containing the virtual-desktop point.
func (s *Service) MonitorAt(x, y int) (MonitorInfo, error) {
	info, _, err := s.monitorAt("monitor_at", x, y)
	return info, err
}

func (s *Service) monitorAt(op string, x, y int) (MonitorInfo, Monitor, error) {
	if s.platform == nil {
		return MonitorInfo{}, nil, newError(KindUnavailable, op, nil, "no capture platform")
	}

	m, err := s.platform.MonitorFromPoint(x, y)
	if err != nil {
		return MonitorInfo{}, nil, newError(KindUnavailable, op, err, "resolve point (%d,%d)", x, y)
	}
	if m == nil {
		return MonitorInfo{}, nil, newError(KindNotFound, op, nil, "no monitor contains (%d,%d)", x, y)
	}

	info, err := snapshotMonitor(0, m)
	if err != nil {
		return MonitorInfo{}, nil, newError(KindUnavailable, op, err, "read monitor")
	}

	// Index is relative to a full enumeration; recover it by name when the
	// platform can still list monitors.
	info.Index = -1
	if infos, _, err := s.monitors(op); err == nil {
		for _, other := range infos {
			if other.Name == info.Name {
				info.Index = other.Index
				break
			}
		}
	}
	return info, m, nil
}

// WorkingArea is the aggregate pseudo-monitor over all displays.
func (s *Service) WorkingArea() (MonitorInfo, error) {
	infos, _, err := s.monitors("working_area")
	if err != nil {
		return MonitorInfo{}, err
	}
	return WorkingArea(infos), nil
}

// VirtualBounds is the union of all monitor rectangles, the canvas a
// virtual-desktop capture is drawn on.
func (s *Service) VirtualBounds() (Rect, error) {
	infos, _, err := s.monitors("virtual_bounds")
	if err != nil {
		return Rect{}, err
	}
	return VirtualBounds(infos), nil
}

// CaptureMonitor captures the monitor called name.
func (s *Service) CaptureMonitor(name string) (*Image, error) {
	const op = "capture_monitor"
	info, m, err := s.monitorByName(op, name)
	if err != nil {
		return nil, err
	}
	return s.captureMonitor(op, info, m)
}

// CapturePrimaryMonitor captures the primary monitor.
func (s *Service) CapturePrimaryMonitor() (*Image, error) {
	const op = "capture_primary_monitor"
	info, m, err := s.primary(op)
	if err != nil {
		return nil, err
	}
	return s.captureMonitor(op, info, m)
}

// CaptureMonitorAt captures the monitor containing (x, y).
func (s *Service) CaptureMonitorAt(x, y int) (*Image, error) {
	const op = "capture_monitor_at"
	info, m, err := s.monitorAt(op, x, y)
	if err != nil {
		return nil, err
	}
	return s.captureMonitor(op, info, m)
}

func (s *Service) captureMonitor(op string, info MonitorInfo, m Monitor) (*Image, error) {
	start := time.Now()
	raw, err := m.CaptureImage()
	if err != nil {
		return nil, newError(KindCaptureFailed, op, err, "monitor %q", info.Name)
	}
	if raw == nil {
		return nil, newError(KindCaptureFailed, op, nil, "monitor %q returned no image", info.Name)
	}
	img := FromRGBA(raw)
	log.Debug("monitor captured",
		logging.KeyOp, op,
		logging.KeyMonitor, info.Name,
		"width", img.Width,
		"height", img.Height,
		logging.KeyDurationMs, time.Since(start).Milliseconds(),
	)
	return img, nil
}

// CaptureVirtualDesktop captures every monitor and composites them at
// their virtual-desktop offsets. Any single failure fails the whole call,
// including a capture whose pixel size differs from its monitor geometry.
func (s *Service) CaptureVirtualDesktop() (*Image, error) {
	const op = "capture_virtual_desktop"
	start := time.Now()

	infos, handles, err := s.monitors(op)
	if err != nil {
		return nil, err
	}

	images := make([]*Image, len(handles))
	jobs := make([]func() error, len(handles))
	for i := range handles {
		jobs[i] = func() error {
			img, err := s.captureMonitor(op, infos[i], handles[i])
			if err != nil {
				return err
			}
			// Placement uses monitor geometry; a scaled capture would
			// overflow onto its neighbours.
			if img.Width != infos[i].Width || img.Height != infos[i].Height {
				return newError(KindCaptureFailed, op, nil,
					"monitor %q captured %dx%d, geometry is %dx%d",
					infos[i].Name, img.Width, img.Height, infos[i].Width, infos[i].Height)
			}
			images[i] = img
			return nil
		}
	}

	var errs []error
	if s.config.ParallelCapture && len(jobs) > 1 {
		errs = workerpool.Run(s.config.MaxWorkers, jobs)
	} else {
		errs = make([]error, len(jobs))
		for i, job := range jobs {
			if errs[i] = job(); errs[i] != nil {
				break
			}
		}
	}
	for i, err := range errs {
		if err != nil {
			return nil, passthrough(KindCaptureFailed, op,
				fmt.Errorf("monitor %q: %w", infos[i].Name, err))
		}
	}

	placements := make([]Placement, len(infos))
	for i, info := range infos {
		placements[i] = Placement{Origin: image.Pt(info.X, info.Y), Image: images[i]}
	}
	out := Composite(placements)

	log.Info("virtual desktop captured",
		"monitors", len(infos),
		"width", out.Width,
		"height", out.Height,
		logging.KeyDurationMs, time.Since(start).Milliseconds(),
	)
	return out, nil
}

// CaptureRect captures the region (x, y, width, height) from the monitor
// containing (x, y). The region must lie entirely on that monitor.
func (s *Service) CaptureRect(x, y, width, height int) (*Image, error) {
	const op = "capture_rect"
	info, m, err := s.monitorAt(op, x, y)
	if err != nil {
		return nil, err
	}
	full, err := s.captureMonitor(op, info, m)
	if err != nil {
		return nil, err
	}

	local := Rect{X: x - info.X, Y: y - info.Y, Width: width, Height: height}
	out, err := Crop(full, local)
	if err != nil {
		var ce *Error
		if errors.As(err, &ce) {
			ce.Op = op
			ce.Msg = fmt.Sprintf("monitor %q: %s", info.Name, ce.Msg)
		}
		return nil, err
	}
	return out, nil
}

// ListWindows returns best-effort snapshots of every top-level window,
// front to back. Unreadable fields fall back to zero values.
func (s *Service) ListWindows() ([]WindowInfo, error) {
	snaps, err := s.windows("list_windows")
	if err != nil {
		return nil, err
	}

	allZ := true
	for _, snap := range snaps {
		if !snap.hasZ {
			allZ = false
			break
		}
	}
	if allZ {
		sortFrontToBack(snaps)
	} else {
		log.Warn("window z-order unavailable, using enumeration order", "windows", len(snaps))
		for i := range snaps {
			snaps[i].info.Z = i
		}
	}

	out := make([]WindowInfo, len(snaps))
	for i, snap := range snaps {
		out[i] = snap.info
	}
	return out, nil
}

func (s *Service) windows(op string) ([]windowSnapshot, error) {
	if s.platform == nil {
		return nil, newError(KindUnavailable, op, nil, "no capture platform")
	}

	handles, err := s.platform.Windows()
	if err != nil {
		return nil, newError(KindUnavailable, op, err, "enumerate windows")
	}

	snaps := make([]windowSnapshot, 0, len(handles))
	misses := 0
	for i, h := range handles {
		snap, n := snapshotWindow(i, h)
		misses += n
		snaps = append(snaps, snap)
	}
	if misses > 0 {
		log.Debug("window fields unavailable, using defaults", logging.KeyOp, op, "missing", misses, "windows", len(snaps))
	}
	return snaps, nil
}

// WindowAt returns the frontmost window whose bounds contain (x, y),
// edges inclusive.
func (s *Service) WindowAt(x, y int) (WindowInfo, error) {
	snap, err := s.windowAt("window_at", x, y)
	if err != nil {
		return WindowInfo{}, err
	}
	return snap.info, nil
}

func (s *Service) windowAt(op string, x, y int) (windowSnapshot, error) {
	snaps, err := s.windows(op)
	if err != nil {
		return windowSnapshot{}, err
	}

	candidates := make([]windowSnapshot, 0, len(snaps))
	infos := make([]WindowInfo, 0, len(snaps))
	for _, snap := range snaps {
		if !snap.hasZ {
			return windowSnapshot{}, newError(KindUnavailable, op, nil,
				"z-order unavailable for window %d", snap.info.Handle)
		}
		if !snap.hasGeometry {
			continue
		}
		candidates = append(candidates, snap)
		infos = append(infos, snap.info)
	}

	hit, ok := TopmostAt(infos, x, y)
	if !ok {
		return windowSnapshot{}, newError(KindNotFound, op, nil, "no window at (%d,%d)", x, y)
	}
	// Identical infos are indistinguishable, so the first match is the hit.
	for _, snap := range candidates {
		if snap.info == hit {
			return snap, nil
		}
	}
	return windowSnapshot{}, newError(KindNotFound, op, nil, "no window at (%d,%d)", x, y)
}

// CaptureWindowAt captures the frontmost window under (x, y).
func (s *Service) CaptureWindowAt(x, y int) (*Image, error) {
	const op = "capture_window_at"
	snap, err := s.windowAt(op, x, y)
	if err != nil {
		return nil, err
	}
	return s.captureWindow(op, snap)
}

// CaptureWindowByHandle captures the window with the given handle. A handle
// that closed since it was listed is reported as KindNotFound.
func (s *Service) CaptureWindowByHandle(handle uint64) (*Image, error) {
	const op = "capture_window_by_handle"
	snaps, err := s.windows(op)
	if err != nil {
		return nil, err
	}
	for _, snap := range snaps {
		if snap.hasID && snap.info.Handle == handle {
			return s.captureWindow(op, snap)
		}
	}
	return nil, newError(KindNotFound, op, nil, "no window with handle %d", handle)
}

func (s *Service) captureWindow(op string, snap windowSnapshot) (*Image, error) {
	start := time.Now()
	raw, err := snap.win.CaptureImage()
	if err != nil {
		return nil, newError(KindCaptureFailed, op, err, "window %d", snap.info.Handle)
	}
	if raw == nil {
		return nil, newError(KindCaptureFailed, op, nil, "window %d returned no image", snap.info.Handle)
	}
	img := FromRGBA(raw)
	log.Debug("window captured",
		logging.KeyOp, op,
		logging.KeyHandle, snap.info.Handle,
		"title", snap.info.Title,
		"width", img.Width,
		"height", img.Height,
		logging.KeyDurationMs, time.Since(start).Milliseconds(),
	)
	return img, nil
}
