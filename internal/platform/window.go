package platform

import (
	"errors"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
	"github.com/shirou/gopsutil/v3/process"
)

var (
	errWindowMinimized = errors.New("window is minimized")
	errWindowEmpty     = errors.New("window has no visible area")
)

// windowRecord is a window read eagerly at enumeration. Each field keeps
// its own read error so the accessors fail independently.
type windowRecord struct {
	id uint64

	pid    uint32
	pidErr error

	appName string
	appErr  error

	title    string
	titleErr error

	bounds    image.Rectangle
	boundsErr error

	z    int
	zErr error

	minimized, maximized bool
	stateErr             error

	focused    bool
	focusedErr error

	// locate re-reads the live window for capture: current bounds and
	// whether it is minimized. It fails once the window is gone.
	locate func() (image.Rectangle, bool, error)
}

func (w *windowRecord) ID() (uint64, error)      { return w.id, nil }
func (w *windowRecord) PID() (uint32, error)     { return w.pid, w.pidErr }
func (w *windowRecord) AppName() (string, error) { return w.appName, w.appErr }
func (w *windowRecord) Title() (string, error)   { return w.title, w.titleErr }
func (w *windowRecord) X() (int, error)          { return w.bounds.Min.X, w.boundsErr }
func (w *windowRecord) Y() (int, error)          { return w.bounds.Min.Y, w.boundsErr }
func (w *windowRecord) Width() (int, error)      { return w.bounds.Dx(), w.boundsErr }
func (w *windowRecord) Height() (int, error)     { return w.bounds.Dy(), w.boundsErr }
func (w *windowRecord) Z() (int, error)          { return w.z, w.zErr }
func (w *windowRecord) IsMinimized() (bool, error) {
	return w.minimized, w.stateErr
}
func (w *windowRecord) IsMaximized() (bool, error) {
	return w.maximized, w.stateErr
}
func (w *windowRecord) IsFocused() (bool, error) { return w.focused, w.focusedErr }

// CaptureImage grabs the window's current on-screen rectangle.
func (w *windowRecord) CaptureImage() (*image.RGBA, error) {
	if w.locate == nil {
		return nil, fmt.Errorf("window %d: no locator", w.id)
	}
	rect, minimized, err := w.locate()
	if err != nil {
		return nil, fmt.Errorf("window %d: %w", w.id, err)
	}
	if minimized {
		return nil, fmt.Errorf("window %d: %w", w.id, errWindowMinimized)
	}
	if rect.Empty() {
		return nil, fmt.Errorf("window %d: %w", w.id, errWindowEmpty)
	}
	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return nil, fmt.Errorf("capture window %d: %w", w.id, err)
	}
	return img, nil
}

// processName resolves an executable name for pid, the fallback when the
// window system does not report an application name.
func processName(pid uint32) (string, error) {
	if pid == 0 {
		return "", errors.New("no process id")
	}
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return "", err
	}
	return p.Name()
}
