// Package platform binds the capture package to the running OS. Monitor
// geometry and pixels come from github.com/kbinani/screenshot; window
// enumeration is implemented per OS.
package platform

import (
	"errors"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"github.com/breeze-rmm/screencap/internal/capture"
	"github.com/breeze-rmm/screencap/internal/logging"
)

var log = logging.L("platform")

// ErrNoDisplays is returned when the OS reports no active displays.
var ErrNoDisplays = errors.New("platform: no active displays")

// ErrWindowsNotSupported is returned by Windows on platforms without a
// window enumeration backend.
var ErrWindowsNotSupported = errors.New("platform: window enumeration not supported on this platform")

// Desktop is the live capture platform. It is stateless; every call
// re-reads the OS.
type Desktop struct{}

// New returns the platform for the running OS.
func New() *Desktop {
	return &Desktop{}
}

var _ capture.Platform = (*Desktop)(nil)

// Monitors enumerates active displays.
func (d *Desktop) Monitors() ([]capture.Monitor, error) {
	displays, err := activeDisplays()
	if err != nil {
		return nil, err
	}
	out := make([]capture.Monitor, len(displays))
	for i := range displays {
		out[i] = &displays[i]
	}
	return out, nil
}

// MonitorFromPoint returns the display containing (x, y), or nil.
func (d *Desktop) MonitorFromPoint(x, y int) (capture.Monitor, error) {
	displays, err := activeDisplays()
	if err != nil {
		return nil, err
	}
	pt := image.Pt(x, y)
	for i := range displays {
		if pt.In(displays[i].bounds) {
			return &displays[i], nil
		}
	}
	return nil, nil
}

// Windows enumerates top-level windows front to back.
func (d *Desktop) Windows() ([]capture.Window, error) {
	records, err := listWindows()
	if err != nil {
		return nil, err
	}
	out := make([]capture.Window, len(records))
	for i := range records {
		out[i] = &records[i]
	}
	return out, nil
}

func activeDisplays() ([]display, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return nil, ErrNoDisplays
	}

	bounds := make([]image.Rectangle, n)
	for i := range bounds {
		bounds[i] = screenshot.GetDisplayBounds(i)
	}

	names := displayNames(bounds)
	primary := primaryIndex(bounds)
	displays := make([]display, n)
	for i, b := range bounds {
		name := names[i]
		if name == "" {
			name = fmt.Sprintf("Display %d", i+1)
		}
		displays[i] = display{index: i, bounds: b, name: name, primary: i == primary}
	}
	return displays, nil
}

// originIndex returns the display anchored at (0,0), or -1.
func originIndex(bounds []image.Rectangle) int {
	for i, b := range bounds {
		if b.Min == (image.Point{}) {
			return i
		}
	}
	return -1
}

// matchRect returns the display with exactly rect r, or -1.
func matchRect(bounds []image.Rectangle, r image.Rectangle) int {
	for i, b := range bounds {
		if b == r {
			return i
		}
	}
	return -1
}

// display is one screenshot display, snapshotted at enumeration.
type display struct {
	index   int
	bounds  image.Rectangle
	name    string
	primary bool
}

func (m *display) Name() (string, error) { return m.name, nil }
func (m *display) X() (int, error)       { return m.bounds.Min.X, nil }
func (m *display) Y() (int, error)       { return m.bounds.Min.Y, nil }
func (m *display) Width() (int, error)   { return m.bounds.Dx(), nil }
func (m *display) Height() (int, error)  { return m.bounds.Dy(), nil }

func (m *display) IsPrimary() (bool, error) { return m.primary, nil }

func (m *display) CaptureImage() (*image.RGBA, error) {
	img, err := screenshot.CaptureRect(m.bounds)
	if err != nil {
		return nil, fmt.Errorf("capture display %d: %w", m.index, err)
	}
	return img, nil
}
