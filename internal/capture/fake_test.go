package capture

import (
	"errors"
	"image"
	"image/color"
	"sync/atomic"
)

var errFake = errors.New("fake platform failure")

type fakePlatform struct {
	monitors    []*fakeMonitor
	monitorsErr error
	windows     []*fakeWindow
	windowsErr  error
}

func (p *fakePlatform) Monitors() ([]Monitor, error) {
	if p.monitorsErr != nil {
		return nil, p.monitorsErr
	}
	out := make([]Monitor, len(p.monitors))
	for i, m := range p.monitors {
		out[i] = m
	}
	return out, nil
}

func (p *fakePlatform) MonitorFromPoint(x, y int) (Monitor, error) {
	if p.monitorsErr != nil {
		return nil, p.monitorsErr
	}
	for _, m := range p.monitors {
		if image.Pt(x, y).In(m.rect()) {
			return m, nil
		}
	}
	return nil, nil
}

func (p *fakePlatform) Windows() ([]Window, error) {
	if p.windowsErr != nil {
		return nil, p.windowsErr
	}
	out := make([]Window, len(p.windows))
	for i, w := range p.windows {
		out[i] = w
	}
	return out, nil
}

// fakeMonitor captures a solid image of its own size filled with fill.
type fakeMonitor struct {
	name          string
	x, y          int
	width, height int
	primary       bool
	fill          color.RGBA
	// scale multiplies the captured size, as a HiDPI display would.
	scale int

	nameErr    error
	geomErr    error
	captureErr error
	captures   atomic.Int32
}

func newMonitor(name string, x, y, w, h int, primary bool, fill color.RGBA) *fakeMonitor {
	return &fakeMonitor{name: name, x: x, y: y, width: w, height: h, primary: primary, fill: fill}
}

func (m *fakeMonitor) rect() image.Rectangle {
	return image.Rect(m.x, m.y, m.x+m.width, m.y+m.height)
}

func (m *fakeMonitor) Name() (string, error)    { return m.name, m.nameErr }
func (m *fakeMonitor) X() (int, error)          { return m.x, m.geomErr }
func (m *fakeMonitor) Y() (int, error)          { return m.y, m.geomErr }
func (m *fakeMonitor) Width() (int, error)      { return m.width, m.geomErr }
func (m *fakeMonitor) Height() (int, error)     { return m.height, m.geomErr }
func (m *fakeMonitor) IsPrimary() (bool, error) { return m.primary, nil }

func (m *fakeMonitor) CaptureImage() (*image.RGBA, error) {
	m.captures.Add(1)
	if m.captureErr != nil {
		return nil, m.captureErr
	}
	scale := max(m.scale, 1)
	return solid(m.width*scale, m.height*scale, m.fill), nil
}

type fakeWindow struct {
	id            uint64
	pid           uint32
	app, title    string
	x, y          int
	width, height int
	z             int
	minimized     bool
	focused       bool
	fill          color.RGBA

	idErr, titleErr, geomErr, zErr, captureErr error
}

func (w *fakeWindow) ID() (uint64, error)        { return w.id, w.idErr }
func (w *fakeWindow) PID() (uint32, error)       { return w.pid, nil }
func (w *fakeWindow) AppName() (string, error)   { return w.app, nil }
func (w *fakeWindow) Title() (string, error)     { return w.title, w.titleErr }
func (w *fakeWindow) X() (int, error)            { return w.x, w.geomErr }
func (w *fakeWindow) Y() (int, error)            { return w.y, w.geomErr }
func (w *fakeWindow) Width() (int, error)        { return w.width, w.geomErr }
func (w *fakeWindow) Height() (int, error)       { return w.height, w.geomErr }
func (w *fakeWindow) Z() (int, error)            { return w.z, w.zErr }
func (w *fakeWindow) IsMinimized() (bool, error) { return w.minimized, nil }
func (w *fakeWindow) IsMaximized() (bool, error) { return false, nil }
func (w *fakeWindow) IsFocused() (bool, error)   { return w.focused, nil }

func (w *fakeWindow) CaptureImage() (*image.RGBA, error) {
	if w.captureErr != nil {
		return nil, w.captureErr
	}
	return solid(w.width, w.height, w.fill), nil
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// pixel returns the RGBA value at (x, y) of img.
func pixel(img *Image, x, y int) color.RGBA {
	off := y*img.Width*4 + x*4
	return color.RGBA{img.Pix[off], img.Pix[off+1], img.Pix[off+2], img.Pix[off+3]}
}

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	transparent = color.RGBA{}
)

// dualHead is monitor A 1920x1080 at the origin (primary) and monitor B
// 1080x1920 to its right.
func dualHead() *fakePlatform {
	return &fakePlatform{monitors: []*fakeMonitor{
		newMonitor("A", 0, 0, 1920, 1080, true, red),
		newMonitor("B", 1920, 0, 1080, 1920, false, green),
	}}
}
