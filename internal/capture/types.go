package capture

import (
	"image"
)

// MonitorInfo describes a connected display output.
type MonitorInfo struct {
	Index     int    `json:"index" yaml:"index"`
	Name      string `json:"name" yaml:"name"`
	Width     int    `json:"width" yaml:"width"`
	Height    int    `json:"height" yaml:"height"`
	X         int    `json:"x" yaml:"x"`
	Y         int    `json:"y" yaml:"y"`
	IsPrimary bool   `json:"isPrimary" yaml:"isPrimary"`
}

// Bounds returns the monitor rectangle in virtual-desktop coordinates.
func (m MonitorInfo) Bounds() Rect {
	return Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}
}

// WindowInfo describes a top-level window at enumeration time.
// Z is the stacking rank: 0 is the frontmost window.
type WindowInfo struct {
	AppName     string `json:"appName" yaml:"appName"`
	Title       string `json:"title" yaml:"title"`
	PID         uint32 `json:"pid" yaml:"pid"`
	Handle      uint64 `json:"handle" yaml:"handle"`
	X           int    `json:"x" yaml:"x"`
	Y           int    `json:"y" yaml:"y"`
	Width       int    `json:"width" yaml:"width"`
	Height      int    `json:"height" yaml:"height"`
	IsMinimized bool   `json:"isMinimized" yaml:"isMinimized"`
	IsMaximized bool   `json:"isMaximized" yaml:"isMaximized"`
	IsFocused   bool   `json:"isFocused" yaml:"isFocused"`
	Z           int    `json:"z" yaml:"z"`
}

// Bounds returns the window rectangle in virtual-desktop coordinates.
func (w WindowInfo) Bounds() Rect {
	return Rect{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}
}

// Image is a tightly packed RGBA8 pixel buffer, row-major, origin top-left.
// len(Pix) is always Width*Height*4.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// NewImage allocates a zeroed (transparent black) image.
func NewImage(width, height int) *Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}
}

// FromRGBA copies src into a new Image, dropping any stride padding and
// rebasing the origin to (0,0).
func FromRGBA(src *image.RGBA) *Image {
	if src == nil {
		return NewImage(0, 0)
	}
	b := src.Bounds()
	img := NewImage(b.Dx(), b.Dy())
	rowLen := img.Width * 4
	for y := 0; y < img.Height; y++ {
		srcOff := src.PixOffset(b.Min.X, b.Min.Y+y)
		copy(img.Pix[y*rowLen:(y+1)*rowLen], src.Pix[srcOff:srcOff+rowLen])
	}
	return img
}

// RGBA returns an *image.RGBA sharing the receiver's pixel memory.
func (i *Image) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    i.Pix,
		Stride: i.Width * 4,
		Rect:   image.Rect(0, 0, i.Width, i.Height),
	}
}

func (i *Image) stride() int {
	return i.Width * 4
}

// Rect is an axis-aligned rectangle in virtual-desktop pixel units.
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Right is the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom is the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains is the half-open pixel containment test used for monitors.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsInclusive treats all four edges as inside. Window hit testing
// uses it, so a point on a shared edge matches both neighbours and z-order
// picks the winner.
func (r Rect) ContainsInclusive(x, y int) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// Union returns the smallest rectangle covering both r and o. An empty
// operand is ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	minX, minY := min(r.X, o.X), min(r.Y, o.Y)
	maxX, maxY := max(r.Right(), o.Right()), max(r.Bottom(), o.Bottom())
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
