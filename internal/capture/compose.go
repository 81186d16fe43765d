package capture

import "image"

// Placement positions a captured image in virtual-desktop coordinates.
type Placement struct {
	Origin image.Point
	Image  *Image
}

func (p Placement) rect() Rect {
	if p.Image == nil {
		return Rect{X: p.Origin.X, Y: p.Origin.Y}
	}
	return Rect{X: p.Origin.X, Y: p.Origin.Y, Width: p.Image.Width, Height: p.Image.Height}
}

// CanvasBounds is the bounding box of all placements. Origins left of or
// above (0,0) extend the box instead of being clipped.
func CanvasBounds(placements []Placement) Rect {
	var bounds Rect
	for _, p := range placements {
		bounds = bounds.Union(p.rect())
	}
	return bounds
}

// Composite draws every placement onto one zero-initialised canvas covering
// CanvasBounds. Pixels outside all placements stay transparent black.
// Overlaps resolve last-write-wins in slice order.
func Composite(placements []Placement) *Image {
	bounds := CanvasBounds(placements)
	canvas := NewImage(bounds.Width, bounds.Height)

	for _, p := range placements {
		if p.Image == nil {
			continue
		}
		blit(canvas, p.Image, p.Origin.X-bounds.X, p.Origin.Y-bounds.Y)
	}
	return canvas
}

// blit copies src into dst at (dx, dy), clipping to dst.
func blit(dst, src *Image, dx, dy int) {
	x0, y0 := max(dx, 0), max(dy, 0)
	x1, y1 := min(dx+src.Width, dst.Width), min(dy+src.Height, dst.Height)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	rowBytes := (x1 - x0) * 4
	for y := y0; y < y1; y++ {
		srcOff := (y-dy)*src.stride() + (x0-dx)*4
		dstOff := y*dst.stride() + x0*4
		copy(dst.Pix[dstOff:dstOff+rowBytes], src.Pix[srcOff:srcOff+rowBytes])
	}
}
