package capture

import (
	"errors"
	"testing"
)

func gradient(w, h int) *Image {
	img := NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := (y*w + x) * 4
			img.Pix[off], img.Pix[off+1], img.Pix[off+3] = byte(x), byte(y), 255
		}
	}
	return img
}

func TestCropCopiesRegion(t *testing.T) {
	src := gradient(100, 80)
	out, err := Crop(src, Rect{X: 10, Y: 20, Width: 30, Height: 40})
	if err != nil {
		t.Fatalf("crop: %v", err)
	}
	if out.Width != 30 || out.Height != 40 {
		t.Fatalf("expected 30x40, got %dx%d", out.Width, out.Height)
	}
	if got := pixel(out, 0, 0); got.R != 10 || got.G != 20 {
		t.Fatalf("origin pixel = %v, want source (10,20)", got)
	}
	if got := pixel(out, 29, 39); got.R != 39 || got.G != 59 {
		t.Fatalf("last pixel = %v, want source (39,59)", got)
	}
}

func TestCropFullAndEmpty(t *testing.T) {
	src := gradient(16, 16)

	full, err := Crop(src, Rect{Width: 16, Height: 16})
	if err != nil {
		t.Fatalf("full crop: %v", err)
	}
	if full.Width != 16 || full.Height != 16 {
		t.Fatalf("full crop size %dx%d", full.Width, full.Height)
	}

	empty, err := Crop(src, Rect{X: 16, Y: 16})
	if err != nil {
		t.Fatalf("zero-size crop at the far corner: %v", err)
	}
	if empty.Width != 0 || empty.Height != 0 || len(empty.Pix) != 0 {
		t.Fatalf("expected empty image, got %dx%d", empty.Width, empty.Height)
	}
}

func TestCropBoundsViolation(t *testing.T) {
	src := gradient(100, 100)
	cases := []struct {
		name string
		r    Rect
	}{
		{"negative x", Rect{X: -1, Y: 0, Width: 10, Height: 10}},
		{"negative y", Rect{X: 0, Y: -1, Width: 10, Height: 10}},
		{"overflow right", Rect{X: 95, Y: 0, Width: 10, Height: 10}},
		{"overflow bottom", Rect{X: 0, Y: 91, Width: 10, Height: 10}},
		{"negative width", Rect{X: 0, Y: 0, Width: -5, Height: 10}},
		{"negative height", Rect{X: 0, Y: 0, Width: 5, Height: -10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Crop(src, tc.r)
			if !errors.Is(err, ErrBoundsViolation) {
				t.Fatalf("expected bounds violation, got %v", err)
			}
			if KindOf(err) != KindBoundsViolation {
				t.Fatalf("KindOf = %v", KindOf(err))
			}
		})
	}
}
