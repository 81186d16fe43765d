package capture

// Crop copies exactly r out of img. Rectangles that leave the source in any
// direction fail with KindBoundsViolation; nothing is clamped or padded.
func Crop(img *Image, r Rect) (*Image, error) {
	const op = "crop"

	if r.Width < 0 || r.Height < 0 {
		return nil, newError(KindBoundsViolation, op, nil,
			"negative size %dx%d", r.Width, r.Height)
	}
	if r.X < 0 || r.Y < 0 || r.Right() > img.Width || r.Bottom() > img.Height {
		return nil, newError(KindBoundsViolation, op, nil,
			"rect %dx%d+%d+%d outside %dx%d source",
			r.Width, r.Height, r.X, r.Y, img.Width, img.Height)
	}

	out := NewImage(r.Width, r.Height)
	blit(out, img, -r.X, -r.Y)
	return out, nil
}
