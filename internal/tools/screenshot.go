package tools

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/breeze-rmm/screencap/internal/capture"
)

// NewScreenshot encodes img and describes it. source names what was
// captured ("monitor A", "window 0x1c00007", ...). The encoded bytes are
// returned as well so raw output can skip base64.
func NewScreenshot(img *capture.Image, source, format string, quality int) (ScreenshotResponse, []byte, error) {
	format, err := NormalizeFormat(format)
	if err != nil {
		return ScreenshotResponse{}, nil, err
	}
	if img.Width == 0 || img.Height == 0 {
		return ScreenshotResponse{}, nil, fmt.Errorf("cannot encode empty %dx%d image", img.Width, img.Height)
	}

	data, err := Encode(img.RGBA(), format, quality)
	if err != nil {
		return ScreenshotResponse{}, nil, fmt.Errorf("failed to encode screenshot: %w", err)
	}

	resp := ScreenshotResponse{
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		Width:       img.Width,
		Height:      img.Height,
		Format:      format,
		SizeBytes:   len(data),
		Source:      source,
		CapturedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	return resp, data, nil
}
