package tools

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
)

// Image formats
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

// NormalizeFormat lowercases name and folds "jpg" into "jpeg".
func NormalizeFormat(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FormatPNG:
		return FormatPNG, nil
	case FormatJPEG, "jpg":
		return FormatJPEG, nil
	default:
		return "", fmt.Errorf("unsupported image format %q (want png or jpeg)", name)
	}
}

// EncodeJPEG encodes an image as JPEG with the given quality (1-100)
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	quality = max(1, min(quality, 100))

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodePNG encodes an image as PNG (lossless)
func EncodePNG(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode encodes img in format. quality is ignored for PNG.
func Encode(img image.Image, format string, quality int) ([]byte, error) {
	format, err := NormalizeFormat(format)
	if err != nil {
		return nil, err
	}
	if format == FormatJPEG {
		return EncodeJPEG(img, quality)
	}
	return EncodePNG(img)
}
