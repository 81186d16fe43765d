//go:build !linux && !windows

package platform

import "image"

func listWindows() ([]windowRecord, error) {
	return nil, ErrWindowsNotSupported
}

func displayNames(bounds []image.Rectangle) []string {
	return make([]string, len(bounds))
}

// primaryIndex returns the display at the origin; macOS places the main
// display there.
func primaryIndex(bounds []image.Rectangle) int {
	return originIndex(bounds)
}
