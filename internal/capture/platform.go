package capture

import "image"

// Platform is the OS capture capability this package orchestrates.
// Every call must read live OS state; implementations must not cache.
type Platform interface {
	// Monitors enumerates attached displays.
	Monitors() ([]Monitor, error)

	// MonitorFromPoint returns the monitor containing the virtual-desktop
	// point, or a nil Monitor when the point lies outside every display.
	MonitorFromPoint(x, y int) (Monitor, error)

	// Windows enumerates top-level windows, front to back.
	Windows() ([]Window, error)
}

// Monitor is a live display handle. Each accessor may fail independently.
type Monitor interface {
	Name() (string, error)
	X() (int, error)
	Y() (int, error)
	Width() (int, error)
	Height() (int, error)
	IsPrimary() (bool, error)
	CaptureImage() (*image.RGBA, error)
}

// Window is a live top-level window handle. Each accessor may fail
// independently; a closed window typically fails all of them.
type Window interface {
	ID() (uint64, error)
	PID() (uint32, error)
	AppName() (string, error)
	Title() (string, error)
	X() (int, error)
	Y() (int, error)
	Width() (int, error)
	Height() (int, error)
	// Z is the stacking rank, 0 for the frontmost window.
	Z() (int, error)
	IsMinimized() (bool, error)
	IsMaximized() (bool, error)
	IsFocused() (bool, error)
	CaptureImage() (*image.RGBA, error)
}
