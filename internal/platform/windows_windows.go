//go:build windows

package platform

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                   = windows.NewLazySystemDLL("user32.dll")
	procGetWindowRect        = user32.NewProc("GetWindowRect")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procIsIconic             = user32.NewProc("IsIconic")
	procIsZoomed             = user32.NewProc("IsZoomed")
	procEnumDisplayMonitors  = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW      = user32.NewProc("GetMonitorInfoW")
)

type rect32 struct {
	Left, Top, Right, Bottom int32
}

// monitorInfoExW mirrors MONITORINFOEXW.
type monitorInfoExW struct {
	Size    uint32
	Monitor rect32
	Work    rect32
	Flags   uint32
	Device  [32]uint16
}

// EnumWindows walks top-level windows in z-order, topmost first. Callbacks
// created with NewCallback are never freed, so one is shared and guarded.
var (
	enumMu      sync.Mutex
	enumHandles []windows.HWND
	enumProc    = windows.NewCallback(func(hwnd windows.HWND, _ uintptr) uintptr {
		if windows.IsWindowVisible(hwnd) {
			enumHandles = append(enumHandles, hwnd)
		}
		return 1
	})
)

func visibleWindows() ([]windows.HWND, error) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumHandles = nil
	if err := windows.EnumWindows(enumProc, nil); err != nil {
		return nil, fmt.Errorf("EnumWindows: %w", err)
	}
	out := enumHandles
	enumHandles = nil
	return out, nil
}

func windowRect(hwnd windows.HWND) (image.Rectangle, error) {
	var r rect32
	ret, _, err := procGetWindowRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return image.Rectangle{}, fmt.Errorf("GetWindowRect: %w", err)
	}
	return image.Rect(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom)), nil
}

func windowTitle(hwnd windows.HWND) (string, error) {
	n, _, _ := procGetWindowTextLengthW.Call(uintptr(hwnd))
	if n == 0 {
		return "", nil
	}
	buf := make([]uint16, n+1)
	if _, err := windows.GetWindowText(hwnd, &buf[0], int32(len(buf))); err != nil {
		return "", err
	}
	return windows.UTF16ToString(buf), nil
}

func windowPID(hwnd windows.HWND) (uint32, error) {
	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(hwnd, &pid); err != nil {
		return 0, err
	}
	if pid == 0 {
		return 0, errors.New("no owning process")
	}
	return pid, nil
}

func isIconic(hwnd windows.HWND) bool {
	ret, _, _ := procIsIconic.Call(uintptr(hwnd))
	return ret != 0
}

func isZoomed(hwnd windows.HWND) bool {
	ret, _, _ := procIsZoomed.Call(uintptr(hwnd))
	return ret != 0
}

func listWindows() ([]windowRecord, error) {
	handles, err := visibleWindows()
	if err != nil {
		return nil, err
	}
	foreground := windows.GetForegroundWindow()

	records := make([]windowRecord, 0, len(handles))
	for rank, hwnd := range handles {
		rec := windowRecord{
			id:        uint64(hwnd),
			z:         rank,
			minimized: isIconic(hwnd),
			maximized: isZoomed(hwnd),
			focused:   hwnd == foreground,
		}
		rec.title, rec.titleErr = windowTitle(hwnd)
		rec.pid, rec.pidErr = windowPID(hwnd)
		if rec.pidErr == nil {
			rec.appName, rec.appErr = processName(rec.pid)
		} else {
			rec.appErr = rec.pidErr
		}
		rec.bounds, rec.boundsErr = windowRect(hwnd)
		rec.locate = win32Locator(hwnd)
		records = append(records, rec)
	}

	log.Debug("win32 windows enumerated", "windows", len(records))
	return records, nil
}

func win32Locator(hwnd windows.HWND) func() (image.Rectangle, bool, error) {
	return func() (image.Rectangle, bool, error) {
		if !windows.IsWindow(hwnd) {
			return image.Rectangle{}, false, errors.New("window destroyed")
		}
		r, err := windowRect(hwnd)
		if err != nil {
			return image.Rectangle{}, false, err
		}
		return r, isIconic(hwnd), nil
	}
}

type gdiMonitor struct {
	rect image.Rectangle
	name string
}

var (
	monitorMu   sync.Mutex
	monitorList []gdiMonitor
	monitorProc = windows.NewCallback(func(hMonitor, _ uintptr, _ uintptr, _ uintptr) uintptr {
		var mi monitorInfoExW
		mi.Size = uint32(unsafe.Sizeof(mi))
		if ret, _, _ := procGetMonitorInfoW.Call(hMonitor, uintptr(unsafe.Pointer(&mi))); ret != 0 {
			monitorList = append(monitorList, gdiMonitor{
				rect: image.Rect(int(mi.Monitor.Left), int(mi.Monitor.Top), int(mi.Monitor.Right), int(mi.Monitor.Bottom)),
				name: windows.UTF16ToString(mi.Device[:]),
			})
		}
		return 1
	})
)

// displayNames maps screenshot display indices to GDI device names
// (\\.\DISPLAY1 ...) by matching monitor rectangles.
func displayNames(bounds []image.Rectangle) []string {
	names := make([]string, len(bounds))

	monitorMu.Lock()
	monitorList = nil
	ret, _, err := procEnumDisplayMonitors.Call(0, 0, monitorProc, 0)
	mons := monitorList
	monitorList = nil
	monitorMu.Unlock()

	if ret == 0 {
		log.Debug("EnumDisplayMonitors failed, using generic display names", "error", err)
		return names
	}

	for i, b := range bounds {
		for _, m := range mons {
			if m.rect == b {
				names[i] = m.name
				break
			}
		}
	}
	return names
}

// primaryIndex returns the display at the virtual-desktop origin; Windows
// always anchors the primary monitor there.
func primaryIndex(bounds []image.Rectangle) int {
	return originIndex(bounds)
}
