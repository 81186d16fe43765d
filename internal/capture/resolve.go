package capture

import (
	"sort"
	"strings"
)

// TopmostAt returns the frontmost window whose bounds contain (x, y) using
// the inclusive edge test. windows need not be sorted; ties on Z keep slice
// order.
func TopmostAt(windows []WindowInfo, x, y int) (WindowInfo, bool) {
	order := make([]int, len(windows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return windows[order[a]].Z < windows[order[b]].Z
	})

	for _, i := range order {
		if windows[i].Bounds().ContainsInclusive(x, y) {
			return windows[i], true
		}
	}
	return WindowInfo{}, false
}

// MonitorNamed returns the single monitor called name.
func MonitorNamed(monitors []MonitorInfo, name string) (MonitorInfo, error) {
	const op = "monitor_by_name"

	var found []MonitorInfo
	for _, m := range monitors {
		if m.Name == name {
			found = append(found, m)
		}
	}
	switch len(found) {
	case 0:
		return MonitorInfo{}, newError(KindNotFound, op, nil, "no monitor named %q", name)
	case 1:
		return found[0], nil
	default:
		return MonitorInfo{}, newError(KindAmbiguous, op, nil, "%d monitors named %q", len(found), name)
	}
}

// Primary returns the single monitor flagged primary.
func Primary(monitors []MonitorInfo) (MonitorInfo, error) {
	const op = "primary_monitor"

	var found []MonitorInfo
	for _, m := range monitors {
		if m.IsPrimary {
			found = append(found, m)
		}
	}
	switch len(found) {
	case 0:
		return MonitorInfo{}, newError(KindNotFound, op, nil, "no monitor is flagged primary")
	case 1:
		return found[0], nil
	default:
		names := make([]string, len(found))
		for i, m := range found {
			names[i] = m.Name
		}
		return MonitorInfo{}, newError(KindAmbiguous, op, nil,
			"%d monitors flagged primary: %s", len(found), strings.Join(names, ", "))
	}
}

// WorkingArea aggregates all monitors into a pseudo-monitor: summed width,
// tallest height, comma-joined names. It sizes layouts; it is not a display
// and its geometry does not describe where pixels live.
func WorkingArea(monitors []MonitorInfo) MonitorInfo {
	area := MonitorInfo{Index: -1}
	names := make([]string, 0, len(monitors))
	for _, m := range monitors {
		area.Width += m.Width
		area.Height = max(area.Height, m.Height)
		names = append(names, m.Name)
	}
	area.Name = strings.Join(names, ", ")
	return area
}

// VirtualBounds is the union of all monitor rectangles.
func VirtualBounds(monitors []MonitorInfo) Rect {
	var r Rect
	for _, m := range monitors {
		r = r.Union(m.Bounds())
	}
	return r
}
