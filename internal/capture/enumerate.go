package capture

import (
	"fmt"
	"sort"
)

// snapshotMonitor reads every field of m. Monitor identity and geometry are
// needed for correct lookups and compositing, so any failure is returned.
func snapshotMonitor(index int, m Monitor) (MonitorInfo, error) {
	info := MonitorInfo{Index: index}
	var err error

	if info.Name, err = m.Name(); err != nil {
		return info, fmt.Errorf("monitor %d name: %w", index, err)
	}
	if info.X, err = m.X(); err != nil {
		return info, fmt.Errorf("monitor %q x: %w", info.Name, err)
	}
	if info.Y, err = m.Y(); err != nil {
		return info, fmt.Errorf("monitor %q y: %w", info.Name, err)
	}
	if info.Width, err = m.Width(); err != nil {
		return info, fmt.Errorf("monitor %q width: %w", info.Name, err)
	}
	if info.Height, err = m.Height(); err != nil {
		return info, fmt.Errorf("monitor %q height: %w", info.Name, err)
	}
	if info.IsPrimary, err = m.IsPrimary(); err != nil {
		return info, fmt.Errorf("monitor %q primary flag: %w", info.Name, err)
	}
	return info, nil
}

// windowSnapshot pairs the metadata copy with the live handle it came from
// and records which correctness-relevant fields were actually read.
type windowSnapshot struct {
	info        WindowInfo
	win         Window
	hasZ        bool
	hasGeometry bool
	hasID       bool
}

// snapshotWindow reads w best-effort: failing fields fall back to "", 0 or
// false and are counted in the returned miss total.
func snapshotWindow(index int, w Window) (windowSnapshot, int) {
	s := windowSnapshot{win: w, hasGeometry: true}
	misses := 0

	str := func(get func() (string, error)) string {
		v, err := get()
		if err != nil {
			misses++
			return ""
		}
		return v
	}
	flag := func(get func() (bool, error)) bool {
		v, err := get()
		if err != nil {
			misses++
			return false
		}
		return v
	}
	geom := func(get func() (int, error)) int {
		v, err := get()
		if err != nil {
			misses++
			s.hasGeometry = false
			return 0
		}
		return v
	}

	if id, err := w.ID(); err == nil {
		s.info.Handle = id
		s.hasID = true
	} else {
		misses++
	}
	if pid, err := w.PID(); err == nil {
		s.info.PID = pid
	} else {
		misses++
	}

	s.info.AppName = str(w.AppName)
	s.info.Title = str(w.Title)
	s.info.X = geom(w.X)
	s.info.Y = geom(w.Y)
	s.info.Width = geom(w.Width)
	s.info.Height = geom(w.Height)
	s.info.IsMinimized = flag(w.IsMinimized)
	s.info.IsMaximized = flag(w.IsMaximized)
	s.info.IsFocused = flag(w.IsFocused)

	if z, err := w.Z(); err == nil {
		s.info.Z = z
		s.hasZ = true
	} else {
		misses++
		s.info.Z = index
	}

	return s, misses
}

// sortFrontToBack orders snapshots by ascending Z, keeping enumeration
// order for equal ranks.
func sortFrontToBack(snaps []windowSnapshot) {
	sort.SliceStable(snaps, func(i, j int) bool {
		return snaps[i].info.Z < snaps[j].info.Z
	})
}
