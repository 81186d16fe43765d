//go:build linux

package platform

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
)

// EWMH properties. _NET_CLIENT_LIST_STACKING lists managed windows bottom
// to top; _NET_CLIENT_LIST has no defined order.
const (
	atomClientListStacking = "_NET_CLIENT_LIST_STACKING"
	atomClientList         = "_NET_CLIENT_LIST"
	atomActiveWindow       = "_NET_ACTIVE_WINDOW"
	atomWMName             = "_NET_WM_NAME"
	atomWMPID              = "_NET_WM_PID"
	atomWMState            = "_NET_WM_STATE"
	atomStateHidden        = "_NET_WM_STATE_HIDDEN"
	atomStateMaxVert       = "_NET_WM_STATE_MAXIMIZED_VERT"
	atomStateMaxHorz       = "_NET_WM_STATE_MAXIMIZED_HORZ"
	atomUTF8String         = "UTF8_STRING"
)

var errNoStacking = errors.New("window manager does not publish a stacking order")

type x11Session struct {
	conn  *xgb.Conn
	root  xproto.Window
	atoms map[string]xproto.Atom
}

func openX11() (*x11Session, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	return &x11Session{
		conn:  conn,
		root:  xproto.Setup(conn).DefaultScreen(conn).Root,
		atoms: make(map[string]xproto.Atom),
	}, nil
}

func (s *x11Session) close() { s.conn.Close() }

// atom returns the interned atom, or xproto.AtomNone if the server has never
// seen the name.
func (s *x11Session) atom(name string) xproto.Atom {
	if a, ok := s.atoms[name]; ok {
		return a
	}
	reply, err := xproto.InternAtom(s.conn, true, uint16(len(name)), name).Reply()
	a := xproto.Atom(xproto.AtomNone)
	if err == nil {
		a = reply.Atom
	}
	s.atoms[name] = a
	return a
}

func (s *x11Session) property(w xproto.Window, name string, typ xproto.Atom) (*xproto.GetPropertyReply, error) {
	prop := s.atom(name)
	if prop == xproto.AtomNone {
		return nil, fmt.Errorf("atom %s not interned", name)
	}
	return s.rawProperty(w, prop, typ)
}

func (s *x11Session) rawProperty(w xproto.Window, prop, typ xproto.Atom) (*xproto.GetPropertyReply, error) {
	reply, err := xproto.GetProperty(s.conn, false, w, prop, typ, 0, 1<<16).Reply()
	if err != nil {
		return nil, err
	}
	if reply.ValueLen == 0 {
		return nil, fmt.Errorf("property %d empty", prop)
	}
	return reply, nil
}

func (s *x11Session) cardinals(w xproto.Window, name string, typ xproto.Atom) ([]uint32, error) {
	reply, err := s.property(w, name, typ)
	if err != nil {
		return nil, err
	}
	if reply.Format != 32 {
		return nil, fmt.Errorf("property %s has format %d", name, reply.Format)
	}
	out := make([]uint32, reply.ValueLen)
	for i := range out {
		out[i] = xgb.Get32(reply.Value[i*4:])
	}
	return out, nil
}

// clientList returns client windows front to back and whether that order is
// the real stacking order.
func (s *x11Session) clientList() ([]xproto.Window, bool, error) {
	stacked := true
	ids, err := s.cardinals(s.root, atomClientListStacking, xproto.AtomWindow)
	if err != nil {
		stacked = false
		ids, err = s.cardinals(s.root, atomClientList, xproto.AtomWindow)
		if err != nil {
			return nil, false, fmt.Errorf("read client list: %w", err)
		}
	}

	out := make([]xproto.Window, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = xproto.Window(id)
	}
	return out, stacked, nil
}

func (s *x11Session) title(w xproto.Window) (string, error) {
	if reply, err := s.property(w, atomWMName, s.atom(atomUTF8String)); err == nil {
		return string(reply.Value), nil
	}
	reply, err := s.rawProperty(w, xproto.AtomWmName, xproto.AtomAny)
	if err != nil {
		return "", err
	}
	return string(reply.Value), nil
}

// className reads the class half of WM_CLASS ("instance\x00class\x00").
func (s *x11Session) className(w xproto.Window) (string, error) {
	reply, err := s.rawProperty(w, xproto.AtomWmClass, xproto.AtomString)
	if err != nil {
		return "", err
	}
	parts := bytes.Split(bytes.TrimRight(reply.Value, "\x00"), []byte{0})
	return string(parts[len(parts)-1]), nil
}

func (s *x11Session) pid(w xproto.Window) (uint32, error) {
	vals, err := s.cardinals(w, atomWMPID, xproto.AtomCardinal)
	if err != nil {
		return 0, err
	}
	return vals[0], nil
}

// bounds returns the window rectangle in root coordinates.
func (s *x11Session) bounds(w xproto.Window) (image.Rectangle, error) {
	geom, err := xproto.GetGeometry(s.conn, xproto.Drawable(w)).Reply()
	if err != nil {
		return image.Rectangle{}, err
	}
	pos, err := xproto.TranslateCoordinates(s.conn, w, s.root, 0, 0).Reply()
	if err != nil {
		return image.Rectangle{}, err
	}
	x, y := int(pos.DstX), int(pos.DstY)
	return image.Rect(x, y, x+int(geom.Width), y+int(geom.Height)), nil
}

// state reports (minimized, maximized). A window without _NET_WM_STATE is
// in neither state.
func (s *x11Session) state(w xproto.Window) (bool, bool, error) {
	if s.atom(atomWMState) == xproto.AtomNone {
		return false, false, nil
	}
	vals, err := s.cardinals(w, atomWMState, xproto.AtomAtom)
	if err != nil {
		return false, false, nil
	}

	has := make(map[xproto.Atom]bool, len(vals))
	for _, v := range vals {
		has[xproto.Atom(v)] = true
	}
	hidden := has[s.atom(atomStateHidden)]
	maxVert, maxHorz := has[s.atom(atomStateMaxVert)], has[s.atom(atomStateMaxHorz)]
	return hidden, maxVert && maxHorz, nil
}

func (s *x11Session) active() (xproto.Window, error) {
	vals, err := s.cardinals(s.root, atomActiveWindow, xproto.AtomWindow)
	if err != nil {
		return 0, err
	}
	return xproto.Window(vals[0]), nil
}

func listWindows() ([]windowRecord, error) {
	s, err := openX11()
	if err != nil {
		return nil, err
	}
	defer s.close()

	clients, stacked, err := s.clientList()
	if err != nil {
		return nil, err
	}
	if !stacked {
		log.Warn("no EWMH stacking order, window z-order unavailable")
	}

	active, activeErr := s.active()

	records := make([]windowRecord, 0, len(clients))
	for rank, w := range clients {
		rec := windowRecord{id: uint64(w), z: rank}
		if !stacked {
			rec.zErr = errNoStacking
		}

		rec.title, rec.titleErr = s.title(w)
		rec.pid, rec.pidErr = s.pid(w)
		rec.appName, rec.appErr = s.className(w)
		if rec.appErr != nil && rec.pidErr == nil {
			rec.appName, rec.appErr = processName(rec.pid)
		}
		rec.bounds, rec.boundsErr = s.bounds(w)
		rec.minimized, rec.maximized, rec.stateErr = s.state(w)
		rec.focused, rec.focusedErr = activeErr == nil && active == w, activeErr

		rec.locate = x11Locator(w)
		records = append(records, rec)
	}

	log.Debug("x11 windows enumerated", "windows", len(records), "stacked", stacked)
	return records, nil
}

// x11Locator re-reads geometry and state on a fresh connection so capture
// sees where the window is now, or fails if it has been destroyed.
func x11Locator(w xproto.Window) func() (image.Rectangle, bool, error) {
	return func() (image.Rectangle, bool, error) {
		s, err := openX11()
		if err != nil {
			return image.Rectangle{}, false, err
		}
		defer s.close()

		rect, err := s.bounds(w)
		if err != nil {
			return image.Rectangle{}, false, err
		}
		minimized, _, _ := s.state(w)
		return rect, minimized, nil
	}
}

// randrSession opens X11 with the RandR extension initialised.
func randrSession() (*x11Session, *randr.GetScreenResourcesCurrentReply, error) {
	s, err := openX11()
	if err != nil {
		return nil, nil, err
	}
	if err := randr.Init(s.conn); err != nil {
		s.close()
		return nil, nil, fmt.Errorf("randr: %w", err)
	}
	res, err := randr.GetScreenResourcesCurrent(s.conn, s.root).Reply()
	if err != nil {
		s.close()
		return nil, nil, fmt.Errorf("randr screen resources: %w", err)
	}
	return s, res, nil
}

// outputRect returns the CRTC rectangle an output is shown on, and its name.
func (s *x11Session) outputRect(output randr.Output, ts xproto.Timestamp) (image.Rectangle, string, bool) {
	info, err := randr.GetOutputInfo(s.conn, output, ts).Reply()
	if err != nil || info.Crtc == 0 {
		return image.Rectangle{}, "", false
	}
	crtc, err := randr.GetCrtcInfo(s.conn, info.Crtc, ts).Reply()
	if err != nil {
		return image.Rectangle{}, "", false
	}
	r := image.Rect(int(crtc.X), int(crtc.Y), int(crtc.X)+int(crtc.Width), int(crtc.Y)+int(crtc.Height))
	return r, string(info.Name), true
}

// displayNames maps screenshot display indices to RandR output names
// (HDMI-1, eDP-1 ...) by matching CRTC rectangles.
func displayNames(bounds []image.Rectangle) []string {
	names := make([]string, len(bounds))

	s, res, err := randrSession()
	if err != nil {
		log.Debug("randr unavailable, using generic display names", "error", err)
		return names
	}
	defer s.close()

	for _, output := range res.Outputs {
		r, name, ok := s.outputRect(output, res.ConfigTimestamp)
		if !ok {
			continue
		}
		for i, b := range bounds {
			if names[i] == "" && b == r {
				names[i] = name
				break
			}
		}
	}
	return names
}

// primaryIndex returns the display showing the RandR primary output. Without
// RandR, or when no primary output is set, the display at the origin is used.
func primaryIndex(bounds []image.Rectangle) int {
	s, res, err := randrSession()
	if err != nil {
		return originIndex(bounds)
	}
	defer s.close()

	primary, err := randr.GetOutputPrimary(s.conn, s.root).Reply()
	if err != nil || primary.Output == 0 {
		return originIndex(bounds)
	}
	r, _, ok := s.outputRect(primary.Output, res.ConfigTimestamp)
	if !ok {
		return originIndex(bounds)
	}
	if i := matchRect(bounds, r); i >= 0 {
		return i
	}
	return originIndex(bounds)
}
