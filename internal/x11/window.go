package x11

import (
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"
)

// CreateOverrideWindow creates a single-screen, override-redirect,
// InputOutput window near (x, y), per §3's WindowRole contract: the window
// manager is asked to ignore it (no frame, no focus policy), which both the
// Menu and the Flash window rely on.
func (c *Conn) CreateOverrideWindow(x, y int16, w, h uint16, events uint32) (xproto.Window, error) {
	wid, err := xproto.NewWindowId(c.conn)
	if err != nil {
		return 0, errors.Wrap(err, "allocate window id")
	}
	// Value-list order must match increasing mask bit: CwBackPixel (0x02),
	// CwOverrideRedirect (0x200), CwEventMask (0x800).
	mask := uint32(xproto.CwBackPixel | xproto.CwOverrideRedirect | xproto.CwEventMask)
	values := []uint32{c.screen.BlackPixel, 1, events}
	err = xproto.CreateWindowChecked(
		c.conn,
		c.screen.RootDepth,
		wid,
		c.root,
		x, y, w, h,
		0,
		xproto.WindowClassInputOutput,
		c.screen.RootVisual,
		mask,
		values,
	).Check()
	if err != nil {
		return 0, errors.Wrap(err, "create window")
	}
	return wid, nil
}

// SetWindowName sets WM_NAME, used both for window-manager hints and for
// the singleton sentinel check of §4.6.
func (c *Conn) SetWindowName(win xproto.Window, name string) error {
	atom, err := c.Atom(AtomNameWMName)
	if err != nil {
		return err
	}
	return xproto.ChangePropertyChecked(
		c.conn, xproto.PropModeReplace, win, atom, xproto.AtomString, 8,
		uint32(len(name)), []byte(name),
	).Check()
}

// MapWindow maps (shows) a window.
func (c *Conn) MapWindow(win xproto.Window) error {
	return xproto.MapWindowChecked(c.conn, win).Check()
}

// UnmapWindow unmaps (hides) a window.
func (c *Conn) UnmapWindow(win xproto.Window) error {
	return xproto.UnmapWindowChecked(c.conn, win).Check()
}

// DestroyWindow destroys a window; called during shutdown (§5 resource
// lifecycle).
func (c *Conn) DestroyWindow(win xproto.Window) error {
	return xproto.DestroyWindowChecked(c.conn, win).Check()
}

// MoveWindow repositions win near the pointer, which is how both the Menu
// and Flash windows are positioned (§3: "positioned near the pointer").
func (c *Conn) MoveWindow(win xproto.Window, x, y int16) error {
	return xproto.ConfigureWindowChecked(
		c.conn, win,
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{uint32(int32(x)), uint32(int32(y))},
	).Check()
}

// ResizeWindow changes win's dimensions.
func (c *Conn) ResizeWindow(win xproto.Window, w, h uint16) error {
	return xproto.ConfigureWindowChecked(
		c.conn, win,
		xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(w), uint32(h)},
	).Check()
}

// Flush forces buffered requests to the server. Used after synchronous
// drawing so the flash window's "draw, flush, sleep, unmap" sequence (§4.3)
// is actually visible to the user before the process blocks.
func (c *Conn) Flush() {
	c.conn.Sync()
}

// QueryPointer returns the current pointer location in root coordinates.
func (c *Conn) QueryPointer() (Point, error) {
	reply, err := xproto.QueryPointer(c.conn, c.root).Reply()
	if err != nil {
		return Point{}, err
	}
	return Point{X: reply.RootX, Y: reply.RootY}, nil
}

// WarpPointer moves the pointer to an absolute root-window location, used
// by click-mode's focus/pointer choreography (§4.4).
func (c *Conn) WarpPointer(p Point) error {
	return xproto.WarpPointerChecked(
		c.conn, 0, c.root, 0, 0, 0, 0, p.X, p.Y,
	).Check()
}

// InputFocus returns the window that currently has input focus.
func (c *Conn) InputFocus() (xproto.Window, error) {
	reply, err := xproto.GetInputFocus(c.conn).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Focus, nil
}

// SetInputFocus restores focus to win, used when click mode unmaps the menu.
func (c *Conn) SetInputFocus(win xproto.Window, t xproto.Timestamp) error {
	return xproto.SetInputFocusChecked(
		c.conn, xproto.InputFocusParent, win, t,
	).Check()
}

// RootChildren returns the immediate children of the root window, used by
// the singleton sentinel scan (§4.6).
func (c *Conn) RootChildren() ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(c.conn, c.root).Reply()
	if err != nil {
		return nil, err
	}
	return tree.Children, nil
}

// WindowName reads WM_NAME for win, returning "" if unset or unreadable.
func (c *Conn) WindowName(win xproto.Window) string {
	atom, err := c.Atom(AtomNameWMName)
	if err != nil {
		return ""
	}
	reply, err := xproto.GetProperty(c.conn, false, win, atom, xproto.AtomString, 0, 1024).Reply()
	if err != nil || reply.Format == 0 {
		return ""
	}
	return string(reply.Value)
}
