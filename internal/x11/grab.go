package x11

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgb/xtest"
	"github.com/pkg/errors"

	"multiselect/internal/errs"
)

// GrabKey registers win as the recipient of key, system-wide, so the
// hotkey works no matter which window has focus (§4.7's daemon hotkey).
func (c *Conn) GrabKey(win xproto.Window, key Key) error {
	err := xproto.GrabKeyChecked(
		c.conn, true, win, uint16(key.Mod), key.Code,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
	).Check()
	if err != nil {
		return errors.Wrap(errs.ErrGrabFailed, err.Error())
	}
	return nil
}

// UngrabKey releases a previous GrabKey.
func (c *Conn) UngrabKey(win xproto.Window, key Key) error {
	return xproto.UngrabKeyChecked(c.conn, key.Code, win, uint16(key.Mod)).Check()
}

// GrabPointer actively grabs the pointer to win, used while the menu is
// mapped so outside clicks are still visible to us.
func (c *Conn) GrabPointer(win xproto.Window) error {
	_, err := xproto.GrabPointer(
		c.conn, false, win,
		uint16(maskButton),
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		0, 0, xproto.TimeCurrentTime,
	).Reply()
	if err != nil {
		return errors.Wrap(errs.ErrGrabFailed, err.Error())
	}
	return nil
}

// UngrabPointer releases a previous GrabPointer.
func (c *Conn) UngrabPointer() error {
	return xproto.UngrabPointerChecked(c.conn, xproto.TimeCurrentTime).Check()
}

// initXTest is called lazily so a server without the XTEST extension
// degrades gracefully rather than panicking at startup (§4.4's Non-goal
// list notes click mode is best-effort on such servers).
func (c *Conn) initXTest() error {
	if c.xtestReady {
		return nil
	}
	if err := xtest.Init(c.conn); err != nil {
		return errors.Wrap(errs.ErrGrabFailed, "XTEST unavailable: "+err.Error())
	}
	c.xtestReady = true
	return nil
}

// FakeMiddleClick synthesizes a middle mouse button press-and-release at
// the pointer's current location via the XTEST extension, provoking
// whatever application is under the pointer into issuing a fresh
// SelectionRequest against our new ownership (click mode, §4.4). Returns
// errs.ErrGrabFailed if XTEST is not present; callers should treat that as
// a soft degrade, not a fatal error.
func (c *Conn) FakeMiddleClick() error {
	if err := c.initXTest(); err != nil {
		return err
	}
	const buttonMiddle = 2
	if err := xtest.FakeInputChecked(
		c.conn, xproto.ButtonPress, buttonMiddle, xproto.TimeCurrentTime, c.root, 0, 0, 0,
	).Check(); err != nil {
		return errors.Wrap(errs.ErrGrabFailed, err.Error())
	}
	if err := xtest.FakeInputChecked(
		c.conn, xproto.ButtonRelease, buttonMiddle, xproto.TimeCurrentTime, c.root, 0, 0, 0,
	).Check(); err != nil {
		return errors.Wrap(errs.ErrGrabFailed, err.Error())
	}
	return nil
}
