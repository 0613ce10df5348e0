package x11

import (
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"
)

// Start launches the background goroutine that translates raw X events
// into x11.Event values on the channel returned by Events. Mirrors the
// teacher's internal/x11 poll()/Poll() split: a single goroutine owns
// WaitForEvent so the rest of the program never touches the wire directly.
//
// Now also depends on this goroutine to recognize its own PropertyNotify,
// so Start must be called once, before the first call to Now.
func (c *Conn) Start() {
	go c.poll()
}

// Events returns the channel the poll goroutine delivers translated events
// on. The channel is never closed; a closed connection is reported on
// Errors instead.
func (c *Conn) Events() <-chan Event {
	return c.evtCh
}

// Errors returns the channel the poll goroutine reports unrecoverable wire
// errors on (§7's fatal-path group surfaces here).
func (c *Conn) Errors() <-chan error {
	return c.errCh
}

func (c *Conn) poll() {
	var expectedTimeAtom xproto.Atom
	for {
		ev, err := c.conn.WaitForEvent()
		if err != nil {
			c.errCh <- err
			return
		}
		if ev == nil {
			// xgb reports a closed connection as a nil event with a nil error.
			c.errCh <- errors.New("X connection closed")
			return
		}
		select {
		case a := <-c.timeReq:
			expectedTimeAtom = a
		default:
		}
		if pn, ok := ev.(xproto.PropertyNotifyEvent); ok && expectedTimeAtom != 0 &&
			pn.Atom == expectedTimeAtom && pn.Window == c.root {
			c.timeCh <- pn.Time
			expectedTimeAtom = 0
			continue
		}
		if translated, ok := c.translate(ev); ok {
			c.evtCh <- translated
		}
	}
}

func (c *Conn) translate(ev xgbEvent) (Event, bool) {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		return KeyEvent{
			Key:       Key{Code: e.Detail, Mod: Keymod(e.State)},
			State:     KeyDown,
			Timestamp: e.Time,
		}, true
	case xproto.KeyReleaseEvent:
		return KeyEvent{
			Key:       Key{Code: e.Detail, Mod: Keymod(e.State)},
			State:     KeyUp,
			Timestamp: e.Time,
		}, true
	case xproto.ButtonPressEvent:
		return ButtonEvent{
			Button:    e.Detail,
			Mod:       Keymod(e.State),
			Point:     Point{X: e.EventX, Y: e.EventY},
			Window:    e.Event,
			Timestamp: e.Time,
		}, true
	case xproto.ExposeEvent:
		return ExposeEvent{Window: e.Window, Timestamp: 0}, true
	case xproto.SelectionClearEvent:
		return SelectionClearEvent{Selection: e.Selection, Timestamp: e.Time}, true
	case xproto.SelectionRequestEvent:
		return SelectionRequestEvent{
			Owner:     e.Owner,
			Requestor: e.Requestor,
			Selection: e.Selection,
			Target:    e.Target,
			Property:  e.Property,
			Timestamp: e.Time,
		}, true
	case xproto.SelectionNotifyEvent:
		return SelectionNotifyEvent{
			Requestor: e.Requestor,
			Selection: e.Selection,
			Target:    e.Target,
			Property:  e.Property,
			Timestamp: e.Time,
		}, true
	default:
		return nil, false
	}
}

// xgbEvent is the minimal interface xgb.Event satisfies; declared locally
// so translate can accept the library's event union without importing xgb
// itself into this file's signature.
type xgbEvent interface{}
