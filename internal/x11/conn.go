package x11

import (
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"

	"multiselect/internal/errs"
)

// Conn wraps a connection to the X server, exposing only the primitives
// ProtocolEngine and InteractionController need: drawing/selection/grab
// calls out, events in. It is a generalization of the teacher's
// internal/x11.Client for the selection-owner domain.
type Conn struct {
	conn   *xgb.Conn
	root   xproto.Window
	screen *xproto.ScreenInfo

	atomsMu sync.RWMutex
	atoms   map[string]xproto.Atom

	evtCh chan Event
	errCh chan error

	timeReq chan xproto.Atom
	timeCh  chan xproto.Timestamp

	xtestReady bool
}

// NewConn opens a connection to the X server named by the DISPLAY
// environment variable (or displayName, if non-empty).
func NewConn(displayName string) (*Conn, error) {
	conn, err := xgb.NewConnDisplay(displayName)
	if err != nil {
		return nil, errors.Wrap(errs.ErrDisplayOpen, err.Error())
	}
	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	c := &Conn{
		conn:    conn,
		root:    screen.Root,
		screen:  screen,
		atoms:   make(map[string]xproto.Atom),
		evtCh:   make(chan Event, 64),
		errCh:   make(chan error, 8),
		timeReq: make(chan xproto.Atom, 1),
		timeCh:  make(chan xproto.Timestamp, 1),
	}
	// Now's time-for-now trick appends to a root property; the resulting
	// PropertyNotify is only delivered if PropertyChange is selected on root.
	if err := xproto.ChangeWindowAttributesChecked(
		conn, c.root, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange},
	).Check(); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "select PropertyChange on root")
	}
	return c, nil
}

// Close shuts down the X connection. Safe to call once, at process exit, as
// §5's resource lifecycle requires.
func (c *Conn) Close() {
	c.conn.Close()
}

// Root returns the root window of the default screen.
func (c *Conn) Root() xproto.Window {
	return c.root
}

// ScreenSize returns the dimensions of the default screen.
func (c *Conn) ScreenSize() (uint16, uint16) {
	return c.screen.WidthInPixels, c.screen.HeightInPixels
}

// Atom interns (and caches) the X atom for name.
func (c *Conn) Atom(name string) (xproto.Atom, error) {
	c.atomsMu.RLock()
	if a, ok := c.atoms[name]; ok {
		c.atomsMu.RUnlock()
		return a, nil
	}
	c.atomsMu.RUnlock()

	reply, err := xproto.InternAtom(c.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, errors.Wrapf(err, "intern atom %q", name)
	}
	c.atomsMu.Lock()
	c.atoms[name] = reply.Atom
	c.atomsMu.Unlock()
	return reply.Atom, nil
}

// AtomName reverses Atom, asking the server for the textual name. Used only
// for logging/diagnostics.
func (c *Conn) AtomName(atom xproto.Atom) (string, error) {
	if atom == 0 {
		return "None", nil
	}
	reply, err := xproto.GetAtomName(c.conn, atom).Reply()
	if err != nil {
		return "", err
	}
	return reply.Name, nil
}
