package x11

import "github.com/jezek/xgb/xproto"

// Keymod represents a bitmask of keyboard modifiers, matching the X11 KeyButMask
// encoding (xproto.ModMask*).
type Keymod uint16

// Key modifiers.
const (
	ModShift Keymod = 1 << 0
	ModLock  Keymod = 1 << 1
	ModCtrl  Keymod = 1 << 2
	Mod1     Keymod = 1 << 3
	Mod2     Keymod = 1 << 4
	Mod3     Keymod = 1 << 5
	Mod4     Keymod = 1 << 6
	Mod5     Keymod = 1 << 7
	ModNone  Keymod = 0
)

// KeyState distinguishes a key press from a key release.
type KeyState int

const (
	KeyUp KeyState = iota
	KeyDown
)

// Key identifies a single keyboard key together with any modifiers held.
type Key struct {
	Code xproto.Keycode
	Mod  Keymod
}

// Point is a location on the X screen.
type Point struct {
	X, Y int16
}

// Event is anything multiselect's poll loop can deliver to the controller.
type Event interface {
	Time() xproto.Timestamp
}

// KeyEvent is a single key press or release.
type KeyEvent struct {
	Key       Key
	State     KeyState
	Timestamp xproto.Timestamp
}

func (e KeyEvent) Time() xproto.Timestamp { return e.Timestamp }

// ButtonEvent is a single mouse button press inside one of our own windows
// (poll translates ButtonPress only; releases are not delivered).
type ButtonEvent struct {
	Button    xproto.Button
	Mod       Keymod
	Point     Point
	Window    xproto.Window
	Timestamp xproto.Timestamp
}

func (e ButtonEvent) Time() xproto.Timestamp { return e.Timestamp }

// ExposeEvent indicates one of our windows needs to be (re)drawn.
type ExposeEvent struct {
	Window    xproto.Window
	Timestamp xproto.Timestamp
}

func (e ExposeEvent) Time() xproto.Timestamp { return e.Timestamp }

// SelectionClearEvent indicates we have lost ownership of selection.
type SelectionClearEvent struct {
	Selection xproto.Atom
	Timestamp xproto.Timestamp
}

func (e SelectionClearEvent) Time() xproto.Timestamp { return e.Timestamp }

// SelectionRequestEvent is a plain-value copy of an inbound
// XSelectionRequestEvent: the engine keeps the copy, not a pointer, so the
// underlying X event buffer can be reused freely (see DESIGN.md).
type SelectionRequestEvent struct {
	Owner     xproto.Window
	Requestor xproto.Window
	Selection xproto.Atom
	Target    xproto.Atom
	Property  xproto.Atom // may be AtomNone
	Timestamp xproto.Timestamp
}

func (e SelectionRequestEvent) Time() xproto.Timestamp { return e.Timestamp }

// SelectionNotifyEvent is a plain-value copy of an inbound
// XSelectionEvent, delivered in response to our own ConvertSelection calls
// (capturing another owner's selection, §4.5).
type SelectionNotifyEvent struct {
	Requestor xproto.Window
	Selection xproto.Atom
	Target    xproto.Atom
	Property  xproto.Atom // AtomNone means the request was refused
	Timestamp xproto.Timestamp
}

func (e SelectionNotifyEvent) Time() xproto.Timestamp { return e.Timestamp }
