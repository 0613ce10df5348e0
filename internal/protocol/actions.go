package protocol

import "github.com/jezek/xgb/xproto"

// Action is one instruction the engine asks its caller to carry out. The
// engine never performs X I/O itself (§4.2: "it never blocks"); the
// controller translates each Action into x11.Conn calls.
type Action interface {
	isAction()
}

// WriteStringProperty asks for a format-8 STRING/UTF8_STRING property
// write, replacing any prior value.
type WriteStringProperty struct {
	Window   xproto.Window
	Property xproto.Atom
	Type     xproto.Atom
	Value    string
}

func (WriteStringProperty) isAction() {}

// WriteAtomListProperty asks for a format-32 ATOM-typed property write
// (the TARGETS reply).
type WriteAtomListProperty struct {
	Window   xproto.Window
	Property xproto.Atom
	Atoms    []xproto.Atom
}

func (WriteAtomListProperty) isAction() {}

// SendNotify asks for a synthetic SelectionNotify. Property is
// xproto.AtomNone (0) to signal refusal.
type SendNotify struct {
	Requestor xproto.Window
	Selection xproto.Atom
	Target    xproto.Atom
	Property  xproto.Atom
	Time      xproto.Timestamp
}

func (SendNotify) isAction() {}

// OpenMenu asks the controller to map the menu window and start
// interpreting key/mouse input as a pick.
type OpenMenu struct{}

func (OpenMenu) isAction() {}

// FlashMessage asks the controller to show the flash window with an error
// message rather than a success confirmation.
type FlashMessage struct {
	Text string
}

func (FlashMessage) isAction() {}

// RequestCapture asks the controller to issue ConvertSelection against
// whichever window currently owns PRIMARY (§4.5).
type RequestCapture struct{}

func (RequestCapture) isAction() {}

// Exit asks the controller to terminate the process once the current
// action list has been carried out (§4.2.5's exit-on-clear policy).
type Exit struct{}

func (Exit) isAction() {}
