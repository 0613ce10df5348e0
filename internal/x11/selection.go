package x11

import (
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"
)

// SetSelectionOwner claims ownership of sel as of timestamp t. Passing
// xproto.AtomNone for win releases ownership instead (§4.2.5).
func (c *Conn) SetSelectionOwner(win xproto.Window, sel xproto.Atom, t xproto.Timestamp) error {
	return xproto.SetSelectionOwnerChecked(c.conn, win, sel, t).Check()
}

// GetSelectionOwner returns the window that currently owns sel, or
// xproto.AtomNone if nobody does.
func (c *Conn) GetSelectionOwner(sel xproto.Atom) (xproto.Window, error) {
	reply, err := xproto.GetSelectionOwner(c.conn, sel).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Owner, nil
}

// ConvertSelection asks whoever owns sel to convert it to target and place
// the result on property of requestor. Used whenever multiselect captures
// another owner's selection: the -c startup and SelectionClear paths, and
// the menu's z/F2 key and "V" icon (§4.5).
func (c *Conn) ConvertSelection(requestor xproto.Window, sel, target, property xproto.Atom, t xproto.Timestamp) error {
	return xproto.ConvertSelectionChecked(c.conn, requestor, sel, target, property, t).Check()
}

// Now obtains a current server timestamp without relying on the client's
// clock, using the classic zero-length property-append trick: appending
// zero bytes to a property still generates a PropertyNotify carrying the
// server's timestamp. Grounded on the teacher's approximateOffset use of
// ChangeProperty+PropertyNotify in internal/x11/client.go.
//
// The PropertyNotify this provokes arrives on the same wire as every other
// event, so it must be picked up by the single poll() goroutine rather than
// by a second WaitForEvent loop here (two readers would race for the same
// queue). Now instead hands the expected atom to poll via timeReq and
// blocks on timeCh for the timestamp poll extracts out of the event stream.
// Now must not be called before Start.
func (c *Conn) Now() (xproto.Timestamp, error) {
	atom, err := c.Atom("MULTISELECT_TIME")
	if err != nil {
		return 0, err
	}
	c.timeReq <- atom
	if err := xproto.ChangePropertyChecked(
		c.conn, xproto.PropModeAppend, c.root, atom, xproto.AtomString, 8, 0, nil,
	).Check(); err != nil {
		return 0, errors.Wrap(err, "append zero-length property")
	}
	return <-c.timeCh, nil
}

// WriteStringProperty writes a STRING or UTF8_STRING value in format 8, as
// required when fulfilling a SelectionRequest for a text target (§4.2.3).
func (c *Conn) WriteStringProperty(win xproto.Window, property, typ xproto.Atom, value string) error {
	return xproto.ChangePropertyChecked(
		c.conn, xproto.PropModeReplace, win, property, typ, 8,
		uint32(len(value)), []byte(value),
	).Check()
}

// WriteAtomListProperty writes a list of atoms in format 32, used to answer
// TARGETS requests (§4.2.2 rule for the TARGETS target).
func (c *Conn) WriteAtomListProperty(win xproto.Window, property xproto.Atom, atoms []xproto.Atom) error {
	buf := make([]byte, 4*len(atoms))
	for i, a := range atoms {
		buf[4*i+0] = byte(a)
		buf[4*i+1] = byte(a >> 8)
		buf[4*i+2] = byte(a >> 16)
		buf[4*i+3] = byte(a >> 24)
	}
	return xproto.ChangePropertyChecked(
		c.conn, xproto.PropModeReplace, win, property, xproto.AtomAtom, 32,
		uint32(len(atoms)), buf,
	).Check()
}

// ReadStringProperty reads back a STRING/UTF8_STRING-typed property,
// deleting it afterward (ICCCM convention for the requestor side; here used
// when multiselect itself acts as a requestor capturing another owner's
// selection, §4.2.4).
func (c *Conn) ReadStringProperty(win xproto.Window, property xproto.Atom) (string, error) {
	reply, err := xproto.GetProperty(c.conn, true, win, property, xproto.AtomAny, 0, 1<<20).Reply()
	if err != nil {
		return "", errors.Wrap(err, "get property")
	}
	if reply.Format == 0 {
		return "", errors.New("property does not exist")
	}
	return string(reply.Value), nil
}

// ReadAtomListProperty reads back a format-32 ATOM-typed property (a
// TARGETS reply from another owner).
func (c *Conn) ReadAtomListProperty(win xproto.Window, property xproto.Atom) ([]xproto.Atom, error) {
	reply, err := xproto.GetProperty(c.conn, true, win, property, xproto.AtomAtom, 0, 1<<16).Reply()
	if err != nil {
		return nil, err
	}
	if reply.Format != 32 {
		return nil, errors.New("property is not format 32")
	}
	out := make([]xproto.Atom, 0, len(reply.Value)/4)
	for i := 0; i+3 < len(reply.Value); i += 4 {
		a := xproto.Atom(reply.Value[i]) |
			xproto.Atom(reply.Value[i+1])<<8 |
			xproto.Atom(reply.Value[i+2])<<16 |
			xproto.Atom(reply.Value[i+3])<<24
		out = append(out, a)
	}
	return out, nil
}

// DeleteProperty removes a property outright, used to clear CUT_BUFFER0 on
// ownership acquisition so stale cut-buffer consumers don't see old data
// (§4.2.4).
func (c *Conn) DeleteProperty(win xproto.Window, property xproto.Atom) error {
	return xproto.DeletePropertyChecked(c.conn, win, property).Check()
}

// SendSelectionNotify delivers a synthetic SelectionNotify to requestor,
// completing the reply contract of §4.2.3. property is xproto.AtomNone when
// refusing the request.
func (c *Conn) SendSelectionNotify(requestor xproto.Window, sel, target, property xproto.Atom, t xproto.Timestamp) error {
	ev := xproto.SelectionNotifyEvent{
		Time:      t,
		Requestor: requestor,
		Selection: sel,
		Target:    target,
		Property:  property,
	}
	return xproto.SendEventChecked(
		c.conn, false, requestor, 0, string(ev.Bytes()),
	).Check()
}
