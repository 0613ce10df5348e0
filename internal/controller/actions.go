package controller

import (
	"context"

	"github.com/jezek/xgb/xproto"

	"multiselect/internal/protocol"
)

// apply carries out each Action the engine returned, in order, per §9's
// "OpenMenu as a clean two-step" design note: the engine decides, the
// controller performs the I/O.
//
// Before writing a property, the external helper (§6.3) gets first
// refusal: if configured and its probe exits 0, the helper's own action
// substitutes for the normal X write+notify pair entirely.
func (c *Controller) apply(actions []protocol.Action) {
	suppressed := make(map[suppressKey]bool)
	for _, a := range actions {
		switch action := a.(type) {
		case protocol.WriteStringProperty:
			if c.tryHelper(action.Window, action.Value) {
				suppressed[suppressKey{action.Window, action.Property}] = true
				continue
			}
			if err := c.conn.WriteStringProperty(action.Window, action.Property, action.Type, action.Value); err != nil {
				c.log.Printf("write string property: %v", err)
			}
		case protocol.WriteAtomListProperty:
			if err := c.conn.WriteAtomListProperty(action.Window, action.Property, action.Atoms); err != nil {
				c.log.Printf("write atom list property: %v", err)
			}
		case protocol.SendNotify:
			if suppressed[suppressKey{action.Requestor, action.Property}] {
				continue
			}
			if err := c.conn.SendSelectionNotify(action.Requestor, action.Selection, action.Target, action.Property, action.Time); err != nil {
				c.log.Printf("send selection notify: %v", err)
			}
		case protocol.OpenMenu:
			c.openMenu()
		case protocol.FlashMessage:
			c.flash(action.Text, true, c.timings.FlashMessage)
		case protocol.RequestCapture:
			c.captureSelection()
		case protocol.Exit:
			c.exitRequested = true
		}
	}
	c.conn.Flush()
}

type suppressKey struct {
	window   xproto.Window
	property xproto.Atom
}

// tryHelper runs the external helper's probe/action pair (§6.3). It
// reports whether the helper claimed the delivery, in which case the
// caller must skip the normal X write+notify.
func (c *Controller) tryHelper(window xproto.Window, payload string) bool {
	if c.helper == nil || !c.helper.Enabled() {
		return false
	}
	ctx := context.Background()
	ok, err := c.helper.Probe(ctx, uint32(window), payload)
	if err != nil {
		c.log.Printf("external helper probe: %v", err)
		return false
	}
	if !ok {
		return false
	}
	if err := c.helper.Act(ctx, uint32(window), payload); err != nil {
		c.log.Printf("external helper act: %v", err)
	}
	return true
}
