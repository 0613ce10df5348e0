package controller

import "multiselect/internal/x11"

// captureSelection implements §4.5: ask whoever currently owns PRIMARY to
// hand it to us. A no-op if we already own it or the list is already full
// (scenario 6: a full list guards the attempt before it ever reaches the
// wire, so no error flash is shown either).
func (c *Controller) captureSelection() {
	if c.list.Full() {
		return
	}
	owner, err := c.conn.GetSelectionOwner(c.atoms.Primary)
	if err != nil {
		c.log.Printf("get selection owner: %v", err)
		return
	}
	if owner == 0 {
		c.flashNoOwner()
		return
	}
	if owner == c.menuWindow {
		return
	}
	if err := c.conn.ConvertSelection(c.menuWindow, c.atoms.Primary, c.atoms.String, c.atoms.Primary, 0); err != nil {
		c.log.Printf("convert selection: %v", err)
	}
}

// handleSelectionNotify processes the asynchronous reply to our own
// captureSelection call: read the property (deleting it), append to the
// list, and re-acquire PRIMARY once at least two entries are held (or
// always, in continuous mode), per §4.5.
func (c *Controller) handleSelectionNotify(e x11.SelectionNotifyEvent) {
	if e.Property == 0 {
		return // conversion refused by the other owner; drop silently.
	}
	payload, err := c.conn.ReadStringProperty(e.Requestor, e.Property)
	if err != nil {
		c.log.Printf("read captured selection property: %v", err)
		return
	}
	payload = trimTrailingNuls(payload)
	if !c.list.Add(payload) {
		return
	}
	c.flashListChanged()

	if c.list.Len() >= 2 || c.mode.Continuous {
		if err := c.Acquire(); err != nil {
			c.log.Printf("re-acquire after capture: %v", err)
		}
	}
}

func trimTrailingNuls(s string) string {
	end := len(s)
	for end > 0 && s[end-1] == 0 {
		end--
	}
	return s[:end]
}
