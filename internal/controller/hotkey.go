package controller

import "multiselect/internal/x11"

// isHotkey reports whether key matches one of the grabbed global hotkeys:
// Ctrl+Shift+Z (always, daemon mode) or F1/F2/F5 alone when their -k
// enable was given (§4.7).
func (c *Controller) isHotkey(key x11.Key) bool {
	if c.mode.Daemon && key.Code == x11.KeyZ && key.Mod&(x11.ModCtrl|x11.ModShift) == (x11.ModCtrl|x11.ModShift) {
		return true
	}
	if c.mode.HotkeyF1 && key.Code == x11.KeyF1 {
		return true
	}
	if c.mode.HotkeyF2 && key.Code == x11.KeyF2 {
		return true
	}
	if c.mode.HotkeyF5 && key.Code == x11.KeyF5 {
		return true
	}
	return false
}

// ShowWindow synthesizes the "open the menu with no active request"
// transition (§4.3): invoked when a grabbed hotkey fires and no
// SelectionRequest is already pending. With -f (force), it also fabricates
// a PendingRequest against the window that currently has focus, so a pick
// still produces a real reply even though no pasting client asked for one
// (§4.4).
func (c *Controller) ShowWindow() {
	if c.engine.Pending() != nil || c.menuVisible {
		return
	}
	if c.mode.Force {
		focus, err := c.conn.InputFocus()
		if err != nil {
			c.log.Printf("query input focus for -f: %v", err)
			focus = c.conn.Root()
		}
		c.engine.FabricatePending(focus, c.atoms.String, c.atoms.Primary)
	}
	c.openMenu()
}
