package controller

// saveFocusAndPointer records the pointer location and focused window
// before the menu takes over input, so click mode can restore both on
// pick (§4.4).
func (c *Controller) saveFocusAndPointer() {
	if p, err := c.conn.QueryPointer(); err == nil {
		c.savedPointer = p
	}
	if w, err := c.conn.InputFocus(); err == nil {
		c.savedFocus = w
	}
}

// restoreFocusAndWarp restores the previously focused window and warps the
// pointer back to where it was, immediately before the synthetic
// middle-click that provokes a fresh SelectionRequest (§4.4).
func (c *Controller) restoreFocusAndWarp() {
	if c.savedFocus != 0 {
		c.conn.SetInputFocus(c.savedFocus, 0)
	}
	c.conn.WarpPointer(c.savedPointer)
	c.conn.Flush()
}
