package controller

import (
	"time"

	"multiselect/internal/render"
)

// flash shows the flash window for duration, following §4.3's synchronous
// "draw, flush, sleep, unmap" sequence. The sleep is intentionally
// blocking: the flash window is a modal confirmation, not an interactive
// element, and §5 explicitly tolerates this as the one extra suspension
// point beyond waiting for the next X event.
func (c *Controller) flash(text string, isError bool, duration time.Duration) {
	c.positionNearPointer(c.flashWindow)
	c.renderer.DrawFlash(c.flashWindow, render.FlashView{Text: text, Error: isError})
	c.conn.MapWindow(c.flashWindow)
	c.conn.Flush()
	time.Sleep(duration)
	c.conn.UnmapWindow(c.flashWindow)
	c.conn.Flush()
}

// flashStartup shows the flash window at process start (§4.3 case a).
func (c *Controller) flashStartup() {
	c.flash("multiselect ready", false, c.timings.FlashStart)
}

// flashListChanged shows the "list updated" flash window (§4.3 case b). It
// is called after a captured selection is appended; removing or clearing
// entries from the open menu only redraws the menu and shows no flash.
func (c *Controller) flashListChanged() {
	c.flash("list updated", false, c.timings.FlashChange)
}

// flashNoOwner shows the error flash when an add-selection attempt finds
// no PRIMARY owner (§4.3 case c, §7's NoOwnerToCapture).
func (c *Controller) flashNoOwner() {
	c.flash("select a string first", true, c.timings.FlashMessage)
}
