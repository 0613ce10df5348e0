package controller

// RequestCapture exposes captureSelection to Bootstrap for the `-c`
// startup flow of §4.2.4: ask whoever already owns PRIMARY to hand it to
// us instead of acquiring outright, so a single already-held string
// doesn't get clobbered before we have a second one to fall back on.
func (c *Controller) RequestCapture() {
	c.captureSelection()
}

// FlashStartup shows the "ready" flash window, for Bootstrap to call once
// the event loop's collaborators are all wired up (§4.3 case a).
func (c *Controller) FlashStartup() {
	c.flashStartup()
}
