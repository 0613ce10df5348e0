package controller

import (
	"github.com/jezek/xgb/xproto"

	"multiselect/internal/render"
	"multiselect/internal/selection"
	"multiselect/internal/x11"
)

// Menu geometry: a one-row header carrying the "V" (capture) and "X"
// (quit) icons, followed by one row per entry. Renderer implementations
// are free to lay things out differently; this is only what Controller
// needs for its own hit-testing of the two icons.
const (
	headerHeight = 16
	rowHeight    = 16
	iconWidth    = 20
	menuWidth    = 400
)

var digitKeys = []struct {
	code xproto.Keycode
	idx  int
}{
	{x11.Key1, 0}, {x11.Key2, 1}, {x11.Key3, 2}, {x11.Key4, 3}, {x11.Key5, 4},
	{x11.Key6, 5}, {x11.Key7, 6}, {x11.Key8, 7}, {x11.Key9, 8},
}

var letterKeys = []xproto.Keycode{
	x11.KeyA, x11.KeyB, x11.KeyC, x11.KeyD, x11.KeyE, x11.KeyF, x11.KeyG,
	x11.KeyH, x11.KeyI, x11.KeyJ, x11.KeyK, x11.KeyL, x11.KeyM, x11.KeyN,
	x11.KeyO, x11.KeyP, x11.KeyQ, x11.KeyR, x11.KeyS, x11.KeyT, x11.KeyU,
	x11.KeyV, x11.KeyW, x11.KeyX, x11.KeyY, x11.KeyZ,
}

// keyIndex maps '1'..'9' to indices 0..8 and 'a'..'z' to indices 9..34, per
// spec.md's documented-as-ambiguous keyindex range. The caller is
// responsible for bounding the result against the list length and
// MaxEntries (the open question in §9 notes indices 20..34 are
// unreachable given MaxEntries == 20 — that falls naturally out of the
// bounds check in handleKey rather than needing special casing here).
func keyIndex(key x11.Key) (int, bool) {
	for _, d := range digitKeys {
		if key.Code == d.code {
			return d.idx, true
		}
	}
	for i, l := range letterKeys {
		if key.Code == l {
			return 9 + i, true
		}
	}
	return 0, false
}

func (c *Controller) openMenu() {
	c.menuVisible = true
	c.engine.SetMenuVisible(true)
	if c.mode.Click {
		c.saveFocusAndPointer()
	}
	c.positionNearPointer(c.menuWindow)
	c.conn.MapWindow(c.menuWindow)
	c.redrawMenu()
}

// positionNearPointer moves win to the current pointer location, per §3's
// "positioned near the pointer" contract for both the Menu and Flash
// windows. A QueryPointer failure is not fatal: the window simply stays
// wherever it was last placed.
func (c *Controller) positionNearPointer(win xproto.Window) {
	p, err := c.conn.QueryPointer()
	if err != nil {
		c.log.Printf("query pointer: %v", err)
		return
	}
	if err := c.conn.MoveWindow(win, p.X, p.Y); err != nil {
		c.log.Printf("move window: %v", err)
	}
}

func (c *Controller) closeMenu() {
	c.menuVisible = false
	c.engine.SetMenuVisible(false)
	c.conn.UnmapWindow(c.menuWindow)
}

func (c *Controller) redrawMenu() {
	rows := make([]render.Row, c.list.Len())
	cursor := c.list.Cursor()
	for i := 0; i < c.list.Len(); i++ {
		display, _ := c.list.View(i)
		rows[i] = render.Row{Display: display, Selected: i == cursor}
	}
	c.renderer.DrawMenu(c.menuWindow, render.MenuView{Rows: rows, Cursor: cursor})
}

func (c *Controller) handleExpose(e x11.ExposeEvent) {
	switch e.Window {
	case c.menuWindow:
		c.redrawMenu()
	case c.flashWindow:
		// The flash window's own flash() sequence (flash.go) draws,
		// flushes, sleeps, and unmaps synchronously; nothing to do here
		// beyond the redraw it already performs before mapping.
	}
}

func (c *Controller) handleKey(e x11.KeyEvent) {
	if !c.menuVisible {
		return
	}
	switch e.Key.Code {
	case x11.KeyUpArrow:
		c.moveCursor(-1)
		return
	case x11.KeyDownArrow:
		c.moveCursor(1)
		return
	case x11.KeyEnter, x11.KeyKPEnter:
		c.pickCursor()
		return
	case x11.KeyBackspace, x11.KeyDelete:
		c.removeCursor()
		return
	case x11.KeyF2:
		c.captureSelection()
		return
	case x11.KeyF3:
		c.removeLast()
		return
	case x11.KeyF4:
		c.clearList()
		return
	case x11.KeyF5:
		c.quit()
		return
	}

	// 'z' shares the capture behaviour with F2; 's'/'d'/'q' share their
	// letter-key behaviour with F3/F4/F5. These are checked before the
	// generic keyIndex table so they never get misread as list picks.
	switch e.Key.Code {
	case x11.KeyZ:
		c.captureSelection()
		return
	case x11.KeyS:
		c.removeLast()
		return
	case x11.KeyD:
		c.clearList()
		return
	case x11.KeyQ:
		c.quit()
		return
	}

	if idx, ok := keyIndex(e.Key); ok {
		if idx >= c.list.Len() || idx >= selection.MaxEntries {
			c.refusePending()
			return
		}
		c.pick(idx)
		return
	}

	c.refusePending()
}

func (c *Controller) moveCursor(delta int) {
	c.list.MoveCursor(delta)
	if c.mode.Immediate {
		c.pickCursor()
		return
	}
	c.redrawMenu()
}

func (c *Controller) pickCursor() {
	idx := c.list.Cursor()
	if idx < 0 {
		return
	}
	c.pick(idx)
}

func (c *Controller) removeCursor() {
	idx := c.list.Cursor()
	if idx < 0 {
		return
	}
	c.list.RemoveAt(idx)
	if c.list.Len() == 0 && !c.mode.Daemon {
		c.refusePending()
		c.closeMenu()
		c.exitRequested = true
		return
	}
	c.redrawMenu()
}

func (c *Controller) removeLast() {
	c.list.RemoveLast()
	c.redrawMenu()
}

func (c *Controller) clearList() {
	c.list.Clear()
	c.redrawMenu()
}

func (c *Controller) quit() {
	c.refusePending()
	c.closeMenu()
	c.exitRequested = true
}

// refusePending answers the outstanding request with a refusal (the "any
// other key" fallback, key == -1) and closes the menu.
func (c *Controller) refusePending() {
	c.finishPick(-1, "")
}

// pick answers the outstanding request with list entry idx's payload.
func (c *Controller) pick(idx int) {
	payload, ok := c.list.PayloadAt(idx)
	if !ok {
		c.refusePending()
		return
	}
	c.list.SetCursor(idx)
	c.finishPick(idx, payload)
}

func (c *Controller) finishPick(key int, payload string) {
	c.closeMenu()
	if c.mode.Click {
		c.engine.SetChoice(key, payload)
		c.restoreFocusAndWarp()
		if err := c.conn.FakeMiddleClick(); err != nil {
			c.log.Printf("fake middle click (degrading to direct send): %v", err)
			c.serveDirectly(key, payload)
		}
		return
	}
	c.serveDirectly(key, payload)
}

func (c *Controller) serveDirectly(key int, payload string) {
	now, err := c.conn.Now()
	if err != nil {
		c.log.Printf("obtain timestamp: %v", err)
	}
	actions := c.engine.ServePending(now, payload, key < 0)
	c.apply(actions)
}

func (c *Controller) handleButton(e x11.ButtonEvent) {
	if e.Window != c.menuWindow {
		return
	}
	if e.Point.Y < headerHeight {
		if e.Point.X < iconWidth {
			c.captureSelection()
			return
		}
		if e.Point.X >= menuWidth-iconWidth {
			c.quit()
			return
		}
		return
	}
	idx := int((e.Point.Y - headerHeight) / rowHeight)
	if idx < 0 || idx >= c.list.Len() {
		return
	}
	c.pick(idx)
}
