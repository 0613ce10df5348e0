package x11

import "github.com/jezek/xgb/xproto"

// The handful of core-X drawing primitives render.SimpleRenderer needs.
// Renderer is a black-box collaborator by design (§1); this file exists
// only so a minimal concrete implementation has something to draw with.

// NewGC allocates a graphics context for win with the given foreground
// pixel value.
func (c *Conn) NewGC(win xproto.Window, foreground uint32) (xproto.Gcontext, error) {
	gc, err := xproto.NewGcontextId(c.conn)
	if err != nil {
		return 0, err
	}
	err = xproto.CreateGCChecked(
		c.conn, gc, xproto.Drawable(win),
		xproto.GcForeground|xproto.GcBackground,
		[]uint32{foreground, c.screen.BlackPixel},
	).Check()
	if err != nil {
		return 0, err
	}
	return gc, nil
}

// FreeGC releases a graphics context.
func (c *Conn) FreeGC(gc xproto.Gcontext) error {
	return xproto.FreeGCChecked(c.conn, gc).Check()
}

// FillRectangle fills one rectangle of win using gc.
func (c *Conn) FillRectangle(win xproto.Window, gc xproto.Gcontext, x, y int16, w, h uint16) error {
	return xproto.PolyFillRectangleChecked(
		c.conn, xproto.Drawable(win), gc,
		[]xproto.Rectangle{{X: x, Y: y, Width: w, Height: h}},
	).Check()
}

// DrawText draws s at (x, y) (baseline) in win using gc and the server's
// default core font bound to gc.
func (c *Conn) DrawText(win xproto.Window, gc xproto.Gcontext, x, y int16, s string) error {
	return xproto.ImageText8Checked(
		c.conn, byte(len(s)), xproto.Drawable(win), gc, x, y, s,
	).Check()
}
