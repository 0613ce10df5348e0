package render

import (
	"multiselect/internal/x11"

	"github.com/jezek/xgb/xproto"
)

const (
	rowHeight      = 16
	rowTextOffsetY = 12
	leftMargin     = 4
)

// SimpleRenderer is a minimal concrete Renderer: one row of text per
// entry, the cursor row highlighted with a filled rectangle behind it. It
// exists to give InteractionController something real to draw through
// during development; production deployments are expected to supply a
// richer Renderer (§1 treats rendering as a black-box collaborator).
type SimpleRenderer struct {
	conn       *x11.Conn
	normalGC   xproto.Gcontext
	selectedGC xproto.Gcontext
	errorGC    xproto.Gcontext
}

// NewSimpleRenderer allocates the graphics contexts SimpleRenderer needs.
func NewSimpleRenderer(conn *x11.Conn) (*SimpleRenderer, error) {
	normal, err := conn.NewGC(conn.Root(), 0xFFFFFF)
	if err != nil {
		return nil, err
	}
	selected, err := conn.NewGC(conn.Root(), 0x3070F0)
	if err != nil {
		return nil, err
	}
	errGC, err := conn.NewGC(conn.Root(), 0xD03030)
	if err != nil {
		return nil, err
	}
	return &SimpleRenderer{conn: conn, normalGC: normal, selectedGC: selected, errorGC: errGC}, nil
}

// Close releases the graphics contexts.
func (r *SimpleRenderer) Close() {
	r.conn.FreeGC(r.normalGC)
	r.conn.FreeGC(r.selectedGC)
	r.conn.FreeGC(r.errorGC)
}

// DrawMenu renders each row, highlighting the cursor row.
func (r *SimpleRenderer) DrawMenu(win xproto.Window, view MenuView) error {
	for i, row := range view.Rows {
		y := int16(i * rowHeight)
		if i == view.Cursor {
			if err := r.conn.FillRectangle(win, r.selectedGC, 0, y, 400, rowHeight); err != nil {
				return err
			}
		}
		if err := r.conn.DrawText(win, r.normalGC, leftMargin, y+rowTextOffsetY, row.Display); err != nil {
			return err
		}
	}
	return nil
}

// DrawFlash renders a single line of confirmation or error text.
func (r *SimpleRenderer) DrawFlash(win xproto.Window, view FlashView) error {
	gc := r.normalGC
	if view.Error {
		gc = r.errorGC
	}
	return r.conn.DrawText(win, gc, leftMargin, rowTextOffsetY, view.Text)
}
