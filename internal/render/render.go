// Package render defines the declarative view models InteractionController
// hands to a Renderer, plus a minimal concrete Renderer that draws them
// with core X primitives. Glyph rendering is explicitly a black-box
// collaborator (§1): callers are free to substitute a different Renderer
// entirely.
package render

import "github.com/jezek/xgb/xproto"

// Row is one selectable line in the menu view.
type Row struct {
	Display  string
	Selected bool
}

// MenuView is what the menu window should currently show.
type MenuView struct {
	Rows   []Row
	Cursor int // -1 for "none"
}

// FlashView is what the flash window should currently show.
type FlashView struct {
	Text  string
	Error bool
}

// Renderer draws a declarative view model into a window it does not own.
// Geometry, fonts, and colors are the Renderer's concern; InteractionController
// only ever decides *what* should be visible.
type Renderer interface {
	DrawMenu(win xproto.Window, view MenuView) error
	DrawFlash(win xproto.Window, view FlashView) error
}
