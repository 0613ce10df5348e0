package x11

import "github.com/jezek/xgb/xproto"

// Well-known keycodes, using the common PC-105 keyboard layout offsets
// (identical to the teacher's internal/x11/const.go table).
const (
	KeyBackspace xproto.Keycode = 22
	KeyDelete    xproto.Keycode = 119
	KeyEnter     xproto.Keycode = 36
	KeyKPEnter   xproto.Keycode = 104
	KeyEscape    xproto.Keycode = 9
	KeyUpArrow   xproto.Keycode = 111
	KeyDownArrow xproto.Keycode = 116

	KeyA xproto.Keycode = 38
	KeyB xproto.Keycode = 56
	KeyC xproto.Keycode = 54
	KeyD xproto.Keycode = 40
	KeyE xproto.Keycode = 26
	KeyF xproto.Keycode = 41
	KeyG xproto.Keycode = 42
	KeyH xproto.Keycode = 43
	KeyI xproto.Keycode = 31
	KeyJ xproto.Keycode = 44
	KeyK xproto.Keycode = 45
	KeyL xproto.Keycode = 46
	KeyM xproto.Keycode = 58
	KeyN xproto.Keycode = 57
	KeyO xproto.Keycode = 32
	KeyP xproto.Keycode = 33
	KeyQ xproto.Keycode = 24
	KeyR xproto.Keycode = 27
	KeyS xproto.Keycode = 39
	KeyT xproto.Keycode = 28
	KeyU xproto.Keycode = 30
	KeyV xproto.Keycode = 55
	KeyW xproto.Keycode = 25
	KeyX xproto.Keycode = 53
	KeyY xproto.Keycode = 29
	KeyZ xproto.Keycode = 52

	Key0 xproto.Keycode = 19
	Key1 xproto.Keycode = 10
	Key2 xproto.Keycode = 11
	Key3 xproto.Keycode = 12
	Key4 xproto.Keycode = 13
	Key5 xproto.Keycode = 14
	Key6 xproto.Keycode = 15
	Key7 xproto.Keycode = 16
	Key8 xproto.Keycode = 17
	Key9 xproto.Keycode = 18

	KeyF1 xproto.Keycode = 67
	KeyF2 xproto.Keycode = 68
	KeyF3 xproto.Keycode = 69
	KeyF4 xproto.Keycode = 70
	KeyF5 xproto.Keycode = 71
)

// Atom names used by the ICCCM selection protocol (§6.2).
const (
	AtomNamePrimary      = "PRIMARY"
	AtomNameString       = "STRING"
	AtomNameUTF8String   = "UTF8_STRING"
	AtomNameTargets      = "TARGETS"
	AtomNameAtom         = "ATOM"
	AtomNameCutBuffer0   = "CUT_BUFFER0"
	AtomNameFirefox      = "text/x-moz-text-internal"
	AtomNameXtSelection1 = "_XT_SELECTION_1"
	AtomNameWMName       = "WM_NAME"
)

// Event masks, grouped the way the teacher's internal/x11 package groups
// them. The Menu/Flash combinations are exported so InteractionController
// can pass them straight to CreateOverrideWindow.
const (
	maskKey       uint32 = xproto.EventMaskKeyPress | xproto.EventMaskKeyRelease
	maskButton    uint32 = xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease
	maskExpose    uint32 = xproto.EventMaskExposure
	maskStructure uint32 = xproto.EventMaskStructureNotify

	MenuEventMask  uint32 = maskKey | maskButton | maskExpose | maskStructure
	FlashEventMask uint32 = maskExpose | maskStructure
)
