package controller

import (
	"testing"

	"multiselect/internal/protocol"
	"multiselect/internal/x11"
)

func TestKeyIndexDigits(t *testing.T) {
	idx, ok := keyIndex(x11.Key{Code: x11.Key1})
	if !ok || idx != 0 {
		t.Fatalf("Key1 -> %d, %v; want 0, true", idx, ok)
	}
	idx, ok = keyIndex(x11.Key{Code: x11.Key9})
	if !ok || idx != 8 {
		t.Fatalf("Key9 -> %d, %v; want 8, true", idx, ok)
	}
}

func TestKeyIndexLetters(t *testing.T) {
	idx, ok := keyIndex(x11.Key{Code: x11.KeyA})
	if !ok || idx != 9 {
		t.Fatalf("KeyA -> %d, %v; want 9, true", idx, ok)
	}
	idx, ok = keyIndex(x11.Key{Code: x11.KeyZ})
	if !ok || idx != 34 {
		t.Fatalf("KeyZ -> %d, %v; want 34, true", idx, ok)
	}
}

func TestKeyIndexUnmapped(t *testing.T) {
	if _, ok := keyIndex(x11.Key{Code: x11.KeyEscape}); ok {
		t.Fatal("Escape should not map to any list index")
	}
}

func TestIsHotkeyCtrlShiftZOnlyInDaemonMode(t *testing.T) {
	c := &Controller{mode: protocol.ModeFlags{Daemon: true}}
	key := x11.Key{Code: x11.KeyZ, Mod: x11.ModCtrl | x11.ModShift}
	if !c.isHotkey(key) {
		t.Fatal("expected Ctrl+Shift+Z to be a hotkey in daemon mode")
	}
	c2 := &Controller{mode: protocol.ModeFlags{Daemon: false}}
	if c2.isHotkey(key) {
		t.Fatal("Ctrl+Shift+Z must not be a hotkey outside daemon mode")
	}
}

func TestIsHotkeyF1RequiresEnable(t *testing.T) {
	c := &Controller{mode: protocol.ModeFlags{HotkeyF1: true}}
	if !c.isHotkey(x11.Key{Code: x11.KeyF1}) {
		t.Fatal("expected F1 to be a hotkey when enabled")
	}
	c2 := &Controller{mode: protocol.ModeFlags{}}
	if c2.isHotkey(x11.Key{Code: x11.KeyF1}) {
		t.Fatal("F1 must not be a hotkey unless enabled")
	}
}
