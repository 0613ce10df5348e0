package selection_test

import (
	"testing"

	"multiselect/internal/selection"
)

func TestAddAndView(t *testing.T) {
	l := selection.New(0)
	if !l.Add("foo") {
		t.Fatal("Add returned false on empty list")
	}
	if !l.Add("bar") {
		t.Fatal("Add returned false on non-full list")
	}
	display, payload := l.View(1)
	if display != "bar" || payload != "bar" {
		t.Fatalf("View(1) = %q, %q; want bar, bar", display, payload)
	}
}

func TestSeparatorSplit(t *testing.T) {
	l := selection.New(':')
	l.Add("k: v")
	display, payload := l.View(0)
	if display != "k: v" {
		t.Fatalf("display = %q; want %q", display, "k: v")
	}
	if payload != " v" {
		t.Fatalf("payload = %q; want %q", payload, " v")
	}
}

func TestSeparatorAbsentFallsBackToRaw(t *testing.T) {
	l := selection.New(':')
	l.Add("no-colon-here")
	_, payload := l.View(0)
	if payload != "no-colon-here" {
		t.Fatalf("payload = %q; want raw string unchanged", payload)
	}
}

func TestFullRejectsAdd(t *testing.T) {
	l := selection.New(0)
	for i := 0; i < selection.MaxEntries; i++ {
		if !l.Add("x") {
			t.Fatalf("Add #%d unexpectedly failed before list was full", i)
		}
	}
	if l.Add("overflow") {
		t.Fatal("Add succeeded past MaxEntries")
	}
	if l.Len() != selection.MaxEntries {
		t.Fatalf("Len() = %d; want %d", l.Len(), selection.MaxEntries)
	}
}

func TestCursorClampOnRemoval(t *testing.T) {
	l := selection.New(0)
	l.Add("a")
	l.Add("b")
	l.Add("c")
	l.SetCursor(2)
	l.RemoveAt(2)
	if l.Cursor() != 1 {
		t.Fatalf("Cursor() = %d; want 1 after removing the last entry", l.Cursor())
	}
	l.RemoveAt(0)
	l.RemoveAt(0)
	if l.Cursor() != -1 {
		t.Fatalf("Cursor() = %d; want -1 on empty list", l.Cursor())
	}
}

func TestMoveCursorWraps(t *testing.T) {
	l := selection.New(0)
	l.Add("a")
	l.Add("b")
	l.Add("c")
	l.SetCursor(0)
	l.MoveCursor(-1)
	if l.Cursor() != 2 {
		t.Fatalf("Cursor() = %d; want 2 after wrapping backwards", l.Cursor())
	}
	l.MoveCursor(1)
	if l.Cursor() != 0 {
		t.Fatalf("Cursor() = %d; want 0 after wrapping forwards", l.Cursor())
	}
}

func TestClearResetsCursor(t *testing.T) {
	l := selection.New(0)
	l.Add("a")
	l.SetCursor(0)
	l.Clear()
	if l.Len() != 0 || l.Cursor() != -1 {
		t.Fatalf("Clear left Len()=%d Cursor()=%d", l.Len(), l.Cursor())
	}
}

func TestCursorPayload(t *testing.T) {
	l := selection.New(0)
	if _, ok := l.CursorPayload(); ok {
		t.Fatal("CursorPayload on empty list should report false")
	}
	l.Add("hello")
	l.SetCursor(0)
	payload, ok := l.CursorPayload()
	if !ok || payload != "hello" {
		t.Fatalf("CursorPayload() = %q, %v; want hello, true", payload, ok)
	}
}
