// Package selection maintains the ordered list of strings multiselect offers
// up for pasting.
package selection

// MaxEntries is the maximum number of strings the list will hold at once.
const MaxEntries = 20

// Entry is a single user-visible string. Raw is exactly what the user
// supplied; the part of it that actually gets transmitted to a requestor is
// derived from Raw and the list's separator by List.View and List.PayloadAt.
type Entry struct {
	Raw string
}

// List is the ordered, mutable sequence of Entry values multiselect serves
// pastes from. Construct with New: it sets the cursor to -1 ("none"),
// whereas the zero value's cursor is 0.
type List struct {
	entries   []Entry
	cursor    int // index into entries, or -1 for "none"
	separator byte
	hasSep    bool
}

// New creates an empty List. If sep is non-zero, it is used to split
// each Entry's raw text into a display label and a payload.
func New(sep byte) *List {
	return &List{cursor: -1, separator: sep, hasSep: sep != 0}
}

// Len returns the number of entries currently held.
func (l *List) Len() int {
	return len(l.entries)
}

// Full reports whether the list has reached MaxEntries.
func (l *List) Full() bool {
	return len(l.entries) >= MaxEntries
}

// Cursor returns the current selection cursor, or -1 if none is set.
func (l *List) Cursor() int {
	return l.cursor
}

// SetCursor moves the cursor to i, pulling an index past the end back to
// len-1; a negative i, or an empty list, gives -1. Used for explicit
// selection (e.g. clicking a row).
func (l *List) SetCursor(i int) {
	l.cursor = l.clampIndex(i)
}

// MoveCursor shifts the cursor by delta, wrapping modulo Len(). A no-op on
// an empty list.
func (l *List) MoveCursor(delta int) {
	n := len(l.entries)
	if n == 0 {
		l.cursor = -1
		return
	}
	if l.cursor < 0 {
		l.cursor = 0
		return
	}
	l.cursor = ((l.cursor+delta)%n + n) % n
}

// Add appends raw as a new Entry. It returns false without modifying the
// list if the list is already full.
func (l *List) Add(raw string) bool {
	if l.Full() {
		return false
	}
	l.entries = append(l.entries, Entry{Raw: raw})
	l.cursor = l.clampIndex(l.cursor)
	return true
}

// RemoveAt deletes the entry at index i, if any, and clamps the cursor.
func (l *List) RemoveAt(i int) {
	if i < 0 || i >= len(l.entries) {
		return
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	l.cursor = l.clampIndex(l.cursor)
}

// RemoveLast deletes the last entry, if any.
func (l *List) RemoveLast() {
	if len(l.entries) == 0 {
		return
	}
	l.RemoveAt(len(l.entries) - 1)
}

// Clear empties the list and resets the cursor to "none".
func (l *List) Clear() {
	l.entries = nil
	l.cursor = -1
}

// View returns the display label and transmittable payload for index i.
// Display is always the raw string; payload is the suffix after the first
// separator byte, or the raw string itself when no separator applies.
func (l *List) View(i int) (display, payload string) {
	if i < 0 || i >= len(l.entries) {
		return "", ""
	}
	raw := l.entries[i].Raw
	return raw, l.payloadOf(raw)
}

// PayloadAt is a convenience wrapper around View that returns only the
// payload, plus whether i was in range.
func (l *List) PayloadAt(i int) (string, bool) {
	if i < 0 || i >= len(l.entries) {
		return "", false
	}
	return l.payloadOf(l.entries[i].Raw), true
}

// CursorPayload returns the payload of the entry at the current cursor, if
// any entry is selected.
func (l *List) CursorPayload() (string, bool) {
	return l.PayloadAt(l.cursor)
}

func (l *List) payloadOf(raw string) string {
	if !l.hasSep {
		return raw
	}
	idx := -1
	for i := 0; i < len(raw); i++ {
		if raw[i] == l.separator {
			idx = i
			break
		}
	}
	if idx < 0 {
		return raw
	}
	return raw[idx+1:]
}

// clampIndex enforces the invariant that the cursor lies in [0, len) or is
// -1 ("none"). It never promotes an explicit "none" to 0; it only pulls an
// out-of-range cursor back down to the new last index.
func (l *List) clampIndex(i int) int {
	n := len(l.entries)
	if n == 0 {
		return -1
	}
	if i < 0 {
		return -1
	}
	if i >= n {
		return n - 1
	}
	return i
}
