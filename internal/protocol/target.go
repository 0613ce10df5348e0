package protocol

import "github.com/jezek/xgb/xproto"

// Atoms holds the small fixed set of interned atoms the engine needs to
// classify targets and answer TARGETS requests. Resolved once at startup
// via x11.Conn.Atom and handed to NewEngine; the engine never interns atoms
// itself; it never touches the wire.
type Atoms struct {
	Primary      xproto.Atom
	String       xproto.Atom
	UTF8String   xproto.Atom
	Targets      xproto.Atom
	Firefox      xproto.Atom
	XtSelection1 xproto.Atom
	CutBuffer0   xproto.Atom
}

// TargetClass is the classification of an inbound request's target atom
// (§4.2.1).
type TargetClass int

const (
	TargetString TargetClass = iota
	TargetUTF8String
	TargetTargets
	TargetFirefoxSentinel
	TargetUnsupported
)

// ClassifyTarget buckets target into one of the five classes the decision
// tree cares about.
func ClassifyTarget(target xproto.Atom, atoms Atoms) TargetClass {
	switch target {
	case atoms.String:
		return TargetString
	case atoms.UTF8String:
		return TargetUTF8String
	case atoms.Targets:
		return TargetTargets
	case atoms.Firefox:
		return TargetFirefoxSentinel
	default:
		return TargetUnsupported
	}
}

// IsTextTarget reports whether class is a target the engine can actually
// serve a payload for.
func (c TargetClass) IsTextTarget() bool {
	return c == TargetString || c == TargetUTF8String
}
