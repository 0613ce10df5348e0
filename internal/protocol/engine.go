// Package protocol implements the ICCCM selection-owner state machine:
// given one inbound X event at a time, it decides whether to answer,
// refuse, defer, or ask the controller to open the menu. It holds all of
// the process's selection-protocol state as ordinary struct fields — no
// package-level statics — and never performs X I/O itself.
package protocol

import (
	"multiselect/internal/x11"

	"github.com/jezek/xgb/xproto"
)

// DefaultShortInterval is the repeat-answer grace period of §4.2.2 rule 8:
// some requestors (xterm, opera, firefox) fire a second request immediately
// after the first, and that second request must get byte-identical
// treatment. Overridable at runtime via SetShortInterval (§4.8's
// short_interval_ms config tunable).
const DefaultShortInterval xproto.Timestamp = 80

// currentTime is the X protocol's CurrentTime sentinel (0): a request
// carrying it is always treated as not predating our ownership (§9's third
// open question).
const currentTime xproto.Timestamp = 0

// OwnershipState is NotOwner (Owned == false) or Owner{since} (§3).
type OwnershipState struct {
	Owned bool
	Since xproto.Timestamp
}

// ChoiceState mirrors §3's `None | Chosen{key}`. Key is an Index into
// SelectionList, or -1 for "the user picked an unmapped key and the
// request should be refused".
type ChoiceState struct {
	Chosen  bool
	Key     int
	Payload string
}

type lastAnswer struct {
	valid   bool
	refused bool
	payload string
}

// Engine is the ICCCM selection-owner state machine (§4.2). The zero value
// is not usable; construct with NewEngine.
type Engine struct {
	atoms          Atoms
	selfMenuWindow xproto.Window
	clickMode      bool
	shortInterval  xproto.Timestamp

	ownership        OwnershipState
	pending          *x11.SelectionRequestEvent
	menuVisible      bool
	exitAfterPending bool

	lastServedAt xproto.Timestamp
	haveServedAt bool
	lastAnswer   lastAnswer

	choice ChoiceState

	firefox          bool
	firefoxRequestor xproto.Window
}

// NewEngine constructs an Engine. selfMenuWindow is compared against
// R.requestor to implement rule 1 ("we never serve ourselves"); clickMode
// is false when -p (paste mode) was given.
func NewEngine(atoms Atoms, selfMenuWindow xproto.Window, clickMode bool) *Engine {
	return &Engine{
		atoms:          atoms,
		selfMenuWindow: selfMenuWindow,
		clickMode:      clickMode,
		shortInterval:  DefaultShortInterval,
	}
}

// SetShortInterval overrides the repeat-answer grace period, for config
// hot-reload (§4.8).
func (e *Engine) SetShortInterval(d xproto.Timestamp) {
	e.shortInterval = d
}

// Ownership reports the current ownership state.
func (e *Engine) Ownership() OwnershipState { return e.ownership }

// Acquire records that we now own the selection as of since, obtained via
// the time-for-now trick immediately after SetSelectionOwner (§3, §4.2.4).
// The actual SetSelectionOwner/readback/CUT_BUFFER0-delete I/O is the
// caller's responsibility; Acquire only updates engine state.
func (e *Engine) Acquire(since xproto.Timestamp) {
	e.ownership = OwnershipState{Owned: true, Since: since}
}

// Disown records that we no longer own the selection, whether by our own
// choice or because we lost it (SelectionClear).
func (e *Engine) Disown() {
	e.ownership = OwnershipState{}
}

// Pending returns the currently outstanding request, or nil.
func (e *Engine) Pending() *x11.SelectionRequestEvent { return e.pending }

// SetMenuVisible tells the engine whether the menu window is currently
// mapped, which gates rule 5 ("do not interleave").
func (e *Engine) SetMenuVisible(v bool) { e.menuVisible = v }

// SetChoice records the user's pick (or refusal, key < 0), to be consumed
// by the next SelectionRequest under rule 7. Payload is looked up by the
// controller from SelectionList before calling this, keeping the engine
// free of any dependency on the list.
func (e *Engine) SetChoice(key int, payload string) {
	e.choice = ChoiceState{Chosen: true, Key: key, Payload: payload}
}

// ClearChoice discards a pending choice without serving it.
func (e *Engine) ClearChoice() {
	e.choice = ChoiceState{}
}

func (e *Engine) withinShortInterval(now, last xproto.Timestamp) bool {
	if now < last {
		return false
	}
	return now-last <= e.shortInterval
}

func destinationProperty(r x11.SelectionRequestEvent, atoms Atoms) xproto.Atom {
	if r.Property != 0 {
		return r.Property
	}
	if r.Target != 0 {
		return r.Target
	}
	return atoms.XtSelection1
}

func refusalNotify(r x11.SelectionRequestEvent) []Action {
	return []Action{SendNotify{
		Requestor: r.Requestor,
		Selection: r.Selection,
		Target:    r.Target,
		Property:  0,
		Time:      r.Timestamp,
	}}
}

// staleTimestamp reports whether r predates our ownership (§4.2.3): a
// request whose time is not CurrentTime and is earlier than the timestamp
// we acquired ownership at must be refused, not answered.
func (e *Engine) staleTimestamp(r x11.SelectionRequestEvent) bool {
	if r.Timestamp == currentTime {
		return false
	}
	return r.Timestamp < e.ownership.Since
}

// serveAndRecord implements the send contract of §4.2.3 for a text-target
// reply, applying the staleness check, recording the outcome for the
// repeat rule, clearing PendingRequest, and appending Exit if a
// SelectionClear is waiting on this transaction to finish (§4.2.5).
func (e *Engine) serveAndRecord(r x11.SelectionRequestEvent, now xproto.Timestamp, payload string, refused bool) []Action {
	if !refused && e.staleTimestamp(r) {
		refused = true
		payload = ""
	}

	var actions []Action
	if refused {
		actions = refusalNotify(r)
	} else {
		prop := destinationProperty(r, e.atoms)
		actions = []Action{
			WriteStringProperty{Window: r.Requestor, Property: prop, Type: r.Target, Value: payload},
			SendNotify{Requestor: r.Requestor, Selection: r.Selection, Target: r.Target, Property: prop, Time: r.Timestamp},
		}
	}

	e.lastServedAt = now
	e.haveServedAt = true
	e.lastAnswer = lastAnswer{valid: true, refused: refused, payload: payload}
	e.pending = nil

	if e.exitAfterPending {
		e.exitAfterPending = false
		actions = append(actions, Exit{})
	}
	return actions
}

func (e *Engine) replyTargets(r x11.SelectionRequestEvent) []Action {
	prop := destinationProperty(r, e.atoms)
	return []Action{
		WriteAtomListProperty{Window: r.Requestor, Property: prop, Atoms: []xproto.Atom{e.atoms.String, e.atoms.UTF8String}},
		SendNotify{Requestor: r.Requestor, Selection: r.Selection, Target: r.Target, Property: prop, Time: r.Timestamp},
	}
}

// FabricatePending installs a synthetic PendingRequest whose requestor is
// requestor and whose target is target, with Property left at None and
// Timestamp left at CurrentTime (§4.4's `-f force`: fabricate a request
// when the menu was opened by hotkey rather than by a real pasting
// client). Because Timestamp is CurrentTime, the staleness check in
// ServePending's eventual serveAndRecord always treats it as valid,
// matching the documented resolution of §9's third open question.
func (e *Engine) FabricatePending(requestor xproto.Window, target xproto.Atom, selection xproto.Atom) {
	e.pending = &x11.SelectionRequestEvent{
		Requestor: requestor,
		Selection: selection,
		Target:    target,
		Property:  0,
		Timestamp: currentTime,
	}
}

// ServePending directly answers the outstanding PendingRequest without
// going through the decision tree. This is the non-click ("-p", paste)
// mode pick path of §4.4: the controller sends the chosen payload straight
// to the requestor that is already waiting, rather than refusing it and
// waiting for a fresh request provoked by a synthetic click. Returns nil
// if there is no pending request.
func (e *Engine) ServePending(now xproto.Timestamp, payload string, refuse bool) []Action {
	if e.pending == nil {
		return nil
	}
	r := *e.pending
	if refuse {
		return e.serveAndRecord(r, now, "", true)
	}
	return e.serveAndRecord(r, now, payload, false)
}

// HandleSelectionRequest runs the decision tree of §4.2.2 against a single
// inbound request and returns the actions the caller must carry out.
func (e *Engine) HandleSelectionRequest(r x11.SelectionRequestEvent, now xproto.Timestamp) []Action {
	// Rule 1: never serve ourselves.
	if r.Requestor == e.selfMenuWindow {
		return refusalNotify(r)
	}

	// Rule 2: TARGETS is always answered, and never touches LastServedAt.
	if r.Target == e.atoms.Targets {
		return e.replyTargets(r)
	}

	class := ClassifyTarget(r.Target, e.atoms)

	// Rule 3: tag the firefox latch, then fall through to rule 4 as if
	// the sentinel target were itself unsupported — it carries no payload
	// we could serve even once tagged.
	unsupported := class == TargetUnsupported
	if !e.clickMode && class == TargetFirefoxSentinel {
		e.firefox = true
		e.firefoxRequestor = r.Requestor
		unsupported = true
	}

	// Rule 4.
	if unsupported {
		return refusalNotify(r)
	}

	// Rule 5: never interleave with an in-progress decision.
	if e.menuVisible {
		return refusalNotify(r)
	}

	// Rule 6: the real request following a tagged firefox probe.
	if e.firefox && r.Requestor == e.firefoxRequestor {
		e.firefox = false
		if e.lastAnswer.valid && !e.lastAnswer.refused {
			return e.serveAndRecord(r, now, e.lastAnswer.payload, false)
		}
		return e.serveAndRecord(r, now, "", true)
	}

	// Rule 7: the user already decided, in click mode.
	if e.clickMode && e.choice.Chosen {
		choice := e.choice
		e.choice = ChoiceState{}
		if choice.Key < 0 {
			return e.serveAndRecord(r, now, "", true)
		}
		return e.serveAndRecord(r, now, choice.Payload, false)
	}

	// Rule 8: repeat a very recent answer verbatim.
	if e.haveServedAt && e.lastAnswer.valid && e.withinShortInterval(now, e.lastServedAt) {
		return e.serveAndRecord(r, now, e.lastAnswer.payload, e.lastAnswer.refused)
	}

	// Rule 9: defer to the user.
	rCopy := r
	e.pending = &rCopy
	var actions []Action
	if e.clickMode {
		actions = append(actions, refusalNotify(r)...)
	}
	actions = append(actions, OpenMenu{})
	return actions
}

// HandleSelectionClear applies §4.2.5's loss-of-ownership policy.
func (e *Engine) HandleSelectionClear(mode ModeFlags) []Action {
	e.Disown()
	switch {
	case mode.Continuous:
		// Per the documented resolution of an ambiguous source behaviour:
		// continuous mode keeps running, re-requests the new owner's
		// value, and ignores the usual exit-on-clear rule until q/F5.
		return []Action{RequestCapture{}}
	case mode.Daemon:
		return nil
	default:
		if e.pending == nil {
			return []Action{Exit{}}
		}
		e.exitAfterPending = true
		return nil
	}
}
