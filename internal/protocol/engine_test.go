package protocol_test

import (
	"testing"

	"multiselect/internal/protocol"
	"multiselect/internal/x11"

	"github.com/jezek/xgb/xproto"
)

const (
	atomString     xproto.Atom = 100
	atomUTF8       xproto.Atom = 101
	atomTargets    xproto.Atom = 102
	atomFirefox    xproto.Atom = 103
	atomXt         xproto.Atom = 104
	atomOther      xproto.Atom = 199
	selfMenuWindow xproto.Window = 1
	otherWindow    xproto.Window = 2
)

func testAtoms() protocol.Atoms {
	return protocol.Atoms{
		String:       atomString,
		UTF8String:   atomUTF8,
		Targets:      atomTargets,
		Firefox:      atomFirefox,
		XtSelection1: atomXt,
	}
}

func newOwnedEngine(clickMode bool) *protocol.Engine {
	e := protocol.NewEngine(testAtoms(), selfMenuWindow, clickMode)
	e.Acquire(1000)
	return e
}

func findSendNotify(actions []protocol.Action) (protocol.SendNotify, bool) {
	for _, a := range actions {
		if sn, ok := a.(protocol.SendNotify); ok {
			return sn, true
		}
	}
	return protocol.SendNotify{}, false
}

func findWriteString(actions []protocol.Action) (protocol.WriteStringProperty, bool) {
	for _, a := range actions {
		if w, ok := a.(protocol.WriteStringProperty); ok {
			return w, true
		}
	}
	return protocol.WriteStringProperty{}, false
}

// Scenario 1: pick entry "bar" via click mode, answer must carry it.
func TestScenarioPickAnswersChosenPayload(t *testing.T) {
	e := newOwnedEngine(true)
	req := x11.SelectionRequestEvent{Requestor: otherWindow, Target: atomString, Timestamp: 2000}
	actions := e.HandleSelectionRequest(req, 2000)
	if _, ok := findOpenMenu(actions); !ok {
		t.Fatalf("expected OpenMenu action, got %#v", actions)
	}
	e.SetChoice(1, "bar")
	// The synthetic middle-click provokes a fresh request from the same
	// requestor; this is what rule 7 answers.
	req2 := x11.SelectionRequestEvent{Requestor: otherWindow, Target: atomString, Timestamp: 2010}
	actions2 := e.HandleSelectionRequest(req2, 2010)
	w, ok := findWriteString(actions2)
	if !ok || w.Value != "bar" {
		t.Fatalf("expected write of \"bar\", got %#v", actions2)
	}
	sn, ok := findSendNotify(actions2)
	if !ok || sn.Property == 0 {
		t.Fatalf("expected successful SendNotify, got %#v", actions2)
	}
}

func findOpenMenu(actions []protocol.Action) (protocol.OpenMenu, bool) {
	for _, a := range actions {
		if om, ok := a.(protocol.OpenMenu); ok {
			return om, true
		}
	}
	return protocol.OpenMenu{}, false
}

// Scenario 2: invalid key picked -> refusal; duplicate within 80ms repeats refusal.
func TestScenarioInvalidKeyRefusalRepeats(t *testing.T) {
	e := newOwnedEngine(true)
	req := x11.SelectionRequestEvent{Requestor: otherWindow, Target: atomString, Timestamp: 5000}
	e.HandleSelectionRequest(req, 5000)
	e.SetChoice(-1, "")
	req2 := x11.SelectionRequestEvent{Requestor: otherWindow, Target: atomString, Timestamp: 5010}
	actions2 := e.HandleSelectionRequest(req2, 5010)
	sn, ok := findSendNotify(actions2)
	if !ok || sn.Property != 0 {
		t.Fatalf("expected refusal SendNotify, got %#v", actions2)
	}
	req3 := x11.SelectionRequestEvent{Requestor: otherWindow, Target: atomString, Timestamp: 5050}
	actions3 := e.HandleSelectionRequest(req3, 5050)
	sn3, ok := findSendNotify(actions3)
	if !ok || sn3.Property != 0 {
		t.Fatalf("expected repeated refusal within short interval, got %#v", actions3)
	}
}

// Scenario 3 is covered by the selection package's separator tests; the
// engine only ever sees already-resolved payload strings.

// Scenario 4: firefox two-step dance.
func TestScenarioFirefoxLatch(t *testing.T) {
	e := newOwnedEngine(false) // -p / paste mode: !clickMode

	// A prior paste-mode transaction: request arrives, defers to the menu,
	// user picks "hello", controller serves it directly via ServePending.
	seedReq := x11.SelectionRequestEvent{Requestor: otherWindow, Target: atomString, Timestamp: 1100}
	actionsSeed := e.HandleSelectionRequest(seedReq, 1100)
	if _, ok := findOpenMenu(actionsSeed); !ok {
		t.Fatalf("expected first request in paste mode to open the menu, got %#v", actionsSeed)
	}
	served := e.ServePending(1110, "hello", false)
	if w, ok := findWriteString(served); !ok || w.Value != "hello" {
		t.Fatalf("expected seed payload \"hello\" to be served, got %#v", served)
	}

	sentinelReq := x11.SelectionRequestEvent{Requestor: otherWindow, Target: atomFirefox, Timestamp: 50000}
	actions := e.HandleSelectionRequest(sentinelReq, 50000)
	sn, ok := findSendNotify(actions)
	if !ok || sn.Property != 0 {
		t.Fatalf("expected sentinel request refused, got %#v", actions)
	}

	followUp := x11.SelectionRequestEvent{Requestor: otherWindow, Target: atomString, Timestamp: 50010}
	actions2 := e.HandleSelectionRequest(followUp, 50010)
	w2, ok := findWriteString(actions2)
	if !ok || w2.Value != "hello" {
		t.Fatalf("expected firefox follow-up answered with previously chosen payload, got %#v", actions2)
	}
}

// Scenario 6: list already full, z/F2 guard is a controller-level concern
// (the engine has no notion of list length); the guard lives in the
// controller's captureSelection.

func TestSelfRequestorAlwaysRefused(t *testing.T) {
	e := newOwnedEngine(true)
	req := x11.SelectionRequestEvent{Requestor: selfMenuWindow, Target: atomString, Timestamp: 10}
	actions := e.HandleSelectionRequest(req, 10)
	sn, ok := findSendNotify(actions)
	if !ok || sn.Property != 0 {
		t.Fatalf("expected refusal for self-requestor, got %#v", actions)
	}
}

func TestTargetsNeverRefusedAndFormat32(t *testing.T) {
	e := newOwnedEngine(true)
	req := x11.SelectionRequestEvent{Requestor: otherWindow, Target: atomTargets, Property: 555, Timestamp: 10}
	actions := e.HandleSelectionRequest(req, 10)
	var got protocol.WriteAtomListProperty
	found := false
	for _, a := range actions {
		if w, ok := a.(protocol.WriteAtomListProperty); ok {
			got = w
			found = true
		}
	}
	if !found {
		t.Fatalf("expected WriteAtomListProperty, got %#v", actions)
	}
	if len(got.Atoms) != 2 || got.Atoms[0] != atomString || got.Atoms[1] != atomUTF8 {
		t.Fatalf("unexpected TARGETS payload: %#v", got.Atoms)
	}
	sn, ok := findSendNotify(actions)
	if !ok || sn.Property == 0 {
		t.Fatalf("TARGETS reply must never refuse, got %#v", actions)
	}
}

func TestUnsupportedTargetRefused(t *testing.T) {
	e := newOwnedEngine(true)
	req := x11.SelectionRequestEvent{Requestor: otherWindow, Target: atomOther, Timestamp: 10}
	actions := e.HandleSelectionRequest(req, 10)
	sn, ok := findSendNotify(actions)
	if !ok || sn.Property != 0 {
		t.Fatalf("expected refusal for unsupported target, got %#v", actions)
	}
}

func TestMenuVisibleRefusesNewRequests(t *testing.T) {
	e := newOwnedEngine(true)
	e.SetMenuVisible(true)
	req := x11.SelectionRequestEvent{Requestor: otherWindow, Target: atomString, Timestamp: 10}
	actions := e.HandleSelectionRequest(req, 10)
	sn, ok := findSendNotify(actions)
	if !ok || sn.Property != 0 {
		t.Fatalf("expected refusal while menu visible, got %#v", actions)
	}
}

func TestPendingRequestCardinalityAtMostOne(t *testing.T) {
	e := newOwnedEngine(true)
	req1 := x11.SelectionRequestEvent{Requestor: otherWindow, Target: atomString, Timestamp: 10}
	e.HandleSelectionRequest(req1, 10)
	if e.Pending() == nil {
		t.Fatal("expected a pending request after rule 9")
	}
	req2 := x11.SelectionRequestEvent{Requestor: otherWindow, Target: atomString, Timestamp: 11}
	// click mode refuses req2 outright via rule 9's immediate-refuse branch,
	// but SetMenuVisible(true) better models "menu is now up" which the
	// controller would have done between these two calls.
	e.SetMenuVisible(true)
	e.HandleSelectionRequest(req2, 11)
	if e.Pending() == nil || e.Pending().Timestamp != req1.Timestamp {
		t.Fatal("original pending request must still be the one recorded")
	}
}

func TestStaleTimestampRefused(t *testing.T) {
	e := newOwnedEngine(true)
	e.SetChoice(0, "payload")
	req := x11.SelectionRequestEvent{Requestor: otherWindow, Target: atomString, Timestamp: 1} // before Since=1000
	actions := e.HandleSelectionRequest(req, 1)
	sn, ok := findSendNotify(actions)
	if !ok || sn.Property != 0 {
		t.Fatalf("expected refusal for stale timestamp, got %#v", actions)
	}
}

func TestCurrentTimeNeverStale(t *testing.T) {
	e := newOwnedEngine(true)
	e.SetChoice(0, "payload")
	req := x11.SelectionRequestEvent{Requestor: otherWindow, Target: atomString, Timestamp: 0}
	actions := e.HandleSelectionRequest(req, 0)
	sn, ok := findSendNotify(actions)
	if !ok || sn.Property == 0 {
		t.Fatalf("CurrentTime (0) must never be treated as stale, got %#v", actions)
	}
}

func TestSelectionClearDaemonStaysAlive(t *testing.T) {
	e := newOwnedEngine(true)
	actions := e.HandleSelectionClear(protocol.ModeFlags{Daemon: true})
	if len(actions) != 0 {
		t.Fatalf("daemon mode should take no action on clear, got %#v", actions)
	}
	if e.Ownership().Owned {
		t.Fatal("ownership should be cleared regardless of mode")
	}
}

func TestSelectionClearNonDaemonExitsImmediatelyWithNoPending(t *testing.T) {
	e := newOwnedEngine(true)
	actions := e.HandleSelectionClear(protocol.ModeFlags{})
	found := false
	for _, a := range actions {
		if _, ok := a.(protocol.Exit); ok {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Exit action, got %#v", actions)
	}
}

func TestSelectionClearNonDaemonWaitsForPending(t *testing.T) {
	e := newOwnedEngine(true)
	req := x11.SelectionRequestEvent{Requestor: otherWindow, Target: atomString, Timestamp: 10}
	e.HandleSelectionRequest(req, 10)
	actions := e.HandleSelectionClear(protocol.ModeFlags{})
	for _, a := range actions {
		if _, ok := a.(protocol.Exit); ok {
			t.Fatal("must not exit while a request is still pending")
		}
	}
	e.SetChoice(0, "x")
	req2 := x11.SelectionRequestEvent{Requestor: otherWindow, Target: atomString, Timestamp: 20}
	resolved := e.HandleSelectionRequest(req2, 20)
	found := false
	for _, a := range resolved {
		if _, ok := a.(protocol.Exit); ok {
			found = true
		}
	}
	if !found {
		t.Fatal("expected Exit once the deferred clear's pending request resolved")
	}
}

func TestSelectionClearContinuousRequestsCapture(t *testing.T) {
	e := newOwnedEngine(true)
	actions := e.HandleSelectionClear(protocol.ModeFlags{Continuous: true})
	found := false
	for _, a := range actions {
		if _, ok := a.(protocol.RequestCapture); ok {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected RequestCapture in continuous mode, got %#v", actions)
	}
}
