// Package errs holds the sentinel errors used across multiselect, per the
// error taxonomy of the selection-owner protocol.
package errs

import "errors"

// Fatal startup errors. A caller encountering one of these should log it and
// exit non-zero, except OwnershipDenied when -c was given (see
// acquireOnStartup in cmd/multiselect).
var (
	ErrDisplayOpen     = errors.New("failed to open X display")
	ErrSingletonClash  = errors.New("another instance is already running")
	ErrOwnershipDenied = errors.New("failed to acquire PRIMARY selection")
)

// Per-request errors. The protocol engine refuses the specific request and
// keeps running; these are never fatal.
var (
	ErrUnsupportedTarget   = errors.New("unsupported selection target")
	ErrStaleTimestamp      = errors.New("request predates ownership")
	ErrRequestWhilePending = errors.New("a request is already pending")
	ErrRequestFromSelf     = errors.New("requestor is our own menu window")
)

// Soft errors that degrade a single operation without affecting the rest of
// the program.
var (
	ErrPropertyReadFailed = errors.New("failed to read selection property")
	ErrListFull           = errors.New("selection list is full")
	ErrNoOwnerToCapture   = errors.New("no other PRIMARY owner to capture from")
	ErrGrabFailed         = errors.New("failed to grab key or pointer")
)
