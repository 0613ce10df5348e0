// Package helper runs the optional external paste helper configured with
// -e PROG (§6.3). It is a thin exec.Command wrapper, grounded on the
// probe/action shape the teacher uses for its hook commands.
package helper

import (
	"context"
	"os/exec"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Helper invokes an external program to test and then (optionally)
// perform a paste on our behalf, ahead of the normal X send path.
type Helper struct {
	prog    string
	timeout time.Duration
}

// New returns a Helper that runs prog, or a no-op Helper if prog is empty.
func New(prog string) *Helper {
	return &Helper{prog: prog, timeout: 2 * time.Second}
}

// Enabled reports whether a helper program was configured.
func (h *Helper) Enabled() bool {
	return h != nil && h.prog != ""
}

// Probe runs "PROG test REQUESTOR_HEX PAYLOAD" and reports whether it
// exited 0 (meaning Act should be run instead of the normal X send path).
func (h *Helper) Probe(ctx context.Context, requestor uint32, payload string) (bool, error) {
	if !h.Enabled() {
		return false, nil
	}
	return h.run(ctx, "test", requestor, payload)
}

// Act runs "PROG paste REQUESTOR_HEX PAYLOAD", the action counterpart to a
// successful Probe.
func (h *Helper) Act(ctx context.Context, requestor uint32, payload string) error {
	if !h.Enabled() {
		return nil
	}
	_, err := h.run(ctx, "paste", requestor, payload)
	return err
}

func (h *Helper) run(ctx context.Context, verb string, requestor uint32, payload string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, h.prog, verb, strconv.FormatUint(uint64(requestor), 16), payload)
	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, errors.Wrapf(err, "run external helper %q", h.prog)
}
