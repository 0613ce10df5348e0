package controller

import (
	"github.com/pkg/errors"

	"multiselect/internal/errs"
)

// Acquire performs the full ownership-acquisition sequence of §4.2.4: set
// owner, read back to confirm, obtain `since` via the time-for-now trick,
// and clear the root CUT_BUFFER0 property so clients falling back to cut
// buffers after a refusal don't see stale data.
func (c *Controller) Acquire() error {
	root := c.conn.Root()
	if err := c.conn.SetSelectionOwner(c.menuWindow, c.atoms.Primary, 0); err != nil {
		return errors.Wrap(err, "set selection owner")
	}
	owner, err := c.conn.GetSelectionOwner(c.atoms.Primary)
	if err != nil {
		return errors.Wrap(err, "confirm selection owner")
	}
	if owner != c.menuWindow {
		return errors.Wrap(errs.ErrOwnershipDenied, "another owner won the race")
	}
	since, err := c.conn.Now()
	if err != nil {
		return errors.Wrap(err, "obtain acquisition timestamp")
	}
	c.engine.Acquire(since)
	if err := c.conn.DeleteProperty(root, c.atoms.CutBuffer0); err != nil {
		// Not fatal: absence of CUT_BUFFER0 is the common case.
		c.log.Printf("delete CUT_BUFFER0: %v", err)
	}
	return nil
}

// Disown releases ownership (used at exit).
func (c *Controller) Disown() {
	c.conn.SetSelectionOwner(0, c.atoms.Primary, 0)
	c.engine.Disown()
}
