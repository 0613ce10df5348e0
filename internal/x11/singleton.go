package x11

// Sentinel window names multiselect and multiselectd register themselves
// under, scanned for by FindRunningInstance (§4.6: "at most one instance of
// either mode runs at a time").
const (
	SentinelForeground = "multiselect"
	SentinelDaemon     = "multiselectd"
)

// FindRunningInstance scans the root window's children for a window named
// SentinelForeground or SentinelDaemon, returning true if either is found.
// Grounded on the teacher's singleton check in cmd/run.go, generalized from
// a lock-file probe to a window-name probe since multiselect's own windows
// are already visible on the same display it would otherwise race to open.
func (c *Conn) FindRunningInstance() (bool, error) {
	children, err := c.RootChildren()
	if err != nil {
		return false, err
	}
	for _, w := range children {
		name := c.WindowName(w)
		if name == SentinelForeground || name == SentinelDaemon {
			return true, nil
		}
	}
	return false, nil
}
