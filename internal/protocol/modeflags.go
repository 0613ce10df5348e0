package protocol

// ModeFlags are the boolean switches fixed at startup (§3) that alter the
// engine's and controller's decision trees. Click is true unless -p (paste
// mode) was given.
type ModeFlags struct {
	Daemon     bool
	Continuous bool
	Immediate  bool
	Click      bool
	Force      bool
	HotkeyF1   bool
	HotkeyF2   bool
	HotkeyF5   bool
}
