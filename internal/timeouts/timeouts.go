// Package timeouts defines delay constants for input injection and desktop
// switching.
package timeouts

import "time"

const (
	// Input Injection Delays

	// KeystrokeDelay is the delay between key down and key up so that the
	// receiving message loop observes the key as held.
	KeystrokeDelay = 50 * time.Millisecond

	// MouseClickDelay is the delay between button down and button up.
	MouseClickDelay = 30 * time.Millisecond

	// Desktop Switching

	// ShellStartDelay gives the shell started by Prepare time to create its
	// taskbar before the desktop is shown. Switching to a desktop with no
	// windows shows a blank screen.
	ShellStartDelay = 2 * time.Second

	// SwitchBackTimeout bounds how long the hold command keeps retrying the
	// switch back to the Default desktop on exit.
	SwitchBackTimeout = 5 * time.Second

	// SwitchRetryInterval is the delay between SwitchDesktop retries. The call
	// fails while a secure desktop (UAC, lock screen) is active.
	SwitchRetryInterval = 250 * time.Millisecond
)
