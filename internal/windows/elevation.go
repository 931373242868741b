//go:build windows

package windows

import xwin "golang.org/x/sys/windows"

// IsElevated reports whether the process token is elevated. Creating and
// switching desktops works without elevation, but desktops of other sessions
// and the Winlogon desktop need it.
func IsElevated() bool {
	return xwin.GetCurrentProcessToken().IsElevated()
}
