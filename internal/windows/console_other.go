//go:build !windows

package windows

// ConsoleCtrlHandler is a callback function for console control events
type ConsoleCtrlHandler func(ctrlType uint32) uintptr

// SetConsoleCtrlHandler is a no-op off Windows; os/signal covers Ctrl+C there.
func SetConsoleCtrlHandler(handler ConsoleCtrlHandler) error {
	return nil
}
