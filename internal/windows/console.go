//go:build windows

package windows

import (
	"syscall"
)

// ConsoleCtrlHandler is a callback function for console control events
type ConsoleCtrlHandler func(ctrlType uint32) uintptr

var (
	globalHandler   ConsoleCtrlHandler
	consoleCallback = syscall.NewCallback(consoleCtrlHandlerCallback)
)

// SetConsoleCtrlHandler registers handler for Ctrl+C, console close, logoff
// and shutdown. Only the most recent handler is called.
func SetConsoleCtrlHandler(handler ConsoleCtrlHandler) error {
	globalHandler = handler

	ret, _, err := procSetConsoleCtrlHandler.Call(consoleCallback, 1)
	if ret == 0 {
		return err
	}

	return nil
}

func consoleCtrlHandlerCallback(ctrlType uint32) uintptr {
	if globalHandler != nil {
		return globalHandler(ctrlType)
	}

	return 0 // FALSE - let default handler process it
}
