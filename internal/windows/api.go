//go:build windows

package windows

import (
	"syscall"
)

var (
	user32                        = syscall.NewLazyDLL("user32.dll")
	procOpenDesktopW              = user32.NewProc("OpenDesktopW")
	procCreateDesktopW            = user32.NewProc("CreateDesktopW")
	procCloseDesktop              = user32.NewProc("CloseDesktop")
	procSwitchDesktop             = user32.NewProc("SwitchDesktop")
	procEnumDesktopsW             = user32.NewProc("EnumDesktopsW")
	procEnumDesktopWindows        = user32.NewProc("EnumDesktopWindows")
	procGetProcessWindowStation   = user32.NewProc("GetProcessWindowStation")
	procGetThreadDesktop          = user32.NewProc("GetThreadDesktop")
	procSetThreadDesktop          = user32.NewProc("SetThreadDesktop")
	procGetUserObjectInformationW = user32.NewProc("GetUserObjectInformationW")
	procSendInput                 = user32.NewProc("SendInput")
	procGetWindowTextW            = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW      = user32.NewProc("GetWindowTextLengthW")
	procGetClassNameW             = user32.NewProc("GetClassNameW")
	procGetWindowThreadProcessId  = user32.NewProc("GetWindowThreadProcessId")
	procIsWindowVisible           = user32.NewProc("IsWindowVisible")
	kernel32                      = syscall.NewLazyDLL("kernel32.dll")
	procSetConsoleCtrlHandler     = kernel32.NewProc("SetConsoleCtrlHandler")
)

const (
	UOI_NAME       = 2
	MAX_CLASS_NAME = 256
)
