//go:build !windows

package windows

import (
	"github.com/Norgate-AV/deskctl/internal/desktop"
	"github.com/Norgate-AV/deskctl/internal/logger"
)

type unsupportedNative struct{}

// NewNative returns a desktop.Native whose every call fails with
// desktop.ErrUnsupported.
func NewNative(_ logger.LoggerInterface) desktop.Native {
	return unsupportedNative{}
}

func (unsupportedNative) OpenDesktop(string, uint32) (uintptr, error) {
	return 0, desktop.ErrUnsupported
}

func (unsupportedNative) CreateDesktop(string, uint32) (uintptr, error) {
	return 0, desktop.ErrUnsupported
}

func (unsupportedNative) CloseDesktop(uintptr) error  { return desktop.ErrUnsupported }
func (unsupportedNative) SwitchDesktop(uintptr) error { return desktop.ErrUnsupported }

func (unsupportedNative) ObjectName(uintptr) (string, error) {
	return "", desktop.ErrUnsupported
}

func (unsupportedNative) EnumDesktopWindows(uintptr) ([]uintptr, error) {
	return nil, desktop.ErrUnsupported
}

func (unsupportedNative) ProcessWindowStation() (uintptr, error) {
	return 0, desktop.ErrUnsupported
}

func (unsupportedNative) EnumDesktops(uintptr) ([]string, error) {
	return nil, desktop.ErrUnsupported
}

func (unsupportedNative) CurrentThreadID() uint32 { return 0 }

func (unsupportedNative) ThreadDesktop(uint32) (uintptr, error) {
	return 0, desktop.ErrUnsupported
}

func (unsupportedNative) SetThreadDesktop(uintptr) error { return desktop.ErrUnsupported }

func (unsupportedNative) CreateProcess(string, string) (desktop.ProcessInfo, error) {
	return desktop.ProcessInfo{}, desktop.ErrUnsupported
}

func (unsupportedNative) CloseHandle(uintptr) error { return desktop.ErrUnsupported }

func (unsupportedNative) Threads() ([]desktop.ThreadEntry, error) {
	return nil, desktop.ErrUnsupported
}

func (unsupportedNative) Processes() ([]desktop.ProcessEntry, error) {
	return nil, desktop.ErrUnsupported
}
