//go:build windows

package windows

import (
	"unsafe"

	xwin "golang.org/x/sys/windows"
)

// readWindowString fills a buffer of size UTF-16 units through fill, which
// returns the number of units copied
func readWindowString(size int, fill func(buf *uint16, n uintptr) uintptr) string {
	if size <= 0 {
		return ""
	}

	buf := make([]uint16, size)
	if fill(&buf[0], uintptr(len(buf))) == 0 {
		return ""
	}

	return xwin.UTF16ToString(buf)
}

// GetWindowText returns the caption of a window. Windows owned by hung
// processes or other desktops may report an empty title.
func GetWindowText(hwnd uintptr) string {
	length, _, _ := procGetWindowTextLengthW.Call(hwnd)

	return readWindowString(int(length)+1, func(buf *uint16, n uintptr) uintptr {
		ret, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(buf)), n)
		return ret
	})
}

// GetClassName returns the window class name
func GetClassName(hwnd uintptr) string {
	return readWindowString(MAX_CLASS_NAME, func(buf *uint16, n uintptr) uintptr {
		ret, _, _ := procGetClassNameW.Call(hwnd, uintptr(unsafe.Pointer(buf)), n)
		return ret
	})
}

// IsWindowVisible reports the WS_VISIBLE style, not whether the window is on screen
func IsWindowVisible(hwnd uintptr) bool {
	ret, _, _ := procIsWindowVisible.Call(hwnd)
	return ret != 0
}

// GetWindowPid returns the id of the process that created the window
func GetWindowPid(hwnd uintptr) uint32 {
	var pid uint32

	if tid, _, _ := procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid))); tid == 0 {
		return 0
	}

	return pid
}
