//go:build !windows

package windows

func GetWindowText(hwnd uintptr) string { return "" }
func GetClassName(hwnd uintptr) string  { return "" }
func IsWindowVisible(hwnd uintptr) bool { return false }
func GetWindowPid(hwnd uintptr) uint32  { return 0 }
