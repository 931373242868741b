package windows

// Inspector reads window details through user32
type Inspector struct{}

func (Inspector) Title(hwnd uintptr) string { return GetWindowText(hwnd) }
func (Inspector) Class(hwnd uintptr) string { return GetClassName(hwnd) }
func (Inspector) Pid(hwnd uintptr) uint32   { return GetWindowPid(hwnd) }
func (Inspector) Visible(hwnd uintptr) bool { return IsWindowVisible(hwnd) }

// Console control event types
const (
	CTRL_C_EVENT        = 0
	CTRL_BREAK_EVENT    = 1
	CTRL_CLOSE_EVENT    = 2
	CTRL_LOGOFF_EVENT   = 5
	CTRL_SHUTDOWN_EVENT = 6
)

// GetCtrlTypeName returns a human-readable name for a control event type
func GetCtrlTypeName(ctrlType uint32) string {
	switch ctrlType {
	case CTRL_C_EVENT:
		return "CTRL_C"
	case CTRL_BREAK_EVENT:
		return "CTRL_BREAK"
	case CTRL_CLOSE_EVENT:
		return "CTRL_CLOSE"
	case CTRL_LOGOFF_EVENT:
		return "CTRL_LOGOFF"
	case CTRL_SHUTDOWN_EVENT:
		return "CTRL_SHUTDOWN"
	default:
		return "UNKNOWN"
	}
}
