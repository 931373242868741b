package desktop

// ThreadEntry is one row of a thread snapshot.
type ThreadEntry struct {
	ThreadID uint32
	OwnerPID uint32
}

// ProcessEntry is one row of a process snapshot.
type ProcessEntry struct {
	PID       uint32
	ParentPID uint32
	ExeFile   string
	Threads   uint32
}

// ProcessInfo is what CreateProcess hands back. Thread is closed by the
// native layer before returning.
type ProcessInfo struct {
	Handle uintptr
	PID    uint32
}

// Native is the boundary to the OS desktop API. Every method maps to a single
// user32/kernel32 entry point (or a fixed pair, in the case of ObjectName).
// Handles are zero on failure; the returned error carries the last OS error.
type Native interface {
	OpenDesktop(name string, access uint32) (uintptr, error)
	CreateDesktop(name string, access uint32) (uintptr, error)
	CloseDesktop(hdesk uintptr) error
	SwitchDesktop(hdesk uintptr) error

	// ObjectName returns the UOI_NAME of a desktop or window station handle.
	ObjectName(handle uintptr) (string, error)

	// EnumDesktopWindows collects every top-level window on hdesk.
	EnumDesktopWindows(hdesk uintptr) ([]uintptr, error)

	// ProcessWindowStation returns the borrowed window station handle of the
	// calling process.
	ProcessWindowStation() (uintptr, error)
	EnumDesktops(hwinsta uintptr) ([]string, error)

	CurrentThreadID() uint32
	// ThreadDesktop returns a borrowed handle that must not be closed.
	ThreadDesktop(threadID uint32) (uintptr, error)
	SetThreadDesktop(hdesk uintptr) error

	// CreateProcess launches path with STARTUPINFO.lpDesktop set to desktop.
	CreateProcess(path, desktop string) (ProcessInfo, error)
	CloseHandle(handle uintptr) error

	Threads() ([]ThreadEntry, error)
	Processes() ([]ProcessEntry, error)
}
