//go:build windows

package windows

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"syscall"
	"unsafe"

	xwin "golang.org/x/sys/windows"

	"github.com/Norgate-AV/deskctl/internal/desktop"
	"github.com/Norgate-AV/deskctl/internal/logger"
)

// Enumeration callbacks are created once; syscall.NewCallback slots are never
// freed. enumMu serialises use of the shared collectors.
var (
	enumMu        sync.Mutex
	enumHwnds     []uintptr
	enumNames     []string
	windowEnumCb  = syscall.NewCallback(collectWindow)
	desktopEnumCb = syscall.NewCallback(collectDesktop)
)

func collectWindow(hwnd, _ uintptr) uintptr {
	enumHwnds = append(enumHwnds, hwnd)
	return 1
}

func collectDesktop(name *uint16, _ uintptr) uintptr {
	enumNames = append(enumNames, xwin.UTF16PtrToString(name))
	return 1
}

// nativeAPI implements desktop.Native with user32 and kernel32.
type nativeAPI struct {
	log logger.LoggerInterface
}

// NewNative returns the Windows implementation of desktop.Native.
func NewNative(log logger.LoggerInterface) desktop.Native {
	return &nativeAPI{log: log}
}

func (n *nativeAPI) OpenDesktop(name string, access uint32) (uintptr, error) {
	namePtr, err := syscall.UTF16PtrFromString(name)
	if err != nil {
		return 0, err
	}

	hdesk, _, err := procOpenDesktopW.Call(
		uintptr(unsafe.Pointer(namePtr)),
		0, // dwFlags
		0, // fInherit
		uintptr(access),
	)
	if hdesk == 0 {
		return 0, fmt.Errorf("OpenDesktop: %w", err)
	}

	return hdesk, nil
}

func (n *nativeAPI) CreateDesktop(name string, access uint32) (uintptr, error) {
	namePtr, err := syscall.UTF16PtrFromString(name)
	if err != nil {
		return 0, err
	}

	hdesk, _, err := procCreateDesktopW.Call(
		uintptr(unsafe.Pointer(namePtr)),
		0, // lpszDevice, reserved
		0, // pDevmode, reserved
		0, // dwFlags
		uintptr(access),
		0, // lpsa, default security
	)
	if hdesk == 0 {
		return 0, fmt.Errorf("CreateDesktop: %w", err)
	}

	return hdesk, nil
}

func (n *nativeAPI) CloseDesktop(hdesk uintptr) error {
	ret, _, err := procCloseDesktop.Call(hdesk)
	if ret == 0 {
		return fmt.Errorf("CloseDesktop: %w", err)
	}

	return nil
}

func (n *nativeAPI) SwitchDesktop(hdesk uintptr) error {
	ret, _, err := procSwitchDesktop.Call(hdesk)
	if ret == 0 {
		return fmt.Errorf("SwitchDesktop: %w", err)
	}

	return nil
}

// ObjectName asks for the required size first, then reads the name.
func (n *nativeAPI) ObjectName(handle uintptr) (string, error) {
	var needed uint32

	ret, _, err := procGetUserObjectInformationW.Call(
		handle,
		UOI_NAME,
		0,
		0,
		uintptr(unsafe.Pointer(&needed)),
	)
	if ret == 0 && !errors.Is(err, xwin.ERROR_INSUFFICIENT_BUFFER) {
		return "", fmt.Errorf("GetUserObjectInformation size query: %w", err)
	}

	if needed == 0 {
		return "", nil
	}

	buf := make([]uint16, (needed+1)/2)

	ret, _, err = procGetUserObjectInformationW.Call(
		handle,
		UOI_NAME,
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)*2),
		uintptr(unsafe.Pointer(&needed)),
	)
	if ret == 0 {
		return "", fmt.Errorf("GetUserObjectInformation: %w", err)
	}

	return syscall.UTF16ToString(buf), nil
}

func (n *nativeAPI) EnumDesktopWindows(hdesk uintptr) ([]uintptr, error) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumHwnds = nil
	ret, _, err := procEnumDesktopWindows.Call(hdesk, windowEnumCb, 0)
	hwnds := enumHwnds
	enumHwnds = nil

	// A desktop without windows also returns FALSE, but leaves the last
	// error unset
	if ret == 0 && len(hwnds) == 0 && !errors.Is(err, xwin.ERROR_SUCCESS) {
		return nil, fmt.Errorf("EnumDesktopWindows: %w", err)
	}

	n.log.Trace("Enumerated desktop windows", slog.Int("count", len(hwnds)))
	return hwnds, nil
}

func (n *nativeAPI) ProcessWindowStation() (uintptr, error) {
	hwinsta, _, err := procGetProcessWindowStation.Call()
	if hwinsta == 0 {
		return 0, fmt.Errorf("GetProcessWindowStation: %w", err)
	}

	return hwinsta, nil
}

func (n *nativeAPI) EnumDesktops(hwinsta uintptr) ([]string, error) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumNames = nil
	ret, _, err := procEnumDesktopsW.Call(hwinsta, desktopEnumCb, 0)
	names := enumNames
	enumNames = nil

	if ret == 0 {
		return nil, fmt.Errorf("EnumDesktops: %w", err)
	}

	return names, nil
}

func (n *nativeAPI) CurrentThreadID() uint32 {
	return xwin.GetCurrentThreadId()
}

func (n *nativeAPI) ThreadDesktop(threadID uint32) (uintptr, error) {
	hdesk, _, err := procGetThreadDesktop.Call(uintptr(threadID))
	if hdesk == 0 {
		return 0, fmt.Errorf("GetThreadDesktop(%d): %w", threadID, err)
	}

	return hdesk, nil
}

func (n *nativeAPI) SetThreadDesktop(hdesk uintptr) error {
	ret, _, err := procSetThreadDesktop.Call(hdesk)
	if ret == 0 {
		return fmt.Errorf("SetThreadDesktop: %w", err)
	}

	return nil
}

func (n *nativeAPI) CreateProcess(path, desk string) (desktop.ProcessInfo, error) {
	cmdLine, err := xwin.UTF16PtrFromString(xwin.EscapeArg(path))
	if err != nil {
		return desktop.ProcessInfo{}, err
	}

	deskPtr, err := xwin.UTF16PtrFromString(desk)
	if err != nil {
		return desktop.ProcessInfo{}, err
	}

	si := xwin.StartupInfo{
		Cb:      uint32(unsafe.Sizeof(xwin.StartupInfo{})),
		Desktop: deskPtr,
	}
	var pi xwin.ProcessInformation

	err = xwin.CreateProcess(
		nil,     // lpApplicationName (use cmdLine)
		cmdLine, // lpCommandLine
		nil,     // lpProcessAttributes
		nil,     // lpThreadAttributes
		false,   // bInheritHandles
		0,
		nil, // lpEnvironment (inherit)
		nil, // lpCurrentDirectory (inherit)
		&si,
		&pi,
	)
	if err != nil {
		return desktop.ProcessInfo{}, fmt.Errorf("CreateProcess(%s): %w", path, err)
	}

	if err := xwin.CloseHandle(pi.Thread); err != nil {
		n.log.Debug("Failed to close thread handle", slog.Any("error", err))
	}

	return desktop.ProcessInfo{Handle: uintptr(pi.Process), PID: pi.ProcessId}, nil
}

func (n *nativeAPI) CloseHandle(handle uintptr) error {
	return xwin.CloseHandle(xwin.Handle(handle))
}

func (n *nativeAPI) Threads() ([]desktop.ThreadEntry, error) {
	snapshot, err := xwin.CreateToolhelp32Snapshot(xwin.TH32CS_SNAPTHREAD, 0)
	if err != nil {
		return nil, fmt.Errorf("CreateToolhelp32Snapshot: %w", err)
	}

	defer func() {
		if err := xwin.CloseHandle(snapshot); err != nil {
			n.log.Debug("Failed to close thread snapshot", slog.Any("error", err))
		}
	}()

	var entry xwin.ThreadEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	if err := xwin.Thread32First(snapshot, &entry); err != nil {
		return nil, fmt.Errorf("Thread32First: %w", err)
	}

	var threads []desktop.ThreadEntry
	for {
		threads = append(threads, desktop.ThreadEntry{
			ThreadID: entry.ThreadID,
			OwnerPID: entry.OwnerProcessID,
		})

		if err := xwin.Thread32Next(snapshot, &entry); err != nil {
			break
		}
	}

	return threads, nil
}

func (n *nativeAPI) Processes() ([]desktop.ProcessEntry, error) {
	snapshot, err := xwin.CreateToolhelp32Snapshot(xwin.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("CreateToolhelp32Snapshot: %w", err)
	}

	defer func() {
		if err := xwin.CloseHandle(snapshot); err != nil {
			n.log.Debug("Failed to close process snapshot", slog.Any("error", err))
		}
	}()

	var entry xwin.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	if err := xwin.Process32First(snapshot, &entry); err != nil {
		return nil, fmt.Errorf("Process32First: %w", err)
	}

	var procs []desktop.ProcessEntry
	for {
		procs = append(procs, desktop.ProcessEntry{
			PID:       entry.ProcessID,
			ParentPID: entry.ParentProcessID,
			ExeFile:   xwin.UTF16ToString(entry.ExeFile[:]),
			Threads:   entry.Threads,
		})

		if err := xwin.Process32Next(snapshot, &entry); err != nil {
			break
		}
	}

	return procs, nil
}
