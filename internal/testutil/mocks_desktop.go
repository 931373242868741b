package testutil

import (
	"errors"
	"strings"
	"sync"

	"github.com/Norgate-AV/deskctl/internal/desktop"
)

// ErrMockFailure is returned by MockNative calls configured to fail.
var ErrMockFailure = errors.New("mock native failure")

// MockNative implements desktop.Native over an in-memory window station.
// Desktop names are matched case-insensitively, like the OS does.
type MockNative struct {
	Desktops      []string
	Windows       map[string][]uintptr
	ThreadList    []desktop.ThreadEntry
	ThreadDesks   map[uint32]string
	ProcessList   []desktop.ProcessEntry
	CurrentThread uint32

	FailWindowStation bool
	FailEnumDesktops  bool
	FailOpen          bool
	FailCreate        bool
	FailClose         bool
	FailSwitch        bool
	FailObjectName    bool
	FailEnumWindows   bool
	FailSetThread     bool
	FailCreateProcess bool
	FailThreads       bool
	FailProcesses     bool

	OpenCalls          []string
	CreateCalls        []string
	CloseCalls         []uintptr
	SwitchCalls        []uintptr
	SetThreadCalls     []uintptr
	ThreadDesktopCalls []uint32
	CreateProcessCalls []CreateProcessCall
	CloseHandleCalls   []uintptr

	// mu guards the handle table and CloseDesktop, which a runtime cleanup
	// may call from its own goroutine
	mu         sync.Mutex
	handles    map[uintptr]string
	nextHandle uintptr
	nextPID    uint32
}

// CreateProcessCall records one CreateProcess invocation.
type CreateProcessCall struct {
	Path    string
	Desktop string
}

func NewMockNative() *MockNative {
	return &MockNative{
		Desktops:      []string{desktop.DefaultDesktop},
		Windows:       make(map[string][]uintptr),
		ThreadDesks:   make(map[uint32]string),
		CurrentThread: 1,
		handles:       make(map[uintptr]string),
		nextHandle:    0x100,
		nextPID:       5000,
	}
}

// Helper methods for fluent configuration
func (m *MockNative) WithDesktops(names ...string) *MockNative {
	m.Desktops = append(m.Desktops, names...)
	return m
}

func (m *MockNative) WithWindows(desk string, hwnds ...uintptr) *MockNative {
	m.Windows[desk] = append(m.Windows[desk], hwnds...)
	return m
}

// WithThread adds a thread owned by pid attached to desk.
func (m *MockNative) WithThread(tid, pid uint32, desk string) *MockNative {
	m.ThreadList = append(m.ThreadList, desktop.ThreadEntry{ThreadID: tid, OwnerPID: pid})
	m.ThreadDesks[tid] = desk
	return m
}

func (m *MockNative) WithProcess(pid uint32, exe string) *MockNative {
	m.ProcessList = append(m.ProcessList, desktop.ProcessEntry{PID: pid, ExeFile: exe})
	return m
}

// WithCurrentThread sets the calling thread id and the desktop it is bound to.
func (m *MockNative) WithCurrentThread(tid uint32, desk string) *MockNative {
	m.CurrentThread = tid
	m.ThreadDesks[tid] = desk
	return m
}

// OpenHandles returns how many handles are open and not yet closed.
func (m *MockNative) OpenHandles() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.handles)
}

// SetFailClose toggles CloseDesktop failures; safe while cleanups run.
func (m *MockNative) SetFailClose(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FailClose = fail
}

func (m *MockNative) find(name string) (string, bool) {
	for _, d := range m.Desktops {
		if strings.EqualFold(d, name) {
			return d, true
		}
	}

	return "", false
}

func (m *MockNative) allocate(name string) uintptr {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextHandle += 4
	m.handles[m.nextHandle] = name
	return m.nextHandle
}

func (m *MockNative) OpenDesktop(name string, access uint32) (uintptr, error) {
	m.OpenCalls = append(m.OpenCalls, name)

	real, ok := m.find(name)
	if m.FailOpen || !ok {
		return 0, ErrMockFailure
	}

	return m.allocate(real), nil
}

func (m *MockNative) CreateDesktop(name string, access uint32) (uintptr, error) {
	m.CreateCalls = append(m.CreateCalls, name)

	if m.FailCreate {
		return 0, ErrMockFailure
	}

	real, ok := m.find(name)
	if !ok {
		m.Desktops = append(m.Desktops, name)
		real = name
	}

	return m.allocate(real), nil
}

func (m *MockNative) CloseDesktop(hdesk uintptr) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CloseCalls = append(m.CloseCalls, hdesk)

	if m.FailClose {
		return ErrMockFailure
	}

	if _, ok := m.handles[hdesk]; !ok {
		return ErrMockFailure
	}

	delete(m.handles, hdesk)
	return nil
}

func (m *MockNative) SwitchDesktop(hdesk uintptr) error {
	m.SwitchCalls = append(m.SwitchCalls, hdesk)

	if m.FailSwitch {
		return ErrMockFailure
	}

	return nil
}

func (m *MockNative) ObjectName(handle uintptr) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name, ok := m.handles[handle]
	if m.FailObjectName || !ok {
		return "", ErrMockFailure
	}

	return name, nil
}

func (m *MockNative) EnumDesktopWindows(hdesk uintptr) ([]uintptr, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name, ok := m.handles[hdesk]
	if m.FailEnumWindows || !ok {
		return nil, ErrMockFailure
	}

	return append([]uintptr(nil), m.Windows[name]...), nil
}

func (m *MockNative) ProcessWindowStation() (uintptr, error) {
	if m.FailWindowStation {
		return 0, ErrMockFailure
	}

	return 0x10, nil
}

func (m *MockNative) EnumDesktops(hwinsta uintptr) ([]string, error) {
	if m.FailEnumDesktops {
		return nil, ErrMockFailure
	}

	return append([]string(nil), m.Desktops...), nil
}

func (m *MockNative) CurrentThreadID() uint32 {
	return m.CurrentThread
}

// ThreadDesktop hands out a fresh borrowed handle per call, like the OS does
// for threads of other processes.
func (m *MockNative) ThreadDesktop(threadID uint32) (uintptr, error) {
	m.ThreadDesktopCalls = append(m.ThreadDesktopCalls, threadID)

	name, ok := m.ThreadDesks[threadID]
	if !ok {
		return 0, ErrMockFailure
	}

	return m.allocate(name), nil
}

func (m *MockNative) SetThreadDesktop(hdesk uintptr) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetThreadCalls = append(m.SetThreadCalls, hdesk)

	name, ok := m.handles[hdesk]
	if m.FailSetThread || !ok {
		return ErrMockFailure
	}

	m.ThreadDesks[m.CurrentThread] = name
	return nil
}

func (m *MockNative) CreateProcess(path, desk string) (desktop.ProcessInfo, error) {
	m.CreateProcessCalls = append(m.CreateProcessCalls, CreateProcessCall{Path: path, Desktop: desk})

	if m.FailCreateProcess {
		return desktop.ProcessInfo{}, ErrMockFailure
	}

	m.nextPID += 4
	return desktop.ProcessInfo{Handle: m.allocate("process:" + path), PID: m.nextPID}, nil
}

func (m *MockNative) CloseHandle(handle uintptr) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CloseHandleCalls = append(m.CloseHandleCalls, handle)

	if _, ok := m.handles[handle]; !ok {
		return ErrMockFailure
	}

	delete(m.handles, handle)
	return nil
}

func (m *MockNative) Threads() ([]desktop.ThreadEntry, error) {
	if m.FailThreads {
		return nil, ErrMockFailure
	}

	return m.ThreadList, nil
}

func (m *MockNative) Processes() ([]desktop.ProcessEntry, error) {
	if m.FailProcesses {
		return nil, ErrMockFailure
	}

	return m.ProcessList, nil
}
