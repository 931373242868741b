// Package desktop wraps Windows desktop objects: opening or creating them,
// switching input to them, and finding the windows and processes that live on
// them. All OS access goes through a Native implementation.
package desktop

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Norgate-AV/deskctl/internal/logger"
)

// Desktop access rights
const (
	DESKTOP_READOBJECTS     = 0x0001
	DESKTOP_CREATEWINDOW    = 0x0002
	DESKTOP_CREATEMENU      = 0x0004
	DESKTOP_HOOKCONTROL     = 0x0008
	DESKTOP_JOURNALRECORD   = 0x0010
	DESKTOP_JOURNALPLAYBACK = 0x0020
	DESKTOP_ENUMERATE       = 0x0040
	DESKTOP_WRITEOBJECTS    = 0x0080
	DESKTOP_SWITCHDESKTOP   = 0x0100

	STANDARD_RIGHTS_REQUIRED = 0x000F0000

	// AccessAll is requested for every desktop this package opens or creates.
	AccessAll = STANDARD_RIGHTS_REQUIRED | 0x01FF
)

// DefaultDesktop is the name of the interactive desktop of WinSta0.
const DefaultDesktop = "Default"

// Thread binding hooks, replaced in tests
var (
	lockOSThread   = runtime.LockOSThread
	unlockOSThread = runtime.UnlockOSThread
)

// DefaultShell returns the shell Prepare launches when Manager.Shell is empty.
func DefaultShell() string {
	windir := os.Getenv("WINDIR")
	if windir == "" {
		windir = `C:\Windows`
	}

	return filepath.Join(windir, "explorer.exe")
}

// Manager holds the operations that are not tied to a single desktop handle.
type Manager struct {
	native Native
	log    logger.LoggerInterface

	// Shell is the executable started by Desktop.Prepare.
	Shell string
}

// NewManager creates a manager on top of native.
func NewManager(native Native, log logger.LoggerInterface) *Manager {
	return &Manager{
		native: native,
		log:    log,
		Shell:  DefaultShell(),
	}
}

// EnumerateAll lists the desktops of the calling process's window station.
// ok is false when the window station or the enumeration is unavailable.
func (m *Manager) EnumerateAll() (names []string, ok bool) {
	hwinsta, err := m.native.ProcessWindowStation()
	if hwinsta == 0 {
		m.log.Debug("GetProcessWindowStation failed", slog.Any("error", err))
		return nil, false
	}

	names, err = m.native.EnumDesktops(hwinsta)
	if err != nil {
		m.log.Debug("EnumDesktops failed", slog.Any("error", err))
		return nil, false
	}

	if names == nil {
		names = []string{}
	}

	return names, true
}

// Exists reports whether a desktop called name is on the window station.
func (m *Manager) Exists(name string, caseInsensitive bool) bool {
	names, ok := m.EnumerateAll()
	if !ok {
		return false
	}

	for _, n := range names {
		if n == name || (caseInsensitive && strings.EqualFold(n, name)) {
			return true
		}
	}

	return false
}

// OpenOrCreate opens the desktop called name, creating it first if it does
// not exist yet.
func (m *Manager) OpenOrCreate(name string, caseInsensitive bool) (*Desktop, error) {
	var (
		hdesk uintptr
		err   error
	)

	if m.Exists(name, caseInsensitive) {
		m.log.Debug("Opening existing desktop", slog.String("name", name))
		hdesk, err = m.native.OpenDesktop(name, AccessAll)
	} else {
		m.log.Debug("Creating desktop", slog.String("name", name))
		hdesk, err = m.native.CreateDesktop(name, AccessAll)
	}

	if hdesk == 0 {
		if err == nil {
			err = errors.New("no handle returned")
		}

		return nil, fmt.Errorf("%w %q: %w", ErrConstruction, name, err)
	}

	m.log.Trace("Desktop handle acquired", slog.String("name", name), logger.Handle("hdesk", hdesk))
	return m.wrap(hdesk, true), nil
}

// Current returns the desktop bound to the calling OS thread. The handle is
// borrowed from the OS, so closing the result never releases it.
func (m *Manager) Current() (*Desktop, error) {
	// The thread id and its desktop must come from the same OS thread
	lockOSThread()
	defer unlockOSThread()

	tid := m.native.CurrentThreadID()

	hdesk, err := m.native.ThreadDesktop(tid)
	if hdesk == 0 {
		if err == nil {
			err = errors.New("no handle returned")
		}

		return nil, fmt.Errorf("%w: thread %d: %w", ErrConstruction, tid, err)
	}

	return m.wrap(hdesk, false), nil
}

// SetCurrent binds the calling OS thread to d. The goroutine stays locked to
// that thread afterwards so the binding is not lost to scheduling. Returns
// false without side effects when d is not open.
//
// The OS refuses the switch if the thread owns any windows or hooks on its
// current desktop.
func (m *Manager) SetCurrent(d *Desktop) bool {
	if d == nil || !d.IsOpen() {
		return false
	}

	lockOSThread()

	if err := m.native.SetThreadDesktop(d.state.handle); err != nil {
		unlockOSThread()
		m.log.Debug("SetThreadDesktop failed", slog.Any("error", err))
		return false
	}

	return true
}

func (m *Manager) wrap(hdesk uintptr, owned bool) *Desktop {
	d := &Desktop{
		m:     m,
		state: &handleState{handle: hdesk, owned: owned},
	}

	native := m.native
	d.cleanup = runtime.AddCleanup(d, func(s *handleState) {
		if s.owned && s.handle != 0 {
			_ = native.CloseDesktop(s.handle)
		}
	}, d.state)

	return d
}
