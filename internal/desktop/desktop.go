package desktop

import (
	"fmt"
	"iter"
	"log/slog"
	"runtime"
	"slices"

	"github.com/Norgate-AV/deskctl/internal/logger"
)

type handleState struct {
	handle uintptr
	owned  bool
}

// Desktop owns (or, for Manager.Current, borrows) one desktop handle.
// A Desktop is not safe for concurrent use.
type Desktop struct {
	m        *Manager
	state    *handleState
	cleanup  runtime.Cleanup
	disposed bool
}

// Process is a process started on a desktop. Close releases its handle.
type Process struct {
	PID    uint32
	handle uintptr
	native Native
}

// Handle returns the process handle, or zero once closed.
func (p *Process) Handle() uintptr {
	return p.handle
}

// Close releases the process handle. It is safe to call more than once.
func (p *Process) Close() error {
	if p.handle == 0 {
		return nil
	}

	if err := p.native.CloseHandle(p.handle); err != nil {
		return fmt.Errorf("failed to close process handle: %w", err)
	}

	p.handle = 0
	return nil
}

// IsOpen reports whether d currently holds a handle.
func (d *Desktop) IsOpen() bool {
	return !d.disposed && d.state.handle != 0
}

// Handle returns the raw desktop handle, or zero when closed.
func (d *Desktop) Handle() uintptr {
	return d.state.handle
}

// Close releases the handle. It returns true when d is already closed, and
// otherwise whether the OS released the handle; the handle is kept on failure.
func (d *Desktop) Close() (bool, error) {
	if d.disposed {
		return false, ErrDisposed
	}

	return d.close(), nil
}

func (d *Desktop) close() bool {
	if d.state.handle == 0 {
		return true
	}

	if !d.state.owned {
		d.state.handle = 0
		return true
	}

	if err := d.m.native.CloseDesktop(d.state.handle); err != nil {
		d.m.log.Warn("CloseDesktop failed",
			logger.Handle("hdesk", d.state.handle),
			slog.Any("error", err))
		return false
	}

	d.state.handle = 0
	return true
}

// Dispose closes d and marks it unusable. Later calls are no-ops. When the
// OS refuses to release the handle the cleanup stays registered, so the
// close is retried once d becomes unreachable.
func (d *Desktop) Dispose() error {
	if d.disposed {
		return nil
	}

	d.disposed = true

	if !d.close() {
		return fmt.Errorf("desktop: handle 0x%X was not released", d.state.handle)
	}

	d.cleanup.Stop()
	return nil
}

// Show switches input to d, making it the visible desktop.
func (d *Desktop) Show() (bool, error) {
	if d.disposed {
		return false, ErrDisposed
	}

	if !d.IsOpen() {
		return false, nil
	}

	if err := d.m.native.SwitchDesktop(d.state.handle); err != nil {
		d.m.log.Debug("SwitchDesktop failed", slog.Any("error", err))
		return false, nil
	}

	return true, nil
}

// Name queries the OS for the desktop's name. It returns "" when d is closed
// or the query fails.
func (d *Desktop) Name() (string, error) {
	if d.disposed {
		return "", ErrDisposed
	}

	if !d.IsOpen() {
		return "", nil
	}

	name, err := d.m.native.ObjectName(d.state.handle)
	if err != nil {
		d.m.log.Debug("GetUserObjectInformation(UOI_NAME) failed", slog.Any("error", err))
		return "", nil
	}

	return name, nil
}

// EnumerateWindows returns the top-level windows on d. The windows are
// collected before this returns; the sequence can only be ranged over once.
func (d *Desktop) EnumerateWindows() (iter.Seq[uintptr], error) {
	if d.disposed {
		return nil, ErrDisposed
	}

	if !d.IsOpen() {
		return oneShot[uintptr](nil), nil
	}

	hwnds, err := d.m.native.EnumDesktopWindows(d.state.handle)
	if err != nil {
		d.m.log.Debug("EnumDesktopWindows failed", slog.Any("error", err))
		return oneShot[uintptr](nil), nil
	}

	return oneShot(hwnds), nil
}

// Prepare starts the manager's shell on d so the desktop has a taskbar and
// something to interact with once shown.
func (d *Desktop) Prepare() (*Process, error) {
	if d.disposed {
		return nil, ErrDisposed
	}

	if !d.IsOpen() {
		return nil, nil
	}

	return d.SpawnProcess(d.m.Shell)
}

// SpawnProcess starts path on d. It returns nil when d is closed or the
// process could not be created.
func (d *Desktop) SpawnProcess(path string) (*Process, error) {
	name, err := d.Name()
	if err != nil {
		return nil, err
	}

	if name == "" {
		return nil, nil
	}

	info, err := d.m.native.CreateProcess(path, name)
	if err != nil || info.Handle == 0 {
		d.m.log.Warn("CreateProcess failed",
			slog.String("path", path),
			slog.String("desktop", name),
			slog.Any("error", err))
		return nil, nil
	}

	d.m.log.Debug("Process started",
		slog.String("path", path),
		slog.String("desktop", name),
		slog.Uint64("pid", uint64(info.PID)))

	return &Process{PID: info.PID, handle: info.Handle, native: d.m.native}, nil
}

// EnumerateProcesses returns every process with at least one thread attached
// to a desktop of the same name as d. Nothing is cached between calls.
func (d *Desktop) EnumerateProcesses() ([]ProcessEntry, error) {
	name, err := d.Name()
	if err != nil {
		return nil, err
	}

	if name == "" {
		return nil, nil
	}

	threads, err := d.m.native.Threads()
	if err != nil {
		d.m.log.Debug("Thread snapshot failed", slog.Any("error", err))
		return nil, nil
	}

	matched := make(map[uint32]struct{})
	names := make(map[uintptr]string)

	for _, t := range threads {
		if _, ok := matched[t.OwnerPID]; ok {
			continue
		}

		hdesk, err := d.m.native.ThreadDesktop(t.ThreadID)
		if hdesk == 0 || err != nil {
			continue
		}

		deskName, seen := names[hdesk]
		if !seen {
			deskName, _ = d.m.native.ObjectName(hdesk)
			names[hdesk] = deskName
		}

		if deskName == name {
			matched[t.OwnerPID] = struct{}{}
		}
	}

	d.m.log.Trace("Desktop thread scan finished",
		slog.String("desktop", name),
		slog.Int("threads", len(threads)),
		slog.Int("processes", len(matched)))

	procs, err := d.m.native.Processes()
	if err != nil {
		d.m.log.Debug("Process snapshot failed, returning bare PIDs", slog.Any("error", err))
		return barePIDs(matched), nil
	}

	result := make([]ProcessEntry, 0, len(matched))
	for _, p := range procs {
		if _, ok := matched[p.PID]; ok {
			result = append(result, p)
			delete(matched, p.PID)
		}
	}

	// Processes that exited between the two snapshots are still reported
	result = append(result, barePIDs(matched)...)
	return result, nil
}

func barePIDs(pids map[uint32]struct{}) []ProcessEntry {
	keys := make([]uint32, 0, len(pids))
	for pid := range pids {
		keys = append(keys, pid)
	}

	slices.Sort(keys)

	entries := make([]ProcessEntry, 0, len(keys))
	for _, pid := range keys {
		entries = append(entries, ProcessEntry{PID: pid})
	}

	return entries
}

func oneShot[T any](items []T) iter.Seq[T] {
	done := false

	return func(yield func(T) bool) {
		if done {
			return
		}

		done = true

		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}
