package testutil

import (
	"github.com/Norgate-AV/deskctl/internal/input"
)

// MockInjector records every batch of events instead of injecting them
type MockInjector struct {
	Batches     [][]input.Event
	TypedText   []string
	PressedKeys []uint16
	Chords      [][]uint16
	Clicks      []int
	Moves       [][2]int32
	Err         error
}

func NewMockInjector() *MockInjector {
	return &MockInjector{}
}

func (m *MockInjector) WithError(err error) *MockInjector {
	m.Err = err
	return m
}

func (m *MockInjector) Send(events ...input.Event) (uint32, error) {
	m.Batches = append(m.Batches, events)
	if m.Err != nil {
		return 0, m.Err
	}

	return uint32(len(events)), nil
}

func (m *MockInjector) TypeText(text string) error {
	m.TypedText = append(m.TypedText, text)
	return m.Err
}

func (m *MockInjector) PressKey(vk uint16, extended bool) error {
	m.PressedKeys = append(m.PressedKeys, vk)
	return m.Err
}

func (m *MockInjector) Chord(vks ...uint16) error {
	m.Chords = append(m.Chords, vks)
	return m.Err
}

func (m *MockInjector) Click(button int) error {
	m.Clicks = append(m.Clicks, button)
	return m.Err
}

func (m *MockInjector) MoveTo(x, y int32) error {
	m.Moves = append(m.Moves, [2]int32{x, y})
	return m.Err
}

// MockWindowInspector answers window queries from fixed maps
type MockWindowInspector struct {
	Titles  map[uintptr]string
	Classes map[uintptr]string
	Pids    map[uintptr]uint32
	Shown   map[uintptr]bool
}

func NewMockWindowInspector() *MockWindowInspector {
	return &MockWindowInspector{
		Titles:  make(map[uintptr]string),
		Classes: make(map[uintptr]string),
		Pids:    make(map[uintptr]uint32),
		Shown:   make(map[uintptr]bool),
	}
}

// WithWindow registers a visible window
func (m *MockWindowInspector) WithWindow(hwnd uintptr, pid uint32, class, title string) *MockWindowInspector {
	m.Titles[hwnd] = title
	m.Classes[hwnd] = class
	m.Pids[hwnd] = pid
	m.Shown[hwnd] = true
	return m
}

func (m *MockWindowInspector) Title(hwnd uintptr) string { return m.Titles[hwnd] }
func (m *MockWindowInspector) Class(hwnd uintptr) string { return m.Classes[hwnd] }
func (m *MockWindowInspector) Pid(hwnd uintptr) uint32   { return m.Pids[hwnd] }
func (m *MockWindowInspector) Visible(hwnd uintptr) bool { return m.Shown[hwnd] }
