// Package interfaces defines core interfaces for dependency injection and testing.
package interfaces

import (
	"github.com/Norgate-AV/deskctl/internal/desktop"
	"github.com/Norgate-AV/deskctl/internal/input"
)

// DesktopManager handles window-station level desktop operations
type DesktopManager interface {
	EnumerateAll() ([]string, bool)
	Exists(name string, caseInsensitive bool) bool
	OpenOrCreate(name string, caseInsensitive bool) (*desktop.Desktop, error)
	Current() (*desktop.Desktop, error)
	SetCurrent(d *desktop.Desktop) bool
}

// InputInjector handles synthesized keyboard and mouse input
type InputInjector interface {
	Send(events ...input.Event) (uint32, error)
	TypeText(text string) error
	PressKey(vk uint16, extended bool) error
	Chord(vks ...uint16) error
	Click(button int) error
	MoveTo(x, y int32) error
}

// WindowInspector reads reporting details of a window
type WindowInspector interface {
	Title(hwnd uintptr) string
	Class(hwnd uintptr) string
	Pid(hwnd uintptr) uint32
	Visible(hwnd uintptr) bool
}
