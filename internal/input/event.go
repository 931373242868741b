// Package input defines the fixed-layout structures consumed by SendInput.
//
// The types mirror INPUT, MOUSEINPUT, KEYBDINPUT and HARDWAREINPUT from
// winuser.h byte for byte. Nothing here validates values; the OS decides what
// it accepts.
package input

import "unsafe"

// Event type discriminants (INPUT.type)
const (
	TypeMouse    = 0
	TypeKeyboard = 1
	TypeHardware = 2
)

// Mouse event flags (MOUSEINPUT.dwFlags)
const (
	MOUSEEVENTF_MOVE            = 0x0001
	MOUSEEVENTF_LEFTDOWN        = 0x0002
	MOUSEEVENTF_LEFTUP          = 0x0004
	MOUSEEVENTF_RIGHTDOWN       = 0x0008
	MOUSEEVENTF_RIGHTUP         = 0x0010
	MOUSEEVENTF_MIDDLEDOWN      = 0x0020
	MOUSEEVENTF_MIDDLEUP        = 0x0040
	MOUSEEVENTF_XDOWN           = 0x0080
	MOUSEEVENTF_XUP             = 0x0100
	MOUSEEVENTF_WHEEL           = 0x0800
	MOUSEEVENTF_HWHEEL          = 0x1000
	MOUSEEVENTF_MOVE_NOCOALESCE = 0x2000
	MOUSEEVENTF_VIRTUALDESK     = 0x4000
	MOUSEEVENTF_ABSOLUTE        = 0x8000
)

// Keyboard event flags (KEYBDINPUT.dwFlags)
const (
	KEYEVENTF_EXTENDEDKEY = 0x0001
	KEYEVENTF_KEYUP       = 0x0002
	// KEYEVENTF_UNICODE sends ScanCode as a UTF-16 unit. The OS requires
	// VirtualKey to be zero in this mode.
	KEYEVENTF_UNICODE  = 0x0004
	KEYEVENTF_SCANCODE = 0x0008
)

// MouseInput matches MOUSEINPUT. Dx/Dy are absolute or relative depending on
// MOUSEEVENTF_ABSOLUTE.
type MouseInput struct {
	Dx, Dy    int32
	MouseData uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

// KeyboardInput matches KEYBDINPUT.
type KeyboardInput struct {
	VirtualKey uint16
	ScanCode   uint16
	Flags      uint32
	Time       uint32
	ExtraInfo  uintptr
}

// HardwareInput matches HARDWAREINPUT.
type HardwareInput struct {
	Msg    uint32
	ParamL uint16
	ParamH uint16
}

// Event matches INPUT. The payload is a union: MouseInput is the largest and
// most strictly aligned member, so it is used as the backing storage and the
// compiler inserts the same padding after Type that the C compiler does.
type Event struct {
	Type  uint32
	union MouseInput
}

// Size is the value passed as cbSize to SendInput.
const Size = unsafe.Sizeof(Event{})

// NewMouse returns a mouse event carrying m.
func NewMouse(m MouseInput) Event {
	e := Event{Type: TypeMouse}
	e.union = m
	return e
}

// NewKeyboard returns a keyboard event carrying k.
func NewKeyboard(k KeyboardInput) Event {
	e := Event{Type: TypeKeyboard}
	*(*KeyboardInput)(unsafe.Pointer(&e.union)) = k
	return e
}

// NewHardware returns a hardware event carrying h.
func NewHardware(h HardwareInput) Event {
	e := Event{Type: TypeHardware}
	*(*HardwareInput)(unsafe.Pointer(&e.union)) = h
	return e
}

// Mouse reads the payload as MOUSEINPUT regardless of Type.
func (e Event) Mouse() MouseInput {
	return e.union
}

// Keyboard reads the payload as KEYBDINPUT regardless of Type.
func (e Event) Keyboard() KeyboardInput {
	return *(*KeyboardInput)(unsafe.Pointer(&e.union))
}

// Hardware reads the payload as HARDWAREINPUT regardless of Type.
func (e Event) Hardware() HardwareInput {
	return *(*HardwareInput)(unsafe.Pointer(&e.union))
}
