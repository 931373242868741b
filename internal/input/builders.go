package input

import "unicode/utf16"

// Mouse buttons accepted by Click
const (
	ButtonLeft = iota
	ButtonRight
	ButtonMiddle
)

// KeyPress returns a key down followed by a key up for the virtual key vk.
func KeyPress(vk uint16, extended bool) []Event {
	var flags uint32
	if extended {
		flags = KEYEVENTF_EXTENDEDKEY
	}

	return []Event{
		NewKeyboard(KeyboardInput{VirtualKey: vk, Flags: flags}),
		NewKeyboard(KeyboardInput{VirtualKey: vk, Flags: flags | KEYEVENTF_KEYUP}),
	}
}

// Chord presses every key in order and releases them in reverse order,
// e.g. Chord(VK_MENU, VK_F12) for Alt+F12.
func Chord(vks ...uint16) []Event {
	events := make([]Event, 0, len(vks)*2)
	for _, vk := range vks {
		events = append(events, NewKeyboard(KeyboardInput{VirtualKey: vk}))
	}

	for i := len(vks) - 1; i >= 0; i-- {
		events = append(events, NewKeyboard(KeyboardInput{VirtualKey: vks[i], Flags: KEYEVENTF_KEYUP}))
	}

	return events
}

// UnicodeText returns a down/up pair per UTF-16 code unit of s. Surrogate
// pairs produce two pairs, which is what the OS expects.
func UnicodeText(s string) []Event {
	units := utf16.Encode([]rune(s))
	events := make([]Event, 0, len(units)*2)

	for _, u := range units {
		events = append(events,
			NewKeyboard(KeyboardInput{ScanCode: u, Flags: KEYEVENTF_UNICODE}),
			NewKeyboard(KeyboardInput{ScanCode: u, Flags: KEYEVENTF_UNICODE | KEYEVENTF_KEYUP}),
		)
	}

	return events
}

// Click returns a press and release of button at the current cursor position.
// Unknown buttons fall back to the left button.
func Click(button int) []Event {
	down, up := uint32(MOUSEEVENTF_LEFTDOWN), uint32(MOUSEEVENTF_LEFTUP)

	switch button {
	case ButtonRight:
		down, up = MOUSEEVENTF_RIGHTDOWN, MOUSEEVENTF_RIGHTUP
	case ButtonMiddle:
		down, up = MOUSEEVENTF_MIDDLEDOWN, MOUSEEVENTF_MIDDLEUP
	}

	return []Event{
		NewMouse(MouseInput{Flags: down}),
		NewMouse(MouseInput{Flags: up}),
	}
}

// MoveTo returns an absolute move to (x, y) in normalized 0..65535
// coordinates across the virtual desktop.
func MoveTo(x, y int32) Event {
	return NewMouse(MouseInput{
		Dx:    x,
		Dy:    y,
		Flags: MOUSEEVENTF_MOVE | MOUSEEVENTF_ABSOLUTE | MOUSEEVENTF_VIRTUALDESK,
	})
}
