package cmd

import (
	"fmt"
	"strconv"
	"strings"
)

// virtualKeys maps key names accepted by the key command to virtual-key codes
var virtualKeys = map[string]uint16{
	"backspace": 0x08,
	"tab":       0x09,
	"enter":     0x0D,
	"shift":     0x10,
	"ctrl":      0x11,
	"alt":       0x12,
	"pause":     0x13,
	"capslock":  0x14,
	"esc":       0x1B,
	"space":     0x20,
	"pageup":    0x21,
	"pagedown":  0x22,
	"end":       0x23,
	"home":      0x24,
	"left":      0x25,
	"up":        0x26,
	"right":     0x27,
	"down":      0x28,
	"printscr":  0x2C,
	"insert":    0x2D,
	"del":       0x2E,
	"win":       0x5B,
	"apps":      0x5D,
}

// extendedKeys need KEYEVENTF_EXTENDEDKEY to be told apart from the numpad
var extendedKeys = map[uint16]bool{
	0x21: true, 0x22: true, 0x23: true, 0x24: true,
	0x25: true, 0x26: true, 0x27: true, 0x28: true,
	0x2D: true, 0x2E: true, 0x5B: true, 0x5D: true,
}

func init() {
	for i := uint16(1); i <= 24; i++ {
		virtualKeys[fmt.Sprintf("f%d", i)] = 0x6F + i
	}
}

// parseKey accepts a key name, a single letter or digit, or a numeric code
// such as 0x7B
func parseKey(s string) (uint16, error) {
	lower := strings.ToLower(strings.TrimSpace(s))

	if vk, ok := virtualKeys[lower]; ok {
		return vk, nil
	}

	if len(lower) == 1 {
		c := lower[0]
		switch {
		case c >= 'a' && c <= 'z':
			return uint16(c - 'a' + 'A'), nil
		case c >= '0' && c <= '9':
			return uint16(c), nil
		}
	}

	code, err := strconv.ParseUint(lower, 0, 16)
	if err != nil || code == 0 || code > 0xFE {
		return 0, fmt.Errorf("unknown key %q", s)
	}

	return uint16(code), nil
}

// parseChord splits "ctrl+alt+del" into virtual-key codes
func parseChord(s string) ([]uint16, error) {
	parts := strings.Split(s, "+")
	vks := make([]uint16, 0, len(parts))

	for _, part := range parts {
		vk, err := parseKey(part)
		if err != nil {
			return nil, err
		}

		vks = append(vks, vk)
	}

	return vks, nil
}
