//go:build windows

package windows

import (
	"unsafe"

	"github.com/Norgate-AV/deskctl/internal/input"
)

func sendInput(events []input.Event) (uint32, error) {
	ret, _, err := procSendInput.Call(
		uintptr(len(events)),
		uintptr(unsafe.Pointer(&events[0])),
		input.Size,
	)

	return uint32(ret), err
}
