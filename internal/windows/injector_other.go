//go:build !windows

package windows

import (
	"github.com/Norgate-AV/deskctl/internal/desktop"
	"github.com/Norgate-AV/deskctl/internal/input"
)

func sendInput(_ []input.Event) (uint32, error) {
	return 0, desktop.ErrUnsupported
}
