package windows

import (
	"github.com/Norgate-AV/deskctl/internal/desktop"
	"github.com/Norgate-AV/deskctl/internal/logger"
)

// Client bundles the desktop manager, the input injector and the window
// inspector over the native Windows API
type Client struct {
	Desktop *desktop.Manager
	Input   *Injector
	Windows Inspector
}

// NewClient creates a Windows API client
func NewClient(log logger.LoggerInterface) *Client {
	return &Client{
		Desktop: desktop.NewManager(NewNative(log), log),
		Input:   NewInjector(log),
	}
}
