//go:build !windows

package windows

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/deskctl/internal/desktop"
	"github.com/Norgate-AV/deskctl/internal/logger"
)

func TestNewClient_Unsupported(t *testing.T) {
	t.Parallel()

	c := NewClient(logger.NewNoOpLogger())

	names, ok := c.Desktop.EnumerateAll()
	assert.False(t, ok)
	assert.Nil(t, names)
	assert.False(t, c.Desktop.Exists(desktop.DefaultDesktop, true))

	_, err := c.Desktop.OpenOrCreate("Kiosk", false)
	require.ErrorIs(t, err, desktop.ErrConstruction)
	assert.ErrorIs(t, err, desktop.ErrUnsupported)

	_, err = c.Desktop.Current()
	assert.ErrorIs(t, err, desktop.ErrUnsupported)

	_, err = c.Input.Send()
	assert.NoError(t, err, "an empty batch never reaches the OS")

	err = c.Input.PressKey(0x0D, false)
	assert.ErrorIs(t, err, desktop.ErrUnsupported)
}
