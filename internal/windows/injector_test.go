package windows

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/deskctl/internal/input"
	"github.com/Norgate-AV/deskctl/internal/logger"
	"github.com/Norgate-AV/deskctl/internal/timeouts"
)

type recordingSender struct {
	batches [][]input.Event
	short   bool
	sleeps  []time.Duration
}

func (r *recordingSender) send(events []input.Event) (uint32, error) {
	r.batches = append(r.batches, append([]input.Event(nil), events...))
	if r.short {
		return 0, errors.New("access denied")
	}

	return uint32(len(events)), nil
}

func newTestInjector(r *recordingSender) *Injector {
	return &Injector{
		log:   logger.NewNoOpLogger(),
		send:  r.send,
		sleep: func(d time.Duration) { r.sleeps = append(r.sleeps, d) },
	}
}

func TestInjector_SendEmpty(t *testing.T) {
	t.Parallel()

	r := &recordingSender{}
	sent, err := newTestInjector(r).Send()

	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, r.batches, "empty batch never reaches SendInput")
}

func TestInjector_SendShortCount(t *testing.T) {
	t.Parallel()

	r := &recordingSender{short: true}
	sent, err := newTestInjector(r).Send(input.KeyPress(0x41, false)...)

	assert.Zero(t, sent)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inserted 0 of 2 events")
	assert.Contains(t, err.Error(), "access denied")
}

func TestInjector_PressKey(t *testing.T) {
	t.Parallel()

	r := &recordingSender{}
	require.NoError(t, newTestInjector(r).PressKey(0x7B, true))

	require.Len(t, r.batches, 2)
	assert.Zero(t, r.batches[0][0].Keyboard().Flags&input.KEYEVENTF_KEYUP)
	assert.NotZero(t, r.batches[1][0].Keyboard().Flags&input.KEYEVENTF_KEYUP)
	assert.Equal(t, []time.Duration{timeouts.KeystrokeDelay}, r.sleeps)
}

func TestInjector_PressKeyStopsOnFailure(t *testing.T) {
	t.Parallel()

	r := &recordingSender{short: true}
	assert.Error(t, newTestInjector(r).PressKey(0x41, false))
	assert.Len(t, r.batches, 1, "key up is not sent after a failed key down")
	assert.Empty(t, r.sleeps)
}

func TestInjector_TypeText(t *testing.T) {
	t.Parallel()

	r := &recordingSender{}
	require.NoError(t, newTestInjector(r).TypeText("hi"))

	require.Len(t, r.batches, 1)
	assert.Len(t, r.batches[0], 4)
}

func TestInjector_Chord(t *testing.T) {
	t.Parallel()

	r := &recordingSender{}
	require.NoError(t, newTestInjector(r).Chord(0x11, 0x12, 0x2E))

	require.Len(t, r.batches, 1)
	assert.Len(t, r.batches[0], 6)
}

func TestInjector_Click(t *testing.T) {
	t.Parallel()

	r := &recordingSender{}
	require.NoError(t, newTestInjector(r).Click(input.ButtonRight))

	require.Len(t, r.batches, 2)
	assert.Equal(t, uint32(input.MOUSEEVENTF_RIGHTDOWN), r.batches[0][0].Mouse().Flags)
	assert.Equal(t, uint32(input.MOUSEEVENTF_RIGHTUP), r.batches[1][0].Mouse().Flags)
	assert.Equal(t, []time.Duration{timeouts.MouseClickDelay}, r.sleeps)
}

func TestInjector_MoveTo(t *testing.T) {
	t.Parallel()

	r := &recordingSender{}
	require.NoError(t, newTestInjector(r).MoveTo(32768, 32768))

	require.Len(t, r.batches, 1)
	assert.Equal(t, int32(32768), r.batches[0][0].Mouse().Dx)
}

func TestGetCtrlTypeName(t *testing.T) {
	t.Parallel()

	tests := map[uint32]string{
		CTRL_C_EVENT:        "CTRL_C",
		CTRL_BREAK_EVENT:    "CTRL_BREAK",
		CTRL_CLOSE_EVENT:    "CTRL_CLOSE",
		CTRL_LOGOFF_EVENT:   "CTRL_LOGOFF",
		CTRL_SHUTDOWN_EVENT: "CTRL_SHUTDOWN",
		42:                  "UNKNOWN",
	}

	for code, want := range tests {
		assert.Equal(t, want, GetCtrlTypeName(code))
	}
}
