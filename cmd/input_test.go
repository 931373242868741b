package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/deskctl/internal/input"
	"github.com/Norgate-AV/deskctl/internal/testutil"
)

func TestRunType(t *testing.T) {
	native := testutil.NewMockNative()
	app := newTestApp(t, native)

	require.NoError(t, app.runType(flagsFor(t, typeCmd), []string{"hello", "world"}))

	assert.Equal(t, []string{"hello world"}, app.input.TypedText)
	assert.Empty(t, native.SetThreadCalls, "no --desktop means no attach")
}

func TestRunType_AttachesToDesktop(t *testing.T) {
	native := testutil.NewMockNative().
		WithDesktops("Kiosk").
		WithCurrentThread(9, "Default")
	app := newTestApp(t, native)

	require.NoError(t, app.runType(flagsFor(t, typeCmd, "--desktop", "Kiosk"), []string{"hi"}))

	assert.Len(t, native.SetThreadCalls, 1)
	assert.Equal(t, "Kiosk", native.ThreadDesks[9])
	assert.Equal(t, []string{"hi"}, app.input.TypedText)
}

func TestRunType_AttachFailures(t *testing.T) {
	t.Run("missing desktop", func(t *testing.T) {
		app := newTestApp(t, testutil.NewMockNative())

		err := app.runType(flagsFor(t, typeCmd, "-d", "Kiosk"), []string{"hi"})
		require.ErrorIs(t, err, errDesktopNotFound)
		assert.Empty(t, app.input.TypedText)
	})

	t.Run("thread refuses", func(t *testing.T) {
		native := testutil.NewMockNative().WithDesktops("Kiosk")
		native.FailSetThread = true
		app := newTestApp(t, native)

		err := app.runType(flagsFor(t, typeCmd, "-d", "Kiosk"), []string{"hi"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not attach")
		assert.Empty(t, app.input.TypedText)
		assert.Zero(t, native.OpenHandles(), "desktop handle should be released")
	})
}

func TestRunKey(t *testing.T) {
	tests := []struct {
		name   string
		arg    string
		keys   []uint16
		chords [][]uint16
	}{
		{name: "single", arg: "enter", keys: []uint16{0x0D}},
		{name: "extended", arg: "del", keys: []uint16{0x2E}},
		{name: "chord", arg: "ctrl+alt+del", chords: [][]uint16{{0x11, 0x12, 0x2E}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, testutil.NewMockNative())

			require.NoError(t, app.runKey(flagsFor(t, keyCmd), []string{tt.arg}))
			assert.Equal(t, tt.keys, app.input.PressedKeys)
			assert.Equal(t, tt.chords, app.input.Chords)
		})
	}
}

func TestRunKey_Invalid(t *testing.T) {
	native := testutil.NewMockNative().WithDesktops("Kiosk")
	app := newTestApp(t, native)

	err := app.runKey(flagsFor(t, keyCmd, "-d", "Kiosk"), []string{"ctrl+banana"})
	require.Error(t, err)
	assert.Empty(t, native.SetThreadCalls, "parse errors come before attaching")
}

func TestRunKey_InjectorError(t *testing.T) {
	app := newTestApp(t, testutil.NewMockNative())
	app.input.WithError(testutil.ErrMockFailure)

	err := app.runKey(flagsFor(t, keyCmd), []string{"enter"})
	require.ErrorIs(t, err, testutil.ErrMockFailure)
}

func TestRunClick(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		flags  []string
		button int
		moves  [][2]int32
	}{
		{name: "default left", button: input.ButtonLeft},
		{name: "right", args: []string{"right"}, button: input.ButtonRight},
		{name: "middle", args: []string{"middle"}, button: input.ButtonMiddle},
		{name: "at point", flags: []string{"--at", "100,200"}, button: input.ButtonLeft, moves: [][2]int32{{100, 200}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, testutil.NewMockNative())

			require.NoError(t, app.runClick(flagsFor(t, clickCmd, tt.flags...), tt.args))
			assert.Equal(t, []int{tt.button}, app.input.Clicks)
			assert.Equal(t, tt.moves, app.input.Moves)
		})
	}
}

func TestRunClick_InvalidPoint(t *testing.T) {
	app := newTestApp(t, testutil.NewMockNative())

	err := app.runClick(flagsFor(t, clickCmd, "--at", "1,70000"), nil)
	require.Error(t, err)
	assert.Empty(t, app.input.Clicks)
}
