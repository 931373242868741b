package cmd

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/deskctl/internal/desktop"
	"github.com/Norgate-AV/deskctl/internal/testutil"
	"github.com/Norgate-AV/deskctl/internal/timeouts"
)

func newHeldDesktop(t *testing.T, app *testApp, name string) *desktop.Desktop {
	t.Helper()

	d, err := app.desktops.OpenOrCreate(name, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Dispose() })

	return d
}

func TestHoldContext_StopRunsOnce(t *testing.T) {
	app := newTestApp(t, testutil.NewMockNative())
	h := newHoldContext(app.App, newHeldDesktop(t, app, "Kiosk"))

	var mu sync.Mutex
	calls := 0
	h.restore = func() error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Stop("test")
		}()
	}

	wg.Wait()

	select {
	case <-h.Done():
	default:
		t.Fatal("Done should be closed after Stop")
	}

	assert.Equal(t, 1, calls)
}

func TestHoldContext_StopClosesDoneOnRestoreError(t *testing.T) {
	app := newTestApp(t, testutil.NewMockNative())
	h := newHoldContext(app.App, newHeldDesktop(t, app, "Kiosk"))
	h.restore = func() error { return errors.New("boom") }

	h.Stop("test")

	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("Done should be closed even when restore fails")
	}
}

func TestHoldContext_SwitchBack(t *testing.T) {
	native := testutil.NewMockNative()
	app := newTestApp(t, native)
	h := newHoldContext(app.App, newHeldDesktop(t, app, "Kiosk"))

	require.NoError(t, h.switchBack())

	assert.Equal(t, []string{desktop.DefaultDesktop}, native.OpenCalls)
	assert.Len(t, native.SwitchCalls, 1)
}

func TestHoldContext_SwitchBackRetries(t *testing.T) {
	native := testutil.NewMockNative()
	native.FailSwitch = true
	app := newTestApp(t, native)
	h := newHoldContext(app.App, newHeldDesktop(t, app, "Kiosk"))

	sleeps := 0
	sleep = func(d time.Duration) {
		assert.Equal(t, timeouts.SwitchRetryInterval, d)
		sleeps++
		if sleeps == 2 {
			native.FailSwitch = false
		}
	}

	require.NoError(t, h.switchBack())
	assert.Len(t, native.SwitchCalls, 3)
	assert.Equal(t, 2, sleeps)
}

func TestHoldContext_SwitchBackTimesOut(t *testing.T) {
	native := testutil.NewMockNative()
	native.FailSwitch = true
	app := newTestApp(t, native)
	h := newHoldContext(app.App, newHeldDesktop(t, app, "Kiosk"))

	err := h.switchBack()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")

	retries := int(timeouts.SwitchBackTimeout / timeouts.SwitchRetryInterval)
	assert.Len(t, native.SwitchCalls, retries+1)
}

func TestRunHold_Failures(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		setup func(*testutil.MockNative)
		want  string
	}{
		{name: "create fails", setup: func(m *testutil.MockNative) { m.FailCreate = true }, want: "Kiosk"},
		{name: "shell fails", setup: func(m *testutil.MockNative) { m.FailCreateProcess = true }, want: "failed to start shell"},
		{name: "show fails", args: []string{"--no-prepare"}, setup: func(m *testutil.MockNative) { m.FailSwitch = true }, want: "failed to switch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			native := testutil.NewMockNative()
			tt.setup(native)
			app := newTestApp(t, native)

			err := app.runHold(flagsFor(t, holdCmd, tt.args...), []string{"Kiosk"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
