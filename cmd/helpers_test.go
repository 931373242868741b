package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/Norgate-AV/deskctl/internal/desktop"
	"github.com/Norgate-AV/deskctl/internal/logger"
	"github.com/Norgate-AV/deskctl/internal/testutil"
)

// testApp bundles an App with the mocks behind it
type testApp struct {
	*App
	native  *testutil.MockNative
	input   *testutil.MockInjector
	windows *testutil.MockWindowInspector
	out     *bytes.Buffer
}

func newTestApp(t *testing.T, native *testutil.MockNative) *testApp {
	t.Helper()

	origSleep := sleep
	origNoColor := color.NoColor
	sleep = func(time.Duration) {}
	color.NoColor = true

	t.Cleanup(func() {
		sleep = origSleep
		color.NoColor = origNoColor
	})

	log := logger.NewNoOpLogger()
	injector := testutil.NewMockInjector()
	inspector := testutil.NewMockWindowInspector()
	out := &bytes.Buffer{}

	return &testApp{
		App: &App{
			cfg:      &Config{},
			log:      log,
			desktops: desktop.NewManager(native, log),
			input:    injector,
			windows:  inspector,
			details:  func(uint32) ProcessDetails { return ProcessDetails{} },
			out:      out,
		},
		native:  native,
		input:   injector,
		windows: inspector,
		out:     out,
	}
}
