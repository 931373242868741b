package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/deskctl/internal/version"
)

// resetFlags resets all persistent flags to their default values between tests
func resetFlags() {
	_ = RootCmd.PersistentFlags().Set("verbose", "false")
	_ = RootCmd.PersistentFlags().Set("logs", "false")
	_ = RootCmd.PersistentFlags().Set("ignore-case", "false")
	_ = RootCmd.PersistentFlags().Set("shell", "")
	_ = RootCmd.PersistentFlags().Set("log-dir", "")
	_ = RootCmd.PersistentFlags().Set("config", "")
	_ = RootCmd.Flags().Set("help", "false")
	_ = RootCmd.Flags().Set("version", "false")
}

// TestHandleLogsFlag tests the --logs flag functionality
func TestHandleLogsFlag(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "deskctl.log")

	testContent := "Test log content\nLine 2\nLine 3"
	require.NoError(t, os.WriteFile(logPath, []byte(testContent), 0o644))

	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	exitCalled := false
	var exitCode int
	mockExit := func(code int) {
		exitCalled = true
		exitCode = code
	}

	err := handleLogsFlag(&Config{ShowLogs: true, LogDir: tmpDir}, mockExit)
	assert.NoError(t, err)

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)

	assert.True(t, exitCalled, "Should call exit function for --logs flag")
	assert.Equal(t, 0, exitCode, "Should exit with code 0 for --logs")
	assert.Contains(t, buf.String(), testContent, "Should print log file content to stdout")
}

// TestHandleLogsFlag_NoLogFile exits 1 when there is nothing to print
func TestHandleLogsFlag_NoLogFile(t *testing.T) {
	var codes []int
	mockExit := func(code int) { codes = append(codes, code) }

	// Silence the stderr message
	oldStderr := os.Stderr
	devNull, _ := os.Open(os.DevNull)
	os.Stderr = devNull
	defer func() { os.Stderr = oldStderr }()

	err := handleLogsFlag(&Config{ShowLogs: true, LogDir: t.TempDir()}, mockExit)
	assert.NoError(t, err)

	require.NotEmpty(t, codes)
	assert.Equal(t, 1, codes[0])
}

// TestHandleLogsFlag_Disabled does nothing without --logs
func TestHandleLogsFlag_Disabled(t *testing.T) {
	t.Parallel()

	exitCalled := false
	err := handleLogsFlag(&Config{}, func(int) { exitCalled = true })

	assert.NoError(t, err)
	assert.False(t, exitCalled)
}

// TestRootCmd_Version tests --version flag
func TestRootCmd_Version(t *testing.T) {
	resetFlags()

	output := captureCommandOutput(t, []string{"--version"})
	assert.Contains(t, output, version.GetVersion(), "Should print version information")
}

// TestRootCmd_Help tests --help flag
func TestRootCmd_Help(t *testing.T) {
	resetFlags()

	output := captureCommandOutput(t, []string{"--help"})

	assert.Contains(t, output, "deskctl", "Help should mention the command name")
	for _, sub := range []string{"list", "exists", "create", "switch", "current", "windows", "processes", "run", "hold", "type", "key", "click", "info"} {
		assert.Contains(t, output, sub, "Help should list the %s command", sub)
	}

	assert.Contains(t, output, "--ignore-case")
	assert.Contains(t, output, "--verbose")
}

// TestRootCmd_InvalidFlag tests behavior with unknown flags
func TestRootCmd_InvalidFlag(t *testing.T) {
	resetFlags()

	var stderr bytes.Buffer
	RootCmd.SetErr(&stderr)
	defer RootCmd.SetErr(nil)

	RootCmd.SetArgs([]string{"list", "--invalid-flag"})
	err := RootCmd.Execute()

	assert.Error(t, err, "Should return error for invalid flag")
	assert.Contains(t, stderr.String(), "unknown flag")
}

// TestRootCmd_ArgValidation checks positional argument counts per command
func TestRootCmd_ArgValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"exists without name", []string{"exists"}},
		{"create with two names", []string{"create", "a", "b"}},
		{"run without path", []string{"run", "Work"}},
		{"key without key", []string{"key"}},
		{"click with bad button", []string{"click", "fourth"}},
		{"list with extra arg", []string{"list", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()

			var stderr bytes.Buffer
			RootCmd.SetErr(&stderr)
			defer RootCmd.SetErr(nil)

			RootCmd.SetArgs(tt.args)
			assert.Error(t, RootCmd.Execute())
		})
	}
}

// Helper function to capture command output
func captureCommandOutput(_ *testing.T, args []string) string {
	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	defer RootCmd.SetOut(nil)

	RootCmd.SetArgs(args)
	_ = RootCmd.Execute()

	return buf.String()
}
