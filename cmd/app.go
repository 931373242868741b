package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/deskctl/internal/interfaces"
	"github.com/Norgate-AV/deskctl/internal/logger"
	"github.com/Norgate-AV/deskctl/internal/windows"
)

// ProcessDetails is what the processes command prints beyond the snapshot
type ProcessDetails struct {
	User    string
	Cmdline string
}

// App holds the dependencies a subcommand runs against
type App struct {
	cfg      *Config
	log      logger.LoggerInterface
	desktops interfaces.DesktopManager
	input    interfaces.InputInjector
	windows  interfaces.WindowInspector
	details  func(pid uint32) ProcessDetails
	out      io.Writer
}

// Close flushes the log file
func (a *App) Close() {
	a.log.Close()
}

// newApp builds the App for cmd; tests replace it to inject mocks
var newApp = defaultApp

func defaultApp(cmd *cobra.Command) (*App, error) {
	cfg, err := NewConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := initializeLogger(cfg)
	if err != nil {
		return nil, err
	}

	log.Debug("Starting deskctl",
		slog.String("command", cmd.CommandPath()),
		slog.Bool("verbose", cfg.Verbose),
		slog.Bool("ignoreCase", cfg.IgnoreCase),
		slog.String("configFile", cfg.ConfigFile),
	)

	client := windows.NewClient(log)
	if cfg.Shell != "" {
		client.Desktop.Shell = cfg.Shell
	}

	return &App{
		cfg:      cfg,
		log:      log,
		desktops: client.Desktop,
		input:    client.Input,
		windows:  client.Windows,
		details:  processDetails,
		out:      cmd.OutOrStdout(),
	}, nil
}

// initializeLogger creates a logger from the resolved configuration
func initializeLogger(cfg *Config) (logger.LoggerInterface, error) {
	log, err := logger.NewLogger(logger.LoggerOptions{
		Verbose:  cfg.Verbose,
		LogDir:   cfg.LogDir,
		Compress: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return log, nil
}

// processDetails asks gopsutil for the owner and command line of pid.
// Protected processes deny both; the fields are left empty then.
func processDetails(pid uint32) ProcessDetails {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return ProcessDetails{}
	}

	var d ProcessDetails
	if user, err := p.Username(); err == nil {
		d.User = user
	}

	if cmdline, err := p.Cmdline(); err == nil {
		d.Cmdline = cmdline
	}

	return d
}

// runWithApp adapts an App method to a cobra RunE
func runWithApp(run func(a *App, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		defer app.Close()
		return run(app, cmd, args)
	}
}
