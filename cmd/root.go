package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/deskctl/internal/logger"
	"github.com/Norgate-AV/deskctl/internal/version"
)

var osExit = os.Exit

// RootCmd is the root command for the deskctl CLI application.
var RootCmd = &cobra.Command{
	Use:          "deskctl",
	Short:        "deskctl - Create, switch and inspect Windows desktops",
	Version:      version.GetVersion(),
	Args:         cobra.NoArgs,
	RunE:         Execute,
	SilenceUsage: true, // Don't show usage on runtime errors
}

func init() {
	// Set custom version template to show full version info
	RootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	RootCmd.PersistentFlags().BoolP("verbose", "V", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolP("logs", "l", false, "print the current log file to stdout and exit")
	RootCmd.PersistentFlags().BoolP("ignore-case", "i", false, "match desktop names case-insensitively")
	RootCmd.PersistentFlags().String("shell", "", "program started by --prepare (default %WINDIR%\\explorer.exe)")
	RootCmd.PersistentFlags().String("log-dir", "", "directory for deskctl.log (default %LOCALAPPDATA%\\deskctl)")
	RootCmd.PersistentFlags().String("config", "", "config file (default %APPDATA%\\deskctl\\config.yaml)")
}

// handleLogsFlag processes the --logs flag and exits if needed
func handleLogsFlag(cfg *Config, exitFunc func(int)) error {
	if !cfg.ShowLogs {
		return nil
	}

	opts := logger.LoggerOptions{LogDir: cfg.LogDir}
	if err := logger.PrintLogFile(nil, opts); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Log file does not exist: %s\n", logger.GetLogPath(opts))
			exitFunc(1)
		}

		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		exitFunc(1)
	}

	exitFunc(0)
	return nil // Won't actually reach here due to exitFunc
}

// Execute runs the root command: --logs, or help when nothing else was asked.
func Execute(cmd *cobra.Command, args []string) error {
	cfg, err := NewConfig(cmd)
	if err != nil {
		return err
	}

	if err := handleLogsFlag(cfg, osExit); err != nil {
		return err
	}

	return cmd.Help()
}
