package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/deskctl/internal/version"
	"github.com/Norgate-AV/deskctl/internal/windows"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show version, elevation and the current desktop",
	Args:  cobra.NoArgs,
	RunE:  runWithApp((*App).runInfo),
}

// isElevated is replaced in tests
var isElevated = windows.IsElevated

func init() {
	RootCmd.AddCommand(infoCmd)
}

func (a *App) runInfo(_ *cobra.Command, _ []string) error {
	current := a.currentName()
	if current == "" {
		current = "unknown"
	}

	build := version.Get()
	fmt.Fprintf(a.out, "version:  %s\n", build)
	if !build.IsRelease() {
		fmt.Fprintln(a.out, "build:    development")
	}

	fmt.Fprintf(a.out, "elevated: %t\n", isElevated())
	fmt.Fprintf(a.out, "desktop:  %s\n", current)
	fmt.Fprintf(a.out, "log:      %s\n", a.log.GetLogPath())

	if a.cfg.ConfigFile != "" {
		fmt.Fprintf(a.out, "config:   %s\n", a.cfg.ConfigFile)
	}

	return nil
}
