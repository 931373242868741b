package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/deskctl/internal/desktop"
	"github.com/Norgate-AV/deskctl/internal/timeouts"
)

// errDesktopNotFound is returned by commands that never create desktops
var errDesktopNotFound = errors.New("desktop not found")

// sleep is replaced in tests
var sleep = time.Sleep

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List desktops on the current window station",
	Args:  cobra.NoArgs,
	RunE:  runWithApp((*App).runList),
}

var existsCmd = &cobra.Command{
	Use:   "exists <name>",
	Short: "Exit 0 if the desktop exists, 1 otherwise",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithApp((*App).runExists),
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Open a desktop, creating it if needed",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithApp((*App).runCreate),
}

var switchCmd = &cobra.Command{
	Use:   "switch <name>",
	Short: "Switch input and display to an existing desktop",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithApp((*App).runSwitch),
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the desktop of the calling thread",
	Args:  cobra.NoArgs,
	RunE:  runWithApp((*App).runCurrent),
}

var windowsCmd = &cobra.Command{
	Use:   "windows <name>",
	Short: "List top-level windows on a desktop",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithApp((*App).runWindows),
}

var processesCmd = &cobra.Command{
	Use:   "processes <name>",
	Short: "List processes with a thread attached to a desktop",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithApp((*App).runProcesses),
}

var runCmd = &cobra.Command{
	Use:   "run <name> <path>",
	Short: "Start a program on a desktop",
	Args:  cobra.ExactArgs(2),
	RunE:  runWithApp((*App).runRun),
}

func init() {
	createCmd.Flags().BoolP("prepare", "p", false, "start the shell on the new desktop")
	createCmd.Flags().BoolP("show", "s", false, "switch to the desktop after creating it")
	windowsCmd.Flags().BoolP("all", "a", false, "include invisible windows")

	RootCmd.AddCommand(listCmd, existsCmd, createCmd, switchCmd, currentCmd,
		windowsCmd, processesCmd, runCmd)
}

// openExisting opens name without ever creating it
func (a *App) openExisting(name string) (*desktop.Desktop, error) {
	if !a.desktops.Exists(name, a.cfg.IgnoreCase) {
		return nil, fmt.Errorf("%w: %s", errDesktopNotFound, name)
	}

	return a.desktops.OpenOrCreate(name, a.cfg.IgnoreCase)
}

// currentName returns the calling thread's desktop name, or "" if unknown
func (a *App) currentName() string {
	d, err := a.desktops.Current()
	if err != nil {
		a.log.Debug("Could not resolve current desktop", slog.Any("error", err))
		return ""
	}

	defer d.Dispose()

	name, _ := d.Name()
	return name
}

func (a *App) runList(_ *cobra.Command, _ []string) error {
	names, ok := a.desktops.EnumerateAll()
	if !ok {
		return fmt.Errorf("could not enumerate desktops on the window station")
	}

	current := a.currentName()
	for _, name := range names {
		marker := " "
		if name == current {
			marker = color.GreenString("*")
		}

		fmt.Fprintf(a.out, "%s %s\n", marker, name)
	}

	return nil
}

func (a *App) runExists(_ *cobra.Command, args []string) error {
	if !a.desktops.Exists(args[0], a.cfg.IgnoreCase) {
		return fmt.Errorf("%w: %s", errDesktopNotFound, args[0])
	}

	fmt.Fprintln(a.out, args[0])
	return nil
}

func (a *App) runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	prepare, _ := cmd.Flags().GetBool("prepare")
	show, _ := cmd.Flags().GetBool("show")

	existed := a.desktops.Exists(name, a.cfg.IgnoreCase)

	d, err := a.desktops.OpenOrCreate(name, a.cfg.IgnoreCase)
	if err != nil {
		return err
	}

	defer d.Dispose()

	if existed {
		a.log.Info("Opened existing desktop", slog.String("name", name))
	} else {
		a.log.Info("Created desktop", slog.String("name", name))
	}

	if prepare {
		p, err := d.Prepare()
		if err != nil {
			return err
		}

		if p == nil {
			return fmt.Errorf("failed to start shell on desktop %s", name)
		}

		a.log.Info("Shell started", slog.Uint64("pid", uint64(p.PID)))
		if err := p.Close(); err != nil {
			a.log.Debug("Failed to close shell handle", slog.Any("error", err))
		}

		sleep(timeouts.ShellStartDelay)
	} else if !existed {
		// The OS destroys a desktop once its last handle is closed and no
		// thread is attached to it
		a.log.Warn("Desktop has no processes and is destroyed when deskctl exits; use --prepare or run")
	}

	if show {
		ok, err := d.Show()
		if err != nil {
			return err
		}

		if !ok {
			return fmt.Errorf("failed to switch to desktop %s", name)
		}
	}

	return nil
}

func (a *App) runSwitch(_ *cobra.Command, args []string) error {
	d, err := a.openExisting(args[0])
	if err != nil {
		return err
	}

	defer d.Dispose()

	ok, err := d.Show()
	if err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("failed to switch to desktop %s", args[0])
	}

	a.log.Info("Switched desktop", slog.String("name", args[0]))
	return nil
}

func (a *App) runCurrent(_ *cobra.Command, _ []string) error {
	name := a.currentName()
	if name == "" {
		return fmt.Errorf("could not determine the current desktop")
	}

	fmt.Fprintln(a.out, name)
	return nil
}

func (a *App) runWindows(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")

	d, err := a.openExisting(args[0])
	if err != nil {
		return err
	}

	defer d.Dispose()

	hwnds, err := d.EnumerateWindows()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "HWND\tPID\tCLASS\tTITLE")

	for hwnd := range hwnds {
		if !all && !a.windows.Visible(hwnd) {
			continue
		}

		fmt.Fprintf(tw, "0x%X\t%d\t%s\t%s\n",
			hwnd, a.windows.Pid(hwnd), a.windows.Class(hwnd), a.windows.Title(hwnd))
	}

	return tw.Flush()
}

func (a *App) runProcesses(_ *cobra.Command, args []string) error {
	d, err := a.openExisting(args[0])
	if err != nil {
		return err
	}

	defer d.Dispose()

	procs, err := d.EnumerateProcesses()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PID\tPPID\tEXE\tUSER\tCOMMAND")

	for _, p := range procs {
		details := a.details(p.PID)
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n", p.PID, p.ParentPID, p.ExeFile, details.User, details.Cmdline)
	}

	return tw.Flush()
}

func (a *App) runRun(_ *cobra.Command, args []string) error {
	name, path := args[0], args[1]

	d, err := a.openExisting(name)
	if err != nil {
		return err
	}

	defer d.Dispose()

	p, err := d.SpawnProcess(path)
	if err != nil {
		return err
	}

	if p == nil {
		return fmt.Errorf("failed to start %s on desktop %s", path, name)
	}

	defer p.Close()

	fmt.Fprintln(a.out, p.PID)
	return nil
}
