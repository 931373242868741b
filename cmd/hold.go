package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/deskctl/internal/desktop"
	"github.com/Norgate-AV/deskctl/internal/logger"
	"github.com/Norgate-AV/deskctl/internal/timeouts"
	"github.com/Norgate-AV/deskctl/internal/windows"
)

var holdCmd = &cobra.Command{
	Use:   "hold <name>",
	Short: "Show a desktop until interrupted, then switch back to Default",
	Long: `hold opens or creates the desktop, starts the shell on it unless
--no-prepare is given, and switches to it. On Ctrl+C, console close, logoff or
shutdown it switches back to the Default desktop before exiting.`,
	Args: cobra.ExactArgs(1),
	RunE: runWithApp((*App).runHold),
}

func init() {
	holdCmd.Flags().Bool("no-prepare", false, "do not start the shell on the desktop")
	RootCmd.AddCommand(holdCmd)
}

// HoldContext holds state needed by the signal handlers to restore the
// Default desktop exactly once.
type HoldContext struct {
	app     *App
	desk    *desktop.Desktop
	once    sync.Once
	done    chan struct{}
	restore func() error
}

func newHoldContext(a *App, d *desktop.Desktop) *HoldContext {
	h := &HoldContext{
		app:  a,
		desk: d,
		done: make(chan struct{}),
	}
	h.restore = h.switchBack

	return h
}

// Stop restores the Default desktop and releases waiters. Safe to call from
// several handlers at once; only the first call does the work.
func (h *HoldContext) Stop(reason string) {
	h.once.Do(func() {
		h.app.log.Info("Restoring Default desktop",
			slog.String("reason", reason),
			logger.Handle("held", h.desk.Handle()))

		if err := h.restore(); err != nil {
			h.app.log.Error("Failed to switch back", slog.Any("error", err))
		}

		close(h.done)
	})
}

// Done is closed once Stop has finished
func (h *HoldContext) Done() <-chan struct{} {
	return h.done
}

// switchBack retries SwitchDesktop for up to SwitchBackTimeout; the call
// fails while a secure desktop such as UAC or Ctrl+Alt+Del is up
func (h *HoldContext) switchBack() error {
	def, err := h.app.desktops.OpenOrCreate(desktop.DefaultDesktop, true)
	if err != nil {
		return err
	}

	defer def.Dispose()

	retries := int(timeouts.SwitchBackTimeout / timeouts.SwitchRetryInterval)
	for attempt := 0; ; attempt++ {
		ok, err := def.Show()
		if err != nil {
			return err
		}

		if ok {
			return nil
		}

		if attempt >= retries {
			return fmt.Errorf("timed out switching back to %s", desktop.DefaultDesktop)
		}

		sleep(timeouts.SwitchRetryInterval)
	}
}

// setupSignalHandlers configures console control and interrupt signal handlers
func setupSignalHandlers(h *HoldContext) func() {
	// Console close, logoff and shutdown kill the process once the handler
	// returns, so the handler waits for the restore to finish
	_ = windows.SetConsoleCtrlHandler(func(ctrlType uint32) uintptr {
		h.app.log.Debug("Received console control event",
			slog.String("type", windows.GetCtrlTypeName(ctrlType)),
			slog.Uint64("code", uint64(ctrlType)),
		)

		h.Stop(windows.GetCtrlTypeName(ctrlType))
		return 1
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig, ok := <-sigChan
		if !ok {
			return
		}

		h.app.log.Debug("Received signal", slog.Any("signal", sig))
		h.Stop(sig.String())
	}()

	return func() {
		signal.Stop(sigChan)
		close(sigChan)
	}
}

func (a *App) runHold(cmd *cobra.Command, args []string) error {
	name := args[0]
	noPrepare, _ := cmd.Flags().GetBool("no-prepare")

	d, err := a.desktops.OpenOrCreate(name, a.cfg.IgnoreCase)
	if err != nil {
		return err
	}

	defer d.Dispose()

	if !noPrepare {
		p, err := d.Prepare()
		if err != nil {
			return err
		}

		if p == nil {
			return fmt.Errorf("failed to start shell on desktop %s", name)
		}

		defer p.Close()

		a.log.Info("Shell started, waiting for it to settle", slog.Uint64("pid", uint64(p.PID)))
		sleep(timeouts.ShellStartDelay)
	}

	h := newHoldContext(a, d)
	stopSignals := setupSignalHandlers(h)
	defer stopSignals()

	ok, err := d.Show()
	if err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("failed to switch to desktop %s", name)
	}

	a.log.Info("Holding desktop, press Ctrl+C to return", slog.String("name", name))
	<-h.Done()

	return nil
}
