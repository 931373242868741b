package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/deskctl/internal/input"
)

var typeCmd = &cobra.Command{
	Use:   "type <text>...",
	Short: "Type text with synthesized unicode key events",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWithApp((*App).runType),
}

var keyCmd = &cobra.Command{
	Use:   "key <key>[+<key>...]",
	Short: "Press a key or chord, e.g. enter, f12, 0x7B, ctrl+shift+esc",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithApp((*App).runKey),
}

var clickCmd = &cobra.Command{
	Use:       "click [left|right|middle]",
	Short:     "Click a mouse button, optionally after moving the cursor",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"left", "right", "middle"},
	RunE:      runWithApp((*App).runClick),
}

func init() {
	for _, c := range []*cobra.Command{typeCmd, keyCmd, clickCmd} {
		c.Flags().StringP("desktop", "d", "", "attach to this desktop before injecting (must be the input desktop)")
	}

	clickCmd.Flags().String("at", "", "move to normalized x,y (0-65535) before clicking")

	RootCmd.AddCommand(typeCmd, keyCmd, clickCmd)
}

// attachTo binds the calling thread to the --desktop target, if any.
// SendInput only reaches the desktop the calling thread is attached to.
func (a *App) attachTo(cmd *cobra.Command) error {
	name, _ := cmd.Flags().GetString("desktop")
	if name == "" {
		return nil
	}

	d, err := a.openExisting(name)
	if err != nil {
		return err
	}

	// The handle stays open while the thread is attached
	if !a.desktops.SetCurrent(d) {
		_ = d.Dispose()
		return fmt.Errorf("could not attach to desktop %s", name)
	}

	a.log.Debug("Attached to desktop", slog.String("name", name))
	return nil
}

func (a *App) runType(cmd *cobra.Command, args []string) error {
	if err := a.attachTo(cmd); err != nil {
		return err
	}

	return a.input.TypeText(strings.Join(args, " "))
}

func (a *App) runKey(cmd *cobra.Command, args []string) error {
	vks, err := parseChord(args[0])
	if err != nil {
		return err
	}

	if err := a.attachTo(cmd); err != nil {
		return err
	}

	if len(vks) == 1 {
		return a.input.PressKey(vks[0], extendedKeys[vks[0]])
	}

	return a.input.Chord(vks...)
}

func (a *App) runClick(cmd *cobra.Command, args []string) error {
	button := input.ButtonLeft
	if len(args) == 1 {
		switch args[0] {
		case "right":
			button = input.ButtonRight
		case "middle":
			button = input.ButtonMiddle
		}
	}

	at, _ := cmd.Flags().GetString("at")

	var x, y int32
	if at != "" {
		var err error
		if x, y, err = parsePoint(at); err != nil {
			return err
		}
	}

	if err := a.attachTo(cmd); err != nil {
		return err
	}

	if at != "" {
		if err := a.input.MoveTo(x, y); err != nil {
			return err
		}
	}

	return a.input.Click(button)
}

// parsePoint parses "x,y" in normalized absolute coordinates
func parsePoint(s string) (int32, int32, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid point %q, want x,y", s)
	}

	x, err := strconv.ParseInt(strings.TrimSpace(xs), 10, 32)
	if err != nil || x < 0 || x > 65535 {
		return 0, 0, fmt.Errorf("invalid x coordinate %q", xs)
	}

	y, err := strconv.ParseInt(strings.TrimSpace(ys), 10, 32)
	if err != nil || y < 0 || y > 65535 {
		return 0, 0, fmt.Errorf("invalid y coordinate %q", ys)
	}

	return int32(x), int32(y), nil
}
