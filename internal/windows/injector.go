package windows

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Norgate-AV/deskctl/internal/input"
	"github.com/Norgate-AV/deskctl/internal/logger"
	"github.com/Norgate-AV/deskctl/internal/timeouts"
)

// Injector synthesizes input on the desktop that currently receives input.
type Injector struct {
	log   logger.LoggerInterface
	send  func(events []input.Event) (uint32, error)
	sleep func(time.Duration)
}

// NewInjector creates an injector backed by SendInput.
func NewInjector(log logger.LoggerInterface) *Injector {
	return &Injector{log: log, send: sendInput, sleep: time.Sleep}
}

// Send passes events to SendInput in one call and returns how many were
// inserted. A short count is reported as an error; UIPI blocks injection into
// windows of higher integrity without any other signal.
func (k *Injector) Send(events ...input.Event) (uint32, error) {
	if len(events) == 0 {
		return 0, nil
	}

	sent, err := k.send(events)
	if sent != uint32(len(events)) {
		k.log.Warn("SendInput failed",
			slog.Int("expected", len(events)),
			slog.Uint64("sent", uint64(sent)),
			slog.Any("error", err))
		return sent, fmt.Errorf("SendInput inserted %d of %d events: %w", sent, len(events), err)
	}

	return sent, nil
}

// TypeText types text with unicode keyboard events.
func (k *Injector) TypeText(text string) error {
	k.log.Debug("Typing text", slog.Int("length", len(text)))

	_, err := k.Send(input.UnicodeText(text)...)
	return err
}

// PressKey presses and releases the virtual key vk, pausing between the two
// so slow message loops see the key held.
func (k *Injector) PressKey(vk uint16, extended bool) error {
	events := input.KeyPress(vk, extended)

	k.log.Debug("Sending key down", slog.Uint64("vk", uint64(vk)))
	if _, err := k.Send(events[0]); err != nil {
		return err
	}

	k.sleep(timeouts.KeystrokeDelay)

	k.log.Debug("Sending key up", slog.Uint64("vk", uint64(vk)))
	_, err := k.Send(events[1])
	return err
}

// Chord holds every key in vks, then releases them in reverse order.
func (k *Injector) Chord(vks ...uint16) error {
	k.log.Debug("Sending chord", slog.Any("vks", vks))

	_, err := k.Send(input.Chord(vks...)...)
	return err
}

// Click presses and releases a mouse button at the cursor position.
func (k *Injector) Click(button int) error {
	events := input.Click(button)

	if _, err := k.Send(events[0]); err != nil {
		return err
	}

	k.sleep(timeouts.MouseClickDelay)

	_, err := k.Send(events[1])
	return err
}

// MoveTo moves the cursor to normalized absolute coordinates.
func (k *Injector) MoveTo(x, y int32) error {
	_, err := k.Send(input.MoveTo(x, y))
	return err
}
