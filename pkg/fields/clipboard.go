package fields

import (
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/avast/retry-go/v4"
)

// Clipboard is the process-wide clipboard. Nothing else may write to it
// between a WriteAll and the paste that follows.
type Clipboard interface {
	WriteAll(text string) error
}

// ErrClipboardUnavailable is returned when the platform has no clipboard
// utility (xclip, xsel or wl-copy on Linux).
var ErrClipboardUnavailable = errors.New("system clipboard unavailable")

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct {
	Attempts uint
	Delay    time.Duration
}

// NewSystemClipboard returns a SystemClipboard with three attempts 100ms apart.
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{Attempts: 3, Delay: 100 * time.Millisecond}
}

// WriteAll replaces the clipboard content with text. Clipboard helpers on
// X11 occasionally fail while another client holds the selection, so the
// write is retried a few times.
func (c *SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	err := retry.Do(
		func() error { return clipboard.WriteAll(text) },
		retry.Attempts(c.Attempts),
		retry.Delay(c.Delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	return nil
}
