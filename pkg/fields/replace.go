package fields

import (
	"context"
	"fmt"
	"time"

	"github.com/entrhq/eventfill/pkg/browser"
)

// Key chords used by ReplaceContent. ControlOrMeta resolves to Cmd on macOS.
const (
	KeySelectAll = "ControlOrMeta+a"
	KeyDelete    = "Delete"
	KeyPaste     = "ControlOrMeta+v"
)

// Writer replaces the content of editor widgets that ignore direct value
// assignment.
type Writer struct {
	Clipboard Clipboard

	// Settle is the pause between clearing a field and pasting into it
	Settle time.Duration
}

// NewWriter returns a Writer that stages text through clip.
func NewWriter(clip Clipboard, settle time.Duration) *Writer {
	return &Writer{Clipboard: clip, Settle: settle}
}

// ReplaceContent clears el and pastes text into it:
// click, select all, delete, put text on the clipboard, click, paste.
// The clipboard still holds text afterwards.
func (w *Writer) ReplaceContent(ctx context.Context, el browser.Element, text string) error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"focus", func() error { return el.Click(ctx) }},
		{"select all", func() error { return el.Press(ctx, KeySelectAll) }},
		{"delete", func() error { return el.Press(ctx, KeyDelete) }},
		{"settle", func() error { return sleep(ctx, w.Settle) }},
		{"copy", func() error { return w.Clipboard.WriteAll(text) }},
		{"refocus", func() error { return el.Click(ctx) }},
		{"paste", func() error { return el.Press(ctx, KeyPaste) }},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("replace content (%s): %w", step.name, err)
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
