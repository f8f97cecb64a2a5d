package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

type pageFrame struct {
	frame playwright.Frame
	main  bool
}

func (f *pageFrame) ElementID(ctx context.Context) (string, error) {
	if f.main {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	host, err := f.frame.FrameElement()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFrameNotFound, err)
	}
	defer host.Dispose()

	return host.GetAttribute("id")
}

func (f *pageFrame) ChildFrames(ctx context.Context) ([]Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	children := f.frame.ChildFrames()
	frames := make([]Frame, 0, len(children))
	for _, child := range children {
		if child.IsDetached() {
			continue
		}
		frames = append(frames, &pageFrame{frame: child})
	}
	return frames, nil
}

func (f *pageFrame) Element(selector string) Element {
	return &frameElement{frame: f.frame, selector: selector}
}

// frameElement re-resolves its selector on every call.
type frameElement struct {
	frame    playwright.Frame
	selector string
}

func (e *frameElement) locator() playwright.Locator {
	return e.frame.Locator(e.selector).First()
}

func (e *frameElement) Selector() string {
	return e.selector
}

func (e *frameElement) Exists(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	n, err := e.frame.Locator(e.selector).Count()
	if err != nil {
		return false, e.wrap("count", err)
	}
	return n > 0, nil
}

// require fails fast with ErrElementNotFound instead of letting playwright
// wait out its default action timeout on a node that is not there.
func (e *frameElement) require(ctx context.Context, op string) error {
	ok, err := e.Exists(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return e.wrap(op, ErrElementNotFound)
	}
	return nil
}

func (e *frameElement) Visibility(ctx context.Context) (Visibility, error) {
	ok, err := e.Exists(ctx)
	if err != nil {
		return Absent, err
	}
	if !ok {
		return Absent, nil
	}
	visible, err := e.locator().IsVisible()
	if err != nil {
		return Absent, e.wrap("visibility", err)
	}
	if visible {
		return Visible, nil
	}
	return Hidden, nil
}

func (e *frameElement) IsChecked(ctx context.Context) (bool, error) {
	if err := e.require(ctx, "is checked"); err != nil {
		return false, err
	}
	checked, err := e.locator().IsChecked()
	if err != nil {
		return false, e.wrap("is checked", err)
	}
	return checked, nil
}

func (e *frameElement) Text(ctx context.Context) (string, error) {
	if err := e.require(ctx, "text"); err != nil {
		return "", err
	}
	text, err := e.locator().InnerText()
	if err != nil {
		return "", e.wrap("text", err)
	}
	return text, nil
}

func (e *frameElement) Click(ctx context.Context) error {
	if err := e.require(ctx, "click"); err != nil {
		return err
	}
	return e.wrap("click", e.locator().Click())
}

func (e *frameElement) Focus(ctx context.Context) error {
	if err := e.require(ctx, "focus"); err != nil {
		return err
	}
	return e.wrap("focus", e.locator().Focus())
}

func (e *frameElement) Press(ctx context.Context, key string) error {
	if err := e.require(ctx, "press"); err != nil {
		return err
	}
	return e.wrap("press "+key, e.locator().Press(key))
}

func (e *frameElement) WaitClickable(ctx context.Context, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// A trial click runs every actionability check without clicking.
	err := e.locator().Click(playwright.LocatorClickOptions{
		Trial:   playwright.Bool(true),
		Timeout: millis(timeout),
	})
	return e.wrap("wait clickable", err)
}

func (e *frameElement) WaitPresent(ctx context.Context, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := e.locator().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: millis(timeout),
	})
	return e.wrap("wait present", err)
}

func (e *frameElement) WaitText(ctx context.Context, substr string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	loc := e.frame.Locator(e.selector, playwright.FrameLocatorOptions{HasText: substr}).First()
	err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: millis(timeout),
	})
	return e.wrap("wait text", err)
}

func (e *frameElement) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) && !errors.Is(err, ErrTimeout) {
		err = fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return &ElementError{Op: op, Selector: e.selector, Err: err}
}

func millis(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}
