package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/gobwas/glob"

	"github.com/entrhq/eventfill/pkg/browser"
)

var errFrameNotReady = errors.New("no matching frame yet")

// Navigator runs the bounded waits of a run against the active context of a
// State and applies the failure policy.
type Navigator struct {
	state *State

	poll time.Duration

	// strict escalates continue-level failures to the end of the tab
	strict bool

	// diagnose receives every failure passed to Check
	diagnose func(*Error)
}

// NewNavigator returns a Navigator over state. poll is the interval between
// frame scans; strict makes timeouts and driver faults abort the tab.
func NewNavigator(state *State, poll time.Duration, strict bool, diagnose func(*Error)) *Navigator {
	if diagnose == nil {
		diagnose = func(*Error) {}
	}
	return &Navigator{state: state, poll: poll, strict: strict, diagnose: diagnose}
}

// AwaitFrameEntry waits until a child frame of the active context has a host
// element id matching pattern, then enters it. Pattern is a glob
// ("idEditorIFrame_*"); a literal id matches only itself.
func (n *Navigator) AwaitFrameEntry(ctx context.Context, pattern string, timeout time.Duration) error {
	const op = "enter frame"

	g, err := glob.Compile(pattern)
	if err != nil {
		return &Error{Kind: KindDriverFault, Op: op, Identifier: pattern, Err: err}
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	parent := n.state.Current()
	var found browser.Frame
	err = retry.Do(
		func() error {
			frames, err := parent.ChildFrames(waitCtx)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			for _, f := range frames {
				id, err := f.ElementID(waitCtx)
				if err != nil {
					// detached between listing and inspection
					continue
				}
				if g.Match(id) {
					found = f
					return nil
				}
			}
			return errFrameNotReady
		},
		retry.Context(waitCtx),
		retry.Attempts(0),
		retry.Delay(n.poll),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)

	if found != nil {
		n.state.Enter(found)
		return nil
	}
	if ctx.Err() != nil {
		return newError(op, pattern, ctx.Err())
	}
	if waitCtx.Err() != nil {
		return &Error{Kind: KindTimeout, Op: op, Identifier: pattern, Err: browser.ErrTimeout}
	}
	return newError(op, pattern, err)
}

// AwaitClickable waits until the element is visible and enabled.
func (n *Navigator) AwaitClickable(ctx context.Context, selector string, timeout time.Duration) error {
	el := n.state.Element(selector)
	return n.waitError(ctx, "await clickable", el, el.WaitClickable(ctx, timeout))
}

// AwaitText waits until the element's text contains substr.
func (n *Navigator) AwaitText(ctx context.Context, selector, substr string, timeout time.Duration) error {
	el := n.state.Element(selector)
	return n.waitError(ctx, "await text", el, el.WaitText(ctx, substr, timeout))
}

// AwaitPresent waits until the element is attached to the DOM.
func (n *Navigator) AwaitPresent(ctx context.Context, selector string, timeout time.Duration) error {
	el := n.state.Element(selector)
	return n.waitError(ctx, "await present", el, el.WaitPresent(ctx, timeout))
}

// waitError classifies a failed wait. A timeout on a selector that matches
// nothing is reported as an absent element.
func (n *Navigator) waitError(ctx context.Context, op string, el browser.Element, err error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() == nil && errors.Is(err, browser.ErrTimeout) {
		if ok, probeErr := el.Exists(ctx); probeErr == nil && !ok {
			return &Error{Kind: KindElementAbsent, Op: op, Identifier: el.Selector(), Err: err}
		}
	}
	return newError(op, el.Selector(), err)
}

// Check reports err and decides whether the caller must stop. It returns nil
// when the run may continue with the next statement of the tab.
func (n *Navigator) Check(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	var we *Error
	if !errors.As(err, &we) {
		we = newError("step", "", err)
	}
	n.diagnose(we)

	if ctx.Err() != nil {
		return we
	}
	if we.Kind.Severity() > SeverityContinue || n.strict {
		return we
	}
	return nil
}
