package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/entrhq/eventfill/pkg/browser"
	"github.com/entrhq/eventfill/pkg/extract"
)

// Kind classifies a workflow failure.
type Kind int

const (
	// KindTimeout means a bounded wait expired before its condition held
	KindTimeout Kind = iota
	// KindElementAbsent means the DOM has no node for the identifier
	KindElementAbsent
	// KindPatternNotFound means a text pattern was missing from its input
	KindPatternNotFound
	// KindTargetNotFound means no open window is the target page
	KindTargetNotFound
	// KindDriverFault is any other driver-level failure
	KindDriverFault
)

var (
	ErrTimeout         = errors.New("timeout")
	ErrElementAbsent   = errors.New("element absent")
	ErrPatternNotFound = errors.New("pattern not found")
	ErrTargetNotFound  = errors.New("target not found")
	ErrDriverFault     = errors.New("driver fault")
)

func (k Kind) String() string {
	return k.sentinel().Error()
}

func (k Kind) sentinel() error {
	switch k {
	case KindTimeout:
		return ErrTimeout
	case KindElementAbsent:
		return ErrElementAbsent
	case KindPatternNotFound:
		return ErrPatternNotFound
	case KindTargetNotFound:
		return ErrTargetNotFound
	default:
		return ErrDriverFault
	}
}

// Severity is how far a failure of a given kind reaches.
type Severity int

const (
	// SeverityContinue failures are logged and the next statement runs
	SeverityContinue Severity = iota
	// SeverityAbortTab failures stop the tab in progress
	SeverityAbortTab
	// SeverityFatal failures stop the run
	SeverityFatal
)

// Severity returns the default reach of a failure of kind k.
func (k Kind) Severity() Severity {
	switch k {
	case KindTargetNotFound:
		return SeverityFatal
	case KindPatternNotFound:
		return SeverityAbortTab
	default:
		return SeverityContinue
	}
}

// Error is a classified workflow failure tied to the identifier it concerns.
type Error struct {
	Kind       Kind
	Op         string
	Identifier string
	Err        error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Identifier, e.Kind)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Identifier, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind, so errors.Is(err, ErrTimeout)
// works on any wrapped *Error.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// newError classifies err and attaches op and identifier. It returns nil for
// a nil err and keeps the kind of an err that is already an *Error.
func newError(op, identifier string, err error) *Error {
	if err == nil {
		return nil
	}
	var we *Error
	if errors.As(err, &we) {
		return &Error{Kind: we.Kind, Op: op, Identifier: identifier, Err: err}
	}
	return &Error{Kind: classify(err), Op: op, Identifier: identifier, Err: err}
}

// KindOf returns the kind of any error.
func KindOf(err error) Kind {
	var we *Error
	if errors.As(err, &we) {
		return we.Kind
	}
	return classify(err)
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, browser.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, browser.ErrElementNotFound), errors.Is(err, browser.ErrFrameNotFound):
		return KindElementAbsent
	case errors.Is(err, extract.ErrPatternNotFound):
		return KindPatternNotFound
	case errors.Is(err, browser.ErrTargetNotFound):
		return KindTargetNotFound
	default:
		return KindDriverFault
	}
}
