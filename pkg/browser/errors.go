package browser

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected is returned when the session is used after Close
	ErrNotConnected = errors.New("not connected to browser")

	// ErrElementNotFound is returned when a selector matches nothing in the frame
	ErrElementNotFound = errors.New("element not found")

	// ErrFrameNotFound is returned when a frame element has no content frame
	ErrFrameNotFound = errors.New("frame not found")

	// ErrTimeout is returned when a bounded wait expires
	ErrTimeout = errors.New("operation timed out")

	// ErrTargetNotFound is returned when no open window matches the target title
	ErrTargetNotFound = errors.New("target window not found")

	// ErrCDPConnectionFailed is returned when attaching over CDP fails
	ErrCDPConnectionFailed = errors.New("failed to connect to CDP")
)

// ElementError ties a driver failure to the selector it happened on.
type ElementError struct {
	Op       string
	Selector string
	Err      error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Selector, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}
