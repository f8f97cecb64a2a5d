package workflow

import (
	"errors"

	"github.com/entrhq/eventfill/pkg/browser"
	"github.com/entrhq/eventfill/pkg/extract"
)

var errAlreadyCaptured = errors.New("description fields already captured")

// State is the session context of one run: the target window, the stack of
// frames entered below its document root, and the values carried between
// tabs. The orchestrator is its only mutator.
type State struct {
	window browser.Window
	stack  []browser.Frame

	leaderEmail   string
	moveBelowText string
	captured      bool

	trace []Event
}

// NewState returns a State positioned at the root of window.
func NewState(window browser.Window) *State {
	return &State{window: window}
}

// Window returns the target window.
func (s *State) Window() browser.Window {
	return s.window
}

// Root resets the context to the document root.
func (s *State) Root() {
	s.stack = s.stack[:0]
}

// Enter makes f the active context.
func (s *State) Enter(f browser.Frame) {
	s.stack = append(s.stack, f)
}

// Parent makes the enclosing context active. At the root it does nothing.
func (s *State) Parent() {
	if len(s.stack) > 0 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

// Depth returns the number of frames entered below the root.
func (s *State) Depth() int {
	return len(s.stack)
}

// Current returns the active context.
func (s *State) Current() browser.Frame {
	if len(s.stack) == 0 {
		return s.window.MainFrame()
	}
	return s.stack[len(s.stack)-1]
}

// Element resolves selector in the active context.
func (s *State) Element(selector string) browser.Element {
	return s.Current().Element(selector)
}

// Capture stores the values extracted from the description. It succeeds
// once per run.
func (s *State) Capture(f extract.Fields) error {
	if s.captured {
		return errAlreadyCaptured
	}
	s.leaderEmail = f.LeaderEmail
	s.moveBelowText = f.MoveBelowText
	s.captured = true
	return nil
}

// LeaderEmail returns the captured leader email, "" before capture.
func (s *State) LeaderEmail() string {
	return s.leaderEmail
}

// MoveBelowText returns the captured relocated section.
func (s *State) MoveBelowText() string {
	return s.moveBelowText
}

// Captured reports whether Capture has run.
func (s *State) Captured() bool {
	return s.captured
}

// Record appends an interaction to the trace.
func (s *State) Record(e Event) {
	s.trace = append(s.trace, e)
}

// Trace returns a copy of the interactions recorded so far.
func (s *State) Trace() []Event {
	return append([]Event(nil), s.trace...)
}
