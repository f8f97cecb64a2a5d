package browser

import (
	"context"
	"time"
)

// Browser is an attached browser instance.
type Browser interface {
	// Windows lists every open top-level page across all browser contexts.
	Windows(ctx context.Context) ([]Window, error)

	// Close disconnects from the browser. The browser itself keeps running.
	Close() error
}

// Window is one top-level page.
type Window interface {
	// Handle is a stable identifier for the window within this session.
	Handle() string

	// Title returns the current document title.
	Title(ctx context.Context) (string, error)

	// Activate brings the window to the front.
	Activate(ctx context.Context) error

	// MainFrame returns the document root of the window.
	MainFrame() Frame
}

// Frame is a document context. Element lookups made through a Frame only see
// that frame's subtree.
type Frame interface {
	// ElementID returns the id attribute of the iframe element hosting this
	// frame. The main frame has no host element and returns "".
	ElementID(ctx context.Context) (string, error)

	// ChildFrames returns the frames nested directly inside this frame.
	ChildFrames(ctx context.Context) ([]Frame, error)

	// Element returns a lazily resolved control matching selector.
	Element(selector string) Element
}

// Element is a control located by selector inside a Frame.
type Element interface {
	// Selector returns the selector this element was created with.
	Selector() string

	// Exists reports whether the selector currently matches a node.
	Exists(ctx context.Context) (bool, error)

	// Visibility reports whether the element is absent, hidden or visible.
	Visibility(ctx context.Context) (Visibility, error)

	// IsChecked reports the checked state of a checkbox or radio button.
	IsChecked(ctx context.Context) (bool, error)

	// Text returns the rendered text of the element.
	Text(ctx context.Context) (string, error)

	// Click performs a single left click.
	Click(ctx context.Context) error

	// Focus moves keyboard focus to the element.
	Focus(ctx context.Context) error

	// Press sends a key or key chord ("Delete", "ControlOrMeta+v") to the element.
	Press(ctx context.Context, key string) error

	// WaitClickable blocks until the element is attached, visible, stable and
	// enabled, or the timeout passes.
	WaitClickable(ctx context.Context, timeout time.Duration) error

	// WaitPresent blocks until the element is attached to the DOM.
	WaitPresent(ctx context.Context, timeout time.Duration) error

	// WaitText blocks until the element's text contains substr.
	WaitText(ctx context.Context, substr string, timeout time.Duration) error
}

// Visibility is the tri-state answer to "can the operator see this control".
type Visibility int

const (
	// Absent means the selector matches no node
	Absent Visibility = iota
	// Hidden means the node exists but is not rendered
	Hidden
	// Visible means the node exists and is rendered
	Visible
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Visible:
		return "visible"
	default:
		return "absent"
	}
}

// ConnectOptions configures attaching to a running browser.
type ConnectOptions struct {
	// Endpoint is the remote debugging URL, e.g. http://127.0.0.1:9222
	Endpoint string

	// Timeout bounds the CDP handshake
	Timeout time.Duration
}

// Default values for the attach step
const (
	DefaultEndpoint       = "http://127.0.0.1:9222"
	DefaultConnectTimeout = 30 * time.Second
)
