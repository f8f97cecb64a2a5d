package workflow

import (
	"context"
	"strings"
	"time"

	"github.com/entrhq/eventfill/pkg/browser"
	"github.com/entrhq/eventfill/pkg/config"
	"github.com/entrhq/eventfill/pkg/fields"
)

// In-memory browser used by the workflow tests. Frames hold elements keyed by
// selector; a selector a frame does not hold resolves to a missing element.

type fakeClipboard struct {
	text   string
	writes int
	err    error
}

func (c *fakeClipboard) WriteAll(text string) error {
	c.writes++
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type fakeBrowser struct {
	windows []*fakeWindow
	err     error
}

func (b *fakeBrowser) Windows(ctx context.Context) ([]browser.Window, error) {
	if b.err != nil {
		return nil, b.err
	}
	out := make([]browser.Window, len(b.windows))
	for i, w := range b.windows {
		out[i] = w
	}
	return out, nil
}

func (b *fakeBrowser) Close() error { return nil }

type fakeWindow struct {
	handle    string
	title     string
	titleErr  error
	main      browser.Frame
	activated bool
}

func (w *fakeWindow) Handle() string { return w.handle }

func (w *fakeWindow) Title(ctx context.Context) (string, error) {
	return w.title, w.titleErr
}

func (w *fakeWindow) Activate(ctx context.Context) error {
	w.activated = true
	return nil
}

func (w *fakeWindow) MainFrame() browser.Frame { return w.main }

type fakeFrame struct {
	id       string
	children []*fakeFrame
	elements map[string]*fakeElement
	clip     *fakeClipboard
}

func newFrame(id string, clip *fakeClipboard) *fakeFrame {
	return &fakeFrame{id: id, elements: map[string]*fakeElement{}, clip: clip}
}

func (f *fakeFrame) add(selector string) *fakeElement {
	el := &fakeElement{selector: selector, clip: f.clip}
	f.elements[selector] = el
	return el
}

func (f *fakeFrame) nest(child *fakeFrame) *fakeFrame {
	f.children = append(f.children, child)
	return child
}

func (f *fakeFrame) ElementID(ctx context.Context) (string, error) {
	return f.id, nil
}

func (f *fakeFrame) ChildFrames(ctx context.Context) ([]browser.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]browser.Frame, len(f.children))
	for i, c := range f.children {
		out[i] = c
	}
	return out, nil
}

func (f *fakeFrame) Element(selector string) browser.Element {
	if el, ok := f.elements[selector]; ok {
		return el
	}
	return &fakeElement{selector: selector, missing: true}
}

type fakeElement struct {
	selector string
	missing  bool
	hidden   bool
	checked  bool
	text     string
	selected bool

	clickErr error
	clicks   int
	keys     []string
	onClick  func()

	clip *fakeClipboard
}

func (e *fakeElement) notFound(op string) error {
	return &browser.ElementError{Op: op, Selector: e.selector, Err: browser.ErrElementNotFound}
}

func (e *fakeElement) timeout(op string) error {
	return &browser.ElementError{Op: op, Selector: e.selector, Err: browser.ErrTimeout}
}

func (e *fakeElement) Selector() string { return e.selector }

func (e *fakeElement) Exists(ctx context.Context) (bool, error) { return !e.missing, nil }

func (e *fakeElement) Visibility(ctx context.Context) (browser.Visibility, error) {
	switch {
	case e.missing:
		return browser.Absent, nil
	case e.hidden:
		return browser.Hidden, nil
	default:
		return browser.Visible, nil
	}
}

func (e *fakeElement) IsChecked(ctx context.Context) (bool, error) {
	if e.missing {
		return false, e.notFound("is checked")
	}
	return e.checked, nil
}

func (e *fakeElement) Text(ctx context.Context) (string, error) {
	if e.missing {
		return "", e.notFound("text")
	}
	return e.text, nil
}

func (e *fakeElement) Click(ctx context.Context) error {
	if e.missing {
		return e.notFound("click")
	}
	if e.clickErr != nil {
		return e.clickErr
	}
	e.clicks++
	e.checked = !e.checked
	e.selected = false
	if e.onClick != nil {
		e.onClick()
	}
	return nil
}

func (e *fakeElement) Focus(ctx context.Context) error {
	if e.missing {
		return e.notFound("focus")
	}
	return nil
}

func (e *fakeElement) Press(ctx context.Context, key string) error {
	if e.missing {
		return e.notFound("press")
	}
	e.keys = append(e.keys, key)
	switch key {
	case fields.KeySelectAll:
		e.selected = true
	case fields.KeyDelete:
		if e.selected {
			e.text = ""
			e.selected = false
		}
	case fields.KeyPaste:
		e.text += e.clip.text
	}
	return nil
}

func (e *fakeElement) WaitClickable(ctx context.Context, timeout time.Duration) error {
	if e.missing || e.hidden {
		return e.timeout("wait clickable")
	}
	return nil
}

func (e *fakeElement) WaitPresent(ctx context.Context, timeout time.Duration) error {
	if e.missing {
		return e.timeout("wait present")
	}
	return nil
}

func (e *fakeElement) WaitText(ctx context.Context, substr string, timeout time.Duration) error {
	if e.missing || !strings.Contains(e.text, substr) {
		return e.timeout("wait text")
	}
	return nil
}

const (
	testDescription = "Eno River Loop\n" +
		"Leader: Pat Doe\n" +
		"Email: leader@example.org\n" +
		"Distance: miles\n" +
		"Move to \"Additional event information\" section below\n" +
		"Carpool from the Food Lion lot.\n" +
		"Bring water."

	testDescriptionHTML = "<P><STRONG>Eno River Loop</STRONG><br>\n" +
		"Leader: Pat Doe<br>\n" +
		"<STRONG>Distance: </STRONG> miles <br>\n" +
		"Move to \"Additional event information\" section below<br>\n" +
		"Carpool from the Food Lion lot.</P>"

	testCleanedHTML = "<STRONG>Eno River Loop</STRONG><br>Leader: Pat Doe<br>"
)

// eventPage is an event details page with the editor layout the default
// selectors describe, every toggle unchecked.
type eventPage struct {
	browser *fakeBrowser
	window  *fakeWindow
	clip    *fakeClipboard
	sel     config.Selectors

	root, content, editor, dialog, reload *fakeFrame
}

func newEventPage() *eventPage {
	sel := config.DefaultSelectors()
	clip := &fakeClipboard{}
	p := &eventPage{clip: clip, sel: sel}

	p.root = newFrame("", clip)
	p.content = p.root.nest(newFrame("contentFrame", clip))
	p.editor = p.content.nest(newFrame("idEditorIFrame_8842571", clip))
	p.dialog = p.root.nest(newFrame("idBaseIFrame_SelectRecipientDialog", clip))
	p.reload = p.dialog.nest(newFrame("idReloadIFrame_SelectRecipientDialog", clip))

	p.root.add(sel.EditButton)
	p.root.add(sel.HTMLCode).text = testDescriptionHTML
	p.root.add(sel.HTMLSave)

	for _, s := range []string{
		sel.DetailsTab, sel.ShowRegistrants, sel.MembersOnly, sel.HTMLEditButton, sel.ExtraInfo,
		sel.TicketsTab, sel.MultipleRegistration, sel.WaitlistEnable,
		sel.WaitlistTab, sel.AutoRegistration, sel.ContactInformation,
		sel.EmailsTab, sel.SpecificContact, sel.ChangeContact,
	} {
		p.content.add(s)
	}
	for _, s := range sel.EmailToggles {
		p.content.add(s)
	}
	p.editor.add(sel.Description).text = testDescription
	p.reload.add(sel.ContactSearch)

	p.window = &fakeWindow{handle: "context-0/page-1", title: config.DefaultWindowTitle, main: p.root}
	p.browser = &fakeBrowser{windows: []*fakeWindow{
		{handle: "context-0/page-0", title: "PHOC - Events", main: newFrame("", clip)},
		p.window,
	}}
	return p
}

func (p *eventPage) el(f *fakeFrame, selector string) *fakeElement {
	return f.elements[selector]
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Timeouts.Clickable = 50 * time.Millisecond
	cfg.Timeouts.Content = 50 * time.Millisecond
	cfg.Timeouts.PollInterval = 5 * time.Millisecond
	cfg.Timeouts.Settle = 0
	cfg.Logging.Verbosity = "quiet"
	return cfg
}
