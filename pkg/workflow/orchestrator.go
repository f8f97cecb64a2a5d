package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/entrhq/eventfill/pkg/browser"
	"github.com/entrhq/eventfill/pkg/config"
	"github.com/entrhq/eventfill/pkg/extract"
	"github.com/entrhq/eventfill/pkg/fields"
	"github.com/entrhq/eventfill/pkg/logging"
)

// Tab names as shown in the event editor
const (
	TabDetails  = "Event details"
	TabTickets  = "Ticket types & settings"
	TabWaitlist = "Waitlist & settings"
	TabEmails   = "Emails"
)

var errNoLeaderEmail = fmt.Errorf("no leader email captured: %w", extract.ErrPatternNotFound)

// Orchestrator runs the event form workflow against an attached browser.
type Orchestrator struct {
	browser  browser.Browser
	cfg      *config.Config
	writer   *fields.Writer
	cleaner  *extract.Cleaner
	reporter *Reporter
	log      *logging.Logger
	runID    string
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithClipboard sets the clipboard used to stage pasted text.
func WithClipboard(c fields.Clipboard) Option {
	return func(o *Orchestrator) {
		o.writer.Clipboard = c
	}
}

// WithReporter sets the console reporter.
func WithReporter(r *Reporter) Option {
	return func(o *Orchestrator) {
		o.reporter = r
	}
}

// WithLogger sets the file logger. The run id is taken from it.
func WithLogger(l *logging.Logger) Option {
	return func(o *Orchestrator) {
		o.log = l
		o.runID = l.RunID()
	}
}

// WithCleaner replaces the description cleaning rules.
func WithCleaner(c *extract.Cleaner) Option {
	return func(o *Orchestrator) {
		o.cleaner = c
	}
}

// New creates an orchestrator for b using cfg.
func New(b browser.Browser, cfg *config.Config, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		browser:  b,
		cfg:      cfg,
		writer:   fields.NewWriter(fields.NewSystemClipboard(), cfg.Timeouts.Settle),
		cleaner:  extract.NewCleaner(),
		reporter: NewReporter(ParseLevel(cfg.Logging.Verbosity)),
		log:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.runID == "" {
		o.runID = logging.NewRunID()
	}
	return o
}

// tabRun carries the per-tab bookkeeping of a run.
type tabRun struct {
	st          *State
	nav         *Navigator
	name        string
	diagnostics int
}

// Run locates the event page, opens it for editing and processes the four
// tabs in order. A tab stopped by a failure does not stop the tabs after it;
// only a missing target window or a cancelled ctx ends the run early.
func (o *Orchestrator) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		RunID:       o.runID,
		WindowTitle: o.cfg.WindowTitle,
		StartTime:   time.Now(),
	}
	defer func() {
		summary.EndTime = time.Now()
		summary.Duration = summary.EndTime.Sub(summary.StartTime)
	}()

	o.log.Infof("run %s: looking for %q", o.runID, o.cfg.WindowTitle)

	st, err := o.locateTarget(ctx)
	if err != nil {
		var we *Error
		if errors.As(err, &we) {
			o.diagnose(nil, we)
		}
		summary.Status = StatusFailed
		summary.Error = err.Error()
		return summary, err
	}

	run := &tabRun{st: st, name: "Open editor"}
	run.nav = o.navigator(run)
	if err := o.clickEdit(ctx, run); err != nil {
		summary.Tabs = append(summary.Tabs, TabResult{Name: run.name, Status: TabAborted, Error: err.Error(), Diagnostics: run.diagnostics})
	}

	tabs := []struct {
		name string
		fn   func(context.Context, *tabRun) error
	}{
		{TabDetails, o.processDetailsTab},
		{TabTickets, o.processTicketsTab},
		{TabWaitlist, o.processWaitlistTab},
		{TabEmails, o.processEmailsTab},
	}

	var runErr error
	for i, tab := range tabs {
		if ctx.Err() != nil {
			for _, rest := range tabs[i:] {
				summary.Tabs = append(summary.Tabs, TabResult{Name: rest.name, Status: TabSkipped})
			}
			runErr = ctx.Err()
			break
		}

		o.reporter.Section(fmt.Sprintf("Processing the %s tab...", tab.name))
		run := &tabRun{st: st, name: tab.name}
		run.nav = o.navigator(run)

		result := TabResult{Name: tab.name, Status: TabCompleted}
		if err := tab.fn(ctx, run); err != nil {
			result.Status = TabAborted
			result.Error = err.Error()
			o.log.Warnf("tab %s aborted: %v", tab.name, err)
		} else {
			o.reporter.Successf("%s tab processed", tab.name)
		}
		result.Diagnostics = run.diagnostics
		summary.Tabs = append(summary.Tabs, result)
	}

	summary.LeaderEmail = st.LeaderEmail()
	summary.Trace = st.Trace()
	summary.Status = overallStatus(summary.Tabs)
	if runErr != nil {
		summary.Status = StatusFailed
		summary.Error = runErr.Error()
	}

	o.log.Infof("run %s finished: %s", o.runID, summary.Status)
	return summary, runErr
}

func overallStatus(tabs []TabResult) string {
	status := StatusSuccess
	for _, tab := range tabs {
		if tab.Status != TabCompleted || tab.Diagnostics > 0 {
			status = StatusPartial
		}
	}
	return status
}

func (o *Orchestrator) navigator(run *tabRun) *Navigator {
	return NewNavigator(run.st, o.cfg.Timeouts.PollInterval, o.cfg.AbortOnTimeout, func(e *Error) {
		o.diagnose(run, e)
	})
}

func (o *Orchestrator) diagnose(run *tabRun, e *Error) {
	if run != nil {
		run.diagnostics++
		o.log.Errorf("[%s] %v", run.name, e)
	} else {
		o.log.Errorf("%v", e)
	}
	o.reporter.Diagnostic(e)
}

// locateTarget scans every open window for the configured title and
// activates the first match.
func (o *Orchestrator) locateTarget(ctx context.Context) (*State, error) {
	windows, err := o.browser.Windows(ctx)
	if err != nil {
		return nil, newError("list windows", o.cfg.DebugEndpoint, err)
	}

	for _, w := range windows {
		title, err := w.Title(ctx)
		if err != nil {
			o.log.Debugf("window %s: title unavailable: %v", w.Handle(), err)
			continue
		}
		o.reporter.Debugf("window %s: %q", w.Handle(), title)
		if title != o.cfg.WindowTitle {
			continue
		}
		if err := w.Activate(ctx); err != nil {
			o.log.Warnf("window %s: activate: %v", w.Handle(), err)
		}
		o.log.Infof("target window %s", w.Handle())
		o.reporter.Verbosef("Found %q", title)
		return NewState(w), nil
	}

	return nil, &Error{Kind: KindTargetNotFound, Op: "locate target", Identifier: o.cfg.WindowTitle, Err: browser.ErrTargetNotFound}
}

func (o *Orchestrator) clickEdit(ctx context.Context, run *tabRun) error {
	run.st.Root()
	return o.click(ctx, run, o.cfg.Selectors.EditButton)
}

// enterContent resets to the document root and enters the editor's content
// frame, where every tab lives.
func (o *Orchestrator) enterContent(ctx context.Context, run *tabRun) error {
	run.st.Root()
	return run.nav.Check(ctx, run.nav.AwaitFrameEntry(ctx, o.cfg.Selectors.ContentFrame, o.cfg.Timeouts.Clickable))
}

func (o *Orchestrator) click(ctx context.Context, run *tabRun, selector string) error {
	if err := run.st.Element(selector).Click(ctx); err != nil {
		return run.nav.Check(ctx, newError("click", selector, err))
	}
	o.reporter.Verbosef("clicked %s", selector)
	return nil
}

func (o *Orchestrator) awaitClickable(ctx context.Context, run *tabRun, selector string) error {
	return run.nav.Check(ctx, run.nav.AwaitClickable(ctx, selector, o.cfg.Timeouts.Clickable))
}

func (o *Orchestrator) toggle(ctx context.Context, run *tabRun, selector string) error {
	changed, err := fields.ApplyToggle(ctx, run.st.Element(selector))
	if err != nil {
		return run.nav.Check(ctx, newError("toggle", selector, err))
	}
	run.st.Record(Event{Tab: run.name, Action: ActionToggle, Identifier: selector, Changed: changed})
	if changed {
		o.reporter.Verbosef("enabled %s", selector)
	} else {
		o.reporter.Verbosef("%s already enabled", selector)
	}
	return nil
}

func (o *Orchestrator) replace(ctx context.Context, run *tabRun, selector, text string) error {
	if err := o.writer.ReplaceContent(ctx, run.st.Element(selector), text); err != nil {
		return run.nav.Check(ctx, newError("replace", selector, err))
	}
	run.st.Record(Event{Tab: run.name, Action: ActionReplace, Identifier: selector, Changed: true})
	o.reporter.Verbosef("replaced content of %s (%d chars)", selector, len(text))
	return nil
}
