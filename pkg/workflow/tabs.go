package workflow

import (
	"context"

	"github.com/entrhq/eventfill/pkg/browser"
	"github.com/entrhq/eventfill/pkg/extract"
)

// processDetailsTab sets the registrant options, captures the leader email
// and relocated section from the description, rewrites the description
// markup and moves the relocated section into the extra info field.
func (o *Orchestrator) processDetailsTab(ctx context.Context, run *tabRun) error {
	sel := o.cfg.Selectors
	st, nav := run.st, run.nav

	if err := o.enterContent(ctx, run); err != nil {
		return err
	}
	if err := o.awaitClickable(ctx, run, sel.DetailsTab); err != nil {
		return err
	}
	if err := o.click(ctx, run, sel.DetailsTab); err != nil {
		return err
	}
	if err := o.awaitClickable(ctx, run, sel.ShowRegistrants); err != nil {
		return err
	}
	for _, s := range []string{sel.ShowRegistrants, sel.MembersOnly} {
		if err := o.toggle(ctx, run, s); err != nil {
			return err
		}
	}

	// The description editor lives in its own frame whose id carries a
	// generated suffix.
	if err := nav.Check(ctx, nav.AwaitFrameEntry(ctx, sel.EditorFrame, o.cfg.Timeouts.Content)); err != nil {
		return err
	}
	if err := nav.Check(ctx, nav.AwaitPresent(ctx, sel.Description, o.cfg.Timeouts.Content)); err != nil {
		return err
	}
	text, err := st.Element(sel.Description).Text(ctx)
	if err != nil {
		if err := nav.Check(ctx, newError("read", sel.Description, err)); err != nil {
			return err
		}
	}
	captured, err := extract.ExtractFields(text)
	if err != nil {
		return nav.Check(ctx, newError("extract", sel.Description, err))
	}
	if err := st.Capture(captured); err != nil {
		return nav.Check(ctx, newError("extract", sel.Description, err))
	}
	st.Record(Event{Tab: run.name, Action: ActionExtract, Identifier: sel.Description, Changed: false})
	o.log.Infof("leader email %q, relocated section %d chars", captured.LeaderEmail, len(captured.MoveBelowText))
	o.reporter.Verbosef("leader email: %s", captured.LeaderEmail)

	if err := o.click(ctx, run, sel.Description); err != nil {
		return err
	}
	st.Parent()
	if err := o.click(ctx, run, sel.HTMLEditButton); err != nil {
		return err
	}

	// The HTML source dialog opens at the document root.
	st.Root()
	if err := nav.Check(ctx, nav.AwaitText(ctx, sel.HTMLCode, sel.HTMLReadyMarker, o.cfg.Timeouts.Content)); err != nil {
		return err
	}
	raw, err := st.Element(sel.HTMLCode).Text(ctx)
	if err != nil {
		if err := nav.Check(ctx, newError("read", sel.HTMLCode, err)); err != nil {
			return err
		}
	}
	cleaned, err := o.cleaner.Clean(raw)
	if err != nil {
		return nav.Check(ctx, newError("clean", sel.HTMLCode, err))
	}
	o.reporter.Markup("cleaned description", cleaned)
	if err := o.replace(ctx, run, sel.HTMLCode, cleaned); err != nil {
		return err
	}
	if err := o.click(ctx, run, sel.HTMLSave); err != nil {
		return err
	}

	if err := o.enterContent(ctx, run); err != nil {
		return err
	}
	return o.replace(ctx, run, sel.ExtraInfo, st.MoveBelowText())
}

// processTicketsTab enables the waitlist when the registration limit is set.
// The waitlist control is only rendered in that case, so page readiness is
// judged by the multiple registration control instead.
func (o *Orchestrator) processTicketsTab(ctx context.Context, run *tabRun) error {
	sel := o.cfg.Selectors

	if err := o.enterContent(ctx, run); err != nil {
		return err
	}
	if err := o.click(ctx, run, sel.TicketsTab); err != nil {
		return err
	}
	if err := o.awaitClickable(ctx, run, sel.MultipleRegistration); err != nil {
		return err
	}

	vis, err := run.st.Element(sel.WaitlistEnable).Visibility(ctx)
	if err != nil {
		return run.nav.Check(ctx, newError("visibility", sel.WaitlistEnable, err))
	}
	if vis != browser.Visible {
		o.reporter.Verbosef("waitlist option %s, no registration limit set", vis)
		return nil
	}
	return o.toggle(ctx, run, sel.WaitlistEnable)
}

// processWaitlistTab selects automatic registration from the waitlist and
// collects all contact information.
func (o *Orchestrator) processWaitlistTab(ctx context.Context, run *tabRun) error {
	sel := o.cfg.Selectors

	if err := o.enterContent(ctx, run); err != nil {
		return err
	}
	if err := o.click(ctx, run, sel.WaitlistTab); err != nil {
		return err
	}
	if err := o.awaitClickable(ctx, run, sel.AutoRegistration); err != nil {
		return err
	}
	for _, s := range []string{sel.AutoRegistration, sel.ContactInformation} {
		if err := o.toggle(ctx, run, s); err != nil {
			return err
		}
	}
	return nil
}

// processEmailsTab enables every notification email, routes copies to a
// specific contact and searches the contact list for the leader email.
func (o *Orchestrator) processEmailsTab(ctx context.Context, run *tabRun) error {
	sel := o.cfg.Selectors
	st, nav := run.st, run.nav

	if err := o.enterContent(ctx, run); err != nil {
		return err
	}
	if err := o.click(ctx, run, sel.EmailsTab); err != nil {
		return err
	}
	if err := o.awaitClickable(ctx, run, sel.EmailToggles[0]); err != nil {
		return err
	}
	for _, s := range sel.EmailToggles {
		if err := o.toggle(ctx, run, s); err != nil {
			return err
		}
	}
	if err := o.toggle(ctx, run, sel.SpecificContact); err != nil {
		return err
	}
	if err := o.click(ctx, run, sel.ChangeContact); err != nil {
		return err
	}

	// The recipient picker is a dialog at the document root with the
	// contact list reloaded into a nested frame.
	st.Root()
	for _, frame := range []string{sel.RecipientDialogFrame, sel.RecipientReloadFrame} {
		if err := nav.Check(ctx, nav.AwaitFrameEntry(ctx, frame, o.cfg.Timeouts.Clickable)); err != nil {
			return err
		}
	}
	if err := o.awaitClickable(ctx, run, sel.ContactSearch); err != nil {
		return err
	}

	email := st.LeaderEmail()
	if email == "" {
		return nav.Check(ctx, newError("search contact", sel.ContactSearch, errNoLeaderEmail))
	}
	return o.replace(ctx, run, sel.ContactSearch, email)
}
