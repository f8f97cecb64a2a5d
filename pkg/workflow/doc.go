// Package workflow drives the PHOC event editor through one pass of form
// preparation.
//
// A run finds the browser window showing the event details page, opens the
// event for editing and walks four tabs:
//
//   - Event details: registrant list options, description cleanup and
//     relocation of the trailing section into the extra info field
//   - Ticket types & settings: waitlist when a registration limit is set
//   - Waitlist & settings: automatic registration, full contact information
//   - Emails: every notification email, copies to the event leader
//
// Values read in the first tab (the leader email and the relocated section)
// are carried to later tabs through the run State.
//
// Failures are classified by Kind. A missing target window ends the run; a
// missing text pattern ends the current tab; timeouts, absent elements and
// other driver faults are logged and skipped unless the configuration asks
// to abort on them. Saving the event is left to the operator.
package workflow
