package main

import "io"

const setupPrompt = `
Open a new browser from a CMD prompt using one of the following lines:

Edge:
"C:\Program Files (x86)\Microsoft\Edge\Application\msedge.exe" "https://phoc.club" --remote-debugging-port=9222 --user-data-dir="%temp%\EventfillEdgeProfile"

Chrome:
"C:\Program Files\Google\Chrome\Application\chrome.exe" "https://phoc.club" --remote-debugging-port=9222 --user-data-dir="%temp%\EventfillChromeProfile"

Then log into phoc.club as Admin, open your first event for processing,
and restart this program with the following:

eventfill -np
`

const processingMessage = "Processing the event... Processing completes on the search of the leader email."

const completionMessage = `Processing complete. Save the current event, open the next,
and then re-launch this program with the following:

eventfill -np
`

func printSetupPrompt(w io.Writer) {
	_, _ = io.WriteString(w, setupPrompt)
}
