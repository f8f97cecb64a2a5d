// Package browser attaches to an already running Chromium-family browser and
// exposes the small surface eventfill needs to drive an administrative form.
//
// The package is built around four interfaces:
//
//  1. Browser: the attached browser, enumerating its open Windows
//  2. Window: one top-level page (a browser tab) with a title and a main frame
//  3. Frame: a document context that element lookups resolve against
//  4. Element: a lazily resolved control inside a Frame
//
// Elements never cache a DOM node. Each call re-resolves the selector against
// the frame it was created from, so a lookup always targets the context it was
// issued in.
//
// # Session Lifecycle
//
// The browser is owned by the operator, who starts it with remote debugging
// enabled. Connect attaches over the Chrome DevTools Protocol and Close only
// disconnects:
//
//	session, err := browser.Connect(ctx, browser.ConnectOptions{
//	    Endpoint: "http://127.0.0.1:9222",
//	})
//	defer session.Close()
//
//	windows, err := session.Windows(ctx)
//
// # Selectors
//
// Element selectors use playwright selector syntax ("id=contentFrame",
// "#save", ".btn-group > .btn"). Frame lookups go through Frame.ChildFrames and
// the frame element's id attribute, which lets callers match dynamically
// numbered frames.
package browser
