package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// Session is a Browser attached over CDP through a private playwright driver.
type Session struct {
	mu         sync.Mutex
	playwright *playwright.Playwright
	browser    playwright.Browser
	endpoint   string
	timeout    float64
	connected  bool
}

// Connect starts the playwright driver and attaches to the browser listening
// on opts.Endpoint. Browser binaries are never downloaded: the operator's
// browser is the only one used.
func Connect(ctx context.Context, opts ConnectOptions) (*Session, error) {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultConnectTimeout
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runOpts := &playwright.RunOptions{
		SkipInstallBrowsers: true,
		Verbose:             false,
		Stdout:              io.Discard,
		Stderr:              io.Discard,
	}
	if err := playwright.Install(runOpts); err != nil {
		return nil, fmt.Errorf("failed to install playwright driver: %w", err)
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	timeout := float64(opts.Timeout.Milliseconds())
	b, err := pw.Chromium.ConnectOverCDP(opts.Endpoint, playwright.BrowserTypeConnectOverCDPOptions{
		Timeout: &timeout,
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("%w at %s: %w", ErrCDPConnectionFailed, opts.Endpoint, err)
	}

	return &Session{
		playwright: pw,
		browser:    b,
		endpoint:   opts.Endpoint,
		timeout:    timeout,
		connected:  true,
	}, nil
}

// Endpoint returns the debug endpoint the session is attached to.
func (s *Session) Endpoint() string {
	return s.endpoint
}

// Windows lists every open page of every browser context.
func (s *Session) Windows(ctx context.Context) ([]Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return nil, ErrNotConnected
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var windows []Window
	for ci, bc := range s.browser.Contexts() {
		for pi, page := range bc.Pages() {
			page.SetDefaultTimeout(s.timeout)
			windows = append(windows, &pageWindow{
				handle: fmt.Sprintf("context-%d/page-%d", ci, pi),
				page:   page,
			})
		}
	}
	return windows, nil
}

// Close disconnects from the browser and stops the driver. For a browser
// reached over CDP this leaves the operator's browser and its pages open.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return nil
	}
	s.connected = false

	var errs []error
	if err := s.browser.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := s.playwright.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
	}
	return errors.Join(errs...)
}

type pageWindow struct {
	handle string
	page   playwright.Page
}

func (w *pageWindow) Handle() string {
	return w.handle
}

func (w *pageWindow) Title(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return w.page.Title()
}

func (w *pageWindow) Activate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.page.BringToFront()
}

func (w *pageWindow) MainFrame() Frame {
	return &pageFrame{frame: w.page.MainFrame(), main: true}
}
