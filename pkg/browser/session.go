// Package browser owns the lifetime of one headless Chrome page per
// invocation: creation, viewport configuration, navigation and guaranteed
// teardown. It is the single point through which probes, collectors and the
// interaction runner touch the live browser.
//
// Every invocation gets its own browser process (its own exec allocator),
// so concurrent invocations never share state. Event listeners registered
// through Listen are scoped to the session's tab context and detach when
// the session closes.
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/probelab-dev/webprobe/pkg/core"
	"github.com/probelab-dev/webprobe/pkg/logger"
)

// Options configures session creation.
type Options struct {
	Headless          bool
	NavigationTimeout time.Duration // hard cap on the initial navigation
	ExecPath          string        // custom Chrome binary, empty = autodetect

	// OnCreate runs after the page is configured but before the initial
	// navigation. Event listeners registered here see everything the page
	// emits during its first load; listeners registered after Open returns
	// miss those events, Chrome does not replay them.
	OnCreate func(*Session)
}

// DefaultOptions returns the standard headless configuration.
func DefaultOptions() Options {
	return Options{
		Headless:          true,
		NavigationTimeout: 30 * time.Second,
	}
}

// Session is one live browser page bound to one target origin for the
// duration of a single invocation.
type Session struct {
	TargetURL string
	Viewport  core.Viewport
	CreatedAt time.Time

	allocCtx    context.Context
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
	closeOnce   sync.Once
}

// Open launches a browser, applies the viewport and performs the initial
// navigation. A navigation timeout or a non-2xx/3xx document response yields
// a session error carrying the transport error text; the caller surfaces it
// as a critical connectivity issue. The returned session must always be
// closed, including on error paths after a successful Open.
func Open(parent context.Context, targetURL string, viewport core.Viewport, opts Options) (*Session, error) {
	if viewport.IsZero() {
		viewport = core.ViewportDesktop
	}
	if opts.NavigationTimeout <= 0 {
		opts.NavigationTimeout = DefaultOptions().NavigationTimeout
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.WindowSize(viewport.Width, viewport.Height),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, allocOpts...)
	ctx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(logger.Debug))

	s := &Session{
		TargetURL:   targetURL,
		Viewport:    viewport,
		CreatedAt:   time.Now(),
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		ctx:         ctx,
		cancel:      cancel,
	}

	// Network events must be enabled before the first navigation so the
	// collectors see the initial document request.
	if err := chromedp.Run(ctx, network.Enable()); err != nil {
		s.Close()
		return nil, core.ErrSessionOpen.WithCause(err)
	}

	if err := chromedp.Run(ctx, chromedp.EmulateViewport(int64(viewport.Width), int64(viewport.Height))); err != nil {
		s.Close()
		return nil, core.ErrSessionOpen.WithCause(err)
	}

	if opts.OnCreate != nil {
		opts.OnCreate(s)
	}

	status, err := s.Navigate(targetURL, opts.NavigationTimeout)
	if err != nil {
		s.Close()
		return nil, core.ErrNavigation.WithCause(err)
	}
	if status >= 400 {
		s.Close()
		return nil, core.ErrNavigation.WithMessage(
			fmt.Sprintf("initial navigation to %s returned HTTP %d", targetURL, status))
	}

	logger.Info("session opened for %s at %s", targetURL, viewport)
	return s, nil
}

// Listen registers an event handler for CDP events on the session's page.
// Handlers run on the event goroutine and are detached on Close.
func (s *Session) Listen(fn func(ev interface{})) {
	chromedp.ListenTarget(s.ctx, fn)
}

// Close tears down the page and the browser process. Idempotent; safe to
// call from a defer on every exit path.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		// Cancel waits for the browser to shut down cleanly; the allocator
		// cancel below kills the process if it did not.
		_ = chromedp.Cancel(s.ctx)
		s.cancel()
		s.allocCancel()
		logger.Info("session closed for %s", s.TargetURL)
	})
}

// run executes chromedp actions against the page with a bounded timeout.
func (s *Session) run(timeout time.Duration, actions ...chromedp.Action) error {
	ctx := s.ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(s.ctx, timeout)
		defer cancel()
	}
	return chromedp.Run(ctx, actions...)
}
