package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Navigate loads a URL in the page and returns the HTTP status of the
// document response. A zero status means the navigation produced no network
// response (about:blank, same-document navigation).
func (s *Session) Navigate(url string, timeout time.Duration) (int64, error) {
	ctx := s.ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(s.ctx, timeout)
		defer cancel()
	}
	resp, err := chromedp.RunResponse(ctx, chromedp.Navigate(url))
	if err != nil {
		return 0, err
	}
	if resp == nil {
		return 0, nil
	}
	return resp.Status, nil
}

// Reload reloads the current page.
func (s *Session) Reload(timeout time.Duration) error {
	return s.run(timeout, chromedp.Reload())
}

// SetViewport changes the emulated viewport size.
func (s *Session) SetViewport(width, height int) error {
	return s.run(10*time.Second, chromedp.EmulateViewport(int64(width), int64(height)))
}

// Evaluate runs a JavaScript expression in the page and unmarshals the
// JSON result into out. Pass nil to discard the result.
func (s *Session) Evaluate(expr string, out interface{}, timeout time.Duration) error {
	return s.run(timeout, chromedp.Evaluate(expr, out))
}

// WaitVisible blocks until the selector matches a visible element or the
// timeout elapses.
func (s *Session) WaitVisible(selector string, timeout time.Duration) error {
	return s.run(timeout, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

// Click waits for the selector to become visible, then clicks it.
func (s *Session) Click(selector string, timeout time.Duration) error {
	return s.run(timeout,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Click(selector, chromedp.ByQuery),
	)
}

// Type waits for the selector, optionally clears the field, then sends keys.
func (s *Session) Type(selector, text string, clear bool, timeout time.Duration) error {
	actions := []chromedp.Action{
		chromedp.WaitVisible(selector, chromedp.ByQuery),
	}
	if clear {
		actions = append(actions, chromedp.Clear(selector, chromedp.ByQuery))
	}
	actions = append(actions, chromedp.SendKeys(selector, text, chromedp.ByQuery))
	return s.run(timeout, actions...)
}

// TextContent returns the text content of the first element matching the
// selector. A missing element is reported through found=false, not an error,
// so verification steps can distinguish absence from transport failure.
func (s *Session) TextContent(selector string, timeout time.Duration) (text string, found bool, err error) {
	sel, err := json.Marshal(selector)
	if err != nil {
		return "", false, err
	}
	expr := fmt.Sprintf(`(() => {
		const el = document.querySelector(%s);
		return el === null ? null : el.textContent;
	})()`, sel)

	var out *string
	if err := s.Evaluate(expr, &out, timeout); err != nil {
		return "", false, err
	}
	if out == nil {
		return "", false, nil
	}
	return *out, true, nil
}

// HTML returns the serialized DOM of the current page.
func (s *Session) HTML(timeout time.Duration) (string, error) {
	var html string
	err := s.run(timeout, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

// Title returns the current document title.
func (s *Session) Title(timeout time.Duration) (string, error) {
	var title string
	err := s.run(timeout, chromedp.Title(&title))
	return title, err
}

// Location returns the current page URL.
func (s *Session) Location(timeout time.Duration) (string, error) {
	var loc string
	err := s.run(timeout, chromedp.Location(&loc))
	return loc, err
}

// Screenshot captures the full viewport as PNG.
func (s *Session) Screenshot(timeout time.Duration) ([]byte, error) {
	var buf []byte
	err := s.run(timeout, chromedp.CaptureScreenshot(&buf))
	return buf, err
}

// Sleep pauses execution while keeping the session alive, honoring session
// teardown.
func (s *Session) Sleep(d time.Duration) {
	select {
	case <-s.ctx.Done():
	case <-time.After(d):
	}
}
