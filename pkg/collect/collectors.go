package collect

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/runtime"

	"github.com/probelab-dev/webprobe/pkg/core"
)

// EventSource registers a handler for page events. Satisfied by
// browser.Session; tests substitute their own.
type EventSource interface {
	Listen(fn func(ev interface{}))
}

// Filters selectively disables collector categories at capture time.
// The zero value disables everything; use AllFilters for the default.
type Filters struct {
	Errors   bool // uncaught exceptions and console error output
	Network  bool // failed requests and HTTP error statuses
	Security bool // console text matching security keywords
}

// AllFilters enables every collector category.
func AllFilters() Filters {
	return Filters{Errors: true, Network: true, Security: true}
}

// securityKeywords flag console output that hints at security problems.
// False positives are acceptable: classification treats these as warnings,
// never critical on their own.
var securityKeywords = []string{
	"mixed content",
	"insecure",
	"cors",
	"content security policy",
	"csp",
	"xss",
}

// Collectors converts raw CDP events into signals. One instance per session,
// registered via Attach and detached implicitly when the session closes.
// No deduplication is performed: repeated identical errors each count,
// because repetition itself is diagnostic (render loops, retry storms).
type Collectors struct {
	store   *SignalStore
	filters Filters
	muted   atomic.Bool

	mu          sync.Mutex
	requestURLs map[network.RequestID]string
}

// Mute temporarily suspends capture. The navigation probe mutes collectors
// while it deliberately visits error pages, so the same broken link is not
// recorded twice.
func (c *Collectors) Mute() { c.muted.Store(true) }

// Unmute resumes capture.
func (c *Collectors) Unmute() { c.muted.Store(false) }

// Attach registers the collectors on the source's event stream. Capture
// starts immediately: attach before the first navigation, or the initial
// load's events are lost.
func Attach(src EventSource, store *SignalStore, filters Filters) *Collectors {
	c := &Collectors{
		store:       store,
		filters:     filters,
		requestURLs: make(map[network.RequestID]string),
	}
	src.Listen(c.handle)
	return c
}

// handle runs on the CDP event goroutine. It must not block.
func (c *Collectors) handle(ev interface{}) {
	if c.muted.Load() {
		return
	}
	switch e := ev.(type) {
	case *runtime.EventExceptionThrown:
		if c.filters.Errors {
			c.onException(e)
		}
	case *runtime.EventConsoleAPICalled:
		c.onConsole(e)
	case *network.EventRequestWillBeSent:
		c.trackRequest(e)
	case *network.EventResponseReceived:
		if c.filters.Network {
			c.onResponse(e)
		}
	case *network.EventLoadingFailed:
		if c.filters.Network {
			c.onLoadingFailed(e)
		}
	}
}

func (c *Collectors) onException(e *runtime.EventExceptionThrown) {
	d := e.ExceptionDetails
	msg := d.Text
	if d.Exception != nil && d.Exception.Description != "" {
		msg = d.Exception.Description
	}

	sig := core.NewSignal(core.SignalScriptError, msg).
		WithDetail("line", d.LineNumber).
		WithDetail("source", "exception")
	if d.URL != "" {
		sig = sig.WithLocator(d.URL)
	}
	c.store.Append(sig)
}

func (c *Collectors) onConsole(e *runtime.EventConsoleAPICalled) {
	text := consoleText(e.Args)
	if text == "" {
		return
	}

	if c.filters.Errors && e.Type == runtime.APITypeError {
		c.store.Append(core.NewSignal(core.SignalScriptError, text).
			WithDetail("source", "console"))
	}

	if c.filters.Security {
		lower := strings.ToLower(text)
		for _, kw := range securityKeywords {
			if strings.Contains(lower, kw) {
				c.store.Append(core.NewSignal(core.SignalSecurityWarning, text).
					WithDetail("keyword", kw))
				break
			}
		}
	}
}

func (c *Collectors) trackRequest(e *network.EventRequestWillBeSent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestURLs[e.RequestID] = e.Request.URL
}

func (c *Collectors) onResponse(e *network.EventResponseReceived) {
	if e.Response == nil || e.Response.Status < 400 {
		return
	}
	c.store.Append(core.NewSignal(core.SignalHTTPErrorStatus,
		fmt.Sprintf("HTTP %d for %s", e.Response.Status, e.Response.URL)).
		WithLocator(e.Response.URL).
		WithDetail("status", e.Response.Status))
}

func (c *Collectors) onLoadingFailed(e *network.EventLoadingFailed) {
	// Canceled loads are navigation artifacts, not network failures.
	if e.Canceled {
		return
	}

	c.mu.Lock()
	url := c.requestURLs[e.RequestID]
	c.mu.Unlock()

	sig := core.NewSignal(core.SignalNetworkFailure, e.ErrorText).
		WithDetail("resourceType", string(e.Type))
	if url != "" {
		sig = sig.WithLocator(url)
	}
	c.store.Append(sig)
}

// consoleText joins console call arguments into one message string.
func consoleText(args []*runtime.RemoteObject) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == nil {
			continue
		}
		if len(arg.Value) > 0 {
			var v interface{}
			if err := json.Unmarshal(arg.Value, &v); err == nil {
				parts = append(parts, fmt.Sprint(v))
				continue
			}
		}
		if arg.Description != "" {
			parts = append(parts, arg.Description)
		}
	}
	return strings.Join(parts, " ")
}
