package probe

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/probelab-dev/webprobe/pkg/browser"
	"github.com/probelab-dev/webprobe/pkg/collect"
	"github.com/probelab-dev/webprobe/pkg/core"
	"github.com/probelab-dev/webprobe/pkg/logger"
)

// Links collects same-origin anchor targets (excluding self-referencing
// links), visits up to policy.LinkCap of them with a short per-link timeout
// and flags any non-2xx response or transport error as a broken link. The
// original URL is restored afterward regardless of outcome. Passive
// collectors are muted while the probe deliberately visits error pages so
// the same 404 is not captured twice.
func Links(sess *browser.Session, store *collect.SignalStore, collectors *collect.Collectors, policy Policy) core.TestResult {
	const name = "Navigation links check"

	origin, err := sess.Location(policy.EvalTimeout)
	if err != nil {
		return failedResult(name, err)
	}

	html, err := sess.HTML(policy.EvalTimeout)
	if err != nil {
		return failedResult(name, err)
	}

	targets, err := sameOriginLinks(html, origin)
	if err != nil {
		return failedResult(name, err)
	}
	if len(targets) > policy.LinkCap {
		targets = targets[:policy.LinkCap]
	}

	if collectors != nil {
		collectors.Mute()
		defer collectors.Unmute()
	}
	defer func() {
		// Best effort: later probes assume the original page is current.
		if _, err := sess.Navigate(origin, policy.LinkTimeout); err != nil {
			logger.Warn("failed to restore original URL %s: %v", origin, err)
		}
	}()

	broken := 0
	for _, link := range targets {
		status, err := sess.Navigate(link, policy.LinkTimeout)
		switch {
		case err != nil:
			broken++
			store.Append(core.NewSignal(core.SignalHTTPErrorStatus,
				fmt.Sprintf("broken link: %s (%v)", link, err)).
				WithLocator(link).
				WithDetail("check", "broken-link").
				WithDetail("origin", "navigation"))
		case status >= 300:
			// Redirects are followed by the browser; anything still >=300
			// here is an error status on the final document.
			broken++
			store.Append(core.NewSignal(core.SignalHTTPErrorStatus,
				fmt.Sprintf("broken link: %s returned HTTP %d", link, status)).
				WithLocator(link).
				WithDetail("check", "broken-link").
				WithDetail("origin", "navigation").
				WithDetail("status", status))
		}
	}

	return core.TestResult{
		Name:   name,
		Passed: broken == 0,
		Details: map[string]interface{}{
			"linksFound":  len(targets),
			"linksTested": len(targets),
			"broken":      broken,
		},
	}
}

// sameOriginLinks extracts unique same-origin anchor targets from the
// serialized DOM, excluding fragments and self-references.
func sameOriginLinks(html, origin string) ([]string, error) {
	base, err := url.Parse(origin)
	if err != nil {
		return nil, err
	}
	self := *base
	self.Fragment = ""

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
			return
		}

		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		resolved.Fragment = ""

		if resolved.Host != base.Host || resolved.Scheme != base.Scheme {
			return
		}
		target := resolved.String()
		if target == self.String() || seen[target] {
			return
		}
		seen[target] = true
		links = append(links, target)
	})

	return links, nil
}
