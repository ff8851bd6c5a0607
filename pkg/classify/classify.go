// Package classify maps raw signals to severity-ranked issue records.
// Classification is a pure, total function over the closed set of signal
// kinds: it never fails, and an unrecognized kind falls through to a
// minor/General record instead of being dropped.
package classify

import (
	"github.com/probelab-dev/webprobe/pkg/core"
)

// rule is one row of the classification table.
type rule struct {
	severity       core.Severity
	category       string
	issue          string
	recommendation string
}

// apply builds the record, carrying the signal's detail payload through.
func (r rule) apply(sig core.Signal) core.IssueRecord {
	details := map[string]interface{}{}
	for k, v := range sig.Detail {
		details[k] = v
	}
	if sig.Locator != "" {
		details["locator"] = sig.Locator
	}
	details["message"] = sig.Message

	return core.IssueRecord{
		Severity:       r.severity,
		Category:       r.category,
		Issue:          r.issue,
		Recommendation: r.recommendation,
		Details:        details,
	}
}

// Classify maps one signal to one issue record. When a signal could satisfy
// two rules the higher severity wins: a 500 on a form submit endpoint is
// critical/Server, not major/Forms.
func Classify(sig core.Signal) core.IssueRecord {
	switch sig.Kind {
	case core.SignalScriptError:
		return rule{core.SeverityCritical, "JavaScript", "JavaScript error on page",
			"Fix the script error; check the browser console output and stack trace"}.apply(sig)

	case core.SignalHTTPErrorStatus:
		if status, ok := detailInt(sig, "status"); ok && status >= 500 {
			return rule{core.SeverityCritical, "Server", "Server error response",
				"Inspect server logs for the failing endpoint"}.apply(sig)
		}
		if check, _ := detailString(sig, "check"); check == "broken-link" {
			return rule{core.SeverityMajor, "Navigation", "Broken link",
				"Fix or remove links that lead to error pages"}.apply(sig)
		}
		if origin, _ := detailString(sig, "origin"); origin == "forms" {
			return rule{core.SeverityMajor, "Forms", "Form request rejected",
				"Verify the form action and server-side validation"}.apply(sig)
		}
		return rule{core.SeverityMajor, "Navigation", "HTTP error response",
			"Check the failing request URL and server routing"}.apply(sig)

	case core.SignalNetworkFailure:
		// The target being unreachable outranks any single failed request.
		if check, _ := detailString(sig, "check"); check == "connectivity" {
			return rule{core.SeverityCritical, "Connectivity", "Application not reachable",
				"Verify the application is running and listening on the target URL"}.apply(sig)
		}
		return rule{core.SeverityMajor, "Network", "Request failed to complete",
			"Check connectivity, DNS and that the resource exists"}.apply(sig)

	case core.SignalSecurityWarning:
		return rule{core.SeverityMajor, "Security", "Security warning in console",
			"Review the flagged output; serve all content over HTTPS and fix policy violations"}.apply(sig)

	case core.SignalAccessibilityViolation:
		return classifyAccessibility(sig)

	case core.SignalLayoutViolation:
		return classifyLayout(sig)

	case core.SignalInteractionFailure:
		return rule{core.SeverityMajor, "User Flows", "Scripted user flow failed",
			"Replay the failing step manually and fix the broken interaction"}.apply(sig)

	case core.SignalPerformanceMetric:
		if metric, _ := detailString(sig, "metric"); metric == "heap" {
			return rule{core.SeverityMinor, "Performance", "High memory usage",
				"Profile the page for leaks and oversized caches"}.apply(sig)
		}
		return rule{core.SeverityMajor, "Performance", "Slow page load",
			"Reduce bundle size, defer non-critical resources and enable caching"}.apply(sig)
	}

	// Unrecognized kinds still produce a record; losing a signal silently
	// would break traceability.
	return rule{core.SeverityMinor, "General", "Unclassified observation",
		"Review the raw signal details"}.apply(sig)
}

// classifyAccessibility splits on whether the finding affects an interactive
// control (labels, submit controls) or passive content (alt text, text size).
func classifyAccessibility(sig core.Signal) core.IssueRecord {
	check, _ := detailString(sig, "check")
	switch check {
	case "missing-label":
		return rule{core.SeverityMajor, "Accessibility", "Form field without accessible name",
			"Associate a <label> or add aria-label to every form field"}.apply(sig)
	case "missing-submit":
		return rule{core.SeverityMajor, "Forms", "Form without submit control",
			"Add a submit button or handle submission explicitly"}.apply(sig)
	case "missing-alt":
		return rule{core.SeverityMinor, "Accessibility", "Image without alt attribute",
			"Add alt text describing each image"}.apply(sig)
	case "small-text":
		return rule{core.SeverityMinor, "Accessibility", "Text below legible size",
			"Raise the font size to at least 12px"}.apply(sig)
	case "missing-title":
		return rule{core.SeverityMinor, "SEO", "Document has no title",
			"Set a descriptive <title> for the page"}.apply(sig)
	}
	if interactive, ok := detailBool(sig, "interactive"); ok && interactive {
		return rule{core.SeverityMajor, "Accessibility", "Accessibility violation",
			"Fix the flagged control so assistive technology can use it"}.apply(sig)
	}
	return rule{core.SeverityMinor, "Accessibility", "Accessibility violation",
		"Review the flagged content against WCAG guidance"}.apply(sig)
}

func classifyLayout(sig core.Signal) core.IssueRecord {
	check, _ := detailString(sig, "check")
	switch check {
	case "broken-image":
		return rule{core.SeverityMajor, "Images", "Broken image",
			"Fix the image source or remove the element"}.apply(sig)
	case "zero-area":
		return rule{core.SeverityMinor, "Responsive Design", "Element collapsed to zero size",
			"Check CSS that hides content unintentionally at this viewport"}.apply(sig)
	}
	return rule{core.SeverityMajor, "Responsive Design", "Horizontal overflow",
		"Make the layout fit the viewport width; check fixed-width elements"}.apply(sig)
}

func detailString(sig core.Signal, key string) (string, bool) {
	v, ok := sig.Detail[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func detailBool(sig core.Signal, key string) (bool, bool) {
	v, ok := sig.Detail[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

func detailInt(sig core.Signal, key string) (int, bool) {
	switch v := sig.Detail[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
