package classify

import (
	"testing"

	"github.com/probelab-dev/webprobe/pkg/core"
)

func TestClassify_Rules(t *testing.T) {
	tests := []struct {
		name         string
		sig          core.Signal
		wantSeverity core.Severity
		wantCategory string
	}{
		{
			name:         "script error is critical",
			sig:          core.NewSignal(core.SignalScriptError, "TypeError: x is undefined"),
			wantSeverity: core.SeverityCritical,
			wantCategory: "JavaScript",
		},
		{
			name: "server error outranks broken link",
			sig: core.NewSignal(core.SignalHTTPErrorStatus, "HTTP 500").
				WithDetail("status", 500).
				WithDetail("check", "broken-link"),
			wantSeverity: core.SeverityCritical,
			wantCategory: "Server",
		},
		{
			name: "broken link is major navigation",
			sig: core.NewSignal(core.SignalHTTPErrorStatus, "HTTP 404").
				WithDetail("status", 404).
				WithDetail("check", "broken-link"),
			wantSeverity: core.SeverityMajor,
			wantCategory: "Navigation",
		},
		{
			name: "form rejection",
			sig: core.NewSignal(core.SignalHTTPErrorStatus, "HTTP 422").
				WithDetail("status", 422).
				WithDetail("origin", "forms"),
			wantSeverity: core.SeverityMajor,
			wantCategory: "Forms",
		},
		{
			name:         "plain http error",
			sig:          core.NewSignal(core.SignalHTTPErrorStatus, "HTTP 403").WithDetail("status", 403),
			wantSeverity: core.SeverityMajor,
			wantCategory: "Navigation",
		},
		{
			name:         "network failure",
			sig:          core.NewSignal(core.SignalNetworkFailure, "net::ERR_NAME_NOT_RESOLVED"),
			wantSeverity: core.SeverityMajor,
			wantCategory: "Network",
		},
		{
			name: "unreachable target is critical connectivity",
			sig: core.NewSignal(core.SignalNetworkFailure, "connection refused").
				WithDetail("check", "connectivity"),
			wantSeverity: core.SeverityCritical,
			wantCategory: "Connectivity",
		},
		{
			name:         "security warning",
			sig:          core.NewSignal(core.SignalSecurityWarning, "Mixed Content: insecure script"),
			wantSeverity: core.SeverityMajor,
			wantCategory: "Security",
		},
		{
			name: "missing label",
			sig: core.NewSignal(core.SignalAccessibilityViolation, "field without label").
				WithDetail("check", "missing-label"),
			wantSeverity: core.SeverityMajor,
			wantCategory: "Accessibility",
		},
		{
			name: "missing submit control",
			sig: core.NewSignal(core.SignalAccessibilityViolation, "form without submit").
				WithDetail("check", "missing-submit"),
			wantSeverity: core.SeverityMajor,
			wantCategory: "Forms",
		},
		{
			name: "missing alt is minor",
			sig: core.NewSignal(core.SignalAccessibilityViolation, "image without alt").
				WithDetail("check", "missing-alt"),
			wantSeverity: core.SeverityMinor,
			wantCategory: "Accessibility",
		},
		{
			name: "small text is minor",
			sig: core.NewSignal(core.SignalAccessibilityViolation, "text below 12px").
				WithDetail("check", "small-text"),
			wantSeverity: core.SeverityMinor,
			wantCategory: "Accessibility",
		},
		{
			name: "missing title lands in SEO",
			sig: core.NewSignal(core.SignalAccessibilityViolation, "document has no title").
				WithDetail("check", "missing-title"),
			wantSeverity: core.SeverityMinor,
			wantCategory: "SEO",
		},
		{
			name: "interactive fallback is major",
			sig: core.NewSignal(core.SignalAccessibilityViolation, "unlabeled widget").
				WithDetail("interactive", true),
			wantSeverity: core.SeverityMajor,
			wantCategory: "Accessibility",
		},
		{
			name: "broken image",
			sig: core.NewSignal(core.SignalLayoutViolation, "image failed to render").
				WithDetail("check", "broken-image"),
			wantSeverity: core.SeverityMajor,
			wantCategory: "Images",
		},
		{
			name: "zero area element is minor",
			sig: core.NewSignal(core.SignalLayoutViolation, "element collapsed").
				WithDetail("check", "zero-area"),
			wantSeverity: core.SeverityMinor,
			wantCategory: "Responsive Design",
		},
		{
			name: "horizontal overflow",
			sig: core.NewSignal(core.SignalLayoutViolation, "page wider than viewport").
				WithDetail("check", "horizontal-overflow"),
			wantSeverity: core.SeverityMajor,
			wantCategory: "Responsive Design",
		},
		{
			name:         "interaction failure",
			sig:          core.NewSignal(core.SignalInteractionFailure, "flow failed at step 1"),
			wantSeverity: core.SeverityMajor,
			wantCategory: "User Flows",
		},
		{
			name: "slow load",
			sig: core.NewSignal(core.SignalPerformanceMetric, "load took 8200ms").
				WithDetail("metric", "load-time"),
			wantSeverity: core.SeverityMajor,
			wantCategory: "Performance",
		},
		{
			name: "heap usage is minor",
			sig: core.NewSignal(core.SignalPerformanceMetric, "heap at 120MB").
				WithDetail("metric", "heap"),
			wantSeverity: core.SeverityMinor,
			wantCategory: "Performance",
		},
		{
			name:         "unknown kind still classified",
			sig:          core.Signal{Kind: "something-new", Message: "?"},
			wantSeverity: core.SeverityMinor,
			wantCategory: "General",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Classify(tt.sig)
			if rec.Severity != tt.wantSeverity {
				t.Errorf("Severity = %s, want %s", rec.Severity, tt.wantSeverity)
			}
			if rec.Category != tt.wantCategory {
				t.Errorf("Category = %s, want %s", rec.Category, tt.wantCategory)
			}
			if !rec.Severity.Valid() {
				t.Errorf("Severity %q not in the closed set", rec.Severity)
			}
			if rec.Issue == "" || rec.Recommendation == "" {
				t.Error("Issue and Recommendation must always be set")
			}
		})
	}
}

func TestClassify_CarriesDetails(t *testing.T) {
	sig := core.NewSignal(core.SignalScriptError, "boom").
		WithLocator("https://app.test/app.js").
		WithDetail("line", 42)

	rec := Classify(sig)
	if rec.Details["locator"] != "https://app.test/app.js" {
		t.Errorf("locator = %v", rec.Details["locator"])
	}
	if rec.Details["message"] != "boom" {
		t.Errorf("message = %v", rec.Details["message"])
	}
	if rec.Details["line"] != 42 {
		t.Errorf("line = %v", rec.Details["line"])
	}

	// The record owns its details; mutating them must not leak back.
	rec.Details["line"] = 1
	if sig.Detail["line"] != 42 {
		t.Error("classification mutated the source signal")
	}
}
