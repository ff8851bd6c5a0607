package classify

import (
	"testing"

	"github.com/probelab-dev/webprobe/pkg/core"
)

func altSignal(locator string) core.Signal {
	return core.NewSignal(core.SignalAccessibilityViolation, "image without alt").
		WithLocator(locator).
		WithDetail("check", "missing-alt")
}

func TestClassifyAll_BatchesElementChecks(t *testing.T) {
	signals := []core.Signal{
		altSignal("img[src=\"a.png\"]"),
		core.NewSignal(core.SignalAccessibilityViolation, "field without label").
			WithLocator("form#signup input[name=\"email\"]").
			WithDetail("check", "missing-label"),
		altSignal("img[src=\"b.png\"]"),
	}

	records := ClassifyAll(signals)
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2 (one per check class)", len(records))
	}

	alt := records[0]
	if alt.Severity != core.SeverityMinor {
		t.Errorf("missing-alt severity = %s, want minor", alt.Severity)
	}
	if count := alt.Details["count"]; count != 2 {
		t.Errorf("missing-alt count = %v, want 2", count)
	}
	locators, _ := alt.Details["locators"].([]string)
	if len(locators) != 2 || locators[0] != "img[src=\"a.png\"]" || locators[1] != "img[src=\"b.png\"]" {
		t.Errorf("locators = %v, want both images in capture order", locators)
	}

	label := records[1]
	if label.Severity != core.SeverityMajor {
		t.Errorf("missing-label severity = %s, want major", label.Severity)
	}
	if count := label.Details["count"]; count != 1 {
		t.Errorf("missing-label count = %v, want 1", count)
	}
}

func TestClassifyAll_NonBatchSignalsMapOneToOne(t *testing.T) {
	signals := []core.Signal{
		core.NewSignal(core.SignalScriptError, "TypeError"),
		core.NewSignal(core.SignalScriptError, "ReferenceError"),
	}

	records := ClassifyAll(signals)
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2: repeated errors each count", len(records))
	}
	if records[0].Details["message"] != "TypeError" || records[1].Details["message"] != "ReferenceError" {
		t.Errorf("messages lost: %v / %v", records[0].Details["message"], records[1].Details["message"])
	}
}

func TestClassifyAll_Empty(t *testing.T) {
	if records := ClassifyAll(nil); len(records) != 0 {
		t.Errorf("ClassifyAll(nil) = %v, want empty", records)
	}
}

func TestClassifyAll_BrokenLinkBatch(t *testing.T) {
	signals := []core.Signal{
		core.NewSignal(core.SignalHTTPErrorStatus, "HTTP 404").
			WithLocator("https://app.test/dead").
			WithDetail("check", "broken-link").
			WithDetail("status", 404),
	}

	records := ClassifyAll(signals)
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	rec := records[0]
	if rec.Category != "Navigation" {
		t.Errorf("Category = %s, want Navigation", rec.Category)
	}
	if rec.Details["count"] != 1 {
		t.Errorf("count = %v, want 1", rec.Details["count"])
	}
}
