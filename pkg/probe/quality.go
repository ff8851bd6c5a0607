package probe

import (
	"fmt"

	"github.com/probelab-dev/webprobe/pkg/browser"
	"github.com/probelab-dev/webprobe/pkg/collect"
	"github.com/probelab-dev/webprobe/pkg/core"
)

type smallTextEl struct {
	Tag  string  `json:"tag"`
	ID   string  `json:"id"`
	Size float64 `json:"size"`
}

const smallTextExprTemplate = `
(() => {
	const out = [];
	for (const el of document.querySelectorAll('body *')) {
		const hasOwnText = Array.from(el.childNodes).some(
			n => n.nodeType === Node.TEXT_NODE && n.textContent.trim() !== '');
		if (!hasOwnText) continue;
		const size = parseFloat(getComputedStyle(el).fontSize);
		if (size > 0 && size < %d) {
			out.push({tag: el.tagName.toLowerCase(), id: el.id || '', size: size});
			if (out.length >= 25) break;
		}
	}
	return out;
})()`

// UIQuality audits rendered text legibility and the document title.
// Text below the configured minimum font size is flagged per element; a
// missing or empty title is flagged once.
func UIQuality(sess *browser.Session, store *collect.SignalStore, policy Policy) core.TestResult {
	const name = "UI quality check"

	var smallText []smallTextEl
	expr := fmt.Sprintf(smallTextExprTemplate, policy.MinFontSizePx)
	if err := sess.Evaluate(expr, &smallText, policy.EvalTimeout); err != nil {
		return failedResult(name, err)
	}

	for _, el := range smallText {
		locator := el.Tag
		if el.ID != "" {
			locator = fmt.Sprintf("%s#%s", el.Tag, el.ID)
		}
		store.Append(core.NewSignal(core.SignalAccessibilityViolation,
			fmt.Sprintf("text below %dpx: %s renders at %.1fpx", policy.MinFontSizePx, locator, el.Size)).
			WithLocator(locator).
			WithDetail("check", "small-text").
			WithDetail("interactive", false).
			WithDetail("fontSize", el.Size))
	}

	title, err := sess.Title(policy.EvalTimeout)
	if err != nil {
		return failedResult(name, err)
	}
	missingTitle := title == ""
	if missingTitle {
		store.Append(core.NewSignal(core.SignalAccessibilityViolation,
			"document has no title").
			WithDetail("check", "missing-title").
			WithDetail("interactive", false))
	}

	return core.TestResult{
		Name:   name,
		Passed: len(smallText) == 0 && !missingTitle,
		Details: map[string]interface{}{
			"smallText":    len(smallText),
			"missingTitle": missingTitle,
		},
	}
}
