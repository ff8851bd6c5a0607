package probe

import (
	"fmt"

	"github.com/probelab-dev/webprobe/pkg/browser"
	"github.com/probelab-dev/webprobe/pkg/collect"
	"github.com/probelab-dev/webprobe/pkg/core"
	"github.com/probelab-dev/webprobe/pkg/logger"
)

// layoutReport mirrors the per-viewport measurement taken in the page.
type layoutReport struct {
	Overflow    bool         `json:"overflow"`
	ScrollWidth int          `json:"scrollWidth"`
	InnerWidth  int          `json:"innerWidth"`
	ZeroArea    []zeroAreaEl `json:"zeroArea"`
}

type zeroAreaEl struct {
	Tag string `json:"tag"`
	ID  string `json:"id"`
}

const layoutExpr = `
(() => {
	const doc = document.documentElement;
	const zeroArea = [];
	for (const el of document.querySelectorAll('body *')) {
		const r = el.getBoundingClientRect();
		if (r.width === 0 && r.height === 0 &&
		    el.children.length === 0 && el.textContent.trim() !== '') {
			zeroArea.push({tag: el.tagName.toLowerCase(), id: el.id || ''});
			if (zeroArea.length >= 25) break;
		}
	}
	return {
		overflow: doc.scrollWidth > window.innerWidth,
		scrollWidth: doc.scrollWidth,
		innerWidth: window.innerWidth,
		zeroArea: zeroArea
	};
})()`

// Responsive reloads the page at each configured viewport and flags
// horizontal overflow and zero-area elements as responsive-design
// violations. This is a heuristic: it catches layouts that clearly break,
// not every visual overlap. The session's original viewport is restored
// before returning.
func Responsive(sess *browser.Session, store *collect.SignalStore, policy Policy) core.TestResult {
	const name = "Responsive design check"

	defer func() {
		if err := sess.SetViewport(sess.Viewport.Width, sess.Viewport.Height); err != nil {
			logger.Warn("failed to restore viewport: %v", err)
		}
	}()

	violations := 0
	details := make(map[string]interface{}, len(policy.Viewports))
	for _, vp := range policy.Viewports {
		if err := sess.SetViewport(vp.Width, vp.Height); err != nil {
			return failedResult(name, err)
		}
		if err := sess.Reload(policy.EvalTimeout); err != nil {
			return failedResult(name, err)
		}

		var report layoutReport
		if err := sess.Evaluate(layoutExpr, &report, policy.EvalTimeout); err != nil {
			return failedResult(name, err)
		}

		if report.Overflow {
			violations++
			store.Append(core.NewSignal(core.SignalLayoutViolation,
				fmt.Sprintf("horizontal overflow at %s: content %dpx wider than viewport",
					vp, report.ScrollWidth-report.InnerWidth)).
				WithLocator(vp.String()).
				WithDetail("check", "horizontal-overflow").
				WithDetail("viewport", vp.Label).
				WithDetail("scrollWidth", report.ScrollWidth).
				WithDetail("innerWidth", report.InnerWidth))
		}
		for _, el := range report.ZeroArea {
			violations++
			store.Append(core.NewSignal(core.SignalLayoutViolation,
				fmt.Sprintf("zero-area element with content at %s: %s", vp, zeroAreaLocator(el))).
				WithLocator(zeroAreaLocator(el)).
				WithDetail("check", "zero-area").
				WithDetail("viewport", vp.Label))
		}

		details[vp.Label] = map[string]interface{}{
			"overflow": report.Overflow,
			"zeroArea": len(report.ZeroArea),
		}
	}

	return core.TestResult{
		Name:    name,
		Passed:  violations == 0,
		Details: details,
	}
}

func zeroAreaLocator(el zeroAreaEl) string {
	if el.ID != "" {
		return fmt.Sprintf("%s#%s", el.Tag, el.ID)
	}
	return el.Tag
}
