package probe

import (
	"fmt"

	"github.com/probelab-dev/webprobe/pkg/browser"
	"github.com/probelab-dev/webprobe/pkg/collect"
	"github.com/probelab-dev/webprobe/pkg/core"
)

type perfReport struct {
	LoadMs    float64 `json:"loadMs"`
	HeapBytes float64 `json:"heapBytes"`
}

const perfExpr = `
(() => {
	let loadMs = 0;
	const nav = performance.getEntriesByType('navigation')[0];
	if (nav && nav.loadEventEnd > 0) {
		loadMs = nav.loadEventEnd - nav.startTime;
	}
	const heapBytes = (performance.memory && performance.memory.usedJSHeapSize) || 0;
	return {loadMs: loadMs, heapBytes: heapBytes};
})()`

// Performance reads the Navigation Timing entry and the JS heap gauge and
// emits a signal for each exceeded budget. The measurements describe the
// most recent load of the current page.
func Performance(sess *browser.Session, store *collect.SignalStore, policy Policy) core.TestResult {
	const name = "Performance check"

	var report perfReport
	if err := sess.Evaluate(perfExpr, &report, policy.EvalTimeout); err != nil {
		return failedResult(name, err)
	}

	loadMs := int(report.LoadMs)
	heapMB := report.HeapBytes / (1024 * 1024)

	overBudget := false
	if loadMs > policy.LoadTimeBudgetMs {
		overBudget = true
		store.Append(core.NewSignal(core.SignalPerformanceMetric,
			fmt.Sprintf("page load took %dms (budget %dms)", loadMs, policy.LoadTimeBudgetMs)).
			WithDetail("metric", "load-time").
			WithDetail("loadMs", loadMs).
			WithDetail("budgetMs", policy.LoadTimeBudgetMs))
	}
	if heapMB > float64(policy.HeapBudgetMB) {
		overBudget = true
		store.Append(core.NewSignal(core.SignalPerformanceMetric,
			fmt.Sprintf("JS heap at %.1fMB (budget %dMB)", heapMB, policy.HeapBudgetMB)).
			WithDetail("metric", "heap").
			WithDetail("heapMB", heapMB).
			WithDetail("budgetMB", policy.HeapBudgetMB))
	}

	return core.TestResult{
		Name:   name,
		Passed: !overBudget,
		Details: map[string]interface{}{
			"loadMs": loadMs,
			"heapMB": heapMB,
		},
	}
}
