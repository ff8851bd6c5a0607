// Package probe implements active, on-demand DOM probes: each one queries
// the live page (or its serialized DOM), judges what it finds, appends
// signals to the shared store and returns a TestResult. Probes never rank
// severity; that stays with the classifier.
package probe

import (
	"time"

	"github.com/probelab-dev/webprobe/pkg/config"
	"github.com/probelab-dev/webprobe/pkg/core"
)

// Policy carries the tunable probe parameters. The caps and thresholds are
// policy choices, not protocol requirements, so they all come from config.
type Policy struct {
	LinkCap          int
	LinkTimeout      time.Duration
	Viewports        []core.Viewport
	MinFontSizePx    int
	LoadTimeBudgetMs int
	HeapBudgetMB     int
	EvalTimeout      time.Duration
}

// PolicyFromConfig builds a probe policy from workspace configuration.
func PolicyFromConfig(cfg *config.Config) Policy {
	return Policy{
		LinkCap:          cfg.LinkCap,
		LinkTimeout:      cfg.LinkTimeout(),
		Viewports:        cfg.ResponsiveViewports,
		MinFontSizePx:    cfg.MinFontSizePx,
		LoadTimeBudgetMs: cfg.LoadTimeBudgetMs,
		HeapBudgetMB:     cfg.HeapBudgetMB,
		EvalTimeout:      10 * time.Second,
	}
}

// DefaultPolicy returns the standard policy without a config file.
func DefaultPolicy() Policy {
	return Policy{
		LinkCap:          config.DefaultLinkCap,
		LinkTimeout:      time.Duration(config.DefaultLinkTimeoutMs) * time.Millisecond,
		Viewports:        core.DefaultViewports(),
		MinFontSizePx:    config.DefaultMinFontSizePx,
		LoadTimeBudgetMs: config.DefaultLoadTimeBudgetMs,
		HeapBudgetMB:     config.DefaultHeapBudgetMB,
		EvalTimeout:      10 * time.Second,
	}
}

// failedResult folds a probe-level error into a failed TestResult. Probe
// errors are contained locally: the orchestrator keeps running the
// remaining probes.
func failedResult(name string, err error) core.TestResult {
	return core.TestResult{
		Name:   name,
		Passed: false,
		Error:  err.Error(),
	}
}
