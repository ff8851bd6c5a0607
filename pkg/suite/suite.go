// Package suite orchestrates a full probing invocation: reachability check,
// session lifetime, passive collectors, the active probes selected by the
// suite mode, custom interaction flows, classification and the final summary.
//
// The orchestrator always produces a QASummary. A session that cannot be
// opened does not abort the invocation with an error: an unreachable
// application is itself a finding, surfaced as a single critical
// connectivity issue on an otherwise empty summary.
package suite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/probelab-dev/webprobe/pkg/browser"
	"github.com/probelab-dev/webprobe/pkg/classify"
	"github.com/probelab-dev/webprobe/pkg/collect"
	"github.com/probelab-dev/webprobe/pkg/config"
	"github.com/probelab-dev/webprobe/pkg/core"
	"github.com/probelab-dev/webprobe/pkg/executor"
	"github.com/probelab-dev/webprobe/pkg/flow"
	"github.com/probelab-dev/webprobe/pkg/logger"
	"github.com/probelab-dev/webprobe/pkg/probe"
	"github.com/probelab-dev/webprobe/pkg/report"
)

// Mode selects which probes a suite run executes.
type Mode string

const (
	ModeBasic         Mode = "basic"
	ModeAuth          Mode = "auth"
	ModeForms         Mode = "forms"
	ModeNavigation    Mode = "navigation"
	ModeResponsive    Mode = "responsive"
	ModeComprehensive Mode = "comprehensive"
)

// ParseMode validates a suite name from config or the command line.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeBasic, ModeAuth, ModeForms, ModeNavigation, ModeResponsive, ModeComprehensive:
		return Mode(s), nil
	}
	return "", core.NewProbeError(core.ErrCategoryConfig, "invalid_suite",
		fmt.Sprintf("unknown suite %q (want basic, auth, forms, navigation, responsive or comprehensive)", s))
}

// Request is one suite invocation.
type Request struct {
	URL  string
	Mode Mode // empty falls back to the configured suite

	// Viewport overrides the configured browser window size; zero falls
	// back to the configured viewport.
	Viewport core.Viewport

	// CustomFlows run after the mode's probes, in order.
	CustomFlows []*flow.Flow

	// Screenshots persists step evidence; nil discards.
	Screenshots core.ScreenshotSink

	// OnStepComplete forwards live flow progress to the caller.
	OnStepComplete func(index int, desc string, passed bool, durationMs int64, errText string)
}

// CustomFlow builds a programmatic flow, for callers embedding the engine
// without YAML files.
func CustomFlow(name string, steps []flow.Step) *flow.Flow {
	return &flow.Flow{
		Config: flow.Config{Name: name},
		Steps:  steps,
	}
}

// Orchestrator runs suites against a fixed workspace configuration.
type Orchestrator struct {
	cfg *config.Config
}

// New creates an orchestrator. A nil config gets the defaults.
func New(cfg *config.Config) *Orchestrator {
	if cfg == nil {
		cfg = &config.Config{}
		cfg.ApplyDefaults()
	}
	return &Orchestrator{cfg: cfg}
}

// RunSuite executes one suite invocation end to end. The returned error is
// reserved for invalid requests; probing failures, including an unreachable
// target, are folded into the summary.
func (o *Orchestrator) RunSuite(ctx context.Context, req Request) (*core.QASummary, error) {
	startTime := time.Now()
	runID := uuid.NewString()

	mode := req.Mode
	if mode == "" {
		m, err := ParseMode(o.cfg.Suite)
		if err != nil {
			return nil, err
		}
		mode = m
	}
	logger.Info("suite %s run %s against %s", mode, runID, req.URL)

	store := collect.NewSignalStore()
	var results []core.TestResult

	// Reachability first: every other check depends on the target serving
	// documents at all.
	connectivity, reachable := o.checkConnectivity(req.URL, store)
	results = append(results, connectivity)

	// Collectors attach before the initial navigation, via the session
	// creation hook. Registering them after Open would lose every event the
	// page emits while loading.
	var collectors *collect.Collectors
	sess, err := browser.Open(ctx, req.URL, o.viewport(req.Viewport), browser.Options{
		Headless:          o.cfg.IsHeadless(),
		NavigationTimeout: o.cfg.NavigationTimeout(),
		OnCreate: func(s *browser.Session) {
			collectors = collect.Attach(s, store, collect.AllFilters())
		},
	})
	if err != nil {
		logger.Error("session open failed for %s: %v", req.URL, err)
		// The preflight signal already covers an unreachable target; add one
		// only when the preflight passed but the browser still failed.
		if reachable {
			store.Append(connectivitySignal(req.URL, err))
		}
		issues := classify.ClassifyAll(store.Snapshot())
		return report.Aggregate(runID, req.URL, string(mode), startTime, results, issues), nil
	}
	defer sess.Close()

	policy := probe.PolicyFromConfig(o.cfg)

	for _, run := range o.probePlan(mode, sess, store, collectors, policy) {
		results = append(results, run())
	}

	if mode == ModeAuth {
		results = append(results, authPlaceholder())
	}

	runner := executor.New(sess, store, executor.Options{
		StepTimeout:    o.cfg.StepTimeout(),
		Screenshots:    req.Screenshots,
		OnStepComplete: req.OnStepComplete,
	})
	for _, f := range req.CustomFlows {
		results = append(results, runner.RunFlow(f))
	}

	issues := classify.ClassifyAll(store.Snapshot())
	return report.Aggregate(runID, req.URL, string(mode), startTime, results, issues), nil
}

type probeFunc func() core.TestResult

// viewport resolves a per-request viewport override against the configured
// one. Both may be zero; the browser falls back to desktop.
func (o *Orchestrator) viewport(v core.Viewport) core.Viewport {
	if v.IsZero() {
		return o.cfg.Viewport
	}
	return v
}

// probePlan maps a mode to its ordered probe sequence. The comprehensive
// sequence keeps DOM inspections before the probes that navigate away or
// reload, so every probe sees the page in a known state.
func (o *Orchestrator) probePlan(mode Mode, sess *browser.Session, store *collect.SignalStore, collectors *collect.Collectors, policy probe.Policy) []probeFunc {
	images := func() core.TestResult { return probe.Images(sess, store, policy) }
	links := func() core.TestResult { return probe.Links(sess, store, collectors, policy) }
	forms := func() core.TestResult { return probe.Forms(sess, store, policy) }
	responsive := func() core.TestResult { return probe.Responsive(sess, store, policy) }
	quality := func() core.TestResult { return probe.UIQuality(sess, store, policy) }
	performance := func() core.TestResult { return probe.Performance(sess, store, policy) }

	switch mode {
	case ModeBasic:
		return []probeFunc{images}
	case ModeNavigation:
		return []probeFunc{links}
	case ModeForms:
		return []probeFunc{forms}
	case ModeResponsive:
		return []probeFunc{responsive}
	case ModeComprehensive:
		return []probeFunc{images, links, forms, responsive, quality, performance}
	}
	return nil
}

// checkConnectivity performs the HTTP preflight and reports whether the
// target is usable. An unreachable or erroring target appends the critical
// connectivity signal; the caller still proceeds, so the browser gets its
// own chance to reach the page.
func (o *Orchestrator) checkConnectivity(url string, store *collect.SignalStore) (core.TestResult, bool) {
	result := core.TestResult{
		Name:    "Connectivity check",
		Details: map[string]interface{}{},
	}

	status, err := browser.CheckReachable(url, o.cfg.NavigationTimeout())
	switch {
	case err != nil:
		result.Error = err.Error()
	case status >= 400:
		result.Details["status"] = status
		result.Error = fmt.Sprintf("target responded with HTTP %d", status)
	default:
		result.Passed = true
		result.Details["status"] = status
		return result, true
	}

	store.Append(connectivitySignal(url, errors.New(result.Error)))
	return result, false
}

func connectivitySignal(url string, err error) core.Signal {
	return core.NewSignal(core.SignalNetworkFailure,
		fmt.Sprintf("application at %s is not reachable: %v", url, err)).
		WithLocator(url).
		WithDetail("check", "connectivity")
}

// Authentication flows are site-specific; there is no generic login
// heuristic worth shipping. The auth mode passes as a placeholder and points
// users at custom flows for real credential walks.
func authPlaceholder() core.TestResult {
	return core.TestResult{
		Name:   "Authentication flow check",
		Passed: true,
		Details: map[string]interface{}{
			"skipped": true,
			"reason":  "no generic login heuristic; drive authentication with a custom flow",
		},
	}
}
