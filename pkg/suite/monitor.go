package suite

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/probelab-dev/webprobe/pkg/browser"
	"github.com/probelab-dev/webprobe/pkg/classify"
	"github.com/probelab-dev/webprobe/pkg/collect"
	"github.com/probelab-dev/webprobe/pkg/core"
	"github.com/probelab-dev/webprobe/pkg/executor"
	"github.com/probelab-dev/webprobe/pkg/flow"
	"github.com/probelab-dev/webprobe/pkg/logger"
	"github.com/probelab-dev/webprobe/pkg/probe"
	"github.com/probelab-dev/webprobe/pkg/report"
)

// DefaultMonitorDuration bounds a monitoring window when none is given.
const DefaultMonitorDuration = 30 * time.Second

// MonitorRequest configures a passive monitoring window: the page stays open
// for the duration while the collectors capture whatever the application
// emits, optionally driven by one interaction flow.
type MonitorRequest struct {
	URL      string
	Duration time.Duration

	// Flow optionally drives the page during the window.
	Flow *flow.Flow

	// Filters overrides the monitor section of the configuration; nil
	// falls back to it.
	Filters *collect.Filters

	Screenshots core.ScreenshotSink
}

// MonitorResult pairs the classified summary with the raw signal sequence,
// which monitor consumers often want verbatim.
type MonitorResult struct {
	Summary *core.QASummary
	Signals []core.Signal
}

// MonitorSignals opens the page and watches it for the requested duration.
// Which collector categories capture is controlled by the monitor section of
// the configuration; all categories default to enabled. The window ends
// early when the context is cancelled.
func (o *Orchestrator) MonitorSignals(ctx context.Context, req MonitorRequest) (*MonitorResult, error) {
	startTime := time.Now()
	runID := uuid.NewString()
	if req.Duration <= 0 {
		req.Duration = DefaultMonitorDuration
	}
	logger.Info("monitor run %s against %s for %s", runID, req.URL, req.Duration)

	store := collect.NewSignalStore()
	var results []core.TestResult

	connectivity, reachable := o.checkConnectivity(req.URL, store)
	results = append(results, connectivity)

	// Attach through the creation hook so errors thrown while the page
	// loads land in the window too.
	sess, err := browser.Open(ctx, req.URL, o.cfg.Viewport, browser.Options{
		Headless:          o.cfg.IsHeadless(),
		NavigationTimeout: o.cfg.NavigationTimeout(),
		OnCreate: func(s *browser.Session) {
			collect.Attach(s, store, o.filtersFor(req.Filters))
		},
	})
	if err != nil {
		logger.Error("session open failed for %s: %v", req.URL, err)
		if reachable {
			store.Append(connectivitySignal(req.URL, err))
		}
		return o.monitorResult(runID, req.URL, startTime, results, store), nil
	}
	defer sess.Close()

	// The window covers the whole invocation including the driven flow, so
	// the timer starts before the flow runs.
	window := time.NewTimer(req.Duration)
	defer window.Stop()

	if req.Flow != nil {
		runner := executor.New(sess, store, executor.Options{
			StepTimeout: o.cfg.StepTimeout(),
			Screenshots: req.Screenshots,
		})
		results = append(results, runner.RunFlow(req.Flow))
	}

	select {
	case <-ctx.Done():
	case <-window.C:
	}

	if o.cfg.Monitor.Performance == nil || *o.cfg.Monitor.Performance {
		results = append(results, probe.Performance(sess, store, probe.PolicyFromConfig(o.cfg)))
	}

	return o.monitorResult(runID, req.URL, startTime, results, store), nil
}

func (o *Orchestrator) monitorResult(runID, url string, startTime time.Time, results []core.TestResult, store *collect.SignalStore) *MonitorResult {
	signals := store.Snapshot()
	issues := classify.ClassifyAll(signals)
	return &MonitorResult{
		Summary: report.Aggregate(runID, url, "monitor", startTime, results, issues),
		Signals: signals,
	}
}

// filtersFor resolves a per-request filter override against the configured
// monitor toggles.
func (o *Orchestrator) filtersFor(override *collect.Filters) collect.Filters {
	if override != nil {
		return *override
	}
	return o.monitorFilters()
}

// monitorFilters maps the config toggles onto collector filters. Unset
// toggles are enabled.
func (o *Orchestrator) monitorFilters() collect.Filters {
	enabled := func(v *bool) bool { return v == nil || *v }
	m := o.cfg.Monitor
	return collect.Filters{
		Errors:   enabled(m.Errors),
		Network:  enabled(m.Network),
		Security: enabled(m.Security),
	}
}
