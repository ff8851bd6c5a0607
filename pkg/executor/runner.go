// Package executor runs interaction flows against a live browser session.
// Failure policy: a failed step marks the flow failed but execution
// continues so later verification steps still contribute diagnostic value.
// A failed navigate is the exception: the destination page is assumed
// unusable and the remainder of the flow is skipped.
package executor

import (
	"fmt"
	"strings"
	"time"

	"github.com/probelab-dev/webprobe/pkg/collect"
	"github.com/probelab-dev/webprobe/pkg/core"
	"github.com/probelab-dev/webprobe/pkg/flow"
	"github.com/probelab-dev/webprobe/pkg/jsengine"
	"github.com/probelab-dev/webprobe/pkg/logger"
)

// Options configures the flow runner.
type Options struct {
	StepTimeout time.Duration       // default per-step timeout
	Screenshots core.ScreenshotSink // evidence persistence, nil = discard

	// Live progress callback, used by the CLI.
	OnStepComplete func(index int, desc string, passed bool, durationMs int64, errText string)
}

// Runner executes flows against one page driver. Results fold into the
// shared signal store: each failed flow emits exactly one
// interaction-failure signal, independent of how many steps failed.
type Runner struct {
	sess  core.Driver
	store *collect.SignalStore
	opts  Options
}

// New creates a flow runner bound to a page driver and signal store.
func New(sess core.Driver, store *collect.SignalStore, opts Options) *Runner {
	if opts.StepTimeout <= 0 {
		opts.StepTimeout = 10 * time.Second
	}
	if opts.Screenshots == nil {
		opts.Screenshots = core.NullScreenshotSink
	}
	return &Runner{sess: sess, store: store, opts: opts}
}

// RunFlow executes all steps of a flow and returns its TestResult.
func (r *Runner) RunFlow(f *flow.Flow) core.TestResult {
	name := f.Name()
	logger.Info("flow %q: %d steps", name, len(f.Steps))

	result := core.TestResult{
		Name:    name,
		Details: map[string]interface{}{},
	}

	script := jsengine.New()
	defer script.Close()
	for k, v := range f.Config.Env {
		script.SetVariable(k, v)
	}

	// A flow-level start URL behaves like a leading navigate step.
	skipRemaining := false
	if f.Config.URL != "" {
		if err := r.navigate(f.Config.URL, 0); err != nil {
			result.Error = fmt.Sprintf("start navigation failed: %v", err)
			skipRemaining = true
		}
	}

	var screenshots []string
	for i, step := range f.Steps {
		if skipRemaining {
			result.Steps = append(result.Steps, core.StepOutcome{
				Index:   i,
				Action:  string(step.Type()),
				Skipped: true,
			})
			continue
		}

		outcome := r.executeStep(i, step, script, &screenshots)
		result.Steps = append(result.Steps, outcome)

		if r.opts.OnStepComplete != nil {
			r.opts.OnStepComplete(i, step.Describe(), outcome.Passed, outcome.DurationMs, outcome.Error)
		}

		// A failed navigation leaves the flow on an unusable page.
		if !outcome.Passed && step.Type() == flow.StepNavigate {
			skipRemaining = true
		}
	}

	if len(screenshots) > 0 {
		result.Details["screenshots"] = screenshots
	}

	result.ComputeStepStatus()
	if f.Config.URL != "" && result.Error != "" {
		result.Passed = false
	}

	if !result.Passed {
		r.emitFlowFailure(name, &result)
	}

	return result
}

// executeStep runs one step with its individual timeout and folds the
// outcome into a StepOutcome. Tool-level failures never propagate as
// errors; they mark the step failed.
func (r *Runner) executeStep(index int, step flow.Step, script *jsengine.Engine, screenshots *[]string) core.StepOutcome {
	start := time.Now()
	outcome := core.StepOutcome{
		Index:  index,
		Action: string(step.Type()),
		Passed: true,
	}

	timeout := r.opts.StepTimeout
	if step.Timeout() > 0 {
		timeout = step.Timeout()
	}

	fail := func(err error) {
		outcome.Passed = false
		outcome.Error = err.Error()
	}

	switch s := step.(type) {
	case *flow.NavigateStep:
		url := r.expand(script, s.URL)
		if err := r.navigate(url, timeout); err != nil {
			fail(err)
		}

	case *flow.ClickStep:
		if err := r.sess.Click(r.expand(script, s.Selector), timeout); err != nil {
			fail(core.ErrElementNotFound.WithMessage(
				fmt.Sprintf("click target %s not actionable", s.Selector)).WithCause(err))
		}

	case *flow.TypeStep:
		text := r.expand(script, s.Text)
		if err := r.sess.Type(r.expand(script, s.Selector), text, s.Clear, timeout); err != nil {
			fail(core.ErrElementNotFound.WithMessage(
				fmt.Sprintf("type target %s not actionable", s.Selector)).WithCause(err))
		}

	case *flow.WaitStep:
		if s.Selector != "" {
			if err := r.sess.WaitVisible(r.expand(script, s.Selector), timeout); err != nil {
				fail(core.ErrStepTimeout.WithCause(err))
			}
		} else {
			r.sess.Sleep(time.Duration(s.Ms) * time.Millisecond)
		}

	case *flow.VerifyStep:
		expected := r.expand(script, s.Contains)
		outcome.Expected = expected
		actual, found, err := r.sess.TextContent(r.expand(script, s.Selector), timeout)
		switch {
		case err != nil:
			fail(err)
		case !found:
			// Missing element is a failed verification, not an error.
			outcome.Passed = false
		default:
			outcome.Actual = actual
			if !strings.Contains(actual, expected) {
				outcome.Passed = false
			}
		}

	case *flow.ScreenshotStep:
		png, err := r.sess.Screenshot(timeout)
		if err != nil {
			fail(err)
			break
		}
		shotName := s.Name
		if shotName == "" {
			shotName = fmt.Sprintf("step-%d", index)
		}
		path, err := r.opts.Screenshots(shotName, png)
		if err != nil {
			fail(err)
			break
		}
		if path != "" {
			*screenshots = append(*screenshots, path)
		}

	case *flow.EvalScriptStep:
		if _, err := script.Eval(s.Script); err != nil {
			fail(err)
		}

	default:
		fail(core.ErrInvalidFlow.WithMessage(
			fmt.Sprintf("unsupported step type %s", step.Type())))
	}

	outcome.DurationMs = time.Since(start).Milliseconds()
	return outcome
}

// navigate loads a URL and treats error statuses as failures.
func (r *Runner) navigate(url string, timeout time.Duration) error {
	status, err := r.sess.Navigate(url, timeout)
	if err != nil {
		return core.ErrNavigation.WithMessage(
			fmt.Sprintf("navigation to %s failed", url)).WithCause(err)
	}
	if status >= 400 {
		return core.ErrNavigation.WithMessage(
			fmt.Sprintf("navigation to %s returned HTTP %d", url, status))
	}
	return nil
}

// emitFlowFailure appends the single flow-level signal for a failed flow.
func (r *Runner) emitFlowFailure(name string, result *core.TestResult) {
	msg := fmt.Sprintf("flow %q failed", name)
	sig := core.NewSignal(core.SignalInteractionFailure, msg).
		WithDetail("flow", name)
	if failed := result.FirstFailedStep(); failed != nil {
		sig = sig.
			WithDetail("stepIndex", failed.Index).
			WithDetail("action", failed.Action)
		sig.Message = fmt.Sprintf("flow %q failed at step %d (%s)", name, failed.Index, failed.Action)
	} else if result.Error != "" {
		sig = sig.WithDetail("error", result.Error)
	}
	r.store.Append(sig)
}

func (r *Runner) expand(script *jsengine.Engine, text string) string {
	expanded, err := script.ExpandVariables(text)
	if err != nil {
		logger.Warn("variable expansion failed for %q: %v", text, err)
		return text
	}
	return expanded
}
