package core

import "time"

// StepOutcome captures the result of a single interaction step.
type StepOutcome struct {
	Index      int    `json:"index"`  // 0-based position in the flow
	Action     string `json:"action"` // navigate, click, type, wait, verify, screenshot, evalScript
	Passed     bool   `json:"passed"`
	Skipped    bool   `json:"skipped,omitempty"` // remainder after a failed navigate
	Expected   string `json:"expected,omitempty"`
	Actual     string `json:"actual,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

// TestResult is the outcome of one named check or scripted flow.
// For flows, Steps holds the ordered per-step outcomes.
type TestResult struct {
	Name    string                 `json:"name"`
	Passed  bool                   `json:"passed"`
	Details map[string]interface{} `json:"details,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Steps   []StepOutcome          `json:"steps,omitempty"`
}

// ComputeStepStatus derives Passed from step outcomes: a flow passes iff
// no step failed. Skipped steps do not fail the flow on their own.
func (t *TestResult) ComputeStepStatus() {
	t.Passed = true
	for _, s := range t.Steps {
		if !s.Passed && !s.Skipped {
			t.Passed = false
			return
		}
	}
}

// FirstFailedStep returns the first failed step, or nil if all passed.
func (t *TestResult) FirstFailedStep() *StepOutcome {
	for i := range t.Steps {
		if !t.Steps[i].Passed && !t.Steps[i].Skipped {
			return &t.Steps[i]
		}
	}
	return nil
}

// QASummary is the terminal aggregate for one invocation. Built once by the
// aggregator and read-only afterward.
type QASummary struct {
	RunID     string        `json:"runId"`
	URL       string        `json:"url"`
	Suite     string        `json:"suite"`
	StartTime time.Time     `json:"startTime"`
	Duration  time.Duration `json:"duration"`

	TotalTests int `json:"totalTests"`
	Passed     int `json:"passed"`
	Failed     int `json:"failed"`

	// Issues preserve collection order, not severity order.
	Issues []IssueRecord `json:"issues"`

	SeverityCounts  map[Severity]int `json:"severityCounts"`
	CategoryCounts  map[string]int   `json:"categoryCounts"`
	Recommendations []string         `json:"recommendations"`

	TestResults []TestResult `json:"testResults"`
}
