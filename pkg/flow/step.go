package flow

import (
	"fmt"
	"time"
)

// StepType represents the type of step.
type StepType string

// Step type constants.
const (
	StepNavigate   StepType = "navigate"
	StepClick      StepType = "click"
	StepInput      StepType = "type"
	StepWait       StepType = "wait"
	StepVerify     StepType = "verify"
	StepScreenshot StepType = "screenshot"
	StepEvalScript StepType = "evalScript"
)

// Step is the interface for all flow steps.
type Step interface {
	Type() StepType
	Label() string
	Describe() string
	Timeout() time.Duration // 0 = runner default
}

// BaseStep contains common fields for all steps.
type BaseStep struct {
	StepType  StepType `yaml:"-"`
	StepLabel string   `yaml:"label"`
	TimeoutMs int      `yaml:"timeout"` // Per-step timeout in ms, 0 = runner default
}

// Type returns the step type.
func (b *BaseStep) Type() StepType { return b.StepType }

// Label returns the step label.
func (b *BaseStep) Label() string { return b.StepLabel }

// Timeout returns the per-step timeout, 0 when unset.
func (b *BaseStep) Timeout() time.Duration { return time.Duration(b.TimeoutMs) * time.Millisecond }

// Describe returns a human-readable description.
func (b *BaseStep) Describe() string { return string(b.StepType) }

// NavigateStep loads a URL in the session page.
type NavigateStep struct {
	BaseStep `yaml:",inline"`
	URL      string `yaml:"url"`
}

// Describe returns a human-readable description.
func (s *NavigateStep) Describe() string { return fmt.Sprintf("navigate %s", s.URL) }

// ClickStep clicks the first element matching the selector, waiting for it
// to become visible first.
type ClickStep struct {
	BaseStep `yaml:",inline"`
	Selector string `yaml:"selector"`
}

// Describe returns a human-readable description.
func (s *ClickStep) Describe() string { return fmt.Sprintf("click %s", s.Selector) }

// TypeStep types text into the element matching the selector.
type TypeStep struct {
	BaseStep `yaml:",inline"`
	Selector string `yaml:"selector"`
	Text     string `yaml:"text"`
	Clear    bool   `yaml:"clear"` // Clear the field before typing
}

// Describe returns a human-readable description.
func (s *TypeStep) Describe() string { return fmt.Sprintf("type into %s", s.Selector) }

// WaitStep pauses for a duration or until a selector becomes visible.
type WaitStep struct {
	BaseStep `yaml:",inline"`
	Ms       int    `yaml:"ms"`
	Selector string `yaml:"selector"` // When set, wait for visibility instead of sleeping
}

// Describe returns a human-readable description.
func (s *WaitStep) Describe() string {
	if s.Selector != "" {
		return fmt.Sprintf("wait for %s", s.Selector)
	}
	return fmt.Sprintf("wait %dms", s.Ms)
}

// VerifyStep compares the text content of a located element against an
// expected substring. A missing element yields a failed verification with
// an empty actual value, not an error.
type VerifyStep struct {
	BaseStep `yaml:",inline"`
	Selector string `yaml:"selector"`
	Contains string `yaml:"contains"`
}

// Describe returns a human-readable description.
func (s *VerifyStep) Describe() string {
	return fmt.Sprintf("verify %s contains %q", s.Selector, s.Contains)
}

// ScreenshotStep captures page evidence through the configured sink.
type ScreenshotStep struct {
	BaseStep `yaml:",inline"`
	Name     string `yaml:"name"`
}

// Describe returns a human-readable description.
func (s *ScreenshotStep) Describe() string { return fmt.Sprintf("screenshot %s", s.Name) }

// EvalScriptStep evaluates a script in the flow's local script engine.
// Output variables become available for ${} interpolation in later steps.
type EvalScriptStep struct {
	BaseStep `yaml:",inline"`
	Script   string `yaml:"script"`
}

// Describe returns a human-readable description.
func (s *EvalScriptStep) Describe() string { return "evalScript" }
