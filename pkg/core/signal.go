// Package core defines the shared data model for webprobe: signals,
// classified issues, test results and the aggregated summary.
package core

import "time"

// SignalKind identifies the category of a raw observation.
// The set is closed; the classifier is total over it.
type SignalKind string

// Signal kind constants.
const (
	SignalScriptError            SignalKind = "script-error"
	SignalNetworkFailure         SignalKind = "network-failure"
	SignalHTTPErrorStatus        SignalKind = "http-error-status"
	SignalSecurityWarning        SignalKind = "security-warning"
	SignalAccessibilityViolation SignalKind = "accessibility-violation"
	SignalLayoutViolation        SignalKind = "layout-violation"
	SignalInteractionFailure     SignalKind = "interaction-failure"
	SignalPerformanceMetric      SignalKind = "performance-metric"
)

// Signal is one atomic, uninterpreted observation emitted by a collector
// or probe. Signals are immutable once created; severity judgment happens
// later in the classifier, never at capture time.
type Signal struct {
	Kind      SignalKind             `json:"kind"`
	Message   string                 `json:"message"`
	Locator   string                 `json:"locator,omitempty"` // selector or URL
	Detail    map[string]interface{} `json:"detail,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewSignal creates a signal stamped with the current time.
func NewSignal(kind SignalKind, message string) Signal {
	return Signal{
		Kind:      kind,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithLocator returns a copy of the signal with the locator set.
func (s Signal) WithLocator(locator string) Signal {
	s.Locator = locator
	return s
}

// WithDetail returns a copy of the signal with one detail entry added.
// The detail map is copied so the original signal stays immutable.
func (s Signal) WithDetail(key string, value interface{}) Signal {
	merged := make(map[string]interface{}, len(s.Detail)+1)
	for k, v := range s.Detail {
		merged[k] = v
	}
	merged[key] = value
	s.Detail = merged
	return s
}
