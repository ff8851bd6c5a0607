// Package report merges classified issues and test results into the final
// QASummary and renders it through pluggable sinks.
package report

import (
	"fmt"
	"time"

	"github.com/probelab-dev/webprobe/pkg/core"
)

// Aggregate builds the terminal summary for one invocation: a single pass
// over the test results for the counters, a single pass over the issue
// records for the severity and category tallies, then deterministic
// recommendation generation. The issue order is collection order.
func Aggregate(runID, url, suiteName string, startTime time.Time, results []core.TestResult, issues []core.IssueRecord) *core.QASummary {
	summary := &core.QASummary{
		RunID:          runID,
		URL:            url,
		Suite:          suiteName,
		StartTime:      startTime,
		Duration:       time.Since(startTime),
		Issues:         issues,
		TestResults:    results,
		SeverityCounts: make(map[core.Severity]int),
		CategoryCounts: make(map[string]int),
	}

	for _, r := range results {
		summary.TotalTests++
		if r.Passed {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}

	// Category order for the recommendation lines follows first appearance.
	var categoryOrder []string
	for _, issue := range issues {
		summary.SeverityCounts[issue.Severity]++
		if summary.CategoryCounts[issue.Category] == 0 {
			categoryOrder = append(categoryOrder, issue.Category)
		}
		summary.CategoryCounts[issue.Category]++
	}

	summary.Recommendations = recommendations(summary, categoryOrder)
	return summary
}

// recommendations produces the ordered, deduplicated next-step lines:
// severity banners first, one focus line per category present, and a single
// positive confirmation only when the whole run found nothing.
func recommendations(s *core.QASummary, categoryOrder []string) []string {
	var recs []string

	if n := s.SeverityCounts[core.SeverityCritical]; n > 0 {
		recs = append(recs, fmt.Sprintf(
			"Fix %d critical issue(s) immediately - the application is not functioning correctly", n))
	}
	if n := s.SeverityCounts[core.SeverityMajor]; n > 0 {
		recs = append(recs, fmt.Sprintf(
			"Address %d major issue(s) before release", n))
	}
	if n := s.SeverityCounts[core.SeverityMinor]; n > 0 {
		recs = append(recs, fmt.Sprintf(
			"Consider resolving %d minor issue(s) to improve overall quality", n))
	}

	for _, category := range categoryOrder {
		recs = append(recs, fmt.Sprintf(
			"Focus on %s: %d issue(s) found", category, s.CategoryCounts[category]))
	}

	if len(s.Issues) == 0 {
		recs = append(recs, "No issues detected - the application passed all checks")
	}

	return recs
}
