package report

import (
	"strings"
	"testing"
	"time"

	"github.com/probelab-dev/webprobe/pkg/core"
)

func TestAggregate_Counts(t *testing.T) {
	start := time.Now().Add(-2 * time.Second)
	results := []core.TestResult{
		{Name: "Connectivity check", Passed: true},
		{Name: "Broken images check", Passed: true},
		{Name: "Navigation links check", Passed: false, Error: "2 broken links"},
	}
	issues := []core.IssueRecord{
		{Severity: core.SeverityCritical, Category: "JavaScript"},
		{Severity: core.SeverityMajor, Category: "Navigation"},
		{Severity: core.SeverityMajor, Category: "Navigation"},
		{Severity: core.SeverityMinor, Category: "Accessibility"},
	}

	s := Aggregate("run-1", "https://app.test", "comprehensive", start, results, issues)

	if s.TotalTests != 3 {
		t.Errorf("TotalTests = %d, want 3", s.TotalTests)
	}
	if s.Passed+s.Failed != s.TotalTests {
		t.Errorf("Passed(%d) + Failed(%d) != TotalTests(%d)", s.Passed, s.Failed, s.TotalTests)
	}
	if s.Passed != 2 || s.Failed != 1 {
		t.Errorf("Passed = %d, Failed = %d, want 2/1", s.Passed, s.Failed)
	}
	if s.Duration <= 0 {
		t.Error("Duration should be positive")
	}

	if s.SeverityCounts[core.SeverityCritical] != 1 ||
		s.SeverityCounts[core.SeverityMajor] != 2 ||
		s.SeverityCounts[core.SeverityMinor] != 1 {
		t.Errorf("SeverityCounts = %v", s.SeverityCounts)
	}
	if s.CategoryCounts["Navigation"] != 2 {
		t.Errorf("CategoryCounts[Navigation] = %d, want 2", s.CategoryCounts["Navigation"])
	}
}

func TestAggregate_RecommendationOrder(t *testing.T) {
	issues := []core.IssueRecord{
		{Severity: core.SeverityMinor, Category: "Accessibility"},
		{Severity: core.SeverityCritical, Category: "JavaScript"},
	}

	s := Aggregate("run-2", "https://app.test", "basic", time.Now(), nil, issues)

	if len(s.Recommendations) < 3 {
		t.Fatalf("Recommendations = %v, want severity banners plus category lines", s.Recommendations)
	}
	// Severity banners first, critical before minor, regardless of issue order.
	if !strings.Contains(s.Recommendations[0], "1 critical issue") {
		t.Errorf("first recommendation = %q, want critical banner", s.Recommendations[0])
	}
	if !strings.Contains(s.Recommendations[1], "1 minor issue") {
		t.Errorf("second recommendation = %q, want minor banner", s.Recommendations[1])
	}
	// Category focus lines follow first appearance.
	if !strings.Contains(s.Recommendations[2], "Accessibility") {
		t.Errorf("third recommendation = %q, want Accessibility focus first", s.Recommendations[2])
	}
}

func TestAggregate_NoIssues(t *testing.T) {
	results := []core.TestResult{{Name: "Connectivity check", Passed: true}}

	s := Aggregate("run-3", "https://app.test", "basic", time.Now(), results, nil)

	if len(s.Issues) != 0 {
		t.Errorf("Issues = %v, want empty", s.Issues)
	}
	if len(s.Recommendations) != 1 || !strings.Contains(s.Recommendations[0], "No issues detected") {
		t.Errorf("Recommendations = %v, want the single all-clear line", s.Recommendations)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	issues := []core.IssueRecord{
		{Severity: core.SeverityMajor, Category: "Network"},
	}
	results := []core.TestResult{{Name: "Connectivity check", Passed: false}}
	start := time.Now()

	a := Aggregate("run-4", "https://app.test", "basic", start, results, issues)
	b := Aggregate("run-4", "https://app.test", "basic", start, results, issues)

	if a.TotalTests != b.TotalTests || a.Passed != b.Passed || a.Failed != b.Failed {
		t.Error("aggregation differs across identical inputs")
	}
	if len(a.Recommendations) != len(b.Recommendations) {
		t.Error("recommendation count differs across identical inputs")
	}
	for i := range a.Recommendations {
		if a.Recommendations[i] != b.Recommendations[i] {
			t.Errorf("recommendation %d differs: %q vs %q", i, a.Recommendations[i], b.Recommendations[i])
		}
	}
}
