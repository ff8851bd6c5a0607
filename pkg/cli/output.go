package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/probelab-dev/webprobe/pkg/core"
	"github.com/probelab-dev/webprobe/pkg/endpoints"
)

// Slow step threshold in milliseconds.
const slowThresholdMs = 5000

var (
	headline  = color.New(color.FgCyan, color.Bold)
	passMark  = color.New(color.FgGreen)
	failMark  = color.New(color.FgRed)
	slowMark  = color.New(color.FgYellow)
	dimText   = color.New(color.Faint)
	boldText  = color.New(color.Bold)
	severeHue = map[core.Severity]*color.Color{
		core.SeverityCritical: color.New(color.FgRed, color.Bold),
		core.SeverityMajor:    color.New(color.FgYellow),
		core.SeverityMinor:    color.New(color.FgCyan),
	}
)

func printRunHeader(url, mode string, flowCount int) {
	headline.Printf("\nwebprobe")
	fmt.Printf(" %s suite against %s", mode, url)
	if flowCount > 0 {
		fmt.Printf(" (%d custom flow(s))", flowCount)
	}
	fmt.Println()
	fmt.Println(strings.Repeat("─", 60))
}

// printStepComplete is the live progress callback for flow steps.
func printStepComplete(index int, desc string, passed bool, durationMs int64, errText string) {
	durStr := formatDuration(durationMs)
	switch {
	case passed && durationMs >= slowThresholdMs:
		slowMark.Printf("    ⚠ ")
		fmt.Printf("%s ", desc)
		slowMark.Printf("(%s)\n", durStr)
	case passed:
		passMark.Printf("    ✓ ")
		fmt.Printf("%s %s\n", desc, dimText.Sprintf("(%s)", durStr))
	default:
		failMark.Printf("    ✗ ")
		fmt.Printf("%s (%s)\n", desc, durStr)
		if errText != "" {
			dimText.Printf("      ╰─ %s\n", errText)
		}
	}
}

func printSummary(s *core.QASummary) {
	fmt.Println()
	headline.Println("Results")
	for _, r := range s.TestResults {
		if r.Passed {
			passMark.Printf("  ✓ ")
		} else {
			failMark.Printf("  ✗ ")
		}
		fmt.Print(r.Name)
		if !r.Passed && r.Error != "" {
			dimText.Printf("  %s", r.Error)
		}
		fmt.Println()
	}

	fmt.Println()
	boldText.Printf("%d test(s): ", s.TotalTests)
	passMark.Printf("%d passed", s.Passed)
	fmt.Print(", ")
	if s.Failed > 0 {
		failMark.Printf("%d failed", s.Failed)
	} else {
		fmt.Printf("%d failed", s.Failed)
	}
	fmt.Printf("  (%s)\n", s.Duration.Round(10*time.Millisecond))

	if len(s.Issues) > 0 {
		fmt.Println()
		headline.Println("Issues")
		for _, issue := range s.Issues {
			hue, ok := severeHue[issue.Severity]
			if !ok {
				hue = dimText
			}
			hue.Printf("  [%s] ", strings.ToUpper(string(issue.Severity)))
			fmt.Printf("%s: %s\n", issue.Category, issue.Issue)
			if count, ok := issue.Details["count"].(int); ok && count > 1 {
				dimText.Printf("         %d occurrence(s)\n", count)
			}
		}
	}

	if len(s.Recommendations) > 0 {
		fmt.Println()
		headline.Println("Recommendations")
		for _, rec := range s.Recommendations {
			fmt.Printf("  • %s\n", rec)
		}
	}
}

// printSignals lists the raw capture stream, which monitor users read as a
// timeline.
func printSignals(signals []core.Signal) {
	if len(signals) == 0 {
		passMark.Println("\nNo signals captured")
		return
	}

	fmt.Println()
	headline.Printf("Signals (%d)\n", len(signals))
	for _, sig := range signals {
		dimText.Printf("  %s ", sig.Timestamp.Format("15:04:05.000"))
		fmt.Printf("%-24s %s", sig.Kind, sig.Message)
		if sig.Locator != "" {
			dimText.Printf("  %s", sig.Locator)
		}
		fmt.Println()
	}
}

func printEndpointResults(results []endpoints.Result) {
	for _, r := range results {
		if r.OK {
			passMark.Printf("  ✓ ")
		} else {
			failMark.Printf("  ✗ ")
		}
		fmt.Printf("%-50s ", r.URL)
		if r.Error != "" {
			failMark.Printf("%s\n", r.Error)
			continue
		}
		fmt.Printf("%d %s\n", r.Status, dimText.Sprintf("(%dms)", r.LatencyMs))
	}
}

func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}
