package cli

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/probelab-dev/webprobe/pkg/collect"
	"github.com/probelab-dev/webprobe/pkg/flow"
	"github.com/probelab-dev/webprobe/pkg/report"
	"github.com/probelab-dev/webprobe/pkg/suite"
)

var monitorCommand = &cli.Command{
	Name:      "monitor",
	Usage:     "Watch a page for a bounded duration and report what it emits",
	ArgsUsage: "<url>",
	Description: `Open the page and keep it open for the duration, capturing
script errors, failed requests and security warnings as they happen. An
optional flow drives the page during the window.

Examples:
  webprobe monitor https://app.example.com
  webprobe monitor --duration 2m --flow login.yaml https://app.example.com`,
	Flags: []cli.Flag{
		&cli.DurationFlag{
			Name:    "duration",
			Aliases: []string{"d"},
			Usage:   "How long to watch the page",
			Value:   suite.DefaultMonitorDuration,
		},
		&cli.StringFlag{
			Name:  "flow",
			Usage: "Flow file to drive the page during the window",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output directory for the report",
		},
		&cli.BoolFlag{
			Name:  "errors",
			Usage: "Capture script errors",
			Value: true,
		},
		&cli.BoolFlag{
			Name:  "network",
			Usage: "Capture failed requests and HTTP error statuses",
			Value: true,
		},
		&cli.BoolFlag{
			Name:  "security",
			Usage: "Capture security warnings",
			Value: true,
		},
	},
	Action: runMonitor,
}

func runMonitor(c *cli.Context) error {
	cfg, err := loadWorkspaceConfig(c)
	if err != nil {
		return err
	}

	url := c.Args().First()
	if url == "" {
		url = cfg.URL
	}
	if url == "" {
		return fmt.Errorf("no target URL: pass one as an argument or set url in config.yaml")
	}

	var driven *flow.Flow
	if path := c.String("flow"); path != "" {
		driven, err = flow.ParseFile(path)
		if err != nil {
			return err
		}
	}

	outputDir := c.String("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	duration := c.Duration("duration")
	fmt.Printf("Monitoring %s for %s\n", url, duration)
	start := time.Now()

	// Filter flags override the config only when given; otherwise the
	// monitor section of config.yaml decides.
	var filters *collect.Filters
	if c.IsSet("errors") || c.IsSet("network") || c.IsSet("security") {
		filters = &collect.Filters{
			Errors:   c.Bool("errors"),
			Network:  c.Bool("network"),
			Security: c.Bool("security"),
		}
	}

	orch := suite.New(cfg)
	result, err := orch.MonitorSignals(c.Context, suite.MonitorRequest{
		URL:         url,
		Duration:    duration,
		Flow:        driven,
		Filters:     filters,
		Screenshots: report.FileScreenshotSink(outputDir),
	})
	if err != nil {
		return err
	}

	printSignals(result.Signals)
	printSummary(result.Summary)
	fmt.Printf("\nWatched for %s\n", time.Since(start).Round(time.Second))

	if err := (report.JSONRenderer{OutputDir: outputDir}).Render(result.Summary); err != nil {
		fmt.Printf("Warning: could not write report: %v\n", err)
	}
	return nil
}
