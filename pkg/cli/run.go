package cli

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/probelab-dev/webprobe/pkg/config"
	"github.com/probelab-dev/webprobe/pkg/core"
	"github.com/probelab-dev/webprobe/pkg/flow"
	"github.com/probelab-dev/webprobe/pkg/logger"
	"github.com/probelab-dev/webprobe/pkg/report"
	"github.com/probelab-dev/webprobe/pkg/suite"
	"github.com/probelab-dev/webprobe/pkg/validator"
)

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "Run a probe suite against a URL",
	ArgsUsage: "<url>",
	Description: `Run a probe suite against the application at the given URL.
The URL may also come from config.yaml.

Reports land in the output directory (default: ./webprobe-report):
  report.json  the full summary
  assets/      screenshot evidence from flow steps

Examples:
  webprobe run https://app.example.com
  webprobe run --suite navigation https://app.example.com
  webprobe run --flows "flows/*.yaml" https://app.example.com`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "suite",
			Aliases: []string{"s"},
			Usage:   "Suite to run (basic, auth, forms, navigation, responsive, comprehensive)",
		},
		&cli.StringSliceFlag{
			Name:    "flows",
			Aliases: []string{"f"},
			Usage:   "Glob patterns for custom flow files",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output directory for the report",
		},
		&cli.StringFlag{
			Name:  "viewport",
			Usage: "Browser window size as WIDTHxHEIGHT, e.g. 1280x720",
		},
	},
	Action: runRun,
}

func runRun(c *cli.Context) error {
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

	suiteName := c.String("suite")
	if suiteName == "" {
		suiteName = cfg.Suite
	}
	mode, err := suite.ParseMode(suiteName)
	if err != nil {
		return err
	}

	outputDir := c.String("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	patterns := c.StringSlice("flows")
	if len(patterns) == 0 {
		patterns = cfg.Flows
	}
	flows, err := loadFlows(patterns)
	if err != nil {
		return err
	}

	var viewport core.Viewport
	if vp := c.String("viewport"); vp != "" {
		viewport, err = core.ParseViewport(vp)
		if err != nil {
			return err
		}
	}

	printRunHeader(url, string(mode), len(flows))

	orch := suite.New(cfg)
	summary, err := orch.RunSuite(c.Context, suite.Request{
		URL:            url,
		Mode:           mode,
		Viewport:       viewport,
		CustomFlows:    flows,
		Screenshots:    report.FileScreenshotSink(outputDir),
		OnStepComplete: printStepComplete,
	})
	if err != nil {
		return err
	}

	if err := (report.JSONRenderer{OutputDir: outputDir}).Render(summary); err != nil {
		logger.Error("report rendering failed: %v", err)
		fmt.Printf("Warning: could not write report: %v\n", err)
	}

	printSummary(summary)
	fmt.Printf("\nReport: %s\n", filepath.Join(outputDir, "report.json"))

	if summary.Failed > 0 || summary.SeverityCounts[core.SeverityCritical] > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

// loadWorkspaceConfig resolves configuration: an explicit --config path, or
// config.yaml in the working directory, or defaults. Global flags override
// the file.
func loadWorkspaceConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	} else {
		cfg, err = config.LoadFromDir(".")
		if err != nil {
			return nil, err
		}
	}

	if c.Bool("headed") {
		headless := false
		cfg.Headless = &headless
	}
	return cfg, nil
}

// loadFlows expands glob patterns into parsed flows, sorted by path so runs
// are deterministic regardless of pattern order quirks.
func loadFlows(patterns []string) ([]*flow.Flow, error) {
	var paths []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad flow pattern %q: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	var flows []*flow.Flow
	seen := map[string]bool{}
	for _, path := range paths {
		if seen[path] {
			continue
		}
		seen[path] = true

		f, err := flow.ParseFile(path)
		if err != nil {
			return nil, err
		}
		if errs := validator.CheckFlow(f); len(errs) > 0 {
			return nil, fmt.Errorf("%s: %v", path, errs[0])
		}
		flows = append(flows, f)
	}
	return flows, nil
}
