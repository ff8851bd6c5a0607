// Package cli provides the command-line interface for webprobe.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/probelab-dev/webprobe/pkg/logger"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Usage:   "Path to workspace config.yaml",
		EnvVars: []string{"WEBPROBE_CONFIG"},
	},
	&cli.StringFlag{
		Name:    "log-file",
		Usage:   "Diagnostic log file location",
		EnvVars: []string{"WEBPROBE_LOG_FILE"},
	},
	&cli.BoolFlag{
		Name:    "headed",
		Usage:   "Run the browser with a visible window",
		EnvVars: []string{"WEBPROBE_HEADED"},
	},
	&cli.BoolFlag{
		Name:  "no-ansi",
		Usage: "Disable ANSI colors",
	},
}

// Execute runs the CLI.
func Execute() {
	app := &cli.App{
		Name:    "webprobe",
		Usage:   "Browser-driven probing and diagnosis for web applications",
		Version: Version,
		Description: `Webprobe opens a page in headless Chrome, watches what the
application emits, actively probes the DOM and produces a severity-ranked
quality report.

Examples:
  webprobe run https://app.example.com
  webprobe run --suite forms --flows "flows/*.yaml" https://app.example.com
  webprobe monitor --duration 60s https://app.example.com
  webprobe endpoints https://api.example.com/health https://api.example.com/ready`,
		Flags: GlobalFlags,
		Before: func(c *cli.Context) error {
			if c.Bool("no-ansi") {
				color.NoColor = true
			}
			logPath := c.String("log-file")
			if logPath == "" {
				logPath = logger.DefaultPath()
			}
			return logger.Init(logPath)
		},
		After: func(c *cli.Context) error {
			logger.Close()
			return nil
		},
		Commands: []*cli.Command{
			runCommand,
			monitorCommand,
			endpointsCommand,
			validateCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
