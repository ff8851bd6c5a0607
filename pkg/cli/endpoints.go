package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/probelab-dev/webprobe/pkg/endpoints"
)

var endpointsCommand = &cli.Command{
	Name:      "endpoints",
	Usage:     "Check a list of URLs with plain HTTP requests",
	ArgsUsage: "<url>...",
	Description: `Probe each URL with a GET request and report status and
latency. No browser is involved; this is a fast backend reachability check.

Examples:
  webprobe endpoints https://api.example.com/health https://api.example.com/ready
  webprobe endpoints --workers 8 --timeout 5s --json $(cat urls.txt)`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "file",
			Usage: "Read URLs from a file, one per line",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Number of parallel requests",
			Value: 4,
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-request timeout",
			Value: 10 * time.Second,
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Emit results as JSON instead of the table",
		},
	},
	Action: runEndpoints,
}

func runEndpoints(c *cli.Context) error {
	urls := c.Args().Slice()
	if path := c.String("file"); path != "" {
		fromFile, err := readURLFile(path)
		if err != nil {
			return err
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs given")
	}

	checker := &endpoints.Checker{
		Timeout: c.Duration("timeout"),
		Workers: c.Int("workers"),
	}
	results := checker.Check(c.Context, urls)

	if c.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		printEndpointResults(results)
	}

	for _, r := range results {
		if !r.OK {
			return cli.Exit("", 1)
		}
	}
	return nil
}

// readURLFile reads one URL per line, skipping blanks and # comments.
func readURLFile(path string) ([]string, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided URL list
	if err != nil {
		return nil, fmt.Errorf("read URL file: %w", err)
	}

	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, nil
}
