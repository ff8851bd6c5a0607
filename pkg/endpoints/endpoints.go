// Package endpoints implements the stateless endpoint checker: plain HTTP
// requests against a URL list, without a browser session. It answers "does
// the backend respond" quickly, where the suite answers "does the page work".
package endpoints

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/probelab-dev/webprobe/pkg/logger"
)

// Result is the outcome for one checked URL.
type Result struct {
	URL       string `json:"url"`
	Status    int    `json:"status"`
	OK        bool   `json:"ok"`
	LatencyMs int64  `json:"latencyMs"`
	Error     string `json:"error,omitempty"`
}

// Checker issues the requests with bounded parallelism.
type Checker struct {
	Timeout time.Duration // per request, default 10s
	Workers int           // default 4

	// Client overrides the HTTP client, used by tests.
	Client *http.Client
}

type workItem struct {
	url   string
	index int
}

// Check probes every URL and returns results in input order. All workers
// pull from the same queue until the list is drained; a failed request marks
// its result and never stops the others.
func (c *Checker) Check(ctx context.Context, urls []string) []Result {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	workers := c.Workers
	if workers <= 0 {
		workers = 4
	}
	if workers > len(urls) {
		workers = len(urls)
	}

	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	queue := make(chan workItem, len(urls))
	for i, u := range urls {
		queue <- workItem{url: u, index: i}
	}
	close(queue)

	results := make([]Result, len(urls))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range queue {
				results[item.index] = checkOne(ctx, client, item.url)
			}
		}()
	}
	wg.Wait()

	return results
}

func checkOne(ctx context.Context, client *http.Client, url string) Result {
	result := Result{URL: url}
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		result.Error = fmt.Sprintf("build request: %v", err)
		return result
	}

	resp, err := client.Do(req)
	result.LatencyMs = time.Since(start).Milliseconds()
	if err != nil {
		result.Error = err.Error()
		logger.Debug("endpoint %s failed: %v", url, err)
		return result
	}
	defer resp.Body.Close()

	result.Status = resp.StatusCode
	result.OK = resp.StatusCode < 400
	return result
}
