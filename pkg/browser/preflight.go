package browser

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff"
)

// CheckReachable probes the target origin over plain HTTP before the browser
// launches. Locally started apps are often still binding their port when the
// probe begins, so transport errors are retried with exponential backoff.
// Returns the final HTTP status; a transport failure after all retries is
// returned as an error.
func CheckReachable(url string, timeout time.Duration) (int, error) {
	client := &http.Client{Timeout: timeout}

	var status int
	op := func() error {
		resp, err := client.Get(url)
		if err != nil {
			return err
		}
		resp.Body.Close()
		status = resp.StatusCode
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxElapsedTime = timeout

	if err := backoff.Retry(op, backoff.WithMaxRetries(b, 3)); err != nil {
		return 0, fmt.Errorf("target unreachable: %w", err)
	}
	return status, nil
}
