package core

import "time"

// Driver is the subset of page operations the flow runner needs. The live
// implementation is browser.Session; tests substitute a scripted fake.
type Driver interface {
	// Navigate loads a URL and returns the HTTP status of the document
	// response, zero when the navigation produced no network response.
	Navigate(url string, timeout time.Duration) (int64, error)

	Click(selector string, timeout time.Duration) error
	Type(selector, text string, clear bool, timeout time.Duration) error
	WaitVisible(selector string, timeout time.Duration) error

	// TextContent reports a missing element through found=false, not an
	// error, so verification can distinguish absence from transport failure.
	TextContent(selector string, timeout time.Duration) (text string, found bool, err error)

	Screenshot(timeout time.Duration) ([]byte, error)
	Sleep(d time.Duration)
}
