package core

// Attachment represents an evidence artifact captured during a probe or
// flow step, typically a page or element screenshot.
type Attachment struct {
	Name        string `json:"name"`        // Descriptive name: screenshot, page_html
	ContentType string `json:"contentType"` // MIME type: image/png, text/html
	Path        string `json:"path"`        // File path relative to output directory
	Body        []byte `json:"-"`           // In-memory content (not serialized to JSON)
}

// Common attachment names.
const (
	AttachmentScreenshot = "screenshot"
	AttachmentPageHTML   = "page_html"
)

// Common content types.
const (
	ContentTypePNG  = "image/png"
	ContentTypeHTML = "text/html"
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain"
)

// NewScreenshotAttachment creates a screenshot attachment.
func NewScreenshotAttachment(path string, data []byte) Attachment {
	return Attachment{
		Name:        AttachmentScreenshot,
		ContentType: ContentTypePNG,
		Path:        path,
		Body:        data,
	}
}

// ScreenshotSink persists captured screenshot bytes and returns the path the
// evidence was written to. The core consumes the returned path opaquely;
// persistence itself belongs to the caller (CLI, server).
type ScreenshotSink func(name string, png []byte) (string, error)

// NullScreenshotSink discards evidence and returns an empty path.
func NullScreenshotSink(string, []byte) (string, error) { return "", nil }
