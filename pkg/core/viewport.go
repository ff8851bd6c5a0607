package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Viewport describes the emulated browser window size.
type Viewport struct {
	Label  string `json:"label,omitempty" yaml:"label"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
}

// String returns "WxH" (with the label when set).
func (v Viewport) String() string {
	if v.Label != "" {
		return fmt.Sprintf("%s (%dx%d)", v.Label, v.Width, v.Height)
	}
	return fmt.Sprintf("%dx%d", v.Width, v.Height)
}

// IsZero reports whether the viewport is unset.
func (v Viewport) IsZero() bool {
	return v.Width == 0 && v.Height == 0
}

// ParseViewport parses a "WIDTHxHEIGHT" string like "1280x720".
func ParseViewport(s string) (Viewport, error) {
	w, h, ok := strings.Cut(strings.TrimSpace(s), "x")
	if !ok {
		return Viewport{}, fmt.Errorf("invalid viewport %q: want WIDTHxHEIGHT, e.g. 1280x720", s)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return Viewport{}, fmt.Errorf("invalid viewport width %q", w)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return Viewport{}, fmt.Errorf("invalid viewport height %q", h)
	}
	if width <= 0 || height <= 0 {
		return Viewport{}, fmt.Errorf("invalid viewport %q: dimensions must be positive", s)
	}
	return Viewport{Width: width, Height: height}, nil
}

// Default viewports. The responsive probe iterates these in order; the set
// is a policy choice and can be overridden in config.
var (
	ViewportMobile  = Viewport{Label: "mobile", Width: 375, Height: 667}
	ViewportTablet  = Viewport{Label: "tablet", Width: 768, Height: 1024}
	ViewportDesktop = Viewport{Label: "desktop", Width: 1280, Height: 720}
)

// DefaultViewports returns the standard mobile/tablet/desktop set.
func DefaultViewports() []Viewport {
	return []Viewport{ViewportMobile, ViewportTablet, ViewportDesktop}
}
