// Package flow handles parsing and representation of webprobe YAML flow files.
package flow

import (
	"path/filepath"
	"strings"
)

// Flow represents a parsed interaction flow: a named, ordered sequence of
// scripted steps executed against a live page.
type Flow struct {
	SourcePath string // Path to the source file, empty for programmatic flows
	Config     Config // Flow configuration (name, env, etc.)
	Steps      []Step // Steps to execute
}

// Config represents flow-level configuration.
type Config struct {
	Name string            `yaml:"name"`
	URL  string            `yaml:"url"` // Start URL, overrides the suite target for this flow
	Env  map[string]string `yaml:"env"`
	Tags []string          `yaml:"tags"`
}

// Name returns the flow name, falling back to the source file stem.
func (f *Flow) Name() string {
	if f.Config.Name != "" {
		return f.Config.Name
	}
	base := filepath.Base(f.SourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
