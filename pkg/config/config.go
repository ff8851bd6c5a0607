// Package config handles workspace configuration for webprobe.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/probelab-dev/webprobe/pkg/core"
)

// Config represents the workspace configuration (config.yaml).
// Zero values fall back to the defaults below, so a partial file is fine.
type Config struct {
	// Target and suite selection
	URL   string `yaml:"url"`
	Suite string `yaml:"suite"` // basic, auth, forms, navigation, responsive, comprehensive

	// Flow selection
	Flows []string `yaml:"flows"` // Glob patterns for custom flow files

	// Browser settings
	Viewport core.Viewport `yaml:"viewport"`
	Headless *bool         `yaml:"headless"`

	// Timeouts in milliseconds
	NavigationTimeoutMs int `yaml:"navigationTimeout"` // initial navigation
	StepTimeoutMs       int `yaml:"stepTimeout"`       // per interaction step
	LinkTimeoutMs       int `yaml:"linkTimeout"`       // per probed link

	// Probe policy
	LinkCap             int             `yaml:"linkCap"` // max same-origin links probed
	ResponsiveViewports []core.Viewport `yaml:"responsiveViewports"`
	MinFontSizePx       int             `yaml:"minFontSize"`

	// Performance thresholds
	LoadTimeBudgetMs int `yaml:"loadTimeBudget"`
	HeapBudgetMB     int `yaml:"heapBudget"`

	// Monitor-mode capture filters
	Monitor MonitorConfig `yaml:"monitor"`

	// Output
	OutputDir string `yaml:"outputDir"`
}

// MonitorConfig selects which collector categories stay enabled in
// monitor mode. All true by default.
type MonitorConfig struct {
	Errors      *bool `yaml:"errors"`
	Network     *bool `yaml:"network"`
	Security    *bool `yaml:"security"`
	Performance *bool `yaml:"performance"`
}

// Defaults for unset fields.
const (
	DefaultSuite               = "comprehensive"
	DefaultNavigationTimeoutMs = 30000
	DefaultStepTimeoutMs       = 10000
	DefaultLinkTimeoutMs       = 5000
	DefaultLinkCap             = 10
	DefaultMinFontSizePx       = 12
	DefaultLoadTimeBudgetMs    = 3000
	DefaultHeapBudgetMB        = 50
	DefaultOutputDir           = "webprobe-report"
)

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	return &cfg, nil
}

// LoadFromDir looks for config.yaml or config.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	configPath = filepath.Join(dir, "config.yml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// No config file found, return defaults
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults fills unset fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Suite == "" {
		c.Suite = DefaultSuite
	}
	if c.Viewport.IsZero() {
		c.Viewport = core.ViewportDesktop
	}
	if c.NavigationTimeoutMs <= 0 {
		c.NavigationTimeoutMs = DefaultNavigationTimeoutMs
	}
	if c.StepTimeoutMs <= 0 {
		c.StepTimeoutMs = DefaultStepTimeoutMs
	}
	if c.LinkTimeoutMs <= 0 {
		c.LinkTimeoutMs = DefaultLinkTimeoutMs
	}
	if c.LinkCap <= 0 {
		c.LinkCap = DefaultLinkCap
	}
	if len(c.ResponsiveViewports) == 0 {
		c.ResponsiveViewports = core.DefaultViewports()
	}
	if c.MinFontSizePx <= 0 {
		c.MinFontSizePx = DefaultMinFontSizePx
	}
	if c.LoadTimeBudgetMs <= 0 {
		c.LoadTimeBudgetMs = DefaultLoadTimeBudgetMs
	}
	if c.HeapBudgetMB <= 0 {
		c.HeapBudgetMB = DefaultHeapBudgetMB
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
}

// NavigationTimeout returns the initial navigation timeout as a duration.
func (c *Config) NavigationTimeout() time.Duration {
	return time.Duration(c.NavigationTimeoutMs) * time.Millisecond
}

// StepTimeout returns the per-step timeout as a duration.
func (c *Config) StepTimeout() time.Duration {
	return time.Duration(c.StepTimeoutMs) * time.Millisecond
}

// LinkTimeout returns the per-link timeout as a duration.
func (c *Config) LinkTimeout() time.Duration {
	return time.Duration(c.LinkTimeoutMs) * time.Millisecond
}

// IsHeadless reports whether the browser should run headless (default true).
func (c *Config) IsHeadless() bool {
	return c.Headless == nil || *c.Headless
}
