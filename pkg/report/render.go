package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/probelab-dev/webprobe/pkg/core"
)

// Renderer consumes a finished summary. The engine has no dependency on the
// rendering format; the CLI and any server transport plug their own sinks in.
type Renderer interface {
	Render(summary *core.QASummary) error
}

// JSONRenderer writes report.json into the output directory.
type JSONRenderer struct {
	OutputDir string
}

// Render writes the summary as indented JSON.
func (r JSONRenderer) Render(summary *core.QASummary) error {
	if err := os.MkdirAll(r.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	path := filepath.Join(r.OutputDir, "report.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// FileScreenshotSink returns a ScreenshotSink that writes PNG evidence under
// dir/assets and returns the relative path.
func FileScreenshotSink(dir string) core.ScreenshotSink {
	return func(name string, png []byte) (string, error) {
		assets := filepath.Join(dir, "assets")
		if err := os.MkdirAll(assets, 0755); err != nil {
			return "", err
		}
		rel := filepath.Join("assets", name+".png")
		if err := os.WriteFile(filepath.Join(dir, rel), png, 0644); err != nil {
			return "", err
		}
		return rel, nil
	}
}
