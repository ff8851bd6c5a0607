// Package validator checks flow files before execution. It parses all files
// upfront and surfaces every parse and semantic error together, instead of
// one at a time mid-run.
package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/probelab-dev/webprobe/pkg/flow"
)

// ValidationError represents a validation error with file context.
type ValidationError struct {
	File    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// Result contains the validation result.
type Result struct {
	// Files is the list of flow file paths that passed, in order.
	Files []string
	// Errors contains all validation errors found.
	Errors []error
}

// IsValid returns true if there are no validation errors.
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

// Validator validates flow files with optional tag filtering.
type Validator struct {
	includeTags []string
	excludeTags []string
}

// New creates a new Validator.
func New(includeTags, excludeTags []string) *Validator {
	return &Validator{
		includeTags: includeTags,
		excludeTags: excludeTags,
	}
}

// Validate validates a file or directory of flow files.
func (v *Validator) Validate(path string) *Result {
	result := &Result{}

	info, err := os.Stat(path)
	if err != nil {
		result.Errors = append(result.Errors, &ValidationError{
			File:    path,
			Message: fmt.Sprintf("cannot access: %v", err),
		})
		return result
	}

	var files []string
	if info.IsDir() {
		files, err = v.collectFlowFiles(path)
		if err != nil {
			result.Errors = append(result.Errors, &ValidationError{
				File:    path,
				Message: fmt.Sprintf("failed to scan directory: %v", err),
			})
			return result
		}
	} else {
		files = []string{path}
	}

	for _, file := range files {
		v.validateFile(file, result)
	}

	return result
}

// collectFlowFiles finds all .yaml/.yml files in a directory.
func (v *Validator) collectFlowFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// validateFile parses and checks a single flow file.
func (v *Validator) validateFile(filePath string, result *Result) {
	f, err := flow.ParseFile(filePath)
	if err != nil {
		result.Errors = append(result.Errors, &ValidationError{
			File:    filePath,
			Message: fmt.Sprintf("parse error: %v", err),
		})
		return
	}

	if !v.shouldInclude(f) {
		return
	}

	errs := CheckFlow(f)
	for _, e := range errs {
		result.Errors = append(result.Errors, &ValidationError{
			File:    filePath,
			Message: e.Error(),
		})
	}
	if len(errs) == 0 {
		result.Files = append(result.Files, filePath)
	}
}

// shouldInclude applies the tag filters to a flow.
func (v *Validator) shouldInclude(f *flow.Flow) bool {
	tags := map[string]bool{}
	for _, t := range f.Config.Tags {
		tags[t] = true
	}

	for _, t := range v.excludeTags {
		if tags[t] {
			return false
		}
	}

	if len(v.includeTags) == 0 {
		return true
	}
	for _, t := range v.includeTags {
		if tags[t] {
			return true
		}
	}
	return false
}

// CheckFlow runs the semantic checks on an already-parsed flow: every step
// must carry the inputs its action needs. Variable references are accepted
// anywhere, so a ${BASE_URL} target is not an error.
func CheckFlow(f *flow.Flow) []error {
	var errs []error
	fail := func(index int, format string, v ...interface{}) {
		errs = append(errs, fmt.Errorf("step %d: %s", index, fmt.Sprintf(format, v...)))
	}

	for i, step := range f.Steps {
		switch s := step.(type) {
		case *flow.NavigateStep:
			if s.URL == "" {
				fail(i, "navigate needs a URL")
			}
		case *flow.ClickStep:
			if s.Selector == "" {
				fail(i, "click needs a selector")
			}
		case *flow.TypeStep:
			if s.Selector == "" {
				fail(i, "type needs a selector")
			}
		case *flow.WaitStep:
			if s.Ms < 0 {
				fail(i, "wait duration must not be negative")
			}
			if s.Ms == 0 && s.Selector == "" {
				fail(i, "wait needs a duration or a selector")
			}
		case *flow.VerifyStep:
			if s.Selector == "" {
				fail(i, "verify needs a selector")
			}
		case *flow.EvalScriptStep:
			if s.Script == "" {
				fail(i, "evalScript needs a script")
			}
		}
	}

	return errs
}
