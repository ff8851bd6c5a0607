package flow

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ParseError represents a parsing error with location info.
type ParseError struct {
	Path    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ParseFile parses a single webprobe YAML flow file.
func ParseFile(path string) (*Flow, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is user-provided flow file
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data, path)
}

// Parse parses YAML flow content. A flow file is either a bare step list,
// or a config document followed by a step list separated by "---".
func Parse(data []byte, sourcePath string) (*Flow, error) {
	docs, err := decodeDocuments(data)
	if err != nil {
		return nil, &ParseError{
			Path:    sourcePath,
			Message: fmt.Sprintf("invalid YAML: %v", err),
		}
	}

	f := &Flow{
		SourcePath: sourcePath,
	}

	switch len(docs) {
	case 0:
		return nil, &ParseError{
			Path:    sourcePath,
			Line:    1,
			Message: "empty flow file",
		}
	case 1:
		if err := parseSteps(docs[0], f); err != nil {
			return nil, err
		}
	default:
		if err := parseConfig(docs[0], f); err != nil {
			return nil, err
		}
		if err := parseSteps(docs[1], f); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// decodeDocuments reads the stream with the YAML decoder, so a "---" line
// inside a block scalar stays part of its document instead of splitting it.
// Empty documents are dropped.
func decodeDocuments(data []byte) ([]*yaml.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var docs []*yaml.Node
	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return docs, nil
			}
			return nil, err
		}
		if isEmptyDocument(&doc) {
			continue
		}
		docs = append(docs, &doc)
	}
}

func isEmptyDocument(doc *yaml.Node) bool {
	if doc.Kind == 0 {
		return true
	}
	if doc.Kind == yaml.DocumentNode {
		return len(doc.Content) == 0 || doc.Content[0].Tag == "!!null"
	}
	return false
}

func parseConfig(doc *yaml.Node, f *Flow) error {
	var config Config
	if err := doc.Decode(&config); err != nil {
		return &ParseError{
			Path:    f.SourcePath,
			Line:    doc.Line,
			Message: fmt.Sprintf("invalid config: %v", err),
		}
	}
	f.Config = config
	return nil
}

func parseSteps(doc *yaml.Node, f *Flow) error {
	var rawSteps []yaml.Node
	if err := doc.Decode(&rawSteps); err != nil {
		return &ParseError{
			Path:    f.SourcePath,
			Line:    doc.Line,
			Message: fmt.Sprintf("invalid steps: %v", err),
		}
	}

	for i := range rawSteps {
		step, err := parseStep(&rawSteps[i], f.SourcePath)
		if err != nil {
			return err
		}
		f.Steps = append(f.Steps, step)
	}

	return nil
}

func parseStep(node *yaml.Node, sourcePath string) (Step, error) {
	// Bare step names like "- screenshot" arrive as scalar nodes.
	if node.Kind == yaml.ScalarNode && isStepType(node.Value) {
		emptyNode := &yaml.Node{Kind: yaml.MappingNode}
		return decodeStep(StepType(node.Value), emptyNode, sourcePath)
	}

	if node.Kind != yaml.MappingNode {
		return nil, &ParseError{
			Path:    sourcePath,
			Line:    node.Line,
			Message: "step must be a mapping like '- click: \"#submit\"'",
		}
	}

	stepType, valueNode := extractStepType(node)
	if stepType == "" || valueNode == nil {
		return nil, &ParseError{
			Path:    sourcePath,
			Line:    node.Line,
			Message: "unknown step type",
		}
	}

	return decodeStep(StepType(stepType), valueNode, sourcePath)
}

func extractStepType(node *yaml.Node) (string, *yaml.Node) {
	for i := 0; i < len(node.Content)-1; i += 2 {
		key := node.Content[i].Value
		if isStepType(key) {
			return key, node.Content[i+1]
		}
	}
	return "", nil
}

func isStepType(key string) bool {
	switch StepType(key) {
	case StepNavigate, StepClick, StepInput, StepWait,
		StepVerify, StepScreenshot, StepEvalScript:
		return true
	}
	return false
}

func decodeStep(stepType StepType, valueNode *yaml.Node, sourcePath string) (Step, error) {
	switch stepType {
	case StepNavigate:
		var s NavigateStep
		if valueNode.Kind == yaml.ScalarNode {
			s.URL = valueNode.Value
		} else if err := valueNode.Decode(&s); err != nil {
			return nil, wrapParseError(sourcePath, valueNode.Line, err)
		}
		s.StepType = stepType
		return &s, nil

	case StepClick:
		var s ClickStep
		if valueNode.Kind == yaml.ScalarNode {
			s.Selector = valueNode.Value
		} else if err := valueNode.Decode(&s); err != nil {
			return nil, wrapParseError(sourcePath, valueNode.Line, err)
		}
		s.StepType = stepType
		return &s, nil

	case StepInput:
		var s TypeStep
		if err := valueNode.Decode(&s); err != nil {
			return nil, wrapParseError(sourcePath, valueNode.Line, err)
		}
		if s.Selector == "" {
			return nil, &ParseError{
				Path:    sourcePath,
				Line:    valueNode.Line,
				Message: "type step requires a selector",
			}
		}
		s.StepType = stepType
		return &s, nil

	case StepWait:
		var s WaitStep
		if valueNode.Kind == yaml.ScalarNode {
			ms, err := strconv.Atoi(valueNode.Value)
			if err != nil {
				// Scalar that is not a number is a selector to wait for.
				s.Selector = valueNode.Value
			} else {
				s.Ms = ms
			}
		} else if err := valueNode.Decode(&s); err != nil {
			return nil, wrapParseError(sourcePath, valueNode.Line, err)
		}
		s.StepType = stepType
		return &s, nil

	case StepVerify:
		var s VerifyStep
		if err := valueNode.Decode(&s); err != nil {
			return nil, wrapParseError(sourcePath, valueNode.Line, err)
		}
		if s.Selector == "" {
			return nil, &ParseError{
				Path:    sourcePath,
				Line:    valueNode.Line,
				Message: "verify step requires a selector",
			}
		}
		s.StepType = stepType
		return &s, nil

	case StepScreenshot:
		var s ScreenshotStep
		if valueNode.Kind == yaml.ScalarNode {
			s.Name = valueNode.Value
		} else if err := valueNode.Decode(&s); err != nil {
			return nil, wrapParseError(sourcePath, valueNode.Line, err)
		}
		s.StepType = stepType
		return &s, nil

	case StepEvalScript:
		var s EvalScriptStep
		if valueNode.Kind == yaml.ScalarNode {
			s.Script = valueNode.Value
		} else if err := valueNode.Decode(&s); err != nil {
			return nil, wrapParseError(sourcePath, valueNode.Line, err)
		}
		s.StepType = stepType
		return &s, nil
	}

	return nil, &ParseError{
		Path:    sourcePath,
		Line:    valueNode.Line,
		Message: fmt.Sprintf("unknown step type: %s", stepType),
	}
}

func wrapParseError(path string, line int, err error) error {
	return &ParseError{
		Path:    path,
		Line:    line,
		Message: err.Error(),
	}
}
