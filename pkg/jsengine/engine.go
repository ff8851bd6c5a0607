// Package jsengine provides local JavaScript expression evaluation for
// webprobe flows. This engine runs in-process and never touches the page;
// page-side evaluation goes through the browser session.
package jsengine

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dop251/goja"

	"github.com/probelab-dev/webprobe/pkg/logger"
)

// Engine wraps a goja runtime with flow variable management.
type Engine struct {
	runtime   *goja.Runtime
	variables map[string]interface{}
	output    map[string]interface{}
	mu        sync.Mutex
}

// New creates a new JS engine instance.
func New() *Engine {
	e := &Engine{
		runtime:   goja.New(),
		variables: make(map[string]interface{}),
		output:    make(map[string]interface{}),
	}

	e.setupBuiltins()
	return e
}

// setupBuiltins registers console and the output object scripts use to pass
// values back to the flow.
func (e *Engine) setupBuiltins() {
	makeConsoleFunc := func(level string) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			args := make([]interface{}, len(call.Arguments))
			for i, arg := range call.Arguments {
				args[i] = arg.Export()
			}
			logger.Info("flow script %s: %v", level, args)
			return goja.Undefined()
		}
	}

	console := e.runtime.NewObject()
	console.Set("log", makeConsoleFunc("log"))
	console.Set("error", makeConsoleFunc("error"))
	console.Set("warn", makeConsoleFunc("warn"))
	e.runtime.Set("console", console)

	e.runtime.Set("output", e.output)
}

// SetVariable sets a flow variable, available to scripts and ${} expansion.
func (e *Engine) SetVariable(name string, value interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.variables[name] = value
	e.runtime.Set(name, value)
}

// GetVariable returns a variable value, or nil.
func (e *Engine) GetVariable(name string) interface{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.variables[name]
}

// Output returns the output object scripts write into.
func (e *Engine) Output() map[string]interface{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]interface{}, len(e.output))
	for k, v := range e.output {
		out[k] = v
	}
	return out
}

// Eval evaluates a script and returns its exported result.
func (e *Engine) Eval(script string) (interface{}, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	v, err := e.runtime.RunString(script)
	if err != nil {
		return nil, fmt.Errorf("script error: %w", err)
	}
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, nil
	}
	return v.Export(), nil
}

// ExpandVariables expands ${...} expressions in a string using JS
// evaluation. Unmatched braces are left as-is.
func (e *Engine) ExpandVariables(text string) (string, error) {
	result := text
	start := 0

	for {
		idx := strings.Index(result[start:], "${")
		if idx == -1 {
			break
		}
		idx += start

		// Find the matching closing brace.
		depth := 1
		end := idx + 2
		for end < len(result) && depth > 0 {
			if result[end] == '{' {
				depth++
			} else if result[end] == '}' {
				depth--
			}
			end++
		}

		if depth != 0 {
			start = idx + 2
			continue
		}

		expr := result[idx+2 : end-1]
		val, err := e.Eval(expr)
		if err != nil {
			return result, err
		}

		replacement := ""
		if val != nil {
			replacement = fmt.Sprintf("%v", val)
		}
		result = result[:idx] + replacement + result[end:]
		start = idx + len(replacement)
	}

	return result, nil
}

// Close releases the engine. The goja runtime has no explicit teardown; the
// method exists so callers can defer cleanup symmetrically.
func (e *Engine) Close() {}
