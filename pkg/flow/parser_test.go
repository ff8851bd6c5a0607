package flow

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParse_ConfigAndSteps(t *testing.T) {
	data := []byte(`name: Login flow
url: https://app.test/login
env:
  USER: ada
tags:
  - smoke
---
- type:
    selector: "#email"
    text: "${USER}@example.com"
- click: "#submit"
- verify:
    selector: ".banner"
    contains: "Welcome"
`)

	f, err := Parse(data, "login.yaml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if f.Config.Name != "Login flow" {
		t.Errorf("Name = %q, want %q", f.Config.Name, "Login flow")
	}
	if f.Config.URL != "https://app.test/login" {
		t.Errorf("URL = %q", f.Config.URL)
	}
	if f.Config.Env["USER"] != "ada" {
		t.Errorf("Env[USER] = %q, want ada", f.Config.Env["USER"])
	}
	if len(f.Config.Tags) != 1 || f.Config.Tags[0] != "smoke" {
		t.Errorf("Tags = %v", f.Config.Tags)
	}
	if len(f.Steps) != 3 {
		t.Fatalf("len(Steps) = %d, want 3", len(f.Steps))
	}

	typeStep, ok := f.Steps[0].(*TypeStep)
	if !ok {
		t.Fatalf("step 0 is %T, want *TypeStep", f.Steps[0])
	}
	if typeStep.Selector != "#email" || typeStep.Text != "${USER}@example.com" {
		t.Errorf("type step = %+v", typeStep)
	}

	click, ok := f.Steps[1].(*ClickStep)
	if !ok || click.Selector != "#submit" {
		t.Errorf("step 1 = %#v, want click on #submit", f.Steps[1])
	}

	verify, ok := f.Steps[2].(*VerifyStep)
	if !ok || verify.Selector != ".banner" || verify.Contains != "Welcome" {
		t.Errorf("step 2 = %#v", f.Steps[2])
	}
}

func TestParse_BareStepList(t *testing.T) {
	data := []byte(`- navigate: https://app.test
- wait: 500
- screenshot
`)

	f, err := Parse(data, "bare.yaml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if f.Config.Name != "" {
		t.Errorf("Config.Name = %q, want empty for a bare step list", f.Config.Name)
	}
	if len(f.Steps) != 3 {
		t.Fatalf("len(Steps) = %d, want 3", len(f.Steps))
	}

	nav := f.Steps[0].(*NavigateStep)
	if nav.URL != "https://app.test" {
		t.Errorf("URL = %q", nav.URL)
	}
	wait := f.Steps[1].(*WaitStep)
	if wait.Ms != 500 || wait.Selector != "" {
		t.Errorf("wait = %+v, want 500ms", wait)
	}
	if _, ok := f.Steps[2].(*ScreenshotStep); !ok {
		t.Errorf("step 2 is %T, want *ScreenshotStep", f.Steps[2])
	}
}

func TestParse_ScalarShorthands(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		check func(t *testing.T, s Step)
	}{
		{
			name: "wait for selector",
			yaml: `- wait: ".spinner"`,
			check: func(t *testing.T, s Step) {
				w := s.(*WaitStep)
				if w.Selector != ".spinner" || w.Ms != 0 {
					t.Errorf("wait = %+v", w)
				}
			},
		},
		{
			name: "screenshot with name",
			yaml: `- screenshot: after-login`,
			check: func(t *testing.T, s Step) {
				if got := s.(*ScreenshotStep).Name; got != "after-login" {
					t.Errorf("Name = %q", got)
				}
			},
		},
		{
			name: "evalScript expression",
			yaml: `- evalScript: "output.total = 3"`,
			check: func(t *testing.T, s Step) {
				if got := s.(*EvalScriptStep).Script; got != "output.total = 3" {
					t.Errorf("Script = %q", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.yaml), "short.yaml")
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(f.Steps) != 1 {
				t.Fatalf("len(Steps) = %d, want 1", len(f.Steps))
			}
			tt.check(t, f.Steps[0])
		})
	}
}

func TestParse_BlockScalarWithDocumentMarker(t *testing.T) {
	// A literal "---" line inside a block scalar is script text, not a
	// document separator.
	data := []byte(`name: Report builder
---
- evalScript: |
    const divider = [
      '---',
      'totals'
    ].join('\n');
    output.report = divider;
- screenshot: report
`)

	f, err := Parse(data, "report.yaml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if f.Config.Name != "Report builder" {
		t.Errorf("Name = %q", f.Config.Name)
	}
	if len(f.Steps) != 2 {
		t.Fatalf("len(Steps) = %d, want 2", len(f.Steps))
	}

	eval, ok := f.Steps[0].(*EvalScriptStep)
	if !ok {
		t.Fatalf("step 0 is %T, want *EvalScriptStep", f.Steps[0])
	}
	if !strings.Contains(eval.Script, "'---'") {
		t.Errorf("Script = %q, want the --- line kept in the script body", eval.Script)
	}
	if _, ok := f.Steps[1].(*ScreenshotStep); !ok {
		t.Errorf("step 1 is %T, want *ScreenshotStep", f.Steps[1])
	}
}

func TestParse_LeadingDocumentMarker(t *testing.T) {
	data := []byte(`---
- navigate: https://app.test
`)

	f, err := Parse(data, "lead.yaml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(f.Steps) != 1 {
		t.Fatalf("len(Steps) = %d, want 1: a leading --- is not a config document", len(f.Steps))
	}
	if f.Config.Name != "" {
		t.Errorf("Config.Name = %q, want empty", f.Config.Name)
	}
}

func TestParse_StepTimeout(t *testing.T) {
	data := []byte(`- click:
    selector: "#slow"
    timeout: 20000
`)
	f, err := Parse(data, "timeout.yaml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := f.Steps[0].Timeout(); got != 20*time.Second {
		t.Errorf("Timeout() = %v, want 20s", got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty file", ""},
		{"unknown step type", `- swipe: "#card"`},
		{"type without selector", "- type:\n    text: hello"},
		{"verify without selector", "- verify:\n    contains: hi"},
		{"step not a mapping", `- 42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), "bad.yaml")
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Errorf("error type = %T, want *ParseError", err)
			}
		})
	}
}

func TestFlow_Name(t *testing.T) {
	named := &Flow{SourcePath: "flows/login.yaml", Config: Config{Name: "Login"}}
	if got := named.Name(); got != "Login" {
		t.Errorf("Name() = %q, want Login", got)
	}

	unnamed := &Flow{SourcePath: "flows/checkout.yaml"}
	if got := unnamed.Name(); got != "checkout" {
		t.Errorf("Name() = %q, want checkout (file stem)", got)
	}
}
