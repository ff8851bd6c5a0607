package probe

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/probelab-dev/webprobe/pkg/browser"
	"github.com/probelab-dev/webprobe/pkg/collect"
	"github.com/probelab-dev/webprobe/pkg/core"
)

// Forms audits form structure in the serialized DOM: a form without any
// submit-capable control is flagged, and each input, textarea or select
// lacking both an associated label and an explicit accessible name is
// flagged individually.
func Forms(sess *browser.Session, store *collect.SignalStore, policy Policy) core.TestResult {
	const name = "Form structure check"

	html, err := sess.HTML(policy.EvalTimeout)
	if err != nil {
		return failedResult(name, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return failedResult(name, err)
	}

	labeledIDs := make(map[string]bool)
	doc.Find("label[for]").Each(func(_ int, label *goquery.Selection) {
		if id, ok := label.Attr("for"); ok && id != "" {
			labeledIDs[id] = true
		}
	})

	formsMissingSubmit := 0
	doc.Find("form").Each(func(i int, form *goquery.Selection) {
		if hasSubmitControl(form) {
			return
		}
		formsMissingSubmit++
		store.Append(core.NewSignal(core.SignalAccessibilityViolation,
			fmt.Sprintf("form #%d has no submit control", i+1)).
			WithLocator(formSelector(form, i)).
			WithDetail("check", "missing-submit").
			WithDetail("interactive", true))
	})

	unlabeled := 0
	doc.Find("input, textarea, select").Each(func(_ int, field *goquery.Selection) {
		if fieldType, _ := field.Attr("type"); isNonTextControl(fieldType) {
			return
		}
		if hasAccessibleName(field, labeledIDs) {
			return
		}
		unlabeled++
		store.Append(core.NewSignal(core.SignalAccessibilityViolation,
			fmt.Sprintf("form field without label or accessible name: %s", fieldSelector(field))).
			WithLocator(fieldSelector(field)).
			WithDetail("check", "missing-label").
			WithDetail("interactive", true))
	})

	return core.TestResult{
		Name:   name,
		Passed: formsMissingSubmit == 0 && unlabeled == 0,
		Details: map[string]interface{}{
			"forms":         doc.Find("form").Length(),
			"missingSubmit": formsMissingSubmit,
			"unlabeled":     unlabeled,
		},
	}
}

// hasSubmitControl reports whether the form contains a submit-capable
// control. A button without an explicit type defaults to submit.
func hasSubmitControl(form *goquery.Selection) bool {
	if form.Find(`input[type="submit"], input[type="image"], button[type="submit"]`).Length() > 0 {
		return true
	}
	found := false
	form.Find("button").Each(func(_ int, btn *goquery.Selection) {
		if t, ok := btn.Attr("type"); !ok || t == "" || t == "submit" {
			found = true
		}
	})
	return found
}

// isNonTextControl filters input types that need no label of their own.
func isNonTextControl(fieldType string) bool {
	switch strings.ToLower(fieldType) {
	case "hidden", "submit", "button", "reset", "image":
		return true
	}
	return false
}

// hasAccessibleName checks label association and the common accessible-name
// attributes.
func hasAccessibleName(field *goquery.Selection, labeledIDs map[string]bool) bool {
	if id, ok := field.Attr("id"); ok && labeledIDs[id] {
		return true
	}
	if field.ParentsFiltered("label").Length() > 0 {
		return true
	}
	for _, attr := range []string{"aria-label", "aria-labelledby", "title"} {
		if v, ok := field.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// fieldSelector builds a readable locator for a form field.
func fieldSelector(field *goquery.Selection) string {
	tag := goquery.NodeName(field)
	if id, ok := field.Attr("id"); ok && id != "" {
		return fmt.Sprintf("%s#%s", tag, id)
	}
	if name, ok := field.Attr("name"); ok && name != "" {
		return fmt.Sprintf("%s[name=%q]", tag, name)
	}
	return tag
}

// formSelector builds a readable locator for a form.
func formSelector(form *goquery.Selection, index int) string {
	if id, ok := form.Attr("id"); ok && id != "" {
		return "form#" + id
	}
	return fmt.Sprintf("form:nth-of-type(%d)", index+1)
}
