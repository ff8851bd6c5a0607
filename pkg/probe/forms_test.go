package probe

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestHasSubmitControl(t *testing.T) {
	tests := []struct {
		name string
		html string
		want bool
	}{
		{"input submit", `<form><input type="submit"></form>`, true},
		{"button submit", `<form><button type="submit">Go</button></form>`, true},
		{"typeless button defaults to submit", `<form><button>Go</button></form>`, true},
		{"image input", `<form><input type="image" src="go.png"></form>`, true},
		{"only a text field", `<form><input type="text"></form>`, false},
		{"button type=button does not submit", `<form><button type="button">Go</button></form>`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := doc(t, tt.html).Find("form").First()
			if got := hasSubmitControl(form); got != tt.want {
				t.Errorf("hasSubmitControl() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasAccessibleName(t *testing.T) {
	tests := []struct {
		name string
		html string
		want bool
	}{
		{"label for", `<label for="email">Email</label><input id="email">`, true},
		{"wrapping label", `<label>Email <input name="email"></label>`, true},
		{"aria-label", `<input aria-label="Search">`, true},
		{"aria-labelledby", `<input aria-labelledby="hdr">`, true},
		{"title attribute", `<input title="Quantity">`, true},
		{"nothing", `<input name="email">`, false},
		{"blank aria-label", `<input aria-label="  ">`, false},
		{"label for different id", `<label for="other">X</label><input id="email">`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := doc(t, tt.html)
			labeledIDs := map[string]bool{}
			d.Find("label[for]").Each(func(_ int, label *goquery.Selection) {
				if id, ok := label.Attr("for"); ok {
					labeledIDs[id] = true
				}
			})
			field := d.Find("input").First()
			if got := hasAccessibleName(field, labeledIDs); got != tt.want {
				t.Errorf("hasAccessibleName() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldSelector(t *testing.T) {
	tests := []struct {
		html string
		want string
	}{
		{`<input id="email">`, "input#email"},
		{`<input name="qty">`, `input[name="qty"]`},
		{`<textarea></textarea>`, "textarea"},
	}

	for _, tt := range tests {
		field := doc(t, tt.html).Find("input, textarea").First()
		if got := fieldSelector(field); got != tt.want {
			t.Errorf("fieldSelector(%s) = %q, want %q", tt.html, got, tt.want)
		}
	}
}

func TestIsNonTextControl(t *testing.T) {
	for _, typ := range []string{"hidden", "submit", "button", "reset", "image", "SUBMIT"} {
		if !isNonTextControl(typ) {
			t.Errorf("isNonTextControl(%q) = false, want true", typ)
		}
	}
	for _, typ := range []string{"", "text", "email", "password", "checkbox"} {
		if isNonTextControl(typ) {
			t.Errorf("isNonTextControl(%q) = true, want false", typ)
		}
	}
}
