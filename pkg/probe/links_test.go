package probe

import (
	"reflect"
	"testing"
)

func TestSameOriginLinks(t *testing.T) {
	html := `<html><body>
		<a href="/about">About</a>
		<a href="/about">About again</a>
		<a href="pricing">Pricing</a>
		<a href="https://app.test/docs#install">Docs</a>
		<a href="https://other.test/external">External</a>
		<a href="http://app.test/insecure">Scheme change</a>
		<a href="#top">Top</a>
		<a href="javascript:void(0)">JS</a>
		<a href="mailto:hi@app.test">Mail</a>
		<a href="https://app.test/">Self</a>
	</body></html>`

	links, err := sameOriginLinks(html, "https://app.test/")
	if err != nil {
		t.Fatalf("sameOriginLinks() error = %v", err)
	}

	want := []string{
		"https://app.test/about",
		"https://app.test/pricing",
		"https://app.test/docs",
	}
	if !reflect.DeepEqual(links, want) {
		t.Errorf("links = %v, want %v", links, want)
	}
}

func TestSameOriginLinks_RelativeResolution(t *testing.T) {
	html := `<a href="../up">Up</a><a href="./here">Here</a>`

	links, err := sameOriginLinks(html, "https://app.test/docs/guide/")
	if err != nil {
		t.Fatalf("sameOriginLinks() error = %v", err)
	}

	want := []string{
		"https://app.test/docs/up",
		"https://app.test/docs/guide/here",
	}
	if !reflect.DeepEqual(links, want) {
		t.Errorf("links = %v, want %v", links, want)
	}
}

func TestSameOriginLinks_Empty(t *testing.T) {
	links, err := sameOriginLinks("<html><body>no links</body></html>", "https://app.test/")
	if err != nil {
		t.Fatalf("sameOriginLinks() error = %v", err)
	}
	if len(links) != 0 {
		t.Errorf("links = %v, want none", links)
	}
}
