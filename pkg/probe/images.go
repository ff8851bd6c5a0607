package probe

import (
	"fmt"

	"github.com/probelab-dev/webprobe/pkg/browser"
	"github.com/probelab-dev/webprobe/pkg/collect"
	"github.com/probelab-dev/webprobe/pkg/core"
)

// imageInfo mirrors the per-image record produced in the page.
type imageInfo struct {
	Src      string  `json:"src"`
	Alt      *string `json:"alt"` // nil when the attribute is absent
	Complete bool    `json:"complete"`
	Height   int     `json:"height"`
}

const imagesExpr = `
Array.from(document.images).map(img => ({
	src: img.currentSrc || img.src,
	alt: img.getAttribute('alt'),
	complete: img.complete,
	height: img.naturalHeight
}))`

// Images checks every image on the page: an image is broken if its load did
// not complete or its intrinsic height is zero, and inaccessible if it has
// no alt attribute. One signal per offending element keeps traceability;
// the classifier summarizes per class afterwards.
func Images(sess *browser.Session, store *collect.SignalStore, policy Policy) core.TestResult {
	const name = "Broken images check"

	var images []imageInfo
	if err := sess.Evaluate(imagesExpr, &images, policy.EvalTimeout); err != nil {
		return failedResult(name, err)
	}

	broken := 0
	missingAlt := 0
	for _, img := range images {
		if !img.Complete || img.Height == 0 {
			broken++
			store.Append(core.NewSignal(core.SignalLayoutViolation,
				fmt.Sprintf("broken image: %s", img.Src)).
				WithLocator(img.Src).
				WithDetail("check", "broken-image"))
		}
		if img.Alt == nil {
			missingAlt++
			store.Append(core.NewSignal(core.SignalAccessibilityViolation,
				fmt.Sprintf("image missing alt attribute: %s", img.Src)).
				WithLocator(img.Src).
				WithDetail("check", "missing-alt").
				WithDetail("interactive", false))
		}
	}

	return core.TestResult{
		Name:   name,
		Passed: broken == 0,
		Details: map[string]interface{}{
			"totalImages": len(images),
			"broken":      broken,
			"missingAlt":  missingAlt,
		},
	}
}
