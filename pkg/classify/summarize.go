package classify

import "github.com/probelab-dev/webprobe/pkg/core"

// batchChecks are the DOM-probe element checks whose signals describe one
// class of violation each. Per-element signals keep traceability at capture
// time; here they fold into one issue record per class with a count, so a
// page with forty missing alt attributes yields one record, not forty.
var batchChecks = map[string]bool{
	"missing-alt":         true,
	"missing-label":       true,
	"missing-submit":      true,
	"small-text":          true,
	"broken-image":        true,
	"zero-area":           true,
	"horizontal-overflow": true,
	"broken-link":         true,
}

// ClassifyAll maps a signal sequence to issue records in first-seen order.
// Signals from batch checks collapse into a single record per check with
// the count and the individual locators carried in Details; all other
// signals map 1:1.
func ClassifyAll(signals []core.Signal) []core.IssueRecord {
	var records []core.IssueRecord
	batchIndex := make(map[string]int) // check name -> index into records

	for _, sig := range signals {
		check, _ := detailString(sig, "check")
		if !batchChecks[check] {
			records = append(records, Classify(sig))
			continue
		}

		if idx, ok := batchIndex[check]; ok {
			rec := &records[idx]
			rec.Details["count"] = rec.Details["count"].(int) + 1
			if sig.Locator != "" {
				rec.Details["locators"] = append(rec.Details["locators"].([]string), sig.Locator)
			}
			continue
		}

		rec := Classify(sig)
		rec.Details["count"] = 1
		locators := []string{}
		if sig.Locator != "" {
			locators = append(locators, sig.Locator)
		}
		rec.Details["locators"] = locators
		delete(rec.Details, "locator")
		delete(rec.Details, "message")
		batchIndex[check] = len(records)
		records = append(records, rec)
	}

	return records
}
