package ufdr

import (
	"github.com/ufdrinsight/ufdrinsight/internal/model"
	"github.com/ufdrinsight/ufdrinsight/pkg/util"
)

var callTags = []string{"call", "phonecall", "Call"}

// parseCalls mirrors message parsing for call documents: first candidate tag
// with records wins, unparseable timestamps drop the element.
func parseCalls(doc *Node) (calls []model.Call, dropped int) {
	for _, tag := range callTags {
		for _, el := range doc.Iter(tag) {
			ts, ok := ParseTimestamp(extract(el, callTimestampSources, ""))
			if !ok {
				dropped++
				continue
			}
			calls = append(calls, model.Call{
				ContactName: extract(el, callContactSources, "Unknown"),
				Timestamp:   ts,
				Duration:    util.MustAnyToInt(extract(el, []fieldSource{{name: "duration"}}, "0")),
				Type:        extract(el, []fieldSource{{name: "type"}}, "unknown"),
			})
		}
		if len(calls) > 0 {
			break
		}
	}
	return calls, dropped
}
