package ufdr

import (
	"strings"

	"github.com/ufdrinsight/ufdrinsight/internal/model"
)

// Candidate root tags tried for message documents, in order. The first tag
// that yields records wins; results are never merged across tags.
var messageTags = []string{"message", "msg", "sms", "mms"}

// Tag sets used by the generic scan to recognize message-shaped elements in
// documents that match none of the candidate tags.
var (
	genericTimestampTags = []string{"timestamp", "time", "date", "TimeStamp"}
	genericBodyTags      = []string{"body", "text", "content", "Body"}
)

var outgoingTokens = []string{"sent", "out", "1"}
var incomingTokens = []string{"recv", "in", "0"}

// parseMessages extracts canonical message records from one document.
// dropped counts elements that qualified as messages but carried a timestamp
// no known format accepts.
func parseMessages(doc *Node) (msgs []model.Message, dropped int) {
	for _, tag := range messageTags {
		for _, el := range doc.Iter(tag) {
			if m, ok := messageRecord(el); ok {
				msgs = append(msgs, m)
			} else {
				dropped++
			}
		}
		if len(msgs) > 0 {
			return msgs, dropped
		}
	}
	// Candidate-tag elements were already visited above; skipping them here
	// keeps their drops from being counted twice.
	for _, el := range doc.Iter("") {
		if isMessageTag(el.Tag()) {
			continue
		}
		if !hasAnyChild(el, genericTimestampTags) || !hasAnyChild(el, genericBodyTags) {
			continue
		}
		if m, ok := messageRecord(el); ok {
			msgs = append(msgs, m)
		} else {
			dropped++
		}
	}
	return msgs, dropped
}

func isMessageTag(tag string) bool {
	for _, t := range messageTags {
		if t == tag {
			return true
		}
	}
	return false
}

func hasAnyChild(n *Node, tags []string) bool {
	for _, tag := range tags {
		if n.Child(tag) != nil {
			return true
		}
	}
	return false
}

func messageRecord(el *Node) (model.Message, bool) {
	ts, ok := ParseTimestamp(extract(el, msgTimestampSources, ""))
	if !ok {
		return model.Message{}, false
	}
	return model.Message{
		ContactName: extract(el, msgContactSources, "Unknown"),
		Timestamp:   ts,
		Body:        extract(el, msgBodySources, ""),
		Direction:   normalizeDirection(extract(el, msgDirectionSources, model.DirectionUnknown)),
		Type:        extract(el, []fieldSource{{name: "type"}}, "SMS"),
	}, true
}

// normalizeDirection folds vendor direction tokens into incoming/outgoing by
// case-insensitive substring match; unrecognized tokens pass through
// lowercased.
func normalizeDirection(raw string) string {
	token := strings.ToLower(raw)
	for _, k := range outgoingTokens {
		if strings.Contains(token, k) {
			return model.DirectionOutgoing
		}
	}
	for _, k := range incomingTokens {
		if strings.Contains(token, k) {
			return model.DirectionIncoming
		}
	}
	return token
}
