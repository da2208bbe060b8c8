package model

import "time"

// Direction classifies which way a message travelled relative to the device
// owner. Sources that encode direction in vendor-specific tokens are
// normalized at parse time; anything unrecognized is kept as-is, lowercased.
const (
	DirectionIncoming = "incoming"
	DirectionOutgoing = "outgoing"
	DirectionUnknown  = "unknown"
)

// Subject is the sentinel contact name for the device owner. It is excluded
// from unique-contact counts and from per-contact ranking.
const Subject = "Subject"

// Message is one canonical communication record recovered from an archive.
// Records with an unparseable timestamp never materialize.
type Message struct {
	ContactName string    `json:"contact_name"`
	Timestamp   time.Time `json:"timestamp"`
	Body        string    `json:"body"`
	Direction   string    `json:"direction"`
	Type        string    `json:"type"`
}

// Call is one canonical call record. Duration is seconds, 0 when the source
// value is absent or non-numeric.
type Call struct {
	ContactName string    `json:"contact_name"`
	Timestamp   time.Time `json:"timestamp"`
	Duration    int       `json:"duration"`
	Type        string    `json:"type"`
}

// Contact is an address-book entry. Informational only; aggregation does not
// consume it beyond presence.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// DeviceMetadata is the flattened device-info document. Last occurrence of a
// duplicate tag wins.
type DeviceMetadata map[string]string

// ParseResult bundles everything one archive yields. Errors are non-fatal
// per-file failures; DroppedRecords counts elements discarded because their
// timestamp matched no known format.
type ParseResult struct {
	Messages       []Message      `json:"messages"`
	Calls          []Call         `json:"calls"`
	Contacts       []Contact      `json:"contacts"`
	Metadata       DeviceMetadata `json:"metadata"`
	Errors         []string       `json:"errors,omitempty"`
	DroppedRecords int            `json:"dropped_records,omitempty"`
}
