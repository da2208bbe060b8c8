package ufdr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, xml string) *Node {
	t.Helper()
	doc, err := decodeXML([]byte(xml))
	require.NoError(t, err)
	return doc
}

func TestParseMessages_CandidateTags(t *testing.T) {
	doc := mustDecode(t, `<root>
		<sms>
			<timestamp>2024-01-15T10:30:00</timestamp>
			<address>+1-555-0001</address>
			<body>hello</body>
		</sms>
		<sms>
			<timestamp>2024-01-15T11:00:00</timestamp>
			<body>again</body>
		</sms>
	</root>`)

	msgs, dropped := parseMessages(doc)
	require.Len(t, msgs, 2)
	assert.Zero(t, dropped)
	assert.Equal(t, "+1-555-0001", msgs[0].ContactName)
	assert.Equal(t, "hello", msgs[0].Body)
	assert.Equal(t, "Unknown", msgs[1].ContactName)
	assert.Equal(t, "SMS", msgs[0].Type)
}

func TestParseMessages_FirstTagWins(t *testing.T) {
	// <message> yields records, so <sms> elements must be ignored.
	doc := mustDecode(t, `<root>
		<message><timestamp>2024-01-15T10:30:00</timestamp><body>a</body></message>
		<sms><timestamp>2024-01-16T10:30:00</timestamp><body>b</body></sms>
	</root>`)

	msgs, _ := parseMessages(doc)
	require.Len(t, msgs, 1)
	assert.Equal(t, "a", msgs[0].Body)
}

func TestParseMessages_GenericScan(t *testing.T) {
	doc := mustDecode(t, `<export>
		<entry>
			<TimeStamp>2024-01-15 09:00:00</TimeStamp>
			<body>morning</body>
			<party>Sarah</party>
		</entry>
		<entry>
			<TimeStamp>2024-01-15 09:05:00</TimeStamp>
			<Body>shouty</Body>
		</entry>
		<entry>
			<note>no timestamp or body here</note>
		</entry>
	</export>`)

	msgs, dropped := parseMessages(doc)
	require.Len(t, msgs, 2)
	assert.Zero(t, dropped)
	assert.Equal(t, "Sarah", msgs[0].ContactName)
	assert.Equal(t, "morning", msgs[0].Body)
	// <Body> qualifies an element for the scan but is not part of the body
	// extraction chain, so the second record carries an empty body.
	assert.Equal(t, "", msgs[1].Body)
}

func TestParseMessages_GenericScanAfterCandidateDrops(t *testing.T) {
	// Every candidate-tag element is dropped, but the record in the
	// non-candidate <entry> element must still be recovered by the scan.
	doc := mustDecode(t, `<export>
		<message><timestamp>garbage</timestamp><body>lost</body></message>
		<entry><timestamp>2024-01-15T10:30:00</timestamp><body>kept</body></entry>
	</export>`)

	msgs, dropped := parseMessages(doc)
	require.Len(t, msgs, 1)
	assert.Equal(t, "kept", msgs[0].Body)
	assert.Equal(t, 1, dropped)
}

func TestParseMessages_AttributeFallback(t *testing.T) {
	doc := mustDecode(t, `<root>
		<sms date="2024-01-15T10:30:00" address="+1-555-7777" type="1">
			<body>attr style</body>
		</sms>
	</root>`)

	msgs, _ := parseMessages(doc)
	require.Len(t, msgs, 1)
	assert.Equal(t, "+1-555-7777", msgs[0].ContactName)
	assert.Equal(t, "outgoing", msgs[0].Direction)
}

func TestParseMessages_ChildBeatsAttribute(t *testing.T) {
	doc := mustDecode(t, `<root>
		<message address="attr-contact">
			<timestamp>2024-01-15T10:30:00</timestamp>
			<address>child-contact</address>
			<body>x</body>
		</message>
	</root>`)

	msgs, _ := parseMessages(doc)
	require.Len(t, msgs, 1)
	assert.Equal(t, "child-contact", msgs[0].ContactName)
}

func TestParseMessages_DroppedTimestamps(t *testing.T) {
	doc := mustDecode(t, `<root>
		<message><timestamp>garbage</timestamp><body>lost</body></message>
		<message><timestamp>2024-01-15T10:30:00</timestamp><body>kept</body></message>
	</root>`)

	msgs, dropped := parseMessages(doc)
	require.Len(t, msgs, 1)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, "kept", msgs[0].Body)
}

func TestNormalizeDirection(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Sent", "outgoing"},
		{"OUT", "outgoing"},
		{"1", "outgoing"},
		{"Recv", "incoming"},
		{"received", "received"},
		{"incoming", "incoming"},
		{"0", "incoming"},
		{"draft", "draft"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeDirection(tt.raw), "raw=%q", tt.raw)
	}
}

func TestParseCalls(t *testing.T) {
	doc := mustDecode(t, `<calls>
		<call>
			<timestamp>2024-01-15T10:30:00</timestamp>
			<caller>+1-555-0001</caller>
			<duration>120</duration>
			<type>incoming</type>
		</call>
		<call>
			<timestamp>2024-01-16T10:30:00</timestamp>
			<number>+1-555-0002</number>
			<duration>not-a-number</duration>
		</call>
		<call>
			<timestamp>bogus</timestamp>
			<caller>dropped</caller>
		</call>
	</calls>`)

	calls, dropped := parseCalls(doc)
	require.Len(t, calls, 2)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, "+1-555-0001", calls[0].ContactName)
	assert.Equal(t, 120, calls[0].Duration)
	assert.Equal(t, 0, calls[1].Duration)
	assert.Equal(t, "unknown", calls[1].Type)
}

func TestParseContacts(t *testing.T) {
	doc := mustDecode(t, `<contacts>
		<contact><n>John</n><phone>+1-555-0001</phone></contact>
		<contact><name>Sarah</name><number>+1-555-0002</number></contact>
		<contact><email>nobody@example.com</email></contact>
	</contacts>`)

	contacts := parseContacts(doc)
	require.Len(t, contacts, 3)
	assert.Equal(t, "John", contacts[0].Name)
	assert.Equal(t, "Sarah", contacts[1].Name)
	assert.Equal(t, "+1-555-0002", contacts[1].Phone)
	assert.Equal(t, "?", contacts[2].Name)
	assert.Equal(t, "", contacts[2].Phone)
}

func TestParseMetadata(t *testing.T) {
	doc := mustDecode(t, `<metadata>
		<device>
			<model>iPhone 13 Pro</model>
			<os>iOS 16.2</os>
		</device>
		<case_id>CASE-2024-001</case_id>
		<model>overridden</model>
	</metadata>`)

	meta := parseMetadata(doc)
	assert.Equal(t, "iOS 16.2", meta["os"])
	assert.Equal(t, "CASE-2024-001", meta["case_id"])
	// Top-level children overwrite device children for duplicate tags.
	assert.Equal(t, "overridden", meta["model"])
}
