// Package sample generates a synthetic UFDR archive exhibiting the patterns
// the analytics pipeline looks for: a dominant contact, a volume spike, a
// quiet leading gap, and late-night traffic from an unidentified number.
package sample

import (
	"archive/zip"
	"bytes"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"
)

type contact struct {
	name  string
	phone string
}

var contacts = []contact{
	{"John Doe", "+1-555-0001"},
	{"Sarah Mitchell", "+1-555-0002"},
	{"Unknown", "+1-555-9999"},
	{"Mike Torres", "+1-555-0003"},
	{"Lisa Park", "+1-555-0004"},
}

var bodies = []string{
	"Ok", "Sure", "Call me", "On my way", "Got it", "Yes confirmed",
	"Don't text me here", "Delete this after", "Where are you?",
	"Tomorrow same time", "Not now", "Need to talk",
}

var (
	start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	end   = time.Date(2024, 2, 20, 0, 0, 0, 0, time.Local)
	spike = time.Date(2024, 2, 12, 0, 0, 0, 0, time.Local)
)

const totalMessages = 500

// Generate builds the archive bytes. The same seed always produces the same
// archive.
func Generate(seed int64) ([]byte, error) {
	rng := rand.New(rand.NewSource(seed))

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	members := []struct {
		name    string
		content string
	}{
		{"messages.xml", messagesXML(rng)},
		{"calls.xml", callsXML(rng)},
		{"contacts.xml", contactsXML()},
		{"metadata.xml", metadataXML()},
	}
	for _, m := range members {
		w, err := zw.Create(m.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", m.name, err)
		}
		if _, err := w.Write([]byte(m.content)); err != nil {
			return nil, fmt.Errorf("write %s: %w", m.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile generates the archive and writes it to path.
func WriteFile(path string, seed int64) error {
	data, err := Generate(seed)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func messagesXML(rng *rand.Rand) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<messages>\n")

	days := int(end.Sub(start) / (24 * time.Hour))
	var dates []time.Time
	for i := 0; i <= days; i++ {
		d := start.AddDate(0, 0, i)
		var n int
		switch {
		case d.Equal(spike):
			n = 60
		case i < 5:
			n = 0
		default:
			n = 3 + rng.Intn(7)
		}
		for j := 0; j < n; j++ {
			dates = append(dates, d)
		}
	}
	rng.Shuffle(len(dates), func(i, j int) { dates[i], dates[j] = dates[j], dates[i] })
	if len(dates) > totalMessages {
		dates = dates[:totalMessages]
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	msgWeights := []int{35, 20, 15, 15, 15}
	for i, d := range dates {
		c := contacts[weightedIndex(rng, msgWeights)]
		night := c.phone == "+1-555-9999" || d.Equal(spike)
		ts := randTime(rng, d, night)
		dirn := "incoming"
		sender, recipient := c.phone, "Subject"
		if rng.Intn(2) == 0 {
			dirn = "outgoing"
			sender, recipient = "Subject", c.phone
		}
		fmt.Fprintf(&b, `  <message>
    <id>%d</id>
    <contact_name>%s</contact_name>
    <sender>%s</sender>
    <recipient>%s</recipient>
    <timestamp>%s</timestamp>
    <body>%s</body>
    <type>SMS</type>
    <direction>%s</direction>
  </message>
`, i+1, c.name, sender, recipient, ts.Format("2006-01-02T15:04:05"), bodies[rng.Intn(len(bodies))], dirn)
	}
	b.WriteString("</messages>\n")
	return b.String()
}

func callsXML(rng *rand.Rand) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<calls>\n")

	days := int(end.Sub(start) / (24 * time.Hour))
	callWeights := []int{40, 20, 10, 15, 15}
	for i := 1; i <= 20; i++ {
		c := contacts[weightedIndex(rng, callWeights)]
		d := start.AddDate(0, 0, rng.Intn(days+1))
		ts := randTime(rng, d, false)
		dirn := "incoming"
		caller, recipient := c.phone, "Subject"
		if rng.Intn(2) == 0 {
			dirn = "outgoing"
			caller, recipient = "Subject", c.phone
		}
		fmt.Fprintf(&b, `  <call>
    <id>%d</id>
    <contact_name>%s</contact_name>
    <caller>%s</caller>
    <recipient>%s</recipient>
    <timestamp>%s</timestamp>
    <duration>%d</duration>
    <type>%s</type>
  </call>
`, i, c.name, caller, recipient, ts.Format("2006-01-02T15:04:05"), 30+rng.Intn(571), dirn)
	}
	b.WriteString("</calls>\n")
	return b.String()
}

func contactsXML() string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<contacts>\n")
	for i, c := range contacts {
		fmt.Fprintf(&b, "  <contact><id>%d</id><name>%s</name><phone>%s</phone></contact>\n", i+1, c.name, c.phone)
	}
	b.WriteString("</contacts>\n")
	return b.String()
}

func metadataXML() string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<metadata><device>
  <model>iPhone 13 Pro</model><os>iOS 16.2</os>
  <imei>354823110234567</imei>
  <extraction_date>2024-03-01</extraction_date>
  <case_id>CASE-2024-001</case_id>
</device></metadata>
`
}

// randTime places a timestamp within the day: daytime hours normally, with a
// coin-flip midnight window for night-flagged records.
func randTime(rng *rand.Rand, day time.Time, night bool) time.Time {
	var h int
	if night && rng.Intn(2) == 0 {
		h = rng.Intn(5)
	} else {
		h = 8 + rng.Intn(14)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, rng.Intn(60), rng.Intn(60), 0, day.Location())
}

func weightedIndex(rng *rand.Rand, weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	n := rng.Intn(total)
	for i, w := range weights {
		if n < w {
			return i
		}
		n -= w
	}
	return len(weights) - 1
}
