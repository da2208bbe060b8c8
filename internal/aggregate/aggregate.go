// Package aggregate computes the deterministic forensic metrics report from
// canonical record sets. It is a pure function of its inputs; every record
// reaching it carries a valid timestamp.
package aggregate

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ufdrinsight/ufdrinsight/internal/model"
)

const dayFormat = "2006-01-02"

// nightEndHour bounds the late-night window [0, 4] inclusive.
const nightEndHour = 4

// excludedContact reports whether a contact name is the device-owner sentinel
// or otherwise unusable for uniqueness counting.
func excludedContact(name string) bool {
	switch strings.ToLower(name) {
	case "subject", "", "nan":
		return true
	}
	return false
}

// Aggregate produces the metrics report for one archive. With no messages it
// short-circuits to counts and metadata only.
func Aggregate(messages []model.Message, calls []model.Call, metadata model.DeviceMetadata) *model.MetricsReport {
	report := &model.MetricsReport{
		Metadata:      metadata,
		TotalMessages: len(messages),
		TotalCalls:    len(calls),
	}
	if len(messages) == 0 {
		return report
	}

	minTS, maxTS := messages[0].Timestamp, messages[0].Timestamp
	for _, m := range messages[1:] {
		if m.Timestamp.Before(minTS) {
			minTS = m.Timestamp
		}
		if m.Timestamp.After(maxTS) {
			maxTS = m.Timestamp
		}
	}
	report.DateRange = fmt.Sprintf("%s to %s", minTS.Format("Jan 02, 2006"), maxTS.Format("Jan 02, 2006"))
	report.DaysActive = int(maxTS.Sub(minTS)/(24*time.Hour)) + 1
	if report.DaysActive < 1 {
		report.DaysActive = 1
	}
	report.AvgDailyMessagesSpan = round1(float64(report.TotalMessages) / float64(report.DaysActive))

	report.UniqueContacts = countUniqueContacts(messages, calls)
	ranked := rankContacts(messages, calls, report.TotalMessages)
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}
	report.TopContacts = ranked
	if len(ranked) > 0 {
		top := ranked[0]
		report.TopContact = &top
	}

	aggregateHours(messages, report)
	aggregateDays(messages, report)

	edges := make([]model.NetworkEdge, 0, len(ranked))
	for _, c := range ranked {
		edges = append(edges, model.NetworkEdge{Source: model.Subject, Target: c.ContactName, Weight: c.Messages})
	}
	report.NetworkEdges = edges
	return report
}

func countUniqueContacts(messages []model.Message, calls []model.Call) int {
	seen := map[string]bool{}
	for _, m := range messages {
		if !excludedContact(m.ContactName) {
			seen[m.ContactName] = true
		}
	}
	for _, c := range calls {
		if !excludedContact(c.ContactName) {
			seen[c.ContactName] = true
		}
	}
	return len(seen)
}

// rankContacts groups messages by contact, left-joins call counts, and ranks
// by message count. Only the sentinel and empty names are excluded here; an
// explicit "nan" token still ranks (it only affects uniqueness counting).
func rankContacts(messages []model.Message, calls []model.Call, totalMessages int) []model.ContactStat {
	msgCounts := map[string]int{}
	for _, m := range messages {
		switch strings.ToLower(m.ContactName) {
		case "subject", "":
			continue
		}
		msgCounts[m.ContactName]++
	}
	callCounts := map[string]int{}
	for _, c := range calls {
		callCounts[c.ContactName]++
	}

	stats := make([]model.ContactStat, 0, len(msgCounts))
	denom := totalMessages
	if denom < 1 {
		denom = 1
	}
	for name, n := range msgCounts {
		stats = append(stats, model.ContactStat{
			ContactName: name,
			Messages:    n,
			Calls:       callCounts[name],
			MsgPct:      round1(float64(n) / float64(denom) * 100),
		})
	}
	// Message count descending; contact name ascending breaks ties so the
	// ranking is reproducible.
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Messages != stats[j].Messages {
			return stats[i].Messages > stats[j].Messages
		}
		return stats[i].ContactName < stats[j].ContactName
	})
	for i := range stats {
		stats[i].Rank = i + 1
		switch {
		case i == 0:
			stats[i].Priority = "HIGH"
		case i <= 2:
			stats[i].Priority = "MEDIUM"
		default:
			stats[i].Priority = "STANDARD"
		}
	}
	return stats
}

func aggregateHours(messages []model.Message, report *model.MetricsReport) {
	hourly := make(map[int]int, 24)
	for h := 0; h < 24; h++ {
		hourly[h] = 0
	}
	night := 0
	for _, m := range messages {
		h := m.Timestamp.Hour()
		hourly[h]++
		if h <= nightEndHour {
			night++
		}
	}
	report.HourlyDistribution = hourly
	report.NightMessageCount = night
	denom := report.TotalMessages
	if denom < 1 {
		denom = 1
	}
	report.NightActivityPct = round1(float64(night) / float64(denom) * 100)

	peak := 0
	for h := 1; h < 24; h++ {
		if hourly[h] > hourly[peak] {
			peak = h
		}
	}
	report.PeakHour = peak
	report.PeakHourLabel = fmt.Sprintf("%02d:00–%02d:00", peak, peak+1)
}

func aggregateDays(messages []model.Message, report *model.MetricsReport) {
	daily := map[string]int{}
	for _, m := range messages {
		daily[m.Timestamp.Format(dayFormat)]++
	}
	report.DailyVolume = daily

	dates := make([]string, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	sum := 0
	for _, n := range daily {
		sum += n
	}
	mean := float64(sum) / float64(len(daily))
	// Final reported average is the active-day mean; the span-based value
	// stays available as AvgDailyMessagesSpan.
	report.AvgDailyMessages = round1(mean)

	spikeDate, spikeCount := "", 0
	for _, d := range dates {
		if daily[d] > spikeCount {
			spikeDate, spikeCount = d, daily[d]
		}
	}
	report.SpikeDate = spikeDate
	report.SpikeCount = spikeCount
	report.SpikeIncreasePct = int(math.Round((float64(spikeCount)/math.Max(mean, 1) - 1) * 100))

	maxGap := 0
	var gapStart, gapEnd string
	for i := 1; i < len(dates); i++ {
		prev, _ := time.Parse(dayFormat, dates[i-1])
		cur, _ := time.Parse(dayFormat, dates[i])
		gap := int(cur.Sub(prev) / (24 * time.Hour))
		if gap > maxGap {
			maxGap, gapStart, gapEnd = gap, dates[i-1], dates[i]
		}
	}
	report.MaxGapDays = maxGap
	report.GapStart = gapStart
	report.GapEnd = gapEnd
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
