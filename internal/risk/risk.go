// Package risk evaluates investigative risk rules over a metrics report.
package risk

import (
	"fmt"
	"strings"

	"github.com/ufdrinsight/ufdrinsight/internal/model"
)

// Rule thresholds.
const (
	dominantContactPct = 25
	spikeMediumPct     = 200
	spikeHighPct       = 300
	nightMediumPct     = 15
	nightHighPct       = 30
	gapMediumDays      = 5
)

const (
	iconHigh   = "🔴"
	iconMedium = "🟡"
	iconInfo   = "🔵"
)

// Detect evaluates the five rules in fixed order; every rule is checked
// independently. With no findings a single INFO signal is emitted instead.
func Detect(report *model.MetricsReport) []model.RiskSignal {
	var signals []model.RiskSignal

	if report.TopContact != nil && report.TopContact.MsgPct >= dominantContactPct {
		top := report.TopContact
		signals = append(signals, model.RiskSignal{
			Flag:     "Dominant Contact Relationship",
			Severity: model.SeverityHigh,
			Icon:     iconHigh,
			Detail: fmt.Sprintf("%s accounts for %v%% of all messages (%d messages). "+
				"High concentration indicates a primary relationship.",
				top.ContactName, top.MsgPct, top.Messages),
		})
	}

	if report.SpikeIncreasePct >= spikeMediumPct {
		sev, icon := model.SeverityMedium, iconMedium
		if report.SpikeIncreasePct >= spikeHighPct {
			sev, icon = model.SeverityHigh, iconHigh
		}
		signals = append(signals, model.RiskSignal{
			Flag:     "Abnormal Activity Spike",
			Severity: sev,
			Icon:     icon,
			Detail: fmt.Sprintf("Message volume on %s was %d%% above the daily average "+
				"(%d messages vs avg %v/day). This spike may correspond to a critical event.",
				report.SpikeDate, report.SpikeIncreasePct, report.SpikeCount, report.AvgDailyMessages),
		})
	}

	if report.NightActivityPct >= nightMediumPct {
		sev, icon := model.SeverityMedium, iconMedium
		if report.NightActivityPct >= nightHighPct {
			sev, icon = model.SeverityHigh, iconHigh
		}
		signals = append(signals, model.RiskSignal{
			Flag:     "Elevated Late-Night Communication",
			Severity: sev,
			Icon:     icon,
			Detail: fmt.Sprintf("%v%% of messages (%d total) sent 12AM–4AM. "+
				"Pattern may indicate urgency, secrecy, or coordination outside normal hours.",
				report.NightActivityPct, report.NightMessageCount),
		})
	}

	if u := firstUnidentified(report.TopContacts); u != nil {
		signals = append(signals, model.RiskSignal{
			Flag:     "Unidentified High-Frequency Contact",
			Severity: model.SeverityHigh,
			Icon:     iconHigh,
			Detail: fmt.Sprintf("Unidentified contact %q in top contacts with %d messages. "+
				"Unidentified numbers in primary communication roles are a key investigative priority.",
				u.ContactName, u.Messages),
		})
	}

	if report.MaxGapDays >= gapMediumDays {
		signals = append(signals, model.RiskSignal{
			Flag:     "Suspicious Communication Gap",
			Severity: model.SeverityMedium,
			Icon:     iconMedium,
			Detail: fmt.Sprintf("No communication detected for %d days (%s to %s). "+
				"Possible alternative device, deliberate blackout, or device seizure.",
				report.MaxGapDays, report.GapStart, report.GapEnd),
		})
	}

	if len(signals) == 0 {
		signals = append(signals, model.RiskSignal{
			Flag:     "No High-Priority Signals Detected",
			Severity: model.SeverityInfo,
			Icon:     iconInfo,
			Detail:   "Communication patterns appear within normal parameters.",
		})
	}
	return signals
}

// firstUnidentified returns the first of the top five contacts whose name
// contains "unknown" (case-insensitive) or starts with "+".
func firstUnidentified(contacts []model.ContactStat) *model.ContactStat {
	limit := len(contacts)
	if limit > 5 {
		limit = 5
	}
	for i := 0; i < limit; i++ {
		name := contacts[i].ContactName
		if strings.Contains(strings.ToLower(name), "unknown") || strings.HasPrefix(name, "+") {
			return &contacts[i]
		}
	}
	return nil
}
