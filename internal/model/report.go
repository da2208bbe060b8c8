package model

// ContactStat is one ranked entry of the per-contact aggregation.
type ContactStat struct {
	ContactName string  `json:"contact_name"`
	Messages    int     `json:"messages"`
	Calls       int     `json:"calls"`
	MsgPct      float64 `json:"msg_pct"`
	Rank        int     `json:"rank"`
	Priority    string  `json:"priority"` // HIGH / MEDIUM / STANDARD
}

// NetworkEdge is one edge of the subject-centric communication graph.
// Weight is the exact integer message count.
type NetworkEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// MetricsReport is the deterministic aggregation output for one archive.
// When no messages were recovered only Metadata and the two totals are set.
//
// AvgDailyMessages is the mean over active days only (days with at least one
// message); AvgDailyMessagesSpan divides by the full calendar span instead.
// Spike detection is defined against the active-day mean.
type MetricsReport struct {
	Metadata      DeviceMetadata `json:"metadata"`
	TotalMessages int            `json:"total_messages"`
	TotalCalls    int            `json:"total_calls"`

	DateRange            string  `json:"date_range,omitempty"`
	DaysActive           int     `json:"days_active,omitempty"`
	AvgDailyMessages     float64 `json:"avg_daily_messages,omitempty"`
	AvgDailyMessagesSpan float64 `json:"avg_daily_messages_span,omitempty"`

	UniqueContacts int           `json:"unique_contacts,omitempty"`
	TopContacts    []ContactStat `json:"top_contacts,omitempty"`
	TopContact     *ContactStat  `json:"top_contact,omitempty"`

	NightActivityPct  float64 `json:"night_activity_pct"`
	NightMessageCount int     `json:"night_message_count"`

	HourlyDistribution map[int]int `json:"hourly_distribution,omitempty"`
	PeakHour           int         `json:"peak_hour"`
	PeakHourLabel      string      `json:"peak_hour_label,omitempty"`

	DailyVolume      map[string]int `json:"daily_volume,omitempty"`
	SpikeDate        string         `json:"spike_date,omitempty"`
	SpikeCount       int            `json:"spike_count,omitempty"`
	SpikeIncreasePct int            `json:"spike_increase_pct"`

	MaxGapDays int    `json:"max_gap_days"`
	GapStart   string `json:"gap_start,omitempty"`
	GapEnd     string `json:"gap_end,omitempty"`

	NetworkEdges []NetworkEdge `json:"network_edges,omitempty"`
}
