package model

// Severity grades a risk signal.
type Severity string

const (
	SeverityInfo   Severity = "INFO"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// RiskSignal is one rule-engine finding. Signals are emitted in rule
// evaluation order and never mutated after creation.
type RiskSignal struct {
	Flag     string   `json:"flag"`
	Severity Severity `json:"severity"`
	Icon     string   `json:"icon"`
	Detail   string   `json:"detail"`
}
