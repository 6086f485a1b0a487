package ir

import (
	"strconv"
)

// Report is the serializable result of one mining run.
type Report struct {
	Config       ReportConfig          `json:"config"`
	Segments     int                   `json:"segments"`
	MaxSeqLength int                   `json:"max_seq_length"`
	Frequent     map[string]int        `json:"frequent"`
	Closed       map[string]int        `json:"closed"`
	Rules        map[string]ReportRule `json:"rules"`
}

// ReportConfig records the thresholds a report was mined with.
type ReportConfig struct {
	WindowSize    int     `json:"window_size"`
	MaxGap        int     `json:"max_gap"`
	MinSupport    int     `json:"min_support"`
	MinConfidence float64 `json:"min_confidence"`
}

// ReportRule is one association rule in a report.
type ReportRule struct {
	History    string  `json:"history"`
	Prediction string  `json:"prediction"`
	Support    int     `json:"support"`
	Confidence float64 `json:"confidence"`
}

// FormatRatio renders a ratio in [0,1] as a fixed 6-digit decimal string.
// Canonical JSON forbids floats, so confidences travel as strings.
func FormatRatio(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

// ToIRObject converts the thresholds to an IRObject.
func (c ReportConfig) ToIRObject() IRObject {
	return IRObject{
		"window_size":    IRInt(c.WindowSize),
		"max_gap":        IRInt(c.MaxGap),
		"min_support":    IRInt(c.MinSupport),
		"min_confidence": IRString(FormatRatio(c.MinConfidence)),
	}
}

// ToIRObject converts the rule to an IRObject.
func (r ReportRule) ToIRObject() IRObject {
	return IRObject{
		"history":    IRString(r.History),
		"prediction": IRString(r.Prediction),
		"support":    IRInt(r.Support),
		"confidence": IRString(FormatRatio(r.Confidence)),
	}
}

// ToIRObject converts the report to an IRObject for canonical serialization.
// Rules are keyed by their rule key, so ordering is fixed by MarshalCanonical.
func (r Report) ToIRObject() IRObject {
	rules := make(IRObject, len(r.Rules))
	for key, rule := range r.Rules {
		rules[key] = rule.ToIRObject()
	}

	return IRObject{
		"config":         r.Config.ToIRObject(),
		"segments":       IRInt(r.Segments),
		"max_seq_length": IRInt(r.MaxSeqLength),
		"frequent":       CountsObject(r.Frequent),
		"closed":         CountsObject(r.Closed),
		"rules":          rules,
	}
}

// MarshalCanonical returns the report's canonical JSON.
func (r Report) MarshalCanonical() ([]byte, error) {
	return MarshalCanonical(r.ToIRObject())
}
