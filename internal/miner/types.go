package miner

import (
	"fmt"
	"strconv"
)

// Symbol is one discrete access in a trace, e.g. a block identifier.
type Symbol = rune

// SuffixRecord is the bookkeeping for one frequent subsequence awaiting
// expansion.
//
// OccurTimes is the match count taken when the record was created. It may be
// larger than len(Suffixes): identical tails collapse into one set entry.
type SuffixRecord struct {
	Subsequence string
	OccurTimes  int
	Suffixes    map[string]struct{}
}

// newSuffixRecord creates a record, allocating an empty tail set when tails is nil.
func newSuffixRecord(subsequence string, occurTimes int, tails map[string]struct{}) *SuffixRecord {
	if tails == nil {
		tails = make(map[string]struct{})
	}
	return &SuffixRecord{
		Subsequence: subsequence,
		OccurTimes:  occurTimes,
		Suffixes:    tails,
	}
}

// Rule predicts that Prediction follows History.
//
// Support is the support of the closed subsequence History+Prediction.
// Confidence is Support divided by the support of History.
type Rule struct {
	History    string  `json:"history"`
	Prediction string  `json:"prediction"`
	Support    int     `json:"support"`
	Confidence float64 `json:"confidence"`
}

// Key returns the map key used for this rule in rule sets.
func (r Rule) Key() string {
	return RuleKey(r.History, r.Prediction)
}

// String renders the rule as {rule=H->P, support=N, confidence=C}.
func (r Rule) String() string {
	return fmt.Sprintf("{rule=%s, support=%d, confidence=%s}",
		r.Key(), r.Support, strconv.FormatFloat(r.Confidence, 'g', -1, 64))
}

// RuleKey joins a history and a prediction into a rule set key.
func RuleKey(history, prediction string) string {
	return history + "->" + prediction
}
