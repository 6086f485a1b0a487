package miner

import (
	"cmp"
	"slices"
)

// GenerateRules derives association rules from closed subsequences.
//
// Each closed subsequence of two or more symbols is split at every internal
// boundary into a history prefix and a prediction suffix. A split becomes a
// rule when the history is frequent and
//
//	confidence = support(closed) / support(history) >= minConfidence
//
// When several closed subsequences produce the same history/prediction pair,
// the rule keeps the largest support.
func GenerateRules(closed, frequent map[string]int, minConfidence float64) map[string]Rule {
	rules := make(map[string]Rule)

	for seq, support := range closed {
		symbols := []rune(seq)
		if len(symbols) < 2 {
			continue
		}

		for i := 1; i < len(symbols); i++ {
			history := string(symbols[:i])
			historySupport, ok := frequent[history]
			if !ok || historySupport <= 0 {
				continue
			}

			prediction := string(symbols[i:])
			key := RuleKey(history, prediction)
			if existing, ok := rules[key]; ok && existing.Support >= support {
				continue
			}

			confidence := float64(support) / float64(historySupport)
			if confidence < minConfidence {
				continue
			}

			rules[key] = Rule{
				History:    history,
				Prediction: prediction,
				Support:    support,
				Confidence: confidence,
			}
		}
	}

	return rules
}

// SortedRules returns the rules ordered by support (desc), confidence (desc)
// and key (asc).
func SortedRules(rules map[string]Rule) []Rule {
	sorted := make([]Rule, 0, len(rules))
	for _, r := range rules {
		sorted = append(sorted, r)
	}
	slices.SortFunc(sorted, func(a, b Rule) int {
		if c := cmp.Compare(b.Support, a.Support); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Confidence, a.Confidence); c != 0 {
			return c
		}
		return cmp.Compare(a.Key(), b.Key())
	})
	return sorted
}
