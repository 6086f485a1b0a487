package miner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRules(t *testing.T) {
	closed := map[string]int{"A": 3, "ABC": 2}
	frequent := map[string]int{"A": 3, "AB": 2, "ABC": 2}

	rules := GenerateRules(closed, frequent, 0)
	require.Len(t, rules, 2)

	assert.Equal(t, Rule{History: "A", Prediction: "BC", Support: 2, Confidence: 2.0 / 3.0}, rules["A->BC"])
	assert.Equal(t, Rule{History: "AB", Prediction: "C", Support: 2, Confidence: 1}, rules["AB->C"])
}

func TestGenerateRules_MinConfidence(t *testing.T) {
	closed := map[string]int{"ABC": 2}
	frequent := map[string]int{"A": 4, "AB": 2, "ABC": 2}

	rules := GenerateRules(closed, frequent, 0.6)
	require.Len(t, rules, 1)
	assert.Contains(t, rules, "AB->C")

	rules = GenerateRules(closed, frequent, 0.5)
	assert.Len(t, rules, 2, "confidence exactly at the threshold is admitted")
}

func TestGenerateRules_HistoryMustBeFrequent(t *testing.T) {
	closed := map[string]int{"XY": 2}
	frequent := map[string]int{"XY": 2}

	assert.Empty(t, GenerateRules(closed, frequent, 0))
}

func TestGenerateRules_SingleSymbolsYieldNothing(t *testing.T) {
	closed := map[string]int{"A": 3, "B": 2}
	frequent := map[string]int{"A": 3, "B": 2}

	assert.Empty(t, GenerateRules(closed, frequent, 0))
}

func TestSortedRules(t *testing.T) {
	rules := map[string]Rule{
		"A->B":  {History: "A", Prediction: "B", Support: 2, Confidence: 0.5},
		"C->D":  {History: "C", Prediction: "D", Support: 4, Confidence: 0.8},
		"AB->C": {History: "AB", Prediction: "C", Support: 2, Confidence: 1},
		"A->C":  {History: "A", Prediction: "C", Support: 2, Confidence: 0.5},
	}

	sorted := SortedRules(rules)
	keys := make([]string, len(sorted))
	for i, r := range sorted {
		keys[i] = r.Key()
	}
	assert.Equal(t, []string{"C->D", "AB->C", "A->B", "A->C"}, keys)
}

func TestRuleString(t *testing.T) {
	r := Rule{History: "AB", Prediction: "C", Support: 2, Confidence: 0.5}
	assert.Equal(t, "{rule=AB->C, support=2, confidence=0.5}", r.String())
	assert.Equal(t, "AB->C", r.Key())
}
