package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/cminer/internal/ir"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// sampleReport returns a small hand-built report with rules that exercise
// every ReadRules ordering key.
func sampleReport() ir.Report {
	return ir.Report{
		Config: ir.ReportConfig{
			WindowSize:    4,
			MaxGap:        1,
			MinSupport:    2,
			MinConfidence: 0.5,
		},
		Segments:     3,
		MaxSeqLength: 3,
		Frequent: map[string]int{
			"A": 3, "B": 2, "C": 3,
			"AB": 2, "AC": 3, "BC": 2,
			"ABC": 2,
		},
		Closed: map[string]int{"AC": 3, "ABC": 2},
		Rules: map[string]ir.ReportRule{
			"A->BC": {History: "A", Prediction: "BC", Support: 2, Confidence: 2.0 / 3.0},
			"AB->C": {History: "AB", Prediction: "C", Support: 2, Confidence: 1},
			"A->C":  {History: "A", Prediction: "C", Support: 3, Confidence: 1},
		},
	}
}
