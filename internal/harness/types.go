package harness

import (
	"github.com/roach88/cminer/internal/ir"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if every assertion holds.
	Pass bool `json:"pass"`

	// RunID is the id the run was stored under.
	RunID string `json:"run_id"`

	// Report is the run as read back from the store.
	Report ir.Report `json:"report"`

	// Rules lists the report's rules in output order.
	Rules []ir.ReportRule `json:"rules"`

	// ResultHash is the stored fingerprint of the report.
	ResultHash string `json:"result_hash"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Rules:  []ir.ReportRule{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
