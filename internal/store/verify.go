package store

import (
	"context"
	"fmt"

	"github.com/roach88/cminer/internal/ir"
)

// VerifyResult describes whether a stored run still matches its fingerprint.
type VerifyResult struct {
	RunID        string
	StoredHash   string
	ComputedHash string
}

// Match reports whether the recomputed hash equals the stored one.
func (v VerifyResult) Match() bool {
	return v.StoredHash == v.ComputedHash
}

// VerifyRun reads a run back and recomputes its result hash from the stored
// rows. A mismatch means the rows were edited after the run was written.
func (s *Store) VerifyRun(ctx context.Context, id string) (VerifyResult, error) {
	rec, err := s.ReadRun(ctx, id)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("verify run: %w", err)
	}

	computed, err := ir.ResultHash(rec.Report)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("verify run: %w", err)
	}

	return VerifyResult{
		RunID:        id,
		StoredHash:   rec.ResultHash,
		ComputedHash: computed,
	}, nil
}
