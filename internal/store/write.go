package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/cminer/internal/ir"
)

// RunRecord is one persisted mining run.
type RunRecord struct {
	ID         string
	Seq        int64
	Source     string // trace file or scenario name the run was mined from
	Report     ir.Report
	ConfigHash string
	ResultHash string
}

// WriteRun persists a mining report under id in a single transaction and
// returns the run's seq and whether it was newly inserted.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency: writing an existing id
// returns the existing seq and inserted=false without touching its rows.
// seq is one past the largest seq in the store.
func (s *Store) WriteRun(ctx context.Context, id, source string, report ir.Report) (seq int64, inserted bool, err error) {
	configHash, err := ir.ConfigHash(report.Config)
	if err != nil {
		return 0, false, fmt.Errorf("write run: %w", err)
	}
	resultHash, err := ir.ResultHash(report)
	if err != nil {
		return 0, false, fmt.Errorf("write run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return 0, false, fmt.Errorf("write run: next seq: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, source, window_size, max_gap, min_support, min_confidence,
		 segments, max_seq_length, config_hash, result_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		id,
		seq,
		source,
		report.Config.WindowSize,
		report.Config.MaxGap,
		report.Config.MinSupport,
		report.Config.MinConfidence,
		report.Segments,
		report.MaxSeqLength,
		configHash,
		resultHash,
	)
	if err != nil {
		return 0, false, fmt.Errorf("write run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("write run: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		if err := tx.QueryRowContext(ctx, `SELECT seq FROM runs WHERE id = ?`, id).Scan(&seq); err != nil {
			return 0, false, fmt.Errorf("write run: select existing: %w", err)
		}
		return seq, false, nil
	}

	if err := writeSubsequences(ctx, tx, id, report); err != nil {
		return 0, false, err
	}
	if err := writeRules(ctx, tx, id, report.Rules); err != nil {
		return 0, false, err
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("write run: commit: %w", err)
	}
	return seq, true, nil
}

func writeSubsequences(ctx context.Context, tx *sql.Tx, runID string, report ir.Report) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO frequent_subsequences (run_id, subsequence, length, support, closed)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write subsequences: prepare: %w", err)
	}
	defer stmt.Close()

	for sub, support := range report.Frequent {
		closed := 0
		if _, ok := report.Closed[sub]; ok {
			closed = 1
		}
		if _, err := stmt.ExecContext(ctx, runID, sub, len([]rune(sub)), support, closed); err != nil {
			return fmt.Errorf("write subsequence %q: %w", sub, err)
		}
	}
	return nil
}

func writeRules(ctx context.Context, tx *sql.Tx, runID string, rules map[string]ir.ReportRule) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO rules (run_id, rule_key, history, prediction, support, confidence)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write rules: prepare: %w", err)
	}
	defer stmt.Close()

	for key, r := range rules {
		if _, err := stmt.ExecContext(ctx, runID, key, r.History, r.Prediction, r.Support, r.Confidence); err != nil {
			return fmt.Errorf("write rule %q: %w", key, err)
		}
	}
	return nil
}
