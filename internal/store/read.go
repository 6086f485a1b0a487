package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/cminer/internal/ir"
)

// ErrRunNotFound is returned when no run has the requested id.
var ErrRunNotFound = errors.New("store: run not found")

// RunSummary is one row of the run history.
type RunSummary struct {
	ID           string `json:"id"`
	Seq          int64  `json:"seq"`
	Source       string `json:"source"`
	Segments     int    `json:"segments"`
	MaxSeqLength int    `json:"max_seq_length"`
	Frequent     int    `json:"frequent"`
	Closed       int    `json:"closed"`
	Rules        int    `json:"rules"`
	ResultHash   string `json:"result_hash"`
}

// ReadRun reconstructs a persisted run, including its full report.
// Returns an error matching ErrRunNotFound if id is unknown.
func (s *Store) ReadRun(ctx context.Context, id string) (RunRecord, error) {
	rec := RunRecord{ID: id}
	cfg := &rec.Report.Config

	err := s.db.QueryRowContext(ctx, `
		SELECT seq, source, window_size, max_gap, min_support, min_confidence,
		       segments, max_seq_length, config_hash, result_hash
		FROM runs
		WHERE id = ?
	`, id).Scan(
		&rec.Seq,
		&rec.Source,
		&cfg.WindowSize,
		&cfg.MaxGap,
		&cfg.MinSupport,
		&cfg.MinConfidence,
		&rec.Report.Segments,
		&rec.Report.MaxSeqLength,
		&rec.ConfigHash,
		&rec.ResultHash,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, fmt.Errorf("read run: %w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return RunRecord{}, fmt.Errorf("read run: %w", err)
	}

	rec.Report.Frequent, rec.Report.Closed, err = s.readSubsequences(ctx, id)
	if err != nil {
		return RunRecord{}, err
	}

	rules, err := s.ReadRules(ctx, id)
	if err != nil {
		return RunRecord{}, err
	}
	rec.Report.Rules = make(map[string]ir.ReportRule, len(rules))
	for _, r := range rules {
		rec.Report.Rules[r.History+"->"+r.Prediction] = r
	}

	return rec, nil
}

// readSubsequences returns the frequent and closed maps of a run.
func (s *Store) readSubsequences(ctx context.Context, runID string) (frequent, closed map[string]int, err error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT subsequence, support, closed
		FROM frequent_subsequences
		WHERE run_id = ?
		ORDER BY length ASC, subsequence COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("query subsequences: %w", err)
	}
	defer rows.Close()

	frequent = make(map[string]int)
	closed = make(map[string]int)
	for rows.Next() {
		var (
			sub      string
			support  int
			isClosed bool
		)
		if err := rows.Scan(&sub, &support, &isClosed); err != nil {
			return nil, nil, fmt.Errorf("scan subsequence: %w", err)
		}
		frequent[sub] = support
		if isClosed {
			closed[sub] = support
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate subsequences: %w", err)
	}

	return frequent, closed, nil
}

// ReadRules returns the rules of a run ordered by support DESC,
// confidence DESC, rule_key ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if the run has no rules or does not exist.
func (s *Store) ReadRules(ctx context.Context, runID string) ([]ir.ReportRule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT history, prediction, support, confidence
		FROM rules
		WHERE run_id = ?
		ORDER BY support DESC, confidence DESC, rule_key COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query rules: %w", err)
	}
	defer rows.Close()

	rules := []ir.ReportRule{}
	for rows.Next() {
		var r ir.ReportRule
		if err := rows.Scan(&r.History, &r.Prediction, &r.Support, &r.Confidence); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rules: %w", err)
	}

	return rules, nil
}

// ListRuns returns a summary of every run ordered by seq ASC.
//
// Returns an empty slice (not nil) for an empty store.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.seq, r.source, r.segments, r.max_seq_length, r.result_hash,
		       (SELECT COUNT(*) FROM frequent_subsequences f WHERE f.run_id = r.id),
		       (SELECT COUNT(*) FROM frequent_subsequences f WHERE f.run_id = r.id AND f.closed = 1),
		       (SELECT COUNT(*) FROM rules x WHERE x.run_id = r.id)
		FROM runs r
		ORDER BY r.seq ASC, r.id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		var sum RunSummary
		if err := rows.Scan(
			&sum.ID,
			&sum.Seq,
			&sum.Source,
			&sum.Segments,
			&sum.MaxSeqLength,
			&sum.ResultHash,
			&sum.Frequent,
			&sum.Closed,
			&sum.Rules,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}
