package miner

import (
	"fmt"
	"log/slog"
	"maps"

	"github.com/roach88/cminer/internal/ir"
	"github.com/roach88/cminer/internal/segment"
)

// Miner is one mining session. It owns the suffix index, the worklist and
// every result map; StartMining resets them, Clear releases them.
//
// Not safe for concurrent use.
type Miner struct {
	cfg    Config
	logger *slog.Logger

	segments []string
	index    *SuffixIndex
	work     *Worklist

	frequent     map[string]int
	tiers        map[int]map[string]int
	maxSeqLength int
	closed       map[string]int
	rules        map[string]Rule
	stats        Stats
}

// Option configures a Miner.
type Option func(*Miner)

// WithLogger sets the logger used for mining diagnostics.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Miner) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a Miner after validating cfg.
// Returns an error matching ErrInvalidConfig if any threshold is out of range.
func New(cfg Config, opts ...Option) (*Miner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Miner{
		cfg:      cfg,
		logger:   slog.Default(),
		index:    NewSuffixIndex(),
		work:     NewWorklist(),
		frequent: make(map[string]int),
		tiers:    make(map[int]map[string]int),
		closed:   make(map[string]int),
		rules:    make(map[string]Rule),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Config returns the thresholds the miner was created with.
func (m *Miner) Config() Config {
	return m.cfg
}

// StartMining cuts trace into WindowSize segments and mines them.
// See MineSegments.
func (m *Miner) StartMining(trace string) (map[string]Rule, error) {
	segments, err := segment.Cut(trace, m.cfg.WindowSize)
	if err != nil {
		return nil, fmt.Errorf("start mining: %w", err)
	}
	return m.MineSegments(segments)
}

// MineSegments runs seeding, DFS expansion, closed filtering and rule
// generation over already-cut segments and returns the rules keyed by
// RuleKey. State from a previous run is cleared first.
//
// Segments are compared in NFC form. A segment that is not valid UTF-8 is
// rejected with an error matching segment.ErrInvalidSymbol before any state
// changes. Zero segments yield an empty rule map and no error. Any other
// returned error is a *MiningError for a broken internal invariant.
func (m *Miner) MineSegments(segments []string) (map[string]Rule, error) {
	canonical := make([]string, len(segments))
	for i, seg := range segments {
		c, err := segment.Canonical(seg)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		canonical[i] = c
	}

	m.Clear()
	m.segments = append(m.segments, canonical...)
	m.stats.Segments = len(canonical)

	if len(segments) == 0 {
		m.logger.Info("no segments to mine")
		return map[string]Rule{}, nil
	}

	if err := m.seed(); err != nil {
		return nil, err
	}
	m.logger.Debug("seeding complete",
		"symbols", m.stats.SeedSymbols,
		"discarded", m.stats.SeedDiscarded,
		"pending", m.work.Len())

	if err := m.expand(); err != nil {
		return nil, err
	}
	if m.index.Len() != 0 {
		return nil, newInvariantError("", fmt.Sprintf("suffix index holds %d records after the worklist drained", m.index.Len()))
	}

	m.closed = ClosedSubsequences(m.tiers, m.maxSeqLength)
	m.rules = GenerateRules(m.closed, m.frequent, m.cfg.MinConfidence)

	m.stats.Frequent = len(m.frequent)
	m.stats.Closed = len(m.closed)
	m.stats.Rules = len(m.rules)
	m.stats.MaxSeqLength = m.maxSeqLength

	m.logger.Info("mining complete",
		"segments", m.stats.Segments,
		"frequent", m.stats.Frequent,
		"closed", m.stats.Closed,
		"rules", m.stats.Rules,
		"max_seq_length", m.maxSeqLength)

	return maps.Clone(m.rules), nil
}

// Clear resets all session state so the Miner can be reused.
func (m *Miner) Clear() {
	m.segments = m.segments[:0]
	m.index.Reset()
	m.work.Reset()
	m.frequent = make(map[string]int)
	m.tiers = make(map[int]map[string]int)
	m.maxSeqLength = 0
	m.closed = make(map[string]int)
	m.rules = make(map[string]Rule)
	m.stats = Stats{}
}

// FrequentSubsequences returns a copy of subsequence -> support for every
// frequent subsequence of the last run.
func (m *Miner) FrequentSubsequences() map[string]int {
	return maps.Clone(m.frequent)
}

// FrequentTiers returns a copy of the frequent subsequences grouped by length.
func (m *Miner) FrequentTiers() map[int]map[string]int {
	tiers := make(map[int]map[string]int, len(m.tiers))
	for length, tier := range m.tiers {
		tiers[length] = maps.Clone(tier)
	}
	return tiers
}

// MaxSeqLength returns the length of the longest frequent subsequence.
func (m *Miner) MaxSeqLength() int {
	return m.maxSeqLength
}

// ClosedSubsequences returns a copy of the closed frequent subsequences.
func (m *Miner) ClosedSubsequences() map[string]int {
	return maps.Clone(m.closed)
}

// Rules returns a copy of the rules of the last run.
func (m *Miner) Rules() map[string]Rule {
	return maps.Clone(m.rules)
}

// Segments returns a copy of the segments of the last run.
func (m *Miner) Segments() []string {
	return append([]string(nil), m.segments...)
}

// Stats returns the counters of the last run.
func (m *Miner) Stats() Stats {
	return m.stats
}

// Report returns the last run as a serializable report.
func (m *Miner) Report() ir.Report {
	rules := make(map[string]ir.ReportRule, len(m.rules))
	for key, r := range m.rules {
		rules[key] = ir.ReportRule{
			History:    r.History,
			Prediction: r.Prediction,
			Support:    r.Support,
			Confidence: r.Confidence,
		}
	}

	return ir.Report{
		Config: ir.ReportConfig{
			WindowSize:    m.cfg.WindowSize,
			MaxGap:        m.cfg.MaxGap,
			MinSupport:    m.cfg.MinSupport,
			MinConfidence: m.cfg.MinConfidence,
		},
		Segments:     len(m.segments),
		MaxSeqLength: m.maxSeqLength,
		Frequent:     maps.Clone(m.frequent),
		Closed:       maps.Clone(m.closed),
		Rules:        rules,
	}
}
