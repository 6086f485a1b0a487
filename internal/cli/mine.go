package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/cminer/internal/config"
	"github.com/roach88/cminer/internal/ir"
	"github.com/roach88/cminer/internal/metrics"
	"github.com/roach88/cminer/internal/miner"
	"github.com/roach88/cminer/internal/segment"
	"github.com/roach88/cminer/internal/store"
)

// MineOptions holds flags for the mine command.
type MineOptions struct {
	*RootOptions
	ConfigPath    string
	WindowSize    int
	MaxGap        int
	MinSupport    int
	MinConfidence float64
	Database      string
	MetricsOut    string
	Top           int

	// RunIDGenerator allows overriding the run id generator (for testing).
	// If nil, defaults to store.UUIDv7Generator.
	RunIDGenerator store.RunIDGenerator
}

// MineResult is the output of the mine command.
type MineResult struct {
	Source       string          `json:"source"`
	Config       ir.ReportConfig `json:"config"`
	Segments     int             `json:"segments"`
	Frequent     int             `json:"frequent"`
	Closed       int             `json:"closed"`
	MaxSeqLength int             `json:"max_seq_length"`
	ResultHash   string          `json:"result_hash"`
	TotalRules   int             `json:"total_rules"`
	Rules        []RuleView      `json:"rules"`
}

// RuleView is one rule as printed by the CLI.
type RuleView struct {
	Rule       string `json:"rule"`
	History    string `json:"history"`
	Prediction string `json:"prediction"`
	Support    int    `json:"support"`
	Confidence string `json:"confidence"`
}

// NewMineCommand creates the mine command.
func NewMineCommand(rootOpts *RootOptions) *cobra.Command {
	return newMineCommand(&MineOptions{RootOptions: rootOpts})
}

// newMineCommand binds the mine command's flags to opts.
func newMineCommand(opts *MineOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mine <trace-file>",
		Short: "Mine rules from a trace file",
		Long: `Mine closed frequent subsequences and association rules from a trace file.

The trace is read as one symbol per character; whitespace and newlines are
ignored. Thresholds come from --config (YAML or CUE) with individual flags
taking precedence, and default to window 32, gap 2, support 2, confidence 0.5.

Exit codes:
  0 - Mining completed
  1 - Mining failed
  2 - Command error (missing file, invalid thresholds, database error)

Examples:
  cminer mine trace.txt
  cminer mine trace.txt --window 16 --max-gap 1 --top 10
  cminer mine trace.txt --config cminer.cue --db runs.db
  cminer mine trace.txt --metrics-out /var/lib/node_exporter/cminer.prom --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMine(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file (.yaml, .yml or .cue)")
	cmd.Flags().IntVar(&opts.WindowSize, "window", config.DefaultWindowSize, "segment window size in symbols")
	cmd.Flags().IntVar(&opts.MaxGap, "max-gap", config.DefaultMaxGap, "maximum skipped symbols between consecutive elements")
	cmd.Flags().IntVar(&opts.MinSupport, "min-support", config.DefaultMinSupport, "minimum support")
	cmd.Flags().Float64Var(&opts.MinConfidence, "min-confidence", config.DefaultMinConfidence, "minimum rule confidence in [0,1]")
	cmd.Flags().StringVar(&opts.Database, "db", "", "persist the run to this SQLite database")
	cmd.Flags().StringVar(&opts.MetricsOut, "metrics-out", "", "write Prometheus metrics to this textfile")
	cmd.Flags().IntVar(&opts.Top, "top", 0, "print at most N rules (0 prints all)")

	return cmd
}

func runMine(opts *MineOptions, tracePath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd)

	if opts.Top < 0 {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("--top must be non-negative, got %d", opts.Top), nil)
	}

	cfg, err := resolveConfig(opts, cmd)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, "config file not found", err)
		}
		return formatter.Fail(ExitCommandError, ErrCodeInvalidConfig, "invalid configuration", err)
	}

	data, err := os.ReadFile(tracePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("trace file not found: %s", tracePath), err)
		}
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to read trace file", err)
	}

	m, err := miner.New(cfg, miner.WithLogger(logger))
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidConfig, "invalid configuration", err)
	}

	logger.Info("mining", "trace", tracePath, "window", cfg.WindowSize, "max_gap", cfg.MaxGap,
		"min_support", cfg.MinSupport, "min_confidence", cfg.MinConfidence)

	start := time.Now()
	rules, err := m.StartMining(segment.Normalize(string(data)))
	elapsed := time.Since(start)
	if errors.Is(err, segment.ErrInvalidSymbol) {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidTrace, fmt.Sprintf("invalid trace file: %s", tracePath), err)
	}
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeMiningFailed, "mining failed", err)
	}

	report := m.Report()
	resultHash, err := ir.ResultHash(report)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, "failed to fingerprint result", err)
	}

	var runID string
	if opts.Database != "" {
		runID, err = persistRun(commandContext(cmd), opts, tracePath, report)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, "failed to persist run", err)
		}
		logger.Info("run persisted", "db", opts.Database, "run_id", runID)
	}

	if opts.MetricsOut != "" {
		recorder := metrics.NewRecorder()
		recorder.Observe(m.Stats(), elapsed)
		if err := recorder.WriteTextfile(opts.MetricsOut); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to write metrics", err)
		}
		logger.Debug("metrics written", "path", opts.MetricsOut)
	}

	sorted := miner.SortedRules(rules)
	result := MineResult{
		Source:       tracePath,
		Config:       report.Config,
		Segments:     report.Segments,
		Frequent:     len(report.Frequent),
		Closed:       len(report.Closed),
		MaxSeqLength: report.MaxSeqLength,
		ResultHash:   resultHash,
		TotalRules:   len(sorted),
		Rules:        ruleViews(sorted, opts.Top),
	}

	if opts.Format == "json" {
		return formatter.SuccessWithRun(runID, result)
	}
	writeMineText(formatter.Writer, runID, result)
	return nil
}

// resolveConfig loads --config (or the defaults) and applies the threshold
// flags the user set explicitly.
func resolveConfig(opts *MineOptions, cmd *cobra.Command) (miner.Config, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		if _, err := os.Stat(opts.ConfigPath); err != nil {
			return miner.Config{}, err
		}
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return miner.Config{}, err
		}
		cfg = loaded
	}

	var o config.Overrides
	flags := cmd.Flags()
	if flags.Changed("window") {
		o.WindowSize = &opts.WindowSize
	}
	if flags.Changed("max-gap") {
		o.MaxGap = &opts.MaxGap
	}
	if flags.Changed("min-support") {
		o.MinSupport = &opts.MinSupport
	}
	if flags.Changed("min-confidence") {
		o.MinConfidence = &opts.MinConfidence
	}
	cfg = o.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		return miner.Config{}, err
	}
	return cfg, nil
}

// persistRun writes the report to opts.Database and returns the run id.
func persistRun(ctx context.Context, opts *MineOptions, source string, report ir.Report) (string, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return "", err
	}
	defer st.Close()

	gen := opts.RunIDGenerator
	if gen == nil {
		gen = store.UUIDv7Generator{}
	}
	runID := gen.Generate()

	if _, _, err := st.WriteRun(ctx, runID, source, report); err != nil {
		return "", err
	}
	return runID, nil
}

// ruleViews converts rules to their printed form, keeping at most top
// (all when top is 0).
func ruleViews(rules []miner.Rule, top int) []RuleView {
	if top > 0 && len(rules) > top {
		rules = rules[:top]
	}
	views := make([]RuleView, 0, len(rules))
	for _, r := range rules {
		views = append(views, RuleView{
			Rule:       r.Key(),
			History:    r.History,
			Prediction: r.Prediction,
			Support:    r.Support,
			Confidence: ir.FormatRatio(r.Confidence),
		})
	}
	return views
}

func writeMineText(w io.Writer, runID string, result MineResult) {
	fmt.Fprintf(w, "Mined %s: %d segment(s), %d frequent, %d closed, max length %d\n",
		result.Source, result.Segments, result.Frequent, result.Closed, result.MaxSeqLength)
	if runID != "" {
		fmt.Fprintf(w, "Run: %s\n", runID)
	}
	fmt.Fprintf(w, "Result hash: %s\n", result.ResultHash)

	if result.TotalRules == 0 {
		fmt.Fprintln(w, "No rules.")
		return
	}

	fmt.Fprintf(w, "\nRules (%d of %d):\n", len(result.Rules), result.TotalRules)
	writeRuleTable(w, result.Rules)
}

// writeRuleTable prints rules as aligned columns.
func writeRuleTable(w io.Writer, rules []RuleView) {
	width := len("RULE")
	for _, r := range rules {
		width = max(width, len([]rune(r.Rule)))
	}

	fmt.Fprintf(w, "  %-*s  %7s  %10s\n", width, "RULE", "SUPPORT", "CONFIDENCE")
	for _, r := range rules {
		pad := width - len([]rune(r.Rule))
		fmt.Fprintf(w, "  %s%s  %7d  %10s\n", r.Rule, strings.Repeat(" ", pad), r.Support, r.Confidence)
	}
}
