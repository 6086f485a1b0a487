package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/cminer/internal/ir"
	"github.com/roach88/cminer/internal/store"
)

// StoreOptions holds flags for commands that read a run database.
type StoreOptions struct {
	*RootOptions
	Database string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List persisted mining runs",
		Long: `List every run stored in a database by "cminer mine --db", oldest first.

Example:
  cminer history --db runs.db
  cminer history --db runs.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *StoreOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openExistingStore(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, "failed to open database", err)
	}
	defer st.Close()

	runs, err := st.ListRuns(commandContext(cmd))
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, "failed to list runs", err)
	}

	if opts.Format == "json" {
		return formatter.Success(runs)
	}

	w := formatter.Writer
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs.")
		return nil
	}
	fmt.Fprintf(w, "%-4s  %-36s  %8s  %8s  %6s  %5s  %s\n",
		"SEQ", "RUN", "SEGMENTS", "FREQUENT", "CLOSED", "RULES", "SOURCE")
	for _, r := range runs {
		fmt.Fprintf(w, "%-4d  %-36s  %8d  %8d  %6d  %5d  %s\n",
			r.Seq, r.ID, r.Segments, r.Frequent, r.Closed, r.Rules, r.Source)
	}
	return nil
}

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	StoreOptions
	Top    int
	Verify bool
}

// ShowResult is the output of the show command.
type ShowResult struct {
	RunID      string          `json:"run_id"`
	Seq        int64           `json:"seq"`
	Source     string          `json:"source"`
	Config     ir.ReportConfig `json:"config"`
	Segments   int             `json:"segments"`
	ResultHash string          `json:"result_hash"`
	Verified   *bool           `json:"verified,omitempty"`
	TotalRules int             `json:"total_rules"`
	Rules      []RuleView      `json:"rules"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{StoreOptions: StoreOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print a persisted run's rules",
		Long: `Print the thresholds and rules of one persisted run.

With --verify the run's result hash is recomputed from the stored rows;
a mismatch exits with code 1.

Example:
  cminer show --db runs.db 0192d3f4-...
  cminer show --db runs.db --top 5 --verify <run-id>`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().IntVar(&opts.Top, "top", 0, "print at most N rules (0 prints all)")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "recompute and check the result hash")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runShow(opts *ShowOptions, runID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := commandContext(cmd)

	st, err := openExistingStore(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, "failed to open database", err)
	}
	defer st.Close()

	rec, err := st.ReadRun(ctx, runID)
	if errors.Is(err, store.ErrRunNotFound) {
		return formatter.Fail(ExitCommandError, ErrCodeRunNotFound, fmt.Sprintf("run not found: %s", runID), err)
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, "failed to read run", err)
	}

	rules, err := st.ReadRules(ctx, runID)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, "failed to read rules", err)
	}

	result := ShowResult{
		RunID:      rec.ID,
		Seq:        rec.Seq,
		Source:     rec.Source,
		Config:     rec.Report.Config,
		Segments:   rec.Report.Segments,
		ResultHash: rec.ResultHash,
		TotalRules: len(rules),
		Rules:      reportRuleViews(rules, opts.Top),
	}

	if opts.Verify {
		v, err := st.VerifyRun(ctx, runID)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, "failed to verify run", err)
		}
		match := v.Match()
		result.Verified = &match
		if !match {
			return formatter.Fail(ExitFailure, ErrCodeStoreFailed,
				fmt.Sprintf("result hash mismatch: stored %s, computed %s", v.StoredHash, v.ComputedHash), nil)
		}
	}

	if opts.Format == "json" {
		return formatter.SuccessWithRun(rec.ID, result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Run %s (seq %d) from %s\n", result.RunID, result.Seq, result.Source)
	fmt.Fprintf(w, "Thresholds: window %d, max gap %d, min support %d, min confidence %s\n",
		result.Config.WindowSize, result.Config.MaxGap, result.Config.MinSupport,
		ir.FormatRatio(result.Config.MinConfidence))
	fmt.Fprintf(w, "Result hash: %s", result.ResultHash)
	if result.Verified != nil {
		fmt.Fprintf(w, " (%s verified)", markPass)
	}
	fmt.Fprintln(w)

	if result.TotalRules == 0 {
		fmt.Fprintln(w, "No rules.")
		return nil
	}
	fmt.Fprintf(w, "\nRules (%d of %d):\n", len(result.Rules), result.TotalRules)
	writeRuleTable(w, result.Rules)
	return nil
}

// openExistingStore opens path without creating a new database.
func openExistingStore(path string) (*store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database not found: %w", err)
	}
	return store.Open(path)
}

// commandContext returns the command's context or Background.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// reportRuleViews converts stored rules (already in output order) to their
// printed form, keeping at most top (all when top is 0).
func reportRuleViews(rules []ir.ReportRule, top int) []RuleView {
	if top > 0 && len(rules) > top {
		rules = rules[:top]
	}
	views := make([]RuleView, 0, len(rules))
	for _, r := range rules {
		views = append(views, RuleView{
			Rule:       r.History + "->" + r.Prediction,
			History:    r.History,
			Prediction: r.Prediction,
			Support:    r.Support,
			Confidence: ir.FormatRatio(r.Confidence),
		})
	}
	return views
}
