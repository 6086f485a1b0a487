package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/roach88/cminer/internal/config"
	"github.com/roach88/cminer/internal/miner"
	"github.com/roach88/cminer/internal/segment"
	"github.com/roach88/cminer/internal/store"
	"github.com/roach88/cminer/internal/testutil"
)

// Harness is the scenario execution engine.
// It mines with a silent logger and stores runs under a fixed run id.
type Harness struct {
	store  *store.Store
	runIDs store.RunIDGenerator
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Resolve thresholds (defaults plus scenario overrides)
// 2. Mine the trace, trace file or segments
// 3. Write the run to the store and read it back
// 4. Evaluate assertions against the stored report
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		runIDs: testutil.NewFixedRunIDGenerator(scenario.RunID),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	return h.run(context.Background(), scenario)
}

func (h *Harness) run(ctx context.Context, scenario *Scenario) (*Result, error) {
	cfg := scenario.Config.overrides().Apply(config.Default())

	m, err := miner.New(cfg, miner.WithLogger(h.logger))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	if err := h.mine(m, scenario); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	runID := h.runIDs.Generate()
	if _, _, err := h.store.WriteRun(ctx, runID, scenario.Name, m.Report()); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	rec, err := h.store.ReadRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	rules, err := h.store.ReadRules(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := NewResult()
	result.RunID = runID
	result.Report = rec.Report
	result.Rules = rules
	result.ResultHash = rec.ResultHash

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	h.logger.Info("scenario complete",
		"scenario", scenario.Name,
		"pass", result.Pass,
		"rules", len(rules))

	return result, nil
}

// mine feeds the scenario's input to m.
func (h *Harness) mine(m *miner.Miner, scenario *Scenario) error {
	if scenario.Segments != nil {
		_, err := m.MineSegments(scenario.Segments)
		return err
	}

	trace := scenario.Trace
	if scenario.TraceFile != "" {
		data, err := os.ReadFile(scenario.TraceFile)
		if err != nil {
			return fmt.Errorf("failed to read trace file: %w", err)
		}
		trace = string(data)
	}

	_, err := m.StartMining(segment.Normalize(trace))
	return err
}

// overrides converts the scenario's optional thresholds to config overrides.
func (c ScenarioConfig) overrides() config.Overrides {
	return config.Overrides{
		WindowSize:    c.WindowSize,
		MaxGap:        c.MaxGap,
		MinSupport:    c.MinSupport,
		MinConfidence: c.MinConfidence,
	}
}
