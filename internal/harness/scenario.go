package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines one mining scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Trace is an inline trace, cut into windows before mining.
	// Whitespace is stripped, so long traces can wrap.
	Trace string `yaml:"trace,omitempty"`

	// TraceFile is a trace file path, resolved relative to the scenario file.
	TraceFile string `yaml:"trace_file,omitempty"`

	// Segments are mined as given, skipping windowing.
	Segments []string `yaml:"segments,omitempty"`

	// Config overrides the default thresholds. Omitted fields keep defaults.
	Config ScenarioConfig `yaml:"config,omitempty"`

	// Assertions validate the stored report.
	Assertions []Assertion `yaml:"assertions"`

	// RunID is an optional fixed run id.
	// If empty, defaults to "test-run-default".
	RunID string `yaml:"run_id,omitempty"`
}

// ScenarioConfig holds optional threshold overrides.
type ScenarioConfig struct {
	WindowSize    *int     `yaml:"window_size,omitempty"`
	MaxGap        *int     `yaml:"max_gap,omitempty"`
	MinSupport    *int     `yaml:"min_support,omitempty"`
	MinConfidence *float64 `yaml:"min_confidence,omitempty"`
}

// Assertion validates one property of the mined report.
type Assertion struct {
	// Type specifies the assertion type:
	// - "frequent_contains": subsequence is frequent (with support, if given)
	// - "frequent_absent": subsequence is not frequent
	// - "closed_contains": subsequence is closed (with support, if given)
	// - "rule_contains": history->prediction was emitted (with support and
	//   confidence, if given)
	// - "rule_count": exactly count rules were emitted
	// - "max_length": the longest frequent subsequence has length symbols
	Type string `yaml:"type"`

	Subsequence string   `yaml:"subsequence,omitempty"`
	Support     *int     `yaml:"support,omitempty"`
	History     string   `yaml:"history,omitempty"`
	Prediction  string   `yaml:"prediction,omitempty"`
	Confidence  *float64 `yaml:"confidence,omitempty"`
	Count       *int     `yaml:"count,omitempty"`
	Length      *int     `yaml:"length,omitempty"`
}

// Assertion type constants.
const (
	AssertFrequentContains = "frequent_contains"
	AssertFrequentAbsent   = "frequent_absent"
	AssertClosedContains   = "closed_contains"
	AssertRuleContains     = "rule_contains"
	AssertRuleCount        = "rule_count"
	AssertMaxLength        = "max_length"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
//
// A relative trace_file is resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.TraceFile != "" && !filepath.IsAbs(scenario.TraceFile) {
		scenario.TraceFile = filepath.Join(filepath.Dir(path), scenario.TraceFile)
	}
	if scenario.TraceFile != "" {
		if _, err := os.Stat(scenario.TraceFile); err != nil {
			return nil, fmt.Errorf("invalid scenario: trace file not found: %s", scenario.TraceFile)
		}
	}

	return scenario, nil
}

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	inputs := 0
	if s.Trace != "" {
		inputs++
	}
	if s.TraceFile != "" {
		inputs++
	}
	if s.Segments != nil {
		inputs++
	}
	if inputs != 1 {
		return fmt.Errorf("exactly one of trace, trace_file or segments is required")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertFrequentContains, AssertFrequentAbsent, AssertClosedContains:
		if a.Subsequence == "" {
			return fmt.Errorf("assertions[%d]: subsequence is required for %s", index, a.Type)
		}
	case AssertRuleContains:
		if a.History == "" || a.Prediction == "" {
			return fmt.Errorf("assertions[%d]: history and prediction are required for rule_contains", index)
		}
	case AssertRuleCount:
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: non-negative count is required for rule_count", index)
		}
	case AssertMaxLength:
		if a.Length == nil || *a.Length < 0 {
			return fmt.Errorf("assertions[%d]: non-negative length is required for max_length", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
