package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/cminer/internal/config"
	"github.com/roach88/cminer/internal/miner"
)

const (
	markPass = "\u2713"
	markFail = "\u2717"
)

// ValidationResult holds config validation results.
type ValidationResult struct {
	Valid  bool          `json:"valid"`
	Config *miner.Config `json:"config,omitempty"`
	Errors []ConfigIssue `json:"errors,omitempty"`
}

// ConfigIssue is one problem found in a config file.
type ConfigIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a config file without mining",
		Long: `Load a YAML or CUE config file and check every threshold.

Unknown fields and out-of-range values are reported with their position
when the file format provides one.

Exit codes:
  0 - Config is valid
  1 - Config is invalid
  2 - Command error (file not found, unsupported format)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	if _, err := os.Stat(path); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("config file not found: %s", path), err)
	}

	cfg, err := config.Load(path)
	if errors.Is(err, config.ErrUnsupportedFormat) {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}
	if err != nil {
		return outputValidationErrors(formatter, configIssues(err))
	}

	formatter.VerboseLog("Loaded %s", path)

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Config: &cfg})
	}

	fmt.Fprintf(formatter.Writer, "%s Config valid\n", markPass)
	fmt.Fprintf(formatter.Writer, "  window_size:    %d\n", cfg.WindowSize)
	fmt.Fprintf(formatter.Writer, "  max_gap:        %d\n", cfg.MaxGap)
	fmt.Fprintf(formatter.Writer, "  min_support:    %d\n", cfg.MinSupport)
	fmt.Fprintf(formatter.Writer, "  min_confidence: %g\n", cfg.MinConfidence)
	return nil
}

// configIssues flattens a config load error into one issue per problem.
func configIssues(err error) []ConfigIssue {
	var loadErr *config.LoadError
	if errors.As(err, &loadErr) {
		issue := ConfigIssue{Message: loadErr.Message}
		if loadErr.Pos.IsValid() {
			issue.Line = loadErr.Pos.Line()
			issue.Column = loadErr.Pos.Column()
		}
		return []ConfigIssue{issue}
	}

	var issues []ConfigIssue
	for _, e := range flattenErrors(err) {
		var cfgErr *miner.ConfigError
		if errors.As(e, &cfgErr) {
			issues = append(issues, ConfigIssue{Field: cfgErr.Field, Message: cfgErr.Error()})
			continue
		}
		issues = append(issues, ConfigIssue{Message: e.Error()})
	}
	return issues
}

// flattenErrors expands errors.Join trees, including ones wrapped by
// fmt.Errorf, into their leaves.
func flattenErrors(err error) []error {
	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		var leaves []error
		for _, inner := range e.Unwrap() {
			leaves = append(leaves, flattenErrors(inner)...)
		}
		return leaves
	case interface{ Unwrap() error }:
		inner := e.Unwrap()
		if _, joined := inner.(interface{ Unwrap() []error }); joined {
			return flattenErrors(inner)
		}
	}
	return []error{err}
}

// outputValidationErrors outputs every issue and returns a validation failure.
func outputValidationErrors(formatter *OutputFormatter, issues []ConfigIssue) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: issues},
			Error: &CLIError{
				Code:    ErrCodeInvalidConfig,
				Message: issues[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))
	}

	fmt.Fprintf(formatter.Writer, "%s Validation failed\n", markFail)
	fmt.Fprintln(formatter.Writer)

	for _, issue := range issues {
		if issue.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d, column %d\n", issue.Line, issue.Column)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", ErrCodeInvalidConfig, issue.Message)
	}

	// Validation failures = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))
}
