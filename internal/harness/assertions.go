package harness

import (
	"fmt"
	"math"
	"strings"

	"github.com/roach88/cminer/internal/ir"
)

// confidenceTolerance absorbs float formatting in scenario files.
const confidenceTolerance = 1e-6

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// EvaluateAssertions checks every assertion against the result's report and
// returns one message per failure, in assertion order.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		if err := evaluateAssertion(result.Report, a); err != nil {
			failures = append(failures, fmt.Sprintf("assertion %d: %v", i, err))
		}
	}
	return failures
}

func evaluateAssertion(report ir.Report, a Assertion) error {
	switch a.Type {
	case AssertFrequentContains:
		return assertContains(a.Type, report.Frequent, a)
	case AssertClosedContains:
		return assertContains(a.Type, report.Closed, a)
	case AssertFrequentAbsent:
		return assertFrequentAbsent(report.Frequent, a)
	case AssertRuleContains:
		return assertRuleContains(report.Rules, a)
	case AssertRuleCount:
		return assertRuleCount(report.Rules, a)
	case AssertMaxLength:
		return assertMaxLength(report.MaxSeqLength, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertContains checks that subsequence is present in set, with the given
// support when one is specified.
func assertContains(kind string, set map[string]int, a Assertion) error {
	support, ok := set[a.Subsequence]
	if !ok {
		return &AssertionError{
			Type:     kind,
			Expected: fmt.Sprintf("subsequence %q", a.Subsequence),
			Actual:   "not found",
		}
	}
	if a.Support != nil && *a.Support != support {
		return &AssertionError{
			Type:     kind,
			Expected: fmt.Sprintf("subsequence %q with support %d", a.Subsequence, *a.Support),
			Actual:   fmt.Sprintf("support %d", support),
		}
	}
	return nil
}

func assertFrequentAbsent(frequent map[string]int, a Assertion) error {
	if support, ok := frequent[a.Subsequence]; ok {
		return &AssertionError{
			Type:     AssertFrequentAbsent,
			Expected: fmt.Sprintf("subsequence %q not frequent", a.Subsequence),
			Actual:   fmt.Sprintf("frequent with support %d", support),
		}
	}
	return nil
}

func assertRuleContains(rules map[string]ir.ReportRule, a Assertion) error {
	key := a.History + "->" + a.Prediction
	rule, ok := rules[key]
	if !ok {
		return &AssertionError{
			Type:     AssertRuleContains,
			Expected: fmt.Sprintf("rule %s", key),
			Actual:   "not emitted",
		}
	}
	if a.Support != nil && *a.Support != rule.Support {
		return &AssertionError{
			Type:     AssertRuleContains,
			Expected: fmt.Sprintf("rule %s with support %d", key, *a.Support),
			Actual:   fmt.Sprintf("support %d", rule.Support),
		}
	}
	if a.Confidence != nil && math.Abs(*a.Confidence-rule.Confidence) > confidenceTolerance {
		return &AssertionError{
			Type:     AssertRuleContains,
			Expected: fmt.Sprintf("rule %s with confidence %s", key, ir.FormatRatio(*a.Confidence)),
			Actual:   fmt.Sprintf("confidence %s", ir.FormatRatio(rule.Confidence)),
		}
	}
	return nil
}

func assertRuleCount(rules map[string]ir.ReportRule, a Assertion) error {
	if len(rules) != *a.Count {
		return &AssertionError{
			Type:     AssertRuleCount,
			Expected: fmt.Sprintf("%d rules", *a.Count),
			Actual:   fmt.Sprintf("%d rules", len(rules)),
		}
	}
	return nil
}

func assertMaxLength(maxSeqLength int, a Assertion) error {
	if maxSeqLength != *a.Length {
		return &AssertionError{
			Type:     AssertMaxLength,
			Expected: fmt.Sprintf("max length %d", *a.Length),
			Actual:   fmt.Sprintf("max length %d", maxSeqLength),
		}
	}
	return nil
}
