package miner

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is matched by every configuration error returned from
// Config.Validate and New.
var ErrInvalidConfig = errors.New("miner: invalid configuration")

// ConfigError describes one rejected configuration field.
type ConfigError struct {
	// Field is the config key (yaml name), e.g. "min_support".
	Field string

	// Value is the rejected value.
	Value any

	// Constraint is the violated rule, e.g. "gte=1".
	Constraint string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: must satisfy %s", e.Field, e.Value, e.Constraint)
}

// Is makes errors.Is(err, ErrInvalidConfig) true for every ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// MiningError represents a failure detected while mining.
//
// Mining itself has no expected failure modes; a MiningError always means a
// broken internal invariant and is never recovered from.
type MiningError struct {
	// Code identifies the error category.
	Code MiningErrorCode

	// Message is a human-readable description.
	Message string

	// Subsequence is the record being processed when the error occurred.
	Subsequence string
}

// MiningErrorCode categorizes mining errors.
type MiningErrorCode string

const (
	// ErrCodeInvariant indicates the suffix index and worklist disagree.
	ErrCodeInvariant MiningErrorCode = "INVARIANT_VIOLATION"
)

// Error implements the error interface.
func (e *MiningError) Error() string {
	if e.Subsequence != "" {
		return fmt.Sprintf("%s: %s (subsequence=%q)", e.Code, e.Message, e.Subsequence)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvariantError returns true if the error is an internal invariant violation.
// Uses errors.As to handle wrapped errors.
func IsInvariantError(err error) bool {
	var me *MiningError
	if errors.As(err, &me) {
		return me.Code == ErrCodeInvariant
	}
	return false
}

// newInvariantError creates a MiningError for a broken invariant.
func newInvariantError(subsequence, message string) *MiningError {
	return &MiningError{
		Code:        ErrCodeInvariant,
		Message:     message,
		Subsequence: subsequence,
	}
}
