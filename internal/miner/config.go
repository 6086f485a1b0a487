package miner

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds the mining thresholds.
type Config struct {
	// WindowSize is the number of symbols per segment when cutting a trace.
	WindowSize int `yaml:"window_size" json:"window_size" validate:"gte=1"`

	// MaxGap is the number of symbols that may be skipped between two
	// consecutive symbols of a subsequence.
	MaxGap int `yaml:"max_gap" json:"max_gap" validate:"gte=0"`

	// MinSupport is the minimum number of matching suffixes for a
	// subsequence to be frequent.
	MinSupport int `yaml:"min_support" json:"min_support" validate:"gte=1"`

	// MinConfidence is the minimum confidence of an emitted rule.
	MinConfidence float64 `yaml:"min_confidence" json:"min_confidence" validate:"gte=0,lte=1"`
}

var configValidate = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their config key rather than the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks every threshold and returns all violations joined.
// Each violation is a *ConfigError matching ErrInvalidConfig.
func (c Config) Validate() error {
	err := configValidate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		constraint := fe.Tag()
		if fe.Param() != "" {
			constraint += "=" + fe.Param()
		}
		errs = append(errs, &ConfigError{
			Field:      fe.Field(),
			Value:      fe.Value(),
			Constraint: constraint,
		})
	}
	return errors.Join(errs...)
}
