package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/roach88/cminer/internal/miner"
)

//go:embed schema.cue
var schemaCUE string

// Default thresholds, mirrored by the defaults in schema.cue.
const (
	DefaultWindowSize    = 32
	DefaultMaxGap        = 2
	DefaultMinSupport    = 2
	DefaultMinConfidence = 0.5
)

// ErrUnsupportedFormat is returned for config files that are neither YAML nor CUE.
var ErrUnsupportedFormat = errors.New("config: unsupported file format")

// LoadError describes a config file that could not be read or parsed.
type LoadError struct {
	Path    string
	Pos     token.Pos // CUE position if available
	Message string
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Default returns the default thresholds.
func Default() miner.Config {
	return miner.Config{
		WindowSize:    DefaultWindowSize,
		MaxGap:        DefaultMaxGap,
		MinSupport:    DefaultMinSupport,
		MinConfidence: DefaultMinConfidence,
	}
}

// Load reads a config file, choosing the decoder by extension
// (.yaml, .yml or .cue), and validates the result.
func Load(path string) (miner.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return miner.Config{}, &LoadError{Path: path, Message: fmt.Sprintf("failed to read config file: %v", err)}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(path, data)
	case ".cue":
		return ParseCUE(path, data)
	default:
		return miner.Config{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ParseYAML decodes YAML config data over the defaults.
// Unknown fields are rejected. An empty document yields the defaults.
func ParseYAML(path string, data []byte) (miner.Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return miner.Config{}, &LoadError{Path: path, Message: fmt.Sprintf("failed to parse YAML: %v", err)}
	}

	if err := cfg.Validate(); err != nil {
		return miner.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseCUE unifies CUE config data with the #Config schema and decodes it.
// Schema violations are reported as a *LoadError carrying the CUE position.
func ParseCUE(path string, data []byte) (miner.Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return miner.Config{}, fmt.Errorf("compile config schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return miner.Config{}, cueLoadError(path, err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))

	// Report unknown keys by name before unification buries them in a
	// generic closedness error.
	iter, err := value.Fields()
	if err != nil {
		return miner.Config{}, cueLoadError(path, err)
	}
	for iter.Next() {
		label := iter.Selector().String()
		if !def.LookupPath(cue.MakePath(cue.Str(label))).Exists() {
			return miner.Config{}, &LoadError{
				Path:    path,
				Pos:     iter.Value().Pos(),
				Message: fmt.Sprintf("unknown field %q", label),
			}
		}
	}

	unified := def.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return miner.Config{}, cueLoadError(path, err)
	}

	var cfg miner.Config
	if err := unified.Decode(&cfg); err != nil {
		return miner.Config{}, cueLoadError(path, err)
	}

	if err := cfg.Validate(); err != nil {
		return miner.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// cueLoadError converts a CUE error to a LoadError positioned at its first
// reported location.
func cueLoadError(path string, err error) *LoadError {
	loadErr := &LoadError{Path: path, Message: err.Error()}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return loadErr
	}

	format, args := errs[0].Msg()
	loadErr.Message = fmt.Sprintf(format, args...)
	for _, pos := range cueerrors.Positions(errs[0]) {
		if pos.Filename() == path {
			loadErr.Pos = pos
			break
		}
	}
	return loadErr
}

// Overrides holds command-line values that replace loaded thresholds.
// Nil fields leave the loaded value untouched.
type Overrides struct {
	WindowSize    *int
	MaxGap        *int
	MinSupport    *int
	MinConfidence *float64
}

// Apply returns cfg with every non-nil override applied.
func (o Overrides) Apply(cfg miner.Config) miner.Config {
	if o.WindowSize != nil {
		cfg.WindowSize = *o.WindowSize
	}
	if o.MaxGap != nil {
		cfg.MaxGap = *o.MaxGap
	}
	if o.MinSupport != nil {
		cfg.MinSupport = *o.MinSupport
	}
	if o.MinConfidence != nil {
		cfg.MinConfidence = *o.MinConfidence
	}
	return cfg
}
