// Package config loads mining thresholds from YAML or CUE files.
//
// YAML files are decoded strictly: unknown keys are rejected so a typo like
// "min_suport" fails loudly instead of silently keeping the default. CUE
// files are unified with an embedded schema (schema.cue), which supplies
// defaults and range constraints and reports violations with file
// positions. Either way the result is validated with miner.Config.Validate.
package config
