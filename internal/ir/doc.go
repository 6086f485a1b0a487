// Package ir provides the canonical, serializable form of a mining run.
//
// This package imports nothing internal. The miner, store, harness and CLI
// all exchange results through ir.Report, and every byte-level comparison
// (golden files, result fingerprints, persisted run hashes) goes through
// MarshalCanonical.
//
// Key design constraints:
//   - NO float values in canonical JSON; ratios are fixed 6-digit decimal strings
//   - Object keys sorted by UTF-16 code units (RFC 8785)
//   - Strings NFC normalized at the serialization boundary
//   - All JSON tags use snake_case
package ir
