// Package store provides SQLite-backed storage for cminer mining runs.
//
// Each run is stored as:
//   - runs: thresholds, segment count, fingerprints and a logical seq
//   - frequent_subsequences: every frequent subsequence with its support,
//     flagged when it is closed
//   - rules: the emitted association rules
//
// # Ordering
//
// Runs are ordered by seq INTEGER (assigned on write), never by timestamps.
// Every query that returns more than one row has an ORDER BY that makes the
// result deterministic.
//
// # Fingerprints
//
// config_hash and result_hash are computed with ir.ConfigHash and
// ir.ResultHash on write. VerifyRun recomputes the result hash from the
// stored rows to detect tampering or lossy round trips.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
