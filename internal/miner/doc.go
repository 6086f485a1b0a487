// Package miner implements frequent-subsequence mining over a segmented
// symbol trace and derives predictive association rules from the result.
//
// A trace of block accesses is cut into fixed-size segments. The miner counts
// support per segment, grows candidate subsequences one symbol at a time and
// keeps those that occur in at least MinSupport suffixes, with at most MaxGap
// symbols skipped between consecutive matches.
//
// ARCHITECTURE:
//
// Explicit-Stack DFS:
// Mining is a depth-first traversal driven by a LIFO Worklist of suffix
// records. There is no call recursion, so long pattern chains never grow the
// goroutine stack.
//
// Mining Flow:
//  1. Segments are produced by the segment package (or supplied directly)
//  2. seed() builds one SuffixRecord per symbol that clears MinSupport
//  3. expand() pops records until the Worklist is empty, pushing extensions
//  4. ClosedSubsequences() drops sequences absorbed by an equal-support superset
//  5. GenerateRules() splits closed sequences into history/prediction rules
//
// Single-Writer State:
// The SuffixIndex, Worklist and result maps belong to one Miner and are only
// touched by the goroutine running StartMining. A Miner is not safe for
// concurrent use.
//
// Determinism:
// Each subsequence is derived from exactly one parent (its prefix), so the
// mined sets do not depend on traversal order. Symbols are still visited in
// sorted order to keep debug logs and stats reproducible.
package miner
