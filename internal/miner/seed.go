package miner

import (
	"unicode/utf8"
)

// seed builds the length-1 suffix records.
//
// Support for a symbol is the number of segments it appears in. Only the
// first occurrence in each segment contributes a tail; an occurrence at the
// last position still counts but has no tail.
//
// Records that clear MinSupport are indexed and pushed in descending symbol
// order so the smallest symbol is expanded first.
func (m *Miner) seed() error {
	counts := make(map[Symbol]int)
	tails := make(map[Symbol]map[string]struct{})

	for _, segment := range m.segments {
		seen := make(map[Symbol]struct{})
		for bi := 0; bi < len(segment); {
			sym, size := utf8.DecodeRuneInString(segment[bi:])
			next := bi + size

			if _, dup := seen[sym]; !dup {
				seen[sym] = struct{}{}
				counts[sym]++
				if next < len(segment) {
					if tails[sym] == nil {
						tails[sym] = make(map[string]struct{})
					}
					tails[sym][segment[next:]] = struct{}{}
				}
			}

			bi = next
		}
	}

	symbols := sortedSymbols(counts)
	m.stats.SeedSymbols = len(symbols)

	for i := len(symbols) - 1; i >= 0; i-- {
		sym := symbols[i]
		count := counts[sym]
		if count < m.cfg.MinSupport {
			m.stats.SeedDiscarded++
			m.logger.Debug("seed discard", "symbol", string(sym), "support", count)
			continue
		}

		rec := newSuffixRecord(string(sym), count, tails[sym])
		if !m.index.Put(rec) {
			return newInvariantError(rec.Subsequence, "seed symbol indexed twice")
		}
		m.work.Push(rec)
		m.stats.Pushed++
		m.logger.Debug("seed push", "symbol", string(sym), "support", count, "tails", len(rec.Suffixes))
	}

	return nil
}
