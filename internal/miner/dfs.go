package miner

import (
	"unicode/utf8"
)

// expand drains the worklist depth-first.
//
// For every popped record it records the subsequence as frequent, removes it
// from the index and pushes each one-symbol extension that matches at least
// MinSupport tails within MaxGap skipped symbols.
//
// Terminates because every pushed record is one symbol longer than its parent
// and cannot outgrow the longest segment.
func (m *Miner) expand() error {
	for {
		cur, ok := m.work.Pop()
		if !ok {
			return nil
		}
		m.stats.Popped++
		m.logger.Debug("pop", "subsequence", cur.Subsequence, "support", cur.OccurTimes)

		m.recordFrequent(cur.Subsequence, cur.OccurTimes)

		indexed, ok := m.index.Get(cur.Subsequence)
		if !ok || indexed != cur {
			return newInvariantError(cur.Subsequence, "popped record is not in the suffix index")
		}
		m.index.Remove(cur.Subsequence)

		candidates := m.frequentSymbols(cur.Suffixes)
		last, _ := lastSymbol(cur.Subsequence)

		// Descending so the smallest extension is popped first.
		for i := len(candidates) - 1; i >= 0; i-- {
			alpha := candidates[i]
			if alpha == last {
				m.stats.SelfRepeatSkips++
				continue
			}

			next, ok := m.extend(cur, alpha)
			if !ok {
				continue
			}
			if !m.index.Put(next) {
				return newInvariantError(next.Subsequence, "extension already in the suffix index")
			}
			m.work.Push(next)
			m.stats.Pushed++
			m.logger.Debug("push", "subsequence", next.Subsequence, "support", next.OccurTimes)
		}
	}
}

// extend matches alpha against every tail of cur.
// Returns the new record and true if the extension is frequent.
func (m *Miner) extend(cur *SuffixRecord, alpha Symbol) (*SuffixRecord, bool) {
	count := 0
	tails := make(map[string]struct{})

	for tail := range cur.Suffixes {
		pos, rest, found := cutAtSymbol(tail, alpha)
		if !found {
			continue
		}
		if pos > m.cfg.MaxGap {
			m.stats.GapRejections++
			continue
		}
		count++
		if rest != "" {
			tails[rest] = struct{}{}
		}
	}

	if count < m.cfg.MinSupport {
		m.stats.InfrequentExtensions++
		return nil, false
	}

	return newSuffixRecord(cur.Subsequence+string(alpha), count, tails), true
}

// frequentSymbols counts every symbol occurrence across tails and returns,
// sorted, the symbols occurring at least MinSupport times.
func (m *Miner) frequentSymbols(tails map[string]struct{}) []Symbol {
	counts := make(map[Symbol]int)
	for tail := range tails {
		for bi := 0; bi < len(tail); {
			sym, size := utf8.DecodeRuneInString(tail[bi:])
			counts[sym]++
			bi += size
		}
	}

	for sym, n := range counts {
		if n < m.cfg.MinSupport {
			delete(counts, sym)
		}
	}
	return sortedSymbols(counts)
}

// recordFrequent adds subsequence to the frequent set and its length tier.
func (m *Miner) recordFrequent(subsequence string, support int) {
	m.frequent[subsequence] = support

	length := symbolLen(subsequence)
	if length > m.maxSeqLength {
		m.maxSeqLength = length
	}

	tier := m.tiers[length]
	if tier == nil {
		tier = make(map[string]int)
		m.tiers[length] = tier
	}
	tier[subsequence] = support
}
