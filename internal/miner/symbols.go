package miner

import (
	"slices"
	"unicode/utf8"
)

// Positions in traces count symbols, not bytes. These helpers decode runes
// explicitly so invalid UTF-8 bytes still advance by their real width.

// cutAtSymbol finds the first occurrence of sym in s. It returns the symbol
// index of the match and the remainder after it.
func cutAtSymbol(s string, sym Symbol) (pos int, rest string, found bool) {
	for bi := 0; bi < len(s); pos++ {
		r, size := utf8.DecodeRuneInString(s[bi:])
		if r == sym {
			return pos, s[bi+size:], true
		}
		bi += size
	}
	return -1, "", false
}

// lastSymbol returns the final symbol of s.
func lastSymbol(s string) (Symbol, bool) {
	r, size := utf8.DecodeLastRuneInString(s)
	if size == 0 {
		return 0, false
	}
	return r, true
}

// symbolLen returns the number of symbols in s.
func symbolLen(s string) int {
	return utf8.RuneCountInString(s)
}

// isSubsequence reports whether every symbol of sub appears in sup in order,
// not necessarily contiguously.
func isSubsequence(sub, sup string) bool {
	si := 0
	for bi := 0; bi < len(sup) && si < len(sub); {
		want, wantSize := utf8.DecodeRuneInString(sub[si:])
		got, gotSize := utf8.DecodeRuneInString(sup[bi:])
		if want == got {
			si += wantSize
		}
		bi += gotSize
	}
	return si == len(sub)
}

// sortedSymbols returns the keys of counts in ascending order.
func sortedSymbols(counts map[Symbol]int) []Symbol {
	symbols := make([]Symbol, 0, len(counts))
	for sym := range counts {
		symbols = append(symbols, sym)
	}
	slices.Sort(symbols)
	return symbols
}
