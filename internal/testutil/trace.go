package testutil

import (
	"math/rand/v2"
	"strings"
)

// SyntheticTrace returns a reproducible trace of n symbols drawn from
// alphabet. Runs of pattern are spliced in with probability 1/3 so the trace
// contains recurring correlations worth mining.
func SyntheticTrace(seed uint64, n int, alphabet, pattern string) string {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	symbols := []rune(alphabet)
	patternRunes := []rune(pattern)

	var b strings.Builder
	written := 0
	for written < n {
		if len(patternRunes) > 0 && rng.IntN(3) == 0 {
			for _, r := range patternRunes {
				if written == n {
					break
				}
				b.WriteRune(r)
				written++
			}
			continue
		}
		b.WriteRune(symbols[rng.IntN(len(symbols))])
		written++
	}
	return b.String()
}
