package testutil

import (
	"testing"
	"unicode/utf8"
)

// AssertDownwardClosure checks that every frequent subsequence longer than
// one symbol has its one-shorter prefix in the set with at least its support.
func AssertDownwardClosure(t testing.TB, frequent map[string]int) {
	t.Helper()
	for sub, support := range frequent {
		if utf8.RuneCountInString(sub) < 2 {
			continue
		}
		_, size := utf8.DecodeLastRuneInString(sub)
		prefix := sub[:len(sub)-size]
		prefixSupport, ok := frequent[prefix]
		if !ok {
			t.Errorf("downward closure: %q is frequent but its prefix %q is not", sub, prefix)
			continue
		}
		if prefixSupport < support {
			t.Errorf("downward closure: support(%q)=%d < support(%q)=%d", prefix, prefixSupport, sub, support)
		}
	}
}

// AssertNoSelfRepeat checks that no frequent subsequence contains the same
// symbol twice in a row.
func AssertNoSelfRepeat(t testing.TB, frequent map[string]int) {
	t.Helper()
	for sub := range frequent {
		prev := utf8.RuneError
		for i, r := range sub {
			if i > 0 && r == prev {
				t.Errorf("self repeat: %q repeats %q", sub, string(r))
				break
			}
			prev = r
		}
	}
}

// AssertMinSupport checks that every frequent subsequence has at least minSupport.
func AssertMinSupport(t testing.TB, frequent map[string]int, minSupport int) {
	t.Helper()
	for sub, support := range frequent {
		if support < minSupport {
			t.Errorf("min support: %q has support %d < %d", sub, support, minSupport)
		}
	}
}

// AssertTiersMatch checks that tiers partition frequent by symbol length and
// that maxSeqLength is the longest length present.
func AssertTiersMatch(t testing.TB, frequent map[string]int, tiers map[int]map[string]int, maxSeqLength int) {
	t.Helper()
	seen := 0
	longest := 0
	for length, tier := range tiers {
		for sub, support := range tier {
			seen++
			if n := utf8.RuneCountInString(sub); n != length {
				t.Errorf("tiers: %q has length %d but sits in tier %d", sub, n, length)
			}
			if frequent[sub] != support {
				t.Errorf("tiers: %q has support %d in tier, %d in frequent set", sub, support, frequent[sub])
			}
		}
		if len(tier) > 0 && length > longest {
			longest = length
		}
	}
	if seen != len(frequent) {
		t.Errorf("tiers: hold %d subsequences, frequent set holds %d", seen, len(frequent))
	}
	if longest != maxSeqLength {
		t.Errorf("tiers: longest tier is %d, maxSeqLength is %d", longest, maxSeqLength)
	}
}
