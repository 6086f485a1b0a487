package miner

// ClosedSubsequences returns the frequent subsequences that have no strictly
// longer frequent supersequence with the same support.
//
// Containment is symbol order, not contiguity: "AC" is contained in "ABC".
// Every longer tier is checked, not only the next one, since gap-bounded
// mining does not guarantee intermediate supersequences are frequent.
// The inputs are not modified.
func ClosedSubsequences(tiers map[int]map[string]int, maxSeqLength int) map[string]int {
	closed := make(map[string]int)

	for length, tier := range tiers {
		for sub, support := range tier {
			if !absorbed(sub, support, length, tiers, maxSeqLength) {
				closed[sub] = support
			}
		}
	}

	return closed
}

// absorbed reports whether a longer tier holds a supersequence of sub with equal support.
func absorbed(sub string, support, length int, tiers map[int]map[string]int, maxSeqLength int) bool {
	for longer := length + 1; longer <= maxSeqLength; longer++ {
		for sup, supSupport := range tiers[longer] {
			if supSupport == support && isSubsequence(sub, sup) {
				return true
			}
		}
	}
	return false
}
