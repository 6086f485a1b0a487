package miner

// SuffixIndex maps a candidate subsequence to its suffix record.
//
// A record lives in the index from the moment it is created (seeding or
// extension) until the DFS pops and expands it; it is never reinserted.
type SuffixIndex struct {
	records map[string]*SuffixRecord
}

// NewSuffixIndex creates an empty index.
func NewSuffixIndex() *SuffixIndex {
	return &SuffixIndex{records: make(map[string]*SuffixRecord)}
}

// Put stores rec under its subsequence.
// Returns false without replacing anything if the subsequence is already indexed.
func (x *SuffixIndex) Put(rec *SuffixRecord) bool {
	if _, exists := x.records[rec.Subsequence]; exists {
		return false
	}
	x.records[rec.Subsequence] = rec
	return true
}

// Get returns the record for subsequence.
func (x *SuffixIndex) Get(subsequence string) (*SuffixRecord, bool) {
	rec, ok := x.records[subsequence]
	return rec, ok
}

// Remove deletes the record for subsequence.
func (x *SuffixIndex) Remove(subsequence string) {
	delete(x.records, subsequence)
}

// Len returns the number of indexed records.
func (x *SuffixIndex) Len() int {
	return len(x.records)
}

// Reset drops every record.
func (x *SuffixIndex) Reset() {
	clear(x.records)
}
