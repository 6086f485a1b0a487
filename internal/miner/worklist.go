package miner

// Worklist is the LIFO stack of suffix records awaiting expansion.
//
// Popping the most recently pushed record makes the traversal depth-first:
// every extension of a subsequence is explored before its siblings.
//
// Not safe for concurrent use; the owning Miner is the only writer.
type Worklist struct {
	records []*SuffixRecord
}

// NewWorklist creates an empty worklist.
func NewWorklist() *Worklist {
	return &Worklist{
		records: make([]*SuffixRecord, 0, 64), // Pre-allocate for typical alphabets
	}
}

// Push adds rec to the top of the stack.
func (w *Worklist) Push(rec *SuffixRecord) {
	w.records = append(w.records, rec)
}

// Pop removes and returns the top record.
// Returns (nil, false) if the worklist is empty.
func (w *Worklist) Pop() (*SuffixRecord, bool) {
	n := len(w.records)
	if n == 0 {
		return nil, false
	}

	rec := w.records[n-1]

	// Nil out the slot so the backing array does not pin popped records
	// (and their tail sets) until it is reallocated.
	w.records[n-1] = nil
	w.records = w.records[:n-1]

	return rec, true
}

// Len returns the number of pending records.
func (w *Worklist) Len() int {
	return len(w.records)
}

// Reset empties the worklist, keeping its capacity.
func (w *Worklist) Reset() {
	clear(w.records)
	w.records = w.records[:0]
}
