package miner

// Stats counts what happened during one mining run.
type Stats struct {
	Segments int `json:"segments"`

	// SeedSymbols is the number of distinct symbols seen while seeding;
	// SeedDiscarded of them fell below MinSupport.
	SeedSymbols   int `json:"seed_symbols"`
	SeedDiscarded int `json:"seed_discarded"`

	Pushed int `json:"pushed"`
	Popped int `json:"popped"`

	// SelfRepeatSkips counts candidates equal to the subsequence's last symbol.
	SelfRepeatSkips int `json:"self_repeat_skips"`

	// GapRejections counts tail matches found past MaxGap.
	GapRejections int `json:"gap_rejections"`

	// InfrequentExtensions counts candidate extensions that matched fewer
	// than MinSupport tails.
	InfrequentExtensions int `json:"infrequent_extensions"`

	Frequent     int `json:"frequent"`
	Closed       int `json:"closed"`
	Rules        int `json:"rules"`
	MaxSeqLength int `json:"max_seq_length"`
}
