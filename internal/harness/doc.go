// Package harness runs YAML mining scenarios end to end.
//
// A scenario names its input (an inline trace, a trace file or pre-cut
// segments), optional threshold overrides and a list of assertions:
//
//	name: worked_example
//	description: three short segments
//	segments: [ABC, ABC, AC]
//	config:
//	  window_size: 4
//	  max_gap: 1
//	assertions:
//	  - type: frequent_contains
//	    subsequence: ABC
//	    support: 2
//	  - type: rule_contains
//	    history: AB
//	    prediction: C
//
// Run mines the scenario, writes the run to a fresh in-memory store, reads
// it back and evaluates the assertions against the stored report. Golden
// comparison (RunWithGolden) checks the canonical JSON report byte for byte.
package harness
