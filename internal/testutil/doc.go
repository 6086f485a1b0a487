// Package testutil provides helpers shared by tests across packages:
// invariant checks over mined frequent sets, deterministic run IDs and
// reproducible synthetic traces.
//
// testutil imports no internal packages so any package's tests can use it.
package testutil
