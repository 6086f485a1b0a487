package miner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCutAtSymbol(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		sym      Symbol
		wantPos  int
		wantRest string
		wantOK   bool
	}{
		{"head", "BAC", 'B', 0, "AC", true},
		{"middle", "BAC", 'A', 1, "C", true},
		{"last", "BAC", 'C', 2, "", true},
		{"first of repeats", "ABAB", 'B', 1, "AB", true},
		{"absent", "BAC", 'X', -1, "", false},
		{"empty", "", 'A', -1, "", false},
		{"counts symbols not bytes", "\u00e9\u4e2dX", 'X', 2, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, rest, ok := cutAtSymbol(tt.s, tt.sym)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPos, pos)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestLastSymbol(t *testing.T) {
	sym, ok := lastSymbol("AB\u4e2d")
	assert.True(t, ok)
	assert.Equal(t, '\u4e2d', sym)

	_, ok = lastSymbol("")
	assert.False(t, ok)
}

func TestIsSubsequence(t *testing.T) {
	tests := []struct {
		sub, sup string
		want     bool
	}{
		{"AC", "ABC", true},
		{"ABC", "ABC", true},
		{"", "ABC", true},
		{"CA", "ABC", false},
		{"AA", "ABC", false},
		{"AA", "ABA", true},
		{"ABCD", "ABC", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isSubsequence(tt.sub, tt.sup), "isSubsequence(%q, %q)", tt.sub, tt.sup)
	}
}

func TestSymbolLen(t *testing.T) {
	assert.Equal(t, 3, symbolLen("ABC"))
	assert.Equal(t, 2, symbolLen("\u00e9\u4e2d"))
	assert.Equal(t, 0, symbolLen(""))
}
