package segment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCut(t *testing.T) {
	tests := []struct {
		name   string
		trace  string
		window int
		want   []string
	}{
		{"exact windows", "ABCDEF", 3, []string{"ABC", "DEF"}},
		{"partial last window", "ABACABCXBACXA", 4, []string{"ABAC", "ABCX", "BACX", "A"}},
		{"window larger than trace", "AB", 5, []string{"AB"}},
		{"window of one", "ABC", 1, []string{"A", "B", "C"}},
		{"empty trace", "", 4, []string{}},
		{"multibyte symbols", "\u00e9\u4e2d\u00e9\u4e2dX", 2, []string{"\u00e9\u4e2d", "\u00e9\u4e2d", "X"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cut(tt.trace, tt.window)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCut_InvalidWindow(t *testing.T) {
	for _, window := range []int{0, -3} {
		_, err := Cut("ABC", window)
		assert.ErrorIs(t, err, ErrInvalidWindow, "window %d", window)
	}
}

func TestCut_InvalidUTF8(t *testing.T) {
	_, err := Cut("AB\xffA\xfe", 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSymbol)

	var symErr *SymbolError
	require.True(t, errors.As(err, &symErr))
	assert.Equal(t, 2, symErr.Offset)
	assert.Equal(t, byte(0xff), symErr.Byte)
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(""))
	assert.NoError(t, Check("A\u00e9\u4e2d"))
	assert.NoError(t, Check("\ufffd"), "an encoded replacement character is a real symbol")

	tests := []struct {
		name   string
		input  string
		offset int
	}{
		{"lone continuation byte", "\x80", 0},
		{"truncated sequence", "A\xe4\xb8", 1},
		{"after multibyte symbol", "\u00e9\xfe", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.input)
			var symErr *SymbolError
			require.True(t, errors.As(err, &symErr), "got %v", err)
			assert.Equal(t, tt.offset, symErr.Offset)
		})
	}
}

func TestCanonical(t *testing.T) {
	got, err := Canonical("e\u0301X")
	require.NoError(t, err)
	assert.Equal(t, "\u00e9X", got)

	_, err = Canonical("\xffX")
	assert.ErrorIs(t, err, ErrInvalidSymbol)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"strips newlines", "ABC\nABC\r\nAC\n", "ABCABCAC"},
		{"strips spaces and tabs", " A B\tC ", "ABC"},
		{"composes to NFC", "e\u0301X", "\u00e9X"},
		{"empty", "\n\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}
