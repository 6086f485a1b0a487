package segment

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidWindow is returned by Cut for a window size below 1.
var ErrInvalidWindow = errors.New("segment: window size must be at least 1")

// ErrInvalidSymbol is matched by every *SymbolError.
var ErrInvalidSymbol = errors.New("segment: invalid symbol")

// SymbolError reports input bytes that do not decode to a symbol.
type SymbolError struct {
	// Offset is the byte offset of the first undecodable byte.
	Offset int

	// Byte is the undecodable byte.
	Byte byte
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("segment: invalid UTF-8 byte 0x%02x at offset %d", e.Byte, e.Offset)
}

// Is makes errors.Is(err, ErrInvalidSymbol) true for every SymbolError.
func (e *SymbolError) Is(target error) bool {
	return target == ErrInvalidSymbol
}

// Check returns a *SymbolError for the first byte of s that is not part of
// a valid UTF-8 encoding. Every such byte would otherwise decode to
// utf8.RuneError and collide with any other undecodable byte.
func Check(s string) error {
	if utf8.ValidString(s) {
		return nil
	}
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return &SymbolError{Offset: i, Byte: s[i]}
		}
		i += size
	}
	return nil
}

// Canonical checks s and returns its NFC form, the representation every
// symbol is compared and reported in.
func Canonical(s string) (string, error) {
	if err := Check(s); err != nil {
		return "", err
	}
	return norm.NFC.String(s), nil
}

// Cut splits trace into consecutive, non-overlapping segments of windowSize
// symbols. The last segment keeps whatever symbols remain, so it may be
// shorter. An empty trace yields zero segments. A trace that is not valid
// UTF-8 is rejected with a *SymbolError.
func Cut(trace string, windowSize int) ([]string, error) {
	if windowSize < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, windowSize)
	}
	if err := Check(trace); err != nil {
		return nil, err
	}

	segments := make([]string, 0, utf8.RuneCountInString(trace)/windowSize+1)
	start, n := 0, 0
	for bi := 0; bi < len(trace); {
		_, size := utf8.DecodeRuneInString(trace[bi:])
		bi += size
		n++
		if n == windowSize {
			segments = append(segments, trace[start:bi])
			start, n = bi, 0
		}
	}
	if start < len(trace) {
		segments = append(segments, trace[start:])
	}

	return segments, nil
}

// Normalize strips whitespace from a raw trace and returns its NFC form.
func Normalize(raw string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	return norm.NFC.String(stripped)
}
