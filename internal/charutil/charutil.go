// Package charutil provides the rune-indexed scanning primitives every
// repair stage shares: UTF-8 ingestion with replacement-character
// repair, and small character-class predicates used by the structural
// and syntax stages.
//
// Every stage operates on []rune, not []byte, so that a RepairAction's
// Position field is a Unicode scalar index per spec.md §3 — advancing
// through a []rune never risks splitting a multi-byte sequence the way
// byte-indexed slicing would.
package charutil

import (
	"unicode"
	"unicode/utf8"
)

// FixedRange describes one invalid UTF-8 byte sequence that was
// replaced with U+FFFD, for logging as a RepairAction by the caller.
type FixedRange struct {
	RunePos int
	Bytes   string
}

// DecodeUTF8Repairing decodes input into runes, replacing each invalid
// byte sequence with U+FFFD and reporting one FixedRange per offending
// sequence (spec.md §4.2 operation 5).
func DecodeUTF8Repairing(input []byte) ([]rune, []FixedRange) {
	runes := make([]rune, 0, len(input))
	var fixes []FixedRange

	i := 0
	for i < len(input) {
		r, size := utf8.DecodeRune(input[i:])
		if r == utf8.RuneError && size <= 1 {
			// size==0 only at EOF (won't happen inside the loop bound);
			// size==1 means one bad byte was consumed.
			fixes = append(fixes, FixedRange{RunePos: len(runes), Bytes: string(input[i : i+1])})
			runes = append(runes, utf8.RuneError)
			i++
			continue
		}
		runes = append(runes, r)
		i += size
	}
	return runes, fixes
}

// EncodeUTF8 converts repaired runes back to bytes for callers that
// want the raw repaired text instead of a decoded value tree.
func EncodeUTF8(runes []rune) []byte {
	return []byte(string(runes))
}

// IsSpace reports whether r is JSON insignificant whitespace or any
// other Unicode space character encountered in carrier text.
func IsSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return unicode.IsSpace(r)
}

// IsIdentifierStart reports whether r can begin an unquoted key or
// value token (spec.md §4.4): a letter, underscore, dollar sign, or any
// non-ASCII Unicode letter.
func IsIdentifierStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

// IsIdentifierPart reports whether r can continue an identifier token
// already started by IsIdentifierStart.
func IsIdentifierPart(r rune) bool {
	return IsIdentifierStart(r) || unicode.IsDigit(r)
}

// IsDigit reports whether r is an ASCII decimal digit.
func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// SkipWhitespace advances pos past any run of whitespace and returns
// the new position.
func SkipWhitespace(runes []rune, pos int) int {
	n := len(runes)
	for pos < n && IsSpace(runes[pos]) {
		pos++
	}
	return pos
}
