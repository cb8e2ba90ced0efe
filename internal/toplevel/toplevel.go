// Package toplevel scans carrier text for a run of independent
// top-level JSON-ish values — the shape both the pre-L1
// MultipleJsonDetector (spec.md §4.1) and L2's concatenated-sibling
// wrapping (spec.md §4.3) need to locate. It is shared so both stages
// agree on exactly what counts as "a value boundary".
package toplevel

import "github.com/nshkrdotcom/jsonremedy/internal/charutil"

// Span is a half-open [Start, End) range into the scanned rune slice.
type Span struct {
	Start, End int
}

// Split returns the boundaries of every top-level value found in
// runes, tolerating whitespace, `//` and `/* */` comments, and a
// single separating comma between values. A trailing unterminated
// composite is still returned as a final span (spec.md §4.1 edge
// case): the caller's later stages are expected to balance it.
func Split(runes []rune) []Span {
	var spans []Span
	n := len(runes)
	i := 0

	for {
		i = skipWhitespaceAndComments(runes, i)
		if i >= n {
			break
		}
		start := i
		isScalar := false
		switch runes[i] {
		case '{', '[':
			i = scanBalanced(runes, i)
		default:
			i = scanScalar(runes, i)
			isScalar = true
		}
		if i == start {
			// Defensive: couldn't make progress (stray structural char
			// like a bare comma); skip it to avoid looping forever.
			i++
			continue
		}
		if isScalar && !looksLikeJSONScalar(runes[start:i]) {
			// Not a genuine JSON value (e.g. a word of surrounding
			// prose) — skip it without recording a span, so wrapper
			// text like "Here's your data:" isn't mistaken for
			// independent top-level values.
			continue
		}
		spans = append(spans, Span{Start: start, End: i})

		// Consume one separating comma, if present, so `{a}`,`{b}`
		// (already comma-joined) is also recognized as two values.
		save := i
		j := charutil.SkipWhitespace(runes, i)
		if j < n && runes[j] == ',' {
			i = j + 1
		} else {
			i = save
		}
	}
	return spans
}

func skipWhitespaceAndComments(runes []rune, i int) int {
	n := len(runes)
	for {
		i = charutil.SkipWhitespace(runes, i)
		if i+1 < n && runes[i] == '/' && runes[i+1] == '/' {
			for i < n && runes[i] != '\n' {
				i++
			}
			continue
		}
		if i+1 < n && runes[i] == '/' && runes[i+1] == '*' {
			i += 2
			for i+1 < n && !(runes[i] == '*' && runes[i+1] == '/') {
				i++
			}
			if i+1 < n {
				i += 2
			} else {
				i = n
			}
			continue
		}
		break
	}
	return i
}

// scanBalanced consumes a bracket/brace structure starting at an
// opening delimiter, tracking string state so interior delimiters
// don't confuse the depth count. It does not enforce type-correct
// pairing (that is L2's job) — it only needs the textual extent of the
// value, tolerating internal mismatches. An input that never balances
// runs to the end of the text, per the trailing-partial-value edge
// case.
func scanBalanced(runes []rune, start int) int {
	n := len(runes)
	depth := 0
	inString := false
	var delim rune
	escaped := false

	i := start
	for i < n {
		c := runes[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == delim:
				inString = false
			}
			i++
			continue
		}
		switch c {
		case '"', '\'':
			inString = true
			delim = c
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
		i++
	}
	return n
}

// scanScalar consumes a single bare token: a quoted string (respecting
// escapes) or a run of non-whitespace, non-comma, non-comment
// characters such as a number or `true`/`false`/`null`.
func scanScalar(runes []rune, start int) int {
	n := len(runes)
	if runes[start] == '"' || runes[start] == '\'' {
		delim := runes[start]
		i := start + 1
		escaped := false
		for i < n {
			c := runes[i]
			if escaped {
				escaped = false
				i++
				continue
			}
			if c == '\\' {
				escaped = true
				i++
				continue
			}
			if c == delim {
				return i + 1
			}
			i++
		}
		return n
	}

	i := start
	for i < n {
		c := runes[i]
		if charutil.IsSpace(c) || c == ',' {
			break
		}
		if i+1 < n && c == '/' && (runes[i+1] == '/' || runes[i+1] == '*') {
			break
		}
		i++
	}
	return i
}

// looksLikeJSONScalar reports whether token is a genuine JSON scalar —
// a quoted string, a number, or true/false/null (any case, since L3
// hasn't normalized casing yet) — as opposed to a bare word or
// punctuation run from surrounding prose. Per spec.md's requirement
// that each top-level valueᵢ be "a well-formed or near-well-formed
// JSON value," only tokens that clear this bar count as values; a
// backtick fence or a sentence fragment must not.
func looksLikeJSONScalar(token []rune) bool {
	if len(token) == 0 {
		return false
	}
	if token[0] == '"' || token[0] == '\'' {
		return true
	}
	switch string(token) {
	case "true", "false", "null", "True", "False", "None", "NULL", "TRUE", "FALSE", "nil":
		return true
	}
	return looksLikeNumber(token)
}

// looksLikeNumber accepts a leading sign, digits, an optional decimal
// point (on either side of the digits, tolerating `.5` and `5.`), and
// an optional exponent — near-well-formed JSON numbers, not full
// strict-JSON validation (L3 tightens the rest).
func looksLikeNumber(token []rune) bool {
	i := 0
	n := len(token)
	if i < n && (token[i] == '+' || token[i] == '-') {
		i++
	}
	digitsBefore := 0
	for i < n && token[i] >= '0' && token[i] <= '9' {
		i++
		digitsBefore++
	}
	digitsAfter := 0
	if i < n && token[i] == '.' {
		i++
		for i < n && token[i] >= '0' && token[i] <= '9' {
			i++
			digitsAfter++
		}
	}
	if digitsBefore == 0 && digitsAfter == 0 {
		return false
	}
	if i < n && (token[i] == 'e' || token[i] == 'E') {
		i++
		if i < n && (token[i] == '+' || token[i] == '-') {
			i++
		}
		expDigits := 0
		for i < n && token[i] >= '0' && token[i] <= '9' {
			i++
			expDigits++
		}
		if expDigits == 0 {
			return false
		}
	}
	return i == n
}
