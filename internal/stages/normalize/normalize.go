// Package normalize implements L3 SyntaxNormalization (spec.md §4.4): a
// hardcoded-patterns pre-pass (quote-character mapping, doubled-quote
// collapse, thousands-separator stripping) followed by a ScanState-
// driven scanner that quotes bare keys/values, normalizes literals, and
// inserts or removes structural punctuation.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nshkrdotcom/jsonremedy/internal/action"
	"github.com/nshkrdotcom/jsonremedy/internal/charutil"
	"github.com/nshkrdotcom/jsonremedy/internal/pipeline"
)

// EarlyPatterns is the hardcoded pre-pass. spec.md describes it as
// "hardcoded patterns" applied ahead of L2 in the real pipeline order,
// even though it conceptually belongs to L3; it is looser than the
// main scan by design, so a regex-based implementation is appropriate
// here where it would not be for the main scan (see DESIGN.md).
type EarlyPatterns struct{}

func NewEarlyPatterns() *EarlyPatterns { return &EarlyPatterns{} }

func (s *EarlyPatterns) Name() string { return "syntax-normalization-early" }

var doubledQuoteRe = regexp.MustCompile(`""([^"]*)""`)
var thousandsRe = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)

func (s *EarlyPatterns) Process(ctx *action.Context, input []rune) pipeline.Result {
	out := input

	if ctx.Options.EnableEarlyHardcodedPatterns {
		out = mapFancyQuotes(out)

		if collapsed := collapseDoubledQuotes(string(out)); collapsed != string(out) {
			ctx.LogSimple(action.SyntaxNormalization, "collapsed doubled quotes at value boundary")
			out = []rune(collapsed)
		}

		out = stripThousandsSeparators(ctx, out)
	}

	// enable_escape_normalization is its own option (spec.md §6), not
	// gated by enable_early_hardcoded_patterns.
	if ctx.Options.EnableEscapeNormalization {
		out = expandEscapes(ctx, out)
	}

	return pipeline.Continue(out)
}

// quoteState tracks whether the cursor is inside a `'...'`- or
// `"..."`-delimited string body across a single left-to-right scan, so
// every early-pass transform honors the same string-body inviolability
// invariant spec.md §3 requires of the main L3 scan. Earlier revisions
// of mapFancyQuotes/stripThousandsSeparators only toggled on `"`, so a
// fancy quote or a thousands-grouped number sitting inside a
// single-quoted string body (ubiquitous in Python-style input) was
// rewritten even though it was string content.
type quoteState struct {
	inString bool
	delim    rune
	escaped  bool
}

// step advances the state past c and reports whether c itself was
// string-body content (including the delimiters) before this call.
func (q *quoteState) step(c rune) bool {
	if q.inString {
		switch {
		case q.escaped:
			q.escaped = false
		case c == '\\':
			q.escaped = true
		case c == q.delim:
			q.inString = false
		}
		return true
	}
	if c == '"' || c == '\'' {
		q.inString = true
		q.delim = c
	}
	return false
}

// mapFancyQuotes maps smart/angle/guillemet quote characters to a plain
// double quote wherever they appear outside an already-open string
// (single- or double-quoted).
func mapFancyQuotes(input []rune) []rune {
	replacer := map[rune]rune{
		'“': '"', '”': '"', '‘': '"', '’': '"',
		'‹': '"', '›': '"', '«': '"', '»': '"',
	}
	out := make([]rune, 0, len(input))
	var st quoteState
	for _, c := range input {
		if st.step(c) {
			out = append(out, c)
			continue
		}
		if mapped, ok := replacer[c]; ok {
			out = append(out, mapped)
			continue
		}
		out = append(out, c)
	}
	return out
}

func collapseDoubledQuotes(s string) string {
	return doubledQuoteRe.ReplaceAllString(s, `"$1"`)
}

// stripThousandsSeparators removes `,` grouping separators from bare
// numeric tokens (spec.md §4.4's regex `^-?\d{1,3}(,\d{3})+(\.\d+)?$`),
// applied only to runs outside string literals (single- or
// double-quoted).
func stripThousandsSeparators(ctx *action.Context, input []rune) []rune {
	out := make([]rune, 0, len(input))
	var st quoteState
	n := len(input)
	i := 0
	for i < n {
		c := input[i]
		if st.step(c) {
			out = append(out, c)
			i++
			continue
		}
		if c == '-' || charutil.IsDigit(c) {
			j := i + 1
			for j < n && (charutil.IsDigit(input[j]) || input[j] == ',' || input[j] == '.') {
				j++
			}
			token := string(input[i:j])
			if thousandsRe.MatchString(token) {
				stripped := strings.ReplaceAll(token, ",", "")
				out = append(out, []rune(stripped)...)
				ctx.LogSimple(action.SyntaxNormalization, "stripped thousands separator")
				i = j
				continue
			}
		}
		out = append(out, c)
		i++
	}
	return out
}

// expandEscapes expands `\uXXXX` and `\xXX` escape sequences to their
// code points outside string literals (spec.md §4.4's opt-in pre-pass
// rule, Options.EnableEscapeNormalization). Escapes inside a string
// body are left untouched — they're ordinary JSON string escapes, not
// carrier-text artifacts.
func expandEscapes(ctx *action.Context, input []rune) []rune {
	out := make([]rune, 0, len(input))
	var st quoteState
	n := len(input)
	i := 0
	for i < n {
		c := input[i]
		if st.step(c) {
			out = append(out, c)
			i++
			continue
		}
		if c == '\\' && i+1 < n {
			switch input[i+1] {
			case 'u':
				if i+6 <= n {
					if v, err := strconv.ParseUint(string(input[i+2:i+6]), 16, 32); err == nil {
						out = append(out, rune(v))
						ctx.LogSimple(action.SyntaxNormalization, "expanded \\u escape outside string")
						i += 6
						continue
					}
				}
			case 'x':
				if i+4 <= n {
					if v, err := strconv.ParseUint(string(input[i+2:i+4]), 16, 32); err == nil {
						out = append(out, rune(v))
						ctx.LogSimple(action.SyntaxNormalization, "expanded \\x escape outside string")
						i += 4
						continue
					}
				}
			}
		}
		out = append(out, c)
		i++
	}
	return out
}

// contextKind tracks whether the enclosing composite is an object or
// an array, mirroring spec.md §3's StructuralState so the main scan
// knows whether "begins a key" or "begins a value" applies next.
type contextKind int

const (
	ctxObject contextKind = iota
	ctxArray
)

// expectation is spec.md §4.4's ScanState.
type expectation int

const (
	expectingKey expectation = iota
	expectingColon
	expectingValue
	expectingCommaOrEnd
)

type Stage struct{}

func New() *Stage { return &Stage{} }

func (s *Stage) Name() string { return "syntax-normalization" }

type scanner struct {
	ctx      *action.Context
	input    []rune
	out      []rune
	pos      int
	inString bool
	delim    rune
	escaped  bool
	ctxStack []contextKind
	expect   expectation
}

func (s *Stage) Process(ctx *action.Context, input []rune) pipeline.Result {
	sc := &scanner{ctx: ctx, input: input, out: make([]rune, 0, len(input)+8), expect: expectingValue}
	sc.run()
	return pipeline.Continue(sc.out)
}

func (sc *scanner) run() {
	n := len(sc.input)
	for sc.pos < n {
		c := sc.input[sc.pos]

		if sc.inString {
			sc.consumeStringBody(c)
			continue
		}

		switch c {
		case '{':
			sc.ctxStack = append(sc.ctxStack, ctxObject)
			sc.expect = expectingKey
			sc.out = append(sc.out, c)
			sc.pos++
			continue
		case '[':
			sc.ctxStack = append(sc.ctxStack, ctxArray)
			sc.expect = expectingValue
			sc.out = append(sc.out, c)
			sc.pos++
			continue
		case '}', ']':
			if len(sc.ctxStack) > 0 {
				sc.ctxStack = sc.ctxStack[:len(sc.ctxStack)-1]
			}
			sc.expect = expectingCommaOrEnd
			sc.out = append(sc.out, c)
			sc.pos++
			continue
		}

		if charutil.IsSpace(c) {
			sc.out = append(sc.out, c)
			sc.pos++
			continue
		}

		if sc.expect == expectingColon && c != ':' && beginsValue(c) {
			sc.out = append(sc.out, ':')
			sc.ctx.LogSimple(action.SyntaxNormalization, "inserted missing colon")
			sc.expect = expectingValue
			continue // reprocess c
		}

		if sc.expect == expectingCommaOrEnd && c != ',' && c != '}' && c != ']' {
			top := sc.topIsObject()
			if (top && beginsKey(c)) || (!top && beginsValue(c)) {
				sc.out = append(sc.out, ',')
				sc.ctx.LogSimple(action.SyntaxNormalization, "inserted missing comma")
				if top {
					sc.expect = expectingKey
				} else {
					sc.expect = expectingValue
				}
				continue // reprocess c
			}
		}

		switch sc.expect {
		case expectingColon:
			if c == ':' {
				sc.out = append(sc.out, c)
				sc.pos++
				sc.expect = expectingValue
			} else {
				// Can't interpret; copy through to avoid looping forever.
				sc.out = append(sc.out, c)
				sc.pos++
			}

		case expectingCommaOrEnd:
			if c == ',' {
				save := sc.pos
				j := charutil.SkipWhitespace(sc.input, sc.pos+1)
				if j < len(sc.input) && (sc.input[j] == '}' || sc.input[j] == ']') {
					sc.ctx.LogSimple(action.SyntaxNormalization, "removed trailing comma")
					sc.pos++
					_ = save
					continue
				}
				sc.out = append(sc.out, c)
				sc.pos++
				if sc.topIsObject() {
					sc.expect = expectingKey
				} else {
					sc.expect = expectingValue
				}
			} else {
				sc.out = append(sc.out, c)
				sc.pos++
			}

		case expectingKey:
			sc.consumeKeyOrValue(true)

		case expectingValue:
			sc.consumeKeyOrValue(false)
		}
	}
}

func (sc *scanner) topIsObject() bool {
	if len(sc.ctxStack) == 0 {
		return false
	}
	return sc.ctxStack[len(sc.ctxStack)-1] == ctxObject
}

func (sc *scanner) consumeStringBody(c rune) {
	sc.out = append(sc.out, c)
	switch {
	case sc.escaped:
		sc.escaped = false
	case c == '\\':
		sc.escaped = true
	case c == sc.delim:
		sc.inString = false
	}
	sc.pos++
}

// consumeKeyOrValue handles expectingKey/expectingValue: a quoted
// string, a recognized literal (values only), or a multi-word bare
// identifier run that gets quoted.
func (sc *scanner) consumeKeyOrValue(isKey bool) {
	c := sc.input[sc.pos]

	if c == '"' || c == '\'' {
		sc.consumeAndNormalizeString()
		if isKey {
			sc.expect = expectingColon
		} else {
			sc.expect = expectingCommaOrEnd
		}
		return
	}

	if !isKey {
		if lit, consumed, ok := matchLiteral(sc.input, sc.pos); ok {
			original := string(sc.input[sc.pos : sc.pos+consumed])
			if original != lit {
				sc.ctx.LogSimple(action.SyntaxNormalization, fmt.Sprintf("normalized literal %q to %q", original, lit))
			}
			sc.out = append(sc.out, []rune(lit)...)
			sc.pos += consumed
			sc.expect = expectingCommaOrEnd
			return
		}
		if charutil.IsDigit(c) || c == '-' {
			sc.consumeBareNumber()
			sc.expect = expectingCommaOrEnd
			return
		}
	}

	if charutil.IsIdentifierStart(c) {
		word := sc.consumeIdentifierRun()
		sc.out = append(sc.out, '"')
		sc.out = append(sc.out, []rune(word)...)
		sc.out = append(sc.out, '"')
		if isKey {
			sc.ctx.LogSimple(action.SyntaxNormalization, "quoted unquoted key")
			sc.expect = expectingColon
		} else {
			sc.ctx.LogSimple(action.SyntaxNormalization, "quoted unquoted value")
			sc.expect = expectingCommaOrEnd
		}
		return
	}

	// Can't interpret this character as a key/value start; copy
	// through verbatim to guarantee forward progress.
	sc.out = append(sc.out, c)
	sc.pos++
}

// consumeAndNormalizeString reads a quoted string (single or double
// delimiter), re-emitting it delimited by `"`, escaping any embedded
// double quote when converting from a single-quoted original. Logs
// exactly one action per converted string (spec.md §8's "quote
// normalization (×6)" for the six single-quoted tokens in that
// example), not one per delimiter side.
func (sc *scanner) consumeAndNormalizeString() {
	delim := sc.input[sc.pos]
	n := len(sc.input)
	converting := delim != '"'

	sc.out = append(sc.out, '"')
	sc.pos++

	escaped := false
	for sc.pos < n {
		c := sc.input[sc.pos]
		if escaped {
			if c == delim && delim != '"' {
				// `\'` inside a single-quoted string is just a literal
				// quote once re-delimited by `"`.
				sc.out = append(sc.out, c)
			} else {
				sc.out = append(sc.out, '\\', c)
			}
			escaped = false
			sc.pos++
			continue
		}
		if c == '\\' {
			escaped = true
			sc.pos++
			continue
		}
		if c == delim {
			sc.pos++
			break
		}
		if c == '"' && delim != '"' {
			sc.out = append(sc.out, '\\', '"')
			sc.pos++
			continue
		}
		sc.out = append(sc.out, c)
		sc.pos++
	}
	sc.out = append(sc.out, '"')

	if converting {
		sc.ctx.LogSimple(action.SyntaxNormalization, "normalized string delimiter")
	}
}

// consumeIdentifierRun joins consecutive identifier words separated
// only by runs of spaces/tabs (not newlines) into one bare token,
// stopping at the first structural terminator (spec.md §4.4's
// multi-word joining rule, SPEC_FULL.md §14.2).
func (sc *scanner) consumeIdentifierRun() string {
	n := len(sc.input)
	var b strings.Builder

	start := sc.pos
	for sc.pos < n && charutil.IsIdentifierPart(sc.input[sc.pos]) {
		sc.pos++
	}
	b.WriteString(string(sc.input[start:sc.pos]))

	for {
		save := sc.pos
		j := sc.pos
		for j < n && (sc.input[j] == ' ' || sc.input[j] == '\t') {
			j++
		}
		if j == sc.pos || j >= n || !charutil.IsIdentifierStart(sc.input[j]) {
			sc.pos = save
			break
		}
		wordStart := j
		for j < n && charutil.IsIdentifierPart(sc.input[j]) {
			j++
		}
		b.WriteByte(' ')
		b.WriteString(string(sc.input[wordStart:j]))
		sc.pos = j
	}
	return b.String()
}

func (sc *scanner) consumeBareNumber() {
	n := len(sc.input)
	start := sc.pos
	if sc.input[sc.pos] == '-' {
		sc.pos++
	}
	for sc.pos < n && (charutil.IsDigit(sc.input[sc.pos]) || sc.input[sc.pos] == '.' ||
		sc.input[sc.pos] == 'e' || sc.input[sc.pos] == 'E' ||
		sc.input[sc.pos] == '+' || sc.input[sc.pos] == '-') {
		sc.pos++
	}
	sc.out = append(sc.out, sc.input[start:sc.pos]...)
}

// beginsValue reports whether c can start a JSON value token.
func beginsValue(c rune) bool {
	if c == '"' || c == '\'' || c == '-' || c == '{' || c == '[' {
		return true
	}
	if charutil.IsDigit(c) || charutil.IsIdentifierStart(c) {
		return true
	}
	return false
}

// beginsKey reports whether c can start an object key token.
func beginsKey(c rune) bool {
	return c == '"' || c == '\'' || charutil.IsIdentifierStart(c)
}

// literal table: True/False/None/Null/NULL-style variants normalize to
// JSON's lowercase literals (spec.md §4.4). Literal matching takes
// precedence over the unquoted-identifier rule.
var literals = []struct {
	words []string
	out   string
}{
	{[]string{"true", "True", "TRUE"}, "true"},
	{[]string{"false", "False", "FALSE"}, "false"},
	{[]string{"null", "Null", "NULL", "none", "None", "NONE"}, "null"},
}

// matchLiteral checks for a case-sensitive literal match at pos that is
// not itself a prefix of a longer identifier (a word-boundary check).
func matchLiteral(input []rune, pos int) (string, int, bool) {
	n := len(input)
	for _, group := range literals {
		for _, w := range group.words {
			wr := []rune(w)
			m := len(wr)
			if pos+m > n {
				continue
			}
			match := true
			for i := 0; i < m; i++ {
				if input[pos+i] != wr[i] {
					match = false
					break
				}
			}
			if !match {
				continue
			}
			if pos+m < n && charutil.IsIdentifierPart(input[pos+m]) {
				continue // part of a longer identifier, not this literal
			}
			return group.out, m, true
		}
	}
	return "", 0, false
}
