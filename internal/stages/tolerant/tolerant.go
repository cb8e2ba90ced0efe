// Package tolerant implements L5 TolerantParsing (spec.md §4.6): a
// bounded recursive-descent parser that builds a native Go value tree
// directly from the repaired rune stream, recovering from the residual
// faults earlier stages could not fully resolve (an EOF mid-structure,
// an unterminated string, a malformed bare token) instead of failing
// outright. Because the builder only ever emits map[string]interface{},
// []interface{}, string, float64, bool, and nil, any tree it produces
// is guaranteed to re-marshal through encoding/json — L5 self-validates
// by construction and needs no separate check against L4.
package tolerant

import (
	"strconv"

	"github.com/nshkrdotcom/jsonremedy/internal/action"
	"github.com/nshkrdotcom/jsonremedy/internal/charutil"
	"github.com/nshkrdotcom/jsonremedy/internal/pipeline"
)

type Stage struct{}

func New() *Stage { return &Stage{} }

func (s *Stage) Name() string { return "tolerant-parsing" }

func (s *Stage) Process(ctx *action.Context, input []rune) pipeline.Result {
	p := &parser{ctx: ctx, input: input, maxDepth: ctx.Options.MaxNestingDepth}
	if p.maxDepth <= 0 {
		p.maxDepth = 50
	}
	p.skipSpace()
	value, ok := p.parseValue(0)
	if !ok {
		return pipeline.Err(action.Unrepairable)
	}
	return pipeline.OK(input, value)
}

type parser struct {
	ctx      *action.Context
	input    []rune
	pos      int
	maxDepth int
}

func (p *parser) skipSpace() {
	p.pos = charutil.SkipWhitespace(p.input, p.pos)
}

func (p *parser) atEOF() bool { return p.pos >= len(p.input) }

func (p *parser) parseValue(depth int) (any, bool) {
	if depth > p.maxDepth {
		return nil, false
	}
	p.skipSpace()
	if p.atEOF() {
		return nil, false
	}
	c := p.input[p.pos]
	switch {
	case c == '{':
		return p.parseObject(depth)
	case c == '[':
		return p.parseArray(depth)
	case c == '"' || c == '\'':
		return p.parseString()
	case c == '-' || charutil.IsDigit(c):
		return p.parseNumberOrCoerced()
	default:
		return p.parseLiteralOrCoerced()
	}
}

func (p *parser) parseObject(depth int) (any, bool) {
	p.pos++ // consume '{'
	obj := make(map[string]any)

	p.skipSpace()
	for {
		if p.atEOF() {
			p.ctx.LogSimple(action.TolerantParsing, "fabricated missing closing brace at end of input")
			return obj, true
		}
		if p.input[p.pos] == '}' {
			p.pos++
			return obj, true
		}

		key, ok := p.parseString()
		if !ok {
			return obj, true
		}
		keyStr, _ := key.(string)

		p.skipSpace()
		if !p.atEOF() && p.input[p.pos] == ':' {
			p.pos++
		}

		val, ok := p.parseValue(depth + 1)
		if !ok {
			obj[keyStr] = nil
			p.ctx.LogSimple(action.TolerantParsing, "fabricated missing closing brace at end of input")
			return obj, true
		}
		obj[keyStr] = val

		p.skipSpace()
		if p.atEOF() {
			p.ctx.LogSimple(action.TolerantParsing, "fabricated missing closing brace at end of input")
			return obj, true
		}
		if p.input[p.pos] == ',' {
			p.pos++
			p.skipSpace()
			continue
		}
		if p.input[p.pos] == '}' {
			p.pos++
			return obj, true
		}
		// Neither comma nor closer: stop here rather than loop forever.
		return obj, true
	}
}

func (p *parser) parseArray(depth int) (any, bool) {
	p.pos++ // consume '['
	arr := make([]any, 0, 4)

	p.skipSpace()
	for {
		if p.atEOF() {
			p.ctx.LogSimple(action.TolerantParsing, "fabricated missing closing bracket at end of input")
			return arr, true
		}
		if p.input[p.pos] == ']' {
			p.pos++
			return arr, true
		}

		val, ok := p.parseValue(depth + 1)
		if !ok {
			p.ctx.LogSimple(action.TolerantParsing, "fabricated missing closing bracket at end of input")
			return arr, true
		}
		arr = append(arr, val)

		p.skipSpace()
		if p.atEOF() {
			p.ctx.LogSimple(action.TolerantParsing, "fabricated missing closing bracket at end of input")
			return arr, true
		}
		if p.input[p.pos] == ',' {
			p.pos++
			p.skipSpace()
			continue
		}
		if p.input[p.pos] == ']' {
			p.pos++
			return arr, true
		}
		return arr, true
	}
}

func (p *parser) parseString() (any, bool) {
	if p.atEOF() || (p.input[p.pos] != '"' && p.input[p.pos] != '\'') {
		return "", false
	}
	delim := p.input[p.pos]
	p.pos++
	var out []rune
	escaped := false
	n := len(p.input)
	for p.pos < n {
		c := p.input[p.pos]
		if escaped {
			out = append(out, unescape(c))
			escaped = false
			p.pos++
			continue
		}
		if c == '\\' {
			escaped = true
			p.pos++
			continue
		}
		if c == delim {
			p.pos++
			return string(out), true
		}
		out = append(out, c)
		p.pos++
	}
	p.ctx.LogSimple(action.TolerantParsing, "fabricated missing closing quote at end of input")
	return string(out), true
}

func unescape(c rune) rune {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return c
	}
}

func (p *parser) parseNumberOrCoerced() (any, bool) {
	start := p.pos
	n := len(p.input)
	if p.input[p.pos] == '-' {
		p.pos++
	}
	for p.pos < n && (charutil.IsDigit(p.input[p.pos]) || p.input[p.pos] == '.' ||
		p.input[p.pos] == 'e' || p.input[p.pos] == 'E' || p.input[p.pos] == '+' || p.input[p.pos] == '-') {
		p.pos++
	}
	token := string(p.input[start:p.pos])
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return f, true
	}
	p.ctx.LogSimple(action.TolerantParsing, "coerced malformed numeric token to string")
	return token, true
}

func (p *parser) parseLiteralOrCoerced() (any, bool) {
	n := len(p.input)
	start := p.pos
	for p.pos < n && charutil.IsIdentifierPart(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		// Unrecognizable single character; consume it so the caller
		// makes forward progress, coerced to a one-rune string.
		p.pos++
		p.ctx.LogSimple(action.TolerantParsing, "coerced malformed token to string")
		return string(p.input[start:p.pos]), true
	}
	token := string(p.input[start:p.pos])
	switch token {
	case "true":
		return true, true
	case "false":
		return false, true
	case "null":
		return nil, true
	}
	p.ctx.LogSimple(action.TolerantParsing, "coerced malformed token to string")
	return token, true
}
