// Package clean implements L1 ContentCleaning (spec.md §4.2): stripping
// code fences, comments, HTML wrappers, and surrounding prose, while
// preserving string bodies literally. UTF-8 normalization (operation 5)
// happens earlier, at the public facade's ingest step, since every
// stage already operates on decoded runes — see SPEC_FULL.md §15.2.
package clean

import (
	"github.com/nshkrdotcom/jsonremedy/internal/action"
	"github.com/nshkrdotcom/jsonremedy/internal/charutil"
	"github.com/nshkrdotcom/jsonremedy/internal/pipeline"
)

type Stage struct{}

func New() *Stage { return &Stage{} }

func (s *Stage) Name() string { return "content-cleaning" }

func (s *Stage) Process(ctx *action.Context, input []rune) pipeline.Result {
	out := input

	if fenced, ok := extractFencedBlock(out); ok {
		out = fenced
		ctx.LogSimple(action.ContentCleaning, "removed fenced code block")
	}

	if cleaned, removed := removeComments(out); removed {
		out = cleaned
		ctx.LogSimple(action.ContentCleaning, "removed comments")
	}

	if unwrapped, ok := extractFromHTML(out); ok {
		out = unwrapped
		ctx.LogSimple(action.ContentCleaning, "unwrapped HTML container")
	}

	if extracted, ok := extractBalanced(out); ok {
		out = extracted
		ctx.LogSimple(action.ContentCleaning, "discarded surrounding prose")
	}

	return pipeline.Continue(out)
}

// extractFencedBlock implements operation 1: remove backtick-fenced
// code blocks. When exactly one fence is found its body is the
// payload; when several are found, the first whose body starts with
// `{` or `[` wins. Malformed fences (only an opener, mismatched
// backtick counts) are tolerated by matching on runs of backtick
// characters rather than requiring exactly three.
func extractFencedBlock(input []rune) ([]rune, bool) {
	type fence struct{ start, bodyStart, bodyEnd, end int }
	var fences []fence

	n := len(input)
	i := 0
	for i < n {
		if input[i] == '`' {
			runStart := i
			for i < n && input[i] == '`' {
				i++
			}
			if i-runStart < 2 {
				// A single stray backtick (inline code) isn't a fence.
				continue
			}
			// Skip an optional language tag to the end of the line.
			bodyStart := i
			for bodyStart < n && input[bodyStart] != '\n' {
				bodyStart++
			}
			if bodyStart < n {
				bodyStart++
			}
			// Find the next run of 2+ backticks as the closer.
			j := bodyStart
			closeStart := -1
			for j < n {
				if input[j] == '`' {
					cs := j
					for j < n && input[j] == '`' {
						j++
					}
					if j-cs >= 2 {
						closeStart = cs
						break
					}
					continue
				}
				j++
			}
			if closeStart == -1 {
				// Unterminated fence: tolerate it, body runs to EOF.
				fences = append(fences, fence{start: runStart, bodyStart: bodyStart, bodyEnd: n, end: n})
				break
			}
			fences = append(fences, fence{start: runStart, bodyStart: bodyStart, bodyEnd: closeStart, end: j})
			i = j
			continue
		}
		i++
	}

	if len(fences) == 0 {
		return input, false
	}
	if len(fences) == 1 {
		f := fences[0]
		return trimEdgeWhitespace(input[f.bodyStart:f.bodyEnd]), true
	}
	for _, f := range fences {
		body := trimEdgeWhitespace(input[f.bodyStart:f.bodyEnd])
		if len(body) > 0 && (body[0] == '{' || body[0] == '[') {
			return body, true
		}
	}
	f := fences[0]
	return trimEdgeWhitespace(input[f.bodyStart:f.bodyEnd]), true
}

// removeComments implements operation 2: strip `//` line comments and
// `/* … */` block comments (nesting included), leaving comments inside
// string literals untouched. L1 has not yet normalized quote style, so
// both `'` and `"` are tracked as string delimiters.
func removeComments(input []rune) ([]rune, bool) {
	n := len(input)
	out := make([]rune, 0, n)
	removed := false

	inString := false
	var delim rune
	escaped := false

	for i := 0; i < n; i++ {
		c := input[i]
		if inString {
			out = append(out, c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == delim:
				inString = false
			}
			continue
		}

		if c == '"' || c == '\'' {
			inString = true
			delim = c
			out = append(out, c)
			continue
		}

		if c == '/' && i+1 < n && input[i+1] == '/' {
			removed = true
			for i < n && input[i] != '\n' {
				i++
			}
			if i < n {
				out = append(out, input[i]) // keep the newline
			}
			continue
		}

		if c == '/' && i+1 < n && input[i+1] == '*' {
			removed = true
			depth := 1
			i += 2
			for i < n && depth > 0 {
				if i+1 < n && input[i] == '/' && input[i+1] == '*' {
					depth++
					i += 2
					continue
				}
				if i+1 < n && input[i] == '*' && input[i+1] == '/' {
					depth--
					i += 2
					continue
				}
				i++
			}
			i--
			continue
		}

		out = append(out, c)
	}
	return out, removed
}

// extractFromHTML implements operation 3: unwrap content inside a
// `<pre>`, `<code>`, or similarly named tag. All indices are rune
// indices into input throughout, to stay consistent with every other
// stage's position accounting.
func extractFromHTML(input []rune) ([]rune, bool) {
	tags := []string{"pre", "code", "json", "output"}
	for _, tag := range tags {
		open := []rune("<" + tag)
		closeTag := []rune("</" + tag + ">")

		openIdx := indexRunesFold(input, open, 0)
		if openIdx == -1 {
			continue
		}
		tagEnd := indexRune(input, '>', openIdx)
		if tagEnd == -1 {
			continue
		}
		bodyStart := tagEnd + 1
		closeIdx := indexRunesFold(input, closeTag, bodyStart)
		if closeIdx == -1 {
			continue
		}
		trimmed := trimEdgeWhitespace(input[bodyStart:closeIdx])
		if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
			return trimmed, true
		}
	}
	return input, false
}

// extractBalanced implements operation 4: if leading/trailing prose
// surrounds the JSON, find the outermost balanced `{…}` or `[…]` and
// discard everything outside it.
func extractBalanced(input []rune) ([]rune, bool) {
	n := len(input)
	start := -1
	for i := 0; i < n; i++ {
		if input[i] == '{' || input[i] == '[' {
			start = i
			break
		}
	}
	if start == -1 {
		return input, false
	}

	open := input[start]
	var closeCh rune
	if open == '{' {
		closeCh = '}'
	} else {
		closeCh = ']'
	}

	depth := 0
	inString := false
	var delim rune
	escaped := false
	end := -1

	for i := start; i < n; i++ {
		c := input[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == delim:
				inString = false
			}
			continue
		}
		switch {
		case c == '"' || c == '\'':
			inString = true
			delim = c
		case c == open:
			depth++
		case c == closeCh:
			depth--
			if depth == 0 {
				end = i + 1
			}
		}
		if end != -1 {
			break
		}
	}

	if end == -1 {
		// Unbalanced: still drop leading prose, let L2 balance the rest.
		if start == 0 {
			return input, false
		}
		return input[start:], true
	}

	if start == 0 && end == n {
		return input, false
	}
	return input[start:end], true
}

func trimEdgeWhitespace(in []rune) []rune {
	i, j := 0, len(in)
	for i < j && charutil.IsSpace(in[i]) {
		i++
	}
	for j > i && charutil.IsSpace(in[j-1]) {
		j--
	}
	return in[i:j]
}

func indexRune(rs []rune, r rune, from int) int {
	for i := from; i < len(rs); i++ {
		if rs[i] == r {
			return i
		}
	}
	return -1
}

// indexRunesFold is a tiny ASCII case-insensitive substring search,
// sufficient for the fixed set of lowercase tag names we look for.
// Returns a rune index, or -1 if not found.
func indexRunesFold(rs, sub []rune, from int) int {
	n, m := len(rs), len(sub)
	if m == 0 || m > n {
		return -1
	}
	for i := from; i+m <= n; i++ {
		match := true
		for j := 0; j < m; j++ {
			if toLower(rs[i+j]) != toLower(sub[j]) {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
