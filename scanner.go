package hidefeature

import (
	"iter"
	"regexp"
)

// Escaped link first, then `{{#kind target props}}`.
const directivePattern = `\\\{\{#.*?\}\}` +
	`|\{\{\s*#([a-zA-Z0-9]+)\s+([a-zA-Z0-9\s_.\-:/\\]+)\s*\}\}`

// Scanner finds directives in text. The compiled pattern is read-only, so
// one Scanner may be shared by any number of goroutines.
type Scanner struct {
	re  *regexp.Regexp
	reg *Registry
}

func NewScanner(reg *Registry) *Scanner {
	return &Scanner{re: regexp.MustCompile(directivePattern), reg: reg}
}

// token is a scanner hit: either a directive or an escaped one.
type token struct {
	Directive
	escaped bool
}

// Scan returns the directives of src in order of occurrence. Escaped
// directives, unknown kinds and unusable targets are not yielded.
func (s *Scanner) Scan(src string) iter.Seq[Directive] {
	return func(yield func(Directive) bool) {
		for tok := range s.tokens(src) {
			if tok.escaped {
				continue
			}
			if !yield(tok.Directive) {
				return
			}
		}
	}
}

func (s *Scanner) tokens(src string) iter.Seq[token] {
	return func(yield func(token) bool) {
		pos := 0
		var lines lineCounter
		for pos < len(src) {
			loc := s.re.FindStringSubmatchIndex(src[pos:])
			if loc == nil {
				return
			}
			base := pos
			start, end := base+loc[0], base+loc[1]
			pos = end

			d := Directive{Start: start, End: end, Pos: lines.advance(src, start), Raw: src[start:end]}
			if loc[2] < 0 {
				if !yield(token{Directive: d, escaped: true}) {
					return
				}
				continue
			}

			name := src[base+loc[2] : base+loc[3]]
			target := src[base+loc[4] : base+loc[5]]
			kind, ok := s.parse(name, target)
			if !ok {
				continue
			}
			d.Kind = kind
			if !yield(token{Directive: d}) {
				return
			}
		}
	}
}

func (s *Scanner) parse(name, target string) (Kind, bool) {
	p, ok := s.reg.get(name)
	if !ok {
		return nil, false
	}
	path, props, ok := splitTarget(target)
	if !ok {
		return nil, false
	}
	return p.Parse(path, props)
}

// lineCounter converts increasing byte offsets into positions without
// rescanning the text from the beginning.
type lineCounter struct {
	offset    int
	line      int
	lineStart int
}

func (c *lineCounter) advance(src string, offset int) Position {
	if c.line == 0 {
		c.line = 1
	}
	for i := c.offset; i < offset; i++ {
		if src[i] == '\n' {
			c.line++
			c.lineStart = i + 1
		}
	}
	c.offset = offset
	return Position{Line: c.line, Column: offset - c.lineStart + 1}
}
