package hidefeature

import (
	"log/slog"
	"strings"
)

// NewEngine returns an engine recognizing the directive kinds of reg.
// Files are read from the local filesystem unless WithLoader is given.
func NewEngine(reg *Registry, opts ...func(*Engine)) *Engine {
	e := &Engine{
		scanner: NewScanner(reg),
		escape:  EscapeKeep,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(e)
	}
	e.resolver = NewResolver(e.loader, e.log)
	return e
}

func WithEscapePolicy(p EscapePolicy) func(*Engine) {
	return func(e *Engine) { e.escape = p }
}

// WithLogger sets the logger used by the engine and its resolver.
func WithLogger(l *slog.Logger) func(*Engine) {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithLoader replaces the filesystem loader.
func WithLoader(l Loader) func(*Engine) {
	return func(e *Engine) { e.loader = l }
}

// Scanner returns the engine's scanner.
func (e *Engine) Scanner() *Scanner { return e.scanner }

// ReplaceAll returns src with every directive replaced by its resolved
// content. Text between directives is copied verbatim. Resolved content is
// not scanned again. On error the partial output is discarded.
func (e *Engine) ReplaceAll(src, base string) (string, error) {
	var out strings.Builder
	cursor := 0
	n := 0

	for tok := range e.scanner.tokens(src) {
		out.WriteString(src[cursor:tok.Start])
		cursor = tok.End

		if tok.escaped {
			raw := tok.Raw
			if e.escape == EscapeStrip {
				raw = raw[1:]
			}
			out.WriteString(raw)
			continue
		}

		rendered, err := e.resolver.Resolve(tok.Directive, base)
		if err != nil {
			return "", withContext(err, src)
		}
		out.WriteString(rendered)
		n++
	}

	if n == 0 && cursor == 0 {
		return src, nil
	}
	out.WriteString(src[cursor:])
	e.log.Debug("directives expanded", "count", n, "base", base)
	return out.String(), nil
}
