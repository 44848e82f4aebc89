package hidefeature

import "log/slog"

// EscapePolicy controls how an escaped directive (`\{{#...}}`) is written
// to the output. Escaped directives are never resolved under any policy.
type EscapePolicy int

const (
	EscapeKeep  EscapePolicy = iota // verbatim, backslash included
	EscapeStrip                     // drop the single leading backslash
)

type Engine struct {
	scanner  *Scanner
	resolver *Resolver
	loader   Loader
	escape   EscapePolicy
	log      *slog.Logger
}
