package hidefeature

import "strings"

// Directive is one recognized `{{#kind target}}` token. Start and End are
// byte offsets into the scanned text, End exclusive.
type Directive struct {
	Start int
	End   int
	Pos   Position // position of Start
	Kind  Kind
	Raw   string // exact matched text
}

// Kind is the closed set of directive variants. Each variant carries its
// own payload; resolution is a type switch in Resolver.Resolve.
type Kind interface{ isKind() }

// IncludeWithFilter loads Path relative to the resolution base and
// suppresses every block opened by a `#[cfg(feature = "<Marker>")]` line.
type IncludeWithFilter struct {
	Path   string
	Marker string
	Props  []string // trailing space separated tokens, uninterpreted
}

func (IncludeWithFilter) isKind() {}

// ===== Plugins =====

// KindPlugin turns the target of a directive into a Kind. It returns false
// when the target is not acceptable, in which case the directive text is
// left in the document untouched.
type KindPlugin interface {
	// Names returns the directive kind names handled by this plugin.
	Names() []string
	Parse(path string, props []string) (Kind, bool)
}

// Registry maps directive kind names to plugins. Names are case-sensitive.
type Registry struct {
	byName map[string]KindPlugin
}

func NewRegistry() *Registry {
	return &Registry{byName: map[string]KindPlugin{}}
}

func (r *Registry) Register(p KindPlugin) {
	for _, n := range p.Names() {
		r.byName[n] = p
	}
}

func (r *Registry) get(name string) (KindPlugin, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// DefaultRegistry returns a registry with the includehidetest directive
// bound to the given feature marker.
func DefaultRegistry(marker string) *Registry {
	reg := NewRegistry()
	reg.Register(IncludeFilterPlugin{Name: "includehidetest", Marker: marker})
	return reg
}

// splitTarget separates the path from the trailing property tokens.
func splitTarget(target string) (path string, props []string, ok bool) {
	fields := strings.Fields(target)
	if len(fields) == 0 {
		return "", nil, false
	}
	return fields[0], fields[1:], true
}
