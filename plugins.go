package hidefeature

// DefaultMarker is the feature name hidden by the includehidetest directive.
const DefaultMarker = "test"

// IncludeFilterPlugin produces IncludeWithFilter directives for Name.
type IncludeFilterPlugin struct {
	Name   string
	Marker string
}

func (p IncludeFilterPlugin) Names() []string { return []string{p.Name} }

func (p IncludeFilterPlugin) Parse(path string, props []string) (Kind, bool) {
	if path == "" {
		return nil, false
	}
	marker := p.Marker
	if marker == "" {
		marker = DefaultMarker
	}
	return IncludeWithFilter{Path: path, Marker: marker, Props: props}, true
}
