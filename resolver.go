package hidefeature

import "log/slog"

// Resolver produces the replacement text of a directive.
type Resolver struct {
	loader Loader
	log    *slog.Logger
}

func NewResolver(loader Loader, log *slog.Logger) *Resolver {
	if loader == nil {
		loader = DirLoader{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Resolver{loader: loader, log: log}
}

// Resolve returns the replacement for d. Relative paths are resolved
// against base. Loader failures are returned as *UnresolvedFileError.
func (r *Resolver) Resolve(d Directive, base string) (string, error) {
	switch k := d.Kind.(type) {
	case IncludeWithFilter:
		contents, err := r.loader.Load(base, k.Path)
		if err != nil {
			return "", &UnresolvedFileError{
				DirectiveError: DirectiveError{Pos: d.Pos, Directive: d.Raw, Message: "could not read file"},
				Path:           k.Path,
				Err:            err,
			}
		}
		out, st := hideFeature(contents, k.Marker)
		if st.skipping {
			r.log.Warn("feature block never closed, hidden to end of file",
				"path", k.Path, "marker", k.Marker, "depth", st.depth)
		}
		return out, nil
	default:
		return "", &UnsupportedKindError{
			DirectiveError: DirectiveError{Pos: d.Pos, Directive: d.Raw, Message: "unsupported directive kind"},
			Kind:           d.Kind,
		}
	}
}
