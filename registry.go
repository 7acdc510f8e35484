package actinide

import "github.com/ojacobson/actinide/api"

// Registry collects bindings, macros, and seed source so that a host package
// can be loaded into any Session to provide additional functions and syntax.
//
// # Notes
//
//   - Registry is mutable: each method returns the same instance for
//     chaining.
//   - Nothing touches a Session until Apply: entries are recorded in order
//     and installed in order.
type Registry struct {
	entries []registryEntry
}

type registryEntry struct {
	name   string
	value  api.Value
	fn     func(args []api.Value) ([]api.Value, error)
	macro  bool
	source string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Bind records a value binding.
func (r *Registry) Bind(name string, value api.Value) *Registry {
	r.entries = append(r.entries, registryEntry{name: name, value: value})
	return r
}

// Builtin records a primitive with the full tuple calling convention.
func (r *Registry) Builtin(name string, fn func(args []api.Value) ([]api.Value, error)) *Registry {
	r.entries = append(r.entries, registryEntry{name: name, fn: fn})
	return r
}

// Fn records a primitive which returns exactly one value.
func (r *Registry) Fn(name string, fn func(args []api.Value) (api.Value, error)) *Registry {
	return r.Builtin(name, wrapFn(fn))
}

// Void records a primitive which returns no values.
func (r *Registry) Void(name string, fn func(args []api.Value) error) *Registry {
	return r.Builtin(name, wrapVoid(fn))
}

// MacroBind records a macro transformer binding.
func (r *Registry) MacroBind(name string, transformer api.Value) *Registry {
	r.entries = append(r.entries, registryEntry{name: name, value: transformer, macro: true})
	return r
}

// MacroBuiltin records a host-implemented macro transformer. The transformer
// receives unevaluated argument forms and must return exactly one expansion.
func (r *Registry) MacroBuiltin(name string, fn func(args []api.Value) ([]api.Value, error)) *Registry {
	r.entries = append(r.entries, registryEntry{name: name, fn: fn, macro: true})
	return r
}

// Eval records seed source evaluated at apply time, after any bindings
// recorded before it.
func (r *Registry) Eval(source string) *Registry {
	r.entries = append(r.entries, registryEntry{source: source})
	return r
}

// Apply installs every recorded entry into the session, in order. Seed
// source failures abort the application.
func (r *Registry) Apply(s *Session) error {
	for _, entry := range r.entries {
		switch {
		case entry.source != "":
			if _, err := s.Run(entry.source); err != nil {
				return err
			}
		case entry.fn != nil && entry.macro:
			s.MacroBind(entry.name, &api.Primitive{Name: entry.name, Func: entry.fn})
		case entry.fn != nil:
			s.BindPrimitive(entry.name, entry.fn)
		case entry.macro:
			s.MacroBind(entry.name, entry.value)
		default:
			s.Bind(entry.name, entry.value)
		}
	}
	return nil
}
