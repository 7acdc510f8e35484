package api

import "fmt"

// BindingError is returned when a symbol cannot be found in an environment
// chain.
type BindingError struct {
	// Name is the text of the unbound symbol.
	Name string
}

// Error implements error.
func (e *BindingError) Error() string {
	return fmt.Sprintf("variable %s not bound", e.Name)
}

// Environment is one node of a lexical-scope chain, binding symbols to
// values. Lookups fall through to the parent when a name is absent; defines
// always write into the receiving node, so parent environments are never
// mutated by child defines.
type Environment struct {
	vars   map[*Symbol]Value
	parent *Environment
}

// NewEnvironment returns an environment with no bindings and no parent.
func NewEnvironment() *Environment {
	return &Environment{vars: map[*Symbol]Value{}}
}

// Child returns a new environment whose parent is e, initialised from
// bindings. The parent is shared, not copied: children hold a reference to
// the parent and parents never reference children.
func (e *Environment) Child(bindings map[*Symbol]Value) *Environment {
	vars := make(map[*Symbol]Value, len(bindings))
	for name, value := range bindings {
		vars[name] = value
	}
	return &Environment{vars: vars, parent: e}
}

// Define binds name to value in this node, overwriting any existing binding
// in this node. Bindings in ancestors are shadowed, not modified.
func (e *Environment) Define(name *Symbol, value Value) {
	e.vars[name] = value
}

// Find looks name up in this node, then in each ancestor in turn. The value
// from the innermost environment containing the name wins. A name bound
// nowhere in the chain is a *BindingError.
func (e *Environment) Find(name *Symbol) (Value, error) {
	for node := e; node != nil; node = node.parent {
		if value, ok := node.vars[name]; ok {
			return value, nil
		}
	}
	return nil, &BindingError{Name: name.Name}
}

// Defined reports whether name is bound in this node or any ancestor.
func (e *Environment) Defined(name *Symbol) bool {
	_, err := e.Find(name)
	return err == nil
}
