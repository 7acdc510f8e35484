package api

import "fmt"

// ProcedureError is returned when a procedure is applied to an argument tuple
// its formals cannot bind.
type ProcedureError struct {
	// Formals is the display of the procedure's formal spec.
	Formals string
	// Args is the display of the actual argument list.
	Args string
}

// Error implements error.
func (e *ProcedureError) Error() string {
	return fmt.Sprintf("procedure with arguments %s called with arguments %s", e.Formals, e.Args)
}

// Procedure is a user-defined closure: the compiled body of a lambda form,
// together with the environments captured at the point the lambda was
// evaluated.
//
// The record is immutable after construction. Invoking a procedure never
// mutates the captured environments; each call builds a fresh child of each.
type Procedure struct {
	// Body is the (expanded) body form, retained for the printer.
	Body Value
	// Formals are the positional parameter names.
	Formals []*Symbol
	// TailFormal, when present, binds the rest-list for a dotted formal spec.
	TailFormal *Symbol
	// Env is the value environment captured at construction.
	Env *Environment
	// Macros is the macro environment captured at construction.
	Macros *Environment
	// Compiled is the body precompiled to a continuation chain terminating in
	// the completion signal.
	Compiled Continuation
}

// Kind implements Value.Kind.
func (*Procedure) Kind() Kind { return KindProcedure }

// ParseFormals destructures a lambda formal spec. A bare symbol binds the
// entire argument list; a proper list binds positionally; a dotted list binds
// positionally with the final tail symbol receiving the rest-list.
func ParseFormals(spec Value) (formals []*Symbol, tailFormal *Symbol, err error) {
	rest := spec
	for IsCons(rest) {
		c := rest.(*Cons)
		name, ok := c.Head.(*Symbol)
		if !ok {
			return nil, nil, fmt.Errorf("formal %s is not a symbol", Display(c.Head))
		}
		formals = append(formals, name)
		rest = c.Tail
	}
	if IsNil(rest) {
		return formals, nil, nil
	}
	name, ok := rest.(*Symbol)
	if !ok {
		return nil, nil, fmt.Errorf("formal %s is not a symbol", Display(rest))
	}
	return formals, name, nil
}

// FormalsSyntax reconstructs the formal spec as a value, for the printer and
// for arity errors.
func (p *Procedure) FormalsSyntax() Value {
	var tail Value = Nil
	if p.TailFormal != nil {
		tail = p.TailFormal
	}
	result := tail
	for i := len(p.Formals) - 1; i >= 0; i-- {
		result = NewCons(p.Formals[i], result)
	}
	return result
}

// InvocationEnvironment builds the environment a call executes in: a fresh
// child of the captured environment binding each formal to the corresponding
// argument, and the tail formal (if any) to the list of remaining arguments.
// An argument tuple the formals cannot bind is a *ProcedureError.
func (p *Procedure) InvocationEnvironment(args []Value) (*Environment, error) {
	n := len(p.Formals)
	if len(args) < n || (len(args) > n && p.TailFormal == nil) {
		actual := List(args...)
		return nil, &ProcedureError{
			Formals: Display(p.FormalsSyntax()),
			Args:    Display(actual),
		}
	}
	bindings := make(map[*Symbol]Value, n+1)
	for i, formal := range p.Formals {
		bindings[formal] = args[i]
	}
	if p.TailFormal != nil {
		bindings[p.TailFormal] = List(args[n:]...)
	}
	return p.Env.Child(bindings), nil
}
