// Package engine compiles core forms into continuation chains and reduces
// them with a trampoline.
//
// The call stack of a running program is a chain of heap-allocated
// continuations which grows and shrinks as evaluation proceeds. The
// trampoline applies the current continuation and receives the next one, so
// continuation hand-off never consumes host stack: tail calls are free, and
// unbounded recursion in tail position runs in constant stack.
package engine

import (
	"fmt"

	"github.com/ojacobson/actinide/api"
)

// EvalError is returned when a form cannot be compiled to a continuation, or
// when a compiled chain encounters a value it cannot reduce.
type EvalError struct {
	msg string
}

// Error implements error.
func (e *EvalError) Error() string { return e.msg }

func evalErrorf(format string, args ...interface{}) *EvalError {
	return &EvalError{msg: fmt.Sprintf(format, args...)}
}

// Run reduces a continuation chain to its final values. It iteratively
// applies the current continuation until one signals completion, then returns
// the values it produced. An error abandons the chain: in-flight
// continuations are discarded, and any bindings already defined remain.
func Run(k api.Continuation, env, macros *api.Environment, args []api.Value) ([]api.Value, error) {
	s := &api.State{Env: env, Macros: macros, Values: args}
	for k != nil {
		var err error
		k, s, err = k(s)
		if err != nil {
			return nil, err
		}
	}
	return s.Values, nil
}

// Eval compiles a form and reduces it against the given environments,
// returning the values it produces.
func Eval(form api.Value, symbols *api.SymbolTable, env, macros *api.Environment) ([]api.Value, error) {
	k, err := Compile(form, symbols, nil)
	if err != nil {
		return nil, err
	}
	return Run(k, env, macros, nil)
}

// Call applies a callable value to already-evaluated arguments and returns
// the values it produces. Procedures run under their own captured
// environments; the initial environments here are never consulted. The
// expander uses this to run macro transformers.
func Call(fn api.Value, args []api.Value) ([]api.Value, error) {
	values := append([]api.Value{fn}, args...)
	return Run(invoke(nil), api.NewEnvironment(), api.NewEnvironment(), values)
}

// literal returns a continuation which emits a single value verbatim. This
// implements evaluation for literals.
func literal(value api.Value, k api.Continuation) api.Continuation {
	return func(s *api.State) (api.Continuation, *api.State, error) {
		return k, &api.State{Env: s.Env, Macros: s.Macros, Values: []api.Value{value}}, nil
	}
}

// lookup returns a continuation which emits the value bound to a symbol in
// the current environment chain. This implements evaluation for variable
// references.
func lookup(name *api.Symbol, k api.Continuation) api.Continuation {
	return func(s *api.State) (api.Continuation, *api.State, error) {
		value, err := s.Env.Find(name)
		if err != nil {
			return nil, nil, err
		}
		return k, &api.State{Env: s.Env, Macros: s.Macros, Values: []api.Value{value}}, nil
	}
}

// branch returns a continuation which consumes one value and chains to
// onTrue when it is truthy, onFalse otherwise. Only #f is falsy.
func branch(onTrue, onFalse api.Continuation) api.Continuation {
	return func(s *api.State) (api.Continuation, *api.State, error) {
		if len(s.Values) == 0 {
			return nil, nil, evalErrorf("condition produced no value")
		}
		next := onFalse
		if api.Truthy(s.Values[0]) {
			next = onTrue
		}
		return next, &api.State{Env: s.Env, Macros: s.Macros}, nil
	}
}

// bindTarget selects which environment a bind continuation writes into.
type bindTarget byte

const (
	bindValue bindTarget = iota
	bindMacro
)

// bind returns a continuation which consumes one value, writes it into the
// value or macro environment under the given name, and chains with no
// values. This implements the tail of define and define-macro.
func bind(name *api.Symbol, k api.Continuation, target bindTarget) api.Continuation {
	return func(s *api.State) (api.Continuation, *api.State, error) {
		if len(s.Values) != 1 {
			return nil, nil, evalErrorf("define of %s produced %d values, expected 1", name.Name, len(s.Values))
		}
		if target == bindMacro {
			s.Macros.Define(name, s.Values[0])
		} else {
			s.Env.Define(name, s.Values[0])
		}
		return k, &api.State{Env: s.Env, Macros: s.Macros}, nil
	}
}

// appendTo returns a continuation which prepends a precomputed value list to
// the values it receives before chaining. This accumulates argument lists,
// and is where multi-value results splice into an application.
func appendTo(prefix []api.Value, k api.Continuation) api.Continuation {
	return func(s *api.State) (api.Continuation, *api.State, error) {
		values := make([]api.Value, 0, len(prefix)+len(s.Values))
		values = append(values, prefix...)
		values = append(values, s.Values...)
		return k, &api.State{Env: s.Env, Macros: s.Macros, Values: values}, nil
	}
}

// beginK returns a continuation which keeps only the last value it receives,
// or none, before chaining. This collapses a begin body to its final result.
func beginK(k api.Continuation) api.Continuation {
	return func(s *api.State) (api.Continuation, *api.State, error) {
		values := s.Values
		if len(values) > 1 {
			values = values[len(values)-1:]
		}
		return k, &api.State{Env: s.Env, Macros: s.Macros, Values: values}, nil
	}
}

// invoke returns a continuation which consumes a callee and its evaluated
// arguments. Primitives are called directly and their result tuple chains
// onward. Procedures jump into their precompiled body under a fresh
// invocation environment, with tailGraft arranging the eventual return to the
// caller's environments.
func invoke(k api.Continuation) api.Continuation {
	return func(s *api.State) (api.Continuation, *api.State, error) {
		if len(s.Values) == 0 {
			return nil, nil, evalErrorf("cannot invoke an empty application")
		}
		callee, args := s.Values[0], s.Values[1:]
		switch fn := callee.(type) {
		case *api.Primitive:
			results, err := fn.Func(args)
			if err != nil {
				return nil, nil, err
			}
			return k, &api.State{Env: s.Env, Macros: s.Macros, Values: results}, nil
		case *api.Procedure:
			callEnv, err := fn.InvocationEnvironment(args)
			if err != nil {
				return nil, nil, err
			}
			callMacros := fn.Macros.Child(nil)
			next := tailGraft(k, s.Env, s.Macros, fn.Compiled)
			return next, &api.State{Env: callEnv, Macros: callMacros}, nil
		default:
			return nil, nil, evalErrorf("%s is not callable", api.Display(callee))
		}
	}
}

// tailGraft arranges the return from a procedure call. With no target
// continuation the call is a proper tail call: the callee chain is returned
// unchanged and the caller frame is already gone. Otherwise the callee chain
// is wrapped so that, when it eventually completes with result values, the
// target continuation resumes under the caller's environments. Intermediate
// continuations are re-wrapped by the same rule, so nested non-tail calls
// inside the callee restore the correct environments too.
//
// This is the one mechanism that preserves lexical scope across calls without
// an explicit frame stack.
func tailGraft(k api.Continuation, callerEnv, callerMacros *api.Environment, guarded api.Continuation) api.Continuation {
	if k == nil {
		return guarded
	}
	return func(s *api.State) (api.Continuation, *api.State, error) {
		next, ns, err := guarded(s)
		if err != nil {
			return nil, nil, err
		}
		if next == nil {
			return k, &api.State{Env: callerEnv, Macros: callerMacros, Values: ns.Values}, nil
		}
		return tailGraft(k, callerEnv, callerMacros, next), ns, nil
	}
}

// Compile translates a core form into a continuation chain targeting k. Every
// valid form translates through this factory: literals, symbols, the six
// special forms, and applications.
func Compile(form api.Value, symbols *api.SymbolTable, k api.Continuation) (api.Continuation, error) {
	if name, ok := form.(*api.Symbol); ok {
		return lookup(name, k), nil
	}
	if !api.IsCons(form) {
		return literal(form, k), nil
	}
	if !api.IsList(form) {
		return nil, evalErrorf("cannot evaluate dotted form %s", api.Display(form))
	}
	c := form.(*api.Cons)
	if head, ok := c.Head.(*api.Symbol); ok {
		switch head {
		case symbols.Intern("quote"):
			return compileQuote(c.Tail, k)
		case symbols.Intern("if"):
			return compileIf(c.Tail, symbols, k)
		case symbols.Intern("define"):
			return compileDefine(c.Tail, symbols, k, bindValue)
		case symbols.Intern("define-macro"):
			return compileDefine(c.Tail, symbols, k, bindMacro)
		case symbols.Intern("lambda"):
			return compileLambda(c.Tail, symbols, k)
		case symbols.Intern("begin"):
			return compileApply(c.Tail, symbols, beginK(k))
		}
	}
	return compileApply(form, symbols, invoke(k))
}

// compileQuote emits the quoted datum verbatim, without evaluating it.
func compileQuote(rest api.Value, k api.Continuation) (api.Continuation, error) {
	parts, ok := api.Flatten(rest)
	if !ok || len(parts) != 1 {
		return nil, evalErrorf("malformed quote form")
	}
	return literal(parts[0], k), nil
}

// compileIf evaluates the condition into a branch between the precompiled
// arms; both arms target the same continuation.
func compileIf(rest api.Value, symbols *api.SymbolTable, k api.Continuation) (api.Continuation, error) {
	parts, ok := api.Flatten(rest)
	if !ok || len(parts) != 3 {
		return nil, evalErrorf("malformed if form %s", api.Display(rest))
	}
	onTrue, err := Compile(parts[1], symbols, k)
	if err != nil {
		return nil, err
	}
	onFalse, err := Compile(parts[2], symbols, k)
	if err != nil {
		return nil, err
	}
	return Compile(parts[0], symbols, branch(onTrue, onFalse))
}

// compileDefine evaluates the definition body into a bind against the value
// or macro environment. The defined name must be a symbol.
func compileDefine(rest api.Value, symbols *api.SymbolTable, k api.Continuation, target bindTarget) (api.Continuation, error) {
	parts, ok := api.Flatten(rest)
	if !ok || len(parts) != 2 {
		return nil, evalErrorf("malformed define form %s", api.Display(rest))
	}
	name, ok := parts[0].(*api.Symbol)
	if !ok {
		return nil, evalErrorf("argument to define not a symbol: %s", api.Display(parts[0]))
	}
	return Compile(parts[1], symbols, bind(name, k, target))
}

// compileLambda precompiles the body once, at compile time, targeting the
// completion signal. The resulting continuation constructs a procedure
// capturing the environments current at the point the lambda form evaluates.
func compileLambda(rest api.Value, symbols *api.SymbolTable, k api.Continuation) (api.Continuation, error) {
	parts, ok := api.Flatten(rest)
	if !ok || len(parts) != 2 {
		return nil, evalErrorf("malformed lambda form %s", api.Display(rest))
	}
	formals, tailFormal, err := api.ParseFormals(parts[0])
	if err != nil {
		return nil, evalErrorf("malformed lambda formals: %v", err)
	}
	body := parts[1]
	compiled, err := Compile(body, symbols, nil)
	if err != nil {
		return nil, err
	}
	return func(s *api.State) (api.Continuation, *api.State, error) {
		proc := &api.Procedure{
			Body:       body,
			Formals:    formals,
			TailFormal: tailFormal,
			Env:        s.Env,
			Macros:     s.Macros,
			Compiled:   compiled,
		}
		return k, &api.State{Env: s.Env, Macros: s.Macros, Values: []api.Value{proc}}, nil
	}, nil
}

// compileApply evaluates each element of a list left to right, splicing every
// result tuple onto the accumulated argument list, and finally chains the
// flattened tuple to k. Each element is compiled to a terminated chain;
// tailGraft routes its results onto the accumulator while restoring the
// current environments between elements.
func compileApply(list api.Value, symbols *api.SymbolTable, k api.Continuation) (api.Continuation, error) {
	if api.IsNil(list) {
		return func(s *api.State) (api.Continuation, *api.State, error) {
			return k, s, nil
		}, nil
	}
	c, ok := list.(*api.Cons)
	if !ok {
		return nil, evalErrorf("cannot evaluate dotted form %s", api.Display(list))
	}
	headK, err := Compile(c.Head, symbols, nil)
	if err != nil {
		return nil, err
	}
	tailK, err := compileApply(c.Tail, symbols, k)
	if err != nil {
		return nil, err
	}
	return func(s *api.State) (api.Continuation, *api.State, error) {
		next := tailGraft(appendTo(s.Values, tailK), s.Env, s.Macros, headK)
		return next, &api.State{Env: s.Env, Macros: s.Macros}, nil
	}, nil
}
