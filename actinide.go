// Package actinide provides an embeddable lisp interpreter.
//
// A Session owns a symbol table, a value environment, and a macro
// environment, and drives the read, expand, evaluate pipeline over character
// input. Host code extends a session through the binding surface (Bind,
// BindPrimitive, MacroBind) or by applying a Registry.
//
// Here's an example of evaluating a program:
//
//	s := actinide.NewSession()
//	results, err := s.Run("(+ 1 2 3)")
//
// Sessions are single-threaded: host code must not share one between
// goroutines without external synchronization.
package actinide

import (
	"io"
	"strings"

	"github.com/ojacobson/actinide/api"
	"github.com/ojacobson/actinide/internal/engine"
	"github.com/ojacobson/actinide/internal/expander"
	"github.com/ojacobson/actinide/internal/ports"
	"github.com/ojacobson/actinide/internal/reader"
)

// EOF is the sentinel returned by Read at the end of input. It never
// compares equal to any value produced by the reader.
var EOF = reader.EOF

// SessionConfig configures a Session before construction.
//
// Note: SessionConfig is mutable: each With method returns the same instance
// for chaining.
type SessionConfig interface {
	// WithoutStdlib skips binding the core primitives, leaving a bare
	// session: only the six special forms work until the embedder binds
	// something.
	WithoutStdlib() SessionConfig
}

// NewSessionConfig returns a SessionConfig with the stdlib enabled.
func NewSessionConfig() SessionConfig {
	return &sessionConfig{stdlib: true}
}

type sessionConfig struct {
	stdlib bool
}

// WithoutStdlib implements SessionConfig.WithoutStdlib.
func (c *sessionConfig) WithoutStdlib() SessionConfig {
	c.stdlib = false
	return c
}

// Session binds the interpreter components together: one symbol table, one
// global value environment, and one global macro environment.
type Session struct {
	symbols *api.SymbolTable
	env     *api.Environment
	macros  *api.Environment
}

// NewSession returns a session with the core primitives bound.
func NewSession() *Session {
	return NewSessionWithConfig(NewSessionConfig())
}

// NewSessionWithConfig returns a session configured by config.
func NewSessionWithConfig(config SessionConfig) *Session {
	s := &Session{
		symbols: api.NewSymbolTable(),
		env:     api.NewEnvironment(),
		macros:  api.NewEnvironment(),
	}
	if c, ok := config.(*sessionConfig); !ok || c.stdlib {
		s.bindStdlib()
	}
	return s
}

// Symbol interns name in the session's symbol table.
func (s *Session) Symbol(name string) *api.Symbol {
	return s.symbols.Intern(name)
}

// Symbols returns the session's symbol table.
func (s *Session) Symbols() *api.SymbolTable {
	return s.symbols
}

// Environment returns the session's global value environment.
func (s *Session) Environment() *api.Environment {
	return s.env
}

// Macros returns the session's global macro environment.
func (s *Session) Macros() *api.Environment {
	return s.macros
}

// Bind installs a value in the global environment under name.
func (s *Session) Bind(name string, value api.Value) {
	s.env.Define(s.Symbol(name), value)
}

// BindPrimitive installs a host callable. The function receives the
// evaluated argument tuple and returns a result tuple; in application
// position result tuples are flattened into the surrounding argument list.
func (s *Session) BindPrimitive(name string, fn func(args []api.Value) ([]api.Value, error)) {
	s.Bind(name, &api.Primitive{Name: name, Func: fn})
}

// BindFn installs a host function which returns exactly one value.
func (s *Session) BindFn(name string, fn func(args []api.Value) (api.Value, error)) {
	s.BindPrimitive(name, wrapFn(fn))
}

// BindVoid installs a host function which returns no values.
func (s *Session) BindVoid(name string, fn func(args []api.Value) error) {
	s.BindPrimitive(name, wrapVoid(fn))
}

// MacroBind installs a macro transformer. Transformers are ordinary callable
// values: the expander applies them to the unevaluated argument forms and
// re-expands their single-value result.
func (s *Session) MacroBind(name string, transformer api.Value) {
	s.macros.Define(s.Symbol(name), transformer)
}

// Get returns the value bound to name in the global environment.
func (s *Session) Get(name string) (api.Value, error) {
	return s.env.Find(s.Symbol(name))
}

// ReadString reads one form from source and expands it. At the end of input
// it returns the EOF sentinel.
func (s *Session) ReadString(source string) (api.Value, error) {
	port := ports.FromString(source)
	form, err := reader.Read(port, s.symbols)
	if err != nil || form == reader.EOF {
		return form, err
	}
	return s.Expand(form)
}

// Expand rewrites a form into the core language under the session's macro
// environment.
func (s *Session) Expand(form api.Value) (api.Value, error) {
	return expander.Expand(form, s.symbols, s.macros)
}

// EvalForm compiles and evaluates an already-expanded form against the
// session's global environments, returning the values it produces.
func (s *Session) EvalForm(form api.Value) ([]api.Value, error) {
	return engine.Eval(form, s.symbols, s.env, s.macros)
}

// Run reads, expands, and evaluates every form in source, returning the
// values of the last form.
func (s *Session) Run(source string) ([]api.Value, error) {
	return s.RunReader(strings.NewReader(source))
}

// RunReader reads, expands, and evaluates forms from r until the end of
// input, returning the values of the last form. An error aborts the current
// form and discards its in-flight continuations, but bindings already
// defined remain: partial defines persist, matching read-eval-print
// behaviour.
func (s *Session) RunReader(r io.Reader) ([]api.Value, error) {
	port := ports.New(r)
	var results []api.Value
	for {
		form, err := reader.Read(port, s.symbols)
		if err != nil {
			return nil, err
		}
		if form == reader.EOF {
			return results, nil
		}
		expanded, err := s.Expand(form)
		if err != nil {
			return nil, err
		}
		results, err = s.EvalForm(expanded)
		if err != nil {
			return nil, err
		}
	}
}

// Display prints a value back to readable text.
func (s *Session) Display(v api.Value) string {
	return api.Display(v)
}

// wrapFn adapts a one-value host function to the primitive calling
// convention.
func wrapFn(fn func(args []api.Value) (api.Value, error)) func(args []api.Value) ([]api.Value, error) {
	return func(args []api.Value) ([]api.Value, error) {
		result, err := fn(args)
		if err != nil {
			return nil, err
		}
		return []api.Value{result}, nil
	}
}

// wrapVoid adapts a no-value host function to the primitive calling
// convention.
func wrapVoid(fn func(args []api.Value) error) func(args []api.Value) ([]api.Value, error) {
	return func(args []api.Value) ([]api.Value, error) {
		if err := fn(args); err != nil {
			return nil, err
		}
		return nil, nil
	}
}
