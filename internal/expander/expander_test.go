package expander

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ojacobson/actinide/api"
	"github.com/ojacobson/actinide/internal/ports"
	"github.com/ojacobson/actinide/internal/reader"
)

func read(t *testing.T, symbols *api.SymbolTable, input string) api.Value {
	t.Helper()
	form, err := reader.Read(ports.FromString(input), symbols)
	require.NoError(t, err)
	return form
}

// expandsTo reads both sources through one symbol table and requires the
// first to expand into the second.
func expandsTo(t *testing.T, input, expected string) {
	t.Helper()
	symbols := api.NewSymbolTable()
	macros := api.NewEnvironment()

	expanded, err := Expand(read(t, symbols, input), symbols, macros)
	require.NoError(t, err)
	require.True(t, api.Equal(read(t, symbols, expected), expanded),
		"%q expanded to %s", input, api.Display(expanded))
}

func TestExpandLeavesCoreFormsAlone(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"literal", "42"},
		{"symbol", "x"},
		{"application", "(f 1 2)"},
		{"full if", "(if c t f)"},
		{"plain define", "(define x 1)"},
		{"normalised lambda", "(lambda (x) x)"},
		{"begin", "(begin 1 2)"},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			expandsTo(t, tc.input, tc.input)
		})
	}
}

func TestExpandQuoteIsOpaque(t *testing.T) {
	// No rewriting happens below a quote.
	expandsTo(t, "(quote (if c t))", "(quote (if c t))")
	expandsTo(t, "'(lambda (x))", "(quote (lambda (x)))")
}

func TestExpandIf(t *testing.T) {
	expandsTo(t, "(if c t)", "(if c t ())")
	// Sub-forms expand too.
	expandsTo(t, "(if c (if d e) f)", "(if c (if d e ()) f)")
}

func TestExpandDefine(t *testing.T) {
	expandsTo(t, "(define (f a b) a)", "(define f (lambda (a b) a))")
	expandsTo(t, "(define (f a b) a b)", "(define f (lambda (a b) (begin a b)))")
	expandsTo(t, "(define (f . args) args)", "(define f (lambda args args))")
	expandsTo(t, "(define-macro (m a) a)", "(define-macro m (lambda (a) a))")
}

func TestExpandLambda(t *testing.T) {
	expandsTo(t, "(lambda (x))", "(lambda (x) (begin))")
	expandsTo(t, "(lambda (x) a b)", "(lambda (x) (begin a b))")
	expandsTo(t, "(lambda (x) (lambda (y)))", "(lambda (x) (lambda (y) (begin)))")
}

func TestExpandQuasiquote(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"atom", "`a", "(quote a)"},
		{"integer", "`1", "(quote 1)"},
		{"empty list", "`()", "()"},
		{"unquote", "`,b", "b"},
		{"list", "`(a ,b c)", "(cons 'a (cons b (cons 'c ())))"},
		{"nested", "`((,a))", "(cons (cons a ()) ())"},
		{"leading unquote", "`(,a b)", "(cons a (cons 'b ()))"},
		{"splicing", "`(,@a b)", "(append a (cons 'b ()))"},
		{"splicing at tail", "`(a ,@b)", "(cons 'a (append b ()))"},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			expandsTo(t, tc.input, tc.expected)
		})
	}
}

func TestExpandMacro(t *testing.T) {
	symbols := api.NewSymbolTable()
	macros := api.NewEnvironment()

	// (twice f) => (f f), implemented as a host transformer.
	macros.Define(symbols.Intern("twice"), &api.Primitive{
		Name: "twice",
		Func: func(args []api.Value) ([]api.Value, error) {
			return []api.Value{api.List(args[0], args[0])}, nil
		},
	})

	expanded, err := Expand(read(t, symbols, "(twice pp)"), symbols, macros)
	require.NoError(t, err)
	require.True(t, api.Equal(read(t, symbols, "(pp pp)"), expanded))
}

func TestExpandMacroFixpoint(t *testing.T) {
	symbols := api.NewSymbolTable()
	macros := api.NewEnvironment()

	// (outer x) => (inner x) => (done x): expansion continues until no macro
	// heads remain.
	macros.Define(symbols.Intern("outer"), &api.Primitive{
		Name: "outer",
		Func: func(args []api.Value) ([]api.Value, error) {
			return []api.Value{api.NewCons(symbols.Intern("inner"), api.List(args...))}, nil
		},
	})
	macros.Define(symbols.Intern("inner"), &api.Primitive{
		Name: "inner",
		Func: func(args []api.Value) ([]api.Value, error) {
			return []api.Value{api.NewCons(symbols.Intern("done"), api.List(args...))}, nil
		},
	})

	expanded, err := Expand(read(t, symbols, "(outer x)"), symbols, macros)
	require.NoError(t, err)
	require.True(t, api.Equal(read(t, symbols, "(done x)"), expanded))
}

func TestExpandMacroInSubform(t *testing.T) {
	symbols := api.NewSymbolTable()
	macros := api.NewEnvironment()

	macros.Define(symbols.Intern("two"), &api.Primitive{
		Name: "two",
		Func: func(args []api.Value) ([]api.Value, error) {
			return []api.Value{api.NewInteger(2)}, nil
		},
	})

	expanded, err := Expand(read(t, symbols, "(+ 1 (two))"), symbols, macros)
	require.NoError(t, err)
	require.True(t, api.Equal(read(t, symbols, "(+ 1 2)"), expanded))
}

func TestExpandErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"if with no branches", "(if c)"},
		{"if with extra forms", "(if c t f g)"},
		{"define with no value", "(define x)"},
		{"define with extra values", "(define x 1 2)"},
		{"lambda with no formals", "(lambda)"},
		{"quasiquote with no body", "(quasiquote)"},
		{"unquote with no body", "`(a (unquote))"},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			symbols := api.NewSymbolTable()
			macros := api.NewEnvironment()

			_, err := Expand(read(t, symbols, tc.input), symbols, macros)
			var expansionErr *ExpansionError
			require.ErrorAs(t, err, &expansionErr)
		})
	}
}

func TestExpandMacroRejectsMultipleValues(t *testing.T) {
	symbols := api.NewSymbolTable()
	macros := api.NewEnvironment()

	macros.Define(symbols.Intern("split"), &api.Primitive{
		Name: "split",
		Func: func(args []api.Value) ([]api.Value, error) {
			return []api.Value{api.NewInteger(1), api.NewInteger(2)}, nil
		},
	})

	_, err := Expand(read(t, symbols, "(split)"), symbols, macros)
	require.EqualError(t, err, "macro split expanded to 2 values, expected 1")
}
