package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisplay(t *testing.T) {
	symbols := NewSymbolTable()
	tests := []struct {
		name     string
		input    Value
		expected string
	}{
		{"nil", Nil, "()"},
		{"true", True, "#t"},
		{"false", False, "#f"},
		{"integer", NewInteger(-42), "-42"},
		{"decimal", mustDecimal(t, "2.5"), "2.5"},
		{"string", String("a"), `"a"`},
		{"string escapes", String(`say "hi" \ bye`), `"say \"hi\" \\ bye"`},
		{"symbol", symbols.Intern("name"), "name"},
		{"flat list", List(NewInteger(1), NewInteger(2)), "(1 2)"},
		{"nested list", List(List(NewInteger(1)), Nil), "((1) ())"},
		{"dotted pair", NewCons(NewInteger(1), NewInteger(2)), "(1 . 2)"},
		{
			"dotted tail",
			NewCons(NewInteger(1), NewCons(NewInteger(2), NewInteger(3))),
			"(1 2 . 3)",
		},
		{"quote", List(symbols.Intern("quote"), symbols.Intern("x")), "'x"},
		{"quasiquote", List(symbols.Intern("quasiquote"), symbols.Intern("x")), "`x"},
		{"unquote", List(symbols.Intern("unquote"), symbols.Intern("x")), ",x"},
		{"unquote-splicing", List(symbols.Intern("unquote-splicing"), symbols.Intern("x")), ",@x"},
		{
			// Only two-element quote lists print as shorthand.
			"quote with extra forms",
			List(symbols.Intern("quote"), symbols.Intern("x"), symbols.Intern("y")),
			"(quote x y)",
		},
		{"vector", NewVector(NewInteger(1), String("a")), `<vector: [1 "a"]>`},
		{"primitive", &Primitive{Name: "head"}, "<builtin: head>"},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, Display(tc.input))
		})
	}
}

func TestDisplayProcedure(t *testing.T) {
	symbols := NewSymbolTable()
	proc := &Procedure{
		Body:       symbols.Intern("x"),
		Formals:    []*Symbol{symbols.Intern("x")},
		TailFormal: symbols.Intern("rest"),
	}
	require.Equal(t, "<procedure: (lambda (x . rest) x)>", Display(proc))
}
