package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindName(t *testing.T) {
	tests := []struct {
		input    Kind
		expected string
	}{
		{KindNil, "nil"},
		{KindBoolean, "boolean"},
		{KindInteger, "integer"},
		{KindDecimal, "decimal"},
		{KindString, "string"},
		{KindSymbol, "symbol"},
		{KindCons, "cons"},
		{KindVector, "vector"},
		{KindProcedure, "procedure"},
		{KindPrimitive, "primitive"},
		{KindPort, "port"},
		{0xff, "unknown"},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.expected, func(t *testing.T) {
			require.Equal(t, tc.expected, KindName(tc.input))
		})
	}
}

func TestPredicates(t *testing.T) {
	symbols := NewSymbolTable()
	tests := []struct {
		name  string
		input Value
		test  func(Value) bool
	}{
		{"nil", Nil, IsNil},
		{"boolean", True, IsBoolean},
		{"integer", NewInteger(42), IsInteger},
		{"decimal", mustDecimal(t, "4.2"), IsDecimal},
		{"string", String("text"), IsString},
		{"symbol", symbols.Intern("name"), IsSymbol},
		{"cons", NewCons(NewInteger(1), Nil), IsCons},
		{"vector", NewVector(), IsVector},
		{"primitive", &Primitive{Name: "p"}, IsPrimitive},
		{"procedure", &Procedure{}, IsProcedure},
	}

	all := []func(Value) bool{
		IsNil, IsBoolean, IsInteger, IsDecimal, IsString,
		IsSymbol, IsCons, IsVector, IsPrimitive, IsProcedure,
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			// Exactly one predicate accepts each value: the union is strict.
			matches := 0
			for _, test := range all {
				if test(tc.input) {
					matches++
				}
			}
			require.True(t, tc.test(tc.input))
			require.Equal(t, 1, matches)
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected bool
	}{
		{"false", False, false},
		{"true", True, true},
		{"nil is truthy", Nil, true},
		{"zero is truthy", NewInteger(0), true},
		{"empty string is truthy", String(""), true},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, Truthy(tc.input))
		})
	}
}

func TestParseInteger(t *testing.T) {
	i, ok := ParseInteger("-12345678901234567890123456789")
	require.True(t, ok)
	require.Equal(t, "-12345678901234567890123456789", i.Big().String())

	_, ok = ParseInteger("1.5")
	require.False(t, ok)
	_, ok = ParseInteger("x")
	require.False(t, ok)
}

func TestParseDecimal(t *testing.T) {
	d, ok := ParseDecimal("2.5")
	require.True(t, ok)
	require.Equal(t, "2.5", d.Dec().String())

	_, ok = ParseDecimal("five")
	require.False(t, ok)
}

func TestSymbolInterning(t *testing.T) {
	symbols := NewSymbolTable()
	a := symbols.Intern("a")
	require.Same(t, a, symbols.Intern("a"))
	require.NotSame(t, a, symbols.Intern("b"))

	// A different table is a different identity universe.
	other := NewSymbolTable()
	require.NotSame(t, a, other.Intern("a"))
}

func TestVector(t *testing.T) {
	v := NewVector(NewInteger(1), NewInteger(2))
	require.Equal(t, 2, v.Len())

	elem, ok := v.Get(1)
	require.True(t, ok)
	require.True(t, Equal(NewInteger(2), elem))

	_, ok = v.Get(2)
	require.False(t, ok)

	require.True(t, v.Set(0, String("x")))
	require.False(t, v.Set(-1, String("x")))

	v.Add(NewInteger(3))
	require.Equal(t, 3, v.Len())
}

func mustDecimal(t *testing.T, text string) Decimal {
	t.Helper()
	d, ok := ParseDecimal(text)
	require.True(t, ok)
	return d
}
