package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEq(t *testing.T) {
	symbols := NewSymbolTable()
	pair := NewCons(NewInteger(1), Nil)
	tests := []struct {
		name     string
		a, b     Value
		expected bool
	}{
		{"nil", Nil, Nil, true},
		{"booleans", True, True, true},
		{"booleans differ", True, False, false},
		{"strings", String("a"), String("a"), true},
		{"integers", NewInteger(7), NewInteger(7), true},
		{"decimals", mustDecimal(t, "1.5"), mustDecimal(t, "1.5"), true},
		{"integer vs decimal", NewInteger(1), mustDecimal(t, "1"), false},
		{"same symbol", symbols.Intern("a"), symbols.Intern("a"), true},
		{"same pair", pair, pair, true},
		{"equal pairs differ", pair, NewCons(NewInteger(1), Nil), false},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, Eq(tc.a, tc.b))
		})
	}
}

func TestEqual(t *testing.T) {
	symbols := NewSymbolTable()
	tests := []struct {
		name     string
		a, b     Value
		expected bool
	}{
		{"integer vs decimal", NewInteger(1), mustDecimal(t, "1.0"), true},
		{"numbers differ", NewInteger(1), mustDecimal(t, "1.5"), false},
		{"number vs string", NewInteger(1), String("1"), false},
		{
			"pairs structurally",
			List(NewInteger(1), String("a"), symbols.Intern("s")),
			List(NewInteger(1), String("a"), symbols.Intern("s")),
			true,
		},
		{
			"nested pairs differ",
			List(List(NewInteger(1))),
			List(List(NewInteger(2))),
			false,
		},
		{
			"vectors element-wise",
			NewVector(NewInteger(1), NewInteger(2)),
			NewVector(NewInteger(1), NewInteger(2)),
			true,
		},
		{
			"vectors differ in length",
			NewVector(NewInteger(1)),
			NewVector(NewInteger(1), NewInteger(2)),
			false,
		},
		{"symbols by identity", symbols.Intern("a"), symbols.Intern("a"), true},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, Equal(tc.a, tc.b))
		})
	}
}

func TestCompareNumbers(t *testing.T) {
	c, err := CompareNumbers(NewInteger(1), mustDecimal(t, "1.5"))
	require.NoError(t, err)
	require.Equal(t, -1, c)

	c, err = CompareNumbers(mustDecimal(t, "2"), NewInteger(2))
	require.NoError(t, err)
	require.Equal(t, 0, c)

	_, err = CompareNumbers(String("x"), NewInteger(2))
	require.Error(t, err)
}
