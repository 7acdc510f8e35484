package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	require.True(t, IsNil(List()))

	l := List(NewInteger(1), NewInteger(2), NewInteger(3))
	require.True(t, IsList(l))

	n, ok := Length(l)
	require.True(t, ok)
	require.Equal(t, 3, n)

	elems, ok := Flatten(l)
	require.True(t, ok)
	require.Len(t, elems, 3)
	require.True(t, Equal(NewInteger(1), elems[0]))
}

func TestIsList(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected bool
	}{
		{"nil", Nil, true},
		{"proper list", List(NewInteger(1)), true},
		{"dotted pair", NewCons(NewInteger(1), NewInteger(2)), false},
		{"dotted tail", NewCons(NewInteger(1), NewCons(NewInteger(2), NewInteger(3))), false},
		{"atom", NewInteger(1), false},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, IsList(tc.input))
		})
	}
}

func TestLengthDotted(t *testing.T) {
	_, ok := Length(NewCons(NewInteger(1), NewInteger(2)))
	require.False(t, ok)
}

func TestAppend(t *testing.T) {
	one := List(NewInteger(1))
	two := List(NewInteger(2), NewInteger(3))

	result, ok := Append(one, two)
	require.True(t, ok)
	require.True(t, Equal(List(NewInteger(1), NewInteger(2), NewInteger(3)), result))

	// Appending nothing is nil; appending one list is that list.
	result, ok = Append()
	require.True(t, ok)
	require.True(t, IsNil(result))

	result, ok = Append(two)
	require.True(t, ok)
	require.True(t, Equal(two, result))

	// The final argument becomes the tail verbatim.
	result, ok = Append(one, NewInteger(9))
	require.True(t, ok)
	require.True(t, Equal(NewCons(NewInteger(1), NewInteger(9)), result))

	// Non-final arguments must be proper lists.
	_, ok = Append(NewInteger(9), one)
	require.False(t, ok)
}

func TestUncons(t *testing.T) {
	head, tail, ok := Uncons(NewCons(String("a"), String("b")))
	require.True(t, ok)
	require.Equal(t, String("a"), head)
	require.Equal(t, String("b"), tail)

	_, _, ok = Uncons(Nil)
	require.False(t, ok)
}
