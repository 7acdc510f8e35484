// Package api includes the value vocabulary exchanged between embedders and the
// Actinide runtime: the closed union of runtime values, symbol interning,
// lexical environments, procedures, and the continuation type stepped by the
// evaluator's trampoline.
package api

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Kind classifies a Value. Every Value answers exactly one Kind; there are no
// values outside this set.
type Kind = byte

const (
	KindNil Kind = iota
	KindBoolean
	KindInteger
	KindDecimal
	KindString
	KindSymbol
	KindCons
	KindVector
	KindProcedure
	KindPrimitive
	// KindPort identifies character-input handles circulated by the port
	// primitives. Ports answer false to every other predicate.
	KindPort
)

// KindName returns the name of the given Kind as a string.
//
// Note: This returns "unknown" if an undefined Kind value is passed.
func KindName(k Kind) string {
	switch k {
	case KindNil:
		return "nil"
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindCons:
		return "cons"
	case KindVector:
		return "vector"
	case KindProcedure:
		return "procedure"
	case KindPrimitive:
		return "primitive"
	case KindPort:
		return "port"
	}
	return "unknown"
}

// Value is one Actinide runtime value. The set of implementations is closed:
// Nil, Boolean, Integer, Decimal, String, *Symbol, *Cons, *Vector, *Procedure,
// *Primitive, and the port handle installed by the session.
type Value interface {
	// Kind reports which member of the union this value is.
	Kind() Kind
}

// nilValue is the type of the single empty value.
type nilValue struct{}

// Nil is the empty value. It is also the empty list: the proper-list predicate
// and the list constructors treat Nil and () as the same value.
var Nil Value = nilValue{}

// Kind implements Value.Kind.
func (nilValue) Kind() Kind { return KindNil }

// Boolean is the true/false value kind. Only False is falsy during evaluation;
// every other value, including Nil, is truthy.
type Boolean bool

const (
	True  Boolean = true
	False Boolean = false
)

// Kind implements Value.Kind.
func (Boolean) Kind() Kind { return KindBoolean }

// Integer is an arbitrary-precision signed integer.
type Integer struct {
	value *big.Int
}

// NewInteger returns an Integer holding v.
func NewInteger(v int64) Integer {
	return Integer{value: big.NewInt(v)}
}

// NewIntegerFromBig returns an Integer holding a copy of v.
func NewIntegerFromBig(v *big.Int) Integer {
	return Integer{value: new(big.Int).Set(v)}
}

// ParseInteger parses a base-10 integer with an optional leading sign,
// returning false if the text is not an integer.
func ParseInteger(text string) (Integer, bool) {
	v, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return Integer{}, false
	}
	return Integer{value: v}, true
}

// Big returns the underlying big integer. Callers must not mutate it.
func (i Integer) Big() *big.Int { return i.value }

// Int64 returns the value as an int64, with ok false if it does not fit.
func (i Integer) Int64() (v int64, ok bool) {
	if !i.value.IsInt64() {
		return 0, false
	}
	return i.value.Int64(), true
}

// Kind implements Value.Kind.
func (Integer) Kind() Kind { return KindInteger }

// Decimal is an arbitrary-precision base-10 number which may have a fractional
// part. Integers and Decimals are distinct kinds: arithmetic mixing the two
// promotes to Decimal.
type Decimal struct {
	value decimal.Decimal
}

// NewDecimal returns a Decimal holding v.
func NewDecimal(v decimal.Decimal) Decimal {
	return Decimal{value: v}
}

// ParseDecimal parses decimal text, including exponent forms, returning false
// if the text is not a decimal.
func ParseDecimal(text string) (Decimal, bool) {
	v, err := decimal.NewFromString(text)
	if err != nil {
		return Decimal{}, false
	}
	return Decimal{value: v}, true
}

// Dec returns the underlying decimal value.
func (d Decimal) Dec() decimal.Decimal { return d.value }

// Kind implements Value.Kind.
func (Decimal) Kind() Kind { return KindDecimal }

// String is an immutable sequence of characters.
type String string

// Kind implements Value.Kind.
func (String) Kind() Kind { return KindString }

// Symbol is an interned identifier. Two symbols are the same value iff they
// are the same pointer; the symbol table is the single source of truth for
// interning. Do not compare symbols by name.
type Symbol struct {
	// Name is the symbol's text, fixed at interning time.
	Name string
}

// Kind implements Value.Kind.
func (*Symbol) Kind() Kind { return KindSymbol }

// Cons is an immutable pair. A proper list is Nil or a Cons whose Tail is a
// proper list; any other tail makes the structure dotted.
type Cons struct {
	Head Value
	Tail Value
}

// Kind implements Value.Kind.
func (*Cons) Kind() Kind { return KindCons }

// Vector is a mutable sequential container of values.
type Vector struct {
	elems []Value
}

// NewVector returns a vector holding the given elements.
func NewVector(elems ...Value) *Vector {
	return &Vector{elems: elems}
}

// Len returns the number of elements.
func (v *Vector) Len() int { return len(v.elems) }

// Get returns the element at index i, with ok false if out of range.
func (v *Vector) Get(i int) (Value, bool) {
	if i < 0 || i >= len(v.elems) {
		return nil, false
	}
	return v.elems[i], true
}

// Set replaces the element at index i, reporting false if out of range.
func (v *Vector) Set(i int, elem Value) bool {
	if i < 0 || i >= len(v.elems) {
		return false
	}
	v.elems[i] = elem
	return true
}

// Add appends elements to the vector.
func (v *Vector) Add(elems ...Value) {
	v.elems = append(v.elems, elems...)
}

// Elems returns the backing slice. Mutations write through to the vector.
func (v *Vector) Elems() []Value { return v.elems }

// Kind implements Value.Kind.
func (*Vector) Kind() Kind { return KindVector }

// Primitive is a host-provided callable. It receives the evaluated argument
// tuple and returns a result tuple: primitives may return zero, one, or many
// values, and in application position result tuples are flattened into the
// argument list being built.
type Primitive struct {
	// Name is the binding name, used by the printer.
	Name string
	// Func is the host implementation.
	Func func(args []Value) ([]Value, error)
}

// Kind implements Value.Kind.
func (*Primitive) Kind() Kind { return KindPrimitive }

// IsNil reports whether v is the empty value.
func IsNil(v Value) bool {
	return v != nil && v.Kind() == KindNil
}

// IsBoolean reports whether v is True or False.
func IsBoolean(v Value) bool {
	return v != nil && v.Kind() == KindBoolean
}

// IsInteger reports whether v is an Integer.
func IsInteger(v Value) bool {
	return v != nil && v.Kind() == KindInteger
}

// IsDecimal reports whether v is a Decimal.
func IsDecimal(v Value) bool {
	return v != nil && v.Kind() == KindDecimal
}

// IsString reports whether v is a String.
func IsString(v Value) bool {
	return v != nil && v.Kind() == KindString
}

// IsSymbol reports whether v is an interned (or sentinel) symbol.
func IsSymbol(v Value) bool {
	return v != nil && v.Kind() == KindSymbol
}

// IsCons reports whether v is a pair.
func IsCons(v Value) bool {
	return v != nil && v.Kind() == KindCons
}

// IsVector reports whether v is a vector.
func IsVector(v Value) bool {
	return v != nil && v.Kind() == KindVector
}

// IsProcedure reports whether v is a user-defined procedure.
func IsProcedure(v Value) bool {
	return v != nil && v.Kind() == KindProcedure
}

// IsPrimitive reports whether v is a host-provided callable.
func IsPrimitive(v Value) bool {
	return v != nil && v.Kind() == KindPrimitive
}

// IsCallable reports whether v can appear in application position.
func IsCallable(v Value) bool {
	return IsProcedure(v) || IsPrimitive(v)
}

// Truthy reports whether v counts as true in a branch. Only False is falsy;
// Nil is truthy.
func Truthy(v Value) bool {
	b, ok := v.(Boolean)
	return !ok || bool(b)
}
