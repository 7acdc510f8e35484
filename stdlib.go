package actinide

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ojacobson/actinide/api"
	"github.com/ojacobson/actinide/internal/engine"
	"github.com/ojacobson/actinide/internal/ports"
	"github.com/ojacobson/actinide/internal/reader"
)

// bindStdlib installs the core primitives into a fresh session.
func (s *Session) bindStdlib() {
	s.Bind("nil", api.Nil)
	s.Bind("#t", api.True)
	s.Bind("#f", api.False)

	// Predicates and constructors.
	s.BindFn("nil?", predicate("nil?", api.IsNil))
	s.BindFn("boolean?", predicate("boolean?", api.IsBoolean))
	s.BindFn("integer?", predicate("integer?", api.IsInteger))
	s.BindFn("decimal?", predicate("decimal?", api.IsDecimal))
	s.BindFn("string?", predicate("string?", api.IsString))
	s.BindFn("symbol?", predicate("symbol?", api.IsSymbol))
	s.BindFn("cons?", predicate("cons?", api.IsCons))
	s.BindFn("list?", predicate("list?", api.IsList))
	s.BindFn("vector?", predicate("vector?", api.IsVector))
	s.BindFn("procedure?", predicate("procedure?", api.IsCallable))

	s.BindFn("cons", consPrimitive)
	s.BindFn("head", headPrimitive)
	s.BindFn("tail", tailPrimitive)
	s.BindPrimitive("uncons", unconsPrimitive)
	s.BindFn("list", func(args []api.Value) (api.Value, error) {
		return api.List(args...), nil
	})
	s.BindFn("length", lengthPrimitive)
	s.BindFn("append", appendPrimitive)

	// Reader and printer access.
	s.BindFn("read", s.readPrimitive)
	s.BindPrimitive("eval", s.evalPrimitive)
	s.BindFn("expand", s.expandPrimitive)
	s.BindFn("display", func(args []api.Value) (api.Value, error) {
		if err := arity("display", args, 1); err != nil {
			return nil, err
		}
		return api.String(api.Display(args[0])), nil
	})
	s.BindFn("symbol", s.symbolPrimitive)

	// Vectors.
	s.BindFn("vector", func(args []api.Value) (api.Value, error) {
		return api.NewVector(args...), nil
	})
	s.BindFn("vector-length", vectorLengthPrimitive)
	s.BindFn("vector-get", vectorGetPrimitive)
	s.BindFn("vector-set", vectorSetPrimitive)
	s.BindFn("vector-add", vectorAddPrimitive)
	s.BindFn("list->vector", listToVectorPrimitive)
	s.BindFn("vector->list", vectorToListPrimitive)

	// Arithmetic and comparison.
	s.BindFn("+", addPrimitive)
	s.BindFn("-", subPrimitive)
	s.BindFn("*", mulPrimitive)
	s.BindFn("/", divPrimitive)
	s.BindFn("=", comparison("=", func(c int) bool { return c == 0 }))
	s.BindFn("!=", comparison("!=", func(c int) bool { return c != 0 }))
	s.BindFn("<", comparison("<", func(c int) bool { return c < 0 }))
	s.BindFn("<=", comparison("<=", func(c int) bool { return c <= 0 }))
	s.BindFn(">", comparison(">", func(c int) bool { return c > 0 }))
	s.BindFn(">=", comparison(">=", func(c int) bool { return c >= 0 }))
	s.BindFn("not", notPrimitive)
	s.BindFn("and", andPrimitive)
	s.BindFn("or", orPrimitive)
	s.BindFn("eq?", eqPrimitive)
	s.BindFn("equal?", equalPrimitive)

	// Ports.
	s.BindFn("read-port", readPortPrimitive)
	s.BindFn("peek-port", peekPortPrimitive)
	s.BindFn("read-port-fully", readPortFullyPrimitive)
	s.BindFn("string->input-port", stringToInputPortPrimitive)

	// Control and utility.
	s.BindPrimitive("values", func(args []api.Value) ([]api.Value, error) {
		return args, nil
	})
	s.BindPrimitive("begin", beginPrimitive)
	s.BindFn("concat", concatPrimitive)
}

// arity rejects argument tuples of the wrong length.
func arity(name string, args []api.Value, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s takes %d arguments, got %d", name, n, len(args))
	}
	return nil
}

// predicate lifts a value test to a one-argument primitive.
func predicate(name string, test func(api.Value) bool) func(args []api.Value) (api.Value, error) {
	return func(args []api.Value) (api.Value, error) {
		if err := arity(name, args, 1); err != nil {
			return nil, err
		}
		return api.Boolean(test(args[0])), nil
	}
}

func consPrimitive(args []api.Value) (api.Value, error) {
	if err := arity("cons", args, 2); err != nil {
		return nil, err
	}
	return api.NewCons(args[0], args[1]), nil
}

func headPrimitive(args []api.Value) (api.Value, error) {
	if err := arity("head", args, 1); err != nil {
		return nil, err
	}
	head, ok := api.Head(args[0])
	if !ok {
		return nil, fmt.Errorf("head: %s is not a pair", api.Display(args[0]))
	}
	return head, nil
}

func tailPrimitive(args []api.Value) (api.Value, error) {
	if err := arity("tail", args, 1); err != nil {
		return nil, err
	}
	tail, ok := api.Tail(args[0])
	if !ok {
		return nil, fmt.Errorf("tail: %s is not a pair", api.Display(args[0]))
	}
	return tail, nil
}

// unconsPrimitive returns two values: the head and the tail of a pair.
func unconsPrimitive(args []api.Value) ([]api.Value, error) {
	if err := arity("uncons", args, 1); err != nil {
		return nil, err
	}
	head, tail, ok := api.Uncons(args[0])
	if !ok {
		return nil, fmt.Errorf("uncons: %s is not a pair", api.Display(args[0]))
	}
	return []api.Value{head, tail}, nil
}

func lengthPrimitive(args []api.Value) (api.Value, error) {
	if err := arity("length", args, 1); err != nil {
		return nil, err
	}
	n, ok := api.Length(args[0])
	if !ok {
		return nil, fmt.Errorf("length: %s is not a list", api.Display(args[0]))
	}
	return api.NewInteger(int64(n)), nil
}

func appendPrimitive(args []api.Value) (api.Value, error) {
	result, ok := api.Append(args...)
	if !ok {
		return nil, fmt.Errorf("append: arguments before the last must be lists")
	}
	return result, nil
}

// readPrimitive reads one unexpanded form from a port, or the end-of-input
// sentinel.
func (s *Session) readPrimitive(args []api.Value) (api.Value, error) {
	if err := arity("read", args, 1); err != nil {
		return nil, err
	}
	port, ok := args[0].(*ports.Port)
	if !ok {
		return nil, fmt.Errorf("read: %s is not a port", api.Display(args[0]))
	}
	return reader.Read(port, s.symbols)
}

// evalPrimitive compiles and runs a form against the session's global
// environments. It may produce any number of values.
func (s *Session) evalPrimitive(args []api.Value) ([]api.Value, error) {
	if err := arity("eval", args, 1); err != nil {
		return nil, err
	}
	return engine.Eval(args[0], s.symbols, s.env, s.macros)
}

func (s *Session) expandPrimitive(args []api.Value) (api.Value, error) {
	if err := arity("expand", args, 1); err != nil {
		return nil, err
	}
	return s.Expand(args[0])
}

func (s *Session) symbolPrimitive(args []api.Value) (api.Value, error) {
	if err := arity("symbol", args, 1); err != nil {
		return nil, err
	}
	text, ok := args[0].(api.String)
	if !ok {
		return nil, fmt.Errorf("symbol: %s is not a string", api.Display(args[0]))
	}
	return s.symbols.Intern(string(text)), nil
}

func vectorArg(name string, v api.Value) (*api.Vector, error) {
	vec, ok := v.(*api.Vector)
	if !ok {
		return nil, fmt.Errorf("%s: %s is not a vector", name, api.Display(v))
	}
	return vec, nil
}

func indexArg(name string, v api.Value) (int, error) {
	i, ok := v.(api.Integer)
	if !ok {
		return 0, fmt.Errorf("%s: %s is not an integer", name, api.Display(v))
	}
	n, ok := i.Int64()
	if !ok {
		return 0, fmt.Errorf("%s: index %s out of range", name, api.Display(v))
	}
	return int(n), nil
}

func vectorLengthPrimitive(args []api.Value) (api.Value, error) {
	if err := arity("vector-length", args, 1); err != nil {
		return nil, err
	}
	vec, err := vectorArg("vector-length", args[0])
	if err != nil {
		return nil, err
	}
	return api.NewInteger(int64(vec.Len())), nil
}

func vectorGetPrimitive(args []api.Value) (api.Value, error) {
	if err := arity("vector-get", args, 2); err != nil {
		return nil, err
	}
	vec, err := vectorArg("vector-get", args[0])
	if err != nil {
		return nil, err
	}
	i, err := indexArg("vector-get", args[1])
	if err != nil {
		return nil, err
	}
	elem, ok := vec.Get(i)
	if !ok {
		return nil, fmt.Errorf("vector-get: index %d out of range", i)
	}
	return elem, nil
}

func vectorSetPrimitive(args []api.Value) (api.Value, error) {
	if err := arity("vector-set", args, 3); err != nil {
		return nil, err
	}
	vec, err := vectorArg("vector-set", args[0])
	if err != nil {
		return nil, err
	}
	i, err := indexArg("vector-set", args[1])
	if err != nil {
		return nil, err
	}
	if !vec.Set(i, args[2]) {
		return nil, fmt.Errorf("vector-set: index %d out of range", i)
	}
	return vec, nil
}

func vectorAddPrimitive(args []api.Value) (api.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("vector-add takes at least 1 argument")
	}
	vec, err := vectorArg("vector-add", args[0])
	if err != nil {
		return nil, err
	}
	vec.Add(args[1:]...)
	return vec, nil
}

func listToVectorPrimitive(args []api.Value) (api.Value, error) {
	if err := arity("list->vector", args, 1); err != nil {
		return nil, err
	}
	elems, ok := api.Flatten(args[0])
	if !ok {
		return nil, fmt.Errorf("list->vector: %s is not a list", api.Display(args[0]))
	}
	return api.NewVector(elems...), nil
}

func vectorToListPrimitive(args []api.Value) (api.Value, error) {
	if err := arity("vector->list", args, 1); err != nil {
		return nil, err
	}
	vec, err := vectorArg("vector->list", args[0])
	if err != nil {
		return nil, err
	}
	return api.List(vec.Elems()...), nil
}

// numericArgs rejects tuples containing non-numbers, reporting whether any
// argument is a Decimal.
func numericArgs(name string, args []api.Value) (anyDecimal bool, err error) {
	for _, arg := range args {
		switch arg.(type) {
		case api.Integer:
		case api.Decimal:
			anyDecimal = true
		default:
			return false, fmt.Errorf("%s: %s is not a number", name, api.Display(arg))
		}
	}
	return anyDecimal, nil
}

// reduceDecimal folds a decimal operation over arguments, promoting integers.
func reduceDecimal(args []api.Value, op func(a, b decimal.Decimal) decimal.Decimal) api.Value {
	acc, _ := api.AsDecimal(args[0])
	for _, arg := range args[1:] {
		next, _ := api.AsDecimal(arg)
		acc = op(acc, next)
	}
	return api.NewDecimal(acc)
}

// reduceInteger folds an integer operation over arguments.
func reduceInteger(args []api.Value, op func(acc, b *big.Int) *big.Int) api.Value {
	acc := new(big.Int).Set(args[0].(api.Integer).Big())
	for _, arg := range args[1:] {
		acc = op(acc, arg.(api.Integer).Big())
	}
	return api.NewIntegerFromBig(acc)
}

func addPrimitive(args []api.Value) (api.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("+ takes at least 1 argument")
	}
	anyDecimal, err := numericArgs("+", args)
	if err != nil {
		return nil, err
	}
	if anyDecimal {
		return reduceDecimal(args, decimal.Decimal.Add), nil
	}
	return reduceInteger(args, func(acc, b *big.Int) *big.Int { return acc.Add(acc, b) }), nil
}

func subPrimitive(args []api.Value) (api.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("- takes at least 1 argument")
	}
	anyDecimal, err := numericArgs("-", args)
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		if anyDecimal {
			d, _ := api.AsDecimal(args[0])
			return api.NewDecimal(d.Neg()), nil
		}
		return api.NewIntegerFromBig(new(big.Int).Neg(args[0].(api.Integer).Big())), nil
	}
	if anyDecimal {
		return reduceDecimal(args, decimal.Decimal.Sub), nil
	}
	return reduceInteger(args, func(acc, b *big.Int) *big.Int { return acc.Sub(acc, b) }), nil
}

func mulPrimitive(args []api.Value) (api.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("* takes at least 1 argument")
	}
	anyDecimal, err := numericArgs("*", args)
	if err != nil {
		return nil, err
	}
	if anyDecimal {
		return reduceDecimal(args, decimal.Decimal.Mul), nil
	}
	return reduceInteger(args, func(acc, b *big.Int) *big.Int { return acc.Mul(acc, b) }), nil
}

// divPrimitive floor-divides integers, and switches to true division the
// moment any argument is a Decimal.
func divPrimitive(args []api.Value) (api.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("/ takes at least 1 argument")
	}
	anyDecimal, err := numericArgs("/", args)
	if err != nil {
		return nil, err
	}
	if anyDecimal {
		acc, _ := api.AsDecimal(args[0])
		for _, arg := range args[1:] {
			next, _ := api.AsDecimal(arg)
			if next.IsZero() {
				return nil, fmt.Errorf("/: division by zero")
			}
			acc = acc.Div(next)
		}
		return api.NewDecimal(acc), nil
	}
	acc := new(big.Int).Set(args[0].(api.Integer).Big())
	for _, arg := range args[1:] {
		b := arg.(api.Integer).Big()
		if b.Sign() == 0 {
			return nil, fmt.Errorf("/: division by zero")
		}
		acc = floorDiv(acc, b)
	}
	return api.NewIntegerFromBig(acc), nil
}

// floorDiv rounds the quotient toward negative infinity.
func floorDiv(a, b *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 && (r.Sign() < 0) != (b.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
	}
	return q
}

// compareValues orders two values: numbers numerically, strings
// lexicographically.
func compareValues(name string, a, b api.Value) (int, error) {
	if as, ok := a.(api.String); ok {
		bs, ok := b.(api.String)
		if !ok {
			return 0, fmt.Errorf("%s: cannot compare %s with %s", name, api.Display(a), api.Display(b))
		}
		return strings.Compare(string(as), string(bs)), nil
	}
	c, err := api.CompareNumbers(a, b)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", name, err)
	}
	return c, nil
}

// comparison lifts an ordering test to a binary primitive. Equality tests
// fall back to structural comparison for non-ordered values.
func comparison(name string, test func(int) bool) func(args []api.Value) (api.Value, error) {
	equality := name == "=" || name == "!="
	return func(args []api.Value) (api.Value, error) {
		if err := arity(name, args, 2); err != nil {
			return nil, err
		}
		if equality {
			return api.Boolean(test(boolToCmp(api.Equal(args[0], args[1])))), nil
		}
		c, err := compareValues(name, args[0], args[1])
		if err != nil {
			return nil, err
		}
		return api.Boolean(test(c)), nil
	}
}

// boolToCmp encodes an equality result as a comparison result.
func boolToCmp(equal bool) int {
	if equal {
		return 0
	}
	return 1
}

func notPrimitive(args []api.Value) (api.Value, error) {
	if err := arity("not", args, 1); err != nil {
		return nil, err
	}
	return api.Boolean(!api.Truthy(args[0])), nil
}

// andPrimitive returns #t on no arguments, the first falsy argument, or the
// last argument. Arguments are already evaluated: the short-circuit is over
// values, not effects.
func andPrimitive(args []api.Value) (api.Value, error) {
	if len(args) == 0 {
		return api.True, nil
	}
	for _, arg := range args {
		if !api.Truthy(arg) {
			return arg, nil
		}
	}
	return args[len(args)-1], nil
}

// orPrimitive returns #f on no arguments, the first truthy argument, or the
// last argument.
func orPrimitive(args []api.Value) (api.Value, error) {
	if len(args) == 0 {
		return api.False, nil
	}
	for _, arg := range args {
		if api.Truthy(arg) {
			return arg, nil
		}
	}
	return args[len(args)-1], nil
}

func eqPrimitive(args []api.Value) (api.Value, error) {
	if err := arity("eq?", args, 2); err != nil {
		return nil, err
	}
	return api.Boolean(api.Eq(args[0], args[1])), nil
}

func equalPrimitive(args []api.Value) (api.Value, error) {
	if err := arity("equal?", args, 2); err != nil {
		return nil, err
	}
	return api.Boolean(api.Equal(args[0], args[1])), nil
}

func portArg(name string, v api.Value) (*ports.Port, error) {
	port, ok := v.(*ports.Port)
	if !ok {
		return nil, fmt.Errorf("%s: %s is not a port", name, api.Display(v))
	}
	return port, nil
}

func readPortPrimitive(args []api.Value) (api.Value, error) {
	if err := arity("read-port", args, 2); err != nil {
		return nil, err
	}
	port, err := portArg("read-port", args[0])
	if err != nil {
		return nil, err
	}
	n, err := indexArg("read-port", args[1])
	if err != nil {
		return nil, err
	}
	return api.String(port.Read(n)), nil
}

func peekPortPrimitive(args []api.Value) (api.Value, error) {
	if err := arity("peek-port", args, 2); err != nil {
		return nil, err
	}
	port, err := portArg("peek-port", args[0])
	if err != nil {
		return nil, err
	}
	n, err := indexArg("peek-port", args[1])
	if err != nil {
		return nil, err
	}
	return api.String(port.Peek(n)), nil
}

func readPortFullyPrimitive(args []api.Value) (api.Value, error) {
	if err := arity("read-port-fully", args, 1); err != nil {
		return nil, err
	}
	port, err := portArg("read-port-fully", args[0])
	if err != nil {
		return nil, err
	}
	return api.String(port.ReadFully()), nil
}

func stringToInputPortPrimitive(args []api.Value) (api.Value, error) {
	if err := arity("string->input-port", args, 1); err != nil {
		return nil, err
	}
	text, ok := args[0].(api.String)
	if !ok {
		return nil, fmt.Errorf("string->input-port: %s is not a string", api.Display(args[0]))
	}
	return ports.FromString(string(text)), nil
}

// beginPrimitive returns its last argument, or no values when empty,
// matching the special form's contract for pre-evaluated arguments.
func beginPrimitive(args []api.Value) ([]api.Value, error) {
	if len(args) == 0 {
		return nil, nil
	}
	return args[len(args)-1:], nil
}

func concatPrimitive(args []api.Value) (api.Value, error) {
	var b strings.Builder
	for _, arg := range args {
		text, ok := arg.(api.String)
		if !ok {
			return nil, fmt.Errorf("concat: %s is not a string", api.Display(arg))
		}
		b.WriteString(string(text))
	}
	return api.String(b.String()), nil
}
