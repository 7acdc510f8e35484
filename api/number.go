package api

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// asDecimal widens either numeric kind to a decimal, reporting false for
// non-numbers.
func asDecimal(v Value) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case Integer:
		return decimal.NewFromBigInt(n.value, 0), true
	case Decimal:
		return n.value, true
	}
	return decimal.Decimal{}, false
}

// AsDecimal widens either numeric kind to a decimal, reporting false for
// non-numbers. Arithmetic involving any Decimal operand promotes through this.
func AsDecimal(v Value) (decimal.Decimal, bool) {
	return asDecimal(v)
}

// CompareNumbers orders two numeric values, promoting to decimal on contact.
// The result is -1, 0, or +1. Non-numeric operands are an error.
func CompareNumbers(a, b Value) (int, error) {
	an, ok := asDecimal(a)
	if !ok {
		return 0, fmt.Errorf("%s is not a number", Display(a))
	}
	bn, ok := asDecimal(b)
	if !ok {
		return 0, fmt.Errorf("%s is not a number", Display(b))
	}
	return an.Cmp(bn), nil
}
