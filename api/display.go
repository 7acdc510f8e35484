package api

import (
	"fmt"
	"strings"
)

// quoteMarks maps the reader's quote-family symbols back to their shorthand.
var quoteMarks = map[string]string{
	"quote":            "'",
	"quasiquote":       "`",
	"unquote":          ",",
	"unquote-splicing": ",@",
}

// Display prints a value back to readable text. For every value the reader
// can produce, reading the display recovers an Equal value.
func Display(v Value) string {
	if v == nil {
		return "()"
	}
	switch val := v.(type) {
	case nilValue:
		return "()"
	case Boolean:
		if val {
			return "#t"
		}
		return "#f"
	case Integer:
		return val.value.String()
	case Decimal:
		return val.value.String()
	case String:
		return displayString(string(val))
	case *Symbol:
		return val.Name
	case *Cons:
		if mark, form, ok := quoteForm(val); ok {
			return mark + Display(form)
		}
		return displayCons(val)
	case *Vector:
		parts := make([]string, len(val.elems))
		for i, elem := range val.elems {
			parts[i] = Display(elem)
		}
		return fmt.Sprintf("<vector: [%s]>", strings.Join(parts, " "))
	case *Procedure:
		return fmt.Sprintf("<procedure: (lambda %s %s)>", Display(val.FormalsSyntax()), Display(val.Body))
	case *Primitive:
		return fmt.Sprintf("<builtin: %s>", val.Name)
	}
	return fmt.Sprintf("<%s>", KindName(v.Kind()))
}

// quoteForm recognises two-element lists headed by a quote-family symbol.
func quoteForm(c *Cons) (mark string, form Value, ok bool) {
	head, isSymbol := c.Head.(*Symbol)
	if !isSymbol {
		return "", nil, false
	}
	mark, known := quoteMarks[head.Name]
	if !known {
		return "", nil, false
	}
	rest, isCons := c.Tail.(*Cons)
	if !isCons || !IsNil(rest.Tail) {
		return "", nil, false
	}
	return mark, rest.Head, true
}

func displayCons(c *Cons) string {
	var parts []string
	var v Value = c
	for IsCons(v) {
		pair := v.(*Cons)
		parts = append(parts, Display(pair.Head))
		v = pair.Tail
	}
	if !IsNil(v) {
		parts = append(parts, ".", Display(v))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func displayString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
