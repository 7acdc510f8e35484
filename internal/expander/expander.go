// Package expander rewrites freshly read forms into the core language:
// literals, symbols, pairs, and the six special forms. Shorthand notations
// are replaced with their longhand equivalents, quasiquotation is erased, and
// macros are applied to fixpoint.
//
// Because this deals with unevaluated programs, the algorithm recurses on the
// host stack: input depth is source depth, not call depth.
package expander

import (
	"fmt"

	"github.com/ojacobson/actinide/api"
	"github.com/ojacobson/actinide/internal/engine"
)

// ExpansionError is returned when a form cannot be desugared.
type ExpansionError struct {
	msg string
}

// Error implements error.
func (e *ExpansionError) Error() string { return e.msg }

func expansionErrorf(format string, args ...interface{}) *ExpansionError {
	return &ExpansionError{msg: fmt.Sprintf(format, args...)}
}

// Expand rewrites a form into a core form under the given macro environment.
// Quoted forms are left alone; every other form is rewritten at the head,
// then expanded recursively over its sub-forms.
func Expand(form api.Value, symbols *api.SymbolTable, macros *api.Environment) (api.Value, error) {
	if !api.IsCons(form) {
		return form, nil
	}
	c := form.(*api.Cons)
	if head, ok := c.Head.(*api.Symbol); ok {
		var err error
		switch head {
		case symbols.Intern("quote"):
			return form, nil
		case symbols.Intern("if"):
			form, err = expandIf(form, symbols)
		case symbols.Intern("define"), symbols.Intern("define-macro"):
			form, err = expandDefine(form, symbols)
		case symbols.Intern("lambda"):
			form, err = expandLambda(form, symbols)
		case symbols.Intern("quasiquote"):
			form, err = expandQuasiquote(form, symbols)
		default:
			if macros.Defined(head) {
				expansion, err := applyMacro(c, head, macros)
				if err != nil {
					return nil, err
				}
				// Expand again: macros may expand to macro uses.
				return Expand(expansion, symbols, macros)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return expandSubforms(form, symbols, macros)
}

// expandSubforms expands each element of an already-rewritten form.
func expandSubforms(form api.Value, symbols *api.SymbolTable, macros *api.Environment) (api.Value, error) {
	if !api.IsCons(form) {
		return form, nil
	}
	c := form.(*api.Cons)
	head, err := Expand(c.Head, symbols, macros)
	if err != nil {
		return nil, err
	}
	tail, err := expandSubforms(c.Tail, symbols, macros)
	if err != nil {
		return nil, err
	}
	return api.NewCons(head, tail), nil
}

// expandIf supplies the implicit nil alternative:
//
//	(if COND TRUE) => (if COND TRUE ())
func expandIf(form api.Value, symbols *api.SymbolTable) (api.Value, error) {
	parts, ok := api.Flatten(form)
	if !ok || len(parts) < 3 || len(parts) > 4 {
		return nil, expansionErrorf("cannot expand if form %s", api.Display(form))
	}
	if len(parts) == 3 {
		return api.List(parts[0], parts[1], parts[2], api.Nil), nil
	}
	return form, nil
}

// expandDefine rewrites function-definition shorthand:
//
//	(define (NAME . FORMALS) BODY...) => (define NAME (lambda FORMALS BODY...))
//
// define-macro expands the same way.
func expandDefine(form api.Value, symbols *api.SymbolTable) (api.Value, error) {
	head, rest, _ := api.Uncons(form)
	target, body, ok := api.Uncons(rest)
	if !ok {
		return nil, expansionErrorf("cannot expand define form %s", api.Display(form))
	}
	if spec, isCons := target.(*api.Cons); isCons {
		name := spec.Head
		formals := spec.Tail
		lambda := api.NewCons(symbols.Intern("lambda"), api.NewCons(formals, body))
		return api.List(head, name, lambda), nil
	}
	parts, ok := api.Flatten(body)
	if !ok || len(parts) != 1 {
		return nil, expansionErrorf("cannot expand define form %s", api.Display(form))
	}
	return api.List(head, target, parts[0]), nil
}

// expandLambda normalises the body to a single form:
//
//	(lambda FORMALS)              => (lambda FORMALS (begin))
//	(lambda FORMALS FORM)         => unchanged
//	(lambda FORMALS FORM FORMS..) => (lambda FORMALS (begin FORM FORMS..))
func expandLambda(form api.Value, symbols *api.SymbolTable) (api.Value, error) {
	head, rest, _ := api.Uncons(form)
	formals, body, ok := api.Uncons(rest)
	if !ok {
		return nil, expansionErrorf("cannot expand lambda form %s", api.Display(form))
	}
	parts, isList := api.Flatten(body)
	if !isList {
		return nil, expansionErrorf("cannot expand lambda form %s", api.Display(form))
	}
	switch len(parts) {
	case 0:
		body = api.List(api.List(symbols.Intern("begin")))
	case 1:
		// Single-form body, already normal.
	default:
		body = api.List(api.NewCons(symbols.Intern("begin"), body))
	}
	return api.NewCons(head, api.NewCons(formals, body)), nil
}

// expandQuasiquote erases a quasiquote into cons, append, and quote forms,
// splicing unquotes as it goes.
func expandQuasiquote(form api.Value, symbols *api.SymbolTable) (api.Value, error) {
	parts, ok := api.Flatten(form)
	if !ok || len(parts) != 2 {
		return nil, expansionErrorf("cannot expand quasiquote form %s", api.Display(form))
	}
	return expandQuasiquoted(parts[1], symbols)
}

func expandQuasiquoted(form api.Value, symbols *api.SymbolTable) (api.Value, error) {
	if api.IsNil(form) {
		return form, nil
	}
	if !api.IsCons(form) {
		return api.List(symbols.Intern("quote"), form), nil
	}
	first, rest, _ := api.Uncons(form)
	if first == api.Value(symbols.Intern("unquote")) {
		parts, ok := api.Flatten(rest)
		if !ok || len(parts) != 1 {
			return nil, expansionErrorf("cannot expand unquote form %s", api.Display(form))
		}
		return parts[0], nil
	}
	if spliced, ok := unquoteSplicing(first, symbols); ok {
		tail, err := expandQuasiquoted(rest, symbols)
		if err != nil {
			return nil, err
		}
		return api.List(symbols.Intern("append"), spliced, tail), nil
	}
	head, err := expandQuasiquoted(first, symbols)
	if err != nil {
		return nil, err
	}
	tail, err := expandQuasiquoted(rest, symbols)
	if err != nil {
		return nil, err
	}
	return api.List(symbols.Intern("cons"), head, tail), nil
}

// unquoteSplicing recognises an (unquote-splicing e) element and returns e.
func unquoteSplicing(form api.Value, symbols *api.SymbolTable) (api.Value, bool) {
	c, isCons := form.(*api.Cons)
	if !isCons {
		return nil, false
	}
	if c.Head != api.Value(symbols.Intern("unquote-splicing")) {
		return nil, false
	}
	parts, ok := api.Flatten(c.Tail)
	if !ok || len(parts) != 1 {
		return nil, false
	}
	return parts[0], true
}

// applyMacro calls the bound transformer with the unevaluated argument forms
// and returns its single-value expansion.
func applyMacro(form *api.Cons, name *api.Symbol, macros *api.Environment) (api.Value, error) {
	transformer, err := macros.Find(name)
	if err != nil {
		return nil, err
	}
	args, ok := api.Flatten(form.Tail)
	if !ok {
		return nil, expansionErrorf("cannot expand macro form %s", api.Display(form))
	}
	results, err := engine.Call(transformer, args)
	if err != nil {
		return nil, err
	}
	if len(results) != 1 {
		return nil, expansionErrorf("macro %s expanded to %d values, expected 1", name.Name, len(results))
	}
	return results[0], nil
}
