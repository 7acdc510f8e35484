// Package reader parses token streams into forms by recursive descent.
package reader

import (
	"fmt"
	"strings"

	"github.com/ojacobson/actinide/api"
	"github.com/ojacobson/actinide/internal/ports"
	"github.com/ojacobson/actinide/internal/tokenizer"
)

// SyntaxError is returned when the tokens do not form a valid s-expression.
type SyntaxError struct {
	msg string
}

// Error implements error.
func (e *SyntaxError) Error() string { return e.msg }

func syntaxErrorf(format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{msg: fmt.Sprintf(format, args...)}
}

// EOF is returned by Read at the end of input. It is a fresh, non-interned
// symbol: it can never compare equal to a value produced by the reader.
var EOF api.Value = &api.Symbol{Name: "#<end-of-input>"}

// quoteSymbols maps quote-prefix tokens to the special form each one reads
// as.
var quoteSymbols = map[tokenizer.TokenType]string{
	tokenizer.TokenQuote:           "quote",
	tokenizer.TokenQuasiquote:      "quasiquote",
	tokenizer.TokenUnquote:         "unquote",
	tokenizer.TokenUnquoteSplicing: "unquote-splicing",
}

// Read consumes one form from the port, leaving trailing input untouched.
// Symbols are interned through the passed table. At the end of input Read
// returns the EOF sentinel.
func Read(port *ports.Port, symbols *api.SymbolTable) (api.Value, error) {
	tok, err := tokenizer.ReadToken(port)
	if err != nil {
		return nil, err
	}
	if tok.Type == tokenizer.TokenEOF {
		return EOF, nil
	}
	return readForm(tok, port, symbols)
}

// readNested reads one form where a form is required: inside a list or after
// a quote prefix. End of input here is a syntax error.
func readNested(port *ports.Port, symbols *api.SymbolTable) (api.Value, error) {
	tok, err := tokenizer.ReadToken(port)
	if err != nil {
		return nil, err
	}
	if tok.Type == tokenizer.TokenEOF {
		return nil, syntaxErrorf("unexpected end of input")
	}
	return readForm(tok, port, symbols)
}

// readForm parses the form introduced by tok.
func readForm(tok tokenizer.Token, port *ports.Port, symbols *api.SymbolTable) (api.Value, error) {
	switch tok.Type {
	case tokenizer.TokenRParen:
		return nil, syntaxErrorf("unexpected ')'")
	case tokenizer.TokenDot:
		return nil, syntaxErrorf("unexpected '.'")
	case tokenizer.TokenLParen:
		return readList(port, symbols)
	case tokenizer.TokenQuote, tokenizer.TokenQuasiquote, tokenizer.TokenUnquote, tokenizer.TokenUnquoteSplicing:
		quoted, err := readNested(port, symbols)
		if err != nil {
			return nil, err
		}
		return api.List(symbols.Intern(quoteSymbols[tok.Type]), quoted), nil
	case tokenizer.TokenString:
		return readString(tok.Text), nil
	default:
		return readAtom(tok.Text, symbols), nil
	}
}

// readList reads list elements up to the matching close paren. A dot switches
// to reading a single tail value, which must be followed by the close paren.
func readList(port *ports.Port, symbols *api.SymbolTable) (api.Value, error) {
	var elems []api.Value
	for {
		tok, err := tokenizer.ReadToken(port)
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case tokenizer.TokenEOF:
			return nil, syntaxErrorf("unexpected end of input")
		case tokenizer.TokenRParen:
			return api.List(elems...), nil
		case tokenizer.TokenDot:
			if len(elems) == 0 {
				return nil, syntaxErrorf("unexpected '.'")
			}
			return readDottedTail(elems, port, symbols)
		default:
			elem, err := readForm(tok, port, symbols)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
	}
}

// readDottedTail reads the single form after a dot and the close paren that
// must follow it, producing a dotted structure.
func readDottedTail(elems []api.Value, port *ports.Port, symbols *api.SymbolTable) (api.Value, error) {
	tail, err := readNested(port, symbols)
	if err != nil {
		return nil, err
	}
	tok, err := tokenizer.ReadToken(port)
	if err != nil {
		return nil, err
	}
	if tok.Type == tokenizer.TokenEOF {
		return nil, syntaxErrorf("unexpected end of input")
	}
	if tok.Type != tokenizer.TokenRParen {
		return nil, syntaxErrorf("unexpected value after dotted pair")
	}
	result := tail
	for i := len(elems) - 1; i >= 0; i-- {
		result = api.NewCons(elems[i], result)
	}
	return result, nil
}

// readString strips the surrounding quotes from a verbatim string token and
// de-escapes \" and \\.
func readString(text string) api.Value {
	body := text[1 : len(text)-1]
	var b strings.Builder
	escaped := false
	for _, ch := range body {
		if escaped {
			b.WriteRune(ch)
			escaped = false
			continue
		}
		if ch == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(ch)
	}
	return api.String(b.String())
}

// readAtom parses a non-string atom, in priority order: boolean, integer,
// decimal, and finally symbol, which always succeeds.
func readAtom(text string, symbols *api.SymbolTable) api.Value {
	switch text {
	case "#t":
		return api.True
	case "#f":
		return api.False
	}
	if i, ok := api.ParseInteger(text); ok {
		return i
	}
	if d, ok := api.ParseDecimal(text); ok {
		return d
	}
	return symbols.Intern(text)
}
