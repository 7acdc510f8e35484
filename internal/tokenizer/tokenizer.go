// Package tokenizer divides a character port into lisp tokens with a
// deterministic state machine driven by one-character lookahead.
//
// Token classes:
//
//   - Comments: ; through the next newline or EOF, discarded.
//   - Whitespace: space, tab, and newline, discarded.
//   - Parens: ( and ) as freestanding tokens.
//   - Quote prefixes: ' ` , and ,@.
//   - Strings: " through the next unescaped ", kept verbatim including the
//     quotes and any \" or \\ escapes. Any other escape, or EOF inside a
//     string, is a TokenError.
//   - Atoms: a run starting at any other character and extending up to the
//     next whitespace, paren, ; or " character. Quote characters after the
//     first character are part of the atom. A lone . atom is the dotted-pair
//     separator.
//
// ReadToken produces exactly one token per call and never reads past the end
// of the token it returns.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/ojacobson/actinide/internal/ports"
)

// TokenError is returned when the input cannot be divided into legal tokens.
type TokenError struct {
	msg string
}

// Error implements error.
func (e *TokenError) Error() string { return e.msg }

func tokenErrorf(format string, args ...interface{}) *TokenError {
	return &TokenError{msg: fmt.Sprintf(format, args...)}
}

const (
	whitespace = " \t\n"
	// atomEnd is the set of characters which terminate a non-string atom.
	atomEnd = `"(); ` + "\t\n"
)

// ReadToken consumes and returns the next token from the port. At the end of
// input it returns a TokenEOF token.
func ReadToken(port *ports.Port) (Token, error) {
	for {
		ch := port.Peek(1)
		switch {
		case ch == "":
			return Token{Type: TokenEOF}, nil
		case ch == ";":
			readComment(port)
		case ch == "(":
			port.Read(1)
			return Token{Type: TokenLParen, Text: "("}, nil
		case ch == ")":
			port.Read(1)
			return Token{Type: TokenRParen, Text: ")"}, nil
		case strings.Contains(whitespace, ch):
			port.Read(1)
		case ch == "'" || ch == "`" || ch == ",":
			return readQuotePrefix(port), nil
		case ch == `"`:
			return readString(port)
		default:
			return readAtom(port), nil
		}
	}
}

// readComment consumes characters up to and including the next newline, or to
// the end of input.
func readComment(port *ports.Port) {
	for {
		ch := port.Read(1)
		if ch == "" || ch == "\n" {
			return
		}
	}
}

// readQuotePrefix consumes one of ' ` or ,. A , followed by @ consumes the @
// as well, producing the splicing prefix.
func readQuotePrefix(port *ports.Port) Token {
	switch port.Read(1) {
	case "'":
		return Token{Type: TokenQuote, Text: "'"}
	case "`":
		return Token{Type: TokenQuasiquote, Text: "`"}
	default:
		if port.Peek(1) == "@" {
			port.Read(1)
			return Token{Type: TokenUnquoteSplicing, Text: ",@"}
		}
		return Token{Type: TokenUnquote, Text: ","}
	}
}

// readAtom accumulates characters until the next character would end the
// atom. The accumulated text is never empty: the dispatcher only enters this
// state on a non-delimiter character.
func readAtom(port *ports.Port) Token {
	var text strings.Builder
	for {
		text.WriteString(port.Read(1))
		next := port.Peek(1)
		if next == "" || strings.Contains(atomEnd, next) {
			break
		}
	}
	if text.String() == "." {
		return Token{Type: TokenDot, Text: "."}
	}
	return Token{Type: TokenAtom, Text: text.String()}
}

// readString consumes a string literal, keeping the surrounding quotes and
// any escape backslashes verbatim. Only \" and \\ are legal escapes.
func readString(port *ports.Port) (Token, error) {
	var text strings.Builder
	text.WriteString(port.Read(1)) // opening quote
	for {
		ch := port.Read(1)
		switch ch {
		case "":
			return Token{}, tokenErrorf("unclosed string literal")
		case `\`:
			escaped := port.Read(1)
			if escaped == "" {
				return Token{}, tokenErrorf("unclosed string literal")
			}
			if escaped != `"` && escaped != `\` {
				return Token{}, tokenErrorf("unknown string escape '\\%s'", escaped)
			}
			text.WriteString(ch)
			text.WriteString(escaped)
		case `"`:
			text.WriteString(ch)
			return Token{Type: TokenString, Text: text.String()}, nil
		default:
			text.WriteString(ch)
		}
	}
}
