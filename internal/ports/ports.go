// Package ports implements the character-input handle consumed by the
// tokenizer: rune-oriented reads with lookahead that does not advance the
// stream.
package ports

import (
	"bufio"
	"io"
	"strings"

	"github.com/ojacobson/actinide/api"
)

// Port reads characters from an underlying stream with lookahead. Peek never
// advances: a Read after a Peek yields the same characters. The tokenizer only
// uses one-character peeks and reads; ReadFully exists for draining trailing
// input.
type Port struct {
	r      *bufio.Reader
	peeked []rune
}

// New returns a port reading from r.
func New(r io.Reader) *Port {
	return &Port{r: bufio.NewReader(r)}
}

// FromString returns a port over the characters of s.
func FromString(s string) *Port {
	return New(strings.NewReader(s))
}

// Kind implements api.Value.Kind: ports circulate through the evaluator as
// opaque handles for the port primitives.
func (p *Port) Kind() api.Kind { return api.KindPort }

// Peek returns up to n characters without consuming them. A short or empty
// result means the stream ended.
func (p *Port) Peek(n int) string {
	for len(p.peeked) < n {
		ch, _, err := p.r.ReadRune()
		if err != nil {
			break
		}
		p.peeked = append(p.peeked, ch)
	}
	if len(p.peeked) >= n {
		return string(p.peeked[:n])
	}
	return string(p.peeked)
}

// Read consumes and returns up to n characters. When lookahead from Peek is
// buffered, Read returns only buffered characters (at most n) and does not
// read further from the stream; otherwise a short or empty result means the
// stream ended.
func (p *Port) Read(n int) string {
	if len(p.peeked) > 0 {
		if n >= len(p.peeked) {
			out := string(p.peeked)
			p.peeked = p.peeked[:0]
			return out
		}
		out := string(p.peeked[:n])
		p.peeked = append(p.peeked[:0], p.peeked[n:]...)
		return out
	}
	var out []rune
	for len(out) < n {
		ch, _, err := p.r.ReadRune()
		if err != nil {
			break
		}
		out = append(out, ch)
	}
	return string(out)
}

// ReadFully consumes and returns all remaining input.
func (p *Port) ReadFully() string {
	var b strings.Builder
	b.WriteString(string(p.peeked))
	p.peeked = p.peeked[:0]
	for {
		ch, _, err := p.r.ReadRune()
		if err != nil {
			break
		}
		b.WriteRune(ch)
	}
	return b.String()
}
