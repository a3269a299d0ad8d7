package pattern

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Token is a single pattern position.
type Token struct {
	Value    byte
	Wildcard bool
}

// Pattern is an immutable sequence of byte and wildcard tokens.
type Pattern struct {
	tokens []Token
	text   string
}

// Parse decodes pattern text such as "54 ? 00 08 00 01 00".
func Parse(text string) (*Pattern, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, &Error{Pattern: text, Err: ErrEmptyInput}
	}

	tokens := make([]Token, 0, len(fields))
	for _, field := range fields {
		if strings.Trim(field, "?") == "" {
			tokens = append(tokens, Token{Wildcard: true})
			continue
		}
		v, err := strconv.ParseUint(field, 16, 8)
		if err != nil {
			return nil, &Error{Pattern: text, Detail: fmt.Sprintf("bad token %q", field), Err: ErrPatternParse}
		}
		tokens = append(tokens, Token{Value: byte(v)})
	}

	return newPattern(tokens, text)
}

// MustParse is like Parse but panics on error. Intended for package-level
// signature tables.
func MustParse(text string) *Pattern {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}

// New builds a pattern from tokens. The slice is copied.
func New(tokens []Token) (*Pattern, error) {
	if len(tokens) == 0 {
		return nil, &Error{Err: ErrEmptyInput}
	}
	return newPattern(append([]Token(nil), tokens...), "")
}

// ASCII decodes b as 7-bit text. Bytes above 0x7F become '?'.
func ASCII(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		if c > 0x7F {
			c = '?'
		}
		out[i] = c
	}
	return string(out)
}

// Literal builds a pattern with no wildcards.
func Literal(b []byte) *Pattern {
	tokens := make([]Token, len(b))
	for i, v := range b {
		tokens[i] = Token{Value: v}
	}
	p, err := newPattern(tokens, "")
	if err != nil {
		panic(err)
	}
	return p
}

func newPattern(tokens []Token, text string) (*Pattern, error) {
	concrete := false
	for _, t := range tokens {
		if !t.Wildcard {
			concrete = true
			break
		}
	}
	if !concrete {
		return nil, &Error{Pattern: text, Detail: "no concrete byte", Err: ErrPatternParse}
	}
	return &Pattern{tokens: tokens, text: text}, nil
}

// Len returns the number of positions in the pattern.
func (p *Pattern) Len() int {
	return len(p.tokens)
}

// Token returns the token at position i.
func (p *Pattern) Token(i int) Token {
	return p.tokens[i]
}

// MatchesAt reports whether b satisfies position i.
func (p *Pattern) MatchesAt(i int, b byte) bool {
	t := p.tokens[i]
	return t.Wildcard || t.Value == b
}

// String returns the pattern in its canonical text form.
func (p *Pattern) String() string {
	if p.text != "" {
		return p.text
	}
	parts := make([]string, len(p.tokens))
	for i, t := range p.tokens {
		if t.Wildcard {
			parts[i] = "?"
		} else {
			parts[i] = fmt.Sprintf("%02X", t.Value)
		}
	}
	return strings.Join(parts, " ")
}

// ParseHex decodes whitespace separated hex bytes without wildcards,
// e.g. "12 60 0A 05 80".
func ParseHex(text string) ([]byte, error) {
	b, err := hex.DecodeString(strings.Join(strings.Fields(text), ""))
	if err != nil {
		return nil, &Error{Pattern: text, Detail: err.Error(), Err: ErrPatternParse}
	}
	return b, nil
}
