package lexer

import (
	"strings"

	"github.com/gluax-lang/groovyls/common"
)

// TokString represents a string literal without interpolation.
type TokString struct {
	Raw       string
	span      common.Span
	Multiline bool
}

func (t TokString) isToken() {}

func (t TokString) Span() common.Span {
	return t.span
}

func (t TokString) String() string {
	return t.Raw
}

func (t TokString) Is(_ string) bool {
	return false
}

func (t TokString) AsString() string {
	return ""
}

func NewTokString(s string, span common.Span) TokString {
	return TokString{Raw: s, span: span}
}

// GStringValue is the source of one embedded expression of a GString.
// Line and Column locate Code in the file.
type GStringValue struct {
	Code         string
	Line, Column uint32
}

// TokGString is a double-quoted string with ${} or $name interpolation.
// Strings has one more element than Values; Strings[i] precedes Values[i].
type TokGString struct {
	Strings []string
	Values  []GStringValue
	span    common.Span
}

func (t TokGString) isToken() {}

func (t TokGString) Span() common.Span {
	return t.span
}

func (t TokGString) String() string {
	var sb strings.Builder
	for i, s := range t.Strings {
		sb.WriteString(s)
		if i < len(t.Values) {
			sb.WriteString("${" + t.Values[i].Code + "}")
		}
	}
	return sb.String()
}

func (t TokGString) Is(_ string) bool {
	return false
}

func (t TokGString) AsString() string {
	return ""
}

/* Lexing */

func (lx *lexer) string() (Token, *diagnostic) {
	delim := *lx.curChr
	triple := isChr(lx.peek(), delim) && isChr(lx.peekN(2), delim)
	if triple {
		lx.advance()
		lx.advance()
	}
	lx.advance()

	interpolate := delim == '"'
	var (
		sb      strings.Builder
		strs    []string
		values  []GStringValue
		closing = func() bool {
			if !isChr(lx.curChr, delim) {
				return false
			}
			return !triple || (isChr(lx.peek(), delim) && isChr(lx.peekN(2), delim))
		}
	)

	for {
		c := lx.curChr
		if c == nil || (*c == '\n' && !triple) {
			return nil, lx.error("unterminated string literal")
		}

		if closing() {
			n := 1
			if triple {
				n = 3
			}
			for range n {
				lx.advance()
			}
			break
		}

		switch {
		case *c == '\\':
			lx.advance()
			if err := lx.escape(&sb); err != nil {
				return nil, err
			}
		case *c == '$' && interpolate && isChr(lx.peek(), '{'):
			strs = append(strs, sb.String())
			sb.Reset()
			lx.advance() // '$'
			lx.advance() // '{'
			v, err := lx.bracedValue()
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		case *c == '$' && interpolate && lx.peek() != nil && isIdentStart(*lx.peek()) && *lx.peek() != '$':
			strs = append(strs, sb.String())
			sb.Reset()
			lx.advance() // '$'
			values = append(values, lx.dottedValue())
		default:
			sb.WriteRune(*c)
			lx.advance()
		}
	}

	span := lx.currentSpan()
	if len(values) == 0 {
		return TokString{Raw: sb.String(), span: span, Multiline: triple}, nil
	}
	strs = append(strs, sb.String())
	return TokGString{Strings: strs, Values: values, span: span}, nil
}

// bracedValue reads the code of ${...} up to the matching brace.
func (lx *lexer) bracedValue() (GStringValue, *diagnostic) {
	v := GStringValue{Line: lx.line, Column: lx.column}
	start := lx.pos
	depth := 1
	for c := lx.curChr; ; c = lx.curChr {
		if c == nil {
			return v, lx.error("unterminated string interpolation")
		}
		switch *c {
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth == 0 {
			v.Code = string(lx.chars[start:lx.pos])
			lx.advance() // '}'
			return v, nil
		}
		lx.advance()
	}
}

// dottedValue reads the $a.b.c form.
func (lx *lexer) dottedValue() GStringValue {
	v := GStringValue{Line: lx.line, Column: lx.column}
	start := lx.pos
	for {
		for c := lx.curChr; c != nil && isIdentContinue(*c) && *c != '$'; c = lx.curChr {
			lx.advance()
		}
		if !isChr(lx.curChr, '.') || lx.peek() == nil || !isIdentStart(*lx.peek()) {
			break
		}
		lx.advance() // '.'
	}
	v.Code = string(lx.chars[start:lx.pos])
	return v
}

func (lx *lexer) escape(sb *strings.Builder) *diagnostic {
	c := lx.curChr
	if c == nil {
		return lx.error("unterminated string literal")
	}
	switch *c {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case '\\', '\'', '"', '$':
		sb.WriteRune(*c)
	case '\n':
		// line continuation
	case 'u':
		var val rune
		for range 4 {
			lx.advance()
			if lx.curChr == nil || !isBaseDigit(*lx.curChr, 16) {
				return lx.error("malformed Unicode escape sequence")
			}
			val = val<<4 | hexValue(*lx.curChr)
		}
		sb.WriteRune(val)
	default:
		return lx.error("invalid escape sequence")
	}
	lx.advance()
	return nil
}

func hexValue(r rune) rune {
	switch {
	case '0' <= r && r <= '9':
		return r - '0'
	case 'a' <= r && r <= 'f':
		return r - 'a' + 10
	default:
		return r - 'A' + 10
	}
}
