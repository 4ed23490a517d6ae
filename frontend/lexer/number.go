package lexer

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/gluax-lang/groovyls/common"
)

// TokNumber is a numeric literal. Value holds the literal as Groovy types
// it: int32 (Integer), int64 (Long), *big.Int (BigInteger), float32
// (Float), float64 (Double) or *big.Float (BigDecimal).
type TokNumber struct {
	Raw   string
	Value any
	span  common.Span
}

func (t TokNumber) isToken() {}

func (t TokNumber) Span() common.Span {
	return t.span
}

func (t TokNumber) String() string {
	return t.Raw
}

func (t TokNumber) Is(_ string) bool {
	return false
}

func (t TokNumber) AsString() string {
	return ""
}

/* Lexing */

func (lx *lexer) number() (Token, *diagnostic) {
	var sb strings.Builder
	start := lx.pos
	base := 10
	decimal := false

	if isChr(lx.curChr, '0') && lx.peek() != nil {
		switch *lx.peek() {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		}
		if base != 10 {
			lx.advance()
			lx.advance()
		}
	}

	digits := func() {
		for c := lx.curChr; c != nil && (isBaseDigit(*c, base) || *c == '_'); c = lx.curChr {
			if *c != '_' {
				sb.WriteRune(*c)
			}
			lx.advance()
		}
	}
	digits()

	if base == 10 {
		// a dot is only part of the number when a digit follows, so 1..2
		// and 1.abs() stay what they look like
		if isChr(lx.curChr, '.') && isDigit(lx.peek()) {
			decimal = true
			sb.WriteByte('.')
			lx.advance()
			digits()
		}
		if c := lx.curChr; c != nil && (*c == 'e' || *c == 'E') {
			next := lx.peek()
			if isDigit(next) || ((isChr(next, '+') || isChr(next, '-')) && isDigit(lx.peekN(2))) {
				decimal = true
				sb.WriteRune('e')
				lx.advance()
				if isChr(lx.curChr, '+') || isChr(lx.curChr, '-') {
					sb.WriteRune(*lx.curChr)
					lx.advance()
				}
				digits()
			}
		}
	}

	var suffix rune
	if c := lx.curChr; c != nil && strings.ContainsRune("iIlLgGfFdD", *c) {
		suffix = *c
		lx.advance()
	}
	if c := lx.curChr; c != nil && isIdentContinue(*c) {
		return nil, lx.error("malformed number literal")
	}

	span := lx.currentSpan()
	text := sb.String()
	if text == "" {
		return nil, lx.error("malformed number literal")
	}
	val, ok := numberValue(text, base, decimal, suffix)
	if !ok {
		return nil, lx.error("malformed number literal")
	}
	return TokNumber{Raw: string(lx.chars[start:lx.pos]), Value: val, span: span}, nil
}

func numberValue(text string, base int, decimal bool, suffix rune) (any, bool) {
	switch suffix {
	case 'f', 'F':
		f, err := strconv.ParseFloat(text, 32)
		return float32(f), err == nil
	case 'd', 'D':
		f, err := strconv.ParseFloat(text, 64)
		return f, err == nil
	}
	if decimal {
		if suffix != 0 && suffix != 'g' && suffix != 'G' {
			return nil, false
		}
		f, ok := new(big.Float).SetString(text)
		return f, ok
	}

	n, ok := new(big.Int).SetString(text, base)
	if !ok {
		return nil, false
	}
	switch suffix {
	case 'i', 'I':
		if !n.IsInt64() || n.Int64() > math.MaxInt32 || n.Int64() < math.MinInt32 {
			return nil, false
		}
		return int32(n.Int64()), true
	case 'l', 'L':
		if !n.IsInt64() {
			return nil, false
		}
		return n.Int64(), true
	case 'g', 'G':
		return n, true
	}
	// unsuffixed integers take the smallest of Integer, Long, BigInteger
	switch {
	case n.IsInt64() && n.Int64() <= math.MaxInt32:
		return int32(n.Int64()), true
	case n.IsInt64():
		return n.Int64(), true
	default:
		return n, true
	}
}

func isBaseDigit(r rune, base int) bool {
	switch base {
	case 2:
		return r == '0' || r == '1'
	case 16:
		return ('0' <= r && r <= '9') || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
	default:
		return '0' <= r && r <= '9'
	}
}
