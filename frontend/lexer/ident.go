package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gluax-lang/groovyls/common"
)

type TokIdent struct {
	Raw  string
	span common.Span
}

func (t TokIdent) isToken() {}

func (t TokIdent) Span() common.Span {
	return t.span
}

func (t TokIdent) String() string {
	return t.Raw
}

func (t TokIdent) Is(_ string) bool {
	return false
}

func (t TokIdent) AsString() string {
	return ""
}

func NewTokIdent(s string, span common.Span) TokIdent {
	return TokIdent{Raw: s, span: span}
}

func IsIdentStr(t Token, s string) bool {
	if ident, ok := t.(TokIdent); ok {
		return ident.Raw == s
	}
	return false
}

/* Lexing */

func (lx *lexer) identifier() (TokIdent, *diagnostic) {
	var sb strings.Builder

	if !isIdentStart(*lx.curChr) {
		c := *lx.curChr
		lx.advance()
		return TokIdent{}, lx.error(fmt.Sprintf("unexpected character: %c", c))
	}

	sb.WriteRune(*lx.curChr)
	lx.advance()

	for c := lx.curChr; c != nil && isIdentContinue(*c); c = lx.curChr {
		sb.WriteRune(*c)
		lx.advance()
	}

	return NewTokIdent(sb.String(), lx.currentSpan()), nil
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func IsValidIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !isIdentStart(r) {
				return false
			}
		} else if !isIdentContinue(r) {
			return false
		}
	}
	_, kw := lookupKeyword(s)
	return !kw
}
