package lexer

import (
	"github.com/gluax-lang/groovyls/common"
)

type Token interface {
	isToken()
	Span() common.Span
	String() string
	Is(string) bool
	// AsString used for keywords and punctuations, to make it easier to switch on tokens for them
	AsString() string
}

type TokEOF struct {
	span common.Span
}

func (t TokEOF) isToken()          {}
func (t TokEOF) Span() common.Span { return t.span }
func (t TokEOF) String() string    { return "<EOF>" }
func (t TokEOF) Is(_ string) bool  { return false }
func (t TokEOF) AsString() string  { return "" }

func IsEOF(t Token) bool {
	_, ok := t.(TokEOF)
	return ok
}

func IsIdent(t Token) bool {
	_, ok := t.(TokIdent)
	return ok
}
