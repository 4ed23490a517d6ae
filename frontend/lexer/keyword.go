package lexer

import "github.com/gluax-lang/groovyls/common"

// Keyword represents a reserved keyword. Primitive type names are
// identifiers.
type Keyword int

const (
	_ Keyword = iota
	KwPackage
	KwImport
	KwClass
	KwInterface
	KwEnum
	KwExtends
	KwImplements
	KwDef
	KwVar
	KwReturn
	KwIf
	KwElse
	KwWhile
	KwFor
	KwIn
	KwNew
	KwTrue
	KwFalse
	KwNull
	KwThis
	KwSuper
	KwStatic
	KwFinal
	KwAbstract
	KwPublic
	KwPrivate
	KwProtected
	KwAs
	KwInstanceof
	KwBreak
	KwContinue
	KwThrow
	KwTry
	KwCatch
	KwFinally
	KwSwitch
	KwCase
	KwDefault
	KwDo
	KwAssert
	KwThrows
)

// table is populated at compile-time; no code runs in init().
var keywordTable = map[string]Keyword{
	"package":    KwPackage,
	"import":     KwImport,
	"class":      KwClass,
	"interface":  KwInterface,
	"enum":       KwEnum,
	"extends":    KwExtends,
	"implements": KwImplements,
	"def":        KwDef,
	"var":        KwVar,
	"return":     KwReturn,
	"if":         KwIf,
	"else":       KwElse,
	"while":      KwWhile,
	"for":        KwFor,
	"in":         KwIn,
	"new":        KwNew,
	"true":       KwTrue,
	"false":      KwFalse,
	"null":       KwNull,
	"this":       KwThis,
	"super":      KwSuper,
	"static":     KwStatic,
	"final":      KwFinal,
	"abstract":   KwAbstract,
	"public":     KwPublic,
	"private":    KwPrivate,
	"protected":  KwProtected,
	"as":         KwAs,
	"instanceof": KwInstanceof,
	"break":      KwBreak,
	"continue":   KwContinue,
	"throw":      KwThrow,
	"try":        KwTry,
	"catch":      KwCatch,
	"finally":    KwFinally,
	"switch":     KwSwitch,
	"case":       KwCase,
	"default":    KwDefault,
	"do":         KwDo,
	"assert":     KwAssert,
	"throws":     KwThrows,
}

var keywordNames = func() []string {
	// find the largest enum value so the slice is the right length
	var max Keyword
	for _, kw := range keywordTable {
		if kw > max {
			max = kw
		}
	}
	names := make([]string, max+1)
	for lit, kw := range keywordTable {
		names[kw] = lit
	}
	return names
}()

func lookupKeyword(lit string) (Keyword, bool) {
	kw, ok := keywordTable[lit]
	return kw, ok
}

// IsModifier reports whether kw may precede a declaration.
func (kw Keyword) IsModifier() bool {
	switch kw {
	case KwStatic, KwFinal, KwAbstract, KwPublic, KwPrivate, KwProtected:
		return true
	default:
		return false
	}
}

// IsVisibility reports whether kw is an access modifier.
func (kw Keyword) IsVisibility() bool {
	switch kw {
	case KwPublic, KwPrivate, KwProtected:
		return true
	default:
		return false
	}
}

type TokKeyword struct {
	Keyword Keyword
	span    common.Span
}

func (t TokKeyword) isToken() {}

func (t TokKeyword) Span() common.Span {
	return t.span
}

func (t TokKeyword) String() string {
	return keywordNames[t.Keyword]
}

func (t TokKeyword) Is(other string) bool {
	return keywordTable[other] == t.Keyword
}

func (t TokKeyword) AsString() string {
	return t.String()
}

func newTokKeyword(k Keyword, span common.Span) TokKeyword {
	return TokKeyword{Keyword: k, span: span}
}
