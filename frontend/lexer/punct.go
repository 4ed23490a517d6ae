package lexer

import "github.com/gluax-lang/groovyls/common"

// Punct represents a punctuation token.
type Punct int

const (
	_ Punct = iota

	// PunctPlus is `+`
	PunctPlus
	// PunctMinus is `-`
	PunctMinus
	// PunctAsterisk is `*`
	PunctAsterisk
	// PunctSlash is `/`
	PunctSlash
	// PunctPercent is `%`
	PunctPercent
	// PunctExponent is `**`
	PunctExponent
	// PunctEqual is `=`
	PunctEqual
	// PunctEqualEqual is `==`
	PunctEqualEqual
	// PunctNotEqual is `!=`
	PunctNotEqual
	// PunctIdentical is `===`
	PunctIdentical
	// PunctNotIdentical is `!==`
	PunctNotIdentical
	// PunctLessThan is `<`
	PunctLessThan
	// PunctLessThanEqual is `<=`
	PunctLessThanEqual
	// PunctGreaterThan is `>`; `>>` and `>>>` are two and three of them
	PunctGreaterThan
	// PunctGreaterThanEqual is `>=`
	PunctGreaterThanEqual
	// PunctSpaceship is `<=>`
	PunctSpaceship
	// PunctFind is `=~`
	PunctFind
	// PunctMatch is `==~`
	PunctMatch
	// PunctCaret is `^`
	PunctCaret
	// PunctRange is `..`
	PunctRange
	// PunctRangeExclusive is `..<`
	PunctRangeExclusive
	// PunctBang is `!`
	PunctBang
	// PunctAndAnd is `&&`
	PunctAndAnd
	// PunctOrOr is `||`
	PunctOrOr
	// PunctAmpersand is `&`
	PunctAmpersand
	// PunctPipe is `|`
	PunctPipe
	// PunctTilde is `~`
	PunctTilde
	// PunctShiftLeft is `<<`
	PunctShiftLeft
	// PunctIncrement is `++`
	PunctIncrement
	// PunctDecrement is `--`
	PunctDecrement
	// PunctPlusAssign is `+=`
	PunctPlusAssign
	// PunctMinusAssign is `-=`
	PunctMinusAssign
	// PunctMulAssign is `*=`
	PunctMulAssign
	// PunctDivAssign is `/=`
	PunctDivAssign
	// PunctModAssign is `%=`
	PunctModAssign
	// PunctPowAssign is `**=`
	PunctPowAssign
	// PunctAndAssign is `&=`
	PunctAndAssign
	// PunctOrAssign is `|=`
	PunctOrAssign
	// PunctXorAssign is `^=`
	PunctXorAssign
	// PunctShiftLeftAssign is `<<=`
	PunctShiftLeftAssign
	// PunctSemicolon is `;`
	PunctSemicolon
	// PunctColon is `:`
	PunctColon
	// PunctDoubleColon is `::`
	PunctDoubleColon
	// PunctComma is `,`
	PunctComma
	// PunctOpenParen is `(`
	PunctOpenParen
	// PunctCloseParen is `)`
	PunctCloseParen
	// PunctOpenBrace is `{`
	PunctOpenBrace
	// PunctCloseBrace is `}`
	PunctCloseBrace
	// PunctOpenBracket is `[`
	PunctOpenBracket
	// PunctCloseBracket is `]`
	PunctCloseBracket
	// PunctDot is `.`
	PunctDot
	// PunctSafeDot is `?.`
	PunctSafeDot
	// PunctSpreadDot is `*.`
	PunctSpreadDot
	// PunctElvis is `?:`
	PunctElvis
	// PunctArrow is `->`
	PunctArrow
	// PunctQuestion is `?`
	PunctQuestion
	// PunctAt is `@`
	PunctAt
	// PunctVararg is `...`
	PunctVararg
)

var puncts = map[string]Punct{
	"+":   PunctPlus,
	"-":   PunctMinus,
	"*":   PunctAsterisk,
	"/":   PunctSlash,
	"%":   PunctPercent,
	"**":  PunctExponent,
	"=":   PunctEqual,
	"==":  PunctEqualEqual,
	"!=":  PunctNotEqual,
	"===": PunctIdentical,
	"!==": PunctNotIdentical,
	"<":   PunctLessThan,
	"<=":  PunctLessThanEqual,
	">":   PunctGreaterThan,
	">=":  PunctGreaterThanEqual,
	"<=>": PunctSpaceship,
	"=~":  PunctFind,
	"==~": PunctMatch,
	"^":   PunctCaret,
	"..":  PunctRange,
	"..<": PunctRangeExclusive,
	"!":   PunctBang,
	"&&":  PunctAndAnd,
	"||":  PunctOrOr,
	"&":   PunctAmpersand,
	"|":   PunctPipe,
	"~":   PunctTilde,
	"<<":  PunctShiftLeft,
	"++":  PunctIncrement,
	"--":  PunctDecrement,
	"+=":  PunctPlusAssign,
	"-=":  PunctMinusAssign,
	"*=":  PunctMulAssign,
	"/=":  PunctDivAssign,
	"%=":  PunctModAssign,
	"**=": PunctPowAssign,
	"&=":  PunctAndAssign,
	"|=":  PunctOrAssign,
	"^=":  PunctXorAssign,
	"<<=": PunctShiftLeftAssign,
	";":   PunctSemicolon,
	":":   PunctColon,
	"::":  PunctDoubleColon,
	",":   PunctComma,
	"(":   PunctOpenParen,
	")":   PunctCloseParen,
	"{":   PunctOpenBrace,
	"}":   PunctCloseBrace,
	"[":   PunctOpenBracket,
	"]":   PunctCloseBracket,
	".":   PunctDot,
	"?.":  PunctSafeDot,
	"*.":  PunctSpreadDot,
	"?:":  PunctElvis,
	"->":  PunctArrow,
	"?":   PunctQuestion,
	"@":   PunctAt,
	"...": PunctVararg,
}

const maxPunctLen = 3

var punctNames = func() []string {
	// find the largest enum value so the slice is the right length
	var max Punct
	for _, p := range puncts {
		if p > max {
			max = p
		}
	}
	names := make([]string, max+1)
	for lit, p := range puncts {
		names[p] = lit
	}
	return names
}()

type TokPunct struct {
	Punct Punct
	span  common.Span
}

func (t TokPunct) isToken() {}

func (t TokPunct) Span() common.Span {
	return t.span
}

func (t TokPunct) String() string {
	return punctNames[t.Punct]
}

func (t TokPunct) Is(other string) bool {
	return puncts[other] == t.Punct
}

func (t TokPunct) AsString() string {
	return t.String()
}

func newTokPunct(p Punct, span common.Span) TokPunct {
	return TokPunct{Punct: p, span: span}
}

/* Lexing */

// punct takes the longest punctuation at the cursor.
func (lx *lexer) punct() Token {
	for n := maxPunctLen; n > 0; n-- {
		if lx.pos+n > len(lx.chars) {
			continue
		}
		lit := string(lx.chars[lx.pos : lx.pos+n])
		p, ok := puncts[lit]
		if !ok {
			continue
		}
		// `*.5` and `?.5` are a multiplication and a ternary
		if (p == PunctSpreadDot || p == PunctSafeDot) && isDigit(lx.peekN(2)) {
			continue
		}
		for range n {
			lx.advance()
		}
		return newTokPunct(p, lx.currentSpan())
	}
	return nil
}
