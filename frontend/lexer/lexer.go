// Package lexer turns Groovy source into tokens. Comments are dropped and
// newlines are not tokens; the parser looks at token spans to find
// statement ends.
package lexer

import (
	"github.com/gluax-lang/groovyls/common"
	protocol "github.com/gluax-lang/lsp"
)

type diagnostic = protocol.Diagnostic

// lexer is a hand-rolled, rune-based scanner.
type lexer struct {
	src                    string // source is the file being scanned
	chars                  []rune
	pos                    int
	curChr                 *rune
	line, column           uint32
	savedLine, savedColumn uint32
}

func Lex(src, code string) ([]Token, *diagnostic) {
	return LexAt(src, code, 1, 1)
}

// LexAt lexes code that starts at line:column of src, as the embedded
// expressions of a GString do.
func LexAt(src, code string, line, column uint32) ([]Token, *diagnostic) {
	var tokens []Token
	lx := newLexer(src, code, line, column)
	for {
		tok, err := lx.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if _, ok := tok.(TokEOF); ok {
			break
		}
	}
	return tokens, nil
}

func newLexer(src, code string, line, column uint32) *lexer {
	lx := &lexer{
		src:   src,
		chars: []rune(code),
		pos:   -1,
		line:  line, column: column,
		savedLine: line, savedColumn: column,
	}
	lx.step()
	return lx
}

func (lx *lexer) step() {
	lx.pos++
	if lx.pos >= len(lx.chars) {
		lx.curChr = nil
		return
	}
	c := lx.chars[lx.pos]
	if c == '\r' && lx.pos+1 < len(lx.chars) && lx.chars[lx.pos+1] == '\n' {
		lx.pos++
		c = '\n'
	}
	lx.curChr = &c
}

func (lx *lexer) currentSpan() common.Span {
	span := common.SpanNew(lx.savedLine, lx.line, lx.savedColumn, common.MaxUint32(lx.column-1, 1))
	span.Source = lx.src
	return span
}

func (lx *lexer) advance() {
	c := lx.curChr
	if c != nil {
		if *c == '\n' {
			lx.line++
			lx.column = 1
		} else {
			lx.column++
		}
	}
	lx.step()
}

func (lx *lexer) peek() *rune {
	return lx.peekN(1)
}

func (lx *lexer) peekN(n int) *rune {
	i := lx.pos + n
	if i >= len(lx.chars) {
		return nil
	}
	c := lx.chars[i]
	return &c
}

func (lx *lexer) error(msg string) *diagnostic {
	return common.ErrorDiag(msg, lx.currentSpan())
}

// skipWs skips whitespace and comments up to the next token.
func (lx *lexer) skipWs() *diagnostic {
	for {
		c := lx.curChr
		switch {
		case isWsChr(c):
			lx.advance()
		case isChr(c, '/') && isChr(lx.peek(), '/'):
			lx.comment()
		case isChr(c, '/') && isChr(lx.peek(), '*'):
			lx.savedLine, lx.savedColumn = lx.line, lx.column
			if err := lx.multilineComment(); err != nil {
				return err
			}
		case isChr(c, '#') && isChr(lx.peek(), '!') && lx.pos == 0:
			// shebang
			lx.comment()
		default:
			lx.savedLine = lx.line
			lx.savedColumn = lx.column
			return nil
		}
	}
}

func (lx *lexer) nextToken() (Token, *diagnostic) {
	lastLine, lastColumn := lx.line, lx.column
	if err := lx.skipWs(); err != nil {
		return nil, err
	}

	c := lx.curChr

	// EOF
	if c == nil {
		span := common.SpanNew(lastLine, lastLine, lastColumn, lastColumn)
		span.Source = lx.src
		return TokEOF{span: span}, nil
	}

	// String
	if *c == '"' || *c == '\'' {
		return lx.string()
	}

	// Number
	if isDigit(c) {
		return lx.number()
	}

	// Punctuation
	if token := lx.punct(); token != nil {
		return token, nil
	}

	// Identifier
	identTok, err := lx.identifier()
	if err != nil {
		return nil, err
	}

	// Keyword
	if keyword, ok := lookupKeyword(identTok.Raw); ok {
		return newTokKeyword(keyword, identTok.Span()), nil
	}

	return identTok, nil
}

func isChr(c *rune, e rune) bool {
	return c != nil && *c == e
}

func isDigit(c *rune) bool {
	return c != nil && '0' <= *c && *c <= '9'
}

func isWsChr(c *rune) bool {
	if c == nil {
		return false
	}
	switch *c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	default:
		return false
	}
}
