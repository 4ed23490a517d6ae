// Package parser builds the Groovy syntax tree. It is a recursive descent
// parser over the token slice; the first syntax error aborts the parse and
// is returned as a diagnostic.
package parser

import (
	"fmt"

	"github.com/gluax-lang/groovyls/common"
	"github.com/gluax-lang/groovyls/frontend/ast"
	"github.com/gluax-lang/groovyls/frontend/lexer"
	protocol "github.com/gluax-lang/lsp"
)

type diagnostic = protocol.Diagnostic

type Span = common.Span

var SpanFrom = common.SpanFrom

func errorToDiagnostic(err any) *diagnostic {
	switch err := err.(type) {
	case *diagnostic:
		return err
	default:
		panic(fmt.Errorf("unexpected error: %v", err))
	}
}

type parser struct {
	TokenStream []lexer.Token
	Token       lexer.Token
	Pos         uint32
	src         string
	// nesting counts the open parentheses and brackets around the cursor.
	// Newlines end nothing inside them.
	nesting int
}

func newParser(tkS []lexer.Token, src string) *parser {
	return &parser{
		TokenStream: tkS,
		Token:       tkS[0],
		Pos:         0,
		src:         src,
	}
}

// Parse lexes and parses one Groovy file. src names the file in spans.
func Parse(src, code string) (astRet *ast.Ast, err *diagnostic) {
	tkS, err := lexer.Lex(src, code)
	if err != nil {
		return nil, err
	}
	p := newParser(tkS, src)

	defer func() {
		if r := recover(); r != nil {
			astRet, err = nil, errorToDiagnostic(r)
		}
	}()

	astRet = &ast.Ast{Source: src, Code: code}
	p.parseCompilationUnit(astRet)
	return
}

// ParseExpr parses code as a single expression.
func ParseExpr(src, code string) (expr ast.Expr, err *diagnostic) {
	tkS, err := lexer.Lex(src, code)
	if err != nil {
		return ast.Expr{}, err
	}
	p := newParser(tkS, src)

	defer func() {
		if r := recover(); r != nil {
			expr, err = ast.Expr{}, errorToDiagnostic(r)
		}
	}()

	expr = p.parseExpr(ExprCtxNormal)
	if !lexer.IsEOF(p.Token) {
		common.PanicDiag(fmt.Sprintf("unexpected: %s", p.Token.String()), p.span())
	}
	return
}

// advance moves the parser forward by one token.
func (p *parser) advance() {
	p.Pos = common.MinUint32(p.Pos+1, uint32(len(p.TokenStream)-1))
	p.Token = p.TokenStream[p.Pos]
}

// seek rewinds to pos after a failed speculation.
func (p *parser) seek(pos uint32) {
	p.Pos = pos
	p.Token = p.TokenStream[pos]
}

func (p *parser) peek() lexer.Token {
	return p.peekOffset(+1)
}

func (p *parser) peekN(n int) lexer.Token {
	return p.peekOffset(n)
}

func (p *parser) tryConsume(punct string) bool {
	if p.Token.Is(punct) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(s string) {
	if !p.tryConsume(s) {
		common.PanicDiag(fmt.Sprintf("expected: %s, got: %s", s, p.Token.String()), p.span())
	}
}

func (p *parser) expectIdentMsg(msg string) lexer.TokIdent {
	tok := p.Token
	if i, ok := tok.(lexer.TokIdent); ok {
		p.advance()
		return i
	}
	common.PanicDiag(fmt.Sprintf("%s, got: %s", msg, tok.String()), tok.Span())
	panic("unreachable") // love go
}

func (p *parser) expectIdent() lexer.TokIdent {
	return p.expectIdentMsg("expected identifier")
}

// expectName is expectIdent that also takes keywords, as member names
// after a dot may be (`x.class`, `map.in`).
func (p *parser) expectName() lexer.TokIdent {
	if kw, ok := p.Token.(lexer.TokKeyword); ok {
		p.advance()
		return lexer.NewTokIdent(kw.String(), kw.Span())
	}
	return p.expectIdentMsg("expected member name")
}

// peekOffset returns the token at p.Pos + n, clamped to [0, len-1].
// Negative n looks backwards, positive n looks ahead.
func (p *parser) peekOffset(n int) lexer.Token {
	idx := int(p.Pos) + n
	if idx < 0 {
		idx = 0
	} else if idx >= len(p.TokenStream) {
		idx = len(p.TokenStream) - 1
	}
	return p.TokenStream[idx]
}

func (p *parser) spanN(n int) common.Span {
	return p.peekOffset(n).Span()
}

func (p *parser) span() common.Span {
	return p.spanN(0)
}

func (p *parser) prevSpan() common.Span {
	return p.spanN(-1)
}

// newline reports whether a line break separates the current token from
// the previous one, outside of any parentheses or brackets.
func (p *parser) newline() bool {
	if p.nesting > 0 || p.Pos == 0 {
		return false
	}
	return p.span().LineStart > p.prevSpan().LineEnd
}

// atStmtEnd also accepts `else`, which ends the then-branch of
// `if (a) b() else c()`.
func (p *parser) atStmtEnd() bool {
	return lexer.IsEOF(p.Token) || p.Token.Is(";") || p.Token.Is("}") || p.Token.Is("else") || p.newline()
}

// endStmt consumes the end of a statement: a semicolon, a line break, or
// nothing before a closing brace.
func (p *parser) endStmt() {
	if p.tryConsume(";") {
		return
	}
	if !p.atStmtEnd() {
		common.PanicDiag(fmt.Sprintf("expected newline or ;, got: %s", p.Token.String()), p.span())
	}
}

// nested runs f with newlines made insignificant, as inside parentheses.
func (p *parser) nested(f func()) {
	p.nesting++
	defer func() { p.nesting-- }()
	f()
}

// unnested runs f with newlines significant again, as inside a closure
// that sits in an argument list.
func (p *parser) unnested(f func()) {
	saved := p.nesting
	p.nesting = 0
	defer func() { p.nesting = saved }()
	f()
}

// speculate runs f and rewinds the parser when f fails to parse.
func (p *parser) speculate(f func()) (ok bool) {
	pos, nesting := p.Pos, p.nesting
	defer func() {
		if r := recover(); r != nil {
			errorToDiagnostic(r)
			p.seek(pos)
			p.nesting = nesting
			ok = false
		}
	}()
	f()
	return true
}

// lookahead reports what f returns, leaving the parser where it was.
// A failed parse counts as false.
func (p *parser) lookahead(f func() bool) bool {
	pos, nesting := p.Pos, p.nesting
	result := false
	p.speculate(func() { result = f() })
	p.seek(pos)
	p.nesting = nesting
	return result
}

func (p *parser) parseCommaSeparatedDelimited(
	closing string,
	parse func(*parser),
) {
	p.nested(func() {
		for !p.Token.Is(closing) {
			parse(p)
			if !p.tryConsume(",") {
				break
			}
		}
		p.expect(closing)
	})
}

// parseQualifiedName parses a.b.c.
func (p *parser) parseQualifiedName() (string, common.Span) {
	spanStart := p.span()
	name := p.expectIdent().Raw
	for p.Token.Is(".") && lexer.IsIdent(p.peek()) {
		p.advance() // '.'
		name += "." + p.expectIdent().Raw
	}
	return name, SpanFrom(spanStart, p.prevSpan())
}
