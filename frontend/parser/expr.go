package parser

import (
	"fmt"

	"github.com/gluax-lang/groovyls/common"
	"github.com/gluax-lang/groovyls/frontend/ast"
	"github.com/gluax-lang/groovyls/frontend/lexer"
)

// ExprCtx tells the parser how to treat the upcoming expression.
//
// Normal     - ordinary expression parsing.
//
// Statement  - the expression is a whole statement, so it may be a command
// call with unparenthesized arguments (`println x`).
type ExprCtx int

const (
	ExprCtxNormal ExprCtx = iota
	ExprCtxStatement
)

func (c ExprCtx) IsStatement() bool {
	return c == ExprCtxStatement
}

func (c ExprCtx) IsNormal() bool {
	return c == ExprCtxNormal
}

func (c ExprCtx) String() string {
	switch c {
	case ExprCtxNormal:
		return "Normal"
	case ExprCtxStatement:
		return "Statement"
	default:
		panic("unreachable")
	}
}

var assignOps = map[string]struct{}{
	"=": {}, "+=": {}, "-=": {}, "*=": {}, "/=": {}, "%=": {},
	"**=": {}, "&=": {}, "|=": {}, "^=": {}, "<<=": {},
}

func (p *parser) parseExpr(ctx ExprCtx) ast.Expr {
	left := p.parseTernaryExpr(ctx)

	op := p.Token.AsString()
	if _, ok := assignOps[op]; !ok || p.newline() {
		return left
	}
	if !isValidAssignmentTarget(left) {
		common.PanicDiag("invalid assignment target", left.Span())
	}
	p.advance() // operator

	right := p.parseExpr(ExprCtxNormal)
	return ast.NewBinaryExpr(left, op, right, SpanFrom(left.Span(), right.Span()))
}

func isValidAssignmentTarget(expr ast.Expr) bool {
	switch expr.Kind() {
	case ast.ExprKindIdent, ast.ExprKindProperty:
		return true
	case ast.ExprKindBinary:
		return expr.Binary().Op == "["
	}
	return false
}

// parseTernaryExpr parses `c ? a : b` and `a ?: b`. Both may continue on
// the next line.
func (p *parser) parseTernaryExpr(ctx ExprCtx) ast.Expr {
	cond := p.parseBinaryExpr(ctx, 0)

	switch {
	case p.Token.Is("?"):
		p.advance() // '?'
		then := p.parseTernaryExpr(ExprCtxNormal)
		p.expect(":")
		els := p.parseTernaryExpr(ExprCtxNormal)
		return ast.NewTernaryExpr(cond, then, els, SpanFrom(cond.Span(), els.Span()))
	case p.Token.Is("?:"):
		p.advance() // '?:'
		els := p.parseTernaryExpr(ExprCtxNormal)
		return ast.NewElvisExpr(cond, els, SpanFrom(cond.Span(), els.Span()))
	}
	return cond
}

func (p *parser) parsePrimaryExpr(ctx ExprCtx) ast.Expr {
	switch v := p.Token.(type) {
	case lexer.TokIdent:
		p.advance() // consume identifier
		return ast.NewIdentExpr(v)
	case lexer.TokNumber:
		p.advance() // consume number
		return ast.NewNumberExpr(v)
	case lexer.TokString:
		p.advance() // consume string
		return ast.NewStringExpr(v.Raw, v.Span())
	case lexer.TokGString:
		p.advance() // consume gstring
		return p.parseGString(v)
	}

	tok := p.Token
	switch tok.AsString() {
	case "true", "false":
		p.advance() // consume bool
		return ast.NewBoolExpr(tok)
	case "null":
		p.advance() // consume null
		return ast.NewNullExpr(tok.Span())
	case "this", "super":
		p.advance()
		return ast.NewIdentExpr(lexer.NewTokIdent(tok.String(), tok.Span()))
	case "new":
		return p.parseNewExpr()
	case "(":
		return p.parseParenOrCast()
	case "[":
		return p.parseListOrMap()
	case "{":
		return p.parseClosure()
	}

	common.PanicDiag(fmt.Sprintf("expected expression, got: %s", tok.String()), tok.Span())
	panic("unreachable") // love go
}

// parseGString parses each embedded value of a GString at its place in
// the file.
func (p *parser) parseGString(g lexer.TokGString) ast.Expr {
	values := make([]ast.Expr, len(g.Values))
	for i, v := range g.Values {
		tkS, err := lexer.LexAt(p.src, v.Code, v.Line, v.Column)
		if err != nil {
			panic(err)
		}
		sub := newParser(tkS, p.src)
		sub.nesting = 1
		if lexer.IsEOF(sub.Token) {
			common.PanicDiag("empty string interpolation", g.Span())
		}
		values[i] = sub.parseExpr(ExprCtxNormal)
		if !lexer.IsEOF(sub.Token) {
			common.PanicDiag(fmt.Sprintf("unexpected in string interpolation: %s", sub.Token.String()), sub.span())
		}
	}
	return ast.NewGStringExpr(g.Strings, values, g.Span())
}

func (p *parser) parseParenOrCast() ast.Expr {
	spanStart := p.span()
	if p.startsCast() {
		p.advance() // '('
		var ty *ast.TypeName
		p.nested(func() {
			ty = p.parseType()
			p.expect(")")
		})
		operand := p.parseUnaryExpr(ExprCtxNormal)
		return ast.NewCastExpr(ty, operand, SpanFrom(spanStart, operand.Span()))
	}
	return p.parseParenExpr()
}

// startsCast reports whether `(Type)` followed by an operand is at the
// cursor. `(a) - b` stays a subtraction.
func (p *parser) startsCast() bool {
	return p.lookahead(func() bool {
		p.advance() // '('
		p.nesting++
		if !isTypeLike(p.parseType()) || !p.Token.Is(")") {
			return false
		}
		p.nesting--
		p.advance() // ')'
		switch p.Token.(type) {
		case lexer.TokIdent, lexer.TokNumber, lexer.TokString, lexer.TokGString:
			return true
		}
		switch p.Token.AsString() {
		case "(", "[", "!", "~", "true", "false", "null", "this", "new":
			return true
		}
		return false
	})
}

// parseListOrMap parses `[a, b]`, `[k: v]` and the empty map `[:]`. Plain
// identifier and keyword keys are strings.
func (p *parser) parseListOrMap() ast.Expr {
	spanStart := p.span()
	p.advance() // '['

	if p.Token.Is(":") && p.peek().Is("]") {
		p.advance()
		p.advance()
		return ast.NewMapExpr(nil, SpanFrom(spanStart, p.prevSpan()))
	}

	var (
		elems   []ast.Expr
		entries []*ast.MapEntry
	)
	p.nested(func() {
		for !p.Token.Is("]") {
			if entry, ok := p.tryMapEntry(); ok {
				entries = append(entries, entry)
			} else {
				elems = append(elems, p.parseExpr(ExprCtxNormal))
			}
			if len(elems) > 0 && len(entries) > 0 {
				common.PanicDiag("list and map elements cannot be mixed", p.prevSpan())
			}
			if !p.tryConsume(",") {
				break
			}
		}
		p.expect("]")
	})

	span := SpanFrom(spanStart, p.prevSpan())
	if len(entries) > 0 {
		return ast.NewMapExpr(entries, span)
	}
	return ast.NewListExpr(elems, span)
}

// tryMapEntry parses `key: value` when a key and a colon are at the
// cursor. It is also how named arguments are read.
func (p *parser) tryMapEntry() (*ast.MapEntry, bool) {
	var key ast.Expr
	switch tok := p.Token.(type) {
	case lexer.TokIdent:
		if !p.peek().Is(":") {
			return nil, false
		}
		key = ast.NewStringExpr(tok.Raw, tok.Span())
		p.advance()
	case lexer.TokKeyword:
		if !p.peek().Is(":") {
			return nil, false
		}
		key = ast.NewStringExpr(tok.String(), tok.Span())
		p.advance()
	case lexer.TokString, lexer.TokNumber, lexer.TokGString:
		if !p.peek().Is(":") {
			return nil, false
		}
		key = p.parsePrimaryExpr(ExprCtxNormal)
	default:
		// `(expr): value` computes the key
		if !p.Token.Is("(") || !p.lookahead(func() bool { p.parseParenExpr(); return p.Token.Is(":") }) {
			return nil, false
		}
		key = p.parseParenExpr()
	}
	p.expect(":")
	value := p.parseExpr(ExprCtxNormal)
	return ast.NewMapEntry(key, value), true
}

// parseClosure parses `{ a, b -> ... }` and `{ ... }`.
func (p *parser) parseClosure() ast.Expr {
	spanStart := p.span()
	p.expect("{")

	var (
		params []*ast.Parameter
		arrow  bool
	)
	switch {
	case p.tryConsume("->"):
		arrow = true
	case p.startsClosureParams():
		p.nested(func() {
			for {
				params = append(params, p.parseParam(FlagParamUntyped|FlagParamDefault))
				if !p.tryConsume(",") {
					break
				}
			}
			p.expect("->")
		})
		arrow = true
	}

	bodyStart := p.span()
	var stmts []ast.Stmt
	p.unnested(func() {
		for p.skipSemis(); !p.Token.Is("}"); p.skipSemis() {
			if lexer.IsEOF(p.Token) {
				common.PanicDiag("expected: } to close closure", spanStart)
			}
			stmts = append(stmts, p.parseStmt())
		}
	})
	p.expect("}")

	body := ast.NewBlock(stmts, SpanFrom(bodyStart, p.prevSpan()))
	return ast.NewClosureExpr(params, arrow, body, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) startsClosureParams() bool {
	return p.lookahead(func() bool {
		p.nesting++
		for {
			p.parseParam(FlagParamUntyped | FlagParamDefault)
			if !p.tryConsume(",") {
				break
			}
		}
		return p.Token.Is("->")
	})
}

// parseNewExpr parses `new T(args)`, `new T[n]` and `new T[] {...}`.
// Anonymous class bodies are skipped.
func (p *parser) parseNewExpr() ast.Expr {
	spanStart := p.span()
	p.advance() // 'new'

	ty := p.parseType()

	if p.Token.Is("[") {
		for p.Token.Is("[") {
			p.advance() // '['
			p.nested(func() {
				if !p.Token.Is("]") {
					p.parseExpr(ExprCtxNormal)
				}
				p.expect("]")
			})
			ty.Dims++
		}
		return ast.NewNewExpr(ty, nil, SpanFrom(spanStart, p.prevSpan()))
	}
	if ty.Dims > 0 {
		if p.Token.Is("{") {
			p.skipDelimited()
		}
		return ast.NewNewExpr(ty, nil, SpanFrom(spanStart, p.prevSpan()))
	}

	args := p.parseArgs()
	if p.Token.Is("{") && !p.newline() {
		p.skipDelimited()
	}
	return ast.NewNewExpr(ty, args, SpanFrom(spanStart, p.prevSpan()))
}

// parseArgs parses a parenthesized argument list. Named arguments are
// gathered into one map that becomes the first argument.
func (p *parser) parseArgs() []ast.Expr {
	p.expect("(")

	var (
		args  []ast.Expr
		named []*ast.MapEntry
	)
	p.parseCommaSeparatedDelimited(")", func(p *parser) {
		if entry, ok := p.tryMapEntry(); ok {
			named = append(named, entry)
			return
		}
		args = append(args, p.parseExpr(ExprCtxNormal))
	})

	return withNamedArgs(args, named)
}

func withNamedArgs(args []ast.Expr, named []*ast.MapEntry) []ast.Expr {
	if len(named) == 0 {
		return args
	}
	span := SpanFrom(named[0].Span(), named[len(named)-1].Span())
	return append([]ast.Expr{ast.NewMapExpr(named, span)}, args...)
}

// parseTrailingClosures appends the closures written after a call's
// argument list on the same line.
func (p *parser) parseTrailingClosures(args []ast.Expr) []ast.Expr {
	for p.Token.Is("{") && !p.newline() {
		args = append(args, p.parseClosure())
	}
	return args
}

// startsCommandArgs reports whether the cursor begins the arguments of a
// command call such as `println "hi"` or `greet name: "x"`.
func (p *parser) startsCommandArgs() bool {
	if p.newline() || p.nesting > 0 {
		return false
	}
	switch p.Token.(type) {
	case lexer.TokIdent, lexer.TokNumber, lexer.TokString, lexer.TokGString:
		return true
	}
	switch p.Token.AsString() {
	case "true", "false", "null", "this", "new":
		return true
	}
	return false
}

// parseCommandArgs parses unparenthesized arguments up to the end of the
// statement.
func (p *parser) parseCommandArgs() []ast.Expr {
	var (
		args  []ast.Expr
		named []*ast.MapEntry
	)
	for {
		if entry, ok := p.tryMapEntry(); ok {
			named = append(named, entry)
		} else {
			args = append(args, p.parseExpr(ExprCtxNormal))
		}
		if !p.tryConsume(",") {
			break
		}
	}
	return p.parseTrailingClosures(withNamedArgs(args, named))
}
