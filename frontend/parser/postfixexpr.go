package parser

import (
	"github.com/gluax-lang/groovyls/frontend/ast"
	"github.com/gluax-lang/groovyls/frontend/lexer"
)

func (p *parser) parsePostfixExpr(ctx ExprCtx, left ast.Expr) ast.Expr {
	spanStart := left.Span()

	switch {
	case p.Token.Is(".") || p.Token.Is("?.") || p.Token.Is("*."):
		// member access may start the next line
		op := p.Token.AsString()
		p.advance() // eat the operator

		var name ast.Ident
		if s, ok := p.Token.(lexer.TokString); ok {
			// obj."quoted name"
			p.advance()
			name = lexer.NewTokIdent(s.Raw, s.Span())
		} else {
			name = p.expectName()
		}

		receiver := left
		switch {
		case p.Token.Is("(") && !p.newline():
			args := p.parseTrailingClosures(p.parseArgs())
			left = ast.NewMethodCallExpr(&receiver, name, args, op, SpanFrom(spanStart, p.prevSpan()))
		case p.Token.Is("{") && !p.newline():
			args := p.parseTrailingClosures(nil)
			left = ast.NewMethodCallExpr(&receiver, name, args, op, SpanFrom(spanStart, p.prevSpan()))
		case ctx.IsStatement() && p.startsCommandArgs():
			args := p.parseCommandArgs()
			left = ast.NewMethodCallExpr(&receiver, name, args, op, SpanFrom(spanStart, p.prevSpan()))
			ctx = ExprCtxNormal
		default:
			left = ast.NewPropertyExpr(receiver, name, op, SpanFrom(spanStart, p.prevSpan()))
		}

	case p.newline():
		return left

	case p.Token.Is("(") && left.Kind() == ast.ExprKindIdent:
		args := p.parseTrailingClosures(p.parseArgs())
		left = ast.NewMethodCallExpr(nil, left.Ident().Name, args, "", SpanFrom(spanStart, p.prevSpan()))

	case p.Token.Is("("):
		// calling a value calls its call() method
		receiver := left
		call := lexer.NewTokIdent("call", p.span())
		args := p.parseTrailingClosures(p.parseArgs())
		left = ast.NewMethodCallExpr(&receiver, call, args, ".", SpanFrom(spanStart, p.prevSpan()))

	case p.Token.Is("{") && left.Kind() == ast.ExprKindIdent:
		args := p.parseTrailingClosures(nil)
		left = ast.NewMethodCallExpr(nil, left.Ident().Name, args, "", SpanFrom(spanStart, p.prevSpan()))

	case ctx.IsStatement() && left.Kind() == ast.ExprKindIdent && p.startsCommandArgs():
		args := p.parseCommandArgs()
		left = ast.NewMethodCallExpr(nil, left.Ident().Name, args, "", SpanFrom(spanStart, p.prevSpan()))
		ctx = ExprCtxNormal

	case p.Token.Is("["):
		left = p.parseIndex(left)

	case p.Token.Is("++") || p.Token.Is("--"):
		op := p.Token.AsString()
		p.advance()
		left = ast.NewUnaryExpr(op, left, true, SpanFrom(spanStart, p.prevSpan()))

	default:
		// nothing postfix-y ahead -> recursion ends
		return left
	}

	// Tail-recurse to see if *another* postfix operator follows
	return p.parsePostfixExpr(ctx, left)
}

// parseIndex parses `a[i]`; `a[i, j]` indexes with a list.
func (p *parser) parseIndex(left ast.Expr) ast.Expr {
	spanStart := p.span()
	p.advance() // '['

	var idx []ast.Expr
	p.parseCommaSeparatedDelimited("]", func(p *parser) {
		idx = append(idx, p.parseExpr(ExprCtxNormal))
	})

	var right ast.Expr
	switch len(idx) {
	case 0:
		right = ast.NewListExpr(nil, SpanFrom(spanStart, p.prevSpan()))
	case 1:
		right = idx[0]
	default:
		right = ast.NewListExpr(idx, SpanFrom(spanStart, p.prevSpan()))
	}
	return ast.NewBinaryExpr(left, "[", right, SpanFrom(left.Span(), p.prevSpan()))
}
