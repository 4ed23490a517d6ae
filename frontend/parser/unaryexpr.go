package parser

import (
	"github.com/gluax-lang/groovyls/frontend/ast"
)

func (p *parser) parseUnaryExpr(ctx ExprCtx) ast.Expr {
	spanStart := p.span()

	switch op := p.Token.AsString(); op {
	case "!":
		p.advance() // consume '!'
		operand := p.parseUnaryExpr(ExprCtxNormal)
		return ast.NewNotExpr(operand, SpanFrom(spanStart, operand.Span()))
	case "-", "+", "~", "++", "--":
		p.advance() // consume operator
		operand := p.parseUnaryExpr(ExprCtxNormal)
		return ast.NewUnaryExpr(op, operand, false, SpanFrom(spanStart, operand.Span()))
	}

	return p.parsePowerExpr(ctx)
}

// parsePowerExpr parses `a ** b`, which binds tighter than a sign on its
// left and is right associative: -2 ** 2 is -(2 ** 2).
func (p *parser) parsePowerExpr(ctx ExprCtx) ast.Expr {
	base := p.parsePostfixExpr(ctx, p.parsePrimaryExpr(ctx))
	if !p.Token.Is("**") || p.newline() {
		return base
	}
	p.advance() // consume '**'
	exp := p.parseUnaryExpr(ExprCtxNormal)
	return ast.NewBinaryExpr(base, "**", exp, SpanFrom(base.Span(), exp.Span()))
}
