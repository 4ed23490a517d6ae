package parser

import (
	"github.com/gluax-lang/groovyls/frontend/ast"
	"github.com/gluax-lang/groovyls/frontend/lexer"
)

type associativity uint8

const (
	assocLeft associativity = iota
	assocRight
)

func getBinaryOperatorPrecedence(op string) (int, associativity, bool) {
	switch op {
	// Logical
	case "||":
		return 1, assocLeft, true
	case "&&":
		return 2, assocLeft, true

	// Bitwise
	case "|":
		return 3, assocLeft, true
	case "^":
		return 4, assocLeft, true
	case "&":
		return 5, assocLeft, true

	// Equality and matching
	case "==", "!=", "<=>", "===", "!==", "=~", "==~":
		return 6, assocLeft, true

	// Relational
	case "<", ">", "<=", ">=", "in", "!in", "instanceof", "!instanceof", "as":
		return 7, assocLeft, true

	// Shifts and ranges
	case "<<", ">>", ">>>", "..", "..<":
		return 8, assocLeft, true

	// Add / sub
	case "+", "-":
		return 9, assocLeft, true

	// Mul / div / mod
	case "*", "/", "%":
		return 10, assocLeft, true
	}

	return 0, assocLeft, false
}

// binaryOperator reads the operator at the cursor without consuming it.
// `>>` and `>>>` are adjacent `>` tokens, and `!in` is two tokens.
func (p *parser) binaryOperator() (string, int) {
	switch {
	case p.Token.Is(">") && p.peek().Is(">") && adjacent(p.Token, p.peek()):
		if p.peekN(2).Is(">") && adjacent(p.peek(), p.peekN(2)) {
			return ">>>", 3
		}
		return ">>", 2
	case p.Token.Is("!") && (p.peek().Is("in") || p.peek().Is("instanceof")) && adjacent(p.Token, p.peek()):
		return "!" + p.peek().AsString(), 2
	}
	return p.Token.AsString(), 1
}

func adjacent(a, b lexer.Token) bool {
	as, bs := a.Span(), b.Span()
	return as.LineEnd == bs.LineStart && as.ColumnEnd+1 == bs.ColumnStart
}

func (p *parser) parseBinaryExpr(ctx ExprCtx, minPrec int) ast.Expr {
	left := p.parseUnaryExpr(ctx)

	for {
		// a binary operator never continues a statement on the next line
		if p.newline() {
			break
		}

		opStr, width := p.binaryOperator()
		prec, assoc, ok := getBinaryOperatorPrecedence(opStr)
		if !ok || prec < minPrec {
			// Not an operator we care about, or lower precedence -> done.
			break
		}

		for range width {
			p.advance()
		}

		switch opStr {
		case "as":
			ty := p.parseType()
			left = ast.NewCastExpr(ty, left, SpanFrom(left.Span(), ty.Span()))
			continue
		case "instanceof", "!instanceof":
			ty := p.parseType()
			right := ast.NewIdentExpr(lexer.NewTokIdent(ty.String(), ty.Span()))
			left = ast.NewBinaryExpr(left, opStr, right, SpanFrom(left.Span(), ty.Span()))
			continue
		}

		nextMinPrec := prec
		if assoc == assocLeft {
			nextMinPrec = prec + 1
		}
		right := p.parseBinaryExpr(ExprCtxNormal, nextMinPrec)

		span := SpanFrom(left.Span(), right.Span())
		left = ast.NewBinaryExpr(left, opStr, right, span)
	}

	return left
}
