package parser

import (
	"fmt"

	"github.com/gluax-lang/groovyls/common"
	"github.com/gluax-lang/groovyls/frontend/ast"
	"github.com/gluax-lang/groovyls/frontend/lexer"
)

func (p *parser) parseBlock() *ast.Block {
	spanStart := p.span()

	p.expect("{")

	var stmts []ast.Stmt
	p.unnested(func() {
		for p.skipSemis(); !p.Token.Is("}"); p.skipSemis() {
			if lexer.IsEOF(p.Token) {
				common.PanicDiag("expected: }", spanStart)
			}
			stmts = append(stmts, p.parseStmt())
		}
	})

	p.expect("}")

	span := SpanFrom(spanStart, p.prevSpan())
	return ast.NewBlock(stmts, span)
}

func (p *parser) parseStmt() ast.Stmt {
	switch p.Token.AsString() {
	case "{":
		return p.parseBlock()
	case "if":
		return p.parseIf()
	case "while":
		return p.parseWhile()
	case "for":
		return p.parseFor()
	case "switch":
		return p.parseSwitch()
	case "try":
		return p.parseTry()
	case "return":
		return p.parseReturn()
	case "throw":
		return p.parseThrow()
	case "break", "continue":
		return p.parseJump()
	case "do":
		return p.parseDoWhile()
	case "assert":
		return p.parseAssert()
	}

	if p.startsLocalDecl() {
		return p.parseLocalDecl()
	}

	spanStart := p.span()
	expr := p.parseExpr(ExprCtxStatement)
	p.endStmt()
	return ast.NewStmtExpr(expr, SpanFrom(spanStart, expr.Span()))
}

// startsLocalDecl reports whether a local variable declaration begins at
// the cursor: `def x`, `var x`, `final x`, or `Type x`.
func (p *parser) startsLocalDecl() bool {
	if p.Token.Is("def") || p.Token.Is("var") {
		return true
	}
	if kw, ok := p.Token.(lexer.TokKeyword); ok && kw.Keyword.IsModifier() {
		return true
	}
	if p.Token.Is("@") {
		return true
	}
	return p.startsTypedDecl("=", ",")
}

// parseLocalDecl parses a declaration statement. `def a = 1, b` declares
// two locals and comes back as a DeclGroup.
func (p *parser) parseLocalDecl() ast.Stmt {
	stmt := p.parseLocalDeclNoEnd()
	p.endStmt()
	return stmt
}

func (p *parser) parseLocalDecls() []*ast.LocalDecl {
	spanStart := p.span()
	mods := p.parseModifiers()

	var ty *ast.TypeName
	switch {
	case p.tryConsume("def"), p.tryConsume("var"):
	case lexer.IsIdent(p.Token) && (mods != ast.Modifiers{}) &&
		(p.peek().Is("=") || p.peek().Is(",") || p.spanN(1).LineStart > p.span().LineEnd || p.peek().Is(";")):
		// `final x = 1`
	default:
		ty = p.parseType()
	}

	var decls []*ast.LocalDecl
	for {
		name := p.expectIdentMsg("expected variable name")
		var init *ast.Expr
		if p.tryConsume("=") {
			e := p.parseExpr(ExprCtxNormal)
			init = &e
		}
		decls = append(decls, ast.NewLocalDecl(name, ty, init, SpanFrom(spanStart, p.prevSpan())))
		if !p.tryConsume(",") {
			return decls
		}
	}
}

// parseParenExpr parses `( expr )`.
func (p *parser) parseParenExpr() ast.Expr {
	var expr ast.Expr
	p.expect("(")
	p.nested(func() {
		expr = p.parseExpr(ExprCtxNormal)
		p.expect(")")
	})
	return expr
}

func (p *parser) parseIf() ast.Stmt {
	spanStart := p.span()
	p.advance() // 'if'

	cond := p.parseParenExpr()
	then := p.parseStmt()

	var els ast.Stmt
	if p.lookahead(func() bool { p.skipSemis(); return p.Token.Is("else") }) {
		p.skipSemis()
		p.advance() // 'else'
		els = p.parseStmt()
	}

	return ast.NewIfStmt(cond, then, els, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseWhile() ast.Stmt {
	spanStart := p.span()
	p.advance() // 'while'

	cond := p.parseParenExpr()
	body := p.parseLoopBody()

	return ast.NewWhileStmt(cond, body, false, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseDoWhile() ast.Stmt {
	spanStart := p.span()
	p.advance() // 'do'

	body := p.parseBlock()
	p.expect("while")
	cond := p.parseParenExpr()
	p.endStmt()

	return ast.NewWhileStmt(cond, body, true, SpanFrom(spanStart, p.prevSpan()))
}

// parseLoopBody takes `;` as an empty body.
func (p *parser) parseLoopBody() ast.Stmt {
	if p.Token.Is(";") {
		span := p.span()
		p.advance()
		return ast.NewBlock(nil, span)
	}
	return p.parseStmt()
}

func (p *parser) parseFor() ast.Stmt {
	spanStart := p.span()
	p.advance() // 'for'
	p.expect("(")

	var stmt ast.Stmt
	p.nested(func() {
		if p.startsForIn() {
			v := p.parseParam(FlagParamUntyped)
			if !p.tryConsume("in") {
				p.expect(":")
			}
			iterable := p.parseExpr(ExprCtxNormal)
			p.expect(")")
			stmt = ast.NewForInStmt(v, iterable, nil, common.Span{})
			return
		}

		var init ast.Stmt
		if !p.Token.Is(";") {
			if p.startsLocalDecl() {
				init = p.parseLocalDeclNoEnd()
			} else {
				e := p.parseExpr(ExprCtxNormal)
				init = ast.NewStmtExpr(e, e.Span())
			}
		}
		p.expect(";")

		var cond *ast.Expr
		if !p.Token.Is(";") {
			e := p.parseExpr(ExprCtxNormal)
			cond = &e
		}
		p.expect(";")

		var update []ast.Expr
		for !p.Token.Is(")") {
			update = append(update, p.parseExpr(ExprCtxNormal))
			if !p.tryConsume(",") {
				break
			}
		}
		p.expect(")")
		stmt = ast.NewForStmt(init, cond, update, nil, common.Span{})
	})

	body := p.parseLoopBody()
	span := SpanFrom(spanStart, p.prevSpan())
	switch s := stmt.(type) {
	case *ast.StmtForIn:
		return ast.NewForInStmt(s.Var, s.Iterable, body, span)
	case *ast.StmtFor:
		return ast.NewForStmt(s.Init, s.Cond, s.Update, body, span)
	default:
		panic("unreachable")
	}
}

func (p *parser) parseLocalDeclNoEnd() ast.Stmt {
	decls := p.parseLocalDecls()
	if len(decls) == 1 {
		return decls[0]
	}
	return ast.NewDeclGroup(decls, SpanFrom(decls[0].Span(), decls[len(decls)-1].Span()))
}

// startsForIn tells `for (x in xs)` and `for (T x : xs)` from the classic
// three-part loop.
func (p *parser) startsForIn() bool {
	return p.lookahead(func() bool {
		p.parseParam(FlagParamUntyped)
		return p.Token.Is("in") || p.Token.Is(":")
	})
}

func (p *parser) parseSwitch() ast.Stmt {
	spanStart := p.span()
	p.advance() // 'switch'

	value := p.parseParenExpr()
	p.expect("{")

	var cases []*ast.Case
	p.unnested(func() {
		for p.skipSemis(); !p.Token.Is("}"); p.skipSemis() {
			c := &ast.Case{}
			caseStart := p.span()
			switch {
			case p.tryConsume("case"):
				c.Values = append(c.Values, p.parseExpr(ExprCtxNormal))
				for p.tryConsume(",") {
					c.Values = append(c.Values, p.parseExpr(ExprCtxNormal))
				}
			case p.tryConsume("default"):
			default:
				common.PanicDiag(fmt.Sprintf("expected case or default, got: %s", p.Token.String()), p.span())
			}
			p.expect(":")

			var stmts []ast.Stmt
			for p.skipSemis(); !p.Token.Is("}") && !p.Token.Is("case") &&
				!p.Token.Is("default"); p.skipSemis() {
				if lexer.IsEOF(p.Token) {
					common.PanicDiag("expected: }", spanStart)
				}
				stmts = append(stmts, p.parseStmt())
			}
			c.Body = ast.NewBlock(stmts, SpanFrom(caseStart, p.prevSpan()))
			cases = append(cases, c)
		}
	})
	p.expect("}")

	return ast.NewSwitchStmt(value, cases, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseTry() ast.Stmt {
	spanStart := p.span()
	p.advance() // 'try'

	// try-with-resources declares its resources for the body
	var resources []ast.Stmt
	if p.Token.Is("(") {
		p.advance()
		p.nested(func() {
			for !p.Token.Is(")") {
				resources = append(resources, p.parseLocalDeclNoEnd())
				if !p.tryConsume(";") {
					break
				}
			}
			p.expect(")")
		})
	}

	body := p.parseBlock()
	if len(resources) > 0 {
		body = ast.NewBlock(append(resources, body.Stmts...), body.Span())
	}

	var catches []*ast.Catch
	for p.Token.Is("catch") {
		p.advance()
		var param *ast.Parameter
		p.expect("(")
		p.nested(func() {
			param = p.parseCatchParam()
			p.expect(")")
		})
		catches = append(catches, &ast.Catch{Param: param, Body: p.parseBlock()})
	}

	var finally *ast.Block
	if p.tryConsume("finally") {
		finally = p.parseBlock()
	}

	if len(catches) == 0 && finally == nil {
		common.PanicDiag("try without catch or finally", spanStart)
	}

	return ast.NewTryStmt(body, catches, finally, SpanFrom(spanStart, p.prevSpan()))
}

// parseCatchParam parses `e`, `Exception e` and `IOException | SQLException e`.
// A multi-catch parameter keeps the first type.
func (p *parser) parseCatchParam() *ast.Parameter {
	spanStart := p.span()
	p.parseModifiers()
	if lexer.IsIdent(p.Token) && p.peek().Is(")") {
		name := p.expectIdent()
		return ast.NewParameter(name, nil, nil, name.Span())
	}
	ty := p.parseType()
	for p.tryConsume("|") {
		p.parseType()
	}
	name := p.expectIdentMsg("expected exception name")
	return ast.NewParameter(name, ty, nil, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseReturn() ast.Stmt {
	spanStart := p.span()
	p.advance() // skip `return`

	var value *ast.Expr
	if !p.atStmtEnd() {
		e := p.parseExpr(ExprCtxNormal)
		value = &e
	}
	p.endStmt()

	return ast.NewReturnStmt(value, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseThrow() ast.Stmt {
	spanStart := p.span()
	p.advance() // skip `throw`

	expr := p.parseExpr(ExprCtxNormal)
	p.endStmt()

	return ast.NewThrowStmt(expr, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseJump() ast.Stmt {
	spanStart := p.span()
	keyword := p.Token.AsString()
	p.advance()

	// labels are accepted and dropped
	if lexer.IsIdent(p.Token) && !p.newline() {
		p.advance()
	}
	p.endStmt()

	return ast.NewJumpStmt(keyword, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseAssert() ast.Stmt {
	spanStart := p.span()
	p.advance() // skip `assert`

	cond := p.parseExpr(ExprCtxNormal)
	var msg *ast.Expr
	if p.tryConsume(":") || p.tryConsume(",") {
		e := p.parseExpr(ExprCtxNormal)
		msg = &e
	}
	p.endStmt()

	return ast.NewAssertStmt(cond, msg, SpanFrom(spanStart, p.prevSpan()))
}
