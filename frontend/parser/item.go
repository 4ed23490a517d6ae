package parser

import (
	"fmt"

	"github.com/gluax-lang/groovyls/common"
	"github.com/gluax-lang/groovyls/frontend/ast"
	"github.com/gluax-lang/groovyls/frontend/lexer"
)

func (p *parser) parseCompilationUnit(a *ast.Ast) {
	p.skipSemis()
	p.skipAnnotations()
	if p.Token.Is("package") {
		a.Package = p.parsePackage()
	}

	for p.skipSemis(); !lexer.IsEOF(p.Token); p.skipSemis() {
		p.skipAnnotations()
		switch {
		case p.Token.Is("import"):
			a.Imports = append(a.Imports, p.parseImport())
		case p.startsClass():
			a.Classes = append(a.Classes, p.parseClass(a)...)
		case p.startsMethod(""):
			a.Methods = append(a.Methods, p.parseMethod(p.parseModifiers(), ""))
		default:
			a.Stmts = append(a.Stmts, p.parseStmt())
		}
	}
}

func (p *parser) skipSemis() {
	for p.tryConsume(";") {
	}
}

func (p *parser) parsePackage() *ast.Package {
	spanStart := p.span()
	p.advance() // 'package'
	name, _ := p.parseQualifiedName()
	p.endStmt()
	return ast.NewPackage(name, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseImport() *ast.Import {
	spanStart := p.span()
	p.advance() // 'import'

	static := p.tryConsume("static")
	path, _ := p.parseQualifiedName()

	star := false
	if p.Token.Is(".") && p.peek().Is("*") {
		p.advance() // '.'
		p.advance() // '*'
		star = true
	}

	alias := ""
	if p.tryConsume("as") {
		alias = p.expectIdent().Raw
	}
	p.endStmt()

	return ast.NewImport(path, star, static, alias, SpanFrom(spanStart, p.prevSpan()))
}

// skipAnnotations drops `@Name` and `@Name(...)`; annotations carry no
// type information the analysis uses.
func (p *parser) skipAnnotations() {
	for p.Token.Is("@") && !p.peek().Is("interface") {
		p.advance() // '@'
		p.parseQualifiedName()
		if p.Token.Is("(") && !p.newline() {
			p.skipDelimited()
		}
	}
}

// skipDelimited skips everything up to and including the delimiter that
// closes the one at the cursor.
func (p *parser) skipDelimited() {
	open := p.Token
	spanStart := p.span()
	closer := map[string]string{"(": ")", "[": "]", "{": "}"}[open.AsString()]

	depth := 0
	p.advance()
	for {
		if lexer.IsEOF(p.Token) {
			common.PanicDiag(fmt.Sprintf("unterminated `%s`: expected `%s` before end of input", open, closer), spanStart)
		}
		if p.Token.Is(open.AsString()) {
			depth++
		} else if p.Token.Is(closer) {
			if depth == 0 {
				break
			}
			depth--
		}
		p.advance()
	}
	p.expect(closer)
}

func (p *parser) parseModifiers() ast.Modifiers {
	var mods ast.Modifiers
	for {
		p.skipAnnotations()
		kw, ok := p.Token.(lexer.TokKeyword)
		if !ok || !kw.Keyword.IsModifier() {
			return mods
		}
		// `static {` is an initializer, not a modifier
		if kw.Keyword == lexer.KwStatic && p.peek().Is("{") {
			return mods
		}
		switch kw.Keyword {
		case lexer.KwStatic:
			mods.Static = true
		case lexer.KwFinal:
			mods.Final = true
		case lexer.KwAbstract:
			mods.Abstract = true
		case lexer.KwPrivate:
			mods.Private = true
		}
		mods.HasVisibility = mods.HasVisibility || kw.Keyword.IsVisibility()
		p.advance()
	}
}

// skipModifiers moves past modifiers and annotations, for lookahead.
func (p *parser) skipModifiers() {
	p.parseModifiers()
}

func (p *parser) startsClass() bool {
	return p.lookahead(func() bool {
		p.skipModifiers()
		return p.Token.Is("class") || p.Token.Is("interface") || p.Token.Is("enum") ||
			(p.Token.Is("@") && p.peek().Is("interface"))
	})
}

// startsMethod reports whether a method declaration begins at the cursor:
// `def name(`, `Type name(` or `<T> Type name(`, after any modifiers.
// Inside a class, `ClassName(` starts a constructor.
func (p *parser) startsMethod(className string) bool {
	return p.lookahead(func() bool {
		p.skipModifiers()
		if p.Token.Is("<") {
			p.parseTypeParams()
		}
		if !p.tryConsume("def") {
			if !lexer.IsIdent(p.Token) {
				return false
			}
			if p.peek().Is("(") {
				return className != "" && lexer.IsIdentStr(p.Token, className)
			}
			if !isTypeLike(p.parseType()) {
				return false
			}
		}
		return lexer.IsIdent(p.Token) && p.peek().Is("(")
	})
}

// parseClass returns the class followed by the classes nested in it.
func (p *parser) parseClass(a *ast.Ast) []*ast.Class {
	spanStart := p.span()
	mods := p.parseModifiers()

	var kind ast.ClassKind
	switch {
	case p.tryConsume("class"):
		kind = ast.ClassKindClass
	case p.tryConsume("interface"):
		kind = ast.ClassKindInterface
	case p.tryConsume("enum"):
		kind = ast.ClassKindEnum
	case p.Token.Is("@"):
		p.advance() // '@'
		p.advance() // 'interface'
		kind = ast.ClassKindInterface
	default:
		common.PanicDiag("expected class, interface or enum", p.span())
	}

	name := p.expectIdentMsg("expected class name")
	class := ast.NewClass(name, kind, spanStart)
	class.Modifiers = mods
	class.TypeParams = p.parseTypeParams()

	if p.tryConsume("extends") {
		supers := p.parseTypeList()
		if kind == ast.ClassKindInterface {
			class.Interfaces = supers
		} else {
			class.Super = supers[0]
		}
	}
	if p.tryConsume("implements") {
		class.Interfaces = append(class.Interfaces, p.parseTypeList()...)
	}

	nested := p.parseClassBody(a, class)
	class.SetSpan(SpanFrom(spanStart, p.prevSpan()))
	return append([]*ast.Class{class}, nested...)
}

func (p *parser) parseTypeList() []*ast.TypeName {
	types := []*ast.TypeName{p.parseType()}
	for p.tryConsume(",") {
		types = append(types, p.parseType())
	}
	return types
}

func (p *parser) parseClassBody(a *ast.Ast, class *ast.Class) []*ast.Class {
	var nested []*ast.Class
	p.expect("{")
	p.unnested(func() {
		if class.Kind == ast.ClassKindEnum {
			p.parseEnumConstants(class)
		}
		for p.skipSemis(); !p.Token.Is("}"); p.skipSemis() {
			if lexer.IsEOF(p.Token) {
				common.PanicDiag(fmt.Sprintf("expected: } to close class %s", class.Name.Raw), p.span())
			}
			switch {
			case p.startsClass():
				nested = append(nested, p.parseClass(a)...)
			case p.Token.Is("static") && p.peek().Is("{"), p.Token.Is("{"):
				// initializer blocks run at construction and declare nothing
				p.tryConsume("static")
				class.Initializers = append(class.Initializers, p.parseBlock())
			default:
				p.parseMember(class)
			}
		}
	})
	p.expect("}")
	return nested
}

func (p *parser) parseEnumConstants(class *ast.Class) {
	p.skipAnnotations()
	for lexer.IsIdent(p.Token) && (p.peek().Is(",") || p.peek().Is(";") || p.peek().Is("}") || p.peek().Is("(") ||
		p.spanN(1).LineStart > p.span().LineEnd) {
		class.EnumConstants = append(class.EnumConstants, p.expectIdent())
		if p.Token.Is("(") {
			p.skipDelimited()
		}
		if p.Token.Is("{") {
			p.skipDelimited()
		}
		if !p.tryConsume(",") {
			break
		}
		p.skipAnnotations()
	}
	p.tryConsume(";")
}

func (p *parser) parseMember(class *ast.Class) {
	if p.startsMethod(class.Name.Raw) {
		m := p.parseMethod(p.parseModifiers(), class.Name.Raw)
		if class.Kind == ast.ClassKindInterface && !m.Modifiers.Static && m.Body == nil {
			m.Modifiers.Abstract = true
		}
		class.Methods = append(class.Methods, m)
		return
	}
	class.Fields = append(class.Fields, p.parseFields()...)
}

// parseFields parses `[mods] def|Type a = 1, b` as one field per name.
func (p *parser) parseFields() []*ast.Field {
	spanStart := p.span()
	mods := p.parseModifiers()

	var ty *ast.TypeName
	switch {
	case p.tryConsume("def"), p.tryConsume("var"):
	case lexer.IsIdent(p.Token) && (p.peek().Is("=") || p.peek().Is(",") || p.spanN(1).LineStart > p.span().LineEnd) &&
		(mods != ast.Modifiers{}):
		// `static x = 1` has no type
	default:
		ty = p.parseType()
	}

	var fields []*ast.Field
	for {
		name := p.expectIdentMsg("expected field name")
		var init *ast.Expr
		if p.tryConsume("=") {
			e := p.parseExpr(ExprCtxNormal)
			init = &e
		}
		fields = append(fields, ast.NewField(name, ty, init, mods, SpanFrom(spanStart, p.prevSpan())))
		if !p.tryConsume(",") {
			break
		}
	}
	p.endStmt()
	return fields
}

// parseMethod parses a method after its modifiers. className is "" for
// script methods, which cannot be constructors.
func (p *parser) parseMethod(mods ast.Modifiers, className string) *ast.Method {
	spanStart := p.span()
	typeParams := p.parseTypeParams()

	var (
		returns *ast.TypeName
		isCtor  bool
	)
	switch {
	case p.tryConsume("def"):
	case className != "" && lexer.IsIdentStr(p.Token, className) && p.peek().Is("("):
		isCtor = true
	default:
		returns = p.parseType()
	}

	name := p.expectIdentMsg("expected method name")
	params := p.parseParams()

	if p.tryConsume("throws") {
		p.parseTypeList()
	}

	var body *ast.Block
	if p.Token.Is("{") {
		body = p.parseBlock()
	} else {
		p.endStmt()
	}

	m := ast.NewMethod(name, params, returns, body, mods, SpanFrom(spanStart, p.prevSpan()))
	m.TypeParams = typeParams
	m.IsCtor = isCtor
	return m
}

func (p *parser) parseParams() []*ast.Parameter {
	var params []*ast.Parameter
	p.expect("(")
	p.parseCommaSeparatedDelimited(")", func(p *parser) {
		params = append(params, p.parseParam(FlagParamDefault|FlagParamVarArg|FlagParamUntyped))
	})
	return params
}

// parseParam parses `[final] [Type] name [= default]`.
func (p *parser) parseParam(flags Flags) *ast.Parameter {
	spanStart := p.span()
	p.parseModifiers()

	var ty *ast.TypeName
	untyped := flags.Has(FlagParamUntyped) && lexer.IsIdent(p.Token) &&
		(p.peek().Is(",") || p.peek().Is(")") || p.peek().Is("=") || p.peek().Is("->") ||
			p.peek().Is("in") || p.peek().Is(":"))
	if !untyped && !p.tryConsume("def") {
		ty = p.parseType()
		if flags.Has(FlagParamVarArg) && p.tryConsume("...") {
			ty.Dims++
		}
	}

	name := p.expectIdentMsg("expected parameter name")

	var def *ast.Expr
	if flags.Has(FlagParamDefault) && p.tryConsume("=") {
		e := p.parseExpr(ExprCtxNormal)
		def = &e
	}

	return ast.NewParameter(name, ty, def, SpanFrom(spanStart, p.prevSpan()))
}
