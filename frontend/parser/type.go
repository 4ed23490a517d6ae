package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gluax-lang/groovyls/frontend/ast"
	"github.com/gluax-lang/groovyls/frontend/lexer"
	"github.com/gluax-lang/groovyls/frontend/types"
)

func (p *parser) parseTypeX(flags Flags) *ast.TypeName {
	spanStart := p.span()

	if flags.Has(FlagTypeWildcard) && p.tryConsume("?") {
		name := "?"
		if p.Token.Is("extends") || p.Token.Is("super") {
			kw := p.Token.String()
			p.advance()
			name += " " + kw + " " + p.parseType().String()
		}
		return ast.NewTypeName(name, nil, 0, SpanFrom(spanStart, p.prevSpan()))
	}

	name, _ := p.parseQualifiedName()

	var args []*ast.TypeName
	if p.Token.Is("<") {
		p.advance() // '<'
		p.nested(func() {
			// `<>` is the diamond and leaves the arguments to inference
			for !p.Token.Is(">") {
				args = append(args, p.parseTypeX(FlagTypeWildcard))
				if !p.tryConsume(",") {
					break
				}
			}
			p.expect(">")
		})
	}

	dims := 0
	for p.Token.Is("[") && p.peek().Is("]") {
		p.advance() // '['
		p.advance() // ']'
		dims++
	}

	return ast.NewTypeName(name, args, dims, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseType() *ast.TypeName {
	return p.parseTypeX(0)
}

// parseTypeParams parses `<T, U extends Number>`; bounds are dropped.
func (p *parser) parseTypeParams() []ast.Ident {
	if !p.tryConsume("<") {
		return nil
	}
	var params []ast.Ident
	p.nested(func() {
		for !p.Token.Is(">") {
			params = append(params, p.expectIdent())
			if p.tryConsume("extends") {
				p.parseType()
				for p.tryConsume("&") {
					p.parseType()
				}
			}
			if !p.tryConsume(",") {
				break
			}
		}
		p.expect(">")
	})
	return params
}

// isTypeLike reports whether a parsed name reads as a type rather than a
// variable: a primitive, a generic or array type, or a capitalized name.
func isTypeLike(t *ast.TypeName) bool {
	if len(t.Args) > 0 || t.Dims > 0 {
		return true
	}
	if _, ok := types.ParsePrimitiveKind(t.Name); ok {
		return true
	}
	simple := t.Name[strings.LastIndexByte(t.Name, '.')+1:]
	r, _ := utf8.DecodeRuneInString(simple)
	return unicode.IsUpper(r)
}

// startsTypedDecl reports whether `Type name` begins at the cursor, with
// name followed by one of ends or by a line break.
func (p *parser) startsTypedDecl(ends ...string) bool {
	if !lexer.IsIdent(p.Token) {
		return false
	}
	return p.lookahead(func() bool {
		if !isTypeLike(p.parseType()) {
			return false
		}
		if !lexer.IsIdent(p.Token) || p.newline() {
			return false
		}
		p.advance() // name
		if p.atStmtEnd() {
			return true
		}
		for _, end := range ends {
			if p.Token.Is(end) {
				return true
			}
		}
		return false
	})
}
