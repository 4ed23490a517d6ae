// Package ast is the syntax tree of the Groovy parser. Nodes are pointers
// and are never copied after parsing, so a node pointer identifies one
// place in the source.
package ast

import (
	"github.com/gluax-lang/groovyls/common"
	"github.com/gluax-lang/groovyls/frontend/lexer"
)

type Ident = lexer.TokIdent

// Node is anything with a source span.
type Node interface {
	Span() common.Span
}

type Ast struct {
	Source  string
	Code    string
	Package *Package
	Imports []*Import
	Classes []*Class
	// Methods and Stmts make up the script body outside any class.
	Methods []*Method
	Stmts   []Stmt
}

// Span is the start of the file, where the script class of a script
// file is declared.
func (a *Ast) Span() common.Span { return common.SpanSrc(a.Source) }

// PackageName is "" for the default package.
func (a *Ast) PackageName() string {
	if a.Package == nil {
		return ""
	}
	return a.Package.Name
}

// Qualify prefixes name with the file's package.
func (a *Ast) Qualify(name string) string {
	if pkg := a.PackageName(); pkg != "" {
		return pkg + "." + name
	}
	return name
}

// ImportNames lists the imports the way type solving expects them:
// qualified class names, and package prefixes ending in '.' for star
// imports. Static imports are left out, and aliased imports are known
// by their own name only.
func (a *Ast) ImportNames() []string {
	out := make([]string, 0, len(a.Imports)+1)
	for _, imp := range a.Imports {
		if imp.Static {
			continue
		}
		if imp.Star {
			out = append(out, imp.Path+".")
		} else {
			out = append(out, imp.Path)
		}
	}
	if pkg := a.PackageName(); pkg != "" {
		out = append(out, pkg+".")
	}
	return out
}
