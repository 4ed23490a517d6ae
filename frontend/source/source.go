// Package source describes a parsed file to the analysis in terms that
// do not depend on the parser backend that produced it.
package source

import (
	"github.com/gluax-lang/groovyls/common"
	"github.com/gluax-lang/groovyls/frontend/infer"
	"github.com/gluax-lang/groovyls/frontend/resolve"
	"github.com/gluax-lang/groovyls/frontend/solver"
)

// Unit is one parsed source file. Its nodes are the backend's own node
// values; a Unit answers scope and view questions about them.
type Unit interface {
	resolve.ScopeProvider
	infer.Adapter

	Path() string
	// Classes lists the classes the file declares. Names are qualified;
	// the types of supertypes and members are as written and are
	// qualified by the analysis.
	Classes() []*solver.ClassInfo
	// Entries are the declarations and expression statements of the file,
	// in source order.
	Entries() []Entry
	// TypeUses are the types written in the file. A use that is itself a
	// type variable is left out.
	TypeUses() []TypeUse
	// NodeAt returns the innermost expression or declaration node at a
	// 1-based position.
	NodeAt(line, column uint32) (any, bool)
	// Span is the source span of a node of this unit.
	Span(node any) (common.Span, bool)
	// Declaration is the binding a declaring node introduces.
	Declaration(node any) (*resolve.Declaration, bool)
}

// Entry is a node the analysis reports a type for.
type Entry struct {
	Node any
	// Name is the variable of a declaration and "" for an expression.
	Name string
	Span common.Span
	// NameSpan is the span of the declared name.
	NameSpan common.Span
	// Untyped declarations get an inlay hint with their inferred type.
	Untyped bool
}

// TypeUse is one written type.
type TypeUse struct {
	Name string
	Span common.Span
	// Vars are the type variables in scope where the type is written.
	Vars []string
}
