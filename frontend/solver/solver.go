// Package solver resolves type names to declarations. Solvers chain
// through a parent link; Root is where name lookups should start so that
// every configured source is consulted.
package solver

import (
	"strings"

	"github.com/gluax-lang/groovyls/frontend/types"
)

type TypeSolver interface {
	// TryToSolveType resolves a qualified name. Failure is reported as an
	// unsolved reference, never as a panic or error.
	TryToSolveType(name string) SymbolReference[ResolvedTypeDeclaration]
	Parent() TypeSolver
	// SetParent links the solver under parent. A solver has at most one
	// parent; relinking to a different one panics.
	SetParent(parent TypeSolver)
}

// Root follows parent links to the top of the chain.
func Root(ts TypeSolver) TypeSolver {
	for ts.Parent() != nil {
		ts = ts.Parent()
	}
	return ts
}

// parentLink is embedded by solvers to implement Parent and SetParent.
type parentLink struct {
	parent TypeSolver
}

func (p *parentLink) Parent() TypeSolver { return p.parent }

func (p *parentLink) SetParent(parent TypeSolver) {
	if parent == nil {
		panic("nil parent solver")
	}
	if p.parent != nil && p.parent != parent {
		panic("solver already has a parent")
	}
	p.parent = parent
}

// BoxedTypeName maps a primitive name to its wrapper class name. Other
// names are returned unchanged.
func BoxedTypeName(name string) string {
	if k, ok := types.ParsePrimitiveKind(name); ok {
		return k.BoxedName()
	}
	return name
}

// DefaultImports are the packages Groovy imports into every compilation unit.
var DefaultImports = []string{
	"java.lang.",
	"java.util.",
	"java.io.",
	"java.net.",
	"groovy.lang.",
	"groovy.util.",
	"java.math.",
}

var defaultImportedClasses = map[string]string{
	"BigInteger": types.BigIntegerName,
	"BigDecimal": types.BigDecimalName,
}

// SolveName resolves a possibly simple name. A dotted name is tried as is
// first; simple names go through the explicit imports (qualified names,
// or package prefixes ending in '.') and then the default imports.
func SolveName(ts TypeSolver, name string, imports []string) SymbolReference[ResolvedTypeDeclaration] {
	ts = Root(ts)
	name = BoxedTypeName(name)
	if strings.Contains(name, ".") {
		if ref := ts.TryToSolveType(name); ref.IsSolved() {
			return ref
		}
		// Outer.Inner with Outer imported, default imported or in the
		// same package
		head, rest, _ := strings.Cut(name, ".")
		if outer := SolveName(ts, head, imports); outer.IsSolved() {
			return ts.TryToSolveType(outer.Declaration().QualifiedName() + "." + rest)
		}
		return Unsolved[ResolvedTypeDeclaration]()
	}
	if q, ok := importedQualified(name, imports); ok {
		if ref := ts.TryToSolveType(q); ref.IsSolved() {
			return ref
		}
	}
	if q, ok := defaultImportedClasses[name]; ok {
		return ts.TryToSolveType(q)
	}
	for _, imp := range imports {
		if strings.HasSuffix(imp, ".") {
			if ref := ts.TryToSolveType(imp + name); ref.IsSolved() {
				return ref
			}
		}
	}
	for _, pkg := range DefaultImports {
		if ref := ts.TryToSolveType(pkg + name); ref.IsSolved() {
			return ref
		}
	}
	return ts.TryToSolveType(name)
}

func importedQualified(simple string, imports []string) (string, bool) {
	for _, imp := range imports {
		if strings.HasSuffix(imp, ".") {
			continue
		}
		if imp == simple || strings.HasSuffix(imp, "."+simple) {
			return imp, true
		}
	}
	return "", false
}
