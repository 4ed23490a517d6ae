package solver

import (
	"strings"

	"github.com/gluax-lang/groovyls/frontend/types"
)

// ResolvedTypeDeclaration is a class, interface, enum or annotation a solver
// found. Identity is the qualified name: two declarations of the same name
// produced by different solvers describe the same type.
type ResolvedTypeDeclaration interface {
	QualifiedName() string
	Name() string
	PackageName() string
	Kind() DeclKind
	IsInterface() bool
	TypeParameters() []string
	// DirectSupertypes lists the superclass (if any) followed by the
	// directly implemented or extended interfaces, in terms of the type
	// parameters of this declaration.
	DirectSupertypes() []TypeRef
	// IsAssignableBy reports whether a value of other's type can be stored
	// in a variable of this type.
	IsAssignableBy(other ResolvedTypeDeclaration) bool
	// Solver is the solver to resolve supertype and member type names with.
	Solver() TypeSolver
}

// ResolvedClassDeclaration is the only ResolvedTypeDeclaration; it wraps a
// loaded ClassInfo.
type ResolvedClassDeclaration struct {
	info   *ClassInfo
	solver TypeSolver
}

func NewResolvedClassDeclaration(info *ClassInfo, ts TypeSolver) *ResolvedClassDeclaration {
	if info == nil {
		panic("nil class info")
	}
	return &ResolvedClassDeclaration{info: info, solver: ts}
}

func (d *ResolvedClassDeclaration) QualifiedName() string { return d.info.Name }

func (d *ResolvedClassDeclaration) Name() string {
	if i := strings.LastIndexByte(d.info.Name, '.'); i >= 0 {
		return d.info.Name[i+1:]
	}
	return d.info.Name
}

func (d *ResolvedClassDeclaration) PackageName() string {
	if i := strings.LastIndexByte(d.info.Name, '.'); i >= 0 {
		return d.info.Name[:i]
	}
	return ""
}

func (d *ResolvedClassDeclaration) Kind() DeclKind           { return d.info.Kind }
func (d *ResolvedClassDeclaration) IsInterface() bool        { return d.info.Kind == InterfaceDecl }
func (d *ResolvedClassDeclaration) IsAbstract() bool         { return d.info.Abstract || d.IsInterface() }
func (d *ResolvedClassDeclaration) IsFinal() bool            { return d.info.Final }
func (d *ResolvedClassDeclaration) TypeParameters() []string { return d.info.TypeParams }
func (d *ResolvedClassDeclaration) Solver() TypeSolver       { return d.solver }
func (d *ResolvedClassDeclaration) Info() *ClassInfo         { return d.info }

// Node is the declaring syntax node, nil for classes that were not parsed
// from source.
func (d *ResolvedClassDeclaration) Node() any { return d.info.Node }

// Superclass returns the declared superclass. java.lang.Object and
// interfaces have none.
func (d *ResolvedClassDeclaration) Superclass() (TypeRef, bool) {
	if d.info.superRef == nil {
		return TypeRef{}, false
	}
	return *d.info.superRef, true
}

func (d *ResolvedClassDeclaration) Interfaces() []TypeRef { return d.info.interfaceRefs }

func (d *ResolvedClassDeclaration) DirectSupertypes() []TypeRef {
	var out []TypeRef
	if sup, ok := d.Superclass(); ok {
		out = append(out, sup)
	}
	return append(out, d.info.interfaceRefs...)
}

func (d *ResolvedClassDeclaration) Methods() []MethodInfo { return d.info.Methods }
func (d *ResolvedClassDeclaration) Fields() []FieldInfo   { return d.info.Fields }

// Field looks up a field declared directly on this class.
func (d *ResolvedClassDeclaration) Field(name string) (FieldInfo, bool) {
	for _, f := range d.info.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldInfo{}, false
}

// MethodsNamed returns the methods declared directly on this class with the
// given name and arity.
func (d *ResolvedClassDeclaration) MethodsNamed(name string, arity int) []MethodInfo {
	var out []MethodInfo
	for _, m := range d.info.Methods {
		if m.Name == name && len(m.Params) == arity {
			out = append(out, m)
		}
	}
	return out
}

func (d *ResolvedClassDeclaration) IsAssignableBy(other ResolvedTypeDeclaration) bool {
	if other == nil {
		return false
	}
	if d.QualifiedName() == types.ObjectName || d.QualifiedName() == other.QualifiedName() {
		return true
	}
	return inheritsFrom(other, d.QualifiedName())
}

func (d *ResolvedClassDeclaration) String() string {
	return string(d.info.Kind) + " " + d.info.Name
}

// inheritsFrom walks the supertypes of decl breadth first, resolving names
// through decl's own solver. Unresolvable supertypes end their branch.
func inheritsFrom(decl ResolvedTypeDeclaration, target string) bool {
	seen := map[string]struct{}{decl.QualifiedName(): {}}
	queue := []ResolvedTypeDeclaration{decl}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, sup := range cur.DirectSupertypes() {
			if sup.Name == target {
				return true
			}
			if _, ok := seen[sup.Name]; ok {
				continue
			}
			seen[sup.Name] = struct{}{}
			if cur.Solver() == nil {
				continue
			}
			ref := cur.Solver().TryToSolveType(sup.Name)
			if ref.IsSolved() {
				queue = append(queue, ref.Declaration())
			}
		}
	}
	return false
}
