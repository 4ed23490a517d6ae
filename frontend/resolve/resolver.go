package resolve

import (
	"sync"

	"github.com/gluax-lang/groovyls/frontend/infer"
	"github.com/gluax-lang/groovyls/frontend/solver"
	"github.com/gluax-lang/groovyls/frontend/types"
)

// ScriptClass is the implicit receiver of code outside any class.
const ScriptClass = "groovy.lang.Script"

// GroovySymbolResolver resolves identifiers through a backend's scopes and
// the type solver chain. It is also the symbol table of the type
// inference context, so the type of a variable is the type of its
// declaration.
type GroovySymbolResolver struct {
	ts      solver.TypeSolver
	scopes  ScopeProvider
	adapter infer.Adapter

	mu    sync.Mutex
	typed map[*Declaration]types.SemanticType
}

type Option func(*GroovySymbolResolver)

// WithAdapter sets the adapter used to view initializer nodes. The default
// is the structural adapter.
func WithAdapter(a infer.Adapter) Option {
	return func(r *GroovySymbolResolver) { r.adapter = a }
}

func NewGroovySymbolResolver(ts solver.TypeSolver, scopes ScopeProvider, opts ...Option) *GroovySymbolResolver {
	r := &GroovySymbolResolver{
		ts:      solver.Root(ts),
		scopes:  scopes,
		adapter: infer.StructuralAdapter{},
		typed:   make(map[*Declaration]types.SemanticType),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *GroovySymbolResolver) TypeSolver() solver.TypeSolver { return r.ts }
func (r *GroovySymbolResolver) Imports() []string             { return r.scopes.Imports() }

// SolveSymbol finds the declaration name refers to at useSite: locals and
// closure parameters, then method parameters, then fields of the enclosing
// class and its supertypes, then outer scopes.
func (r *GroovySymbolResolver) SolveSymbol(name string, useSite any) solver.SymbolReference[*Declaration] {
	scopes := r.scopes.Scopes(useSite)
	for _, s := range scopes {
		if d, ok := s.Lookup(name); ok {
			return solver.Solved(d)
		}
	}
	if cls, ok := EnclosingClass(scopes); ok {
		if d, ok := r.inheritedField(cls, name); ok {
			return solver.Solved(d)
		}
	}
	return solver.Unsolved[*Declaration]()
}

func (r *GroovySymbolResolver) inheritedField(cls, name string) (*Declaration, bool) {
	f, ok := solver.LookupField(r.ts, types.NewKnown(cls), name)
	if !ok || f.Getter != nil || f.Owner == nil || f.Info.Name == "" {
		return nil, false
	}
	return &Declaration{
		Name:            name,
		Kind:            FieldDecl,
		DeclarationNode: f.Info.Node,
		TypeName:        f.Type.String(),
		Owner:           f.Owner.QualifiedName(),
	}, true
}

// SolveType resolves a type name against the unit's imports.
func (r *GroovySymbolResolver) SolveType(name string) solver.SymbolReference[solver.ResolvedTypeDeclaration] {
	return solver.SolveName(r.ts, name, r.scopes.Imports())
}

// ThisType is the type of `this` at useSite.
func (r *GroovySymbolResolver) ThisType(useSite any) types.SemanticType {
	if cls, ok := EnclosingClass(r.scopes.Scopes(useSite)); ok {
		return types.NewKnown(cls)
	}
	return types.NewKnown(ScriptClass)
}

// LookupSymbol implements infer.SymbolTable.
func (r *GroovySymbolResolver) LookupSymbol(name string, site infer.View, ctx infer.TypeContext) (types.SemanticType, bool) {
	var node any
	if site != nil {
		node = site.Node()
	}
	switch name {
	case "this":
		return r.ThisType(node), true
	case "super":
		return r.SuperType(node), true
	}
	ref := r.SolveSymbol(name, node)
	if !ref.IsSolved() {
		// a class name used as a value, as in Math.max(a, b)
		if cls := r.SolveType(name); cls.IsSolved() {
			return types.NewKnown(cls.Declaration().QualifiedName()), true
		}
		return types.SemanticType{}, false
	}
	return r.DeclarationType(ref.Declaration(), ctx), true
}

// SuperType is the superclass of the type of `this` at useSite.
func (r *GroovySymbolResolver) SuperType(useSite any) types.SemanticType {
	for _, a := range solver.Ancestors(r.ts, r.ThisType(useSite)) {
		if a.Depth == 1 && a.Decl != nil && !a.Decl.IsInterface() {
			return a.Type
		}
	}
	return types.Object()
}

// DeclarationType is the declared type, else the type of the initializer,
// else Dynamic. Initializer types are computed once per resolver, so a
// resolver serves a single context. An initializer that depends on its own
// declaration is Unknown.
func (r *GroovySymbolResolver) DeclarationType(d *Declaration, ctx infer.TypeContext) types.SemanticType {
	if d.IsTyped() {
		return ctx.ResolveType(d.TypeName)
	}
	if d.Initializer == nil {
		return types.NewDynamic(d.Name)
	}
	v, ok := r.adapter.View(d.Initializer)
	if !ok {
		return types.NewDynamic(d.Name)
	}

	r.mu.Lock()
	t, ok := r.typed[d]
	r.mu.Unlock()
	if ok {
		return t
	}
	if tr, ok := ctx.(infer.Tracker); ok {
		inner, ok := tr.Enter(d)
		if !ok {
			return types.NewUnknown("cyclic initializer")
		}
		ctx = inner
	}
	t = ctx.CalculateType(v)

	r.mu.Lock()
	r.typed[d] = t
	r.mu.Unlock()
	return t
}
