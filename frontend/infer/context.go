package infer

import (
	"strings"

	"github.com/gluax-lang/groovyls/frontend/lub"
	"github.com/gluax-lang/groovyls/frontend/solver"
	"github.com/gluax-lang/groovyls/frontend/types"
)

// TypeContext is everything a calculator may ask of its surroundings.
type TypeContext interface {
	// ResolveType turns a written type ("List<String>", "int[]", "def")
	// into a SemanticType.
	ResolveType(name string) types.SemanticType
	// CalculateType is the recursive entry point for sub-nodes.
	CalculateType(v View) types.SemanticType
	// LookupSymbol finds the type of the variable name as seen from site.
	// "this" names the enclosing class.
	LookupSymbol(name string, site View) (types.SemanticType, bool)
	MethodReturnType(receiver types.SemanticType, name string, args []types.SemanticType) (types.SemanticType, bool)
	FieldType(receiver types.SemanticType, name string) (types.SemanticType, bool)
	Lub(ts ...types.SemanticType) types.SemanticType
	IsStaticCompilation() bool
}

// SymbolTable answers variable lookups for a SolverContext. ctx is passed
// along so that initializers can be typed lazily.
type SymbolTable interface {
	LookupSymbol(name string, site View, ctx TypeContext) (types.SemanticType, bool)
}

// Tracker is implemented by contexts that can tell when the type of a
// declaration depends on itself.
type Tracker interface {
	// Enter marks key as being calculated for the rest of the query. It
	// reports false when key is already being calculated further up.
	Enter(key any) (TypeContext, bool)
}

// Nesting depth after which CalculateType gives up.
const maxCalculationDepth = 64

// trail lists the declarations being typed in one query, innermost first.
type trail struct {
	key  any
	next *trail
}

// SolverContext is the TypeContext backed by a TypeSolver. It is a value
// per query; copies made for nested calculations only differ in depth.
type SolverContext struct {
	ts         solver.TypeSolver
	lub        *lub.TypeLub
	dispatcher *Dispatcher
	symbols    SymbolTable
	imports    []string
	static     bool
	depth      int
	trail      *trail
}

type Option func(*SolverContext)

func WithSymbols(st SymbolTable) Option {
	return func(c *SolverContext) { c.symbols = st }
}

// WithImports sets the compilation unit's imports: qualified class names,
// or package prefixes ending in '.'.
func WithImports(imports []string) Option {
	return func(c *SolverContext) { c.imports = imports }
}

func WithStaticCompilation(static bool) Option {
	return func(c *SolverContext) { c.static = static }
}

func WithDispatcher(d *Dispatcher) Option {
	return func(c *SolverContext) { c.dispatcher = d }
}

func NewSolverContext(ts solver.TypeSolver, opts ...Option) *SolverContext {
	c := &SolverContext{ts: solver.Root(ts)}
	for _, opt := range opts {
		opt(c)
	}
	if c.dispatcher == nil {
		c.dispatcher = DefaultDispatcher()
	}
	c.lub = lub.New(c.ts)
	return c
}

func (c *SolverContext) TypeSolver() solver.TypeSolver { return c.ts }
func (c *SolverContext) IsStaticCompilation() bool     { return c.static }

func (c *SolverContext) Lub(ts ...types.SemanticType) types.SemanticType {
	return c.lub.Lub(ts...)
}

func (c *SolverContext) CalculateType(v View) types.SemanticType {
	if v == nil {
		return types.NewUnknown("missing expression")
	}
	if c.depth >= maxCalculationDepth {
		return types.NewUnknown("expression nested too deeply")
	}
	next := *c
	next.depth++
	return c.dispatcher.Calculate(v, &next)
}

func (c *SolverContext) Enter(key any) (TypeContext, bool) {
	for t := c.trail; t != nil; t = t.next {
		if t.key == key {
			return c, false
		}
	}
	next := *c
	next.trail = &trail{key: key, next: c.trail}
	return &next, true
}

func (c *SolverContext) LookupSymbol(name string, site View) (types.SemanticType, bool) {
	if c.symbols == nil {
		return types.SemanticType{}, false
	}
	return c.symbols.LookupSymbol(name, site, c)
}

// MethodReturnType looks the method up on the receiver's class and its
// supertypes. Outside static compilation a method that cannot be found may
// still exist at runtime, so the answer is Dynamic rather than a failure.
func (c *SolverContext) MethodReturnType(receiver types.SemanticType, name string, args []types.SemanticType) (types.SemanticType, bool) {
	switch {
	case receiver.IsDynamic():
		return types.NewDynamic(name), true
	case receiver.IsUnknown():
		return receiver, true
	}
	if m, ok := solver.LookupMethod(c.ts, receiver, name, args); ok {
		return m.Return, true
	}
	if !c.static {
		return types.NewDynamic(name), true
	}
	return types.SemanticType{}, false
}

func (c *SolverContext) FieldType(receiver types.SemanticType, name string) (types.SemanticType, bool) {
	switch {
	case receiver.IsDynamic():
		return types.NewDynamic(name), true
	case receiver.IsUnknown():
		return receiver, true
	}
	if f, ok := solver.LookupField(c.ts, receiver, name); ok {
		return f.Type, true
	}
	if !c.static {
		return types.NewDynamic(name), true
	}
	return types.SemanticType{}, false
}

func (c *SolverContext) ResolveType(name string) types.SemanticType {
	name = strings.TrimSpace(strings.ReplaceAll(name, "<>", ""))
	switch name {
	case "def", "var":
		return types.NewDynamic("")
	}
	ref, err := solver.ParseTypeRef(name)
	if err != nil {
		return types.NewUnknownf("malformed type %q", name)
	}
	return c.resolveRef(ref)
}

func (c *SolverContext) resolveRef(ref solver.TypeRef) types.SemanticType {
	var t types.SemanticType
	if k, ok := types.ParsePrimitiveKind(ref.Name); ok {
		t = types.NewPrimitive(k)
	} else {
		decl := solver.SolveName(c.ts, ref.Name, c.imports)
		if !decl.IsSolved() {
			return types.NewUnknownf("unresolved type %s", ref.Name)
		}
		args := make([]types.SemanticType, len(ref.Args))
		for i, a := range ref.Args {
			args[i] = c.resolveRef(a)
		}
		t = types.NewKnown(decl.Declaration().QualifiedName(), args...)
	}
	for range ref.Dims {
		t = types.NewArray(t)
	}
	return t
}
