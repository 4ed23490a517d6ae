package sema

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"

	"github.com/gluax-lang/groovyls/common"
	"github.com/gluax-lang/groovyls/frontend/infer"
	"github.com/gluax-lang/groovyls/frontend/resolve"
	"github.com/gluax-lang/groovyls/frontend/solver"
	"github.com/gluax-lang/groovyls/frontend/source"
	"github.com/gluax-lang/groovyls/frontend/types"
	protocol "github.com/gluax-lang/lsp"
)

// Analysis is the result of analysing one file against a solver chain.
// Queries are answered lazily and are safe for concurrent use.
type Analysis struct {
	Src        string // source file path
	Unit       source.Unit
	Diags      []Diagnostic
	InlayHints []InlayHint

	resolver *resolve.GroovySymbolResolver
	ctx      *infer.SolverContext
	static   bool
}

func newAnalysis(path string, unit source.Unit, parseDiags []Diagnostic, chain solver.TypeSolver, static bool) *Analysis {
	a := &Analysis{Src: path, Unit: unit, static: static}
	a.Diags = append(a.Diags, parseDiags...)
	if unit == nil {
		return a
	}
	a.resolver = resolve.NewGroovySymbolResolver(chain, unit, resolve.WithAdapter(unit))
	a.ctx = infer.NewSolverContext(chain,
		infer.WithSymbols(a.resolver),
		infer.WithImports(unit.Imports()),
		infer.WithStaticCompilation(static),
	)

	defer func() {
		if r := recover(); r != nil {
			slog.Error("analysis panicked", "path", path, "panic", r, "stack", string(debug.Stack()))
			a.Error(common.SpanSrc(path), fmt.Sprintf("internal error: %v", r))
		}
	}()
	a.checkTypeUses()
	a.checkEntries()
	return a
}

func (a *Analysis) Error(span Span, msg string) {
	a.Diags = append(a.Diags, *common.ErrorDiag(msg, span))
}

func (a *Analysis) Errorf(span Span, format string, args ...any) {
	a.Error(span, fmt.Sprintf(format, args...))
}

func (a *Analysis) Warning(span Span, msg string) {
	a.Diags = append(a.Diags, *common.WarningDiag(msg, span))
}

func (a *Analysis) InlayHintType(label string, span Span) {
	kind := protocol.InlayHintKindType
	a.InlayHints = append(a.InlayHints, protocol.InlayHint{
		Position: protocol.Position{
			Line:      span.LineStart - 1,
			Character: span.ColumnEnd,
		},
		Label: []protocol.InlayHintLabelPart{
			{Value: label},
		},
		Kind: &kind,
	})
}

// Resolver is nil for a file that did not parse.
func (a *Analysis) Resolver() *resolve.GroovySymbolResolver { return a.resolver }
func (a *Analysis) Context() *infer.SolverContext           { return a.ctx }

// checkTypeUses reports written types that name no class. Type variables
// and primitives are fine.
func (a *Analysis) checkTypeUses() {
	for _, use := range a.Unit.TypeUses() {
		ref, err := solver.ParseTypeRef(use.Name)
		if err != nil {
			a.Errorf(use.Span, "malformed type %s", use.Name)
			continue
		}
		if name, ok := a.unresolved(ref, use.Vars); ok {
			a.Errorf(use.Span, "unable to resolve class %s", name)
		}
	}
}

// unresolved finds the first class name in ref that does not resolve.
func (a *Analysis) unresolved(ref solver.TypeRef, vars []string) (string, bool) {
	_, prim := types.ParsePrimitiveKind(ref.Name)
	if !prim && ref.Name != "void" && !slices.Contains(vars, ref.Name) {
		if !a.resolver.SolveType(ref.Name).IsSolved() {
			return ref.Name, true
		}
	}
	for _, arg := range ref.Args {
		if name, ok := a.unresolved(arg, vars); ok {
			return name, true
		}
	}
	return "", false
}

// checkEntries types every declaration and expression statement. Untyped
// declarations get an inlay hint; under static compilation a statement
// whose type cannot be inferred is an error.
func (a *Analysis) checkEntries() {
	for _, e := range a.Unit.Entries() {
		t := a.TypeOf(e.Node)
		if e.Untyped && isHintable(t) {
			a.InlayHintType(": "+t.String(), e.NameSpan)
		}
		if a.static && t.IsUnknown() && e.Name == "" {
			a.Error(e.Span, t.Unknown().Reason)
		}
	}
}

func isHintable(t types.SemanticType) bool {
	return t.IsValid() && !t.IsUnknown() && !t.IsDynamic() && !t.IsNull()
}

// TypeOf is the inferred type of a node of the unit. A declaring node has
// the type of what it declares.
func (a *Analysis) TypeOf(node any) types.SemanticType {
	if a.Unit == nil {
		return types.NewUnknown("file does not parse")
	}
	if d, ok := a.Unit.Declaration(node); ok {
		return a.resolver.DeclarationType(d, a.ctx)
	}
	v, ok := a.Unit.View(node)
	if !ok {
		return types.NewUnknown("not an expression")
	}
	return a.ctx.CalculateType(v)
}

// TypeAt is the type of the innermost expression or declaration at a
// 1-based position, with the span of that node.
func (a *Analysis) TypeAt(line, column uint32) (types.SemanticType, Span, bool) {
	if a.Unit == nil {
		return types.SemanticType{}, Span{}, false
	}
	node, ok := a.Unit.NodeAt(line, column)
	if !ok {
		return types.SemanticType{}, Span{}, false
	}
	span, _ := a.Unit.Span(node)
	return a.TypeOf(node), span, true
}

// DeclarationAt is the declaration the node at a position introduces or
// refers to, if it is a variable.
func (a *Analysis) DeclarationAt(line, column uint32) (*resolve.Declaration, bool) {
	if a.Unit == nil {
		return nil, false
	}
	node, ok := a.Unit.NodeAt(line, column)
	if !ok {
		return nil, false
	}
	if d, ok := a.Unit.Declaration(node); ok {
		return d, true
	}
	v, ok := a.Unit.View(node)
	if !ok || v.Kind() != infer.VariableKind {
		return nil, false
	}
	name, _ := v.Name()
	ref := a.resolver.SolveSymbol(name, v.Node())
	return ref.DeclarationOrNil(), ref.IsSolved()
}

// Target is where a definition lives: a node of some unit, or a library
// class with no source.
type Target struct {
	Node any
	// Class is the qualified name of the class the target is in.
	Class string
}

// DefinitionAt finds what the node at a position refers to: the
// declaration of a variable, the class of a type name, or the member a
// property or method call selects.
func (a *Analysis) DefinitionAt(line, column uint32) (Target, bool) {
	if a.Unit == nil {
		return Target{}, false
	}
	node, ok := a.Unit.NodeAt(line, column)
	if !ok {
		return Target{}, false
	}
	if _, ok := a.Unit.Declaration(node); ok {
		return Target{Node: node}, true
	}
	v, ok := a.Unit.View(node)
	if !ok {
		return Target{}, false
	}

	switch v.Kind() {
	case infer.VariableKind:
		name, _ := v.Name()
		if ref := a.resolver.SolveSymbol(name, v.Node()); ref.IsSolved() {
			d := ref.Declaration()
			return Target{Node: d.DeclarationNode, Class: d.Owner}, d.DeclarationNode != nil
		}
		return a.classTarget(name)
	case infer.PropertyKind:
		name, _ := v.Name()
		recv := a.receiver(v)
		f, ok := solver.LookupField(a.ctx.TypeSolver(), recv, name)
		if !ok {
			return Target{}, false
		}
		t := Target{Node: f.Info.Node}
		if f.Getter != nil {
			t.Node = f.Getter.Node
		}
		if f.Owner != nil {
			t.Class = f.Owner.QualifiedName()
		}
		return t, t.Node != nil
	case infer.MethodCallKind:
		name, _ := v.Name()
		argViews, _ := v.Children(infer.RoleArguments)
		args := make([]types.SemanticType, len(argViews))
		for i, arg := range argViews {
			args[i] = a.ctx.CalculateType(arg)
		}
		m, ok := solver.LookupMethod(a.ctx.TypeSolver(), a.receiver(v), name, args)
		if !ok {
			return Target{}, false
		}
		t := Target{Node: m.Info.Node}
		if m.Owner != nil {
			t.Class = m.Owner.QualifiedName()
		}
		return t, t.Node != nil
	case infer.ConstructorCallKind, infer.CastKind:
		name, _ := v.TypeName()
		ref, err := solver.ParseTypeRef(name)
		if err != nil {
			return Target{}, false
		}
		return a.classTarget(ref.Name)
	}
	return Target{}, false
}

// receiver is the type a member is selected on; `this` when the call has
// no receiver.
func (a *Analysis) receiver(v infer.View) types.SemanticType {
	if recv, ok := v.Child(infer.RoleReceiver); ok {
		return a.ctx.CalculateType(recv)
	}
	return a.resolver.ThisType(v.Node())
}

func (a *Analysis) classTarget(name string) (Target, bool) {
	cls := a.resolver.SolveType(name)
	if !cls.IsSolved() {
		return Target{}, false
	}
	d := cls.Declaration()
	withNode, ok := d.(interface{ Node() any })
	if !ok || withNode.Node() == nil {
		return Target{}, false
	}
	return Target{Node: withNode.Node(), Class: d.QualifiedName()}, true
}

// TypedEntry is an entry of the file with its inferred type.
type TypedEntry struct {
	source.Entry
	Type types.SemanticType
}

// Types lists every entry of the file with its type.
func (a *Analysis) Types() []TypedEntry {
	if a.Unit == nil {
		return nil
	}
	entries := a.Unit.Entries()
	out := make([]TypedEntry, len(entries))
	for i, e := range entries {
		out[i] = TypedEntry{Entry: e, Type: a.TypeOf(e.Node)}
	}
	return out
}
