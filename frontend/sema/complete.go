package sema

import (
	"strings"

	"github.com/gluax-lang/groovyls/frontend/resolve"
	"github.com/gluax-lang/groovyls/frontend/solver"
	"github.com/gluax-lang/groovyls/frontend/types"
)

type CompletionKind uint8

const (
	CompleteVariable CompletionKind = iota
	CompleteField
	CompleteMethod
)

type Completion struct {
	Name   string
	Kind   CompletionKind
	Detail string
}

// MemberCompletions lists the fields and methods of the type of the
// expression that ends at a position, as when the user has typed the dot
// after it.
func (a *Analysis) MemberCompletions(line, column uint32) []Completion {
	t, _, ok := a.TypeAt(line, column)
	if !ok {
		return nil
	}
	return a.members(t, make(map[string]bool))
}

// ScopeCompletions lists the variables visible at a position, innermost
// first, then the members of the enclosing class.
func (a *Analysis) ScopeCompletions(line, column uint32) []Completion {
	if a.Unit == nil {
		return nil
	}
	node, _ := a.Unit.NodeAt(line, column)
	seen := make(map[string]bool)
	var out []Completion
	for _, s := range a.Unit.Scopes(node) {
		for i := len(s.Decls) - 1; i >= 0; i-- {
			d := s.Decls[i]
			if seen[d.Name] {
				continue
			}
			seen[d.Name] = true
			kind := CompleteVariable
			if d.Kind == resolve.FieldDecl {
				kind = CompleteField
			}
			out = append(out, Completion{Name: d.Name, Kind: kind, Detail: d.String()})
		}
	}
	return append(out, a.members(a.resolver.ThisType(node), seen)...)
}

func (a *Analysis) members(t types.SemanticType, seen map[string]bool) []Completion {
	if t.IsPrimitive() {
		t = t.Boxed()
	}
	if !t.IsKnown() {
		return nil
	}
	var out []Completion
	for _, anc := range solver.Ancestors(a.ctx.TypeSolver(), t) {
		cd, ok := anc.Decl.(*solver.ResolvedClassDeclaration)
		if !ok {
			continue
		}
		for _, f := range cd.Fields() {
			if !seen[f.Name] {
				seen[f.Name] = true
				out = append(out, Completion{Name: f.Name, Kind: CompleteField, Detail: f.Type})
			}
		}
		for _, m := range cd.Methods() {
			sig := m.Name + "(" + strings.Join(m.Params, ", ") + ")"
			if !seen[sig] {
				seen[sig] = true
				out = append(out, Completion{Name: m.Name, Kind: CompleteMethod, Detail: sig + " " + m.Returns})
			}
		}
	}
	return out
}
