package source

import (
	"github.com/gluax-lang/groovyls/common"
	"github.com/gluax-lang/groovyls/frontend/resolve"
)

// Scope is one level of a file's scope tree.
type Scope struct {
	Parent *Scope
	Kind   resolve.ScopeKind
	// Class is the qualified class name of class and script scopes.
	Class string
	Decls []*resolve.Declaration
}

func NewScope(parent *Scope, kind resolve.ScopeKind) *Scope {
	return &Scope{Parent: parent, Kind: kind}
}

func (s *Scope) walkScopes(fn func(*Scope) bool) bool {
	current := s
	for current != nil {
		if fn(current) {
			return true
		}
		current = current.Parent
	}
	return false
}

func (s *Scope) AddDecl(d *resolve.Declaration) {
	s.Decls = append(s.Decls, d)
}

// GetDecl finds the latest declaration of name in s or its parents,
// ignoring declaration order.
func (s *Scope) GetDecl(name string) *resolve.Declaration {
	var result *resolve.Declaration
	s.walkScopes(func(scope *Scope) bool {
		for i := len(scope.Decls) - 1; i >= 0; i-- {
			if scope.Decls[i].Name == name {
				result = scope.Decls[i]
				return true
			}
		}
		return false
	})
	return result
}

// Chain lists s and its parents as seen from a use at span use. Locals
// only count once their declaration has ended, which keeps a variable out
// of its own initializer.
func (s *Scope) Chain(use common.Span, spanOf func(any) (common.Span, bool)) []resolve.Scope {
	var out []resolve.Scope
	s.walkScopes(func(scope *Scope) bool {
		rs := resolve.Scope{Kind: scope.Kind, Class: scope.Class}
		for _, d := range scope.Decls {
			if d.Kind == resolve.LocalDecl {
				span, ok := spanOf(d.DeclarationNode)
				if !ok || !span.EndsBefore(use) {
					continue
				}
			}
			rs.Decls = append(rs.Decls, d)
		}
		out = append(out, rs)
		return false
	})
	return out
}
