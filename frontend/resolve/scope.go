package resolve

type ScopeKind uint8

const (
	_ ScopeKind = iota
	BlockScope
	ClosureScope
	MethodScope
	ClassScope
	ScriptScope
)

// Scope is one level of the chain a name is looked up in.
type Scope struct {
	Kind  ScopeKind
	Decls []*Declaration
	// Class is the qualified name of the class for ClassScope, and of the
	// generated script class for ScriptScope ("" when unknown).
	Class string
}

// Lookup returns the latest declaration of name in the scope.
func (s Scope) Lookup(name string) (*Declaration, bool) {
	for i := len(s.Decls) - 1; i >= 0; i-- {
		if s.Decls[i].Name == name {
			return s.Decls[i], true
		}
	}
	return nil, false
}

// ScopeProvider knows a parser backend's scoping rules.
type ScopeProvider interface {
	// Scopes returns the scopes visible from useSite, innermost first.
	// Locals are only reported when declared before useSite, and never
	// inside their own initializer.
	Scopes(useSite any) []Scope
	// Imports are the compilation unit's imports: qualified class names
	// or package prefixes ending in '.'.
	Imports() []string
}

// EnclosingClass is the qualified name of the innermost class scope, or
// of the script class when the code is outside any class.
func EnclosingClass(scopes []Scope) (string, bool) {
	for _, s := range scopes {
		if (s.Kind == ClassScope || s.Kind == ScriptScope) && s.Class != "" {
			return s.Class, true
		}
	}
	return "", false
}
