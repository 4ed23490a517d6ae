// Package resolve binds identifiers at a use site to the declarations
// that introduce them.
package resolve

import "fmt"

type DeclKind uint8

const (
	_ DeclKind = iota
	LocalDecl
	ParameterDecl
	FieldDecl
	ClosureParameterDecl
	LoopVariableDecl
	// BindingDecl is a script variable assigned without a declaration,
	// which lives in the script binding.
	BindingDecl
)

func (k DeclKind) String() string {
	switch k {
	case LocalDecl:
		return "local"
	case ParameterDecl:
		return "parameter"
	case FieldDecl:
		return "field"
	case ClosureParameterDecl:
		return "closure parameter"
	case LoopVariableDecl:
		return "loop variable"
	case BindingDecl:
		return "binding variable"
	default:
		panic("unreachable")
	}
}

// Declaration is a variable binding as a ScopeProvider reports it.
type Declaration struct {
	Name string
	Kind DeclKind
	// DeclarationNode is the node that introduces the binding, exactly as
	// the parser produced it. Navigation maps it back to a location, so
	// it must never be a copy. It is nil for members of library classes.
	DeclarationNode any
	// TypeName is the written type, "" or "def" when there is none.
	TypeName string
	// Initializer is the expression node assigned at declaration, if any.
	Initializer any
	// Owner is the qualified name of the declaring class for fields.
	Owner string
}

func (d *Declaration) String() string {
	return fmt.Sprintf("%s %s", d.Kind, d.Name)
}

// IsTyped reports whether the declaration carries an explicit type.
func (d *Declaration) IsTyped() bool {
	switch d.TypeName {
	case "", "def", "var":
		return false
	default:
		return true
	}
}
