package ast

import (
	"github.com/gluax-lang/groovyls/common"
)

type Package struct {
	Name string
	span common.Span
}

func NewPackage(name string, span common.Span) *Package {
	return &Package{Name: name, span: span}
}

func (p *Package) Span() common.Span { return p.span }

type Import struct {
	Path   string
	Star   bool
	Static bool
	Alias  string
	span   common.Span
}

func NewImport(path string, star, static bool, alias string, span common.Span) *Import {
	return &Import{Path: path, Star: star, Static: static, Alias: alias, span: span}
}

func (i *Import) Span() common.Span { return i.span }

type Modifiers struct {
	Static   bool
	Final    bool
	Abstract bool
	Private  bool
	// HasVisibility is set when public, protected or private was written.
	// A field without one is a property.
	HasVisibility bool
}

type ClassKind uint8

const (
	_ ClassKind = iota
	ClassKindClass
	ClassKindInterface
	ClassKindEnum
)

func (k ClassKind) String() string {
	switch k {
	case ClassKindClass:
		return "class"
	case ClassKindInterface:
		return "interface"
	case ClassKindEnum:
		return "enum"
	default:
		panic("unreachable")
	}
}

/* Class */

type Class struct {
	Name       Ident
	Kind       ClassKind
	Modifiers  Modifiers
	TypeParams []Ident
	Super      *TypeName
	Interfaces []*TypeName
	Fields     []*Field
	Methods    []*Method
	// EnumConstants are the constants of an enum, in order.
	EnumConstants []Ident
	// Initializers are the instance and static initializer blocks.
	Initializers []*Block
	span         common.Span
}

func NewClass(name Ident, kind ClassKind, span common.Span) *Class {
	return &Class{Name: name, Kind: kind, span: span}
}

func (c *Class) Span() common.Span { return c.span }

// SetSpan widens the span once the class body has been parsed.
func (c *Class) SetSpan(span common.Span) { c.span = span }

// Field is a field or a property. Groovy makes a property of a field
// declared without a visibility modifier; see IsProperty.
type Field struct {
	Name      Ident
	Type      *TypeName // nil for def
	Init      *Expr
	Modifiers Modifiers
	span      common.Span
}

func NewField(name Ident, ty *TypeName, init *Expr, mods Modifiers, span common.Span) *Field {
	return &Field{Name: name, Type: ty, Init: init, Modifiers: mods, span: span}
}

func (f *Field) Span() common.Span { return f.span }

func (f *Field) IsProperty() bool {
	return !f.Modifiers.HasVisibility
}

/* Method */

type Method struct {
	Name       Ident
	TypeParams []Ident
	Params     []*Parameter
	Returns    *TypeName // nil for def and constructors
	Body       *Block    // nil for abstract methods
	Modifiers  Modifiers
	IsCtor     bool
	span       common.Span
}

func NewMethod(name Ident, params []*Parameter, returns *TypeName, body *Block, mods Modifiers, span common.Span) *Method {
	return &Method{Name: name, Params: params, Returns: returns, Body: body, Modifiers: mods, span: span}
}

func (m *Method) Span() common.Span { return m.span }

/* Parameter */

type Parameter struct {
	Name    Ident
	Type    *TypeName // nil when untyped
	Default *Expr
	span    common.Span
}

func NewParameter(name Ident, ty *TypeName, def *Expr, span common.Span) *Parameter {
	return &Parameter{Name: name, Type: ty, Default: def, span: span}
}

func (p *Parameter) Span() common.Span { return p.span }
