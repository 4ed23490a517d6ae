package ast

import (
	"github.com/gluax-lang/groovyls/frontend/infer"
)

// Adapter views Groovy parser nodes for type inference. It accepts Expr
// values, expression node pointers, local declarations, fields and map
// entries.
type Adapter struct{}

func (Adapter) View(node any) (infer.View, bool) {
	switch n := node.(type) {
	case Expr:
		if !n.IsValid() {
			return nil, false
		}
		return exprView{n.data}, true
	case *Expr:
		if n == nil || !n.IsValid() {
			return nil, false
		}
		return exprView{n.data}, true
	case exprData:
		return exprView{n}, true
	case *LocalDecl:
		return declView{name: n.Name.Raw, init: n.Init, node: n}, true
	case *Field:
		return declView{name: n.Name.Raw, init: n.Init, node: n}, true
	case *MapEntry:
		return entryView{n}, true
	default:
		return nil, false
	}
}

func viewsOf(es []Expr) []infer.View {
	out := make([]infer.View, len(es))
	for i, e := range es {
		out[i] = exprView{e.data}
	}
	return out
}

type exprView struct {
	data exprData
}

func (v exprView) Node() any { return v.data }

func (v exprView) Kind() infer.NodeKind {
	switch d := v.data.(type) {
	case *ExprNull, *ExprBool, *ExprNumber, *ExprString:
		return infer.ConstantKind
	case *ExprGString:
		return infer.GStringKind
	case *ExprIdent:
		return infer.VariableKind
	case *ExprBinary:
		return infer.BinaryKind
	case *ExprUnary:
		return infer.UnaryKind
	case *ExprNot:
		return infer.NotKind
	case *ExprTernary:
		return infer.TernaryKind
	case *ExprElvis:
		return infer.ElvisKind
	case *ExprList:
		return infer.ListKind
	case *ExprMap:
		return infer.MapKind
	case *ExprClosure:
		return infer.ClosureKind
	case *ExprMethodCall:
		return infer.MethodCallKind
	case *ExprProperty:
		return infer.PropertyKind
	case *ExprNew:
		return infer.ConstructorCallKind
	case *ExprCast:
		return infer.CastKind
	default:
		panic("unexpected expression node " + d.ExprKind().String())
	}
}

func (v exprView) Operator() (string, bool) {
	switch d := v.data.(type) {
	case *ExprBinary:
		return d.Op, true
	case *ExprUnary:
		return d.Op, true
	case *ExprMethodCall:
		return d.Op, true
	case *ExprProperty:
		return d.Op, true
	}
	return "", false
}

func (v exprView) Name() (string, bool) {
	switch d := v.data.(type) {
	case *ExprIdent:
		return d.Name.Raw, true
	case *ExprMethodCall:
		return d.Name.Raw, true
	case *ExprProperty:
		return d.Name.Raw, true
	}
	return "", false
}

func (v exprView) Value() (any, bool) {
	switch d := v.data.(type) {
	case *ExprNull:
		return nil, true
	case *ExprBool:
		return d.Value, true
	case *ExprNumber:
		return d.Value.Value, true
	case *ExprString:
		return d.Value, true
	}
	return nil, false
}

func (v exprView) TypeName() (string, bool) {
	switch d := v.data.(type) {
	case *ExprNew:
		return d.Type.String(), true
	case *ExprCast:
		return d.Type.String(), true
	}
	return "", false
}

func (v exprView) Child(role infer.Role) (infer.View, bool) {
	var e Expr
	switch d := v.data.(type) {
	case *ExprBinary:
		switch role {
		case infer.RoleLeft:
			e = d.Left
		case infer.RoleRight:
			e = d.Right
		}
	case *ExprTernary:
		switch role {
		case infer.RoleCondition:
			e = d.Cond
		case infer.RoleTrue:
			e = d.Then
		case infer.RoleFalse:
			e = d.Else
		}
	case *ExprElvis:
		switch role {
		case infer.RoleCondition:
			e = d.Value
		case infer.RoleFalse:
			e = d.Else
		}
	case *ExprMethodCall:
		if role == infer.RoleReceiver && d.Receiver != nil {
			e = *d.Receiver
		}
	case *ExprProperty:
		if role == infer.RoleReceiver {
			e = d.Receiver
		}
	case *ExprUnary:
		if role == infer.RoleOperand {
			e = d.Operand
		}
	case *ExprNot:
		if role == infer.RoleOperand {
			e = d.Operand
		}
	case *ExprCast:
		if role == infer.RoleOperand {
			e = d.Operand
		}
	}
	if !e.IsValid() {
		return nil, false
	}
	return exprView{e.data}, true
}

func (v exprView) Children(role infer.Role) ([]infer.View, bool) {
	switch d := v.data.(type) {
	case *ExprList:
		if role == infer.RoleElements {
			return viewsOf(d.Elems), true
		}
	case *ExprMap:
		if role == infer.RoleEntries {
			out := make([]infer.View, len(d.Entries))
			for i, entry := range d.Entries {
				out[i] = entryView{entry}
			}
			return out, true
		}
	case *ExprMethodCall:
		if role == infer.RoleArguments {
			return viewsOf(d.Args), true
		}
	case *ExprNew:
		if role == infer.RoleArguments {
			return viewsOf(d.Args), true
		}
	case *ExprGString:
		switch role {
		case infer.RoleStrings:
			out := make([]infer.View, len(d.Strings))
			for i, s := range d.Strings {
				out[i] = partView(s)
			}
			return out, true
		case infer.RoleValues:
			return viewsOf(d.Values), true
		}
	}
	return nil, false
}

// partView is a literal part of a GString.
type partView string

func (p partView) Kind() infer.NodeKind                     { return infer.OtherKind }
func (p partView) Node() any                                { return string(p) }
func (p partView) Operator() (string, bool)                 { return "", false }
func (p partView) Name() (string, bool)                     { return "", false }
func (p partView) Value() (any, bool)                       { return string(p), true }
func (p partView) TypeName() (string, bool)                 { return "", false }
func (p partView) Child(infer.Role) (infer.View, bool)      { return nil, false }
func (p partView) Children(infer.Role) ([]infer.View, bool) { return nil, false }

type entryView struct {
	entry *MapEntry
}

func (v entryView) Kind() infer.NodeKind     { return infer.MapEntryKind }
func (v entryView) Node() any                { return v.entry }
func (v entryView) Operator() (string, bool) { return "", false }
func (v entryView) Name() (string, bool)     { return "", false }
func (v entryView) Value() (any, bool)       { return nil, false }
func (v entryView) TypeName() (string, bool) { return "", false }

func (v entryView) Child(role infer.Role) (infer.View, bool) {
	switch role {
	case infer.RoleKey:
		return exprView{v.entry.Key.data}, true
	case infer.RoleValue:
		return exprView{v.entry.Value.data}, true
	}
	return nil, false
}

func (v entryView) Children(infer.Role) ([]infer.View, bool) { return nil, false }

// declView is a local or field declaration, typed by its initializer.
type declView struct {
	name string
	init *Expr
	node Node
}

func (v declView) Kind() infer.NodeKind     { return infer.DeclarationKind }
func (v declView) Node() any                { return v.node }
func (v declView) Operator() (string, bool) { return "=", v.init != nil }
func (v declView) Name() (string, bool)     { return v.name, true }
func (v declView) Value() (any, bool)       { return nil, false }
func (v declView) TypeName() (string, bool) { return "", false }

func (v declView) Child(role infer.Role) (infer.View, bool) {
	if role != infer.RoleInitializer || v.init == nil {
		return nil, false
	}
	return exprView{v.init.data}, true
}

func (v declView) Children(infer.Role) ([]infer.View, bool) { return nil, false }
