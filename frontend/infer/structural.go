package infer

import (
	"github.com/gluax-lang/groovyls/frontend/nodeaccess"
)

// StructuralAdapter views any node that follows the Groovy compiler's AST
// property names (LeftExpression, TrueExpression, MapEntryExpressions, ...)
// as a getter GetX() or an exported field X. It serves nodes from backends
// without a dedicated adapter and test doubles.
type StructuralAdapter struct{}

func (a StructuralAdapter) View(node any) (View, bool) {
	if node == nil {
		return nil, false
	}
	if v, ok := node.(View); ok {
		return v, true
	}
	kind := structuralKind(node)
	if kind == OtherKind {
		return nil, false
	}
	return &structuralView{node: node, kind: kind}, true
}

func has(node any, name string) bool {
	return nodeaccess.HasProperty(node, "Get"+name, name)
}

func get(node any, name string) (any, bool) {
	v, ok := nodeaccess.Property(node, "Get"+name, name)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func getString(node any, name string) (string, bool) {
	return nodeaccess.StringProperty(node, "Get"+name, name)
}

func getList(node any, name string) ([]any, bool) {
	if !has(node, name) {
		return nil, false
	}
	return nodeaccess.ListProperty(node, "Get"+name, name), true
}

// structuralKind probes the node's shape. Order matters: an elvis node of
// the compiler also carries a TrueExpression, and a declaration is a binary
// expression with a variable on the left.
func structuralKind(n any) NodeKind {
	switch {
	case has(n, "Strings") && has(n, "Values"):
		return GStringKind
	case has(n, "TrueExpression") && has(n, "FalseExpression"):
		return TernaryKind
	case has(n, "BooleanExpression") && has(n, "FalseExpression"):
		return ElvisKind
	case has(n, "VariableExpression") && has(n, "RightExpression"):
		return DeclarationKind
	case has(n, "Operation") && has(n, "LeftExpression") && has(n, "RightExpression"):
		return BinaryKind
	case has(n, "MapEntryExpressions"):
		return MapKind
	case has(n, "KeyExpression") && has(n, "ValueExpression"):
		return MapEntryKind
	case has(n, "ObjectExpression") && has(n, "Method"):
		return MethodCallKind
	case has(n, "ObjectExpression") && has(n, "Property"):
		return PropertyKind
	case has(n, "Expressions"):
		return ListKind
	case has(n, "Code"):
		return ClosureKind
	case has(n, "Type") && has(n, "Arguments"):
		return ConstructorCallKind
	case has(n, "Type") && has(n, "Expression"):
		return CastKind
	case has(n, "Value"):
		return ConstantKind
	case has(n, "Name"):
		return VariableKind
	default:
		return OtherKind
	}
}

type structuralView struct {
	node any
	kind NodeKind
}

func (v *structuralView) Kind() NodeKind { return v.kind }
func (v *structuralView) Node() any      { return v.node }

func (v *structuralView) Operator() (string, bool) {
	return getString(v.node, "Operation")
}

func (v *structuralView) Name() (string, bool) {
	switch v.kind {
	case MethodCallKind:
		return nameOf(v.node, "Method")
	case PropertyKind:
		return nameOf(v.node, "Property")
	case DeclarationKind:
		if inner, ok := get(v.node, "VariableExpression"); ok {
			return getString(inner, "Name")
		}
		return "", false
	default:
		return getString(v.node, "Name")
	}
}

// nameOf reads a name that is either a string or a constant node holding
// one, as with the compiler's method and property slots.
func nameOf(node any, prop string) (string, bool) {
	val, ok := get(node, prop)
	if !ok {
		return "", false
	}
	if s, ok := val.(string); ok {
		return s, true
	}
	if inner, ok := get(val, "Value"); ok {
		s, ok := inner.(string)
		return s, ok
	}
	return getString(node, prop)
}

func (v *structuralView) Value() (any, bool) {
	if v.kind != ConstantKind {
		return nil, false
	}
	return nodeaccess.Property(v.node, "GetValue", "Value")
}

func (v *structuralView) TypeName() (string, bool) {
	val, ok := get(v.node, "Type")
	if !ok {
		return "", false
	}
	if s, ok := val.(string); ok {
		return s, true
	}
	return getString(val, "Name")
}

var structuralRoles = map[Role]string{
	RoleLeft:        "LeftExpression",
	RoleRight:       "RightExpression",
	RoleCondition:   "BooleanExpression",
	RoleTrue:        "TrueExpression",
	RoleFalse:       "FalseExpression",
	RoleReceiver:    "ObjectExpression",
	RoleInitializer: "RightExpression",
	RoleOperand:     "Expression",
	RoleKey:         "KeyExpression",
	RoleValue:       "ValueExpression",
	RoleElements:    "Expressions",
	RoleEntries:     "MapEntryExpressions",
	RoleArguments:   "Arguments",
	RoleStrings:     "Strings",
	RoleValues:      "Values",
}

func (v *structuralView) Child(role Role) (View, bool) {
	prop, ok := structuralRoles[role]
	if !ok {
		return nil, false
	}
	child, ok := get(v.node, prop)
	if !ok {
		return nil, false
	}
	return StructuralAdapter{}.View(child)
}

func (v *structuralView) Children(role Role) ([]View, bool) {
	prop, ok := structuralRoles[role]
	if !ok {
		return nil, false
	}
	items, ok := getList(v.node, prop)
	if !ok {
		return nil, false
	}
	if items == nil && role == RoleArguments {
		// an argument list node rather than a plain list
		if args, ok := get(v.node, prop); ok {
			items = nodeaccess.ListProperty(args, "GetExpressions", "Expressions")
		}
	}
	if role == RoleStrings || role == RoleValues {
		// literal parts are not expressions in every backend
		out := make([]View, 0, len(items))
		for _, it := range items {
			if cv, ok := (StructuralAdapter{}).View(it); ok {
				out = append(out, cv)
			} else {
				out = append(out, &structuralView{node: it, kind: OtherKind})
			}
		}
		return out, true
	}
	out := make([]View, 0, len(items))
	for _, it := range items {
		if cv, ok := (StructuralAdapter{}).View(it); ok {
			out = append(out, cv)
		}
	}
	return out, true
}
