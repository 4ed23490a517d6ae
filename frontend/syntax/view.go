package syntax

import (
	"strconv"
	"strings"

	"github.com/gluax-lang/groovyls/frontend/infer"
)

// Adapter views Java expression nodes and variable declarators for type
// inference.
type Adapter struct{}

var nodeKinds = map[string]infer.NodeKind{
	"decimal_integer_literal":        infer.ConstantKind,
	"hex_integer_literal":            infer.ConstantKind,
	"octal_integer_literal":          infer.ConstantKind,
	"binary_integer_literal":         infer.ConstantKind,
	"decimal_floating_point_literal": infer.ConstantKind,
	"hex_floating_point_literal":     infer.ConstantKind,
	"true":                           infer.ConstantKind,
	"false":                          infer.ConstantKind,
	"null_literal":                   infer.ConstantKind,
	"character_literal":              infer.ConstantKind,
	"string_literal":                 infer.ConstantKind,
	"text_block":                     infer.ConstantKind,
	"identifier":                     infer.VariableKind,
	"this":                           infer.VariableKind,
	"super":                          infer.VariableKind,
	"binary_expression":              infer.BinaryKind,
	"assignment_expression":          infer.BinaryKind,
	"instanceof_expression":          infer.BinaryKind,
	"array_access":                   infer.BinaryKind,
	"unary_expression":               infer.UnaryKind,
	"update_expression":              infer.UnaryKind,
	"ternary_expression":             infer.TernaryKind,
	"method_invocation":              infer.MethodCallKind,
	"field_access":                   infer.PropertyKind,
	"class_literal":                  infer.PropertyKind,
	"object_creation_expression":     infer.ConstructorCallKind,
	"array_creation_expression":      infer.ConstructorCallKind,
	"cast_expression":                infer.CastKind,
	"lambda_expression":              infer.OtherKind,
	"method_reference":               infer.OtherKind,
	"variable_declarator":            infer.DeclarationKind,
}

func (Adapter) View(node any) (infer.View, bool) {
	n, ok := node.(*Node)
	if !ok || n == nil {
		return nil, false
	}
	for n.Type == "parenthesized_expression" {
		inner := n.named()
		if len(inner) == 0 {
			return nil, false
		}
		n = inner[0]
	}
	kind, ok := nodeKinds[n.Type]
	if !ok {
		return nil, false
	}
	if n.Type == "identifier" && !isExprIdent(n) {
		return nil, false
	}
	if n.Type == "unary_expression" && text(n.Child("operator")) == "!" {
		kind = infer.NotKind
	}
	return view{n: n, kind: kind}, true
}

// isExprIdent tells identifiers used as values from declared names, member
// names and labels.
func isExprIdent(n *Node) bool {
	switch n.field {
	case "name", "field":
		return false
	}
	if p := n.Parent; p != nil {
		switch p.Type {
		case "inferred_parameters", "lambda_expression", "labeled_statement",
			"break_statement", "continue_statement", "scoped_identifier",
			"package_declaration", "import_declaration":
			return false
		}
	}
	return true
}

type view struct {
	n    *Node
	kind infer.NodeKind
}

func (v view) Kind() infer.NodeKind { return v.kind }
func (v view) Node() any            { return v.n }

func (v view) Operator() (string, bool) {
	switch v.n.Type {
	case "binary_expression", "assignment_expression", "unary_expression":
		op := v.n.Child("operator")
		return text(op), op != nil
	case "update_expression":
		if strings.Contains(v.n.Text, "++") {
			return "++", true
		}
		return "--", true
	case "instanceof_expression":
		return "instanceof", true
	case "array_access":
		return "[", true
	case "method_invocation", "field_access", "class_literal":
		return ".", true
	}
	return "", false
}

func (v view) Name() (string, bool) {
	switch v.n.Type {
	case "identifier":
		return v.n.Text, true
	case "this", "super":
		return v.n.Type, true
	case "method_invocation", "variable_declarator":
		name := v.n.Child("name")
		return text(name), name != nil
	case "field_access":
		f := v.n.Child("field")
		return text(f), f != nil
	case "class_literal":
		return "class", true
	}
	return "", false
}

func (v view) Value() (any, bool) {
	t := v.n.Text
	switch v.n.Type {
	case "true":
		return true, true
	case "false":
		return false, true
	case "null_literal":
		return nil, true
	case "string_literal", "text_block":
		return unquote(t), true
	case "character_literal":
		if r := []rune(unquote(t)); len(r) == 1 {
			return uint16(r[0]), true
		}
		return uint16(0), true
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal", "binary_integer_literal":
		return integerValue(t), true
	case "decimal_floating_point_literal", "hex_floating_point_literal":
		return floatValue(t), true
	}
	return nil, false
}

func unquote(s string) string {
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	return strings.Trim(s, "\"'")
}

// integerValue keeps the literal's Java type: a trailing L makes a long.
// The value itself only matters for its Go type.
func integerValue(s string) any {
	clean := strings.ReplaceAll(s, "_", "")
	long := strings.HasSuffix(clean, "l") || strings.HasSuffix(clean, "L")
	clean = strings.TrimRight(clean, "lL")
	n, _ := strconv.ParseInt(clean, 0, 64)
	if long {
		return n
	}
	return int32(n)
}

func floatValue(s string) any {
	clean := strings.ReplaceAll(s, "_", "")
	switch {
	case strings.HasSuffix(clean, "f"), strings.HasSuffix(clean, "F"):
		f, _ := strconv.ParseFloat(strings.TrimRight(clean, "fF"), 32)
		return float32(f)
	default:
		f, _ := strconv.ParseFloat(strings.TrimRight(clean, "dD"), 64)
		return f
	}
}

func (v view) TypeName() (string, bool) {
	switch v.n.Type {
	case "object_creation_expression", "cast_expression":
		t := v.n.Child("type")
		return text(t), t != nil
	case "array_creation_expression":
		t := v.n.Child("type")
		if t == nil {
			return "", false
		}
		dims := 0
		for _, c := range v.n.Children {
			switch c.Type {
			case "dimensions_expr":
				dims++
			case "dimensions":
				dims += strings.Count(c.Text, "[")
			}
		}
		return t.Text + strings.Repeat("[]", dims), true
	}
	return "", false
}

func (v view) Child(role infer.Role) (infer.View, bool) {
	var c *Node
	switch v.n.Type {
	case "binary_expression", "assignment_expression":
		switch role {
		case infer.RoleLeft:
			c = v.n.Child("left")
		case infer.RoleRight:
			c = v.n.Child("right")
		}
	case "instanceof_expression":
		switch role {
		case infer.RoleLeft:
			c = v.n.Child("left")
		case infer.RoleRight:
			if t := v.n.Child("right"); t != nil {
				return typeView{t}, true
			}
		}
	case "array_access":
		switch role {
		case infer.RoleLeft:
			c = v.n.Child("array")
		case infer.RoleRight:
			c = v.n.Child("index")
		}
	case "unary_expression":
		if role == infer.RoleOperand {
			c = v.n.Child("operand")
		}
	case "update_expression", "cast_expression":
		if role == infer.RoleOperand {
			if v.n.Type == "cast_expression" {
				c = v.n.Child("value")
			} else if named := v.n.named(); len(named) > 0 {
				c = named[0]
			}
		}
	case "ternary_expression":
		switch role {
		case infer.RoleCondition:
			c = v.n.Child("condition")
		case infer.RoleTrue:
			c = v.n.Child("consequence")
		case infer.RoleFalse:
			c = v.n.Child("alternative")
		}
	case "method_invocation", "field_access":
		if role == infer.RoleReceiver {
			c = v.n.Child("object")
		}
	case "class_literal":
		if role == infer.RoleReceiver {
			if named := v.n.named(); len(named) > 0 {
				return typeView{named[0]}, true
			}
		}
	case "variable_declarator":
		if role == infer.RoleInitializer {
			c = v.n.Child("value")
		}
	}
	if c == nil {
		return nil, false
	}
	return Adapter{}.View(c)
}

func (v view) Children(role infer.Role) ([]infer.View, bool) {
	switch v.n.Type {
	case "method_invocation", "object_creation_expression":
		if role != infer.RoleArguments {
			return nil, false
		}
		var out []infer.View
		for _, a := range v.n.Child("arguments").named() {
			if av, ok := (Adapter{}).View(a); ok {
				out = append(out, av)
			} else {
				out = append(out, otherView{a})
			}
		}
		return out, true
	}
	return nil, false
}

// typeView is a type written where an expression is expected, as in
// `x instanceof T` and `T.class`. It is looked up as a name.
type typeView struct {
	n *Node
}

func (v typeView) Kind() infer.NodeKind                     { return infer.VariableKind }
func (v typeView) Node() any                                { return v.n }
func (v typeView) Operator() (string, bool)                 { return "", false }
func (v typeView) Name() (string, bool)                     { return v.n.Text, true }
func (v typeView) Value() (any, bool)                       { return nil, false }
func (v typeView) TypeName() (string, bool)                 { return v.n.Text, true }
func (v typeView) Child(infer.Role) (infer.View, bool)      { return nil, false }
func (v typeView) Children(infer.Role) ([]infer.View, bool) { return nil, false }

// otherView stands in for an argument the adapter does not understand,
// so that argument lists keep their arity.
type otherView struct {
	n *Node
}

func (v otherView) Kind() infer.NodeKind                     { return infer.OtherKind }
func (v otherView) Node() any                                { return v.n }
func (v otherView) Operator() (string, bool)                 { return "", false }
func (v otherView) Name() (string, bool)                     { return "", false }
func (v otherView) Value() (any, bool)                       { return nil, false }
func (v otherView) TypeName() (string, bool)                 { return "", false }
func (v otherView) Child(infer.Role) (infer.View, bool)      { return nil, false }
func (v otherView) Children(infer.Role) ([]infer.View, bool) { return nil, false }
