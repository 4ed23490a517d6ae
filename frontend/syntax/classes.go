package syntax

import (
	"strings"

	"github.com/gluax-lang/groovyls/frontend/solver"
	"github.com/gluax-lang/groovyls/frontend/source"
)

// modifiers reports the keywords of n's modifier list.
func modifiers(n *Node) map[string]bool {
	out := make(map[string]bool)
	if m := n.ChildOfType("modifiers"); m != nil {
		for _, f := range strings.Fields(m.Text) {
			out[f] = true
		}
	}
	return out
}

func typeParams(n *Node) []string {
	var out []string
	for _, p := range n.Child("type_parameters").named() {
		if p.Type != "type_parameter" {
			continue
		}
		if id := p.named(); len(id) > 0 {
			out = append(out, id[0].Text)
		}
	}
	return out
}

// typeList reads the types of a superclass or interface clause.
func typeList(n *Node) []string {
	if n == nil {
		return nil
	}
	var out []string
	for _, c := range n.named() {
		if c.Type == "type_list" {
			out = append(out, typeList(c)...)
		} else {
			out = append(out, c.Text)
		}
	}
	return out
}

// Classes lists the classes of the file, nested ones included.
func (u *JavaUnit) Classes() []*solver.ClassInfo {
	var out []*solver.ClassInfo
	u.root.walk(func(n *Node) bool {
		if classTypes[n.Type] {
			out = append(out, u.classInfo(n))
		}
		return true
	})
	return out
}

func (u *JavaUnit) classInfo(n *Node) *solver.ClassInfo {
	mods := modifiers(n)
	info := &solver.ClassInfo{
		Name:       u.className(n),
		TypeParams: typeParams(n),
		Abstract:   mods["abstract"],
		Final:      mods["final"],
		Node:       n,
	}
	switch n.Type {
	case "interface_declaration":
		info.Kind = solver.InterfaceDecl
		info.Interfaces = typeList(n.ChildOfType("extends_interfaces"))
	case "enum_declaration":
		info.Kind = solver.EnumDecl
		info.Super = "java.lang.Enum<" + info.Name + ">"
		info.Final = true
		info.Interfaces = typeList(n.Child("interfaces"))
		info.Methods = append(info.Methods,
			solver.MethodInfo{Name: "values", Returns: info.Name + "[]", Static: true},
			solver.MethodInfo{Name: "valueOf", Params: []string{"String"}, Returns: info.Name, Static: true},
		)
	default:
		info.Kind = solver.ClassDecl
		if sc := n.Child("superclass"); sc != nil {
			if t := typeList(sc); len(t) > 0 {
				info.Super = t[0]
			}
		}
		info.Interfaces = typeList(n.Child("interfaces"))
	}

	body := n.Child("body")
	members := body.named()
	if decls := body.ChildOfType("enum_body_declarations"); decls != nil {
		members = append(members, decls.named()...)
	}
	for _, m := range members {
		switch m.Type {
		case "enum_constant":
			info.Fields = append(info.Fields, solver.FieldInfo{Name: text(m.Child("name")), Type: info.Name, Static: true, Node: m})
		case "field_declaration", "constant_declaration":
			static := modifiers(m)["static"] || info.Kind == solver.InterfaceDecl
			for _, d := range m.ChildrenOf("declarator") {
				info.Fields = append(info.Fields, solver.FieldInfo{
					Name:   text(d.Child("name")),
					Type:   declaredType(m.Child("type"), d),
					Static: static,
					Node:   d,
				})
			}
		case "method_declaration":
			info.Methods = append(info.Methods, methodInfo(m))
		}
	}
	return info
}

func methodInfo(m *Node) solver.MethodInfo {
	mi := solver.MethodInfo{
		Name:       text(m.Child("name")),
		TypeParams: typeParams(m),
		Returns:    text(m.Child("type")),
		Static:     modifiers(m)["static"],
		Node:       m,
	}
	if dims := m.Child("dimensions"); dims != nil {
		mi.Returns += strings.Repeat("[]", strings.Count(dims.Text, "["))
	}
	for _, p := range m.Child("parameters").named() {
		switch p.Type {
		case "formal_parameter", "spread_parameter":
			_, typ := paramNameType(p)
			mi.Params = append(mi.Params, typ)
		}
	}
	return mi
}

// typeFields are the nodes whose "type" field is a written type.
var typeFields = map[string]bool{
	"field_declaration":          true,
	"constant_declaration":       true,
	"local_variable_declaration": true,
	"formal_parameter":           true,
	"method_declaration":         true,
	"object_creation_expression": true,
	"cast_expression":            true,
	"enhanced_for_statement":     true,
	"resource":                   true,
}

func (u *JavaUnit) TypeUses() []source.TypeUse {
	var out []source.TypeUse
	use := func(t *Node, at *Node) {
		if t == nil || t.Type == "void_type" || t.Text == "var" {
			return
		}
		vars := u.typeVars(at)
		for _, v := range vars {
			if v == t.Text {
				return
			}
		}
		out = append(out, source.TypeUse{Name: t.Text, Span: t.span, Vars: vars})
	}
	u.root.walk(func(n *Node) bool {
		switch {
		case typeFields[n.Type]:
			use(n.Child("type"), n)
		case n.Type == "superclass":
			for _, c := range n.named() {
				use(c, n)
			}
		case n.Type == "super_interfaces", n.Type == "extends_interfaces":
			if list := n.ChildOfType("type_list"); list != nil {
				for _, c := range list.named() {
					use(c, n)
				}
			}
		case n.Type == "catch_type":
			for _, c := range n.named() {
				use(c, n)
			}
		}
		return true
	})
	return out
}

// typeVars are the type parameters of the methods and classes around n,
// n's own included.
func (u *JavaUnit) typeVars(n *Node) []string {
	var vars []string
	for p := n; p != nil; p = p.Parent {
		switch {
		case classTypes[p.Type], p.Type == "method_declaration", p.Type == "constructor_declaration":
			vars = append(vars, typeParams(p)...)
		}
	}
	return vars
}
