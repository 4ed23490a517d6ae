package syntax

import (
	"context"
	"strings"

	"github.com/gluax-lang/groovyls/common"
	"github.com/gluax-lang/groovyls/frontend/infer"
	"github.com/gluax-lang/groovyls/frontend/resolve"
	"github.com/gluax-lang/groovyls/frontend/source"
)

// JavaUnit is a Java file parsed by tree-sitter.
type JavaUnit struct {
	path    string
	root    *Node
	pkg     string
	imports []string
	file    *source.Scope
	owned   map[*Node]*source.Scope
	decls   map[*Node]*resolve.Declaration
	adapter Adapter
}

var _ source.Unit = (*JavaUnit)(nil)

// Parse parses a Java file. The unit is usable even when the file has
// syntax errors; those come back as diagnostics.
func Parse(ctx context.Context, path, code string) (*JavaUnit, []Diagnostic, error) {
	root, diags, err := parseTree(ctx, path, code)
	if err != nil {
		return nil, nil, err
	}
	u := &JavaUnit{
		path:  path,
		root:  root,
		file:  source.NewScope(nil, resolve.BlockScope),
		owned: make(map[*Node]*source.Scope),
		decls: make(map[*Node]*resolve.Declaration),
	}
	u.readHeader()
	root.walk(func(n *Node) bool {
		u.declare(n)
		return true
	})
	return u, diags, nil
}

func (u *JavaUnit) readHeader() {
	for _, n := range u.root.Children {
		switch n.Type {
		case "package_declaration":
			if name := n.ChildOfType("scoped_identifier"); name != nil {
				u.pkg = name.Text
			} else if name := n.ChildOfType("identifier"); name != nil {
				u.pkg = name.Text
			}
		case "import_declaration":
			if strings.HasPrefix(strings.TrimSpace(strings.TrimPrefix(n.Text, "import")), "static") {
				continue
			}
			name := n.ChildOfType("scoped_identifier")
			if name == nil {
				name = n.ChildOfType("identifier")
			}
			if name == nil {
				continue
			}
			if n.ChildOfType("asterisk") != nil {
				u.imports = append(u.imports, name.Text+".")
			} else {
				u.imports = append(u.imports, name.Text)
			}
		}
	}
	if u.pkg != "" {
		u.imports = append(u.imports, u.pkg+".")
	}
}

func (u *JavaUnit) Path() string      { return u.path }
func (u *JavaUnit) Root() *Node       { return u.root }
func (u *JavaUnit) Imports() []string { return u.imports }

func (u *JavaUnit) qualify(name string) string {
	if u.pkg == "" {
		return name
	}
	return u.pkg + "." + name
}

func (u *JavaUnit) View(node any) (infer.View, bool) {
	return u.adapter.View(node)
}

func (u *JavaUnit) Span(node any) (common.Span, bool) {
	if n, ok := node.(*Node); ok && n != nil {
		return n.span, true
	}
	return common.Span{}, false
}

func (u *JavaUnit) Declaration(node any) (*resolve.Declaration, bool) {
	n, ok := node.(*Node)
	if !ok {
		return nil, false
	}
	d, ok := u.decls[n]
	return d, ok
}

func (u *JavaUnit) Scopes(useSite any) []resolve.Scope {
	n, ok := useSite.(*Node)
	if !ok || n == nil {
		return u.file.Chain(common.Span{}, u.Span)
	}
	return u.scopeOf(n).Chain(n.span, u.Span)
}

var classTypes = map[string]bool{
	"class_declaration":     true,
	"interface_declaration": true,
	"enum_declaration":      true,
}

func (u *JavaUnit) scopeOf(n *Node) *source.Scope {
	for p := n.Parent; p != nil; p = p.Parent {
		if s := u.ownScope(p); s != nil {
			return s
		}
	}
	return u.file
}

func (u *JavaUnit) ownScope(n *Node) *source.Scope {
	if s, ok := u.owned[n]; ok {
		return s
	}
	var s *source.Scope
	switch {
	case classTypes[n.Type]:
		s = source.NewScope(u.scopeOf(n), resolve.ClassScope)
		s.Class = u.className(n)
	case n.Type == "method_declaration", n.Type == "constructor_declaration":
		s = source.NewScope(u.scopeOf(n), resolve.MethodScope)
	case n.Type == "lambda_expression":
		s = source.NewScope(u.scopeOf(n), resolve.ClosureScope)
	case n.Type == "block", n.Type == "constructor_body", n.Type == "for_statement",
		n.Type == "enhanced_for_statement", n.Type == "catch_clause",
		n.Type == "try_with_resources_statement":
		s = source.NewScope(u.scopeOf(n), resolve.BlockScope)
	default:
		return nil
	}
	u.owned[n] = s
	return s
}

// className is the qualified name of a class declaration; nested classes
// are Outer.Inner.
func (u *JavaUnit) className(n *Node) string {
	name := text(n.Child("name"))
	for p := n.Parent; p != nil; p = p.Parent {
		if classTypes[p.Type] {
			name = text(p.Child("name")) + "." + name
		}
	}
	return u.qualify(name)
}

// text is the source text of n, "" for a node the parser left out.
func text(n *Node) string {
	if n == nil {
		return ""
	}
	return n.Text
}

// enclosingClass is the class declaration n is a member of.
func enclosingClass(n *Node) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if classTypes[p.Type] {
			return p
		}
	}
	return nil
}

func (u *JavaUnit) add(s *source.Scope, node *Node, d *resolve.Declaration) {
	if d.Name == "" {
		return
	}
	d.DeclarationNode = node
	s.AddDecl(d)
	u.decls[node] = d
}

// initializer is the value of a declarator as an any, nil when absent.
func initializer(n *Node) any {
	if v := n.Child("value"); v != nil {
		return v
	}
	return nil
}

// declaredType is the type of a declarator, with C-style dimensions
// (`int a[]`) moved onto the type.
func declaredType(typ, declarator *Node) string {
	if typ == nil {
		return ""
	}
	t := typ.Text
	if dims := declarator.Child("dimensions"); dims != nil {
		t += strings.Repeat("[]", strings.Count(dims.Text, "["))
	}
	return t
}

func (u *JavaUnit) declare(n *Node) {
	switch n.Type {
	case "field_declaration":
		cls := enclosingClass(n)
		if cls == nil {
			return
		}
		s := u.ownScope(cls)
		typ := n.Child("type")
		for _, d := range n.ChildrenOf("declarator") {
			u.add(s, d, &resolve.Declaration{
				Name:        text(d.Child("name")),
				Kind:        resolve.FieldDecl,
				TypeName:    declaredType(typ, d),
				Initializer: initializer(d),
				Owner:       s.Class,
			})
		}
	case "enum_constant":
		cls := enclosingClass(n)
		if cls == nil {
			return
		}
		s := u.ownScope(cls)
		u.add(s, n, &resolve.Declaration{Name: text(n.Child("name")), Kind: resolve.FieldDecl, TypeName: s.Class, Owner: s.Class})
	case "local_variable_declaration":
		typ := n.Child("type")
		s := u.scopeOf(n)
		for _, d := range n.ChildrenOf("declarator") {
			u.add(s, d, &resolve.Declaration{
				Name:        text(d.Child("name")),
				Kind:        resolve.LocalDecl,
				TypeName:    declaredType(typ, d),
				Initializer: initializer(d),
			})
		}
	case "resource":
		if name := n.Child("name"); name != nil {
			u.add(u.scopeOf(n), n, &resolve.Declaration{
				Name:        name.Text,
				Kind:        resolve.LocalDecl,
				TypeName:    declaredType(n.Child("type"), n),
				Initializer: initializer(n),
			})
		}
	case "formal_parameter", "spread_parameter":
		u.declareParam(n)
	case "lambda_expression":
		params := n.Child("parameters")
		switch {
		case params == nil:
		case params.Type == "identifier":
			u.add(u.ownScope(n), params, &resolve.Declaration{Name: params.Text, Kind: resolve.ClosureParameterDecl})
		case params.Type == "inferred_parameters":
			for _, p := range params.Children {
				u.add(u.ownScope(n), p, &resolve.Declaration{Name: p.Text, Kind: resolve.ClosureParameterDecl})
			}
		}
	case "enhanced_for_statement":
		if name := n.Child("name"); name != nil {
			u.add(u.ownScope(n), name, &resolve.Declaration{
				Name:     name.Text,
				Kind:     resolve.LoopVariableDecl,
				TypeName: declaredType(n.Child("type"), n),
			})
		}
	case "catch_clause":
		param := n.ChildOfType("catch_formal_parameter")
		if param == nil {
			return
		}
		typ := "java.lang.Exception"
		if ct := param.ChildOfType("catch_type"); ct != nil && len(ct.named()) > 0 {
			// a multi-catch parameter keeps the first alternative
			typ = ct.named()[0].Text
		}
		u.add(u.ownScope(n), param, &resolve.Declaration{Name: text(param.Child("name")), Kind: resolve.ParameterDecl, TypeName: typ})
	}
}

func (u *JavaUnit) declareParam(p *Node) {
	owner := p.Parent
	if owner == nil || owner.Parent == nil {
		return
	}
	owner = owner.Parent
	kind := resolve.ParameterDecl
	switch owner.Type {
	case "method_declaration", "constructor_declaration":
	case "lambda_expression":
		kind = resolve.ClosureParameterDecl
	default:
		return
	}
	name, typ := paramNameType(p)
	if name == "" {
		return
	}
	u.add(u.ownScope(owner), p, &resolve.Declaration{Name: name, Kind: kind, TypeName: typ})
}

// paramNameType reads `T x`, `T x[]` and `T... xs`.
func paramNameType(p *Node) (string, string) {
	if p.Type == "spread_parameter" {
		var typ string
		for _, c := range p.named() {
			if c.Type != "modifiers" && c.Type != "variable_declarator" {
				typ = c.Text + "[]"
				break
			}
		}
		return text(p.ChildOfType("variable_declarator").Child("name")), typ
	}
	return text(p.Child("name")), declaredType(p.Child("type"), p)
}

// viewable reports whether NodeAt may return n.
func (u *JavaUnit) viewable(n *Node) bool {
	if _, ok := u.decls[n]; ok {
		return true
	}
	_, ok := u.adapter.View(n)
	return ok
}

func (u *JavaUnit) NodeAt(line, column uint32) (any, bool) {
	var (
		best      *Node
		bestWidth uint64
	)
	u.root.walk(func(n *Node) bool {
		if !n.span.Contains(line, column) {
			return true
		}
		if !u.viewable(n) {
			return true
		}
		if w := n.span.Width(); best == nil || w <= bestWidth {
			best, bestWidth = n, w
		}
		return true
	})
	return best, best != nil
}

func (u *JavaUnit) Entries() []source.Entry {
	var out []source.Entry
	u.root.walk(func(n *Node) bool {
		switch n.Type {
		case "local_variable_declaration", "field_declaration":
			untyped := n.Child("type") != nil && n.Child("type").Text == "var"
			for _, d := range n.ChildrenOf("declarator") {
				name := d.Child("name")
				if name == nil {
					continue
				}
				out = append(out, source.Entry{Node: d, Name: name.Text, Span: d.span, NameSpan: name.span, Untyped: untyped})
			}
		case "expression_statement":
			if named := n.named(); len(named) > 0 {
				out = append(out, source.Entry{Node: named[0], Span: n.span})
			}
		}
		return true
	})
	return out
}
