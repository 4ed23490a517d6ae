package sema

import (
	"path/filepath"
	"strings"

	"github.com/gluax-lang/groovyls/common"
	"github.com/gluax-lang/groovyls/frontend/ast"
	"github.com/gluax-lang/groovyls/frontend/infer"
	"github.com/gluax-lang/groovyls/frontend/resolve"
	"github.com/gluax-lang/groovyls/frontend/solver"
	"github.com/gluax-lang/groovyls/frontend/source"
)

// GroovyUnit is a Groovy file parsed by the hand-written parser. Scopes
// are built once from the syntax tree; every node knows its parent, so
// the scope of a use site is that of its nearest scope-owning ancestor.
type GroovyUnit struct {
	path string
	ast  *ast.Ast
	// script is the qualified name of the generated script class, "" for
	// a file that only declares classes.
	script  string
	root    *source.Scope // script class members: binding variables
	body    *source.Scope // locals of the script body
	parents map[any]ast.Node
	owned   map[any]*source.Scope
	decls   map[any]*resolve.Declaration
	adapter ast.Adapter
}

var _ source.Unit = (*GroovyUnit)(nil)

func NewGroovyUnit(path string, a *ast.Ast) *GroovyUnit {
	u := &GroovyUnit{
		path:    path,
		ast:     a,
		parents: make(map[any]ast.Node),
		owned:   make(map[any]*source.Scope),
		decls:   make(map[any]*resolve.Declaration),
	}
	if len(a.Stmts) > 0 || len(a.Methods) > 0 {
		u.script = a.Qualify(ScriptClassName(path))
	}
	u.root = source.NewScope(nil, resolve.ScriptScope)
	u.root.Class = u.script
	u.body = source.NewScope(u.root, resolve.BlockScope)

	ast.Inspect(a, func(n, parent ast.Node) bool {
		u.parents[n] = parent
		return true
	})
	ast.Inspect(a, func(n, parent ast.Node) bool {
		u.declare(n, parent)
		return true
	})
	if u.script != "" {
		u.declareBindings()
	}
	return u
}

// ScriptClassName is the class Groovy generates for a script file.
func ScriptClassName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (u *GroovyUnit) Path() string      { return u.path }
func (u *GroovyUnit) Ast() *ast.Ast     { return u.ast }
func (u *GroovyUnit) Imports() []string { return u.ast.ImportNames() }

func (u *GroovyUnit) View(node any) (infer.View, bool) {
	return u.adapter.View(node)
}

// key normalizes Expr values to their node pointers.
func key(node any) any {
	switch n := node.(type) {
	case ast.Expr:
		if n.IsValid() {
			return n.Data()
		}
	case *ast.Expr:
		if n != nil && n.IsValid() {
			return n.Data()
		}
	}
	return node
}

func (u *GroovyUnit) Span(node any) (common.Span, bool) {
	if n, ok := key(node).(ast.Node); ok && n != nil {
		return n.Span(), true
	}
	return common.Span{}, false
}

func (u *GroovyUnit) Scopes(useSite any) []resolve.Scope {
	n := key(useSite)
	use, _ := u.Span(n)
	return u.scopeOf(n).Chain(use, u.Span)
}

// Declaration is the declaration a declaring node introduces.
func (u *GroovyUnit) Declaration(node any) (*resolve.Declaration, bool) {
	d, ok := u.decls[key(node)]
	return d, ok
}

// scopeOf is the scope n is in. Top level statements are in the script
// body.
func (u *GroovyUnit) scopeOf(n any) *source.Scope {
	for p := u.parents[n]; p != nil; p = u.parents[p] {
		if s := u.ownScope(p); s != nil {
			return s
		}
	}
	return u.body
}

// ownScope is the scope a node opens, or nil for nodes that open none.
func (u *GroovyUnit) ownScope(n ast.Node) *source.Scope {
	if s, ok := u.owned[n]; ok {
		return s
	}
	var s *source.Scope
	switch n := n.(type) {
	case *ast.Class:
		// classes of a script do not see the script's variables
		s = source.NewScope(nil, resolve.ClassScope)
		s.Class = u.ast.Qualify(n.Name.Raw)
	case *ast.Method:
		parent := u.root
		if u.parents[n] != nil {
			parent = u.scopeOf(n)
		}
		s = source.NewScope(parent, resolve.MethodScope)
	case *ast.ExprClosure:
		s = source.NewScope(u.scopeOf(n), resolve.ClosureScope)
	case *ast.Block, *ast.StmtFor, *ast.StmtForIn:
		s = source.NewScope(u.scopeOf(n), resolve.BlockScope)
	default:
		return nil
	}
	u.owned[n] = s
	return s
}

func (u *GroovyUnit) add(s *source.Scope, node any, d *resolve.Declaration) {
	d.DeclarationNode = node
	s.AddDecl(d)
	u.decls[node] = d
}

func initializer(e *ast.Expr) any {
	if e == nil {
		return nil
	}
	return *e
}

func paramType(t *ast.TypeName) string {
	if t == nil {
		return ""
	}
	return t.String()
}

func (u *GroovyUnit) declare(n, parent ast.Node) {
	switch n := n.(type) {
	case *ast.Class:
		s := u.ownScope(n)
		for i := range n.EnumConstants {
			c := &n.EnumConstants[i]
			u.add(s, c, &resolve.Declaration{Name: c.Raw, Kind: resolve.FieldDecl, TypeName: s.Class, Owner: s.Class})
		}
	case *ast.Field:
		s := u.ownScope(parent)
		u.add(s, n, &resolve.Declaration{
			Name:        n.Name.Raw,
			Kind:        resolve.FieldDecl,
			TypeName:    ast.TypeString(n.Type),
			Initializer: initializer(n.Init),
			Owner:       s.Class,
		})
	case *ast.LocalDecl:
		u.add(u.scopeOf(n), n, &resolve.Declaration{
			Name:        n.Name.Raw,
			Kind:        resolve.LocalDecl,
			TypeName:    ast.TypeString(n.Type),
			Initializer: initializer(n.Init),
		})
	case *ast.ExprClosure:
		if !n.Arrow && len(n.Params) == 0 {
			u.add(u.ownScope(n), n, &resolve.Declaration{Name: "it", Kind: resolve.ClosureParameterDecl})
		}
	case *ast.Parameter:
		u.declareParam(n, parent)
	}
}

func (u *GroovyUnit) declareParam(p *ast.Parameter, parent ast.Node) {
	d := &resolve.Declaration{Name: p.Name.Raw, TypeName: paramType(p.Type)}
	var s *source.Scope
	switch parent := parent.(type) {
	case *ast.Method:
		d.Kind = resolve.ParameterDecl
		s = u.ownScope(parent)
	case *ast.ExprClosure:
		d.Kind = resolve.ClosureParameterDecl
		s = u.ownScope(parent)
	case *ast.StmtForIn:
		d.Kind = resolve.LoopVariableDecl
		s = u.ownScope(parent)
	case *ast.StmtTry:
		d.Kind = resolve.ParameterDecl
		if d.TypeName == "" {
			d.TypeName = "java.lang.Exception"
		}
		for _, c := range parent.Catches {
			if c.Param == p {
				s = u.ownScope(c.Body)
			}
		}
	}
	if s != nil {
		u.add(s, p, d)
	}
}

// declareBindings adds script variables assigned without a declaration to
// the script scope. The first assignment is the declaration.
func (u *GroovyUnit) declareBindings() {
	ast.Inspect(u.ast, func(n, parent ast.Node) bool {
		if _, ok := n.(*ast.Class); ok {
			return false
		}
		bin, ok := n.(*ast.ExprBinary)
		if !ok || bin.Op != "=" || bin.Left.Kind() != ast.ExprKindIdent {
			return true
		}
		name := bin.Left.Ident().Name.Raw
		if u.scopeOf(bin).GetDecl(name) == nil {
			u.add(u.root, bin, &resolve.Declaration{Name: name, Kind: resolve.BindingDecl, Initializer: bin.Right})
		}
		return true
	})
}

func (u *GroovyUnit) Entries() []source.Entry {
	var out []source.Entry
	ast.Inspect(u.ast, func(n, parent ast.Node) bool {
		switch n := n.(type) {
		case *ast.LocalDecl:
			out = append(out, source.Entry{Node: n, Name: n.Name.Raw, Span: n.Span(), NameSpan: n.Name.Span(), Untyped: n.Type == nil})
		case *ast.Field:
			out = append(out, source.Entry{Node: n, Name: n.Name.Raw, Span: n.Span(), NameSpan: n.Name.Span(), Untyped: n.Type == nil})
		case *ast.StmtExpr:
			out = append(out, source.Entry{Node: n.Expr.Data(), Span: n.Span()})
		}
		return true
	})
	return out
}

func (u *GroovyUnit) TypeUses() []source.TypeUse {
	var out []source.TypeUse
	use := func(t *ast.TypeName, vars []ast.Ident) {
		if t == nil || strings.HasPrefix(t.Name, "?") || isTypeVar(t.Name, vars) {
			return
		}
		names := make([]string, len(vars))
		for i, v := range vars {
			names[i] = v.Raw
		}
		out = append(out, source.TypeUse{Name: t.String(), Span: t.Span(), Vars: names})
	}
	ast.Inspect(u.ast, func(n, parent ast.Node) bool {
		switch n := n.(type) {
		case *ast.Class:
			use(n.Super, n.TypeParams)
			for _, t := range n.Interfaces {
				use(t, n.TypeParams)
			}
		case *ast.Method:
			vars := append(u.typeVars(n), n.TypeParams...)
			use(n.Returns, vars)
			for _, p := range n.Params {
				use(p.Type, vars)
			}
		case *ast.Field:
			use(n.Type, u.typeVars(n))
		case *ast.LocalDecl:
			use(n.Type, u.typeVars(n))
		case *ast.ExprNew:
			use(n.Type, u.typeVars(n))
		case *ast.ExprCast:
			use(n.Type, u.typeVars(n))
		}
		return true
	})
	return out
}

// typeVars are the type variables in scope at n.
func (u *GroovyUnit) typeVars(n ast.Node) []ast.Ident {
	var vars []ast.Ident
	for p := u.parents[n]; p != nil; p = u.parents[p] {
		switch p := p.(type) {
		case *ast.Method:
			vars = append(vars, p.TypeParams...)
		case *ast.Class:
			vars = append(vars, p.TypeParams...)
		}
	}
	return vars
}

func isTypeVar(name string, vars []ast.Ident) bool {
	for _, v := range vars {
		if v.Raw == name {
			return true
		}
	}
	return false
}

// NodeAt returns the innermost expression or declaration at the position.
func (u *GroovyUnit) NodeAt(line, column uint32) (any, bool) {
	var (
		best      any
		bestWidth uint64
	)
	ast.Inspect(u.ast, func(n, parent ast.Node) bool {
		span := n.Span()
		if !span.Contains(line, column) {
			return true
		}
		switch n.(type) {
		case *ast.LocalDecl, *ast.Field, *ast.Parameter:
		default:
			if _, ok := u.adapter.View(n); !ok {
				return true
			}
		}
		if w := span.Width(); best == nil || w <= bestWidth {
			best, bestWidth = n, w
		}
		return true
	})
	return best, best != nil
}

// Classes lists the file's classes and, for a script, the script class.
func (u *GroovyUnit) Classes() []*solver.ClassInfo {
	var out []*solver.ClassInfo
	for _, c := range u.ast.Classes {
		out = append(out, u.classInfo(c))
	}
	if u.script != "" {
		info := &solver.ClassInfo{
			Name:  u.script,
			Kind:  solver.ClassDecl,
			Super: resolve.ScriptClass,
			Node:  u.ast,
		}
		for _, m := range u.ast.Methods {
			info.Methods = append(info.Methods, methodInfo(m))
		}
		out = append(out, info)
	}
	return out
}

func (u *GroovyUnit) classInfo(c *ast.Class) *solver.ClassInfo {
	info := &solver.ClassInfo{
		Name:     u.ast.Qualify(c.Name.Raw),
		Abstract: c.Modifiers.Abstract,
		Final:    c.Modifiers.Final,
		Node:     c,
	}
	for _, tp := range c.TypeParams {
		info.TypeParams = append(info.TypeParams, tp.Raw)
	}
	if c.Super != nil {
		info.Super = c.Super.String()
	}
	for _, t := range c.Interfaces {
		info.Interfaces = append(info.Interfaces, t.String())
	}

	switch c.Kind {
	case ast.ClassKindInterface:
		info.Kind = solver.InterfaceDecl
	case ast.ClassKindEnum:
		info.Kind = solver.EnumDecl
		info.Super = "java.lang.Enum<" + info.Name + ">"
		info.Final = true
		for i := range c.EnumConstants {
			k := &c.EnumConstants[i]
			info.Fields = append(info.Fields, solver.FieldInfo{Name: k.Raw, Type: info.Name, Static: true, Node: k})
		}
		info.Methods = append(info.Methods,
			solver.MethodInfo{Name: "values", Returns: info.Name + "[]", Static: true},
			solver.MethodInfo{Name: "valueOf", Params: []string{"String"}, Returns: info.Name, Static: true},
		)
	default:
		info.Kind = solver.ClassDecl
	}

	for _, m := range c.Methods {
		if !m.IsCtor {
			info.Methods = append(info.Methods, methodInfo(m))
		}
	}
	for _, f := range c.Fields {
		fi := solver.FieldInfo{Name: f.Name.Raw, Type: typeOrObject(f.Type), Static: f.Modifiers.Static, Node: f}
		info.Fields = append(info.Fields, fi)
		if f.IsProperty() && c.Kind == ast.ClassKindClass {
			info.Methods = append(info.Methods, accessors(info, fi, f.Modifiers.Final)...)
		}
	}
	return info
}

func typeOrObject(t *ast.TypeName) string {
	if t == nil {
		return "java.lang.Object"
	}
	return t.String()
}

func methodInfo(m *ast.Method) solver.MethodInfo {
	mi := solver.MethodInfo{
		Name:    m.Name.Raw,
		Returns: typeOrObject(m.Returns),
		Static:  m.Modifiers.Static,
		Node:    m,
	}
	for _, tp := range m.TypeParams {
		mi.TypeParams = append(mi.TypeParams, tp.Raw)
	}
	for _, p := range m.Params {
		mi.Params = append(mi.Params, typeOrObject(p.Type))
	}
	return mi
}

// accessors are the getter and, unless final, the setter Groovy generates
// for a property. Methods the class declares itself win.
func accessors(info *solver.ClassInfo, f solver.FieldInfo, final bool) []solver.MethodInfo {
	suffix := strings.ToUpper(f.Name[:1]) + f.Name[1:]
	getter := "get" + suffix
	if f.Type == "boolean" {
		getter = "is" + suffix
	}
	declared := func(name string) bool {
		for _, m := range info.Methods {
			if m.Name == name {
				return true
			}
		}
		return false
	}
	var out []solver.MethodInfo
	if !declared(getter) {
		out = append(out, solver.MethodInfo{Name: getter, Returns: f.Type, Static: f.Static, Node: f.Node})
	}
	if setter := "set" + suffix; !final && !declared(setter) {
		out = append(out, solver.MethodInfo{Name: setter, Params: []string{f.Type}, Returns: "void", Static: f.Static, Node: f.Node})
	}
	return out
}
