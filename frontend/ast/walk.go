package ast

// Inspect visits every node of the file depth first, passing each node
// with its parent (nil at the top). Expressions are visited as their node
// pointers, not as Expr values. Children are skipped when f returns false.
func Inspect(a *Ast, f func(n, parent Node) bool) {
	w := walker{f: f}
	for _, c := range a.Classes {
		w.class(c, nil)
	}
	for _, m := range a.Methods {
		w.method(m, nil)
	}
	for _, s := range a.Stmts {
		w.stmt(s, nil)
	}
}

type walker struct {
	f func(n, parent Node) bool
}

func (w walker) class(c *Class, parent Node) {
	if !w.f(c, parent) {
		return
	}
	for _, fd := range c.Fields {
		if w.f(fd, c) && fd.Init != nil {
			w.expr(*fd.Init, fd)
		}
	}
	for _, m := range c.Methods {
		w.method(m, c)
	}
	for _, b := range c.Initializers {
		w.stmt(b, c)
	}
}

func (w walker) method(m *Method, parent Node) {
	if !w.f(m, parent) {
		return
	}
	for _, p := range m.Params {
		w.param(p, m)
	}
	if m.Body != nil {
		w.stmt(m.Body, m)
	}
}

func (w walker) param(p *Parameter, parent Node) {
	if w.f(p, parent) && p.Default != nil {
		w.expr(*p.Default, p)
	}
}

func (w walker) stmt(s Stmt, parent Node) {
	if s == nil || !w.f(s, parent) {
		return
	}
	switch s := s.(type) {
	case *Block:
		for _, inner := range s.Stmts {
			w.stmt(inner, s)
		}
	case *LocalDecl:
		if s.Init != nil {
			w.expr(*s.Init, s)
		}
	case *DeclGroup:
		for _, d := range s.Decls {
			w.stmt(d, s)
		}
	case *StmtExpr:
		w.expr(s.Expr, s)
	case *StmtReturn:
		if s.Value != nil {
			w.expr(*s.Value, s)
		}
	case *StmtIf:
		w.expr(s.Cond, s)
		w.stmt(s.Then, s)
		w.stmt(s.Else, s)
	case *StmtWhile:
		w.expr(s.Cond, s)
		w.stmt(s.Body, s)
	case *StmtFor:
		w.stmt(s.Init, s)
		if s.Cond != nil {
			w.expr(*s.Cond, s)
		}
		w.exprs(s.Update, s)
		w.stmt(s.Body, s)
	case *StmtForIn:
		w.param(s.Var, s)
		w.expr(s.Iterable, s)
		w.stmt(s.Body, s)
	case *StmtThrow:
		w.expr(s.Value, s)
	case *StmtSwitch:
		w.expr(s.Value, s)
		for _, c := range s.Cases {
			w.exprs(c.Values, s)
			w.stmt(c.Body, s)
		}
	case *StmtAssert:
		w.expr(s.Cond, s)
		if s.Message != nil {
			w.expr(*s.Message, s)
		}
	case *StmtTry:
		w.stmt(s.Body, s)
		for _, c := range s.Catches {
			w.param(c.Param, s)
			w.stmt(c.Body, s)
		}
		if s.Finally != nil {
			w.stmt(s.Finally, s)
		}
	}
}

func (w walker) exprs(es []Expr, parent Node) {
	for _, e := range es {
		w.expr(e, parent)
	}
}

func (w walker) expr(e Expr, parent Node) {
	if !e.IsValid() {
		return
	}
	n := e.Data()
	if !w.f(n, parent) {
		return
	}
	switch d := n.(type) {
	case *ExprGString:
		w.exprs(d.Values, d)
	case *ExprBinary:
		w.expr(d.Left, d)
		w.expr(d.Right, d)
	case *ExprUnary:
		w.expr(d.Operand, d)
	case *ExprNot:
		w.expr(d.Operand, d)
	case *ExprTernary:
		w.expr(d.Cond, d)
		w.expr(d.Then, d)
		w.expr(d.Else, d)
	case *ExprElvis:
		w.expr(d.Value, d)
		w.expr(d.Else, d)
	case *ExprList:
		w.exprs(d.Elems, d)
	case *ExprMap:
		for _, entry := range d.Entries {
			if w.f(entry, d) {
				w.expr(entry.Key, entry)
				w.expr(entry.Value, entry)
			}
		}
	case *ExprClosure:
		for _, p := range d.Params {
			w.param(p, d)
		}
		w.stmt(d.Body, d)
	case *ExprMethodCall:
		if d.Receiver != nil {
			w.expr(*d.Receiver, d)
		}
		w.exprs(d.Args, d)
	case *ExprProperty:
		w.expr(d.Receiver, d)
	case *ExprNew:
		w.exprs(d.Args, d)
	case *ExprCast:
		w.expr(d.Operand, d)
	}
}
