package ast

import (
	"github.com/gluax-lang/groovyls/common"
)

type Stmt interface {
	isStmt()
	Span() common.Span
}

/* Block */

type Block struct {
	Stmts []Stmt
	span  common.Span
}

func NewBlock(stmts []Stmt, span common.Span) *Block {
	return &Block{Stmts: stmts, span: span}
}

func (b *Block) isStmt()           {}
func (b *Block) Span() common.Span { return b.span }

/* LocalDecl */

// LocalDecl is `def x = e`, `String x` or `var x = e`.
type LocalDecl struct {
	Name Ident
	Type *TypeName // nil for def and var
	Init *Expr
	span common.Span
}

func NewLocalDecl(name Ident, ty *TypeName, init *Expr, span common.Span) *LocalDecl {
	return &LocalDecl{Name: name, Type: ty, Init: init, span: span}
}

func (d *LocalDecl) isStmt()           {}
func (d *LocalDecl) Span() common.Span { return d.span }

/* DeclGroup */

// DeclGroup is `def a = 1, b = 2`. Its locals belong to the enclosing
// block, not to a scope of their own.
type DeclGroup struct {
	Decls []*LocalDecl
	span  common.Span
}

func NewDeclGroup(decls []*LocalDecl, span common.Span) *DeclGroup {
	return &DeclGroup{Decls: decls, span: span}
}

func (g *DeclGroup) isStmt()           {}
func (g *DeclGroup) Span() common.Span { return g.span }

/* ExprStmt */

type StmtExpr struct {
	Expr Expr
	span common.Span
}

func NewStmtExpr(expr Expr, span common.Span) *StmtExpr {
	return &StmtExpr{Expr: expr, span: span}
}

func (s *StmtExpr) isStmt()           {}
func (s *StmtExpr) Span() common.Span { return s.span }

/* Return */

type StmtReturn struct {
	Value *Expr
	span  common.Span
}

func NewReturnStmt(value *Expr, span common.Span) *StmtReturn {
	return &StmtReturn{Value: value, span: span}
}

func (r *StmtReturn) isStmt()           {}
func (r *StmtReturn) Span() common.Span { return r.span }

/* If */

type StmtIf struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil when absent
	span common.Span
}

func NewIfStmt(cond Expr, then, els Stmt, span common.Span) *StmtIf {
	return &StmtIf{Cond: cond, Then: then, Else: els, span: span}
}

func (s *StmtIf) isStmt()           {}
func (s *StmtIf) Span() common.Span { return s.span }

/* While */

// StmtWhile is also `do {} while (cond)`, which runs Body before Cond.
type StmtWhile struct {
	Cond Expr
	Body Stmt
	Do   bool
	span common.Span
}

func NewWhileStmt(cond Expr, body Stmt, do bool, span common.Span) *StmtWhile {
	return &StmtWhile{Cond: cond, Body: body, Do: do, span: span}
}

func (s *StmtWhile) isStmt()           {}
func (s *StmtWhile) Span() common.Span { return s.span }

/* For */

// StmtFor is the classic `for (init; cond; update)` loop.
type StmtFor struct {
	Init   Stmt  // nil when absent
	Cond   *Expr // nil when absent
	Update []Expr
	Body   Stmt
	span   common.Span
}

func NewForStmt(init Stmt, cond *Expr, update []Expr, body Stmt, span common.Span) *StmtFor {
	return &StmtFor{Init: init, Cond: cond, Update: update, Body: body, span: span}
}

func (s *StmtFor) isStmt()           {}
func (s *StmtFor) Span() common.Span { return s.span }

/* ForIn */

// StmtForIn is `for (x in e)` and `for (T x : e)`.
type StmtForIn struct {
	Var      *Parameter
	Iterable Expr
	Body     Stmt
	span     common.Span
}

func NewForInStmt(v *Parameter, iterable Expr, body Stmt, span common.Span) *StmtForIn {
	return &StmtForIn{Var: v, Iterable: iterable, Body: body, span: span}
}

func (s *StmtForIn) isStmt()           {}
func (s *StmtForIn) Span() common.Span { return s.span }

/* Throw */

type StmtThrow struct {
	Value Expr
	span  common.Span
}

func NewThrowStmt(value Expr, span common.Span) *StmtThrow {
	return &StmtThrow{Value: value, span: span}
}

func (s *StmtThrow) isStmt()           {}
func (s *StmtThrow) Span() common.Span { return s.span }

/* Try */

type StmtTry struct {
	Body    *Block
	Catches []*Catch
	Finally *Block
	span    common.Span
}

type Catch struct {
	Param *Parameter
	Body  *Block
}

func NewTryStmt(body *Block, catches []*Catch, finally *Block, span common.Span) *StmtTry {
	return &StmtTry{Body: body, Catches: catches, Finally: finally, span: span}
}

func (s *StmtTry) isStmt()           {}
func (s *StmtTry) Span() common.Span { return s.span }

/* Switch */

type StmtSwitch struct {
	Value Expr
	Cases []*Case
	span  common.Span
}

// Case is one `case a, b:` arm; Values is empty for `default:`. Body holds
// the statements up to the next arm.
type Case struct {
	Values []Expr
	Body   *Block
}

func NewSwitchStmt(value Expr, cases []*Case, span common.Span) *StmtSwitch {
	return &StmtSwitch{Value: value, Cases: cases, span: span}
}

func (s *StmtSwitch) isStmt()           {}
func (s *StmtSwitch) Span() common.Span { return s.span }

/* Assert */

type StmtAssert struct {
	Cond    Expr
	Message *Expr
	span    common.Span
}

func NewAssertStmt(cond Expr, msg *Expr, span common.Span) *StmtAssert {
	return &StmtAssert{Cond: cond, Message: msg, span: span}
}

func (s *StmtAssert) isStmt()           {}
func (s *StmtAssert) Span() common.Span { return s.span }

/* Break, Continue */

type StmtJump struct {
	Keyword string
	span    common.Span
}

func NewJumpStmt(keyword string, span common.Span) *StmtJump {
	return &StmtJump{Keyword: keyword, span: span}
}

func (s *StmtJump) isStmt()           {}
func (s *StmtJump) Span() common.Span { return s.span }
