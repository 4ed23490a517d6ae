package ast

import (
	"github.com/gluax-lang/groovyls/common"
	"github.com/gluax-lang/groovyls/frontend/lexer"
)

type ExprKind uint8

const (
	_ ExprKind = iota
	ExprKindNull
	ExprKindBool
	ExprKindNumber
	ExprKindString
	ExprKindGString
	ExprKindIdent
	ExprKindBinary
	ExprKindUnary
	ExprKindNot
	ExprKindTernary
	ExprKindElvis
	ExprKindList
	ExprKindMap
	ExprKindClosure
	ExprKindMethodCall
	ExprKindProperty
	ExprKindNew
	ExprKindCast
)

func (k ExprKind) String() string {
	switch k {
	case ExprKindNull:
		return "null"
	case ExprKindBool:
		return "bool"
	case ExprKindNumber:
		return "number"
	case ExprKindString:
		return "string"
	case ExprKindGString:
		return "gstring"
	case ExprKindIdent:
		return "identifier"
	case ExprKindBinary:
		return "binary"
	case ExprKindUnary:
		return "unary"
	case ExprKindNot:
		return "not"
	case ExprKindTernary:
		return "ternary"
	case ExprKindElvis:
		return "elvis"
	case ExprKindList:
		return "list"
	case ExprKindMap:
		return "map"
	case ExprKindClosure:
		return "closure"
	case ExprKindMethodCall:
		return "method call"
	case ExprKindProperty:
		return "property"
	case ExprKindNew:
		return "new"
	case ExprKindCast:
		return "cast"
	default:
		panic("unreachable")
	}
}

type exprData interface {
	ExprKind() ExprKind
	Span() common.Span
}

// Expr wraps one expression node. Copies of an Expr share the node.
type Expr struct {
	data exprData
}

func NewExpr[T exprData](data T) Expr {
	return Expr{data: data}
}

func (e Expr) Kind() ExprKind {
	return e.data.ExprKind()
}

// Data is the node pointer itself.
func (e Expr) Data() exprData {
	return e.data
}

func (e Expr) Span() common.Span {
	return e.data.Span()
}

func (e Expr) IsValid() bool {
	return e.data != nil
}

func (e Expr) Ident() *ExprIdent {
	if e.Kind() != ExprKindIdent {
		panic("not an identifier")
	}
	return e.data.(*ExprIdent)
}

func (e Expr) Binary() *ExprBinary {
	if e.Kind() != ExprKindBinary {
		panic("not a binary")
	}
	return e.data.(*ExprBinary)
}

func (e Expr) MethodCall() *ExprMethodCall {
	if e.Kind() != ExprKindMethodCall {
		panic("not a method call")
	}
	return e.data.(*ExprMethodCall)
}

func (e Expr) Property() *ExprProperty {
	if e.Kind() != ExprKindProperty {
		panic("not a property")
	}
	return e.data.(*ExprProperty)
}

func (e Expr) Closure() *ExprClosure {
	if e.Kind() != ExprKindClosure {
		panic("not a closure")
	}
	return e.data.(*ExprClosure)
}

/* Null */

type ExprNull struct {
	span common.Span
}

func NewNullExpr(span common.Span) Expr {
	return NewExpr(&ExprNull{span: span})
}

func (n *ExprNull) ExprKind() ExprKind { return ExprKindNull }
func (n *ExprNull) Span() common.Span  { return n.span }

/* Bool */

type ExprBool struct {
	Value bool
	span  common.Span
}

func NewBoolExpr(b lexer.Token) Expr {
	return NewExpr(&ExprBool{Value: b.AsString() == "true", span: b.Span()})
}

func (b *ExprBool) ExprKind() ExprKind { return ExprKindBool }
func (b *ExprBool) Span() common.Span  { return b.span }

/* Number */

type ExprNumber struct {
	Value lexer.TokNumber
}

func NewNumberExpr(n lexer.TokNumber) Expr {
	return NewExpr(&ExprNumber{Value: n})
}

func (n *ExprNumber) ExprKind() ExprKind { return ExprKindNumber }
func (n *ExprNumber) Span() common.Span  { return n.Value.Span() }

/* String */

type ExprString struct {
	Value string
	span  common.Span
}

func NewStringExpr(value string, span common.Span) Expr {
	return NewExpr(&ExprString{Value: value, span: span})
}

func (s *ExprString) ExprKind() ExprKind { return ExprKindString }
func (s *ExprString) Span() common.Span  { return s.span }

/* GString */

type ExprGString struct {
	Strings []string
	Values  []Expr
	span    common.Span
}

func NewGStringExpr(strs []string, values []Expr, span common.Span) Expr {
	return NewExpr(&ExprGString{Strings: strs, Values: values, span: span})
}

func (g *ExprGString) ExprKind() ExprKind { return ExprKindGString }
func (g *ExprGString) Span() common.Span  { return g.span }

/* Ident */

// ExprIdent is a variable reference; `this` and `super` are identifiers too.
type ExprIdent struct {
	Name Ident
}

func NewIdentExpr(name Ident) Expr {
	return NewExpr(&ExprIdent{Name: name})
}

func (i *ExprIdent) ExprKind() ExprKind { return ExprKindIdent }
func (i *ExprIdent) Span() common.Span  { return i.Name.Span() }

/* Binary */

// ExprBinary also covers assignment, subscript (Op "[") and instanceof.
type ExprBinary struct {
	Left  Expr
	Op    string
	Right Expr
	span  common.Span
}

func NewBinaryExpr(left Expr, op string, right Expr, span common.Span) Expr {
	return NewExpr(&ExprBinary{Left: left, Op: op, Right: right, span: span})
}

func (b *ExprBinary) ExprKind() ExprKind { return ExprKindBinary }
func (b *ExprBinary) Span() common.Span  { return b.span }

/* Unary */

// ExprUnary is -x, +x, ~x and the prefix and postfix increments.
type ExprUnary struct {
	Op      string
	Operand Expr
	Postfix bool
	span    common.Span
}

func NewUnaryExpr(op string, operand Expr, postfix bool, span common.Span) Expr {
	return NewExpr(&ExprUnary{Op: op, Operand: operand, Postfix: postfix, span: span})
}

func (u *ExprUnary) ExprKind() ExprKind { return ExprKindUnary }
func (u *ExprUnary) Span() common.Span  { return u.span }

/* Not */

type ExprNot struct {
	Operand Expr
	span    common.Span
}

func NewNotExpr(operand Expr, span common.Span) Expr {
	return NewExpr(&ExprNot{Operand: operand, span: span})
}

func (n *ExprNot) ExprKind() ExprKind { return ExprKindNot }
func (n *ExprNot) Span() common.Span  { return n.span }

/* Ternary */

type ExprTernary struct {
	Cond, Then, Else Expr
	span             common.Span
}

func NewTernaryExpr(cond, then, els Expr, span common.Span) Expr {
	return NewExpr(&ExprTernary{Cond: cond, Then: then, Else: els, span: span})
}

func (t *ExprTernary) ExprKind() ExprKind { return ExprKindTernary }
func (t *ExprTernary) Span() common.Span  { return t.span }

/* Elvis */

type ExprElvis struct {
	Value, Else Expr
	span        common.Span
}

func NewElvisExpr(value, els Expr, span common.Span) Expr {
	return NewExpr(&ExprElvis{Value: value, Else: els, span: span})
}

func (e *ExprElvis) ExprKind() ExprKind { return ExprKindElvis }
func (e *ExprElvis) Span() common.Span  { return e.span }

/* List */

type ExprList struct {
	Elems []Expr
	span  common.Span
}

func NewListExpr(elems []Expr, span common.Span) Expr {
	return NewExpr(&ExprList{Elems: elems, span: span})
}

func (l *ExprList) ExprKind() ExprKind { return ExprKindList }
func (l *ExprList) Span() common.Span  { return l.span }

/* Map */

type MapEntry struct {
	Key, Value Expr
}

func NewMapEntry(key, value Expr) *MapEntry {
	return &MapEntry{Key: key, Value: value}
}

func (e *MapEntry) Span() common.Span {
	return common.SpanFrom(e.Key.Span(), e.Value.Span())
}

type ExprMap struct {
	Entries []*MapEntry
	span    common.Span
}

func NewMapExpr(entries []*MapEntry, span common.Span) Expr {
	return NewExpr(&ExprMap{Entries: entries, span: span})
}

func (m *ExprMap) ExprKind() ExprKind { return ExprKindMap }
func (m *ExprMap) Span() common.Span  { return m.span }

/* Closure */

type ExprClosure struct {
	// Params is nil for a closure without `->`, which has the implicit
	// parameter `it`.
	Params []*Parameter
	Arrow  bool
	Body   *Block
	span   common.Span
}

func NewClosureExpr(params []*Parameter, arrow bool, body *Block, span common.Span) Expr {
	return NewExpr(&ExprClosure{Params: params, Arrow: arrow, Body: body, span: span})
}

func (c *ExprClosure) ExprKind() ExprKind { return ExprKindClosure }
func (c *ExprClosure) Span() common.Span  { return c.span }

/* MethodCall */

type ExprMethodCall struct {
	Receiver *Expr // nil for calls on the implicit this
	Name     Ident
	Args     []Expr
	// Op is the member operator: ".", "?." or "*.", and "" without a
	// receiver.
	Op   string
	span common.Span
}

func NewMethodCallExpr(receiver *Expr, name Ident, args []Expr, op string, span common.Span) Expr {
	return NewExpr(&ExprMethodCall{Receiver: receiver, Name: name, Args: args, Op: op, span: span})
}

func (m *ExprMethodCall) ExprKind() ExprKind { return ExprKindMethodCall }
func (m *ExprMethodCall) Span() common.Span  { return m.span }

/* Property */

type ExprProperty struct {
	Receiver Expr
	Name     Ident
	Op       string
	span     common.Span
}

func NewPropertyExpr(receiver Expr, name Ident, op string, span common.Span) Expr {
	return NewExpr(&ExprProperty{Receiver: receiver, Name: name, Op: op, span: span})
}

func (p *ExprProperty) ExprKind() ExprKind { return ExprKindProperty }
func (p *ExprProperty) Span() common.Span  { return p.span }

/* New */

type ExprNew struct {
	Type *TypeName
	Args []Expr
	span common.Span
}

func NewNewExpr(ty *TypeName, args []Expr, span common.Span) Expr {
	return NewExpr(&ExprNew{Type: ty, Args: args, span: span})
}

func (n *ExprNew) ExprKind() ExprKind { return ExprKindNew }
func (n *ExprNew) Span() common.Span  { return n.span }

/* Cast */

// ExprCast is `(T) e` and `e as T`.
type ExprCast struct {
	Type    *TypeName
	Operand Expr
	span    common.Span
}

func NewCastExpr(ty *TypeName, operand Expr, span common.Span) Expr {
	return NewExpr(&ExprCast{Type: ty, Operand: operand, span: span})
}

func (c *ExprCast) ExprKind() ExprKind { return ExprKindCast }
func (c *ExprCast) Span() common.Span  { return c.span }
