package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gluax-lang/groovyls/frontend/ast"
)

func parse(t *testing.T, code string) *ast.Ast {
	t.Helper()
	a, err := Parse("test.groovy", code)
	require.Nil(t, err, "parse error: %v", err)
	return a
}

func expr(t *testing.T, code string) ast.Expr {
	t.Helper()
	e, err := ParseExpr("test.groovy", code)
	require.Nil(t, err, "parse error: %v", err)
	return e
}

func stmtExpr(t *testing.T, s ast.Stmt) ast.Expr {
	t.Helper()
	se, ok := s.(*ast.StmtExpr)
	require.True(t, ok, "want expression statement, got %T", s)
	return se.Expr
}

func TestParse_Header(t *testing.T) {
	a := parse(t, `
package demo.app

import java.util.concurrent.*
import static java.lang.Math.max
import groovy.json.JsonSlurper as Slurper
`)
	assert.Equal(t, "demo.app", a.PackageName())
	require.Len(t, a.Imports, 3)
	assert.True(t, a.Imports[0].Star)
	assert.True(t, a.Imports[1].Static)
	assert.Equal(t, "Slurper", a.Imports[2].Alias)
	assert.Equal(t,
		[]string{"java.util.concurrent.", "groovy.json.JsonSlurper", "demo.app."},
		a.ImportNames())
}

func TestParse_Class(t *testing.T) {
	a := parse(t, `
@Canonical
class Person<T> extends Base implements Comparable<Person>, Serializable {
    String name
    private int age = 3, height
    static final MAX = 10

    Person(String name) { this.name = name }

    def greet(String other = "you") {
        "hi ${other}"
    }

    abstract <R> List<R> map(Closure<R> fn)

    static { println "loaded" }

    class Inner {}
}
`)
	require.Len(t, a.Classes, 2)
	c := a.Classes[0]
	assert.Equal(t, "Person", c.Name.Raw)
	assert.Equal(t, "Base", c.Super.String())
	require.Len(t, c.Interfaces, 2)
	assert.Equal(t, "Comparable<Person>", c.Interfaces[0].String())
	require.Len(t, c.TypeParams, 1)

	require.Len(t, c.Fields, 4)
	assert.Equal(t, "String", c.Fields[0].Type.String())
	assert.True(t, c.Fields[0].IsProperty())
	assert.False(t, c.Fields[1].IsProperty())
	assert.Equal(t, "height", c.Fields[2].Name.Raw)
	assert.Nil(t, c.Fields[3].Type)
	assert.True(t, c.Fields[3].Modifiers.Static)

	require.Len(t, c.Methods, 3)
	assert.True(t, c.Methods[0].IsCtor)
	assert.Equal(t, "greet", c.Methods[1].Name.Raw)
	require.Len(t, c.Methods[1].Params, 1)
	assert.NotNil(t, c.Methods[1].Params[0].Default)
	assert.Nil(t, c.Methods[1].Returns)
	assert.Equal(t, "List<R>", c.Methods[2].Returns.String())
	assert.Nil(t, c.Methods[2].Body)

	assert.Len(t, c.Initializers, 1)
	assert.Equal(t, "Inner", a.Classes[1].Name.Raw)
}

func TestParse_EnumAndInterface(t *testing.T) {
	a := parse(t, `
enum Color { RED, GREEN("g"), BLUE; int code() { 1 } }
interface Shape extends Named, Sized { double area() }
`)
	require.Len(t, a.Classes, 2)
	e := a.Classes[0]
	assert.Equal(t, ast.ClassKindEnum, e.Kind)
	require.Len(t, e.EnumConstants, 3)
	assert.Equal(t, "BLUE", e.EnumConstants[2].Raw)
	assert.Len(t, e.Methods, 1)

	i := a.Classes[1]
	assert.Equal(t, ast.ClassKindInterface, i.Kind)
	assert.Len(t, i.Interfaces, 2)
	require.Len(t, i.Methods, 1)
	assert.True(t, i.Methods[0].Modifiers.Abstract)
}

func TestParse_ScriptMembers(t *testing.T) {
	a := parse(t, `
def x = 1
String s
void run(String[] args) { println args }
int twice(int n) { n * 2 }
foo(1)
`)
	require.Len(t, a.Methods, 2)
	assert.Equal(t, "run", a.Methods[0].Name.Raw)
	assert.Equal(t, "String[]", a.Methods[0].Params[0].Type.String())
	require.Len(t, a.Stmts, 3)

	d, ok := a.Stmts[0].(*ast.LocalDecl)
	require.True(t, ok)
	assert.Nil(t, d.Type)
	require.NotNil(t, d.Init)

	d, ok = a.Stmts[1].(*ast.LocalDecl)
	require.True(t, ok)
	assert.Equal(t, "String", d.Type.String())
	assert.Nil(t, d.Init)

	call := stmtExpr(t, a.Stmts[2]).MethodCall()
	assert.Nil(t, call.Receiver)
	assert.Equal(t, "foo", call.Name.Raw)
}

func TestParse_Declarations(t *testing.T) {
	tests := []struct {
		code string
		typ  string
	}{
		{"Map<String, List<Integer>> m = [:]", "Map<String, List<Integer>>"},
		{"int[] xs = []", "int[]"},
		{"final f = 1", "def"},
		{"var v = 1", "def"},
		{"java.util.List l", "java.util.List"},
		{"List<? extends Number> ns", "List<? extends Number>"},
	}
	for _, tt := range tests {
		a := parse(t, tt.code)
		require.Len(t, a.Stmts, 1, tt.code)
		d, ok := a.Stmts[0].(*ast.LocalDecl)
		require.True(t, ok, tt.code)
		assert.Equal(t, tt.typ, ast.TypeString(d.Type), tt.code)
	}

	a := parse(t, "def a = 1, b")
	g, ok := a.Stmts[0].(*ast.DeclGroup)
	require.True(t, ok)
	assert.Len(t, g.Decls, 2)
}

func TestParse_Newlines(t *testing.T) {
	a := parse(t, "def x = 1\n+ 2\nfoo\n  .bar()\n  ?.baz")
	require.Len(t, a.Stmts, 3)

	e := stmtExpr(t, a.Stmts[1])
	assert.Equal(t, ast.ExprKindUnary, e.Kind())

	chain := stmtExpr(t, a.Stmts[2]).Property()
	assert.Equal(t, "baz", chain.Name.Raw)
	assert.Equal(t, "?.", chain.Op)
	assert.Equal(t, "bar", chain.Receiver.MethodCall().Name.Raw)

	a = parse(t, "def y = cond\n    ? 1\n    : 2")
	require.Len(t, a.Stmts, 1)

	a = parse(t, "foo(1,\n 2)\nbar([\n1])")
	assert.Len(t, a.Stmts, 2)
}

func TestParse_CommandCalls(t *testing.T) {
	a := parse(t, `
println "hi"
greet name: "x", 2
System.out.println x
list.each { println it }
sync(lock) { work() }
`)
	require.Len(t, a.Stmts, 5)

	c := stmtExpr(t, a.Stmts[0]).MethodCall()
	assert.Equal(t, "println", c.Name.Raw)
	require.Len(t, c.Args, 1)
	assert.Equal(t, ast.ExprKindString, c.Args[0].Kind())

	c = stmtExpr(t, a.Stmts[1]).MethodCall()
	require.Len(t, c.Args, 2)
	assert.Equal(t, ast.ExprKindMap, c.Args[0].Kind())

	c = stmtExpr(t, a.Stmts[2]).MethodCall()
	assert.Equal(t, "println", c.Name.Raw)
	require.NotNil(t, c.Receiver)
	assert.Equal(t, "out", c.Receiver.Property().Name.Raw)

	c = stmtExpr(t, a.Stmts[3]).MethodCall()
	assert.Equal(t, "each", c.Name.Raw)
	require.Len(t, c.Args, 1)
	cl := c.Args[0].Closure()
	assert.False(t, cl.Arrow)
	assert.Len(t, cl.Body.Stmts, 1)

	c = stmtExpr(t, a.Stmts[4]).MethodCall()
	assert.Len(t, c.Args, 2)
}

func TestParse_Precedence(t *testing.T) {
	tests := []struct {
		code string
		op   string
	}{
		{"a + b * c", "+"},
		{"a * b + c", "+"},
		{"a || b && c", "||"},
		{"a == b < c", "=="},
		{"a << 2 + 1", "<<"},
		{"a >> 2", ">>"},
		{"a >>> 2", ">>>"},
		{"1..10", ".."},
		{"0..<n", "..<"},
		{"a !in b", "!in"},
		{"a instanceof String", "instanceof"},
		{"x = y = 1", "="},
		{"x += 1", "+="},
		{"m['k']", "["},
		{"2 ** 3 ** 2", "**"},
	}
	for _, tt := range tests {
		e := expr(t, tt.code)
		require.Equal(t, ast.ExprKindBinary, e.Kind(), tt.code)
		assert.Equal(t, tt.op, e.Binary().Op, tt.code)
	}

	pow := expr(t, "-2 ** 2")
	require.Equal(t, ast.ExprKindUnary, pow.Kind())

	assign := expr(t, "x = y = 1").Binary()
	assert.Equal(t, ast.ExprKindBinary, assign.Right.Kind())
}

func TestParse_Literals(t *testing.T) {
	m := expr(t, `[a: 1, "b": 2, (k): 3, class: 4]`)
	require.Equal(t, ast.ExprKindMap, m.Kind())
	entries := m.Data().(*ast.ExprMap).Entries
	require.Len(t, entries, 4)
	assert.Equal(t, "a", entries[0].Key.Data().(*ast.ExprString).Value)
	assert.Equal(t, ast.ExprKindIdent, entries[2].Key.Kind())
	assert.Equal(t, "class", entries[3].Key.Data().(*ast.ExprString).Value)

	assert.Equal(t, ast.ExprKindMap, expr(t, "[:]").Kind())
	assert.Equal(t, ast.ExprKindList, expr(t, "[]").Kind())
	assert.Equal(t, ast.ExprKindList, expr(t, "[1, [2, 3]]").Kind())
	assert.Equal(t, ast.ExprKindNull, expr(t, "null").Kind())
	assert.Equal(t, ast.ExprKindBool, expr(t, "true").Kind())

	g := expr(t, `"sum ${a + b} and $c.d"`)
	require.Equal(t, ast.ExprKindGString, g.Kind())
	gs := g.Data().(*ast.ExprGString)
	require.Len(t, gs.Values, 2)
	assert.Equal(t, ast.ExprKindBinary, gs.Values[0].Kind())
	assert.Equal(t, ast.ExprKindProperty, gs.Values[1].Kind())
	// the embedded expression keeps its place in the file
	assert.Equal(t, uint32(8), gs.Values[0].Span().ColumnStart)
}

func TestParse_CastsAndNew(t *testing.T) {
	c := expr(t, "(String) x")
	require.Equal(t, ast.ExprKindCast, c.Kind())
	assert.Equal(t, "String", c.Data().(*ast.ExprCast).Type.String())

	assert.Equal(t, ast.ExprKindBinary, expr(t, "(a) - b").Kind())
	assert.Equal(t, ast.ExprKindCast, expr(t, "x as List<String>").Kind())

	n := expr(t, "new ArrayList<String>(10)")
	require.Equal(t, ast.ExprKindNew, n.Kind())
	nd := n.Data().(*ast.ExprNew)
	assert.Equal(t, "ArrayList<String>", nd.Type.String())
	assert.Len(t, nd.Args, 1)

	arr := expr(t, "new int[3][]").Data().(*ast.ExprNew)
	assert.Equal(t, "int[][]", arr.Type.String())

	anon := expr(t, "new Runnable() { void run() {} }").Data().(*ast.ExprNew)
	assert.Equal(t, "Runnable", anon.Type.String())
}

func TestParse_Closures(t *testing.T) {
	cl := expr(t, "{ String a, b = 2 -> a + b }").Closure()
	require.Len(t, cl.Params, 2)
	assert.Equal(t, "String", cl.Params[0].Type.String())
	assert.Nil(t, cl.Params[1].Type)
	assert.True(t, cl.Arrow)

	empty := expr(t, "{ -> }").Closure()
	assert.True(t, empty.Arrow)
	assert.Empty(t, empty.Params)

	implicit := expr(t, "{ it.size() }").Closure()
	assert.False(t, implicit.Arrow)
	assert.Nil(t, implicit.Params)
}

func TestParse_Statements(t *testing.T) {
	a := parse(t, `
if (a) b() else if (c) { d() }
else e()
while (x) x--
do { y++ } while (y < 3)
for (i in 0..3) {}
for (String s : names) println s
for (int i = 0, j = 1; i < 10; i++, j++) {}
for (;;) break
switch (v) {
    case 1, 2: one(); break
    case String:
        two()
    default: three()
}
try (def r = open()) { r.read() } catch (IOException | RuntimeException e) { log(e) } finally { close() }
assert x > 0 : "positive"
throw new Error()
`)
	require.Len(t, a.Stmts, 11)

	ifs := a.Stmts[0].(*ast.StmtIf)
	require.NotNil(t, ifs.Else)
	elif, ok := ifs.Else.(*ast.StmtIf)
	require.True(t, ok)
	assert.NotNil(t, elif.Else)

	assert.False(t, a.Stmts[1].(*ast.StmtWhile).Do)
	assert.True(t, a.Stmts[2].(*ast.StmtWhile).Do)

	forIn := a.Stmts[3].(*ast.StmtForIn)
	assert.Equal(t, "i", forIn.Var.Name.Raw)
	assert.Nil(t, forIn.Var.Type)
	assert.Equal(t, "String", a.Stmts[4].(*ast.StmtForIn).Var.Type.String())

	classic := a.Stmts[5].(*ast.StmtFor)
	assert.IsType(t, &ast.DeclGroup{}, classic.Init)
	assert.NotNil(t, classic.Cond)
	assert.Len(t, classic.Update, 2)
	empty := a.Stmts[6].(*ast.StmtFor)
	assert.Nil(t, empty.Init)
	assert.Nil(t, empty.Cond)

	sw := a.Stmts[7].(*ast.StmtSwitch)
	require.Len(t, sw.Cases, 3)
	assert.Len(t, sw.Cases[0].Values, 2)
	assert.Len(t, sw.Cases[0].Body.Stmts, 2)
	assert.Empty(t, sw.Cases[2].Values)

	try := a.Stmts[8].(*ast.StmtTry)
	require.Len(t, try.Catches, 1)
	assert.Equal(t, "IOException", try.Catches[0].Param.Type.String())
	assert.NotNil(t, try.Finally)
	require.Len(t, try.Body.Stmts, 2)
	assert.IsType(t, &ast.LocalDecl{}, try.Body.Stmts[0])

	as := a.Stmts[9].(*ast.StmtAssert)
	assert.NotNil(t, as.Message)
	assert.IsType(t, &ast.StmtThrow{}, a.Stmts[10])
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"unclosed block":    "if (a) {",
		"missing paren":     "foo(1",
		"bad assignment":    "1 = 2",
		"mixed literal":     "[1, a: 2]",
		"try alone":         "try { }",
		"two statements":    "def x = 1 2",
		"stray brace":       "}",
		"bad interpolation": `"${}"`,
	}
	for name, code := range tests {
		_, err := Parse("test.groovy", code)
		assert.NotNil(t, err, name)
	}
}
