package sema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gluax-lang/groovyls/frontend"
	"github.com/gluax-lang/groovyls/frontend/resolve"
	"github.com/gluax-lang/groovyls/frontend/syntax"
)

func newWorkspace(t *testing.T) *Workspace {
	t.Helper()
	w, err := NewWorkspaceWithConfig(t.TempDir(), frontend.DefaultGroovyToml("demo"))
	require.NoError(t, err)
	return w
}

func analyze(t *testing.T, w *Workspace, name, code string) *Analysis {
	t.Helper()
	a, err := w.AnalyzeSource(filepath.Join(w.Root, "src", name), code)
	require.NoError(t, err)
	require.NotNil(t, a.Unit, "diags: %v", a.Diags)
	return a
}

// pos is the 1-based position of the nth occurrence of needle, counting
// from zero.
func pos(t *testing.T, code, needle string, nth int) (uint32, uint32) {
	t.Helper()
	for i, line := range strings.Split(code, "\n") {
		from := 0
		for {
			idx := strings.Index(line[from:], needle)
			if idx < 0 {
				break
			}
			if nth == 0 {
				return uint32(i + 1), uint32(from + idx + 1)
			}
			nth--
			from += idx + len(needle)
		}
	}
	t.Fatalf("%q not found", needle)
	return 0, 0
}

func typeOf(t *testing.T, a *Analysis, name string) string {
	t.Helper()
	for _, e := range a.Types() {
		if e.Name == name {
			return e.Type.String()
		}
	}
	t.Fatalf("no entry %q", name)
	return ""
}

func declAt(t *testing.T, a *Analysis, code, needle string, nth int) (*resolve.Declaration, bool) {
	t.Helper()
	line, col := pos(t, code, needle, nth)
	return a.DeclarationAt(line, col)
}

const point = `package demo

class Point {
    int x
    int y
    final String label = "p"

    int sum() { x + y }
}

enum Color { RED, GREEN }
`

func TestAnalysis_Locals(t *testing.T) {
	code := `def a = 1
def b = a
def c = c
`
	a := analyze(t, newWorkspace(t), "Locals.groovy", code)
	assert.Equal(t, "java.lang.Integer", typeOf(t, a, "a"))
	assert.Equal(t, "java.lang.Integer", typeOf(t, a, "b"))

	d, ok := declAt(t, a, code, "a", 1)
	require.True(t, ok)
	assert.Equal(t, resolve.LocalDecl, d.Kind)

	// a local is not visible in its own initializer
	_, ok = declAt(t, a, code, "c", 1)
	assert.False(t, ok)
}

func TestAnalysis_ChainedLocals(t *testing.T) {
	var b strings.Builder
	b.WriteString("def x0 = 1\n")
	for i := 1; i < 40; i++ {
		fmt.Fprintf(&b, "def x%d = x%d + x%d\n", i, i-1, i-1)
	}
	code := b.String()

	start := time.Now()
	a := analyze(t, newWorkspace(t), "Chain.groovy", code)
	assert.Equal(t, "java.lang.Integer", typeOf(t, a, "x39"))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestAnalysis_CyclicInitializers(t *testing.T) {
	code := `class A {
    def a = b + b
    def b = a + a
}
`
	w := newWorkspace(t)
	done := make(chan []TypedEntry, 1)
	go func() {
		a, err := w.AnalyzeSource(filepath.Join(w.Root, "src", "A.groovy"), code)
		if err != nil || a.Unit == nil {
			done <- nil
			return
		}
		done <- a.Types()
	}()

	select {
	case entries := <-done:
		require.NotEmpty(t, entries)
		for _, e := range entries {
			if e.Name == "a" || e.Name == "b" {
				assert.True(t, e.Type.IsUnknown(), "%s: %s", e.Name, e.Type)
			}
		}
	case <-time.After(10 * time.Second):
		t.Fatal("analysis of cyclic initializers did not finish")
	}
}

func TestAnalysis_ScriptMethods(t *testing.T) {
	code := `def total = 3
def f(int n) { n + total }
count = 2
def g() { count }
`
	a := analyze(t, newWorkspace(t), "Methods.groovy", code)

	// the first "n" is in "int"
	d, ok := declAt(t, a, code, "n", 2)
	require.True(t, ok)
	assert.Equal(t, resolve.ParameterDecl, d.Kind)

	// script methods see bindings but not the locals of the script body
	_, ok = declAt(t, a, code, "total", 1)
	assert.False(t, ok)
	d, ok = declAt(t, a, code, "count", 1)
	require.True(t, ok)
	assert.Equal(t, resolve.BindingDecl, d.Kind)
}

func TestAnalysis_Bindings(t *testing.T) {
	code := `list = [1, 2]
list.size()
`
	a := analyze(t, newWorkspace(t), "Bindings.groovy", code)
	d, ok := declAt(t, a, code, "list", 1)
	require.True(t, ok)
	assert.Equal(t, resolve.BindingDecl, d.Kind)

	line, col := pos(t, code, "size", 0)
	typ, _, ok := a.TypeAt(line, col)
	require.True(t, ok)
	assert.Equal(t, "int", typ.String())
}

func TestAnalysis_ClosureIt(t *testing.T) {
	code := `def words = ["a", "b"]
words.each { it.size() }
`
	a := analyze(t, newWorkspace(t), "Closures.groovy", code)
	d, ok := declAt(t, a, code, "it", 0)
	require.True(t, ok)
	assert.Equal(t, resolve.ClosureParameterDecl, d.Kind)
	assert.Equal(t, "it", d.Name)
}

func TestAnalysis_Classes(t *testing.T) {
	w := newWorkspace(t)
	a := analyze(t, w, "demo/Point.groovy", point)

	d, ok := declAt(t, a, point, "x", 1)
	require.True(t, ok)
	assert.Equal(t, resolve.FieldDecl, d.Kind)
	assert.Equal(t, "demo.Point", d.Owner)

	code := `package demo

def p = new Point()
def v = p.getX()
def w = p.x
def s = p.sum()
def c = Color.RED
def l = p.label
`
	m := analyze(t, w, "demo/Main.groovy", code)
	assert.Empty(t, m.Diags)
	assert.Equal(t, "demo.Point", typeOf(t, m, "p"))
	assert.Equal(t, "int", typeOf(t, m, "v"))
	assert.Equal(t, "int", typeOf(t, m, "w"))
	assert.Equal(t, "int", typeOf(t, m, "s"))
	assert.Equal(t, "demo.Color", typeOf(t, m, "c"))
	assert.Equal(t, "java.lang.String", typeOf(t, m, "l"))
}

func TestAnalysis_InlayHints(t *testing.T) {
	a := analyze(t, newWorkspace(t), "Hints.groovy", "def a = 1\nString b = \"x\"\n")
	require.Len(t, a.InlayHints, 1)
	hint := a.InlayHints[0]
	assert.Equal(t, ": java.lang.Integer", hint.Label[0].Value)
	assert.Equal(t, uint32(0), hint.Position.Line)
	assert.Equal(t, uint32(5), hint.Position.Character)
}

func TestAnalysis_Diagnostics(t *testing.T) {
	w := newWorkspace(t)
	a := analyze(t, w, "Unresolved.groovy", "Foo q = null\nList<Bar> xs = []\n")
	var msgs []string
	for _, d := range a.Diags {
		msgs = append(msgs, d.Message)
	}
	assert.Contains(t, msgs, "unable to resolve class Foo")
	assert.Contains(t, msgs, "unable to resolve class Bar")

	a, err := w.AnalyzeSource(filepath.Join(w.Root, "src", "Broken.groovy"), "def x = (1 +\n")
	require.NoError(t, err)
	assert.Nil(t, a.Unit)
	assert.NotEmpty(t, a.Diags)
	_, _, ok := a.TypeAt(1, 5)
	assert.False(t, ok)
}

func TestAnalysis_StaticCompilation(t *testing.T) {
	cfg := frontend.DefaultGroovyToml("demo")
	cfg.StaticCompilation = true
	w, err := NewWorkspaceWithConfig(t.TempDir(), cfg)
	require.NoError(t, err)

	a := analyze(t, w, "Static.groovy", "def s = \"x\"\ns.noSuchMethod()\n")
	assert.NotEmpty(t, a.Diags)

	w.Config.StaticCompilation = false
	a = analyze(t, w, "Dynamic.groovy", "def s = \"x\"\ns.noSuchMethod()\n")
	assert.Empty(t, a.Diags)
}

func TestAnalysis_DefinitionAt(t *testing.T) {
	w := newWorkspace(t)
	analyze(t, w, "demo/Point.groovy", point)

	code := `package demo

def p = new Point()
p.getX()
p.y
p
"s".length()
`
	a := analyze(t, w, "demo/Main.groovy", code)

	line, col := pos(t, code, "getX", 0)
	target, ok := a.DefinitionAt(line, col)
	require.True(t, ok)
	assert.Equal(t, "demo.Point", target.Class)
	span, ok := NodeSpan(target.Node)
	require.True(t, ok)
	assert.Equal(t, uint32(4), span.LineStart)
	assert.True(t, strings.HasSuffix(span.Source, "Point.groovy"))

	line, col = pos(t, code, "y", 0)
	target, ok = a.DefinitionAt(line, col)
	require.True(t, ok)
	span, _ = NodeSpan(target.Node)
	assert.Equal(t, uint32(5), span.LineStart)

	line, col = pos(t, code, "Point", 0)
	target, ok = a.DefinitionAt(line, col)
	require.True(t, ok)
	assert.Equal(t, "demo.Point", target.Class)

	target, ok = a.DefinitionAt(6, 1)
	require.True(t, ok)
	span, _ = NodeSpan(target.Node)
	assert.Equal(t, uint32(3), span.LineStart)

	// library classes have no source
	line, col = pos(t, code, "length", 0)
	_, ok = a.DefinitionAt(line, col)
	assert.False(t, ok)
}

func TestAnalysis_JavaSources(t *testing.T) {
	w := newWorkspace(t)
	javaCode := `package demo;

public class Util {
    public static int twice(int x) { return x * 2; }
}
`
	j := analyze(t, w, "demo/Util.java", javaCode)
	assert.Empty(t, j.Diags)

	code := `package demo

def n = Util.twice(2)
`
	a := analyze(t, w, "demo/Main.groovy", code)
	assert.Equal(t, "int", typeOf(t, a, "n"))

	line, col := pos(t, code, "twice", 0)
	target, ok := a.DefinitionAt(line, col)
	require.True(t, ok)
	assert.Equal(t, "demo.Util", target.Class)
	node, ok := target.Node.(*syntax.Node)
	require.True(t, ok)
	assert.Equal(t, "method_declaration", node.Type)
}

func TestWorkspace_Caching(t *testing.T) {
	w := newWorkspace(t)
	path := filepath.Join(w.Root, "src", "Main.groovy")
	code := "def a = 1\n"
	w.SetFile(path, code)

	a1, err := w.Analyze(path)
	require.NoError(t, err)
	a2, err := w.Analyze(path)
	require.NoError(t, err)
	assert.Same(t, a1, a2)

	w.SetFile(path, code)
	a3, err := w.Analyze(path)
	require.NoError(t, err)
	assert.Same(t, a1, a3)

	// an edit elsewhere can change what this file sees
	w.SetFile(filepath.Join(w.Root, "src", "Other.groovy"), "class Other {}\n")
	a4, err := w.Analyze(path)
	require.NoError(t, err)
	assert.NotSame(t, a1, a4)

	w.RemoveFile(path)
	_, err = w.Analyze(path)
	assert.ErrorIs(t, err, ErrUnknownFile)
	assert.Equal(t, []string{filepath.Join(w.Root, "src", "Other.groovy")}, w.Files())
}

func TestWorkspace_BadClasspathEntry(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "deps.yaml"), []byte(`
classes:
  - name: org.acme.Good
  - name: org.acme.Bad
    super: "java.util.List<"
`), 0o644))
	cfg := frontend.DefaultGroovyToml("demo")
	cfg.Classpath = []string{"deps.yaml"}
	w, err := NewWorkspaceWithConfig(root, cfg)
	require.NoError(t, err)

	a := analyze(t, w, "Main.groovy", "import org.acme.Good\nimport org.acme.Bad\n\ndef g = new Good()\nBad b = null\n")
	assert.Equal(t, "org.acme.Good", typeOf(t, a, "g"))
	var bad bool
	for _, d := range a.Diags {
		bad = bad || strings.Contains(d.Message, "Bad")
	}
	assert.True(t, bad, "diags: %v", a.Diags)
}

func TestWorkspace_Load(t *testing.T) {
	w := newWorkspace(t)
	require.NoError(t, w.Load())
	assert.Empty(t, w.Files())
	assert.True(t, IsSourceFile("a/B.groovy"))
	assert.True(t, IsSourceFile("a/B.java"))
	assert.False(t, IsSourceFile("a/B.kt"))
	assert.Equal(t, "src/Main.groovy", w.StripWorkspace(filepath.Join(w.Root, "src", "Main.groovy")))
}

func TestAnalysis_Completions(t *testing.T) {
	w := newWorkspace(t)
	analyze(t, w, "demo/Point.groovy", point)
	code := `package demo

def p = new Point()
def n = 1
p
`
	a := analyze(t, w, "demo/Main.groovy", code)

	names := func(cs []Completion) []string {
		var out []string
		for _, c := range cs {
			out = append(out, c.Name)
		}
		return out
	}
	members := names(a.MemberCompletions(5, 1))
	assert.Contains(t, members, "x")
	assert.Contains(t, members, "getX")
	assert.Contains(t, members, "sum")
	assert.Contains(t, members, "hashCode")

	visible := a.ScopeCompletions(5, 1)
	require.NotEmpty(t, visible)
	assert.Equal(t, "n", visible[0].Name)
	assert.Contains(t, names(visible), "p")
}
