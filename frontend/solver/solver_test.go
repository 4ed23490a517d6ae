package solver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gluax-lang/groovyls/frontend/types"
)

func TestSymbolReference(t *testing.T) {
	unsolved := Unsolved[ResolvedTypeDeclaration]()
	assert.False(t, unsolved.IsSolved())
	assert.Nil(t, unsolved.DeclarationOrNil())
	assert.Panics(t, func() { unsolved.Declaration() })

	var nilDecl *ResolvedClassDeclaration
	assert.Panics(t, func() { Solved[ResolvedTypeDeclaration](nilDecl) })
	assert.Panics(t, func() { Solved[ResolvedTypeDeclaration](nil) })

	info := &ClassInfo{Name: "a.B"}
	require.NoError(t, info.Link())
	solved := Solved[ResolvedTypeDeclaration](NewResolvedClassDeclaration(info, nil))
	assert.True(t, solved.IsSolved())
	assert.Equal(t, "a.B", solved.Declaration().QualifiedName())
}

func TestReflectionTypeSolver_JREOnlyContainment(t *testing.T) {
	ts := NewReflectionTypeSolver(true)

	ref := ts.TryToSolveType("java.util.List")
	require.True(t, ref.IsSolved())
	decl := ref.Declaration()
	assert.Equal(t, "java.util.List", decl.QualifiedName())
	assert.Equal(t, "List", decl.Name())
	assert.Equal(t, "java.util", decl.PackageName())
	assert.True(t, decl.IsInterface())
	assert.Equal(t, []string{"E"}, decl.TypeParameters())

	assert.False(t, ts.TryToSolveType("com.example.NotOnJre").IsSolved())
}

func TestReflectionTypeSolver_JREOnlyNeverConsultsLoaderOutsideRuntime(t *testing.T) {
	var calls atomic.Int32
	loader := loaderFunc(func(name string) (*ClassInfo, error) {
		calls.Add(1)
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, name)
	})
	ts := NewReflectionTypeSolver(true, WithClassLoader(loader))

	assert.False(t, ts.TryToSolveType("com.example.Foo").IsSolved())
	assert.Equal(t, int32(0), calls.Load())

	assert.False(t, ts.TryToSolveType("java.lang.Missing").IsSolved())
	assert.Equal(t, int32(1), calls.Load())
}

func TestReflectionTypeSolver_UnsolvedNamesDoNotPanic(t *testing.T) {
	ts := NewReflectionTypeSolver(false)
	for _, name := range []string{"", "java.util.NoSuchThing", "not a name", "org.acme.Widget"} {
		assert.NotPanics(t, func() {
			assert.False(t, ts.TryToSolveType(name).IsSolved(), name)
		})
	}
}

func TestReflectionTypeSolver_NoClassDefFoundIsUnsolved(t *testing.T) {
	loader := loaderFunc(func(name string) (*ClassInfo, error) {
		return nil, fmt.Errorf("%w: %s: bad superclass", ErrNoClassDefFound, name)
	})
	ts := NewReflectionTypeSolver(false, WithClassLoader(loader))
	assert.False(t, ts.TryToSolveType("com.example.Broken").IsSolved())
}

func TestReflectionTypeSolver_PrimitiveNamesResolveToWrappers(t *testing.T) {
	ts := NewReflectionTypeSolver(true)
	ref := ts.TryToSolveType("int")
	require.True(t, ref.IsSolved())
	assert.Equal(t, types.IntegerName, ref.Declaration().QualifiedName())
}

func TestBoxedTypeName(t *testing.T) {
	assert.Equal(t, "java.lang.Boolean", BoxedTypeName("boolean"))
	assert.Equal(t, "java.lang.Character", BoxedTypeName("char"))
	assert.Equal(t, "java.lang.Void", BoxedTypeName("void"))
	assert.Equal(t, "com.example.Foo", BoxedTypeName("com.example.Foo"))
}

func TestCombinedTypeSolver_FirstSolvedWins(t *testing.T) {
	first := NewMemoryTypeSolver()
	require.NoError(t, first.Add(&ClassInfo{Name: "java.lang.String", Final: true}))
	combined := NewCombinedTypeSolver(first, NewReflectionTypeSolver(true))

	ref := combined.TryToSolveType("java.lang.String")
	require.True(t, ref.IsSolved())
	decl := ref.Declaration().(*ResolvedClassDeclaration)
	assert.Empty(t, decl.Methods(), "memory solver shadows the runtime String")

	assert.True(t, combined.TryToSolveType("java.util.Map").IsSolved())
	assert.False(t, combined.TryToSolveType("com.example.Nope").IsSolved())
}

func TestCombinedTypeSolver_Nested(t *testing.T) {
	mem := NewMemoryTypeSolver()
	require.NoError(t, mem.Add(&ClassInfo{Name: "com.acme.Widget", Super: "java.util.ArrayList<java.lang.String>"}))
	inner := NewCombinedTypeSolver(mem)
	outer := NewCombinedTypeSolver(inner, NewReflectionTypeSolver(true))

	assert.Same(t, outer, Root(mem))

	ref := outer.TryToSolveType("com.acme.Widget")
	require.True(t, ref.IsSolved())

	list := outer.TryToSolveType("java.util.List").Declaration()
	assert.True(t, list.IsAssignableBy(ref.Declaration()), "supertypes resolve through the root")
}

func TestSetParent_Relink(t *testing.T) {
	ts := NewReflectionTypeSolver(true)
	a := NewCombinedTypeSolver(ts)
	assert.NotPanics(t, func() { ts.SetParent(a) })
	assert.Panics(t, func() { NewCombinedTypeSolver(ts) })
}

func TestIsAssignableBy(t *testing.T) {
	ts := NewReflectionTypeSolver(true)
	get := func(name string) ResolvedTypeDeclaration {
		ref := ts.TryToSolveType(name)
		require.True(t, ref.IsSolved(), name)
		return ref.Declaration()
	}

	assert.True(t, get("java.util.List").IsAssignableBy(get("java.util.ArrayList")))
	assert.True(t, get("java.lang.Iterable").IsAssignableBy(get("java.util.LinkedList")))
	assert.True(t, get("java.lang.Object").IsAssignableBy(get("java.lang.Runnable")))
	assert.True(t, get("java.lang.Number").IsAssignableBy(get("java.math.BigDecimal")))
	assert.True(t, get("java.lang.CharSequence").IsAssignableBy(get("groovy.lang.GString")))
	assert.False(t, get("java.util.ArrayList").IsAssignableBy(get("java.util.List")))
	assert.False(t, get("java.lang.Number").IsAssignableBy(get("java.lang.String")))

	other := NewReflectionTypeSolver(true)
	assert.True(t, get("java.util.List").IsAssignableBy(other.TryToSolveType("java.util.List").Declaration()),
		"declarations compare by qualified name across solvers")
}

func TestTypeCache_ConcurrentLoadsOnce(t *testing.T) {
	cache := NewTypeCache()
	var loads atomic.Int32
	runtime := RuntimeLoader()
	loader := loaderFunc(func(name string) (*ClassInfo, error) {
		loads.Add(1)
		return runtime.LoadClass(name)
	})

	var wg sync.WaitGroup
	results := make([]SymbolReference[ResolvedTypeDeclaration], 64)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ts := NewReflectionTypeSolver(true, WithClassLoader(loader), WithCache(cache))
			results[i] = ts.TryToSolveType("java.util.HashMap")
		}()
	}
	wg.Wait()

	for _, r := range results {
		require.True(t, r.IsSolved())
		assert.Equal(t, "java.util.HashMap", r.Declaration().QualifiedName())
	}
	assert.Equal(t, int32(1), loads.Load())
	assert.Equal(t, 1, cache.Len())
}

func TestTypeCache_CachesMisses(t *testing.T) {
	cache := NewTypeCache()
	calls := 0
	load := func() (*ClassInfo, error) {
		calls++
		return nil, ErrClassNotFound
	}
	_, err := cache.GetOrLoad("java.x.Y", load)
	assert.True(t, errors.Is(err, ErrClassNotFound))
	_, err = cache.GetOrLoad("java.x.Y", load)
	assert.True(t, errors.Is(err, ErrClassNotFound))
	assert.Equal(t, 1, calls)
}

func TestLoadIndexFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deps.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
classes:
  - name: org.acme.Repo
    typeParams: [T]
    super: java.lang.Object
    interfaces: ["java.lang.Iterable<T>"]
    methods:
      - {name: find, params: [long], returns: T}
`), 0o644))

	loader, err := LoadIndexFiles([]string{path})
	require.NoError(t, err)

	ts := NewCombinedTypeSolver(
		NewReflectionTypeSolver(true),
		NewReflectionTypeSolver(false, WithClassLoader(ChainLoader{loader, RuntimeLoader()})),
	)
	ref := ts.TryToSolveType("org.acme.Repo")
	require.True(t, ref.IsSolved())

	m, ok := LookupMethod(ts, types.NewKnown("org.acme.Repo", types.String()), "find", []types.SemanticType{types.NewPrimitive(types.PrimLong)})
	require.True(t, ok)
	assert.Equal(t, "java.lang.String", m.Return.String())
}

func TestLoadIndexFiles_BadTypeIsNoClassDef(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deps.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
classes:
  - name: org.acme.Good
  - name: org.acme.Bad
    super: "java.util.List<"
`), 0o644))

	loader, err := LoadIndexFiles([]string{path})
	require.NoError(t, err)
	assert.Equal(t, 1, loader.Len())
	require.Len(t, loader.Errors(), 1)
	assert.ErrorIs(t, loader.Errors()[0], ErrNoClassDefFound)

	_, err = loader.LoadClass("org.acme.Bad")
	assert.ErrorIs(t, err, ErrNoClassDefFound)

	ts := NewReflectionTypeSolver(false, WithClassLoader(ChainLoader{loader, RuntimeLoader()}))
	assert.True(t, ts.TryToSolveType("org.acme.Good").IsSolved())
	assert.False(t, ts.TryToSolveType("org.acme.Bad").IsSolved())
	assert.False(t, ts.TryToSolveType("org.acme.Missing").IsSolved())
}

func TestSolveName_DefaultImports(t *testing.T) {
	ts := NewReflectionTypeSolver(true)
	tests := map[string]string{
		"String":     "java.lang.String",
		"ArrayList":  "java.util.ArrayList",
		"BigDecimal": "java.math.BigDecimal",
		"Closure":    "groovy.lang.Closure",
		"Map.Entry":  "java.util.Map.Entry",
	}
	for simple, want := range tests {
		ref := SolveName(ts, simple, []string{"java.util.Map"})
		require.True(t, ref.IsSolved(), simple)
		assert.Equal(t, want, ref.Declaration().QualifiedName())
	}
	assert.False(t, SolveName(ts, "Widget", nil).IsSolved())
}

type loaderFunc func(name string) (*ClassInfo, error)

func (f loaderFunc) LoadClass(name string) (*ClassInfo, error) { return f(name) }
