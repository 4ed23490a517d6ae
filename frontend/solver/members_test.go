package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gluax-lang/groovyls/frontend/types"
)

func TestParseTypeRef(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"int", "int"},
		{"java.lang.String[]", "java.lang.String[]"},
		{"java.util.Map<K, java.util.List<V>>", "java.util.Map<K, java.util.List<V>>"},
		{"java.util.Collection<? extends E>", "java.util.Collection<E>"},
		{"java.lang.Class<?>", "java.lang.Class<java.lang.Object>"},
		{"java.util.List<? super T>", "java.util.List<java.lang.Object>"},
		{"char[][]", "char[][]"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ref, err := ParseTypeRef(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ref.String())
		})
	}

	for _, bad := range []string{"", "java.util.List<", "a<b c>", "int[", "a b"} {
		_, err := ParseTypeRef(bad)
		assert.Error(t, err, bad)
	}
}

func TestTypeRef_Substitute(t *testing.T) {
	ref := MustParseTypeRef("java.util.Map<K, java.util.List<V>>")

	got, complete := ref.Substitute(Bind([]string{"K", "V"}, []types.SemanticType{types.String(), types.NewKnown(types.IntegerName)}))
	assert.True(t, complete)
	assert.Equal(t, "java.util.Map<java.lang.String, java.util.List<java.lang.Integer>>", got.String())

	got, complete = ref.Substitute(Bind([]string{"K", "V"}, nil))
	assert.False(t, complete)
	assert.Equal(t, "java.util.Map<java.lang.Object, java.util.List<java.lang.Object>>", got.String())
}

func TestAncestors(t *testing.T) {
	ts := NewReflectionTypeSolver(true)
	ancestors := Ancestors(ts, types.NewKnown("java.util.ArrayList", types.String()))

	byName := map[string]Ancestor{}
	for _, a := range ancestors {
		byName[a.Type.Known().FQN] = a
	}
	assert.Equal(t, 0, byName["java.util.ArrayList"].Depth)
	assert.Equal(t, "java.util.List<java.lang.String>", byName["java.util.List"].Type.String())
	assert.Equal(t, "java.lang.Iterable<java.lang.String>", byName["java.lang.Iterable"].Type.String())
	assert.Contains(t, byName, "java.io.Serializable")
	assert.Contains(t, byName, types.ObjectName)

	str := map[string]Ancestor{}
	for _, a := range Ancestors(ts, types.String()) {
		str[a.Type.Known().FQN] = a
	}
	comparable := str[types.ComparableName]
	assert.True(t, comparable.Raw, "Comparable<String> refers back to String")
	assert.Equal(t, types.ComparableName, comparable.Type.String())
}

func TestAncestors_UnresolvedClassStillReachesObject(t *testing.T) {
	ts := NewReflectionTypeSolver(true)
	ancestors := Ancestors(ts, types.NewKnown("com.example.Missing"))
	require.Len(t, ancestors, 2)
	assert.Nil(t, ancestors[0].Decl)
	assert.True(t, ancestors[1].Type.IsNamed(types.ObjectName))
}

func TestLookupMethod(t *testing.T) {
	ts := NewReflectionTypeSolver(true)
	intT := types.NewPrimitive(types.PrimInt)

	m, ok := LookupMethod(ts, types.NewKnown("java.util.ArrayList", types.String()), "get", []types.SemanticType{intT})
	require.True(t, ok)
	assert.Equal(t, "java.lang.String", m.Return.String())
	assert.Equal(t, "java.util.List", m.Owner.QualifiedName())

	m, ok = LookupMethod(ts, types.NewKnown("java.util.HashMap", types.String(), types.NewKnown(types.LongName)), "keySet", nil)
	require.True(t, ok)
	assert.Equal(t, "java.util.Set<java.lang.String>", m.Return.String())

	m, ok = LookupMethod(ts, types.NewKnown("java.util.ArrayList"), "get", []types.SemanticType{intT})
	require.True(t, ok)
	assert.Equal(t, types.ObjectName, m.Return.String(), "raw receivers erase to Object")

	m, ok = LookupMethod(ts, intT, "compareTo", []types.SemanticType{types.NewKnown(types.IntegerName)})
	require.True(t, ok, "primitive receivers are boxed")
	assert.True(t, m.Return.IsPrimitiveOf(types.PrimInt))

	m, ok = LookupMethod(ts, types.String(), "toString", nil)
	require.True(t, ok, "inherited from Object")
	assert.True(t, m.Return.IsNamed(types.StringName))

	_, ok = LookupMethod(ts, types.String(), "noSuchMethod", nil)
	assert.False(t, ok)
}

func TestLookupMethod_OverloadByArgumentType(t *testing.T) {
	ts := NewReflectionTypeSolver(true)
	math := types.NewKnown("java.lang.Math")

	m, ok := LookupMethod(ts, math, "max", []types.SemanticType{types.NewPrimitive(types.PrimLong), types.NewPrimitive(types.PrimLong)})
	require.True(t, ok)
	assert.True(t, m.Return.IsPrimitiveOf(types.PrimLong))

	m, ok = LookupMethod(ts, math, "max", []types.SemanticType{types.NewPrimitive(types.PrimDouble), types.NewKnown(types.IntegerName)})
	require.True(t, ok)
	assert.True(t, m.Return.IsPrimitiveOf(types.PrimDouble))
}

func TestLookupField(t *testing.T) {
	ts := NewReflectionTypeSolver(true)

	f, ok := LookupField(ts, types.NewKnown(types.IntegerName), "MAX_VALUE")
	require.True(t, ok)
	assert.True(t, f.Type.IsPrimitiveOf(types.PrimInt))

	f, ok = LookupField(ts, types.NewArray(types.String()), "length")
	require.True(t, ok)
	assert.True(t, f.Type.IsPrimitiveOf(types.PrimInt))

	f, ok = LookupField(ts, types.NewKnown("java.util.LinkedHashMap", types.String(), types.NewKnown(types.DoubleName)), "anything")
	require.True(t, ok)
	assert.True(t, f.Type.IsNamed(types.DoubleName))

	f, ok = LookupField(ts, types.NewKnown("java.util.Map.Entry", types.String(), types.NewKnown(types.IntegerName)), "value")
	require.True(t, ok)
	require.NotNil(t, f.Getter)
	assert.Equal(t, "getValue", f.Getter.Name)
	assert.True(t, f.Type.IsNamed(types.IntegerName))

	f, ok = LookupField(ts, types.String(), "empty")
	require.True(t, ok)
	assert.Equal(t, "isEmpty", f.Getter.Name)

	_, ok = LookupField(ts, types.String(), "nope")
	assert.False(t, ok)
}

func TestIsAssignable(t *testing.T) {
	ts := NewReflectionTypeSolver(true)
	intT := types.NewPrimitive(types.PrimInt)
	longT := types.NewPrimitive(types.PrimLong)

	assert.True(t, IsAssignable(ts, longT, intT))
	assert.False(t, IsAssignable(ts, intT, longT))
	assert.True(t, IsAssignable(ts, types.NewKnown(types.IntegerName), intT))
	assert.True(t, IsAssignable(ts, types.NewKnown(types.NumberName), intT))
	assert.True(t, IsAssignable(ts, types.NewKnown(types.ListName), types.NewKnown("java.util.ArrayList", types.String())))
	assert.False(t, IsAssignable(ts, intT, types.Null))
	assert.True(t, IsAssignable(ts, types.String(), types.Null))
	assert.True(t, IsAssignable(ts, types.String(), types.NewDynamic("")))
	assert.False(t, IsAssignable(ts, types.String(), types.NewKnown(types.IntegerName)))
}
