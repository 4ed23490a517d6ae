package lub

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gluax-lang/groovyls/frontend/solver"
	"github.com/gluax-lang/groovyls/frontend/types"
)

func newLub() *TypeLub {
	return New(solver.NewReflectionTypeSolver(true))
}

func known(fqn string, args ...types.SemanticType) types.SemanticType {
	return types.NewKnown(fqn, args...)
}

func prim(k types.PrimitiveKind) types.SemanticType {
	return types.NewPrimitive(k)
}

var samples = []types.SemanticType{
	types.String(),
	known(types.ListName, types.String()),
	known("com.example.Unresolved"),
	prim(types.PrimInt),
	prim(types.PrimVoid),
	prim(types.PrimBoolean),
	types.NewArray(prim(types.PrimChar)),
	types.NewDynamic("x"),
	types.NewUnknown("why"),
	types.NewUnion(types.String(), known(types.IntegerName)),
	types.Null,
}

func TestLub_EmptyInputPanics(t *testing.T) {
	assert.Panics(t, func() { newLub().Lub() })
}

func TestLub_Idempotence(t *testing.T) {
	l := newLub()
	for _, ty := range samples {
		assert.True(t, l.Lub(ty).Equal(ty), ty.String())
		assert.True(t, l.Lub(ty, ty).Equal(ty), ty.String())
	}
}

func TestLub_NullAbsorption(t *testing.T) {
	l := newLub()
	for _, ty := range samples {
		if ty.IsNull() {
			continue
		}
		assert.True(t, l.Lub(ty, types.Null).Equal(ty), ty.String())
		assert.True(t, l.Lub(types.Null, ty).Equal(ty), ty.String())
	}
	assert.True(t, l.Lub(types.Null, types.Null).IsNull())
}

func TestLub_NumericPromotionIsTotalAndCommutative(t *testing.T) {
	l := newLub()
	var numeric []types.PrimitiveKind
	for _, k := range types.AllPrimitiveKinds {
		if k.IsNumeric() {
			numeric = append(numeric, k)
		}
	}
	for _, a := range numeric {
		for _, b := range numeric {
			t.Run(fmt.Sprintf("%s_%s", a, b), func(t *testing.T) {
				ab := l.Lub(prim(a), prim(b))
				ba := l.Lub(prim(b), prim(a))
				assert.True(t, ab.Equal(ba))
				if assert.True(t, ab.IsPrimitive()) {
					r, _ := rankOf(ab)
					assert.GreaterOrEqual(t, r, primitiveRanks[a])
					assert.GreaterOrEqual(t, r, primitiveRanks[b])
				}
			})
		}
	}
}

func TestLub_Numeric(t *testing.T) {
	l := newLub()
	bigInt := known(types.BigIntegerName)
	bigDec := known(types.BigDecimalName)
	tests := []struct {
		name string
		in   []types.SemanticType
		want types.SemanticType
	}{
		{"int long", []types.SemanticType{prim(types.PrimInt), prim(types.PrimLong)}, prim(types.PrimLong)},
		{"byte short char", []types.SemanticType{prim(types.PrimByte), prim(types.PrimShort), prim(types.PrimChar)}, prim(types.PrimChar)},
		{"long float", []types.SemanticType{prim(types.PrimLong), prim(types.PrimFloat)}, prim(types.PrimFloat)},
		{"big integer float", []types.SemanticType{bigInt, prim(types.PrimFloat)}, bigDec},
		{"double big integer", []types.SemanticType{prim(types.PrimDouble), bigInt}, bigDec},
		{"big integer boxed double", []types.SemanticType{bigInt, known(types.DoubleName)}, bigDec},
		{"big decimal int", []types.SemanticType{bigDec, prim(types.PrimInt)}, bigDec},
		{"big integer long", []types.SemanticType{prim(types.PrimLong), bigInt}, bigInt},
		{"boxed higher", []types.SemanticType{known(types.LongName), prim(types.PrimInt)}, known(types.LongName)},
		{"unboxed higher", []types.SemanticType{known(types.IntegerName), prim(types.PrimDouble)}, prim(types.PrimDouble)},
		{"tie prefers unboxed", []types.SemanticType{known(types.IntegerName), prim(types.PrimInt)}, prim(types.PrimInt)},
		{"wrappers meet at Number", []types.SemanticType{known(types.IntegerName), known(types.DoubleName)}, known(types.NumberName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want.String(), l.Lub(tt.in...).String())
		})
	}
}

func TestLub_VoidAndBoolean(t *testing.T) {
	l := newLub()
	voidT := prim(types.PrimVoid)
	assert.True(t, l.Lub(voidT, voidT).IsVoid())
	assert.True(t, l.Lub(voidT, prim(types.PrimInt)).IsNamed(types.ObjectName))
	assert.True(t, l.Lub(prim(types.PrimInt), voidT).IsNamed(types.ObjectName))
	assert.True(t, l.Lub(prim(types.PrimBoolean), prim(types.PrimInt)).IsNamed(types.ObjectName))
	assert.True(t, l.Lub(prim(types.PrimDouble), prim(types.PrimBoolean)).IsNamed(types.ObjectName))

	// wrappers on either side do not create a promotion
	assert.True(t, l.Lub(prim(types.PrimInt), types.Boolean()).IsNamed(types.ObjectName))
	assert.True(t, l.Lub(types.Boolean(), prim(types.PrimDouble)).IsNamed(types.ObjectName))
	assert.True(t, l.Lub(prim(types.PrimBoolean), known(types.IntegerName)).IsNamed(types.ObjectName))

	// all wrappers take the reference path
	assert.True(t, l.Lub(known(types.IntegerName), types.Boolean()).IsNamed("java.lang.Comparable"))
}

func TestLub_StringCoercion(t *testing.T) {
	l := newLub()
	assert.True(t, l.Lub(types.GString(), types.String()).Equal(types.String()))
	assert.True(t, l.Lub(types.String(), types.GString()).Equal(types.String()))
}

func TestLub_ReferenceAncestorPriority(t *testing.T) {
	l := newLub()
	tests := []struct {
		name string
		in   []types.SemanticType
		want string
	}{
		{"ArrayList LinkedList", []types.SemanticType{known("java.util.ArrayList"), known("java.util.LinkedList")}, "java.util.List"},
		{"HashSet LinkedHashSet", []types.SemanticType{known("java.util.HashSet"), known("java.util.LinkedHashSet")}, "java.util.HashSet"},
		{"HashSet ArrayList", []types.SemanticType{known("java.util.HashSet"), known("java.util.ArrayList")}, "java.util.Collection"},
		{"Integer Number", []types.SemanticType{known(types.IntegerName), known(types.NumberName)}, types.NumberName},
		{"String Integer", []types.SemanticType{types.String(), known(types.IntegerName)}, types.ComparableName},
		{"String StringBuilder", []types.SemanticType{types.String(), known("java.lang.StringBuilder")}, types.CharSequenceName},
		{"Closure HashMap", []types.SemanticType{types.Closure(), known("java.util.HashMap")}, types.CloneableName},
		{"Runnable String", []types.SemanticType{known("java.lang.Runnable"), types.String()}, types.ObjectName},
		{"unresolved", []types.SemanticType{known("com.example.A"), known("com.example.B")}, types.ObjectName},
		{"int String", []types.SemanticType{prim(types.PrimInt), types.String()}, types.ComparableName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Lub(tt.in...).String())
		})
	}
}

func TestLub_GenericArguments(t *testing.T) {
	l := newLub()
	integer := known(types.IntegerName)
	double := known(types.DoubleName)

	got := l.Lub(known(types.ListName, types.String()), known(types.ListName, integer))
	assert.Equal(t, "java.util.List<java.lang.Comparable>", got.String())

	got = l.Lub(known(types.MapName, types.String(), integer), known(types.MapName, types.String(), double))
	assert.Equal(t, "java.util.Map<java.lang.String, java.lang.Number>", got.String())

	got = l.Lub(known("java.util.ArrayList", types.String()), known("java.util.LinkedList", integer))
	assert.Equal(t, "java.util.List<java.lang.Comparable>", got.String())

	got = l.Lub(known("java.util.HashMap", types.String(), integer), known("java.util.TreeMap", types.String(), known(types.LongName)))
	assert.Equal(t, "java.util.Map<java.lang.String, java.lang.Number>", got.String())

	got = l.Lub(known(types.ListName, types.String()), known(types.ListName))
	assert.Equal(t, "java.util.List", got.String(), "a raw member makes the result raw")
}

func TestLub_Arrays(t *testing.T) {
	l := newLub()
	got := l.Lub(types.NewArray(known("java.util.ArrayList")), types.NewArray(known("java.util.LinkedList")))
	assert.Equal(t, "java.util.List[]", got.String())
	assert.True(t, l.Lub(types.NewArray(prim(types.PrimInt)), types.NewArray(prim(types.PrimLong))).IsNamed(types.ObjectName))
	assert.True(t, l.Lub(types.NewArray(types.String()), types.String()).IsNamed(types.ObjectName))
}

func TestLub_UnknownDynamicUnion(t *testing.T) {
	l := newLub()
	unknown := types.NewUnknown("no such method")
	assert.True(t, l.Lub(types.String(), unknown).Equal(unknown))
	assert.True(t, l.Lub(types.NewDynamic(""), prim(types.PrimInt)).IsDynamic())

	union := types.NewUnion(types.String(), known(types.IntegerName))
	assert.True(t, l.Lub(union, types.String()).IsNamed(types.ObjectName))
	assert.True(t, l.Lub(known(types.ListName), union).IsNamed(types.ObjectName))
}
