package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemanticType_String(t *testing.T) {
	tests := []struct {
		name string
		ty   SemanticType
		want string
	}{
		{"known", NewKnown(StringName), "java.lang.String"},
		{"parameterized", NewKnown(ListName, String()), "java.util.List<java.lang.String>"},
		{"two args", NewKnown(MapName, String(), NewKnown(IntegerName)), "java.util.Map<java.lang.String, java.lang.Integer>"},
		{"primitive", NewPrimitive(PrimInt), "int"},
		{"array", NewArray(NewPrimitive(PrimInt)), "int[]"},
		{"nested array", NewArray(NewArray(String())), "java.lang.String[][]"},
		{"dynamic", NewDynamic("foo"), "dynamic(foo)"},
		{"dynamic without hint", NewDynamic(""), "dynamic"},
		{"unknown", NewUnknown("no such method"), "unknown(no such method)"},
		{"null", Null, "null"},
		{"union", NewUnion(NewKnown(IntegerName), String()), "java.lang.Integer | java.lang.String"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ty.String())
		})
	}
}

func TestSemanticType_EqualIsStructural(t *testing.T) {
	assert.True(t, NewKnown("X").Equal(NewKnown("X")))
	assert.True(t, NewKnown(ListName, String()).Equal(NewKnown(ListName, NewKnown(StringName))))
	assert.False(t, NewKnown(ListName, String()).Equal(NewKnown(ListName)))
	assert.False(t, NewKnown("X").Equal(NewDynamic("X")))
	assert.True(t, NewArray(NewPrimitive(PrimLong)).Equal(NewArray(NewPrimitive(PrimLong))))
	assert.True(t, Null.Equal(Null))
	assert.True(t, NewPrimitive(PrimVoid).Equal(NewPrimitive(PrimVoid)))
	assert.False(t, SemanticType{}.Equal(Null))
}

func TestNewUnion_ContractViolation(t *testing.T) {
	assert.Panics(t, func() { NewUnion(String()) })
	assert.Panics(t, func() { NewUnion(String(), NewKnown(StringName)) })
	assert.Panics(t, func() { NewUnion() })
}

func TestNewUnion_IsASet(t *testing.T) {
	u := NewUnion(String(), NewKnown(IntegerName), String())
	require.True(t, u.IsUnion())
	assert.Len(t, u.Union().Members(), 2)

	flattened := NewUnion(u, Null)
	assert.Len(t, flattened.Union().Members(), 3)

	assert.True(t, NewUnion(String(), Null).Equal(NewUnion(Null, String())))
}

func TestAccessorsPanicOnWrongKind(t *testing.T) {
	assert.Panics(t, func() { String().Primitive() })
	assert.Panics(t, func() { Null.Known() })
	assert.Panics(t, func() { SemanticType{}.Kind() })
}

func TestPrimitiveKind_Classification(t *testing.T) {
	for _, k := range []PrimitiveKind{PrimByte, PrimShort, PrimInt, PrimLong, PrimChar} {
		assert.True(t, k.IsNumeric(), k.String())
		assert.True(t, k.IsIntegral(), k.String())
		assert.False(t, k.IsFloatingPoint(), k.String())
	}
	for _, k := range []PrimitiveKind{PrimFloat, PrimDouble} {
		assert.True(t, k.IsNumeric(), k.String())
		assert.False(t, k.IsIntegral(), k.String())
		assert.True(t, k.IsFloatingPoint(), k.String())
	}
	for _, k := range []PrimitiveKind{PrimBoolean, PrimVoid} {
		assert.False(t, k.IsNumeric(), k.String())
		assert.False(t, k.IsIntegral(), k.String())
		assert.False(t, k.IsFloatingPoint(), k.String())
	}
}

func TestPrimitiveKind_Boxing(t *testing.T) {
	assert.Equal(t, "java.lang.Integer", PrimInt.BoxedName())
	assert.Equal(t, "java.lang.Character", PrimChar.BoxedName())

	k, ok := UnboxedKind("java.lang.Long")
	require.True(t, ok)
	assert.Equal(t, PrimLong, k)

	_, ok = UnboxedKind(StringName)
	assert.False(t, ok)

	k, ok = ParsePrimitiveKind("double")
	require.True(t, ok)
	assert.Equal(t, PrimDouble, k)

	assert.True(t, NewPrimitive(PrimInt).Boxed().IsNamed(IntegerName))
	assert.True(t, NewKnown(LongName).IsBoxedNumeric())
	assert.False(t, NewKnown(BooleanName).IsBoxedNumeric())
	assert.True(t, NewKnown(BigDecimalName).IsNumericLike())
}
