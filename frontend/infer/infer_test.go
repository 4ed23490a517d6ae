package infer

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gluax-lang/groovyls/frontend/solver"
	"github.com/gluax-lang/groovyls/frontend/types"
)

// Test doubles shaped like the Groovy compiler's expression classes.
type (
	constExpr   struct{ Value any }
	varExpr     struct{ Name string }
	binExpr     struct {
		LeftExpression  any
		Operation       string
		RightExpression any
	}
	ternaryExpr struct{ BooleanExpression, TrueExpression, FalseExpression any }
	elvisExpr   struct{ BooleanExpression, FalseExpression any }
	listExpr    struct{ Expressions []any }
	mapExpr     struct{ MapEntryExpressions []*entryExpr }
	entryExpr   struct{ KeyExpression, ValueExpression any }
	gstringExpr struct {
		Strings []string
		Values  []any
	}
	declExpr struct {
		VariableExpression *varExpr
		RightExpression    any
	}
	closureExpr struct{ Code any }
	callExpr    struct {
		ObjectExpression any
		Method           string
		Operation        string
		Arguments        []any
	}
	propExpr struct {
		ObjectExpression any
		Property         string
	}
	castExpr struct {
		Type       string
		Expression any
	}
)

// argList stands in for the compiler's ArgumentListExpression.
type argList struct{ exprs []any }

func (a argList) GetExpressions() []any { return a.exprs }

type callWithArgList struct {
	ObjectExpression any
	Method           *constExpr
	Arguments        argList
}

func lit(v any) *constExpr { return &constExpr{Value: v} }
func ref(name string) *varExpr { return &varExpr{Name: name} }
func bin(l any, op string, r any) *binExpr {
	return &binExpr{LeftExpression: l, Operation: op, RightExpression: r}
}

type symbols map[string]types.SemanticType

func (s symbols) LookupSymbol(name string, site View, ctx TypeContext) (types.SemanticType, bool) {
	t, ok := s[name]
	return t, ok
}

func newContext(opts ...Option) *SolverContext {
	return NewSolverContext(solver.NewReflectionTypeSolver(true), opts...)
}

func typeOf(t *testing.T, ctx *SolverContext, node any) types.SemanticType {
	t.Helper()
	v, ok := StructuralAdapter{}.View(node)
	require.True(t, ok, "node %T not recognized", node)
	return ctx.CalculateType(v)
}

func TestConstantCalculator(t *testing.T) {
	ctx := newContext()
	tests := []struct {
		value any
		want  string
	}{
		{true, "java.lang.Boolean"},
		{"s", "java.lang.String"},
		{int8(1), "java.lang.Byte"},
		{int16(1), "java.lang.Short"},
		{int32(1), "java.lang.Integer"},
		{1, "java.lang.Integer"},
		{int64(1), "java.lang.Long"},
		{uint16('c'), "java.lang.Character"},
		{float32(1), "java.lang.Float"},
		{1.5, "java.lang.Double"},
		{big.NewInt(1), "java.math.BigInteger"},
		{big.NewFloat(1.5), "java.math.BigDecimal"},
		{nil, "null"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, typeOf(t, ctx, lit(tt.value)).String(), "%T", tt.value)
	}

	v, _ := StructuralAdapter{}.View(lit(struct{}{}))
	_, ok := ConstantCalculator{}.Calculate(v, ctx)
	assert.False(t, ok, "unrecognized values are not typed")
}

func TestCalculators_RejectOtherKinds(t *testing.T) {
	ctx := newContext()
	v, _ := StructuralAdapter{}.View(lit(1))
	for _, c := range DefaultCalculators() {
		if c.Kind() == ConstantKind {
			continue
		}
		_, ok := c.Calculate(v, ctx)
		assert.False(t, ok, "%T", c)
	}
}

func TestVariableCalculator(t *testing.T) {
	ctx := newContext(WithSymbols(symbols{"x": types.String()}))
	assert.Equal(t, "java.lang.String", typeOf(t, ctx, ref("x")).String())

	v, _ := StructuralAdapter{}.View(ref("y"))
	_, ok := VariableCalculator{}.Calculate(v, ctx)
	assert.False(t, ok)
	assert.True(t, ctx.CalculateType(v).IsUnknown(), "the dispatcher falls back to Unknown")
}

func TestBinaryCalculator(t *testing.T) {
	ctx := newContext(WithSymbols(symbols{
		"i": types.NewPrimitive(types.PrimInt),
		"s": types.String(),
		"d": types.NewDynamic("d"),
	}))
	tests := []struct {
		name string
		node any
		want string
	}{
		{"string concat right", bin(lit(1), "+", lit("a")), "java.lang.String"},
		{"string concat left", bin(ref("s"), "+", lit(1)), "java.lang.String"},
		{"string multiply", bin(lit("ab"), "*", lit(3)), "java.lang.String"},
		{"string minus", bin(ref("s"), "-", lit("b")), "java.lang.String"},
		{"string div", bin(lit("abc"), "/", lit(2)), "dynamic(div)"},
		{"string power", bin(lit("a"), "**", lit(2)), "dynamic(power)"},
		{"int plus long", bin(lit(1), "+", lit(int64(2))), "java.lang.Long"},
		{"boxed promotion", bin(lit(1), "*", lit(2.0)), "java.lang.Double"},
		{"primitive promotion", bin(ref("i"), "-", ref("i")), "int"},
		{"big decimal", bin(lit(1), "+", lit(big.NewFloat(1))), "java.math.BigDecimal"},
		{"equality", bin(lit(1), "==", lit("a")), "java.lang.Boolean"},
		{"comparison", bin(lit(1), "<=", lit(2)), "java.lang.Boolean"},
		{"logical", bin(lit(true), "&&", lit(false)), "java.lang.Boolean"},
		{"find", bin(lit("abc"), "=~", lit("b")), "java.lang.Boolean"},
		{"match", bin(lit("abc"), "==~", lit("a.c")), "java.lang.Boolean"},
		{"membership", bin(lit(1), "in", &listExpr{}), "java.lang.Boolean"},
		{"spaceship", bin(lit(int64(1)), "<=>", lit(2)), "java.lang.Long"},
		{"compound assignment", bin(ref("i"), "+=", lit(int64(1))), "java.lang.Long"},
		{"assignment", bin(ref("s"), "=", lit(1)), "java.lang.Integer"},
		{"int range", bin(lit(1), "..", lit(5)), "groovy.lang.IntRange"},
		{"long range", bin(lit(int64(1)), "..<", lit(int64(5))), "groovy.lang.Range<java.lang.Long>"},
		{"subscript", bin(&listExpr{Expressions: []any{lit("a")}}, "[", lit(0)), "java.lang.String"},
		{"bitwise boolean", bin(lit(true), "|", lit(false)), "java.lang.Boolean"},
		{"shift", bin(ref("i"), "<<", lit(2)), "int"},
		{"list append", bin(&listExpr{Expressions: []any{lit(1)}}, "<<", lit(2)), "java.util.List<java.lang.Integer>"},
		{"dynamic operand", bin(ref("d"), "+", lit(1)), "dynamic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, typeOf(t, ctx, tt.node).String())
		})
	}
}

func TestBinaryCalculator_OperatorMethodStatic(t *testing.T) {
	static := newContext(WithStaticCompilation(true))
	got := typeOf(t, static, bin(lit(true), "-", lit(1)))
	assert.True(t, got.IsUnknown(), got.String())

	got = typeOf(t, static, bin(lit("abc"), "/", lit(2)))
	assert.True(t, got.IsUnknown(), got.String())

	dynamic := newContext()
	got = typeOf(t, dynamic, bin(lit(true), "-", lit(1)))
	assert.Equal(t, "dynamic(minus)", got.String())
}

func TestTernaryAndElvis(t *testing.T) {
	ctx := newContext(WithSymbols(symbols{"s": types.String(), "g": types.GString()}))

	got := typeOf(t, ctx, &ternaryExpr{BooleanExpression: lit(true), TrueExpression: ref("s"), FalseExpression: ref("g")})
	assert.Equal(t, "java.lang.String", got.String())

	got = typeOf(t, ctx, &ternaryExpr{BooleanExpression: lit(true), TrueExpression: lit(nil), FalseExpression: lit(1)})
	assert.Equal(t, "java.lang.Integer", got.String())

	got = typeOf(t, ctx, &elvisExpr{BooleanExpression: ref("s"), FalseExpression: lit("default")})
	assert.Equal(t, "java.lang.String", got.String())

	v, _ := StructuralAdapter{}.View(&ternaryExpr{BooleanExpression: lit(true), TrueExpression: lit(1)})
	_, ok := TernaryCalculator{}.Calculate(v, ctx)
	assert.False(t, ok, "missing false branch")

	v, _ = StructuralAdapter{}.View(&elvisExpr{FalseExpression: lit(1)})
	_, ok = ElvisCalculator{}.Calculate(v, ctx)
	assert.False(t, ok, "missing tested expression")
}

func TestListAndMap(t *testing.T) {
	ctx := newContext()

	assert.Equal(t, "java.util.List<java.lang.Object>", typeOf(t, ctx, &listExpr{}).String())
	assert.Equal(t, "java.util.Map<java.lang.Object, java.lang.Object>", typeOf(t, ctx, &mapExpr{}).String())

	got := typeOf(t, ctx, &listExpr{Expressions: []any{lit(1), nil, lit(2)}})
	assert.Equal(t, "java.util.List<java.lang.Integer>", got.String())

	got = typeOf(t, ctx, &listExpr{Expressions: []any{lit(nil)}})
	assert.Equal(t, "java.util.List<java.lang.Object>", got.String())

	got = typeOf(t, ctx, &listExpr{Expressions: []any{lit("a"), lit(1)}})
	assert.Equal(t, "java.util.List<java.lang.Comparable>", got.String())

	got = typeOf(t, ctx, &mapExpr{MapEntryExpressions: []*entryExpr{
		{KeyExpression: lit("a"), ValueExpression: lit(1)},
		{KeyExpression: lit("b"), ValueExpression: lit(2.5)},
	}})
	assert.Equal(t, "java.util.Map<java.lang.String, java.lang.Number>", got.String())
}

func TestGString(t *testing.T) {
	ctx := newContext()
	got := typeOf(t, ctx, &gstringExpr{Strings: []string{"a ", ""}, Values: []any{lit(1)}})
	assert.Equal(t, "groovy.lang.GString", got.String())
}

func TestDeclarationAndClosure(t *testing.T) {
	ctx := newContext()
	got := typeOf(t, ctx, &declExpr{VariableExpression: ref("x"), RightExpression: &listExpr{Expressions: []any{lit("a")}}})
	assert.Equal(t, "java.util.List<java.lang.String>", got.String())

	got = typeOf(t, ctx, &declExpr{VariableExpression: ref("x")})
	assert.True(t, got.IsNull())

	got = typeOf(t, ctx, &closureExpr{Code: struct{}{}})
	assert.Equal(t, "groovy.lang.Closure", got.String())
}

func TestMethodCallAndProperty(t *testing.T) {
	strings := &listExpr{Expressions: []any{lit("a"), lit("b")}}
	ctx := newContext(WithStaticCompilation(true), WithSymbols(symbols{
		"this": types.NewKnown("groovy.lang.Script"),
	}))
	tests := []struct {
		name string
		node any
		want string
	}{
		{"string method", &callExpr{ObjectExpression: lit("abc"), Method: "toUpperCase"}, "java.lang.String"},
		{"generic return", &callExpr{ObjectExpression: strings, Method: "get", Arguments: []any{lit(0)}}, "java.lang.String"},
		{"argument list node", &callWithArgList{ObjectExpression: strings, Method: lit("get"), Arguments: argList{exprs: []any{lit(0)}}}, "java.lang.String"},
		{"implicit this", &callExpr{Method: "run"}, "java.lang.Object"},
		{"spread call", &callExpr{ObjectExpression: strings, Method: "length", Operation: "*."}, "java.util.List<java.lang.Integer>"},
		{"getter property", &propExpr{ObjectExpression: lit("abc"), Property: "empty"}, "boolean"},
		{"static field", &propExpr{ObjectExpression: &castExpr{Type: "Integer", Expression: lit(1)}, Property: "MAX_VALUE"}, "int"},
		{"map property", &propExpr{ObjectExpression: &mapExpr{MapEntryExpressions: []*entryExpr{{KeyExpression: lit("a"), ValueExpression: lit(1)}}}, Property: "a"}, "java.lang.Integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, typeOf(t, ctx, tt.node).String())
		})
	}

	got := typeOf(t, ctx, &callExpr{ObjectExpression: lit("abc"), Method: "frobnicate"})
	assert.True(t, got.IsUnknown(), got.String())

	dyn := newContext()
	got = typeOf(t, dyn, &callExpr{ObjectExpression: lit("abc"), Method: "frobnicate"})
	assert.Equal(t, "dynamic(frobnicate)", got.String())
}

func TestResolveType(t *testing.T) {
	ctx := newContext(WithImports([]string{"java.util.concurrent."}))
	tests := map[string]string{
		"List<String>":               "java.util.List<java.lang.String>",
		"java.util.Map<String, int>": "java.util.Map<java.lang.String, int>",
		"int[]":                      "int[]",
		"ArrayList<>":                "java.util.ArrayList",
		"def":                        "dynamic",
		"Widget":                     "unknown(unresolved type Widget)",
		"List<":                      `unknown(malformed type "List<")`,
	}
	for in, want := range tests {
		assert.Equal(t, want, ctx.ResolveType(in).String(), in)
	}
}

func TestCalculateType_DepthGuard(t *testing.T) {
	ctx := newContext()
	var node any = lit(1)
	for range maxCalculationDepth + 10 {
		node = bin(node, "+", lit(1))
	}
	assert.NotPanics(t, func() {
		got := typeOf(t, ctx, node)
		assert.True(t, got.IsUnknown(), got.String())
	})
}

func TestStructuralAdapter_UnknownShape(t *testing.T) {
	_, ok := StructuralAdapter{}.View(struct{ Foo int }{})
	assert.False(t, ok)
	_, ok = StructuralAdapter{}.View(nil)
	assert.False(t, ok)
}
