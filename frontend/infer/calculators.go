package infer

import (
	"math/big"
	"strings"

	"github.com/gluax-lang/groovyls/frontend/types"
)

// Calculator computes the type of one kind of node. It reports false when
// the node is not of its kind or lacks a part it needs, so a dispatcher can
// try the next calculator.
type Calculator interface {
	// Kind is the node kind handled, or 0 for a calculator that probes
	// nodes of any kind.
	Kind() NodeKind
	Calculate(v View, ctx TypeContext) (types.SemanticType, bool)
}

var none = types.SemanticType{}

type ConstantCalculator struct{}

func (ConstantCalculator) Kind() NodeKind { return ConstantKind }

func (ConstantCalculator) Calculate(v View, ctx TypeContext) (types.SemanticType, bool) {
	if v.Kind() != ConstantKind {
		return none, false
	}
	val, ok := v.Value()
	if !ok {
		return none, false
	}
	return constantType(val)
}

// constantType maps a literal's runtime value to its boxed type.
func constantType(val any) (types.SemanticType, bool) {
	switch val.(type) {
	case nil:
		return types.Null, true
	case bool:
		return types.Boolean(), true
	case string:
		return types.String(), true
	case int8:
		return types.NewKnown(types.ByteName), true
	case int16:
		return types.NewKnown(types.ShortName), true
	case int32, int:
		return types.NewKnown(types.IntegerName), true
	case int64:
		return types.NewKnown(types.LongName), true
	case uint16:
		return types.NewKnown(types.CharacterName), true
	case float32:
		return types.NewKnown(types.FloatName), true
	case float64:
		return types.NewKnown(types.DoubleName), true
	case *big.Int:
		return types.NewKnown(types.BigIntegerName), true
	case *big.Float, *big.Rat:
		return types.NewKnown(types.BigDecimalName), true
	default:
		return none, false
	}
}

type VariableCalculator struct{}

func (VariableCalculator) Kind() NodeKind { return VariableKind }

func (VariableCalculator) Calculate(v View, ctx TypeContext) (types.SemanticType, bool) {
	if v.Kind() != VariableKind {
		return none, false
	}
	name, ok := v.Name()
	if !ok {
		return none, false
	}
	return ctx.LookupSymbol(name, v)
}

type BinaryCalculator struct{}

func (BinaryCalculator) Kind() NodeKind { return BinaryKind }

func (BinaryCalculator) Calculate(v View, ctx TypeContext) (types.SemanticType, bool) {
	if v.Kind() != BinaryKind {
		return none, false
	}
	op, ok := v.Operator()
	if !ok {
		return none, false
	}
	left, lok := v.Child(RoleLeft)
	right, rok := v.Child(RoleRight)
	if !lok || !rok {
		return none, false
	}
	return binaryType(strings.TrimSpace(op), ctx.CalculateType(left), ctx.CalculateType(right), ctx), true
}

var operatorMethods = map[string]string{
	"+":   "plus",
	"-":   "minus",
	"*":   "multiply",
	"/":   "div",
	"**":  "power",
	"%":   "mod",
	"&":   "and",
	"|":   "or",
	"^":   "xor",
	"<<":  "leftShift",
	">>":  "rightShift",
	">>>": "rightShiftUnsigned",
	"[":   "getAt",
}

func binaryType(op string, lt, rt types.SemanticType, ctx TypeContext) types.SemanticType {
	switch op {
	case "==", "!=", "===", "!==", "<", ">", "<=", ">=",
		"&&", "||", "=~", "==~", "in", "!in", "instanceof", "!instanceof":
		return types.Boolean()
	case "<=>":
		if lt.IsNumericLike() {
			return lt
		}
		return types.NewPrimitive(types.PrimInt)
	case "=":
		return rt
	case "..", "..<":
		return rangeType(lt, rt, ctx)
	case "[", "?[":
		if lt.IsArray() {
			return lt.Array().Elem
		}
		return operatorCall("[", lt, rt, ctx)
	case "+", "-", "*", "/", "**", "%":
		return arithmeticType(op, lt, rt, ctx)
	case "&", "|", "^":
		if isBooleanLike(lt) && isBooleanLike(rt) {
			return types.Boolean()
		}
		if isIntegralLike(lt) && isIntegralLike(rt) {
			return promote(lt, rt, ctx)
		}
		return operatorCall(op, lt, rt, ctx)
	case "<<", ">>", ">>>":
		if isIntegralLike(lt) && isIntegralLike(rt) {
			return lt
		}
		return operatorCall(op, lt, rt, ctx)
	}
	if base, ok := strings.CutSuffix(op, "="); ok && base != "" {
		// compound assignment: x += y has the type of x + y
		return binaryType(base, lt, rt, ctx)
	}
	return types.NewUnknownf("unsupported operator %s", op)
}

func arithmeticType(op string, lt, rt types.SemanticType, ctx TypeContext) types.SemanticType {
	switch {
	case op == "+" && (lt.IsStringLike() || rt.IsStringLike()):
		return types.String()
	case (op == "-" || op == "*") && lt.IsStringLike():
		// String minus and multiply
		return types.String()
	case lt.IsNumericLike() && rt.IsNumericLike():
		return promote(lt, rt, ctx)
	}
	return operatorCall(op, lt, rt, ctx)
}

// promote applies numeric promotion to two operands. Wrappers are
// unboxed for the join and the result is boxed again if either operand
// was, so Integer + Double is Double rather than Number.
func promote(lt, rt types.SemanticType, ctx TypeContext) types.SemanticType {
	t := ctx.Lub(unbox(lt), unbox(rt))
	if t.IsPrimitive() && (!lt.IsPrimitive() || !rt.IsPrimitive()) {
		return t.Boxed()
	}
	return t
}

func unbox(t types.SemanticType) types.SemanticType {
	if t.IsKnown() {
		if k, ok := types.UnboxedKind(t.Known().FQN); ok {
			return types.NewPrimitive(k)
		}
	}
	return t
}

// operatorCall types an operator through its method on the left operand,
// as Groovy dispatches a + b to a.plus(b).
func operatorCall(op string, lt, rt types.SemanticType, ctx TypeContext) types.SemanticType {
	switch {
	case lt.IsUnknown():
		return lt
	case rt.IsUnknown():
		return rt
	case lt.IsDynamic() || rt.IsDynamic():
		return types.NewDynamic("")
	}
	method := operatorMethods[op]
	if t, ok := ctx.MethodReturnType(lt, method, []types.SemanticType{rt}); ok {
		return t
	}
	return types.NewUnknownf("no operator %s for %s and %s", op, lt, rt)
}

func rangeType(lt, rt types.SemanticType, ctx TypeContext) types.SemanticType {
	bound := ctx.Lub(lt, rt)
	if bound.IsNull() || bound.IsUnknown() || bound.IsDynamic() {
		return types.NewKnown("groovy.lang.Range")
	}
	bound = bound.Boxed()
	if bound.IsNamed(types.IntegerName) {
		return types.NewKnown("groovy.lang.IntRange")
	}
	return types.NewKnown("groovy.lang.Range", bound)
}

func isBooleanLike(t types.SemanticType) bool {
	return t.IsPrimitiveOf(types.PrimBoolean) || t.IsNamed(types.BooleanName)
}

func isIntegralLike(t types.SemanticType) bool {
	if t.IsPrimitive() {
		return t.Primitive().Kind.IsIntegral()
	}
	if t.IsNamed(types.BigIntegerName) {
		return true
	}
	if t.IsKnown() {
		k, ok := types.UnboxedKind(t.Known().FQN)
		return ok && k.IsIntegral()
	}
	return false
}

type TernaryCalculator struct{}

func (TernaryCalculator) Kind() NodeKind { return TernaryKind }

func (TernaryCalculator) Calculate(v View, ctx TypeContext) (types.SemanticType, bool) {
	if v.Kind() != TernaryKind {
		return none, false
	}
	return lubOfBranches(v, RoleTrue, RoleFalse, ctx)
}

// ElvisCalculator handles a ?: b, whose value is a when a is truthy.
type ElvisCalculator struct{}

func (ElvisCalculator) Kind() NodeKind { return ElvisKind }

func (ElvisCalculator) Calculate(v View, ctx TypeContext) (types.SemanticType, bool) {
	if v.Kind() != ElvisKind {
		return none, false
	}
	return lubOfBranches(v, RoleCondition, RoleFalse, ctx)
}

func lubOfBranches(v View, a, b Role, ctx TypeContext) (types.SemanticType, bool) {
	first, ok := v.Child(a)
	if !ok {
		return none, false
	}
	second, ok := v.Child(b)
	if !ok {
		return none, false
	}
	return ctx.Lub(ctx.CalculateType(first), ctx.CalculateType(second)), true
}

type ListCalculator struct{}

func (ListCalculator) Kind() NodeKind { return ListKind }

func (ListCalculator) Calculate(v View, ctx TypeContext) (types.SemanticType, bool) {
	if v.Kind() != ListKind {
		return none, false
	}
	elems, ok := v.Children(RoleElements)
	if !ok {
		return none, false
	}
	return types.NewKnown(types.ListLiteralName, elementType(elems, ctx)), true
}

type MapCalculator struct{}

func (MapCalculator) Kind() NodeKind { return MapKind }

func (MapCalculator) Calculate(v View, ctx TypeContext) (types.SemanticType, bool) {
	if v.Kind() != MapKind {
		return none, false
	}
	entries, ok := v.Children(RoleEntries)
	if !ok {
		return none, false
	}
	var keys, values []View
	for _, e := range entries {
		k, kok := e.Child(RoleKey)
		val, vok := e.Child(RoleValue)
		if !kok || !vok {
			continue
		}
		keys = append(keys, k)
		values = append(values, val)
	}
	return types.NewKnown(types.MapLiteralName, elementType(keys, ctx), elementType(values, ctx)), true
}

// elementType joins the types of nodes for use as a type argument: empty
// and all-null inputs give Object, primitives are boxed.
func elementType(nodes []View, ctx TypeContext) types.SemanticType {
	if len(nodes) == 0 {
		return types.Object()
	}
	ts := make([]types.SemanticType, len(nodes))
	for i, n := range nodes {
		ts[i] = ctx.CalculateType(n)
	}
	t := ctx.Lub(ts...)
	if t.IsNull() {
		return types.Object()
	}
	return t.Boxed()
}

type GStringCalculator struct{}

func (GStringCalculator) Kind() NodeKind { return GStringKind }

func (GStringCalculator) Calculate(v View, ctx TypeContext) (types.SemanticType, bool) {
	if _, ok := v.Children(RoleStrings); !ok {
		return none, false
	}
	if _, ok := v.Children(RoleValues); !ok {
		return none, false
	}
	return types.GString(), true
}

// DeclarationCalculator types `def x = e` and `T x = e` by e.
type DeclarationCalculator struct{}

func (DeclarationCalculator) Kind() NodeKind { return DeclarationKind }

func (DeclarationCalculator) Calculate(v View, ctx TypeContext) (types.SemanticType, bool) {
	if v.Kind() != DeclarationKind {
		return none, false
	}
	init, ok := v.Child(RoleInitializer)
	if !ok {
		return types.Null, true
	}
	return ctx.CalculateType(init), true
}

type ClosureCalculator struct{}

func (ClosureCalculator) Kind() NodeKind { return ClosureKind }

func (ClosureCalculator) Calculate(v View, ctx TypeContext) (types.SemanticType, bool) {
	if v.Kind() != ClosureKind {
		return none, false
	}
	return types.Closure(), true
}

// MethodCallCalculator leaves member lookup to the context. Calls without
// a receiver go to "this".
type MethodCallCalculator struct{}

func (MethodCallCalculator) Kind() NodeKind { return MethodCallKind }

func (MethodCallCalculator) Calculate(v View, ctx TypeContext) (types.SemanticType, bool) {
	if v.Kind() != MethodCallKind {
		return none, false
	}
	name, ok := v.Name()
	if !ok {
		return none, false
	}
	receiver := receiverType(v, ctx)
	argNodes, _ := v.Children(RoleArguments)
	args := make([]types.SemanticType, len(argNodes))
	for i, a := range argNodes {
		args[i] = ctx.CalculateType(a)
	}

	if op, _ := v.Operator(); op == "*." {
		return spread(receiver, ctx, func(elem types.SemanticType) (types.SemanticType, bool) {
			return ctx.MethodReturnType(elem, name, args)
		}), true
	}
	if t, ok := ctx.MethodReturnType(receiver, name, args); ok {
		return t, true
	}
	return types.NewUnknownf("cannot resolve method %s on %s", name, receiver), true
}

func receiverType(v View, ctx TypeContext) types.SemanticType {
	if recv, ok := v.Child(RoleReceiver); ok {
		return ctx.CalculateType(recv)
	}
	if t, ok := ctx.LookupSymbol("this", v); ok {
		return t
	}
	return types.NewDynamic("this")
}

// spread types a*.m as a list of m applied to each element of a. The
// element type comes from the receiver's iterator.
func spread(receiver types.SemanticType, ctx TypeContext, member func(types.SemanticType) (types.SemanticType, bool)) types.SemanticType {
	elem := types.NewDynamic("")
	if it, ok := ctx.MethodReturnType(receiver, "iterator", nil); ok {
		if next, ok := ctx.MethodReturnType(it, "next", nil); ok {
			elem = next
		}
	}
	t, ok := member(elem)
	if !ok {
		return types.NewUnknown("cannot resolve spread member")
	}
	if t.IsUnknown() {
		return t
	}
	return types.NewKnown(types.ListName, t.Boxed())
}

type PropertyCalculator struct{}

func (PropertyCalculator) Kind() NodeKind { return PropertyKind }

func (PropertyCalculator) Calculate(v View, ctx TypeContext) (types.SemanticType, bool) {
	if v.Kind() != PropertyKind {
		return none, false
	}
	name, ok := v.Name()
	if !ok {
		return none, false
	}
	recvNode, ok := v.Child(RoleReceiver)
	if !ok {
		return none, false
	}
	receiver := ctx.CalculateType(recvNode)

	if op, _ := v.Operator(); op == "*." {
		return spread(receiver, ctx, func(elem types.SemanticType) (types.SemanticType, bool) {
			return ctx.FieldType(elem, name)
		}), true
	}
	if t, ok := ctx.FieldType(receiver, name); ok {
		return t, true
	}
	return types.NewUnknownf("cannot resolve property %s on %s", name, receiver), true
}

// TypeNameCalculator types casts and constructor calls by the written type.
type TypeNameCalculator struct {
	kind NodeKind
}

func (c TypeNameCalculator) Kind() NodeKind { return c.kind }

func (c TypeNameCalculator) Calculate(v View, ctx TypeContext) (types.SemanticType, bool) {
	if v.Kind() != c.kind {
		return none, false
	}
	name, ok := v.TypeName()
	if !ok {
		return none, false
	}
	return ctx.ResolveType(name), true
}

type NotCalculator struct{}

func (NotCalculator) Kind() NodeKind { return NotKind }

func (NotCalculator) Calculate(v View, ctx TypeContext) (types.SemanticType, bool) {
	if v.Kind() != NotKind {
		return none, false
	}
	return types.Boolean(), true
}

// UnaryCalculator covers -x, +x, ~x and the increments, all of which keep
// the operand's type.
type UnaryCalculator struct{}

func (UnaryCalculator) Kind() NodeKind { return UnaryKind }

func (UnaryCalculator) Calculate(v View, ctx TypeContext) (types.SemanticType, bool) {
	if v.Kind() != UnaryKind {
		return none, false
	}
	operand, ok := v.Child(RoleOperand)
	if !ok {
		return none, false
	}
	return ctx.CalculateType(operand), true
}
