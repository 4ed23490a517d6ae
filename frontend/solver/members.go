package solver

import (
	"unicode"
	"unicode/utf8"

	"github.com/gluax-lang/groovyls/frontend/types"
)

// Ancestor is a supertype of some type, with the type arguments it has when
// viewed from that type.
type Ancestor struct {
	Type  types.SemanticType // always Known
	Decl  ResolvedTypeDeclaration
	Depth int
	// Raw means the type arguments could not be determined, or would
	// refer back to the starting type itself (Comparable<String> seen from
	// String), and were dropped.
	Raw bool
}

// Ancestors lists t itself followed by all its supertypes, breadth first,
// each name once. Classes the solver cannot find contribute no supertypes.
// java.lang.Object is always present. t must be Known.
func Ancestors(ts TypeSolver, t types.SemanticType) []Ancestor {
	k := t.Known()
	ts = Root(ts)

	start := Ancestor{Type: t}
	if ref := ts.TryToSolveType(k.FQN); ref.IsSolved() {
		start.Decl = ref.Declaration()
		if len(k.TypeArgs) != len(start.Decl.TypeParameters()) {
			start.Raw = len(start.Decl.TypeParameters()) > 0
			start.Type = types.NewKnown(k.FQN)
		}
	}

	out := []Ancestor{start}
	seen := map[string]struct{}{k.FQN: {}}
	maxDepth := 0
	for i := 0; i < len(out); i++ {
		cur := out[i]
		if cur.Decl == nil {
			continue
		}
		var b Bindings
		if cur.Raw {
			b = Bind(cur.Decl.TypeParameters(), nil)
		} else {
			b = Bind(cur.Decl.TypeParameters(), cur.Type.Known().TypeArgs)
		}
		for _, sup := range cur.Decl.DirectSupertypes() {
			if _, ok := seen[sup.Name]; ok {
				continue
			}
			seen[sup.Name] = struct{}{}
			st, complete := sup.Substitute(b)
			if !st.IsKnown() {
				continue
			}
			raw := !complete || refersTo(st.Known().TypeArgs, k.FQN)
			if raw {
				st = types.NewKnown(sup.Name)
			}
			a := Ancestor{Type: st, Depth: cur.Depth + 1, Raw: raw && len(sup.Args) > 0}
			if ref := ts.TryToSolveType(sup.Name); ref.IsSolved() {
				a.Decl = ref.Declaration()
			}
			maxDepth = max(maxDepth, a.Depth)
			out = append(out, a)
		}
	}

	if _, ok := seen[types.ObjectName]; !ok {
		a := Ancestor{Type: types.Object(), Depth: maxDepth + 1}
		if ref := ts.TryToSolveType(types.ObjectName); ref.IsSolved() {
			a.Decl = ref.Declaration()
		}
		out = append(out, a)
	}
	return out
}

func refersTo(args []types.SemanticType, fqn string) bool {
	for _, a := range args {
		switch {
		case a.IsKnown():
			if a.Known().FQN == fqn || refersTo(a.Known().TypeArgs, fqn) {
				return true
			}
		case a.IsArray():
			if refersTo([]types.SemanticType{a.Array().Elem}, fqn) {
				return true
			}
		}
	}
	return false
}

// AncestorView returns the view of t as the supertype named fqn, e.g.
// ArrayList<String> as List<String>.
func AncestorView(ts TypeSolver, t types.SemanticType, fqn string) (Ancestor, bool) {
	if t.IsPrimitive() {
		t = t.Boxed()
	}
	if !t.IsKnown() {
		return Ancestor{}, false
	}
	for _, a := range Ancestors(ts, t) {
		if a.Type.Known().FQN == fqn {
			return a, true
		}
	}
	return Ancestor{}, false
}

func (a Ancestor) bindings() Bindings {
	if a.Decl == nil {
		return Bindings{}
	}
	if a.Raw {
		return Bind(a.Decl.TypeParameters(), nil)
	}
	return Bind(a.Decl.TypeParameters(), a.Type.Known().TypeArgs)
}

// Method is a method found by member lookup.
type Method struct {
	Owner  ResolvedTypeDeclaration
	Info   MethodInfo
	Return types.SemanticType
}

// LookupMethod finds a method called name on receiver or its supertypes
// that takes len(args) arguments. A method whose parameters accept the
// argument types is preferred over one that merely has the right arity.
func LookupMethod(ts TypeSolver, receiver types.SemanticType, name string, args []types.SemanticType) (Method, bool) {
	if receiver.IsPrimitive() {
		receiver = receiver.Boxed()
	}
	if receiver.IsNull() || receiver.IsArray() {
		receiver = types.Object()
	}
	if !receiver.IsKnown() {
		return Method{}, false
	}

	var fallback Method
	found := false
	for _, anc := range Ancestors(ts, receiver) {
		cd, ok := anc.Decl.(*ResolvedClassDeclaration)
		if !ok {
			continue
		}
		b := anc.bindings()
		for _, m := range cd.MethodsNamed(name, len(args)) {
			mb := b.With(m.TypeParams)
			candidate := Method{Owner: cd, Info: m, Return: m.ReturnRef().ToType(mb)}
			if acceptsAll(ts, m.ParamRefs(), mb, args) {
				return candidate, true
			}
			if !found {
				fallback, found = candidate, true
			}
		}
	}
	return fallback, found
}

func acceptsAll(ts TypeSolver, params []TypeRef, b Bindings, args []types.SemanticType) bool {
	for i, p := range params {
		if !IsAssignable(ts, p.ToType(b), args[i]) {
			return false
		}
	}
	return true
}

// Field is a field or property found by member lookup.
type Field struct {
	Owner ResolvedTypeDeclaration
	Info  FieldInfo
	Type  types.SemanticType
	// Getter is set when the property was found through an accessor method.
	Getter *MethodInfo
}

// LookupField finds the field or property called name on receiver. Map
// receivers answer every property with their value type, arrays have
// length, and a property without a field falls back to its getX or isX
// accessor.
func LookupField(ts TypeSolver, receiver types.SemanticType, name string) (Field, bool) {
	if receiver.IsArray() {
		if name == "length" {
			return Field{Type: types.NewPrimitive(types.PrimInt)}, true
		}
		return Field{}, false
	}
	if receiver.IsPrimitive() {
		receiver = receiver.Boxed()
	}
	if !receiver.IsKnown() {
		return Field{}, false
	}

	ancestors := Ancestors(ts, receiver)
	for _, anc := range ancestors {
		if anc.Type.Known().FQN != types.MapName {
			continue
		}
		if anc.Raw || len(anc.Type.Known().TypeArgs) != 2 {
			return Field{Owner: anc.Decl, Type: types.Object()}, true
		}
		return Field{Owner: anc.Decl, Type: anc.Type.Known().TypeArgs[1]}, true
	}

	for _, anc := range ancestors {
		cd, ok := anc.Decl.(*ResolvedClassDeclaration)
		if !ok {
			continue
		}
		if f, ok := cd.Field(name); ok {
			return Field{Owner: cd, Info: f, Type: f.TypeRef().ToType(anc.bindings())}, true
		}
	}

	if name == "" {
		return Field{}, false
	}
	r, size := utf8.DecodeRuneInString(name)
	capitalized := string(unicode.ToUpper(r)) + name[size:]
	if m, ok := LookupMethod(ts, receiver, "get"+capitalized, nil); ok {
		return Field{Owner: m.Owner, Type: m.Return, Getter: &m.Info}, true
	}
	if m, ok := LookupMethod(ts, receiver, "is"+capitalized, nil); ok &&
		(m.Return.IsPrimitiveOf(types.PrimBoolean) || m.Return.IsNamed(types.BooleanName)) {
		return Field{Owner: m.Owner, Type: m.Return, Getter: &m.Info}, true
	}
	return Field{}, false
}

var wideningRank = map[types.PrimitiveKind]int{
	types.PrimByte:   1,
	types.PrimShort:  2,
	types.PrimChar:   2,
	types.PrimInt:    3,
	types.PrimLong:   4,
	types.PrimFloat:  5,
	types.PrimDouble: 6,
}

// IsAssignable reports whether a value of type value may be passed where
// target is expected, allowing boxing and primitive widening. Dynamic and
// Unknown values are assumed to fit.
func IsAssignable(ts TypeSolver, target, value types.SemanticType) bool {
	switch {
	case value.IsDynamic() || value.IsUnknown():
		return true
	case target.IsDynamic():
		return true
	case value.IsNull():
		return !target.IsPrimitive()
	case target.IsNamed(types.ObjectName):
		return !value.IsVoid()
	case target.Equal(value):
		return true
	case value.IsUnion():
		for _, m := range value.Union().Members() {
			if !IsAssignable(ts, target, m) {
				return false
			}
		}
		return true
	}

	tk, tPrim := unboxedKind(target)
	vk, vPrim := unboxedKind(value)
	if tPrim && vPrim {
		if tk == vk {
			return true
		}
		tr, tok := wideningRank[tk]
		vr, vok := wideningRank[vk]
		return tok && vok && vr <= tr && !(vk == types.PrimChar && tk == types.PrimShort)
	}
	if target.IsPrimitive() {
		return false
	}
	if value.IsPrimitive() {
		value = value.Boxed()
	}

	if target.IsArray() || value.IsArray() {
		return target.IsArray() && value.IsArray() &&
			IsAssignable(ts, target.Array().Elem, value.Array().Elem)
	}
	if !target.IsKnown() || !value.IsKnown() {
		return false
	}
	tref := Root(ts).TryToSolveType(target.Known().FQN)
	vref := Root(ts).TryToSolveType(value.Known().FQN)
	if !tref.IsSolved() || !vref.IsSolved() {
		return target.Known().FQN == value.Known().FQN
	}
	return tref.Declaration().IsAssignableBy(vref.Declaration())
}

func unboxedKind(t types.SemanticType) (types.PrimitiveKind, bool) {
	if t.IsPrimitive() {
		return t.Primitive().Kind, true
	}
	if t.IsKnown() {
		return types.UnboxedKind(t.Known().FQN)
	}
	return 0, false
}
