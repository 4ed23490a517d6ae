// Package lub computes least upper bounds of inferred types: numeric
// promotion for primitives and their wrappers, and a ranked common-ancestor
// search for reference types.
package lub

import (
	"cmp"
	"slices"

	"github.com/gluax-lang/groovyls/frontend/solver"
	"github.com/gluax-lang/groovyls/frontend/types"
)

// Type arguments nested deeper than this are dropped from the result.
const maxArgDepth = 4

// TypeLub is stateless apart from the solver it walks ancestors with, and
// is safe for concurrent use when the solver is.
type TypeLub struct {
	ts solver.TypeSolver
}

func New(ts solver.TypeSolver) *TypeLub {
	return &TypeLub{ts: ts}
}

// Lub returns the least upper bound of ts. An empty input is a caller bug
// and panics.
func (l *TypeLub) Lub(ts ...types.SemanticType) types.SemanticType {
	if len(ts) == 0 {
		panic("lub of an empty type list")
	}
	for _, t := range ts {
		if !t.IsValid() {
			panic("lub of an invalid type")
		}
	}
	return l.lub(ts, 0)
}

func (l *TypeLub) lub(ts []types.SemanticType, depth int) types.SemanticType {
	nonNull := make([]types.SemanticType, 0, len(ts))
	for _, t := range ts {
		if !t.IsNull() {
			nonNull = append(nonNull, t)
		}
	}
	if len(nonNull) == 0 {
		return types.Null
	}
	if allEqual(nonNull) {
		return nonNull[0]
	}

	for _, t := range nonNull {
		if t.IsUnknown() {
			return t
		}
	}
	for _, t := range nonNull {
		if t.IsDynamic() {
			return t
		}
	}
	for _, t := range nonNull {
		if t.IsVoid() || t.IsUnion() {
			return types.Object()
		}
	}

	if t, ok := numericLub(nonNull); ok {
		return t
	}
	if booleanWithNumber(nonNull) {
		return types.Object()
	}

	allPrimitive, allStringLike, allArrays := true, true, true
	for _, t := range nonNull {
		allPrimitive = allPrimitive && t.IsPrimitive()
		allStringLike = allStringLike && t.IsStringLike()
		allArrays = allArrays && t.IsArray()
	}
	switch {
	case allPrimitive:
		// boolean with a number, or char with boolean: no promotion exists
		return types.Object()
	case allStringLike:
		return types.String()
	case allArrays:
		return l.arrayLub(nonNull, depth)
	}

	boxed := make([]types.SemanticType, len(nonNull))
	for i, t := range nonNull {
		boxed[i] = t.Boxed()
		if !boxed[i].IsKnown() {
			return types.Object()
		}
	}
	return l.referenceLub(boxed, depth)
}

func allEqual(ts []types.SemanticType) bool {
	for _, t := range ts[1:] {
		if !t.Equal(ts[0]) {
			return false
		}
	}
	return true
}

// booleanWithNumber reports inputs that mix booleans with numbers around an
// unboxed primitive. No promotion exists between the two, so the wrapper
// of either side does not change the answer.
func booleanWithNumber(ts []types.SemanticType) bool {
	var anchored, boolean, number bool
	for _, t := range ts {
		anchored = anchored || t.IsPrimitive()
		boolean = boolean || t.IsPrimitiveOf(types.PrimBoolean) || t.IsNamed(types.BooleanName)
		number = number || t.IsNumericLike()
	}
	return anchored && boolean && number
}

// numericLub handles inputs that are all numeric and include at least one
// unboxed primitive or big number. Inputs made only of wrappers take the
// reference path, where Integer and Double meet at Number.
func numericLub(ts []types.SemanticType) (types.SemanticType, bool) {
	var (
		best        types.SemanticType
		bestRank    numericRank
		anchored    bool
		bigInteger  bool
		anyFloating bool
	)
	for _, t := range ts {
		r, ok := rankOf(t)
		if !ok {
			return types.SemanticType{}, false
		}
		if t.IsPrimitive() || t.IsBigNumber() {
			anchored = true
		}
		bigInteger = bigInteger || r == rankBigInteger
		anyFloating = anyFloating || r.isFloating()
		// ties go to the unboxed form
		if r > bestRank || (r == bestRank && t.IsPrimitive()) {
			best, bestRank = t, r
		}
	}
	if !anchored {
		return types.SemanticType{}, false
	}
	if bigInteger && anyFloating {
		return types.NewKnown(types.BigDecimalName), true
	}
	return best, true
}

func (l *TypeLub) arrayLub(ts []types.SemanticType, depth int) types.SemanticType {
	elems := make([]types.SemanticType, len(ts))
	for i, t := range ts {
		elems[i] = t.Array().Elem
		if elems[i].IsPrimitive() {
			// int[] and long[] share no array type
			return types.Object()
		}
	}
	return types.NewArray(l.lub(elems, depth+1))
}

type candidate struct {
	fqn      string
	priority int
	depth    int
}

func (l *TypeLub) referenceLub(ts []types.SemanticType, depth int) types.SemanticType {
	views := make([]map[string]solver.Ancestor, len(ts))
	for i, t := range ts {
		views[i] = make(map[string]solver.Ancestor)
		for _, a := range solver.Ancestors(l.ts, t) {
			views[i][a.Type.Known().FQN] = a
		}
	}

	inputs := make(map[string]struct{}, len(ts))
	for _, t := range ts {
		inputs[t.Known().FQN] = struct{}{}
	}

	var candidates []candidate
	for fqn := range views[0] {
		c := candidate{fqn: fqn, priority: priorityOf(fqn)}
		common := true
		for _, v := range views {
			a, ok := v[fqn]
			if !ok {
				common = false
				break
			}
			c.depth = max(c.depth, a.Depth)
		}
		if !common {
			continue
		}
		if _, ok := inputs[fqn]; ok {
			c.priority = 0
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return types.Object()
	}
	best := slices.MinFunc(candidates, func(a, b candidate) int {
		return cmp.Or(
			cmp.Compare(a.priority, b.priority),
			cmp.Compare(a.depth, b.depth),
			cmp.Compare(a.fqn, b.fqn),
		)
	})
	return l.reconcileArgs(best.fqn, views, depth)
}

// reconcileArgs joins the type arguments each input sees on the chosen
// ancestor, position by position. Any raw view makes the result raw.
func (l *TypeLub) reconcileArgs(fqn string, views []map[string]solver.Ancestor, depth int) types.SemanticType {
	if depth >= maxArgDepth {
		return types.NewKnown(fqn)
	}
	first := views[0][fqn].Type.Known().TypeArgs
	if len(first) == 0 {
		return types.NewKnown(fqn)
	}
	columns := make([][]types.SemanticType, len(first))
	for _, v := range views {
		a := v[fqn]
		args := a.Type.Known().TypeArgs
		if a.Raw || len(args) != len(first) {
			return types.NewKnown(fqn)
		}
		for i, arg := range args {
			columns[i] = append(columns[i], arg)
		}
	}
	args := make([]types.SemanticType, len(columns))
	for i, col := range columns {
		args[i] = l.lub(col, depth+1)
	}
	return types.NewKnown(fqn, args...)
}
