package lub

import "github.com/gluax-lang/groovyls/frontend/types"

type numericRank uint8

const (
	rankByte numericRank = iota + 1
	rankShort
	rankChar
	rankInt
	rankLong
	rankBigInteger
	rankBigDecimal
	rankFloat
	rankDouble
)

var primitiveRanks = map[types.PrimitiveKind]numericRank{
	types.PrimByte:   rankByte,
	types.PrimShort:  rankShort,
	types.PrimChar:   rankChar,
	types.PrimInt:    rankInt,
	types.PrimLong:   rankLong,
	types.PrimFloat:  rankFloat,
	types.PrimDouble: rankDouble,
}

func (r numericRank) isFloating() bool {
	return r == rankFloat || r == rankDouble
}

// rankOf returns the numeric rank of a numeric primitive, its wrapper or a
// big number class.
func rankOf(t types.SemanticType) (numericRank, bool) {
	switch {
	case t.IsPrimitive():
		r, ok := primitiveRanks[t.Primitive().Kind]
		return r, ok
	case t.IsNamed(types.BigIntegerName):
		return rankBigInteger, true
	case t.IsNamed(types.BigDecimalName):
		return rankBigDecimal, true
	case t.IsKnown():
		k, ok := types.UnboxedKind(t.Known().FQN)
		if !ok {
			return 0, false
		}
		r, ok := primitiveRanks[k]
		return r, ok
	default:
		return 0, false
	}
}

// Ancestor priorities, lower wins. A common ancestor that is itself one of
// the inputs always wins with priority 0.
const defaultPriority = 50

var ancestorPriority = map[string]int{
	types.NumberName:         1,
	types.ListName:           2,
	types.SetName:            3,
	types.MapName:            4,
	types.CharSequenceName:   5,
	types.ComparableName:     6,
	types.CollectionName:     7,
	"java.util.Deque":        8,
	"java.util.Queue":        9,
	types.IterableName:       10,
	"java.util.RandomAccess": 60,
	types.GroovyObjectName:   80,
	types.CloneableName:      90,
	types.SerializableName:   95,
	types.ObjectName:         100,
}

func priorityOf(fqn string) int {
	if p, ok := ancestorPriority[fqn]; ok {
		return p
	}
	return defaultPriority
}
