package types

type PrimitiveKind uint8

const (
	_ PrimitiveKind = iota
	PrimByte
	PrimShort
	PrimInt
	PrimLong
	PrimFloat
	PrimDouble
	PrimChar
	PrimBoolean
	PrimVoid
)

var primitiveNames = map[PrimitiveKind]string{
	PrimByte:    "byte",
	PrimShort:   "short",
	PrimInt:     "int",
	PrimLong:    "long",
	PrimFloat:   "float",
	PrimDouble:  "double",
	PrimChar:    "char",
	PrimBoolean: "boolean",
	PrimVoid:    "void",
}

var primitiveBoxes = map[PrimitiveKind]string{
	PrimByte:    "java.lang.Byte",
	PrimShort:   "java.lang.Short",
	PrimInt:     "java.lang.Integer",
	PrimLong:    "java.lang.Long",
	PrimFloat:   "java.lang.Float",
	PrimDouble:  "java.lang.Double",
	PrimChar:    "java.lang.Character",
	PrimBoolean: "java.lang.Boolean",
	PrimVoid:    "java.lang.Void",
}

var primitiveByName = func() map[string]PrimitiveKind {
	m := make(map[string]PrimitiveKind, len(primitiveNames))
	for k, name := range primitiveNames {
		m[name] = k
	}
	return m
}()

var primitiveByBox = func() map[string]PrimitiveKind {
	m := make(map[string]PrimitiveKind, len(primitiveBoxes))
	for k, name := range primitiveBoxes {
		m[name] = k
	}
	return m
}()

// AllPrimitiveKinds lists every kind in declaration order.
var AllPrimitiveKinds = []PrimitiveKind{
	PrimByte, PrimShort, PrimInt, PrimLong, PrimFloat, PrimDouble, PrimChar, PrimBoolean, PrimVoid,
}

func (k PrimitiveKind) String() string {
	name, ok := primitiveNames[k]
	if !ok {
		panic("unreachable")
	}
	return name
}

// IsNumeric is true for the integral and floating kinds. CHAR counts as
// integral, BOOLEAN and VOID are neither.
func (k PrimitiveKind) IsNumeric() bool {
	return k.IsIntegral() || k.IsFloatingPoint()
}

func (k PrimitiveKind) IsIntegral() bool {
	switch k {
	case PrimByte, PrimShort, PrimInt, PrimLong, PrimChar:
		return true
	default:
		return false
	}
}

func (k PrimitiveKind) IsFloatingPoint() bool {
	return k == PrimFloat || k == PrimDouble
}

// BoxedName returns the wrapper class of the kind, e.g. java.lang.Integer for int.
func (k PrimitiveKind) BoxedName() string {
	return primitiveBoxes[k]
}

func ParsePrimitiveKind(name string) (PrimitiveKind, bool) {
	k, ok := primitiveByName[name]
	return k, ok
}

// UnboxedKind maps a wrapper class name back to its primitive kind.
func UnboxedKind(fqn string) (PrimitiveKind, bool) {
	k, ok := primitiveByBox[fqn]
	return k, ok
}
