package types

// Qualified names the engine refers to directly.
const (
	ObjectName       = "java.lang.Object"
	StringName       = "java.lang.String"
	GStringName      = "groovy.lang.GString"
	BooleanName      = "java.lang.Boolean"
	CharacterName    = "java.lang.Character"
	ByteName         = "java.lang.Byte"
	ShortName        = "java.lang.Short"
	IntegerName      = "java.lang.Integer"
	LongName         = "java.lang.Long"
	FloatName        = "java.lang.Float"
	DoubleName       = "java.lang.Double"
	NumberName       = "java.lang.Number"
	ComparableName   = "java.lang.Comparable"
	CharSequenceName = "java.lang.CharSequence"
	IterableName     = "java.lang.Iterable"
	CloneableName    = "java.lang.Cloneable"
	SerializableName = "java.io.Serializable"
	BigIntegerName   = "java.math.BigInteger"
	BigDecimalName   = "java.math.BigDecimal"
	CollectionName   = "java.util.Collection"
	ListName         = "java.util.List"
	SetName          = "java.util.Set"
	MapName          = "java.util.Map"
	ClosureName      = "groovy.lang.Closure"
	GroovyObjectName = "groovy.lang.GroovyObject"

	// ListLiteralName and MapLiteralName are the static types of `[]` and `[:]`.
	ListLiteralName = ListName
	MapLiteralName  = MapName
)

func Object() SemanticType  { return NewKnown(ObjectName) }
func String() SemanticType  { return NewKnown(StringName) }
func GString() SemanticType { return NewKnown(GStringName) }
func Boolean() SemanticType { return NewKnown(BooleanName) }
func Closure() SemanticType { return NewKnown(ClosureName) }

// IsStringLike is true for java.lang.String and groovy.lang.GString.
func (t SemanticType) IsStringLike() bool {
	return t.IsNamed(StringName) || t.IsNamed(GStringName)
}

// IsBoxedNumeric is true for the wrapper classes of numeric primitives.
func (t SemanticType) IsBoxedNumeric() bool {
	if !t.IsKnown() {
		return false
	}
	k, ok := UnboxedKind(t.Known().FQN)
	return ok && k.IsNumeric()
}

// IsBigNumber is true for java.math.BigInteger and java.math.BigDecimal.
func (t SemanticType) IsBigNumber() bool {
	return t.IsNamed(BigIntegerName) || t.IsNamed(BigDecimalName)
}

// IsNumericLike covers numeric primitives, their wrappers and the big number classes.
func (t SemanticType) IsNumericLike() bool {
	if t.IsPrimitive() {
		return t.Primitive().Kind.IsNumeric()
	}
	return t.IsBoxedNumeric() || t.IsBigNumber()
}

// Boxed returns the wrapper type of a primitive, or t unchanged.
func (t SemanticType) Boxed() SemanticType {
	if !t.IsPrimitive() {
		return t
	}
	return NewKnown(t.Primitive().Kind.BoxedName())
}
