// Package types holds the closed value domain the inference engine speaks:
// every calculator, the LUB algorithm and the solvers produce SemanticType.
package types

import (
	"fmt"
	"slices"
	"strings"
)

type TypeKind uint8

const (
	_ TypeKind = iota
	KnownKind
	PrimitiveTypeKind
	ArrayKind
	DynamicKind
	UnknownKind
	UnionKind
	NullKind
)

func (k TypeKind) String() string {
	switch k {
	case KnownKind:
		return "known"
	case PrimitiveTypeKind:
		return "primitive"
	case ArrayKind:
		return "array"
	case DynamicKind:
		return "dynamic"
	case UnknownKind:
		return "unknown"
	case UnionKind:
		return "union"
	case NullKind:
		return "null"
	default:
		panic("unreachable")
	}
}

type typeData interface {
	TypeKind() TypeKind
	String() string
	equal(other typeData) bool
}

// SemanticType is an immutable inferred type. The zero value is invalid and
// only used as "no result" next to a false ok flag.
type SemanticType struct {
	data typeData
}

func (t SemanticType) IsValid() bool {
	return t.data != nil
}

func (t SemanticType) Kind() TypeKind {
	if t.data == nil {
		panic("invalid semantic type")
	}
	return t.data.TypeKind()
}

func (t SemanticType) String() string {
	if t.data == nil {
		return "<invalid>"
	}
	return t.data.String()
}

// Equal is structural: two Known("X") built independently are equal.
func (t SemanticType) Equal(other SemanticType) bool {
	if t.data == nil || other.data == nil {
		return t.data == nil && other.data == nil
	}
	if t.data.TypeKind() != other.data.TypeKind() {
		return false
	}
	return t.data.equal(other.data)
}

func (t SemanticType) IsKnown() bool     { return t.IsValid() && t.Kind() == KnownKind }
func (t SemanticType) IsPrimitive() bool { return t.IsValid() && t.Kind() == PrimitiveTypeKind }
func (t SemanticType) IsArray() bool     { return t.IsValid() && t.Kind() == ArrayKind }
func (t SemanticType) IsDynamic() bool   { return t.IsValid() && t.Kind() == DynamicKind }
func (t SemanticType) IsUnknown() bool   { return t.IsValid() && t.Kind() == UnknownKind }
func (t SemanticType) IsUnion() bool     { return t.IsValid() && t.Kind() == UnionKind }
func (t SemanticType) IsNull() bool      { return t.IsValid() && t.Kind() == NullKind }

func (t SemanticType) Known() Known {
	if !t.IsKnown() {
		panic("not a known type")
	}
	return t.data.(Known)
}

func (t SemanticType) Primitive() Primitive {
	if !t.IsPrimitive() {
		panic("not a primitive")
	}
	return t.data.(Primitive)
}

func (t SemanticType) Array() Array {
	if !t.IsArray() {
		panic("not an array")
	}
	return t.data.(Array)
}

func (t SemanticType) Dynamic() Dynamic {
	if !t.IsDynamic() {
		panic("not a dynamic type")
	}
	return t.data.(Dynamic)
}

func (t SemanticType) Unknown() Unknown {
	if !t.IsUnknown() {
		panic("not an unknown type")
	}
	return t.data.(Unknown)
}

func (t SemanticType) Union() Union {
	if !t.IsUnion() {
		panic("not a union")
	}
	return t.data.(Union)
}

// IsNamed reports whether t is a Known type with the given qualified name,
// regardless of its type arguments.
func (t SemanticType) IsNamed(fqn string) bool {
	return t.IsKnown() && t.Known().FQN == fqn
}

func (t SemanticType) IsPrimitiveOf(k PrimitiveKind) bool {
	return t.IsPrimitive() && t.Primitive().Kind == k
}

func (t SemanticType) IsVoid() bool {
	return t.IsPrimitiveOf(PrimVoid)
}

/* Known */

type Known struct {
	FQN      string
	TypeArgs []SemanticType
}

func NewKnown(fqn string, typeArgs ...SemanticType) SemanticType {
	if fqn == "" {
		panic("known type requires a qualified name")
	}
	return SemanticType{data: Known{FQN: fqn, TypeArgs: slices.Clone(typeArgs)}}
}

func (k Known) TypeKind() TypeKind { return KnownKind }

func (k Known) String() string {
	if len(k.TypeArgs) == 0 {
		return k.FQN
	}
	args := make([]string, len(k.TypeArgs))
	for i, a := range k.TypeArgs {
		args[i] = a.String()
	}
	return k.FQN + "<" + strings.Join(args, ", ") + ">"
}

func (k Known) equal(other typeData) bool {
	o := other.(Known)
	if k.FQN != o.FQN || len(k.TypeArgs) != len(o.TypeArgs) {
		return false
	}
	for i := range k.TypeArgs {
		if !k.TypeArgs[i].Equal(o.TypeArgs[i]) {
			return false
		}
	}
	return true
}

// SimpleName is the part after the last dot.
func (k Known) SimpleName() string {
	if i := strings.LastIndexByte(k.FQN, '.'); i >= 0 {
		return k.FQN[i+1:]
	}
	return k.FQN
}

/* Primitive */

type Primitive struct {
	Kind PrimitiveKind
}

var primitiveTypes = func() map[PrimitiveKind]SemanticType {
	m := make(map[PrimitiveKind]SemanticType, len(AllPrimitiveKinds))
	for _, k := range AllPrimitiveKinds {
		m[k] = SemanticType{data: Primitive{Kind: k}}
	}
	return m
}()

func NewPrimitive(kind PrimitiveKind) SemanticType {
	t, ok := primitiveTypes[kind]
	if !ok {
		panic(fmt.Sprintf("invalid primitive kind %d", kind))
	}
	return t
}

func (p Primitive) TypeKind() TypeKind { return PrimitiveTypeKind }
func (p Primitive) String() string     { return p.Kind.String() }

func (p Primitive) equal(other typeData) bool {
	return p.Kind == other.(Primitive).Kind
}

/* Array */

type Array struct {
	Elem SemanticType
}

func NewArray(elem SemanticType) SemanticType {
	if !elem.IsValid() {
		panic("array element type is invalid")
	}
	return SemanticType{data: Array{Elem: elem}}
}

func (a Array) TypeKind() TypeKind { return ArrayKind }
func (a Array) String() string     { return a.Elem.String() + "[]" }

func (a Array) equal(other typeData) bool {
	return a.Elem.Equal(other.(Array).Elem)
}

/* Dynamic */

// Dynamic marks a type that is intentionally not tracked (def declarations,
// duck-typed receivers). Hint is optional.
type Dynamic struct {
	Hint string
}

func NewDynamic(hint string) SemanticType {
	return SemanticType{data: Dynamic{Hint: hint}}
}

func (d Dynamic) TypeKind() TypeKind { return DynamicKind }

func (d Dynamic) String() string {
	if d.Hint == "" {
		return "dynamic"
	}
	return "dynamic(" + d.Hint + ")"
}

func (d Dynamic) equal(other typeData) bool {
	return d.Hint == other.(Dynamic).Hint
}

/* Unknown */

// Unknown is the result of a failed inference. Reason is for humans only.
type Unknown struct {
	Reason string
}

func NewUnknown(reason string) SemanticType {
	return SemanticType{data: Unknown{Reason: reason}}
}

func NewUnknownf(format string, args ...any) SemanticType {
	return NewUnknown(fmt.Sprintf(format, args...))
}

func (u Unknown) TypeKind() TypeKind { return UnknownKind }
func (u Unknown) String() string     { return "unknown(" + u.Reason + ")" }

func (u Unknown) equal(other typeData) bool {
	return u.Reason == other.(Unknown).Reason
}

/* Union */

type Union struct {
	members []SemanticType
}

// NewUnion builds a union of at least two distinct members. Fewer is a
// caller bug and panics.
func NewUnion(members ...SemanticType) SemanticType {
	var set []SemanticType
	for _, m := range members {
		if !m.IsValid() {
			panic("union member is invalid")
		}
		if m.IsUnion() {
			for _, inner := range m.Union().members {
				set = appendUnique(set, inner)
			}
			continue
		}
		set = appendUnique(set, m)
	}
	if len(set) < 2 {
		panic(fmt.Sprintf("union requires at least 2 distinct members, got %d", len(set)))
	}
	slices.SortFunc(set, func(a, b SemanticType) int {
		return strings.Compare(a.String(), b.String())
	})
	return SemanticType{data: Union{members: set}}
}

func appendUnique(set []SemanticType, t SemanticType) []SemanticType {
	for _, existing := range set {
		if existing.Equal(t) {
			return set
		}
	}
	return append(set, t)
}

func (u Union) Members() []SemanticType {
	return slices.Clone(u.members)
}

func (u Union) TypeKind() TypeKind { return UnionKind }

func (u Union) String() string {
	parts := make([]string, len(u.members))
	for i, m := range u.members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

func (u Union) equal(other typeData) bool {
	o := other.(Union)
	if len(u.members) != len(o.members) {
		return false
	}
	for i := range u.members {
		if !u.members[i].Equal(o.members[i]) {
			return false
		}
	}
	return true
}

/* Null */

type nullData struct{}

func (nullData) TypeKind() TypeKind        { return NullKind }
func (nullData) String() string            { return "null" }
func (nullData) equal(other typeData) bool { return true }

// Null is the type of the null literal.
var Null = SemanticType{data: nullData{}}
