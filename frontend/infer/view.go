// Package infer computes the type of expression nodes. Nodes reach the
// calculators through a View, one adapter per parser backend; calculators
// never look at a concrete node type.
package infer

type NodeKind uint8

const (
	_ NodeKind = iota
	ConstantKind
	VariableKind
	BinaryKind
	TernaryKind
	ElvisKind
	ListKind
	MapKind
	MapEntryKind
	GStringKind
	DeclarationKind
	ClosureKind
	MethodCallKind
	PropertyKind
	ConstructorCallKind
	CastKind
	NotKind
	UnaryKind
	OtherKind
)

var nodeKindNames = [...]string{
	ConstantKind:        "constant",
	VariableKind:        "variable",
	BinaryKind:          "binary",
	TernaryKind:         "ternary",
	ElvisKind:           "elvis",
	ListKind:            "list",
	MapKind:             "map",
	MapEntryKind:        "map entry",
	GStringKind:         "gstring",
	DeclarationKind:     "declaration",
	ClosureKind:         "closure",
	MethodCallKind:      "method call",
	PropertyKind:        "property",
	ConstructorCallKind: "constructor call",
	CastKind:            "cast",
	NotKind:             "not",
	UnaryKind:           "unary",
	OtherKind:           "other",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) && nodeKindNames[k] != "" {
		return nodeKindNames[k]
	}
	return "invalid"
}

// Role names a child slot of a node.
type Role uint8

const (
	_ Role = iota
	RoleLeft
	RoleRight
	// RoleCondition is the tested expression of a ternary or elvis.
	RoleCondition
	RoleTrue
	RoleFalse
	RoleReceiver
	RoleInitializer
	RoleOperand
	RoleKey
	RoleValue
	RoleElements
	RoleEntries
	RoleArguments
	RoleStrings
	RoleValues
)

// View is the read-only face of an expression node. Accessors report false
// when the node has no such part; a View never panics on a missing part.
type View interface {
	Kind() NodeKind
	// Node is the underlying parser node, used for identity and positions.
	Node() any
	// Operator is the operator text of binary, unary and method call nodes
	// ("+", "?.", "!").
	Operator() (string, bool)
	// Name is the identifier of variables, declarations, method calls and
	// properties.
	Name() (string, bool)
	// Value is the runtime value of a constant. A null literal reports
	// (nil, true).
	Value() (any, bool)
	// TypeName is the written type of casts, constructor calls and typed
	// declarations, e.g. "List<String>".
	TypeName() (string, bool)
	Child(role Role) (View, bool)
	Children(role Role) ([]View, bool)
}

// Adapter turns parser nodes into views. It reports false for nodes that
// are not expressions it understands.
type Adapter interface {
	View(node any) (View, bool)
}
