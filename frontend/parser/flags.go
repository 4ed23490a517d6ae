package parser

import "strings"

type Flags uint16

const (
	// FlagParamDefault allows `= value` after a parameter name.
	FlagParamDefault Flags = 1 << iota
	// FlagParamVarArg allows `T... name`.
	FlagParamVarArg
	// FlagParamUntyped allows a bare name, as closures and loops do.
	FlagParamUntyped
	// FlagTypeWildcard allows `?`, `? extends T` and `? super T`.
	FlagTypeWildcard
)

// Has reports whether f includes all bits in mask.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

// Set turns on the bits in mask.
func (f Flags) Set(mask Flags) Flags {
	f |= mask
	return f
}

// Clear turns off the bits in mask.
func (f Flags) Clear(mask Flags) Flags {
	f &^= mask
	return f
}

func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	if f.Has(FlagParamDefault) {
		parts = append(parts, "ParamDefault")
	}
	if f.Has(FlagParamVarArg) {
		parts = append(parts, "ParamVarArg")
	}
	if f.Has(FlagParamUntyped) {
		parts = append(parts, "ParamUntyped")
	}
	if f.Has(FlagTypeWildcard) {
		parts = append(parts, "TypeWildcard")
	}
	return strings.Join(parts, "|")
}
