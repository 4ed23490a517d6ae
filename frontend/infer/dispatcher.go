package infer

import (
	"github.com/gluax-lang/groovyls/frontend/types"
)

// Dispatcher picks calculators by node kind. Calculators registered for
// the node's kind are tried first, then the ones registered for any kind;
// the first that accepts the node wins.
type Dispatcher struct {
	byKind  map[NodeKind][]Calculator
	generic []Calculator
}

func NewDispatcher(calcs ...Calculator) *Dispatcher {
	d := &Dispatcher{byKind: make(map[NodeKind][]Calculator)}
	for _, c := range calcs {
		d.Register(c)
	}
	return d
}

// Register must not race with Calculate.
func (d *Dispatcher) Register(c Calculator) {
	if c.Kind() == 0 {
		d.generic = append(d.generic, c)
		return
	}
	d.byKind[c.Kind()] = append(d.byKind[c.Kind()], c)
}

// DefaultCalculators returns one calculator per expression kind.
func DefaultCalculators() []Calculator {
	return []Calculator{
		ConstantCalculator{},
		VariableCalculator{},
		BinaryCalculator{},
		TernaryCalculator{},
		ElvisCalculator{},
		ListCalculator{},
		MapCalculator{},
		GStringCalculator{},
		DeclarationCalculator{},
		ClosureCalculator{},
		MethodCallCalculator{},
		PropertyCalculator{},
		TypeNameCalculator{kind: CastKind},
		TypeNameCalculator{kind: ConstructorCallKind},
		NotCalculator{},
		UnaryCalculator{},
	}
}

var defaultDispatcher = NewDispatcher(DefaultCalculators()...)

// DefaultDispatcher is shared and read-only.
func DefaultDispatcher() *Dispatcher {
	return defaultDispatcher
}

// Calculate never fails: when no calculator accepts the node the result is
// Unknown.
func (d *Dispatcher) Calculate(v View, ctx TypeContext) types.SemanticType {
	for _, c := range d.byKind[v.Kind()] {
		if t, ok := c.Calculate(v, ctx); ok {
			return t
		}
	}
	for _, c := range d.generic {
		if t, ok := c.Calculate(v, ctx); ok {
			return t
		}
	}
	if name, ok := v.Name(); ok {
		return types.NewUnknownf("cannot resolve %s %s", v.Kind(), name)
	}
	return types.NewUnknownf("cannot infer %s", v.Kind())
}
