package solver

// CombinedTypeSolver asks its children in order and returns the first
// solved result. Children are linked under the combined solver, so
// declarations they produce resolve further names through the whole chain.
type CombinedTypeSolver struct {
	parentLink
	children []TypeSolver
}

func NewCombinedTypeSolver(children ...TypeSolver) *CombinedTypeSolver {
	c := &CombinedTypeSolver{}
	for _, child := range children {
		c.Add(child)
	}
	return c
}

func (c *CombinedTypeSolver) Add(child TypeSolver) {
	child.SetParent(c)
	c.children = append(c.children, child)
}

func (c *CombinedTypeSolver) Children() []TypeSolver { return c.children }

func (c *CombinedTypeSolver) TryToSolveType(name string) SymbolReference[ResolvedTypeDeclaration] {
	for _, child := range c.children {
		if ref := child.TryToSolveType(name); ref.IsSolved() {
			return ref
		}
	}
	return Unsolved[ResolvedTypeDeclaration]()
}
