package solver

import "fmt"

// MemoryTypeSolver serves classes declared in the sources under analysis.
type MemoryTypeSolver struct {
	parentLink
	classes map[string]*ClassInfo
}

func NewMemoryTypeSolver() *MemoryTypeSolver {
	return &MemoryTypeSolver{classes: make(map[string]*ClassInfo)}
}

// Add links and registers info. A later class with the same name replaces
// the earlier one. Add must not race with lookups.
func (m *MemoryTypeSolver) Add(info *ClassInfo) error {
	if err := info.Link(); err != nil {
		return fmt.Errorf("registering source class: %w", err)
	}
	m.classes[info.Name] = info
	return nil
}

func (m *MemoryTypeSolver) Len() int { return len(m.classes) }

func (m *MemoryTypeSolver) TryToSolveType(name string) SymbolReference[ResolvedTypeDeclaration] {
	info, ok := m.classes[name]
	if !ok {
		return Unsolved[ResolvedTypeDeclaration]()
	}
	return Solved[ResolvedTypeDeclaration](NewResolvedClassDeclaration(info, Root(m)))
}
