package solver

import (
	"errors"
	"log/slog"
)

// ReflectionTypeSolver resolves names against a class loader, by default the
// bundled runtime classes. In JRE-only mode it refuses names outside the
// runtime namespaces without consulting the loader.
type ReflectionTypeSolver struct {
	parentLink
	loader  ClassLoader
	cache   *TypeCache
	jreOnly bool
}

type ReflectionOption func(*ReflectionTypeSolver)

func WithClassLoader(l ClassLoader) ReflectionOption {
	return func(s *ReflectionTypeSolver) { s.loader = l }
}

// WithCache shares a cache between solver instances. A cache must only be
// shared by solvers with the same loader and mode.
func WithCache(c *TypeCache) ReflectionOption {
	return func(s *ReflectionTypeSolver) { s.cache = c }
}

func NewReflectionTypeSolver(jreOnly bool, opts ...ReflectionOption) *ReflectionTypeSolver {
	s := &ReflectionTypeSolver{jreOnly: jreOnly}
	for _, opt := range opts {
		opt(s)
	}
	if s.loader == nil {
		s.loader = RuntimeLoader()
	}
	if s.cache == nil {
		s.cache = NewTypeCache()
	}
	return s
}

func (s *ReflectionTypeSolver) JREOnly() bool { return s.jreOnly }

func (s *ReflectionTypeSolver) TryToSolveType(name string) SymbolReference[ResolvedTypeDeclaration] {
	name = BoxedTypeName(name)
	if s.jreOnly && !IsRuntimeName(name) {
		return Unsolved[ResolvedTypeDeclaration]()
	}
	info, err := s.cache.GetOrLoad(name, func() (*ClassInfo, error) {
		return s.loader.LoadClass(name)
	})
	if err != nil {
		if !errors.Is(err, ErrClassNotFound) {
			slog.Debug("class could not be defined", "name", name, "error", err)
		}
		return Unsolved[ResolvedTypeDeclaration]()
	}
	return Solved[ResolvedTypeDeclaration](NewResolvedClassDeclaration(info, Root(s)))
}
