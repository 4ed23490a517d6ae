package sema

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/gluax-lang/groovyls/frontend/solver"
	"github.com/gluax-lang/groovyls/frontend/source"
	"github.com/gluax-lang/groovyls/frontend/types"
)

// qualifier rewrites the type strings of a source class into qualified
// names, the form the solver expects of a ClassInfo.
type qualifier struct {
	ts      solver.TypeSolver
	imports []string
	vars    []string
}

func (q qualifier) with(vars []string) qualifier {
	q.vars = append(slices.Clip(q.vars), vars...)
	return q
}

func (q qualifier) qualify(s string) string {
	if s == "" {
		return s
	}
	switch s {
	case "def", "var":
		return types.ObjectName
	}
	ref, err := solver.ParseTypeRef(strings.ReplaceAll(s, "<>", ""))
	if err != nil {
		return types.ObjectName
	}
	return q.ref(ref).String()
}

func (q qualifier) ref(r solver.TypeRef) solver.TypeRef {
	if _, ok := types.ParsePrimitiveKind(r.Name); !ok && r.Name != "void" && !slices.Contains(q.vars, r.Name) {
		if decl := solver.SolveName(q.ts, r.Name, q.imports); decl.IsSolved() {
			r.Name = decl.Declaration().QualifiedName()
		} else {
			// unresolved names are reported by the analysis; members typed
			// with them degrade to Object
			r = solver.TypeRef{Name: types.ObjectName, Dims: r.Dims}
		}
	}
	args := make([]solver.TypeRef, len(r.Args))
	for i, a := range r.Args {
		args[i] = q.ref(a)
	}
	r.Args = args
	return r
}

// qualifyClass returns a copy of info with every type string qualified.
func (q qualifier) qualifyClass(info *solver.ClassInfo) *solver.ClassInfo {
	q = q.with(info.TypeParams)
	out := *info
	out.Super = q.qualify(info.Super)
	out.Interfaces = make([]string, len(info.Interfaces))
	for i, s := range info.Interfaces {
		out.Interfaces[i] = q.qualify(s)
	}
	out.Fields = make([]solver.FieldInfo, len(info.Fields))
	for i, f := range info.Fields {
		f.Type = q.qualify(orObject(f.Type))
		out.Fields[i] = f
	}
	out.Methods = make([]solver.MethodInfo, len(info.Methods))
	for i, m := range info.Methods {
		mq := q.with(m.TypeParams)
		m.Returns = mq.qualify(m.Returns)
		params := make([]string, len(m.Params))
		for j, p := range m.Params {
			params[j] = mq.qualify(orObject(p))
		}
		m.Params = params
		out.Methods[i] = m
	}
	return &out
}

func orObject(s string) string {
	if s == "" {
		return types.ObjectName
	}
	return s
}

// chainSources are the long-lived parts of a solver chain. Source classes
// change with every edit; the library solvers only share their caches.
type chainSources struct {
	jreOnly        bool
	runtime        solver.ClassLoader
	classpath      solver.ClassLoader
	runtimeCache   *solver.TypeCache
	classpathCache *solver.TypeCache
}

// buildChain builds a fresh solver chain for units: source classes first,
// then the runtime, then the project classpath. Solvers link to a single
// parent, so every chain gets new solver values.
func buildChain(src chainSources, units []source.Unit) solver.TypeSolver {
	memory := solver.NewMemoryTypeSolver()
	chain := solver.NewCombinedTypeSolver(
		memory,
		solver.NewReflectionTypeSolver(src.jreOnly,
			solver.WithClassLoader(src.runtime),
			solver.WithCache(src.runtimeCache)),
		solver.NewReflectionTypeSolver(false,
			solver.WithClassLoader(src.classpath),
			solver.WithCache(src.classpathCache)),
	)

	type pending struct {
		info *solver.ClassInfo
		q    qualifier
	}
	var all []pending
	// skeletons first, so that source classes can name each other
	// whatever the file order
	for _, u := range units {
		q := qualifier{ts: chain, imports: u.Imports()}
		for _, info := range u.Classes() {
			skeleton := &solver.ClassInfo{Name: info.Name, Kind: info.Kind, TypeParams: info.TypeParams, Node: info.Node}
			if err := memory.Add(skeleton); err != nil {
				slog.Warn("skipping source class", "path", u.Path(), "err", err)
				continue
			}
			all = append(all, pending{info, q})
		}
	}
	for _, p := range all {
		if err := memory.Add(p.q.qualifyClass(p.info)); err != nil {
			slog.Warn("skipping source class", "class", p.info.Name, "err", err)
		}
	}
	slog.Debug("built solver chain", "sourceClasses", memory.Len())
	return chain
}
