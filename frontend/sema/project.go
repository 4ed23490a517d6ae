package sema

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/gluax-lang/groovyls/common"
	"github.com/gluax-lang/groovyls/frontend"
	"github.com/gluax-lang/groovyls/frontend/parser"
	"github.com/gluax-lang/groovyls/frontend/solver"
	"github.com/gluax-lang/groovyls/frontend/source"
	"github.com/gluax-lang/groovyls/frontend/syntax"
)

// ErrUnknownFile is returned for paths the workspace does not hold.
var ErrUnknownFile = errors.New("file is not part of the workspace")

// SourceExts are the extensions Load picks up.
var SourceExts = []string{".groovy", ".gvy", ".gy", ".gsh", ".java"}

type file struct {
	hash string
	// unit is nil when the file does not parse; last is then the last
	// unit that did, which keeps its classes visible to other files.
	unit  source.Unit
	last  source.Unit
	diags []Diagnostic

	analysis *Analysis
	analyzed uint64 // generation of analysis
}

// Workspace holds the parsed files of a project. Every change to a file's
// text starts a new generation: the solver chain is rebuilt lazily, and
// analyses of older generations are recomputed on demand.
type Workspace struct {
	Root   string
	Config frontend.GroovyToml

	mu         sync.Mutex
	files      map[string]*file
	generation uint64
	chain      solver.TypeSolver
	sources    chainSources
	group      singleflight.Group
}

// NewWorkspace reads the project configuration and classpath of root.
// Files are added with Load or SetFile.
func NewWorkspace(root string) (*Workspace, error) {
	root = common.FilePathClean(root)
	cfg, err := frontend.LoadGroovyToml(root)
	if err != nil {
		return nil, err
	}
	return NewWorkspaceWithConfig(root, cfg)
}

func NewWorkspaceWithConfig(root string, cfg frontend.GroovyToml) (*Workspace, error) {
	classpath, err := solver.LoadIndexFiles(cfg.ClasspathFiles(root))
	if err != nil {
		return nil, fmt.Errorf("loading classpath: %w", err)
	}
	for _, err := range classpath.Errors() {
		slog.Warn("skipping classpath entry", "err", err)
	}
	slog.Debug("loaded classpath", "classes", classpath.Len(), "jreOnly", cfg.JREOnly)
	return &Workspace{
		Root:   root,
		Config: cfg,
		files:  make(map[string]*file),
		sources: chainSources{
			jreOnly:        cfg.JREOnly,
			runtime:        solver.RuntimeLoader(),
			classpath:      classpath,
			runtimeCache:   solver.NewTypeCache(),
			classpathCache: solver.NewTypeCache(),
		},
	}, nil
}

// Load reads every source file under the configured source directories.
func (w *Workspace) Load() error {
	for _, dir := range w.Config.Sources {
		dir = filepath.Join(w.Root, dir)
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) && path == dir {
					slog.Debug("source directory does not exist", "dir", dir)
					return filepath.SkipDir
				}
				return err
			}
			if d.IsDir() || !IsSourceFile(path) {
				return nil
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			w.SetFile(path, string(data))
			return nil
		})
		if err != nil {
			return fmt.Errorf("loading sources: %w", err)
		}
	}
	return nil
}

func IsSourceFile(path string) bool {
	return slices.Contains(SourceExts, strings.ToLower(filepath.Ext(path)))
}

// IsJava reports whether path is a Java source, which is read with
// tree-sitter and always compiled statically.
func IsJava(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".java")
}

// SetFile stores the text of a file. Unchanged text keeps the existing
// parse and analyses.
func (w *Workspace) SetFile(path, code string) {
	path = common.FilePathClean(path)
	hash := common.ContentHash(code)

	w.mu.Lock()
	old, ok := w.files[path]
	w.mu.Unlock()
	if ok && old.hash == hash {
		return
	}

	unit, diags := parseUnit(path, code)
	f := &file{hash: hash, unit: unit, last: unit, diags: diags}
	if unit == nil && ok {
		f.last = old.last
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = f
	w.invalidateLocked()
}

// RemoveFile drops a file, as when it is deleted from disk.
func (w *Workspace) RemoveFile(path string) {
	path = common.FilePathClean(path)
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.files[path]; ok {
		delete(w.files, path)
		w.invalidateLocked()
	}
}

func (w *Workspace) invalidateLocked() {
	w.generation++
	w.chain = nil
}

// Files lists the paths of the workspace in order.
func (w *Workspace) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.files))
	for p := range w.files {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// StripWorkspace makes path relative to the workspace root.
func (w *Workspace) StripWorkspace(path string) string {
	ws := common.FilePathClean(w.Root) + "/"
	return strings.TrimPrefix(common.FilePathClean(path), ws)
}

func parseUnit(path, code string) (source.Unit, []Diagnostic) {
	if IsJava(path) {
		u, diags, err := syntax.Parse(context.Background(), path, code)
		if err != nil {
			return nil, []Diagnostic{*common.ErrorDiag(err.Error(), common.SpanSrc(path))}
		}
		return u, diags
	}
	a, diag := parser.Parse(path, code)
	if diag != nil {
		return nil, []Diagnostic{*diag}
	}
	return NewGroovyUnit(path, a), nil
}

// chainLocked returns the solver chain of the current generation.
func (w *Workspace) chainLocked() solver.TypeSolver {
	if w.chain == nil {
		paths := make([]string, 0, len(w.files))
		for p := range w.files {
			paths = append(paths, p)
		}
		slices.Sort(paths)
		units := make([]source.Unit, 0, len(paths))
		for _, p := range paths {
			if u := w.files[p].last; u != nil {
				units = append(units, u)
			}
		}
		w.chain = buildChain(w.sources, units)
	}
	return w.chain
}

// Analyze returns the analysis of a file for the current generation.
// Concurrent calls for the same file and generation share one analysis.
func (w *Workspace) Analyze(path string) (*Analysis, error) {
	path = common.FilePathClean(path)

	w.mu.Lock()
	f, ok := w.files[path]
	if !ok {
		w.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrUnknownFile, path)
	}
	gen := w.generation
	if f.analysis != nil && f.analyzed == gen {
		a := f.analysis
		w.mu.Unlock()
		return a, nil
	}
	chain := w.chainLocked()
	w.mu.Unlock()

	key := fmt.Sprintf("%s@%d", path, gen)
	v, err, _ := w.group.Do(key, func() (any, error) {
		static := w.Config.StaticCompilation || IsJava(path)
		a := newAnalysis(path, f.unit, f.diags, chain, static)

		w.mu.Lock()
		defer w.mu.Unlock()
		if w.files[path] == f && (f.analysis == nil || f.analyzed < gen) {
			f.analysis, f.analyzed = a, gen
		}
		return a, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Analysis), nil
}

// AnalyzeSource sets the text of a file and analyzes it.
func (w *Workspace) AnalyzeSource(path, code string) (*Analysis, error) {
	w.SetFile(path, code)
	return w.Analyze(path)
}

// AnalyzeAll analyzes every file, in path order.
func (w *Workspace) AnalyzeAll() ([]*Analysis, error) {
	var out []*Analysis
	for _, p := range w.Files() {
		a, err := w.Analyze(p)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
