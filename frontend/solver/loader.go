package solver

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/gluax-lang/groovyls/std"
)

var (
	// ErrClassNotFound means the loader has no entry for the name.
	ErrClassNotFound = errors.New("class not found")
	// ErrNoClassDefFound means the entry exists but one of its supertypes
	// is missing or malformed, so the class cannot be defined.
	ErrNoClassDefFound = errors.New("no class definition found")
)

type DeclKind string

const (
	ClassDecl      DeclKind = "class"
	InterfaceDecl  DeclKind = "interface"
	EnumDecl       DeclKind = "enum"
	AnnotationDecl DeclKind = "annotation"
)

// ClassInfo is the loaded description of one class. It is what loaders
// produce and caches store; declarations wrap it together with a solver.
type ClassInfo struct {
	Name       string       `yaml:"name"`
	Kind       DeclKind     `yaml:"kind"`
	TypeParams []string     `yaml:"typeParams"`
	Super      string       `yaml:"super"`
	Interfaces []string     `yaml:"interfaces"`
	Abstract   bool         `yaml:"abstract"`
	Final      bool         `yaml:"final"`
	Methods    []MethodInfo `yaml:"methods"`
	Fields     []FieldInfo  `yaml:"fields"`

	// Node is the declaring syntax node for classes parsed from source.
	Node any `yaml:"-"`

	superRef      *TypeRef
	interfaceRefs []TypeRef
}

type MethodInfo struct {
	Name       string   `yaml:"name"`
	TypeParams []string `yaml:"typeParams"`
	Params     []string `yaml:"params"`
	Returns    string   `yaml:"returns"`
	Static     bool     `yaml:"static"`

	Node any `yaml:"-"`

	paramRefs []TypeRef
	returnRef TypeRef
}

type FieldInfo struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Static bool   `yaml:"static"`

	Node any `yaml:"-"`

	typeRef TypeRef
}

// Link parses every type string of the class. A class that fails to link
// cannot be defined.
func (c *ClassInfo) Link() error {
	if c.Name == "" {
		return fmt.Errorf("%w: class without a name", ErrNoClassDefFound)
	}
	if c.Kind == "" {
		c.Kind = ClassDecl
	}
	if c.Super != "" {
		ref, err := ParseTypeRef(c.Super)
		if err != nil {
			return fmt.Errorf("%w: %s: superclass: %v", ErrNoClassDefFound, c.Name, err)
		}
		c.superRef = &ref
	}
	c.interfaceRefs = c.interfaceRefs[:0]
	for _, s := range c.Interfaces {
		ref, err := ParseTypeRef(s)
		if err != nil {
			return fmt.Errorf("%w: %s: interface: %v", ErrNoClassDefFound, c.Name, err)
		}
		c.interfaceRefs = append(c.interfaceRefs, ref)
	}
	for i := range c.Methods {
		m := &c.Methods[i]
		m.paramRefs = m.paramRefs[:0]
		for _, p := range m.Params {
			ref, err := ParseTypeRef(p)
			if err != nil {
				return fmt.Errorf("%w: %s.%s: %v", ErrNoClassDefFound, c.Name, m.Name, err)
			}
			m.paramRefs = append(m.paramRefs, ref)
		}
		ret := m.Returns
		if ret == "" {
			ret = "void"
		}
		ref, err := ParseTypeRef(ret)
		if err != nil {
			return fmt.Errorf("%w: %s.%s: %v", ErrNoClassDefFound, c.Name, m.Name, err)
		}
		m.returnRef = ref
	}
	for i := range c.Fields {
		f := &c.Fields[i]
		ref, err := ParseTypeRef(f.Type)
		if err != nil {
			return fmt.Errorf("%w: %s.%s: %v", ErrNoClassDefFound, c.Name, f.Name, err)
		}
		f.typeRef = ref
	}
	return nil
}

func (m MethodInfo) ParamRefs() []TypeRef { return m.paramRefs }
func (m MethodInfo) ReturnRef() TypeRef   { return m.returnRef }
func (f FieldInfo) TypeRef() TypeRef      { return f.typeRef }

// ClassLoader finds classes by qualified name. Implementations return an
// error wrapping ErrClassNotFound or ErrNoClassDefFound on failure.
type ClassLoader interface {
	LoadClass(name string) (*ClassInfo, error)
}

// MapLoader serves an in-memory set of linked classes. Entries that fail
// to link stay known by name and load as ErrNoClassDefFound.
type MapLoader struct {
	classes map[string]*ClassInfo
	broken  map[string]error
}

// NewMapLoader links infos and indexes them by name. A later entry for a
// name replaces an earlier one.
func NewMapLoader(infos []*ClassInfo) *MapLoader {
	m := &MapLoader{
		classes: make(map[string]*ClassInfo, len(infos)),
		broken:  make(map[string]error),
	}
	for _, info := range infos {
		if err := info.Link(); err != nil {
			delete(m.classes, info.Name)
			m.broken[info.Name] = err
			continue
		}
		delete(m.broken, info.Name)
		m.classes[info.Name] = info
	}
	return m
}

func (m *MapLoader) LoadClass(name string) (*ClassInfo, error) {
	if info, ok := m.classes[name]; ok {
		return info, nil
	}
	if err, ok := m.broken[name]; ok {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %s", ErrClassNotFound, name)
}

// Len is the number of classes that linked.
func (m *MapLoader) Len() int { return len(m.classes) }

// Errors lists the link failures of the entries that could not be defined,
// sorted by class name.
func (m *MapLoader) Errors() []error {
	names := make([]string, 0, len(m.broken))
	for name := range m.broken {
		names = append(names, name)
	}
	slices.Sort(names)
	out := make([]error, len(names))
	for i, name := range names {
		out[i] = m.broken[name]
	}
	return out
}

// ChainLoader asks each loader in turn. The first non-ErrClassNotFound
// result wins.
type ChainLoader []ClassLoader

func (c ChainLoader) LoadClass(name string) (*ClassInfo, error) {
	for _, l := range c {
		info, err := l.LoadClass(name)
		if err == nil || !errors.Is(err, ErrClassNotFound) {
			return info, err
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrClassNotFound, name)
}

// ParseClassIndex decodes a YAML class index document.
func ParseClassIndex(data []byte) ([]*ClassInfo, error) {
	var doc struct {
		Classes []*ClassInfo `yaml:"classes"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Classes, nil
}

// LoadIndexFiles reads class index files (the classpath of a project) into
// a single loader. Later files shadow earlier ones.
// Classes that fail to link do not fail the load; see MapLoader.Errors.
func LoadIndexFiles(paths []string) (*MapLoader, error) {
	var all []*ClassInfo
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading class index %s: %w", path, err)
		}
		infos, err := ParseClassIndex(data)
		if err != nil {
			return nil, fmt.Errorf("parsing class index %s: %w", path, err)
		}
		all = append(all, infos...)
	}
	return NewMapLoader(all), nil
}

var runtimeLoader = sync.OnceValue(func() *MapLoader {
	var all []*ClassInfo
	for _, p := range std.Paths() {
		infos, err := ParseClassIndex([]byte(std.Files[p]))
		if err != nil {
			panic(fmt.Sprintf("runtime index %s: %v", p, err))
		}
		all = append(all, infos...)
	}
	m := NewMapLoader(all)
	if errs := m.Errors(); len(errs) > 0 {
		panic(fmt.Sprintf("runtime index: %v", errors.Join(errs...)))
	}
	return m
})

// RuntimeLoader returns the loader for the bundled JDK and Groovy runtime
// classes.
func RuntimeLoader() ClassLoader {
	return runtimeLoader()
}

var trustedPrefixes = []string{"java.", "javax.", "groovy.", "org.codehaus.groovy."}

// IsRuntimeName reports whether name lies in a namespace owned by the
// runtime. A JRE-only solver refuses everything else.
func IsRuntimeName(name string) bool {
	for _, p := range trustedPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
