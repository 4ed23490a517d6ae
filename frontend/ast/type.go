package ast

import (
	"strings"

	"github.com/gluax-lang/groovyls/common"
)

// TypeName is a type as written, e.g. `Map<String, List<Integer>>[]`.
// Wildcards are kept in Name (`?`, `? extends Number`).
type TypeName struct {
	Name string
	Args []*TypeName
	Dims int
	span common.Span
}

func NewTypeName(name string, args []*TypeName, dims int, span common.Span) *TypeName {
	return &TypeName{Name: name, Args: args, Dims: dims, span: span}
}

func (t *TypeName) Span() common.Span { return t.span }

func (t *TypeName) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *TypeName) write(sb *strings.Builder) {
	sb.WriteString(t.Name)
	if len(t.Args) > 0 {
		sb.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			a.write(sb)
		}
		sb.WriteByte('>')
	}
	for range t.Dims {
		sb.WriteString("[]")
	}
}

// TypeString renders t, or "def" for a nil t.
func TypeString(t *TypeName) string {
	if t == nil {
		return "def"
	}
	return t.String()
}
