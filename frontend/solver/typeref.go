package solver

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gluax-lang/groovyls/frontend/types"
)

// TypeRef is a type as written in a class index: a name, optional type
// arguments and array dimensions. Names are either qualified class names,
// primitive names or type variables of the enclosing declaration.
type TypeRef struct {
	Name string
	Args []TypeRef
	Dims int
}

func (r TypeRef) String() string {
	var sb strings.Builder
	sb.WriteString(r.Name)
	if len(r.Args) > 0 {
		sb.WriteByte('<')
		for i, a := range r.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.String())
		}
		sb.WriteByte('>')
	}
	for range r.Dims {
		sb.WriteString("[]")
	}
	return sb.String()
}

// Bindings maps type variable names to the types they stand for. A variable
// present with an invalid SemanticType is declared but unbound.
type Bindings map[string]types.SemanticType

// Bind zips params with args. When args does not match params in length
// (raw use) every param is declared unbound.
func Bind(params []string, args []types.SemanticType) Bindings {
	b := make(Bindings, len(params))
	for i, p := range params {
		if len(args) == len(params) {
			b[p] = args[i]
		} else {
			b[p] = types.SemanticType{}
		}
	}
	return b
}

// With returns a copy of b that additionally declares vars as unbound.
func (b Bindings) With(vars []string) Bindings {
	out := make(Bindings, len(b)+len(vars))
	for k, v := range b {
		out[k] = v
	}
	for _, v := range vars {
		out[v] = types.SemanticType{}
	}
	return out
}

// Substitute turns r into a SemanticType. Unbound type variables erase to
// java.lang.Object and make complete false.
func (r TypeRef) Substitute(b Bindings) (t types.SemanticType, complete bool) {
	complete = true
	if bound, isVar := b[r.Name]; isVar {
		if bound.IsValid() {
			t = bound
		} else {
			t = types.Object()
			complete = false
		}
	} else if k, ok := types.ParsePrimitiveKind(r.Name); ok {
		t = types.NewPrimitive(k)
	} else {
		args := make([]types.SemanticType, len(r.Args))
		for i, a := range r.Args {
			var argComplete bool
			args[i], argComplete = a.Substitute(b)
			complete = complete && argComplete
		}
		t = types.NewKnown(r.Name, args...)
	}
	for range r.Dims {
		t = types.NewArray(t)
	}
	return t, complete
}

// ToType is Substitute without the completeness flag.
func (r TypeRef) ToType(b Bindings) types.SemanticType {
	t, _ := r.Substitute(b)
	return t
}

// ParseTypeRef parses the Java-like notation used by class indexes, e.g.
// `java.util.Map<K, java.util.List<V>>`, `int[]` or `? extends Number`.
// Wildcards collapse to their upper bound, or java.lang.Object.
func ParseTypeRef(s string) (TypeRef, error) {
	p := typeRefParser{src: s}
	ref, err := p.parse()
	if err != nil {
		return TypeRef{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return TypeRef{}, fmt.Errorf("unexpected %q at offset %d in type %q", p.src[p.pos:], p.pos, s)
	}
	return ref, nil
}

func MustParseTypeRef(s string) TypeRef {
	ref, err := ParseTypeRef(s)
	if err != nil {
		panic(err)
	}
	return ref
}

type typeRefParser struct {
	src string
	pos int
}

func (p *typeRefParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeRefParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeRefParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := rune(p.src[p.pos])
		if c == '.' || c == '$' || c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c) {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *typeRefParser) parse() (TypeRef, error) {
	if p.peek() == '?' {
		p.pos++
		switch p.ident() {
		case "extends":
			return p.parse()
		case "super":
			if _, err := p.parse(); err != nil {
				return TypeRef{}, err
			}
			return TypeRef{Name: types.ObjectName}, nil
		case "":
			return TypeRef{Name: types.ObjectName}, nil
		default:
			return TypeRef{}, fmt.Errorf("malformed wildcard in type %q", p.src)
		}
	}

	name := p.ident()
	if name == "" {
		return TypeRef{}, fmt.Errorf("expected type name at offset %d in %q", p.pos, p.src)
	}
	ref := TypeRef{Name: name}

	if p.peek() == '<' {
		p.pos++
		for {
			arg, err := p.parse()
			if err != nil {
				return TypeRef{}, err
			}
			ref.Args = append(ref.Args, arg)
			c := p.peek()
			if c == ',' {
				p.pos++
				continue
			}
			if c == '>' {
				p.pos++
				break
			}
			return TypeRef{}, fmt.Errorf("expected ',' or '>' at offset %d in %q", p.pos, p.src)
		}
	}

	for p.peek() == '[' {
		p.pos++
		if p.peek() != ']' {
			return TypeRef{}, fmt.Errorf("expected ']' at offset %d in %q", p.pos, p.src)
		}
		p.pos++
		ref.Dims++
	}
	return ref, nil
}
