package nodeaccess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type leaf struct{ Name string }

type fieldOnly struct {
	Expressions []*leaf
	Count       int
	hidden      []*leaf
}

type withGetter struct {
	Expressions []*leaf
	calls       *int
}

func (w withGetter) GetExpressions() []*leaf {
	*w.calls++
	return []*leaf{{Name: "from getter"}}
}

type getterNotList struct {
	Expressions []*leaf
}

func (getterNotList) GetExpressions() string { return "nope" }

type token struct{ text string }

func (t token) GetText() string { return t.text }

type opNode struct {
	Operation token
	Kind      opKind
}

type opKind string

func TestListProperty_Field(t *testing.T) {
	n := &fieldOnly{Expressions: []*leaf{{Name: "a"}, nil, {Name: "b"}}}
	got := ListProperty(n, "GetExpressions", "Expressions")
	require.Len(t, got, 2, "nil elements are dropped")
	assert.Equal(t, "a", got[0].(*leaf).Name)
	assert.Equal(t, "b", got[1].(*leaf).Name)
}

func TestListProperty_GetterPreferredAndNotCached(t *testing.T) {
	calls := 0
	n := withGetter{Expressions: []*leaf{{Name: "field"}}, calls: &calls}

	got := ListProperty(n, "GetExpressions", "Expressions")
	require.Len(t, got, 1)
	assert.Equal(t, "from getter", got[0].(*leaf).Name)

	ListProperty(n, "GetExpressions", "Expressions")
	assert.Equal(t, 2, calls)
}

func TestListProperty_NonListGetterFallsBackToField(t *testing.T) {
	n := getterNotList{Expressions: []*leaf{{Name: "field"}}}
	got := ListProperty(n, "GetExpressions", "Expressions")
	require.Len(t, got, 1)
	assert.Equal(t, "field", got[0].(*leaf).Name)
}

func TestListProperty_Missing(t *testing.T) {
	assert.Nil(t, ListProperty(&fieldOnly{}, "GetValues", "Values"))
	assert.Nil(t, ListProperty(&fieldOnly{Count: 3}, "", "Count"), "not a list")
	assert.Nil(t, ListProperty(&fieldOnly{hidden: []*leaf{{}}}, "", "hidden"), "unexported")
	assert.Nil(t, ListProperty(nil, "GetExpressions", "Expressions"))

	var typedNil *fieldOnly
	assert.Nil(t, ListProperty(typedNil, "GetExpressions", "Expressions"))
}

func TestProperty(t *testing.T) {
	v, ok := Property(&fieldOnly{Count: 3}, "GetCount", "Count")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = Property(&fieldOnly{}, "", "Expressions")
	assert.True(t, ok, "present but nil")
	assert.Nil(t, v)

	_, ok = Property(&fieldOnly{}, "GetMissing", "Missing")
	assert.False(t, ok)

	assert.True(t, HasProperty(fieldOnly{}, "", "Count"))
	assert.False(t, HasProperty(fieldOnly{}, "", "Operation"))
}

func TestStringProperty(t *testing.T) {
	n := opNode{Operation: token{text: "+"}, Kind: "binary"}

	s, ok := StringProperty(n, "", "Operation")
	require.True(t, ok)
	assert.Equal(t, "+", s)

	s, ok = StringProperty(n, "", "Kind")
	require.True(t, ok)
	assert.Equal(t, "binary", s)

	s, ok = StringProperty(leaf{Name: "x"}, "GetName", "Name")
	require.True(t, ok)
	assert.Equal(t, "x", s)

	_, ok = StringProperty(fieldOnly{Count: 1}, "", "Count")
	assert.False(t, ok)
}
