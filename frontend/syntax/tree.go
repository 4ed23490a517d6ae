// Package syntax reads Java sources with tree-sitter, so that Groovy code
// of a joint project can see the Java classes next to it.
package syntax

import (
	"context"
	"fmt"

	"github.com/gluax-lang/groovyls/common"
	protocol "github.com/gluax-lang/lsp"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

type Diagnostic = protocol.Diagnostic

// Node is a tree-sitter node copied out of the C tree. Only named nodes
// and anonymous nodes under a field (operators) are kept.
type Node struct {
	Type     string
	Text     string
	Parent   *Node
	Children []*Node

	field string
	anon  bool
	span  common.Span
}

func (n *Node) Span() common.Span { return n.span }

// Field is the field name n sits under in its parent, "" if none.
func (n *Node) Field() string { return n.field }

// Child returns the first child under field.
func (n *Node) Child(field string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.field == field {
			return c
		}
	}
	return nil
}

// ChildrenOf returns every child under field.
func (n *Node) ChildrenOf(field string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.field == field {
			out = append(out, c)
		}
	}
	return out
}

// ChildOfType returns the first child of the given node type.
func (n *Node) ChildOfType(typ string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Type == typ {
			return c
		}
	}
	return nil
}

// named leaves out the operator tokens.
func (n *Node) named() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if !c.anon {
			out = append(out, c)
		}
	}
	return out
}

func (n *Node) String() string {
	return fmt.Sprintf("%s %s", n.Type, n.span)
}

// walk visits n and its descendants in source order until fn returns
// false for a node, which skips that node's children.
func (n *Node) walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn)
	}
}

type builder struct {
	path  string
	src   string
	diags []Diagnostic
}

// parseTree runs tree-sitter over code and copies the tree. Syntax errors
// do not stop the parse; they come back as diagnostics next to a tree with
// ERROR nodes in it.
func parseTree(ctx context.Context, path, code string) (*Node, []Diagnostic, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, []byte(code))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	b := &builder{path: path, src: code}
	cursor := sitter.NewTreeCursor(tree.RootNode())
	defer cursor.Close()
	root := b.visit(cursor, nil)
	return root, b.diags, nil
}

func (b *builder) visit(c *sitter.TreeCursor, parent *Node) *Node {
	sn := c.CurrentNode()
	field := c.CurrentFieldName()
	if !sn.IsNamed() && field == "" && !sn.IsMissing() {
		return nil
	}
	n := &Node{
		Type:   sn.Type(),
		Text:   b.src[sn.StartByte():sn.EndByte()],
		Parent: parent,
		field:  field,
		anon:   !sn.IsNamed(),
		span:   b.spanOf(sn),
	}
	switch {
	case sn.IsMissing():
		b.diags = append(b.diags, *common.ErrorDiag(fmt.Sprintf("expected: %s", sn.Type()), n.span))
		return nil
	case sn.IsError():
		b.diags = append(b.diags, *common.ErrorDiag("syntax error", n.span))
	}
	if parent != nil {
		parent.Children = append(parent.Children, n)
	}
	if c.GoToFirstChild() {
		b.visit(c, n)
		for c.GoToNextSibling() {
			b.visit(c, n)
		}
		c.GoToParent()
	}
	return n
}

// spanOf converts tree-sitter's 0-based points. Columns are byte offsets,
// which match rune columns for ASCII lines only.
func (b *builder) spanOf(n *sitter.Node) common.Span {
	start, end := n.StartPoint(), n.EndPoint()
	span := common.SpanNew(start.Row+1, end.Row+1, start.Column+1, end.Column)
	span.Source = b.path
	return span
}
