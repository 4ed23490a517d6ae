// Package sema analyses the files of a workspace: it builds the solver
// chain from the project's sources and classpath and answers type and
// declaration queries about positions in a file.
package sema

import (
	"github.com/gluax-lang/groovyls/common"
	protocol "github.com/gluax-lang/lsp"
)

type Span = common.Span
type Diagnostic = protocol.Diagnostic
type InlayHint = protocol.InlayHint

// NodeSpan is the span of a node of any unit. Nodes carry the path of
// their file in the span, so a definition can be located without knowing
// which unit it came from.
func NodeSpan(node any) (Span, bool) {
	n, ok := key(node).(interface{ Span() common.Span })
	if !ok {
		return Span{}, false
	}
	return n.Span(), true
}
