package lsp

import (
	"fmt"

	"github.com/gluax-lang/groovyls/frontend/sema"
	"github.com/gluax-lang/lsp"
)

func (h *Handler) Hover(p *lsp.HoverParams) (*lsp.Hover, error) {
	defer recoverRequest("hover")
	h.mu.Lock()
	defer h.mu.Unlock()

	path, err := pathOf(p.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	line, col, ok := h.position(path, p.Position)
	if !ok {
		return nil, nil
	}
	a := h.analysis(path)
	if a == nil {
		return nil, nil
	}
	typ, _, ok := a.TypeAt(line, col)
	if !ok {
		return nil, nil
	}

	code := typ.String()
	if d, ok := a.DeclarationAt(line, col); ok {
		code = fmt.Sprintf("%s: %s", d, typ)
		if d.Owner != "" {
			code += "\n// in " + d.Owner
		}
	}
	lang := "groovy"
	if sema.IsJava(path) {
		lang = "java"
	}
	content := fmt.Sprintf("```%s\n%s\n```\n", lang, code)

	return &lsp.Hover{
		Contents: lsp.MarkupContent{
			Kind:  "markdown",
			Value: content,
		},
	}, nil
}
