package lsp

import (
	"github.com/gluax-lang/groovyls/frontend/sema"
	"github.com/gluax-lang/lsp"
)

func (h *Handler) Definition(p *lsp.DefinitionParams) ([]lsp.Location, error) {
	defer recoverRequest("definition")
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
	target, ok := a.DefinitionAt(line, col)
	if !ok {
		return nil, nil
	}
	span, ok := sema.NodeSpan(target.Node)
	if !ok || span.Source == "" {
		return nil, nil
	}
	return []lsp.Location{h.location(span)}, nil
}
