package lsp

import (
	"github.com/gluax-lang/groovyls/frontend/sema"
	"github.com/gluax-lang/lsp"
)

func (h *Handler) InlayHint(p *lsp.InlayHintParams) ([]lsp.InlayHint, error) {
	defer recoverRequest("inlayHint")
	h.mu.Lock()
	defer h.mu.Unlock()
	path, err := pathOf(p.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	text, ok := h.fileCache[path]
	if !ok {
		return nil, nil
	}
	a := h.analysis(path)
	if a == nil {
		return nil, nil
	}
	idx := BuildRuneIndex(text)
	hints := make([]lsp.InlayHint, len(a.InlayHints))
	for i, hint := range a.InlayHints {
		hint.Position = idx.Position(hint.Position, sema.IsJava(path))
		hints[i] = hint
	}
	return hints, nil
}
