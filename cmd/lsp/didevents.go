package lsp

import (
	"os"

	"github.com/gluax-lang/groovyls/frontend/sema"
	"github.com/gluax-lang/lsp"
)

func (h *Handler) setText(uri, text string) {
	path, err := pathOf(uri)
	if err != nil || h.workspace == nil || !sema.IsSourceFile(path) {
		return
	}
	h.fileCache[path] = text
	h.workspace.SetFile(path, text)
	h.handleDiagnostics()
}

func (h *Handler) DidOpen(p *lsp.DidOpenTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.setText(p.TextDocument.URI, p.TextDocument.Text)
	return nil
}

func (h *Handler) DidChange(p *lsp.DidChangeTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(p.ContentChanges) == 0 {
		return nil
	}
	text := p.ContentChanges[len(p.ContentChanges)-1].Text
	h.setText(p.TextDocument.URI, text)
	return nil
}

// DidClose goes back to the file on disk, or drops the file if it was
// never saved.
func (h *Handler) DidClose(p *lsp.DidCloseTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	path, err := pathOf(p.TextDocument.URI)
	if err != nil || h.workspace == nil {
		return nil
	}
	delete(h.fileCache, path)
	delete(h.lastGood, path)
	if data, err := os.ReadFile(path); err == nil {
		h.workspace.SetFile(path, string(data))
	} else {
		h.workspace.RemoveFile(path)
	}
	h.handleDiagnostics()
	return nil
}

func (h *Handler) DidSave(p *lsp.DidSaveTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if p.Text == nil {
		return nil
	}
	h.setText(p.TextDocument.URI, *p.Text)
	return nil
}
