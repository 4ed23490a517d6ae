package lsp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"

	"github.com/gluax-lang/groovyls/common"
	"github.com/gluax-lang/groovyls/frontend/sema"
	protocol "github.com/gluax-lang/lsp"
)

func RunLSP() error {
	return NewHandler().Serve(context.Background())
}

type Handler struct {
	*protocol.Server
	mu sync.Mutex
	// fileCache holds the text of open documents by path.
	fileCache map[string]string
	workspace *sema.Workspace
	// lastGood is the last analysis of each file that parsed, so that
	// completion still works while the user is typing.
	lastGood map[string]*sema.Analysis
}

func NewHandler() *Handler {
	h := &Handler{
		fileCache: make(map[string]string),
		lastGood:  make(map[string]*sema.Analysis),
	}
	h.Server = protocol.NewServer(os.Stdin, os.Stdout, h)
	return h
}

func (h *Handler) Initialize(p *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	if p.WorkspaceFolders == nil || len(*p.WorkspaceFolders) == 0 {
		return nil, fmt.Errorf("no workspace folder detected")
	}
	workspaceFolders := *p.WorkspaceFolders
	root, err := common.URIToFilePath(workspaceFolders[0].URI)
	if err != nil {
		slog.Error("invalid workspace folder", "uri", workspaceFolders[0].URI, "err", err)
		return nil, err
	}
	slog.Info("initializing", "root", root)

	ws, err := sema.NewWorkspace(root)
	if err != nil {
		return nil, err
	}
	if err := ws.Load(); err != nil {
		slog.Warn("loading workspace", "err", err)
	}
	h.mu.Lock()
	h.workspace = ws
	h.mu.Unlock()

	return &protocol.InitializeResult{Capabilities: protocol.ServerCapabilities{
		HoverProvider: protocol.NewHoverProviderBool(true),
		TextDocumentSync: protocol.NewTextDocumentSyncOptions(protocol.TextDocumentSyncOptions{
			OpenClose: true,
			Change:    protocol.TextDocumentSyncKindFull,
			Save: &protocol.SaveOptions{
				IncludeText: true,
			},
		}),
		InlayHintProvider: protocol.NewInlayHintProviderOptions(protocol.InlayHintOptions{
			ResolveProvider: false,
			WorkDoneProgressOptions: protocol.WorkDoneProgressOptions{
				WorkDoneProgress: false,
			},
		}),
		CompletionProvider: &protocol.CompletionOptions{
			TriggerCharacters: []string{"."},
		},
		DefinitionProvider: true,
	}}, nil
}

func (h *Handler) Initialized() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.workspace != nil {
		slog.Debug("initialized", "files", len(h.workspace.Files()))
	}
	return nil
}

// recoverRequest keeps a panic in one request from taking the server
// down. The request answers with no result.
func recoverRequest(method string) {
	if r := recover(); r != nil {
		slog.Error("request panicked", "method", method, "panic", r, "stack", string(debug.Stack()))
	}
}

// analysis returns the current analysis of path. Callers hold h.mu.
func (h *Handler) analysis(path string) *sema.Analysis {
	if h.workspace == nil {
		return nil
	}
	a, err := h.workspace.Analyze(path)
	if err != nil {
		if !errors.Is(err, sema.ErrUnknownFile) {
			slog.Warn("analysis failed", "path", path, "err", err)
		}
		return nil
	}
	if a.Unit != nil {
		h.lastGood[path] = a
	}
	return a
}

// text is the text of path: the open document, else the file on disk.
func (h *Handler) text(path string) (string, bool) {
	if text, ok := h.fileCache[path]; ok {
		return text, true
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// handleDiagnostics publishes the diagnostics of every open document. An
// edit to one file can change what the others resolve to.
func (h *Handler) handleDiagnostics() {
	for path, text := range h.fileCache {
		a := h.analysis(path)
		if a == nil {
			continue
		}
		idx := BuildRuneIndex(text)
		diags := make([]protocol.Diagnostic, len(a.Diags))
		for i, d := range a.Diags {
			d.Range = idx.Range(d.Range, sema.IsJava(path))
			diags[i] = d
		}
		h.PublishDiagnostics(common.FilePathToURI(path), diags)
	}
}

// position maps an LSP position in path to the 1-based line and column
// spans use.
func (h *Handler) position(path string, pos protocol.Position) (uint32, uint32, bool) {
	text, ok := h.text(path)
	if !ok {
		return 0, 0, false
	}
	idx := BuildRuneIndex(text)
	line, col := idx.Column(pos, sema.IsJava(path))
	return line, col, true
}

// location maps a span to an LSP location, in UTF-16 units when the text
// of its file is at hand.
func (h *Handler) location(span common.Span) protocol.Location {
	loc := span.ToLocation()
	if text, ok := h.text(span.Source); ok {
		idx := BuildRuneIndex(text)
		loc.Range = idx.Range(loc.Range, sema.IsJava(span.Source))
	}
	return loc
}

// pathOf is the workspace path of a document URI.
func pathOf(uri string) (string, error) {
	path, err := common.URIToFilePath(uri)
	if err != nil {
		return "", err
	}
	return common.FilePathClean(path), nil
}
