package lsp

import (
	"github.com/gluax-lang/groovyls/frontend/sema"
	"github.com/gluax-lang/lsp"
)

func (h *Handler) Complete(p *lsp.CompletionParams) (*lsp.CompletionList, error) {
	defer recoverRequest("completion")
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
	h.analysis(path)
	// the document usually does not parse mid-edit; positions before the
	// cursor still match the last analysis that did
	a := h.lastGood[path]
	if a == nil {
		return nil, nil
	}

	runeIndex := BuildRuneIndex(text)
	java := sema.IsJava(path)

	var found []sema.Completion
	dot := p.Position
	if r, ok := runeIndex.RuneBefore(dot); ok && r == '.' {
		// the receiver ends just before the dot
		dot.Character--
		if dot.Character > 0 {
			recv := dot
			recv.Character--
			line, col := runeIndex.Column(recv, java)
			found = a.MemberCompletions(line, col)
		}
	} else {
		line, col := runeIndex.Column(p.Position, java)
		found = a.ScopeCompletions(line, col)
	}

	list := make([]lsp.CompletionItem, 0, len(found))
	added := make(map[string]struct{})
	for _, c := range found {
		item := lsp.CompletionItem{
			Label:  c.Name,
			Kind:   lsp.CompletionItemKindVariable,
			Detail: c.Detail,
		}
		switch c.Kind {
		case sema.CompleteField:
			item.Kind = lsp.CompletionItemKindField
		case sema.CompleteMethod:
			// overloads show once
			if _, exists := added[c.Name]; exists {
				continue
			}
			added[c.Name] = struct{}{}
			item.Kind = lsp.CompletionItemKindMethod
			item.InsertText = c.Name + "($0)"
			item.InsertTextFormat = lsp.InsertTextFormatSnippet
		}
		list = append(list, item)
	}

	return &lsp.CompletionList{
		IsIncomplete: false,
		Items:        list,
	}, nil
}
