package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gluax-lang/groovyls/frontend/sema"
)

type InferCmd struct {
	File string `arg:"" help:"Source file to analyze." type:"existingfile"`
	Path string `help:"Path to the project directory." short:"p" default:"."`
}

// Run prints every declaration and expression statement of the file with
// its inferred type.
func (c *InferCmd) Run(g *Globals) error {
	ws, a, err := analyzeFile(c.Path, c.File)
	if err != nil {
		return err
	}
	p := newPrinter(os.Stdout)
	for _, e := range a.Types() {
		at := fmt.Sprintf("%d:%d", e.Span.LineStart, e.Span.ColumnStart)
		name := e.Name
		if name == "" {
			name = "<expr>"
		}
		typ := e.Type.String()
		if e.Type.IsUnknown() {
			typ = p.paint(colorYellow, typ+" ("+e.Type.Unknown().Reason+")")
		} else {
			typ = p.paint(colorCyan, typ)
		}
		fmt.Fprintf(p.w, "%s %s: %s\n", p.paint(colorBold, at), name, typ)
	}
	for _, d := range a.Diags {
		p.diag(ws.StripWorkspace(a.Src), d)
	}
	return nil
}

// analyzeFile loads the project at path and analyzes one of its files.
// The file need not lie under a source directory.
func analyzeFile(path, file string) (*sema.Workspace, *sema.Analysis, error) {
	ws, err := openWorkspace(path)
	if err != nil {
		return nil, nil, err
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, nil, err
	}
	code, err := os.ReadFile(abs)
	if err != nil {
		return nil, nil, err
	}
	a, err := ws.AnalyzeSource(abs, string(code))
	if err != nil {
		return nil, nil, err
	}
	return ws, a, nil
}
