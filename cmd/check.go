package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/gluax-lang/groovyls/frontend/sema"
	protocol "github.com/gluax-lang/lsp"
)

type CheckCmd struct {
	Path string `help:"Path to the project directory." short:"p" default:"."`
}

func (c *CheckCmd) Run(g *Globals) error {
	ws, err := openWorkspace(c.Path)
	if err != nil {
		return err
	}
	analyses, err := ws.AnalyzeAll()
	if err != nil {
		return err
	}

	p := newPrinter(os.Stdout)
	errs := 0
	for _, a := range analyses {
		for _, d := range a.Diags {
			if d.Severity != nil && *d.Severity == protocol.DiagnosticSeverityError {
				errs++
			}
			p.diag(ws.StripWorkspace(a.Src), d)
		}
	}
	if errs > 0 {
		return fmt.Errorf("%d error(s) in %d file(s)", errs, len(analyses))
	}
	return nil
}

func openWorkspace(path string) (*sema.Workspace, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	ws, err := sema.NewWorkspace(absPath)
	if err != nil {
		return nil, err
	}
	if err := ws.Load(); err != nil {
		return nil, err
	}
	return ws, nil
}

const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorCyan   = "\x1b[36m"
	colorBold   = "\x1b[1m"
)

// printer writes results, in colour when the output is a terminal.
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(f *os.File) printer {
	fd := f.Fd()
	return printer{w: f, color: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)}
}

func (p printer) paint(color, s string) string {
	if !p.color {
		return s
	}
	return color + s + colorReset
}

func (p printer) diag(path string, d protocol.Diagnostic) {
	label, color := "error", colorRed
	if d.Severity != nil && *d.Severity == protocol.DiagnosticSeverityWarning {
		label, color = "warning", colorYellow
	}
	at := fmt.Sprintf("%s:%d:%d:", path, d.Range.Start.Line+1, d.Range.Start.Character+1)
	fmt.Fprintf(p.w, "%s %s %s\n", p.paint(colorBold, at), p.paint(color, label+":"), d.Message)
}
