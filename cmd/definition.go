package main

import (
	"fmt"

	"github.com/gluax-lang/groovyls/frontend/sema"
)

type DefinitionCmd struct {
	File   string `arg:"" help:"Source file the symbol is in." type:"existingfile"`
	Line   uint32 `help:"1-based line of the symbol." required:""`
	Column uint32 `help:"1-based column of the symbol." name:"col" required:""`
	Path   string `help:"Path to the project directory." short:"p" default:"."`
}

func (c *DefinitionCmd) Run(g *Globals) error {
	ws, a, err := analyzeFile(c.Path, c.File)
	if err != nil {
		return err
	}
	target, ok := a.DefinitionAt(c.Line, c.Column)
	if !ok {
		return fmt.Errorf("no definition at %d:%d", c.Line, c.Column)
	}
	span, ok := sema.NodeSpan(target.Node)
	if !ok {
		return fmt.Errorf("definition has no location")
	}
	fmt.Printf("%s:%d:%d", ws.StripWorkspace(span.Source), span.LineStart, span.ColumnStart)
	if target.Class != "" {
		fmt.Printf(" (%s)", target.Class)
	}
	fmt.Println()
	return nil
}
