package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("groovyls"),
		kong.Description("Groovy language server and type inference tools"),
		kong.UsageOnError(),
	)
	setupLogging(cli.Verbose)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

type Globals struct {
	Verbose bool `help:"Log debug output to stderr." short:"v"`
}

type CLI struct {
	Globals

	Check      CheckCmd      `cmd:"" help:"Report the diagnostics of a project."`
	Infer      InferCmd      `cmd:"" help:"Print the inferred types of a file."`
	Definition DefinitionCmd `cmd:"" help:"Find the definition of the symbol at a position."`
	New        NewCmd        `cmd:"" help:"Create a new project."`
	Lsp        LspCmd        `cmd:"" help:"Run the LSP server."`
	Version    VersionCmd    `cmd:"" help:"Show version."`
}

// setupLogging logs to stderr; stdout carries the LSP protocol.
func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
