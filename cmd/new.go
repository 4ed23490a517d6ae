package main

import (
	"os"
	"path/filepath"

	"github.com/gluax-lang/groovyls/frontend"
)

type NewCmd struct {
	Name string `arg:"" required:"" help:"Name of the new project."`
}

func (n *NewCmd) Run() error {
	projectDir := n.Name
	if err := os.MkdirAll(filepath.Join(projectDir, "src"), 0755); err != nil {
		return err
	}

	// .gitignore
	gitignoreContent := "build/\n.gradle/\n"
	if err := os.WriteFile(filepath.Join(projectDir, ".gitignore"), []byte(gitignoreContent), 0644); err != nil {
		return err
	}

	// groovyls.toml
	tomlContent := "name = \"" + filepath.Base(n.Name) + "\"\nversion = \"0.1\"\nsources = [\"src\"]\njre_only = true\n"
	if err := os.WriteFile(filepath.Join(projectDir, frontend.ConfigFile), []byte(tomlContent), 0644); err != nil {
		return err
	}

	// src/Main.groovy
	mainContent := "def greeting = \"Hello, ${args ? args[0] : 'world'}\"\nprintln greeting\n"
	if err := os.WriteFile(filepath.Join(projectDir, "src", "Main.groovy"), []byte(mainContent), 0644); err != nil {
		return err
	}

	return nil
}
