package frontend

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// ConfigFile is the project file looked for at the workspace root.
const ConfigFile = "groovyls.toml"

type GroovyToml struct {
	Name    string `toml:"name" validate:"required"`
	Version string `toml:"version" validate:"required"`
	// StaticCompilation makes member lookups that fail an error instead
	// of a dynamic dispatch.
	StaticCompilation bool `toml:"static_compilation"`
	// JREOnly keeps the runtime solver to the java., javax. and groovy.
	// namespaces.
	JREOnly bool `toml:"jre_only"`
	// Classpath lists YAML class index files, relative to the workspace.
	Classpath []string `toml:"classpath" validate:"dive,required"`
	Sources   []string `toml:"sources" validate:"min=1,dive,required"`
}

// DefaultGroovyToml is the configuration of a workspace without a
// groovyls.toml.
func DefaultGroovyToml(name string) GroovyToml {
	return GroovyToml{
		Name:    name,
		Version: "0.1",
		JREOnly: true,
		Sources: []string{"src"},
	}
}

func HandleGroovyToml(tomlContent string) (GroovyToml, error) {
	gt := DefaultGroovyToml("")
	gt.Version = ""
	_, err := toml.Decode(tomlContent, &gt)
	if err != nil {
		return gt, err
	}
	validate := validator.New()
	if err := validate.Struct(gt); err != nil {
		return gt, err
	}
	return gt, nil
}

// LoadGroovyToml reads the configuration of the workspace. A missing file
// gives the defaults, named after the workspace directory.
func LoadGroovyToml(workspace string) (GroovyToml, error) {
	content, err := os.ReadFile(filepath.Join(workspace, ConfigFile))
	if errors.Is(err, os.ErrNotExist) {
		return DefaultGroovyToml(filepath.Base(workspace)), nil
	}
	if err != nil {
		return GroovyToml{}, fmt.Errorf("reading %s: %w", ConfigFile, err)
	}
	gt, err := HandleGroovyToml(string(content))
	if err != nil {
		return gt, fmt.Errorf("%s: %w", ConfigFile, err)
	}
	return gt, nil
}

// ClasspathFiles resolves the classpath entries against the workspace.
func (gt GroovyToml) ClasspathFiles(workspace string) []string {
	out := make([]string, len(gt.Classpath))
	for i, p := range gt.Classpath {
		if filepath.IsAbs(p) {
			out[i] = p
		} else {
			out[i] = filepath.Join(workspace, p)
		}
	}
	return out
}
