// Package std bundles the class index of the JDK and Groovy runtime
// classes that resolve without a project classpath.
package std

import (
	"embed"
	"io/fs"
	"slices"
	"strings"

	"github.com/gluax-lang/groovyls/common"
)

//go:embed classes
var FS embed.FS

// Files maps the path of every index file to its contents.
var Files map[string]string = func() map[string]string {
	out := make(map[string]string)

	err := fs.WalkDir(FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".yaml") {
			return nil
		}
		data, err := FS.ReadFile(p)
		if err != nil {
			return err
		}
		name := common.FilePathClean(strings.TrimPrefix(p, "./"))
		out[name] = string(data)
		return nil
	})
	if err != nil {
		panic(err)
	}
	return out
}()

// Paths lists the index files in order.
func Paths() []string {
	out := make([]string, 0, len(Files))
	for p := range Files {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}
