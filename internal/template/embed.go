package template

import (
	"embed"
	"io/fs"
)

//go:embed templates
var embeddedTemplates embed.FS

// EmbeddedTemplates returns the template tree compiled into the binary,
// rooted so that DefaultManifest sources resolve against it.
func EmbeddedTemplates() (fs.FS, error) {
	return fs.Sub(embeddedTemplates, "templates")
}
