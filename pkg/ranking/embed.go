package ranking

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

// TemplatesFS exposes the built-in bar list template.
func TemplatesFS() fs.FS {
	return templatesFS
}
