package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

// TemplatesFS exposes the page template.
func TemplatesFS() fs.FS {
	return templatesFS
}
