package chart

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

// TemplatesFS exposes the built-in donut template so callers can copy or
// override it via WithTemplateRenderer.
func TemplatesFS() fs.FS {
	return templatesFS
}
