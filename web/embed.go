// Package web embeds the HTML templates rendered by the store views.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates
var files embed.FS

// Templates parses every page template. Names follow the templates/
// directory layout, e.g. "store/index.html".
func Templates() (*template.Template, error) {
	return template.ParseFS(files, "templates/*/*.html")
}
