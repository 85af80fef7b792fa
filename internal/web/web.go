// Package web holds the embedded HTML templates rendered by the page controllers.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Templates parses every page; each page is addressed by its file name, e.g. "login.tmpl".
func Templates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.tmpl")
}
