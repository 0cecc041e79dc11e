// Package web embeds the site's HTML templates.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses the embedded page templates. Panics on a malformed
// template, which only happens at build time.
func Templates() *template.Template {
	return template.Must(template.ParseFS(files, "templates/*.html"))
}
