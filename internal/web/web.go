// Package web embeds the HTML templates served by the application.
//
// Templates are compiled into the binary so the server has no runtime
// dependency on a template directory. Generated recipe text is stored as
// HTML fragments; the safeHTML func renders it unescaped on the detail page.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var files embed.FS

// Templates parses the embedded page templates with the render helpers
// installed. The returned set contains the named pages "add", "view", and
// "history".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	}).ParseFS(files, "templates/*.tmpl")
}
