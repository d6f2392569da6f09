package web

import (
	"embed"
	"html/template"
	"io"

	"github.com/zhulik/vote/internal/core"
)

const IndexTemplate = "index.html"

//go:embed templates/*.html
var templates embed.FS

// NewTemplate parses the embedded page templates.
func NewTemplate() (*template.Template, error) {
	return template.ParseFS(templates, "templates/*.html") //nolint:wrapcheck
}

// Render writes the page for model to w.
func Render(w io.Writer, tmpl *template.Template, model core.RenderModel) error {
	return tmpl.ExecuteTemplate(w, IndexTemplate, model) //nolint:wrapcheck
}
