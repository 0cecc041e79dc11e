package handler

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/KosalaEhub/ticket-book/internal/flash"
	"github.com/KosalaEhub/ticket-book/internal/web"
)

// Renderer executes the embedded page templates, folding in any pending
// flash message.
type Renderer struct {
	t *template.Template
}

// NewRenderer creates a Renderer over the embedded templates.
func NewRenderer() *Renderer {
	return &Renderer{t: web.Templates()}
}

func (rn *Renderer) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if msg, ok := flash.Pop(w, r); ok {
		data["Flash"] = msg
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rn.t.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("template render failed", "template", name, "error", err)
	}
}
