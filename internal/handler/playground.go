package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/sakif/code-studio/internal/executor"
)

// PageHandler renders the playground UI.
type PageHandler struct {
	tmpl   *template.Template
	logger *slog.Logger
}

func NewPageHandler(templateDir string, logger *slog.Logger) (*PageHandler, error) {
	tmpl, err := template.ParseGlob(filepath.Join(templateDir, "*.html"))
	if err != nil {
		return nil, err
	}
	return &PageHandler{tmpl: tmpl, logger: logger}, nil
}

type playgroundData struct {
	Title     string
	Languages []executor.Language
}

// HandleIndex handles GET /.
func (h *PageHandler) HandleIndex(w http.ResponseWriter, _ *http.Request) {
	data := playgroundData{
		Title:     "Code Studio",
		Languages: executor.Languages(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "playground.html", data); err != nil {
		h.logger.Error("failed to render playground", slog.String("error", err.Error()))
	}
}
