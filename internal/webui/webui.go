package webui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"econdash/internal/app"
	"econdash/internal/logging"
)

// PageTitle is the heading of the dashboard page.
const PageTitle = "경제활동 데이터 분석"

//go:embed templates/*.html
var templateFS embed.FS

type WebUI struct {
	*app.Application
	templates *template.Template
}

// NewWebUI parses the embedded page templates.
func NewWebUI(application *app.Application) (*WebUI, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &WebUI{Application: application, templates: tmpl}, nil
}

// render buffers the named template; a template failure yields a 500
// instead of a partial page.
func (webUI *WebUI) render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	logger := logging.FromContext(r.Context())
	var buf bytes.Buffer
	if err := webUI.templates.ExecuteTemplate(&buf, name, data); err != nil {
		logging.LogError(logger, "failed to render page", err,
			slog.String("template", name),
			slog.String("component", "webui"))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logging.LogError(logger, "failed to write page", err,
			slog.String("component", "webui"))
	}
}
