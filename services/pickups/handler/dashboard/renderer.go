package dashboard

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/piresc/pickups/internal/pkg/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// TemplateRenderer renders the embedded dashboard templates for echo
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses the embedded templates
func NewTemplateRenderer() (*TemplateRenderer, error) {
	tmpl, err := template.New("dashboard").Funcs(template.FuncMap{
		"time":  formatPickupTime,
		"coord": func(v float64) string { return fmt.Sprintf("%.4f", v) },
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard templates: %w", err)
	}
	return &TemplateRenderer{templates: tmpl}, nil
}

// Render implements echo.Renderer
func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

func formatPickupTime(p models.Pickup) string {
	return p.PickupAt.Format("2006-01-02 15:04:05")
}
