package api

import (
	"embed"
	"html/template"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	formDateTimeLayout = "2006-01-02T15:04"
	viewDateTimeLayout = "2006-01-02 15:04"
)

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"price": domain.FormatPrice,
		"datetime": func(t time.Time) string {
			return t.Format(viewDateTimeLayout)
		},
		"date": func(t time.Time) string {
			return t.Format(domain.DateLayout)
		},
	}).ParseFS(templatesFS, "templates/*.html")
}

// page carries the fields the shared header renders.
type page struct {
	Title string
	Error string
}
