package countries

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// LoadTemplates parses the page templates. Pages are addressed by file
// name, e.g. "index.html".
func LoadTemplates() (*template.Template, error) {
	return template.New("countries").ParseFS(templateFS, "templates/*.html")
}
