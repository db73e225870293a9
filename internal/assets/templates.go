package assets

import (
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed templates/*.md.go.tmpl
var embeddedTemplates embed.FS

const progressReportTemplateName = "progress-report.md.go.tmpl"

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"join": strings.Join,
		"bar":  progressBar,
	}
}

// progressBar draws percent as a ten-cell ASCII bar, which the PDF core
// fonts can render.
func progressBar(percent int) string {
	filled := min(max(percent, 0), 100) / 10
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", 10-filled) + "]"
}

// parseTemplateWithFallback parses templatePath when it is readable and
// valid, and the embedded template called name otherwise.
func parseTemplateWithFallback(templatePath string, name string) (*template.Template, error) {
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(templatePath)).
				Funcs(templateFuncs()).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	contents, err := embeddedTemplates.ReadFile("templates/" + name)
	if err != nil {
		return nil, fmt.Errorf("embeddedTemplates.ReadFile(%s) > %w", name, err)
	}
	tmpl, err := template.New(name).
		Funcs(templateFuncs()).
		Parse(string(contents))
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
