// Package theme turns a composed portfolio read model into one of three
// interchangeable HTML layouts. Selection follows the portfolio's stored
// theme field; anything unrecognized renders as modern.
package theme

import (
	"fmt"
	"html/template"
	"io"

	"showfolio/internal/portfolio"
)

// Theme names accepted in the portfolio record.
const (
	Modern       = "modern"
	Minimal      = "minimal"
	Professional = "professional"
)

var templates = map[string]*template.Template{
	Modern:       template.Must(template.New(Modern).Parse(modernTemplate)),
	Minimal:      template.Must(template.New(Minimal).Parse(minimalTemplate)),
	Professional: template.Must(template.New(Professional).Parse(professionalTemplate)),
}

// Normalize maps a stored theme value to a known theme, falling back to modern.
func Normalize(name string) string {
	switch name {
	case Modern, Minimal, Professional:
		return name
	default:
		return Modern
	}
}

// Render writes the themed public page for the read model.
func Render(w io.Writer, model *portfolio.ReadModel) error {
	tpl := templates[Normalize(model.Portfolio.Theme)]
	if err := tpl.Execute(w, model); err != nil {
		return fmt.Errorf("render theme %s: %w", tpl.Name(), err)
	}
	return nil
}
