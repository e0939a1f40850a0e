// Package render expands notification templates with a two-tier strategy:
// text/template first, literal placeholder substitution when the engine
// cannot handle the input. Rendering never fails; the worst case is the
// template returned with unknown placeholders left in place.
package render

import (
	"strings"
	"text/template"

	"github.com/ecanturk/contact-relay/internal/domain"
)

// RenderedEmail holds the final subject and bodies for one email channel.
type RenderedEmail struct {
	Subject  string
	HTMLBody string
	TextBody string
}

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render expands tmpl with data. The engine tier understands dotted
// {{ .name }} references; any parse or execute error (including the
// bare {{ name }} style used by stored templates) falls back to literal
// substitution of both the tight and spaced placeholder variants.
func (r *Renderer) Render(tmpl string, data map[string]string) string {
	if tmpl == "" {
		return ""
	}

	parsed, err := template.New("email").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return replacePlaceholders(tmpl, data)
	}

	var out strings.Builder
	if err := parsed.Execute(&out, data); err != nil {
		return replacePlaceholders(tmpl, data)
	}

	return out.String()
}

// RenderEmail renders the subject and both bodies of a template.
func (r *Renderer) RenderEmail(t *domain.EmailTemplate, data map[string]string) RenderedEmail {
	if t == nil {
		return RenderedEmail{}
	}

	return RenderedEmail{
		Subject:  r.Render(t.Subject, data),
		HTMLBody: r.Render(t.HTMLBody, data),
		TextBody: r.Render(t.TextBody, data),
	}
}

func replacePlaceholders(tmpl string, data map[string]string) string {
	if len(data) == 0 {
		return tmpl
	}

	pairs := make([]string, 0, len(data)*4)
	for key, value := range data {
		pairs = append(pairs,
			"{{"+key+"}}", value,
			"{{ "+key+" }}", value,
		)
	}

	return strings.NewReplacer(pairs...).Replace(tmpl)
}
