package render

import (
	"strings"
	"testing"

	"github.com/ecanturk/contact-relay/internal/domain"
)

func TestRenderEngineTier(t *testing.T) {
	t.Parallel()

	r := NewRenderer()

	got := r.Render("Hello {{ .name }}, thanks for visiting {{ .site_name }}.", map[string]string{
		"name":      "Ada",
		"site_name": "ecanturk.dev",
	})
	want := "Hello Ada, thanks for visiting ecanturk.dev."
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderFallsBackOnEngineFailure(t *testing.T) {
	t.Parallel()

	r := NewRenderer()

	tests := []struct {
		name string
		tmpl string
		data map[string]string
		want string
	}{
		{
			name: "spaced placeholder",
			tmpl: "Hello {{ name }}",
			data: map[string]string{"name": "Ada"},
			want: "Hello Ada",
		},
		{
			name: "tight placeholder",
			tmpl: "Hello {{name}}",
			data: map[string]string{"name": "Ada"},
			want: "Hello Ada",
		},
		{
			name: "missing key falls back and leaves unknowns",
			tmpl: "Hi {{ .name }}, re {{ .subject }}",
			data: map[string]string{"name": "Ada"},
			want: "Hi {{ .name }}, re {{ .subject }}",
		},
		{
			name: "unbalanced braces never raise",
			tmpl: "Hello {{ name",
			data: map[string]string{"name": "Ada"},
			want: "Hello {{ name",
		},
		{
			name: "empty template",
			tmpl: "",
			data: map[string]string{"name": "Ada"},
			want: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := r.Render(tt.tmpl, tt.data); got != tt.want {
				t.Fatalf("Render(%q) = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}

func TestRenderEmail(t *testing.T) {
	t.Parallel()

	r := NewRenderer()

	tmpl := &domain.EmailTemplate{
		Subject:  "New message from {{ name }}",
		HTMLBody: "<p>{{ message }}</p>",
		TextBody: "{{ message }}",
	}

	rendered := r.RenderEmail(tmpl, map[string]string{
		"name":    "Ada",
		"message": "hello there",
	})

	if rendered.Subject != "New message from Ada" {
		t.Fatalf("Subject = %q", rendered.Subject)
	}
	if !strings.Contains(rendered.HTMLBody, "hello there") {
		t.Fatalf("HTMLBody = %q, want substituted message", rendered.HTMLBody)
	}
	if rendered.TextBody != "hello there" {
		t.Fatalf("TextBody = %q", rendered.TextBody)
	}

	if got := r.RenderEmail(nil, nil); got != (RenderedEmail{}) {
		t.Fatalf("RenderEmail(nil) = %+v, want zero value", got)
	}
}
