package service

import "github.com/ecanturk/contact-relay/internal/domain"

// Built-in templates used when no stored template of the matching type is
// active. Placeholders use the engine tier's dotted form; stored templates
// may use the bare {{ name }} form and ride the renderer's fallback.
const (
	defaultAdminSubject = "New contact message from {{ .name }}"

	defaultAdminHTMLBody = `<h2>New contact message on {{ .site_name }}</h2>
<p><strong>From:</strong> {{ .name }} &lt;{{ .email }}&gt;</p>
<p><strong>Subject:</strong> {{ .subject }}</p>
<p><strong>Received:</strong> {{ .submitted_at }}</p>
<hr>
<p>{{ .message }}</p>
<p><a href="{{ .site_url }}">{{ .site_name }}</a></p>`

	defaultAdminTextBody = `New contact message on {{ .site_name }}

From: {{ .name }} <{{ .email }}>
Subject: {{ .subject }}
Received: {{ .submitted_at }}

{{ .message }}

{{ .site_url }}`

	defaultThankYouSubject = "Thanks for reaching out, {{ .name }}"

	defaultThankYouHTMLBody = `<p>Hi {{ .name }},</p>
<p>Thanks for your message. It landed safely in my inbox and I read
everything that comes through {{ .site_name }}.</p>
<p>I usually reply within a couple of days. If it is urgent, reply directly
to this email and it will reach me at {{ .reply_to }}.</p>
<p>{{ .admin_name }}<br><a href="{{ .site_url }}">{{ .site_name }}</a></p>`

	defaultThankYouTextBody = `Hi {{ .name }},

Thanks for your message. It landed safely in my inbox and I read
everything that comes through {{ .site_name }}.

I usually reply within a couple of days. If it is urgent, reply directly
to this email and it will reach me at {{ .reply_to }}.

{{ .admin_name }}
{{ .site_url }}`
)

func defaultTemplateFor(templateType domain.TemplateType) *domain.EmailTemplate {
	switch templateType {
	case domain.TemplateThankYou:
		return &domain.EmailTemplate{
			Name:     "builtin-thank-you",
			Type:     domain.TemplateThankYou,
			Subject:  defaultThankYouSubject,
			HTMLBody: defaultThankYouHTMLBody,
			TextBody: defaultThankYouTextBody,
		}
	default:
		return &domain.EmailTemplate{
			Name:     "builtin-admin-alert",
			Type:     domain.TemplateAdminAlert,
			Subject:  defaultAdminSubject,
			HTMLBody: defaultAdminHTMLBody,
			TextBody: defaultAdminTextBody,
		}
	}
}
