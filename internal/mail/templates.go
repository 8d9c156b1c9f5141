package mail

import (
	"bytes"
	"html/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ebubekeyz/ebube.dev-backend/internal/domain"
)

// Submitted field values are untrusted; both bodies go through html/template
// so markup in the form fields cannot be injected into the mails.
var (
	adminTmpl = template.Must(template.New("admin").Parse(`<h3>New Contact Message</h3>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<p><strong>Message:</strong></p>
<p>{{.Message}}</p>`))

	ackTmpl = template.Must(template.New("ack").Parse(`<p>Hello {{.Greeting}},</p>
<p>Thank you for contacting us. We&rsquo;ve received your message and will reply shortly.</p>
<p>&mdash; {{.Team}}</p>`))

	titleCaser = cases.Title(language.English, cases.NoLower)
)

// AdminNotification builds the mail sent to the administrative inbox for a
// new submission. The reply address is the submitter's own, so answering the
// notification reaches them directly.
func AdminNotification(m *domain.ContactMessage, from, fromName, adminEmail string) (Message, error) {
	subject := m.Subject
	if subject == "" {
		subject = "New Contact Message"
	}

	var body bytes.Buffer
	if err := adminTmpl.Execute(&body, m); err != nil {
		return Message{}, err
	}
	return Message{
		From:     from,
		FromName: fromName + " Contact",
		To:       adminEmail,
		ReplyTo:  m.Email,
		Subject:  subject,
		HTMLBody: body.String(),
	}, nil
}

// Acknowledgement builds the auto-reply sent back to the submitter.
func Acknowledgement(m *domain.ContactMessage, from, fromName string) (Message, error) {
	var body bytes.Buffer
	err := ackTmpl.Execute(&body, struct {
		Greeting string
		Team     string
	}{
		Greeting: titleCaser.String(m.Name),
		Team:     fromName,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		From:     from,
		FromName: fromName,
		To:       m.Email,
		Subject:  "We received your message",
		HTMLBody: body.String(),
	}, nil
}
