package mail

import (
	"context"

	gomail "gopkg.in/gomail.v2"
)

// SMTPSender delivers messages over authenticated SMTP. Port 465 uses
// implicit TLS; other ports negotiate STARTTLS when the server offers it,
// which matches the usual Zoho/Gmail configurations.
type SMTPSender struct {
	dialer *gomail.Dialer
}

// NewSMTPSender constructs an SMTPSender for the given transport settings.
func NewSMTPSender(host string, port int, username, password string) *SMTPSender {
	d := gomail.NewDialer(host, port, username, password)
	d.SSL = port == 465
	return &SMTPSender{dialer: d}
}

// Send dials the SMTP server and delivers msg. The dial/send runs on its own
// goroutine so the context deadline is enforced even when the server is
// unresponsive; on timeout the in-flight connection is abandoned.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", msg.From, msg.FromName)
	m.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
