// Package mail implements outbound transactional email for the contact
// backend: a provider-agnostic Sender interface, an SMTP implementation, and
// the two messages produced by a contact submission (admin notification and
// submitter acknowledgement).
//
// Dispatch is strictly best-effort. The HTTP response to a submission never
// depends on mail outcome; failures are observable only through logs and the
// mail_dispatch_total metric.
package mail

import "context"

// Message represents a single email to be sent. Fields are provider-agnostic
// so implementations can deliver over SMTP or a third-party API.
type Message struct {
	// From is the envelope sender address.
	From string
	// FromName is the display name shown alongside From.
	FromName string
	// To is the recipient address.
	To string
	// ReplyTo optionally overrides the reply address.
	ReplyTo string
	// Subject is the subject line.
	Subject string
	// HTMLBody is the HTML body of the message.
	HTMLBody string
}

// Sender abstracts an email provider. Implementations must be safe for
// concurrent use and should honor ctx for cancellation and deadlines.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
