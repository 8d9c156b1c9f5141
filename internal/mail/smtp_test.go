package mail

import (
	"context"
	"testing"
	"time"
)

func TestNewSMTPSender_TLSModeByPort(t *testing.T) {
	implicit := NewSMTPSender("smtp.zoho.com", 465, "u", "p")
	if !implicit.dialer.SSL {
		t.Fatalf("port 465 must use implicit TLS")
	}
	starttls := NewSMTPSender("smtp.zoho.com", 587, "u", "p")
	if starttls.dialer.SSL {
		t.Fatalf("port 587 must not force implicit TLS")
	}
	if starttls.dialer.Host != "smtp.zoho.com" || starttls.dialer.Port != 587 {
		t.Fatalf("dialer transport settings not applied: %+v", starttls.dialer)
	}
}

func TestSMTPSender_Send_ContextDeadline(t *testing.T) {
	// Unroutable TEST-NET address: the dial blocks until the context gives up,
	// exercising the deadline branch without a live SMTP server.
	s := NewSMTPSender("192.0.2.1", 2525, "u", "p")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := s.Send(ctx, Message{
		From: "noreply@acme.dev", FromName: "Acme Contact",
		To: "owner@acme.dev", Subject: "s", HTMLBody: "<p>b</p>",
	})
	if err == nil {
		t.Fatalf("expected error from deadline or refused dial")
	}
}
