package mail

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ebubekeyz/ebube.dev-backend/internal/domain"
)

type captureSender struct {
	mu   sync.Mutex
	sent []Message
	errs map[string]error // keyed by recipient
}

func (s *captureSender) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	if s.errs != nil {
		return s.errs[msg.To]
	}
	return nil
}

func (s *captureSender) messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.sent))
	copy(out, s.sent)
	return out
}

func newDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{
		Sender:     sender,
		From:       "noreply@x.io",
		FromName:   "Acme",
		AdminEmail: "owner@x.io",
		Timeout:    5 * time.Second,
	}
}

func TestDispatchSubmission_SendsAdminAndAck(t *testing.T) {
	sender := &captureSender{}
	d := newDispatcher(sender)

	d.DispatchSubmission(&domain.ContactMessage{
		ID: "c1", Name: "ada", Email: "ada@x.io", Phone: "1", Message: "hi",
	})
	d.Wait()

	sent := sender.messages()
	if len(sent) != 2 {
		t.Fatalf("expected 2 sends, got %d", len(sent))
	}
	byTo := map[string]Message{}
	for _, m := range sent {
		byTo[m.To] = m
	}
	admin, okAdmin := byTo["owner@x.io"]
	ack, okAck := byTo["ada@x.io"]
	if !okAdmin || !okAck {
		t.Fatalf("unexpected recipients: %+v", byTo)
	}
	if admin.ReplyTo != "ada@x.io" {
		t.Fatalf("admin mail must reply-to the submitter: %+v", admin)
	}
	if ack.Subject != "We received your message" {
		t.Fatalf("ack subject wrong: %q", ack.Subject)
	}
}

func TestDispatchSubmission_OneFailureDoesNotStopTheOther(t *testing.T) {
	sender := &captureSender{errs: map[string]error{
		"owner@x.io": errors.New("mailbox full"),
	}}
	d := newDispatcher(sender)

	d.DispatchSubmission(&domain.ContactMessage{
		ID: "c2", Name: "ada", Email: "ada@x.io", Phone: "1", Message: "hi",
	})
	d.Wait()

	if len(sender.messages()) != 2 {
		t.Fatalf("the acknowledgement must still be attempted after the admin send fails")
	}
}

func TestDispatchSubmission_CopiesRecord(t *testing.T) {
	sender := &captureSender{}
	d := newDispatcher(sender)

	m := &domain.ContactMessage{ID: "c3", Name: "ada", Email: "ada@x.io", Phone: "1", Message: "hi"}
	d.DispatchSubmission(m)
	// Mutating the caller's record after dispatch must not affect the mails.
	m.Email = "changed@x.io"
	d.Wait()

	for _, msg := range sender.messages() {
		if msg.To == "changed@x.io" || msg.ReplyTo == "changed@x.io" {
			t.Fatalf("dispatch read the caller's record after return: %+v", msg)
		}
	}
}

func TestNopSender_AcceptsEverything(t *testing.T) {
	var s Sender = NopSender{}
	if err := s.Send(context.Background(), Message{To: "x@y.io", Subject: "s"}); err != nil {
		t.Fatalf("NopSender.Send: %v", err)
	}
}
