package mail

import (
	"context"

	"github.com/rs/zerolog/log"
)

// NopSender discards every message. It is wired when mail is disabled or no
// SMTP transport is configured, so the rest of the application never has to
// branch on mail availability.
type NopSender struct{}

// Send logs the would-be delivery at debug level and reports success.
func (NopSender) Send(_ context.Context, msg Message) error {
	log.Debug().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Msg("mail disabled, dropping message")
	return nil
}
