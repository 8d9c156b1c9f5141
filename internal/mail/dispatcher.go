package mail

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/ebubekeyz/ebube.dev-backend/internal/domain"
)

// mailDispatches counts dispatch attempts by message kind and outcome, so the
// fire-and-forget side effect stays observable without touching the HTTP
// response.
var mailDispatches = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "mail_dispatch_total",
		Help: "Total transactional mail dispatch attempts.",
	},
	[]string{"kind", "outcome"},
)

func init() {
	prometheus.MustRegister(mailDispatches)
}

// Dispatcher sends the pair of transactional mails triggered by a contact
// submission. It is safe for concurrent use.
type Dispatcher struct {
	Sender     Sender
	From       string
	FromName   string
	AdminEmail string
	Timeout    time.Duration

	// wg tracks in-flight dispatches so tests (and shutdown) can wait for
	// them to drain.
	wg sync.WaitGroup
}

// DispatchSubmission queues the admin notification and the submitter
// acknowledgement for m on a detached goroutine and returns immediately.
// The record is already persisted by the time this is called; failures are
// logged and counted, never propagated.
//
// The two sends are independent: either order, or completion of just one,
// is acceptable.
func (d *Dispatcher) DispatchSubmission(m *domain.ContactMessage) {
	// Copy: the goroutine must not race with the caller's request lifecycle.
	c := *m

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		timeout := d.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if msg, err := AdminNotification(&c, d.From, d.FromName, d.AdminEmail); err != nil {
			d.report(ctx, "admin_notification", c.ID, err)
		} else {
			d.report(ctx, "admin_notification", c.ID, d.Sender.Send(ctx, msg))
		}

		if msg, err := Acknowledgement(&c, d.From, d.FromName); err != nil {
			d.report(ctx, "acknowledgement", c.ID, err)
		} else {
			d.report(ctx, "acknowledgement", c.ID, d.Sender.Send(ctx, msg))
		}
	}()
}

// Wait blocks until all queued dispatches have finished. Used by graceful
// shutdown and by tests.
func (d *Dispatcher) Wait() { d.wg.Wait() }

// report logs and counts a single dispatch outcome.
func (d *Dispatcher) report(_ context.Context, kind, contactID string, err error) {
	if err != nil {
		mailDispatches.WithLabelValues(kind, "error").Inc()
		log.Error().
			Err(err).
			Str("kind", kind).
			Str("contact_id", contactID).
			Msg("mail dispatch failed")
		return
	}
	mailDispatches.WithLabelValues(kind, "ok").Inc()
	log.Info().
		Str("kind", kind).
		Str("contact_id", contactID).
		Msg("mail dispatched")
}
