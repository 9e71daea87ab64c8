package mail

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// FailureRecorder counts failed deliveries
type FailureRecorder interface {
	RecordEmailFailure()
}

// Async sends mail on background goroutines. Failures are logged and
// counted, never returned to the caller.
type Async struct {
	mailer   Mailer
	timeout  time.Duration
	failures FailureRecorder
	logger   zerolog.Logger
}

// NewAsync wraps m for fire-and-forget delivery
func NewAsync(m Mailer, failures FailureRecorder, logger zerolog.Logger) *Async {
	return &Async{
		mailer:   m,
		timeout:  30 * time.Second,
		failures: failures,
		logger:   logger.With().Str("component", "mail").Logger(),
	}
}

// Send starts delivery and returns a channel closed when it finishes
func (a *Async) Send(msg Message) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()

		if err := a.mailer.Send(ctx, msg); err != nil {
			a.logger.Warn().Err(err).Str("to", msg.To).Msg("Failed to send email")
			if a.failures != nil {
				a.failures.RecordEmailFailure()
			}
		}
	}()
	return done
}
