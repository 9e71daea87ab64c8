package sweepers

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Purger removes expired entries and reports how many were dropped
type Purger interface {
	Purge() (int, error)
}

// SessionSweeper periodically removes expired admin sessions
type SessionSweeper struct {
	store    Purger
	logger   zerolog.Logger
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewSessionSweeper creates a sweeper that purges store every interval
func NewSessionSweeper(store Purger, logger zerolog.Logger, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{
		store:    store,
		logger:   logger.With().Str("component", "session_sweeper").Logger(),
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start runs the sweep loop until ctx is cancelled or Stop is called.
// A non-positive interval disables sweeping.
func (s *SessionSweeper) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Debug().Msg("Session sweeper disabled")
		return
	}

	s.logger.Info().
		Dur("interval", s.interval).
		Msg("Starting session sweeper")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Session sweeper stopping (context cancelled)")
			return
		case <-s.stopChan:
			s.logger.Info().Msg("Session sweeper stopping (stop signal)")
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Stop signals the sweeper to stop. Safe to call more than once.
func (s *SessionSweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

// Sweep runs one purge and returns the number of sessions removed
func (s *SessionSweeper) Sweep() int {
	n, err := s.store.Purge()
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to purge expired sessions")
		return 0
	}
	if n > 0 {
		s.logger.Info().Int("purged", n).Msg("Removed expired sessions")
	}
	return n
}
