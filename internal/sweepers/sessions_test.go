package sweepers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type countingPurger struct {
	calls atomic.Int32
	n     int
	err   error
}

func (p *countingPurger) Purge() (int, error) {
	p.calls.Add(1)
	return p.n, p.err
}

func TestSweep(t *testing.T) {
	p := &countingPurger{n: 3}
	s := NewSessionSweeper(p, zerolog.Nop(), time.Minute)
	assert.Equal(t, 3, s.Sweep())

	p.err = errors.New("bolt: database not open")
	assert.Equal(t, 0, s.Sweep())
	assert.Equal(t, int32(2), p.calls.Load())
}

func TestStartRunsUntilStopped(t *testing.T) {
	p := &countingPurger{}
	s := NewSessionSweeper(p, zerolog.Nop(), 5*time.Millisecond)

	done := make(chan struct{})
	go func() {
		s.Start(context.Background())
		close(done)
	}()

	assert.Eventually(t, func() bool { return p.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()
	s.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestStartStopsOnContextCancel(t *testing.T) {
	s := NewSessionSweeper(&countingPurger{}, zerolog.Nop(), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper ignored context cancellation")
	}
}

func TestStartDisabled(t *testing.T) {
	p := &countingPurger{}
	NewSessionSweeper(p, zerolog.Nop(), 0).Start(context.Background())
	assert.Zero(t, p.calls.Load())
}
