package visitors

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/krishiseeds/catalog-service/internal/types"
)

// Writer persists a single visit
type Writer interface {
	Record(ctx context.Context, v *types.Visit) error
}

// Recorder writes visits from a bounded queue on a background goroutine so
// request handling never waits on the visit log. Visits arriving while the
// queue is full are dropped.
type Recorder struct {
	writer  Writer
	queue   chan types.Visit
	timeout time.Duration
	logger  zerolog.Logger

	wg       sync.WaitGroup
	stopOnce sync.Once
	mu       sync.RWMutex
	stopped  bool
	dropped  atomic.Int64
}

// NewRecorder creates a recorder with the given queue size
func NewRecorder(w Writer, queueSize int, logger zerolog.Logger) *Recorder {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Recorder{
		writer:  w,
		queue:   make(chan types.Visit, queueSize),
		timeout: 5 * time.Second,
		logger:  logger.With().Str("component", "visit_recorder").Logger(),
	}
}

// Start launches the writer goroutine
func (r *Recorder) Start() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for v := range r.queue {
			r.write(v)
		}
	}()
}

func (r *Recorder) write(v types.Visit) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if err := r.writer.Record(ctx, &v); err != nil {
		r.logger.Warn().Err(err).Str("path", v.Path).Msg("Failed to record visit")
	}
}

// Enqueue queues v and reports whether it was accepted
func (r *Recorder) Enqueue(v types.Visit) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.stopped {
		return false
	}
	select {
	case r.queue <- v:
		return true
	default:
		r.dropped.Add(1)
		return false
	}
}

// Dropped returns how many visits were discarded because the queue was full
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Stop drains the queue and waits for the writer to finish
func (r *Recorder) Stop() {
	r.stopOnce.Do(func() {
		r.mu.Lock()
		r.stopped = true
		close(r.queue)
		r.mu.Unlock()
	})
	r.wg.Wait()
}
