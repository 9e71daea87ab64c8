package catalog

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"

	"github.com/krishiseeds/catalog-service/internal/metrics"
	"github.com/krishiseeds/catalog-service/internal/telemetry"
	"github.com/krishiseeds/catalog-service/internal/types"
)

// defaultLoadTimeout bounds one catalog load, independent of any request context
const defaultLoadTimeout = 30 * time.Second

// watchDebounce coalesces the burst of events editors and uploads produce
const watchDebounce = 500 * time.Millisecond

// View is an immutable catalog snapshot. Products must not be modified.
type View struct {
	Products []types.Product
	LoadedAt time.Time
	Source   string
}

// Snapshot holds the current catalog view and swaps it atomically on reload
type Snapshot struct {
	source  Source
	current atomic.Pointer[View]
	sf      singleflight.Group
	metrics *metrics.Recorder
	logger  zerolog.Logger

	LoadTimeout time.Duration
}

// NewSnapshot creates an empty snapshot over source
func NewSnapshot(source Source, recorder *metrics.Recorder, logger zerolog.Logger) *Snapshot {
	s := &Snapshot{
		source:      source,
		metrics:     recorder,
		logger:      logger.With().Str("component", "catalog_snapshot").Logger(),
		LoadTimeout: defaultLoadTimeout,
	}
	s.current.Store(&View{Products: []types.Product{}, Source: source.Name()})
	return s
}

// Current returns the latest view. It never returns nil.
func (s *Snapshot) Current() *View {
	return s.current.Load()
}

// Products returns the products of the latest view
func (s *Snapshot) Products() []types.Product {
	return s.Current().Products
}

// Find returns the product with the given id
func (s *Snapshot) Find(id string) (types.Product, bool) {
	for _, p := range s.Products() {
		if p.ID == id {
			return p, true
		}
	}
	return types.Product{}, false
}

// Reload loads the catalog from the source and swaps it in. Concurrent calls
// share one load. A failed load keeps serving the previous view; on the very
// first load that view is the empty catalog.
//
// The shared load runs detached from ctx cancellation, bounded by LoadTimeout.
// If ctx is done first, Reload stops waiting and returns the current view.
func (s *Snapshot) Reload(ctx context.Context) *View {
	ch := s.sf.DoChan("reload", func() (interface{}, error) {
		return s.load(context.WithoutCancel(ctx)), nil
	})
	select {
	case r := <-ch:
		return r.Val.(*View)
	case <-ctx.Done():
		return s.Current()
	}
}

func (s *Snapshot) load(parent context.Context) *View {
	ctx, cancel := context.WithTimeout(parent, s.LoadTimeout)
	defer cancel()

	ctx, span := telemetry.Tracer().Start(ctx, "catalog.load")
	defer span.End()
	span.SetAttributes(attribute.String("catalog.source", s.source.Name()))

	start := time.Now()
	products, err := s.source.FetchAll(ctx)
	elapsed := time.Since(start)

	skipped := 0
	if fs, ok := s.source.(*FileSource); ok && err == nil {
		skipped = fs.Skipped()
	}
	if s.metrics != nil {
		s.metrics.RecordCatalogLoad(s.source.Name(), elapsed, len(products), skipped, err)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog load failed")
		s.logger.Error().Err(err).Dur("elapsed", elapsed).Msg("Catalog load failed, keeping previous snapshot")
		return s.Current()
	}

	if products == nil {
		products = []types.Product{}
	}
	view := &View{Products: products, LoadedAt: time.Now().UTC(), Source: s.source.Name()}
	s.current.Store(view)

	span.SetAttributes(attribute.Int("catalog.products", len(products)))
	s.logger.Info().
		Int("products", len(products)).
		Int("skipped", skipped).
		Dur("elapsed", elapsed).
		Msg("Catalog snapshot loaded")
	return view
}

// Watch reloads the snapshot whenever the file at path changes. It watches the
// parent directory so atomic rename-into-place uploads are seen. Blocks until
// ctx is cancelled.
func (s *Snapshot) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	s.logger.Info().Str("path", path).Msg("Watching catalog file")

	target := filepath.Clean(path)
	var debounce <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounce = time.After(watchDebounce)
		case <-debounce:
			debounce = nil
			s.Reload(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn().Err(err).Msg("Catalog watcher error")
		}
	}
}
