// Package app glues the stores to view lifecycle events: app start, view
// focus, and background refresh.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"storefront/client/internal/store"
)

type Runtime struct {
	sessions  *store.SessionStore
	catalog   *store.CatalogStore
	minSplash time.Duration
	log       zerolog.Logger

	ready     chan struct{}
	readyOnce sync.Once
	flight    singleflight.Group
}

func NewRuntime(sessions *store.SessionStore, catalog *store.CatalogStore, minSplash time.Duration, logger zerolog.Logger) *Runtime {
	return &Runtime{
		sessions:  sessions,
		catalog:   catalog,
		minSplash: minSplash,
		log:       logger,
		ready:     make(chan struct{}),
	}
}

// Ready is closed once startup completes; consumers gate the first screen on
// it.
func (r *Runtime) Ready() <-chan struct{} {
	return r.ready
}

// Start restores the persisted session, then runs the initial catalog fetch
// and the minimum splash delay concurrently. It returns only when both have
// finished, so the splash screen never flashes away on a fast network. A
// failed fetch does not abort startup; the failure stays in the catalog
// status for the user to retry.
func (r *Runtime) Start(ctx context.Context) error {
	if err := r.sessions.Restore(ctx); err != nil {
		r.log.Warn().Err(err).Msg("session restore failed")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := r.catalog.Fetch(gctx); err != nil {
			r.log.Warn().Err(err).Msg("initial catalog fetch failed")
		}
		return nil
	})
	g.Go(func() error {
		timer := time.NewTimer(r.minSplash)
		defer timer.Stop()
		select {
		case <-timer.C:
			return nil
		case <-gctx.Done():
			return gctx.Err()
		}
	})

	err := g.Wait()
	r.readyOnce.Do(func() { close(r.ready) })
	return err
}

// FocusCatalog runs the reset-then-refetch cycle for a catalog-bearing view
// gaining focus. Rapid repeated focus events collapse into one in-flight
// refresh; every caller observes that refresh's outcome.
func (r *Runtime) FocusCatalog(ctx context.Context) error {
	_, err, _ := r.flight.Do("focus", func() (any, error) {
		r.catalog.Reset()
		return nil, r.catalog.Fetch(ctx)
	})
	return err
}

// RefreshCatalog replaces the collection in place without the visible reset,
// for background refresh where blanking the list would flicker the UI.
func (r *Runtime) RefreshCatalog(ctx context.Context) error {
	_, err, _ := r.flight.Do("refresh", func() (any, error) {
		return nil, r.catalog.Fetch(ctx)
	})
	return err
}
