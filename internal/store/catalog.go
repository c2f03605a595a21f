package store

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"storefront/client/internal/models"
)

// RecentLimit bounds the recency-derived view shown in list UIs.
const RecentLimit = 24

type ProductGateway interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

type CatalogStore struct {
	gw  ProductGateway
	log zerolog.Logger

	mu       sync.Mutex
	products []models.Product
	status   Status
}

func NewCatalogStore(gw ProductGateway, logger zerolog.Logger) *CatalogStore {
	return &CatalogStore{
		gw:     gw,
		log:    logger,
		status: Status{Phase: PhaseIdle},
	}
}

// Reset clears the collection and status without a network call. Views call
// this on focus, before refetching, so the list visibly reloads from server
// state instead of showing a stale snapshot.
func (s *CatalogStore) Reset() {
	s.mu.Lock()
	s.products = nil
	s.status = Status{Phase: PhaseIdle}
	s.mu.Unlock()
}

// Fetch replaces the collection with the gateway's current snapshot.
func (s *CatalogStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.status = Status{Phase: PhaseLoading}
	s.mu.Unlock()

	products, err := s.gw.ListProducts(ctx)
	if err != nil {
		s.mu.Lock()
		s.status = Status{Phase: PhaseFailed, Err: err}
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.products = products
	s.status = Status{Phase: PhaseSucceeded}
	s.mu.Unlock()

	s.log.Debug().Int("count", len(products)).Msg("catalog fetched")
	return nil
}

// Products returns a copy of the collection as fetched, unordered.
func (s *CatalogStore) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Recent derives the bounded recency view: up to RecentLimit entries, newest
// creation timestamp first, ties kept in original fetch order. It is a pure
// function of the collection, recomputed on every call and never stored.
func (s *CatalogStore) Recent() []models.Product {
	recent := s.Products()

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt().After(recent[j].CreatedAt())
	})
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	return recent
}

func (s *CatalogStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}
