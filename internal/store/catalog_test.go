package store

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"storefront/client/internal/gateway"
	"storefront/client/internal/models"
)

type fakeProductGateway struct {
	products []models.Product
	err      error
	calls    int
}

func (f *fakeProductGateway) ListProducts(_ context.Context) ([]models.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func stampedProducts(n int) []models.Product {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	products := make([]models.Product, 0, n)
	for i := 0; i < n; i++ {
		products = append(products, models.Product{
			ProductID:   fmt.Sprintf("p-%02d", i),
			ProductName: fmt.Sprintf("Product %02d", i),
			Price:       100,
			DateCreated: base.Add(time.Duration(i) * time.Hour).Format("2006-01-02T15:04:05"),
		})
	}
	return products
}

func TestFetchReplacesCollection(t *testing.T) {
	gw := &fakeProductGateway{products: stampedProducts(3)}
	s := NewCatalogStore(gw, zerolog.Nop())

	if s.Status().Phase != PhaseIdle {
		t.Fatalf("initial status = %v", s.Status())
	}
	if err := s.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(s.Products()) != 3 {
		t.Fatalf("expected 3 products, got %d", len(s.Products()))
	}

	gw.products = stampedProducts(1)
	if err := s.Fetch(context.Background()); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if len(s.Products()) != 1 {
		t.Fatal("fetch must replace, not append")
	}
}

func TestResetClearsWithoutNetworkCall(t *testing.T) {
	gw := &fakeProductGateway{products: stampedProducts(5)}
	s := NewCatalogStore(gw, zerolog.Nop())

	if err := s.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	calls := gw.calls

	s.Reset()
	if gw.calls != calls {
		t.Fatal("reset must not hit the gateway")
	}
	if len(s.Products()) != 0 || len(s.Recent()) != 0 {
		t.Fatal("reset must empty the collection")
	}
	if status := s.Status(); status.Loading() || status.Phase != PhaseIdle {
		t.Fatalf("reset status = %#v", status)
	}
}

func TestFetchFailureStatus(t *testing.T) {
	gw := &fakeProductGateway{err: gateway.Transport(fmt.Errorf("boom"))}
	s := NewCatalogStore(gw, zerolog.Nop())

	if err := s.Fetch(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
	status := s.Status()
	if status.Phase != PhaseFailed || status.Message() == "" {
		t.Fatalf("status = %#v", status)
	}
}

func TestRecentBoundedAndSorted(t *testing.T) {
	gw := &fakeProductGateway{products: stampedProducts(30)}
	s := NewCatalogStore(gw, zerolog.Nop())
	if err := s.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	recent := s.Recent()
	if len(recent) != RecentLimit {
		t.Fatalf("expected %d entries, got %d", RecentLimit, len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].CreatedAt().After(recent[i-1].CreatedAt()) {
			t.Fatalf("not sorted descending at %d: %s before %s",
				i, recent[i-1].DateCreated, recent[i].DateCreated)
		}
	}
	// Newest record first.
	if recent[0].ProductID != "p-29" {
		t.Fatalf("expected newest first, got %s", recent[0].ProductID)
	}
}

func TestRecentTiesKeepFetchOrder(t *testing.T) {
	stamp := "2025-03-01T12:00:00"
	gw := &fakeProductGateway{products: []models.Product{
		{ProductID: "first", DateCreated: stamp},
		{ProductID: "second", DateCreated: stamp},
		{ProductID: "third", DateCreated: stamp},
	}}
	s := NewCatalogStore(gw, zerolog.Nop())
	if err := s.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	recent := s.Recent()
	order := []string{recent[0].ProductID, recent[1].ProductID, recent[2].ProductID}
	if !reflect.DeepEqual(order, []string{"first", "second", "third"}) {
		t.Fatalf("tie order not stable: %v", order)
	}
}

// overlapProductGateway blocks each call until its release channel opens, so
// tests can overlap two fetches and resolve them in a chosen order. Scripts
// are assigned by arrival order.
type overlapProductGateway struct {
	mu      sync.Mutex
	next    int
	release []chan struct{}
	scripts []func() ([]models.Product, error)
	started chan struct{}
}

func (g *overlapProductGateway) ListProducts(_ context.Context) ([]models.Product, error) {
	g.mu.Lock()
	idx := g.next
	g.next++
	g.mu.Unlock()

	g.started <- struct{}{}
	<-g.release[idx]
	return g.scripts[idx]()
}

// startOverlappingFetches launches one Fetch per script, serializing arrival
// so script i belongs to call i, and returns per-call completion channels.
func startOverlappingFetches(t *testing.T, s *CatalogStore, gw *overlapProductGateway) []chan struct{} {
	t.Helper()
	done := make([]chan struct{}, len(gw.scripts))
	for i := range gw.scripts {
		i := i
		done[i] = make(chan struct{})
		go func() {
			defer close(done[i])
			_ = s.Fetch(context.Background())
		}()
		<-gw.started
	}
	return done
}

func TestOverlappingFetchesLastFailureWins(t *testing.T) {
	gw := &overlapProductGateway{
		release: []chan struct{}{make(chan struct{}), make(chan struct{})},
		scripts: []func() ([]models.Product, error){
			func() ([]models.Product, error) { return stampedProducts(2), nil },
			func() ([]models.Product, error) { return nil, gateway.Transport(fmt.Errorf("boom")) },
		},
		started: make(chan struct{}),
	}
	s := NewCatalogStore(gw, zerolog.Nop())

	done := startOverlappingFetches(t, s, gw)
	if !s.Status().Loading() {
		t.Fatalf("two in-flight fetches should report loading, got %v", s.Status())
	}

	close(gw.release[0])
	<-done[0]
	if s.Status().Phase != PhaseSucceeded {
		t.Fatalf("first resolution should win for now, got %v", s.Status())
	}

	close(gw.release[1])
	<-done[1]
	status := s.Status()
	if status.Phase != PhaseFailed || status.Message() != "boom" {
		t.Fatalf("last resolution must win the status field, got %#v", status)
	}
	// The failed fetch never touched the collection; the earlier snapshot
	// stays.
	if len(s.Products()) != 2 {
		t.Fatalf("collection should keep the successful snapshot, got %d", len(s.Products()))
	}
}

func TestOverlappingFetchesLastSuccessWins(t *testing.T) {
	gw := &overlapProductGateway{
		release: []chan struct{}{make(chan struct{}), make(chan struct{})},
		scripts: []func() ([]models.Product, error){
			func() ([]models.Product, error) { return nil, gateway.Transport(fmt.Errorf("boom")) },
			func() ([]models.Product, error) { return stampedProducts(3), nil },
		},
		started: make(chan struct{}),
	}
	s := NewCatalogStore(gw, zerolog.Nop())

	done := startOverlappingFetches(t, s, gw)

	close(gw.release[0])
	<-done[0]
	if s.Status().Phase != PhaseFailed {
		t.Fatalf("first resolution should win for now, got %v", s.Status())
	}

	close(gw.release[1])
	<-done[1]
	if s.Status().Phase != PhaseSucceeded {
		t.Fatalf("last resolution must win the status field, got %v", s.Status())
	}
	if len(s.Products()) != 3 {
		t.Fatalf("expected the late snapshot, got %d", len(s.Products()))
	}
}

func TestRecentIsPure(t *testing.T) {
	gw := &fakeProductGateway{products: stampedProducts(10)}
	s := NewCatalogStore(gw, zerolog.Nop())
	if err := s.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	before := s.Products()
	first := s.Recent()
	second := s.Recent()
	if !reflect.DeepEqual(first, second) {
		t.Fatal("same collection must derive the same view")
	}
	if !reflect.DeepEqual(before, s.Products()) {
		t.Fatal("deriving the view must not reorder the canonical collection")
	}
}
