// Package store holds the client-side reactive state: the authenticated
// customer session and the catalog mirror. All mutation is serialized per
// store; network and durable-storage I/O happens outside the lock.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"storefront/client/internal/gateway"
	"storefront/client/internal/models"
	"storefront/client/internal/sessionstore"
)

// CustomerGateway is the slice of the remote gateway the session store needs.
type CustomerGateway interface {
	CreateCustomer(ctx context.Context, input models.Customer) (models.Customer, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
}

// CredentialMatcher scans a customer collection for a credential match. The
// default implementation compares plaintext verbatim because that is what the
// upstream contract does; the interface exists so a hashed or server-side
// check can replace it without touching the store.
type CredentialMatcher interface {
	Match(customers []models.Customer, contactNumber, password string) (models.Customer, bool)
}

type PlaintextMatcher struct{}

// Match returns the first record in list order whose contact number and
// password both compare exactly.
func (PlaintextMatcher) Match(customers []models.Customer, contactNumber, password string) (models.Customer, bool) {
	for _, c := range customers {
		if c.ContactNumber == contactNumber && c.Password == password {
			return c, true
		}
	}
	return models.Customer{}, false
}

type SessionStore struct {
	gw      CustomerGateway
	durable sessionstore.Store
	matcher CredentialMatcher
	log     zerolog.Logger

	mu        sync.Mutex
	current   *models.Customer
	details   *models.Customer
	customers []models.Customer
	selected  *models.Customer
	status    Status
}

func NewSessionStore(gw CustomerGateway, durable sessionstore.Store, matcher CredentialMatcher, logger zerolog.Logger) *SessionStore {
	if matcher == nil {
		matcher = PlaintextMatcher{}
	}
	return &SessionStore{
		gw:      gw,
		durable: durable,
		matcher: matcher,
		log:     logger,
		status:  Status{Phase: PhaseIdle},
	}
}

func (s *SessionStore) begin() {
	s.mu.Lock()
	s.status = Status{Phase: PhaseLoading}
	s.mu.Unlock()
}

func (s *SessionStore) resolve(err error) {
	s.mu.Lock()
	if err != nil {
		s.status = Status{Phase: PhaseFailed, Err: err}
	} else {
		s.status = Status{Phase: PhaseSucceeded}
	}
	s.mu.Unlock()
}

// CreateCustomer registers a new customer and, on acceptance, establishes and
// persists the session. A logical rejection from the gateway surfaces the
// payload message and leaves no session behind.
func (s *SessionStore) CreateCustomer(ctx context.Context, input models.Customer) (models.Customer, error) {
	s.begin()

	merged, err := s.gw.CreateCustomer(ctx, input)
	if err != nil {
		s.resolve(err)
		return models.Customer{}, err
	}

	// Durable write is awaited so memory and storage agree once the
	// operation reports success.
	if err := s.durable.Save(ctx, sessionstore.NewRecord(merged)); err != nil {
		err = fmt.Errorf("persist session: %w", err)
		s.resolve(err)
		return models.Customer{}, err
	}

	s.mu.Lock()
	s.current = &merged
	s.details = &merged
	s.status = Status{Phase: PhaseSucceeded}
	s.mu.Unlock()

	s.log.Info().Str("account", merged.CustomerAccountNumber).Msg("customer created")
	return merged, nil
}

// FetchCustomerList replaces the in-memory customer collection with the
// gateway snapshot.
func (s *SessionStore) FetchCustomerList(ctx context.Context) ([]models.Customer, error) {
	s.begin()

	customers, err := s.gw.ListCustomers(ctx)
	if err != nil {
		s.resolve(err)
		return nil, err
	}

	s.mu.Lock()
	s.customers = customers
	s.status = Status{Phase: PhaseSucceeded}
	s.mu.Unlock()
	return customers, nil
}

// Login fetches the full customer list, then establishes a session for the
// first record matching the supplied credentials. A transport failure during
// the list fetch propagates as the login failure; a clean scan with no match
// fails with an authentication error instead.
func (s *SessionStore) Login(ctx context.Context, contactNumber, password string) (models.Customer, error) {
	s.begin()

	// Explicit sequential dependency: the match never runs before the list
	// fetch has fully resolved.
	customers, err := s.FetchCustomerList(ctx)
	if err != nil {
		s.resolve(err)
		return models.Customer{}, err
	}

	match, ok := s.matcher.Match(customers, contactNumber, password)
	if !ok {
		authErr := gateway.AuthFailure("No customer found with the provided credentials.")
		s.resolve(authErr)
		return models.Customer{}, authErr
	}

	if err := s.durable.Save(ctx, sessionstore.NewRecord(match)); err != nil {
		err = fmt.Errorf("persist session: %w", err)
		s.resolve(err)
		return models.Customer{}, err
	}

	s.mu.Lock()
	s.current = &match
	s.details = &match
	s.status = Status{Phase: PhaseSucceeded}
	s.mu.Unlock()

	s.log.Info().Str("account", match.CustomerAccountNumber).Msg("login succeeded")
	return match, nil
}

// Logout clears the session from memory and durable storage before
// returning, so no subsequent read observes a stale session.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.details = nil
	s.mu.Unlock()

	if err := s.durable.Clear(ctx); err != nil {
		return fmt.Errorf("clear persisted session: %w", err)
	}
	s.log.Info().Msg("logged out")
	return nil
}

// Restore loads a previously persisted session into memory at app start.
// Having no persisted session is the normal cold-start case, not an error.
func (s *SessionStore) Restore(ctx context.Context) error {
	record, err := s.durable.Load(ctx)
	if err != nil {
		if errors.Is(err, sessionstore.ErrNoSession) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	customer := record.Customer
	s.current = &customer
	s.details = &customer
	s.mu.Unlock()

	s.log.Info().Str("account", customer.CustomerAccountNumber).Msg("session restored")
	return nil
}

// SetSelectedCustomer holds an auxiliary, non-authenticated reference for
// admin/detail flows, independent of the session lifecycle.
func (s *SessionStore) SetSelectedCustomer(customer models.Customer) {
	s.mu.Lock()
	s.selected = &customer
	s.mu.Unlock()
}

func (s *SessionStore) ClearSelectedCustomer() {
	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()
}

// ClearCustomers empties the customer list without touching the session.
func (s *SessionStore) ClearCustomers() {
	s.mu.Lock()
	s.customers = nil
	s.mu.Unlock()
}

func (s *SessionStore) CurrentCustomer() (models.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return models.Customer{}, false
	}
	return *s.current, true
}

func (s *SessionStore) CustomerDetails() (models.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.details == nil {
		return models.Customer{}, false
	}
	return *s.details, true
}

func (s *SessionStore) SelectedCustomer() (models.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return models.Customer{}, false
	}
	return *s.selected, true
}

func (s *SessionStore) Customers() []models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

func (s *SessionStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}
