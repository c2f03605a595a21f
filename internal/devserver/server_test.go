package devserver

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"storefront/client/internal/config"
	"storefront/client/internal/gateway"
	"storefront/client/internal/models"
)

// The fixture is exercised through the real gateway client so the pair stays
// honest about the upstream contract.
func newFixture(t *testing.T) (*Server, *gateway.Client) {
	t.Helper()
	srv := New(zerolog.Nop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, gateway.New(config.GatewayConfig{BaseURL: ts.URL}, zerolog.Nop())
}

func TestSignupAndListRoundTrip(t *testing.T) {
	srv, client := newFixture(t)
	srv.SeedProducts(models.Product{
		ProductID:    "p-1",
		ProductName:  "Galaxy A16",
		Price:        1899,
		ProductImage: `F:\Products_Images\galaxy-a16.jpg`,
		DateCreated:  "2025-02-01T09:00:00",
	})

	input := models.Customer{
		CustomerAccountNumber: "acct-1",
		FirstName:             "Ama",
		LastName:              "Mensah",
		ContactNumber:         "0244000001",
		Password:              "pw",
	}
	created, err := client.CreateCustomer(context.Background(), input)
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if created.AccountType != models.AccountTypeCustomer {
		t.Fatalf("default account type not applied: %#v", created)
	}

	customers, err := client.ListCustomers(context.Background())
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	if len(customers) != 1 || customers[0].ContactNumber != "0244000001" {
		t.Fatalf("unexpected customers: %#v", customers)
	}

	products, err := client.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(products) != 1 || products[0].ProductImage != `F:\Products_Images\galaxy-a16.jpg` {
		t.Fatalf("unexpected products: %#v", products)
	}
}

func TestDuplicateContactNumberRejected(t *testing.T) {
	srv, client := newFixture(t)
	srv.SeedCustomers(models.Customer{ContactNumber: "0244000001"})

	_, err := client.CreateCustomer(context.Background(), models.Customer{ContactNumber: "0244000001"})
	var gwErr *gateway.Error
	if !errors.As(err, &gwErr) || gwErr.Kind != gateway.KindRejected {
		t.Fatalf("expected logical rejection, got %v", err)
	}
	if gwErr.Message != "Customer with this contact number already exists." {
		t.Fatalf("unexpected message: %q", gwErr.Message)
	}
}
