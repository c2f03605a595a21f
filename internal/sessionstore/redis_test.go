package sessionstore

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"storefront/client/internal/config"
	"storefront/client/internal/models"
)

func newRedisHarness(t *testing.T) *RedisStore {
	t.Helper()
	srv := miniredis.RunT(t)
	s, err := NewRedisStore(context.Background(), config.RedisConfig{
		Addr: srv.Addr(),
		Key:  "storefront:session",
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRedisStoreRoundTrip(t *testing.T) {
	s := newRedisHarness(t)
	ctx := context.Background()

	if _, err := s.Load(ctx); !errors.Is(err, ErrNoSession) {
		t.Fatalf("empty store should report no session, got %v", err)
	}

	record := NewRecord(models.Customer{
		CustomerAccountNumber: "acct-7",
		ContactNumber:         "0244000007",
	})
	if err := s.Save(ctx, record); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Customer.CustomerAccountNumber != "acct-7" {
		t.Fatalf("loaded wrong record: %#v", loaded.Customer)
	}
	if loaded.SchemaVersion != SchemaVersion {
		t.Fatalf("schema version = %d, want %d", loaded.SchemaVersion, SchemaVersion)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := s.Load(ctx); !errors.Is(err, ErrNoSession) {
		t.Fatalf("cleared store should report no session, got %v", err)
	}
}

func TestRedisStoreRejectsUnknownSchema(t *testing.T) {
	srv := miniredis.RunT(t)
	s, err := NewRedisStore(context.Background(), config.RedisConfig{
		Addr: srv.Addr(),
		Key:  "storefront:session",
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := srv.Set("storefront:session", `{"schemaVersion":99,"customer":{}}`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := s.Load(context.Background()); !errors.Is(err, ErrUnknownSchema) {
		t.Fatalf("expected schema rejection, got %v", err)
	}
}

func TestRedisStoreRefusesUnreachableServer(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	if _, err := NewRedisStore(context.Background(), config.RedisConfig{Addr: addr, Key: "k"}); err == nil {
		t.Fatal("expected ping failure against a closed server")
	}
}
