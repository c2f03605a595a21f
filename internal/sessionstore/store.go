// Package sessionstore persists the authenticated-customer session across
// restarts: a single serialized record under a fixed location, written on
// successful login or signup and removed on logout.
package sessionstore

import (
	"context"
	"errors"
	"time"

	"storefront/client/internal/models"
)

var (
	ErrNoSession     = errors.New("no session")
	ErrUnknownSchema = errors.New("unknown session schema version")
)

const SchemaVersion = 1

type Record struct {
	SchemaVersion int             `json:"schemaVersion"`
	Customer      models.Customer `json:"customer"`
	SavedAt       time.Time       `json:"savedAt"`
}

func NewRecord(customer models.Customer) Record {
	return Record{
		SchemaVersion: SchemaVersion,
		Customer:      customer,
		SavedAt:       time.Now().UTC(),
	}
}

// Store is the durable backend. Save and Clear must complete before the
// owning operation reports success, so memory and durable state never
// disagree past an operation boundary.
type Store interface {
	Save(ctx context.Context, record Record) error
	Load(ctx context.Context) (Record, error)
	Clear(ctx context.Context) error
}
