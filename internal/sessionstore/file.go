package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"storefront/client/internal/security"
)

// FileStore keeps the session record in a single local file, optionally
// sealed at rest. The record carries the customer's credentials verbatim, so
// production deployments should configure a seal key.
type FileStore struct {
	path string
	key  []byte // nil disables sealing
}

func NewFileStore(path string, sealKey []byte) *FileStore {
	return &FileStore{path: path, key: sealKey}
}

func (s *FileStore) Save(_ context.Context, record Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if s.key != nil {
		if payload, err = security.Seal(s.key, payload); err != nil {
			return fmt.Errorf("seal session: %w", err)
		}
	}

	// Write-then-rename so a crash mid-write never leaves a torn record.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context) (Record, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, ErrNoSession
		}
		return Record{}, fmt.Errorf("read session file: %w", err)
	}

	if s.key != nil {
		if payload, err = security.Open(s.key, payload); err != nil {
			return Record{}, fmt.Errorf("unseal session: %w", err)
		}
	}

	var record Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return Record{}, fmt.Errorf("decode session: %w", err)
	}
	if record.SchemaVersion != SchemaVersion {
		return Record{}, fmt.Errorf("%w: %d", ErrUnknownSchema, record.SchemaVersion)
	}
	return record, nil
}

func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
