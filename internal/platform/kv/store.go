package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	apperrors "ghostnote/internal/platform/errors"
)

// ErrMalformed marks a stored value that is not valid JSON. Ledger
// repositories recover from it locally instead of failing the caller.
var ErrMalformed = errors.New("malformed stored value")

// Store is a durable mapping from string keys to opaque values. There are no
// transactions and no locking: concurrent writers of the same key race and the
// last write wins.
type Store interface {
	// Get returns apperrors.ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
	Close() error
}

// ReadJSON decodes the value at key into v. found is false when the key is
// absent; a value that fails to decode yields ErrMalformed with found true.
func ReadJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return true, nil
}

// WriteJSON serializes v as JSON text and stores it at key.
func WriteJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Backup copies the raw value at key to a sibling key stamped with at, so a
// value that no longer decodes survives the write that replaces it.
func Backup(ctx context.Context, s Store, key string, at time.Time) (string, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	backup := key + ".corrupt." + strconv.FormatInt(at.UnixMilli(), 10)
	if err := s.Set(ctx, backup, raw); err != nil {
		return "", fmt.Errorf("write %s: %w", backup, err)
	}
	return backup, nil
}
