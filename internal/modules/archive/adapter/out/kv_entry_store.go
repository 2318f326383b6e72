package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ghostnote/internal/modules/archive/domain"
	archiveout "ghostnote/internal/modules/archive/port/out"
	strategy "ghostnote/internal/modules/strategy/domain"
	apperrors "ghostnote/internal/platform/errors"
	"ghostnote/internal/platform/kv"
)

type KVEntryStore struct {
	store kv.Store
}

func NewKVEntryStore(store kv.Store) archiveout.EntryStore {
	return &KVEntryStore{store: store}
}

func (s *KVEntryStore) Put(ctx context.Context, entry domain.Entry) error {
	return kv.WriteJSON(ctx, s.store, domain.Key(entry.ID), entry)
}

// Get looks the slug up under the current prefix, then the legacy one.
func (s *KVEntryStore) Get(ctx context.Context, slug string) (domain.Entry, error) {
	for _, key := range []string{domain.Key(slug), domain.LegacyKey(slug)} {
		raw, err := s.store.Get(ctx, key)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return domain.Entry{}, fmt.Errorf("read archive %s: %w", slug, err)
		}
		entry, err := decodeEntry(raw, slug)
		if err != nil {
			return domain.Entry{}, fmt.Errorf("%w: archive %s: %v", kv.ErrMalformed, slug, err)
		}
		return entry, nil
	}
	return domain.Entry{}, fmt.Errorf("archive %s: %w", slug, apperrors.ErrNotFound)
}

// storedEntry accepts older layouts: content wrapped in "data", a missing
// id, mode or language.
type storedEntry struct {
	ID        string             `json:"id"`
	Timestamp int64              `json:"timestamp"`
	Content   *strategy.Content  `json:"content"`
	Data      *strategy.Content  `json:"data"`
	Analysis  *strategy.Analysis `json:"analysis"`
	Mode      string             `json:"mode"`
	Language  string             `json:"language"`
}

func decodeEntry(raw []byte, slug string) (domain.Entry, error) {
	stored := storedEntry{}
	if err := json.Unmarshal(raw, &stored); err != nil {
		return domain.Entry{}, err
	}
	entry := domain.Entry{
		ID:        stored.ID,
		Timestamp: stored.Timestamp,
		Analysis:  stored.Analysis,
		Language:  strings.ToUpper(stored.Language),
	}
	switch {
	case stored.Content != nil:
		entry.Content = *stored.Content
	case stored.Data != nil:
		entry.Content = *stored.Data
	}
	if entry.ID == "" {
		entry.ID = slug
	}
	if entry.Language == "" {
		entry.Language = domain.DefaultLanguage
	}
	mode, err := strategy.ParseMode(stored.Mode)
	if err != nil {
		mode = strategy.ModeScribe
		if entry.Content.Scribe == nil && entry.Content.Strategist != nil {
			mode = strategy.ModeStrategist
		}
	}
	entry.Mode = mode
	return entry, nil
}
