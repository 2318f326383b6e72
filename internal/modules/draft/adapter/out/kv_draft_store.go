package out

import (
	"context"
	"time"

	"ghostnote/internal/modules/draft/domain"
	draftout "ghostnote/internal/modules/draft/port/out"
	"ghostnote/internal/platform/kv"
)

const DraftsKey = "ghostnote_drafts"

type KVDraftStore struct {
	store kv.Store
}

func NewKVDraftStore(store kv.Store) draftout.DraftStore {
	return &KVDraftStore{store: store}
}

func (s *KVDraftStore) Load(ctx context.Context) ([]domain.Draft, error) {
	drafts := []domain.Draft{}
	if _, err := kv.ReadJSON(ctx, s.store, DraftsKey, &drafts); err != nil {
		return []domain.Draft{}, err
	}
	if drafts == nil {
		drafts = []domain.Draft{}
	}
	return drafts, nil
}

func (s *KVDraftStore) Save(ctx context.Context, drafts []domain.Draft) error {
	if drafts == nil {
		drafts = []domain.Draft{}
	}
	return kv.WriteJSON(ctx, s.store, DraftsKey, drafts)
}

func (s *KVDraftStore) Backup(ctx context.Context, at time.Time) (string, error) {
	return kv.Backup(ctx, s.store, DraftsKey, at)
}
