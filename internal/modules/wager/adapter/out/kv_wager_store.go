package out

import (
	"context"
	"time"

	"ghostnote/internal/modules/wager/domain"
	wagerout "ghostnote/internal/modules/wager/port/out"
	"ghostnote/internal/platform/kv"
)

const HistoryKey = "ghostnote_history"

type KVWagerStore struct {
	store kv.Store
}

func NewKVWagerStore(store kv.Store) wagerout.WagerStore {
	return &KVWagerStore{store: store}
}

func (s *KVWagerStore) Load(ctx context.Context) ([]domain.Wager, error) {
	wagers := []domain.Wager{}
	if _, err := kv.ReadJSON(ctx, s.store, HistoryKey, &wagers); err != nil {
		return []domain.Wager{}, err
	}
	if wagers == nil {
		wagers = []domain.Wager{}
	}
	return wagers, nil
}

func (s *KVWagerStore) Save(ctx context.Context, wagers []domain.Wager) error {
	if wagers == nil {
		wagers = []domain.Wager{}
	}
	return kv.WriteJSON(ctx, s.store, HistoryKey, wagers)
}

func (s *KVWagerStore) Backup(ctx context.Context, at time.Time) (string, error) {
	return kv.Backup(ctx, s.store, HistoryKey, at)
}
