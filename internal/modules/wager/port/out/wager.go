package out

import (
	"context"
	"time"

	"ghostnote/internal/modules/wager/domain"
)

// WagerStore persists the whole ledger in stored order. Load wraps
// kv.ErrMalformed when the stored ledger cannot be decoded.
type WagerStore interface {
	Load(ctx context.Context) ([]domain.Wager, error)
	Save(ctx context.Context, wagers []domain.Wager) error
	// Backup copies the stored value aside and returns the key it went to.
	Backup(ctx context.Context, at time.Time) (string, error)
}
