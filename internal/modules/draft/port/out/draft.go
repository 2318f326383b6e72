package out

import (
	"context"
	"time"

	"ghostnote/internal/modules/draft/domain"
)

// DraftStore persists the whole draft collection, newest first. Load returns
// an empty slice when nothing was ever saved and an error wrapping
// kv.ErrMalformed when the stored collection cannot be decoded.
type DraftStore interface {
	Load(ctx context.Context) ([]domain.Draft, error)
	Save(ctx context.Context, drafts []domain.Draft) error
	// Backup copies the stored value aside and returns the key it went to.
	Backup(ctx context.Context, at time.Time) (string, error)
}
