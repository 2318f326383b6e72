package out

import (
	"context"

	"ghostnote/internal/modules/archive/domain"
)

// EntryStore keeps one store key per entry. Get returns apperrors.ErrNotFound
// when no key exists under either prefix.
type EntryStore interface {
	Put(ctx context.Context, entry domain.Entry) error
	Get(ctx context.Context, slug string) (domain.Entry, error)
}

// BriefWriter exports an entry as a markdown file and returns its path.
type BriefWriter interface {
	Write(ctx context.Context, dir string, entry domain.Entry) (string, error)
}

// BriefRenderer styles markdown for a terminal of the given width.
type BriefRenderer interface {
	Render(markdown string, width int) (string, error)
}
