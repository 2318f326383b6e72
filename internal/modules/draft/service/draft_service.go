package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ghostnote/internal/modules/draft/domain"
	draftout "ghostnote/internal/modules/draft/port/out"
	strategy "ghostnote/internal/modules/strategy/domain"
	"ghostnote/internal/platform/clock"
	apperrors "ghostnote/internal/platform/errors"
	"ghostnote/internal/platform/kv"
	"ghostnote/internal/platform/logging"
	"ghostnote/internal/platform/tx"
)

type DraftService struct {
	clock  clock.Clock
	store  draftout.DraftStore
	tx     tx.Manager
	logger *zap.Logger
}

func NewDraftService(clock clock.Clock, store draftout.DraftStore, txm tx.Manager, logger *zap.Logger) *DraftService {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &DraftService{clock: clock, store: store, tx: txm, logger: logging.OrNop(logger)}
}

// List never fails on a corrupt collection: it logs and reports no drafts.
func (s *DraftService) List(ctx context.Context) ([]domain.Draft, error) {
	return s.load(ctx)
}

func (s *DraftService) Get(ctx context.Context, id int64) (domain.Draft, error) {
	drafts, err := s.load(ctx)
	if err != nil {
		return domain.Draft{}, err
	}
	for _, d := range drafts {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.Draft{}, fmt.Errorf("draft %d: %w", id, apperrors.ErrNotFound)
}

func (s *DraftService) Create(ctx context.Context, title, transcript, tag, audioData string) (domain.Draft, error) {
	if strings.TrimSpace(transcript) == "" {
		transcript = domain.PlaceholderTranscript
	}
	if strings.TrimSpace(tag) == "" {
		tag = domain.DefaultTag
	}
	now := s.clock.Now()
	title = strings.TrimSpace(title)
	if title == "" {
		title = domain.DefaultTitle(now)
	}
	draft := domain.Draft{
		ID:         now.UnixMilli(),
		Title:      title,
		Transcript: transcript,
		Tag:        tag,
		CreatedAt:  now,
		AudioData:  audioData,
	}
	if err := draft.Validate(); err != nil {
		return domain.Draft{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	err := s.tx.Within(ctx, func(ctx context.Context) error {
		drafts, err := s.loadForWrite(ctx)
		if err != nil {
			return err
		}
		for _, d := range drafts {
			if d.ID >= draft.ID {
				draft.ID = d.ID + 1
			}
		}
		return s.store.Save(ctx, append([]domain.Draft{draft}, drafts...))
	})
	if err != nil {
		return domain.Draft{}, fmt.Errorf("create draft: %w", err)
	}
	s.logger.Debug("draft created", zap.Int64("id", draft.ID), zap.String("status", string(draft.Status())))
	return draft, nil
}

func (s *DraftService) Update(ctx context.Context, id int64, patch domain.Patch) (domain.Draft, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return domain.Draft{}, fmt.Errorf("%w: title is required", apperrors.ErrInvalidInput)
	}
	var updated domain.Draft
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		drafts, err := s.load(ctx)
		if err != nil {
			return err
		}
		idx := indexOf(drafts, id)
		if idx < 0 {
			return fmt.Errorf("draft %d: %w", id, apperrors.ErrNotFound)
		}
		updated = drafts[idx].Apply(patch)
		drafts[idx] = updated
		return s.store.Save(ctx, drafts)
	})
	if err != nil {
		return domain.Draft{}, err
	}
	return updated, nil
}

// Delete is idempotent: removing an unknown id leaves the store untouched.
func (s *DraftService) Delete(ctx context.Context, id int64) error {
	return s.tx.Within(ctx, func(ctx context.Context) error {
		drafts, err := s.load(ctx)
		if err != nil {
			return err
		}
		idx := indexOf(drafts, id)
		if idx < 0 {
			return nil
		}
		kept := append(drafts[:idx:idx], drafts[idx+1:]...)
		return s.store.Save(ctx, kept)
	})
}

// AttachContent stores freshly generated content on a draft and stamps
// last_updated in the same write.
func (s *DraftService) AttachContent(ctx context.Context, id int64, content strategy.Content, analysis *strategy.Analysis) (domain.Draft, error) {
	now := s.clock.Now()
	return s.Update(ctx, id, domain.Patch{Content: &content, Analysis: analysis, LastUpdated: &now})
}

func (s *DraftService) load(ctx context.Context) ([]domain.Draft, error) {
	drafts, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, kv.ErrMalformed) {
			s.logger.Warn("draft collection is corrupt, treating as empty", zap.Error(err))
			return []domain.Draft{}, nil
		}
		return nil, fmt.Errorf("load drafts: %w", err)
	}
	return drafts, nil
}

// loadForWrite is load for paths that save a new collection. A corrupt
// collection is copied aside first; if that fails the write is refused so
// the unreadable value is never silently replaced.
func (s *DraftService) loadForWrite(ctx context.Context) ([]domain.Draft, error) {
	drafts, err := s.store.Load(ctx)
	if err == nil {
		return drafts, nil
	}
	if !errors.Is(err, kv.ErrMalformed) {
		return nil, fmt.Errorf("load drafts: %w", err)
	}
	backup, backupErr := s.store.Backup(ctx, s.clock.Now())
	if backupErr != nil {
		return nil, fmt.Errorf("draft collection is corrupt and could not be backed up: %w", errors.Join(err, backupErr))
	}
	s.logger.Warn("draft collection is corrupt, starting over", zap.String("backup_key", backup), zap.Error(err))
	return []domain.Draft{}, nil
}

func indexOf(drafts []domain.Draft, id int64) int {
	for i, d := range drafts {
		if d.ID == id {
			return i
		}
	}
	return -1
}
