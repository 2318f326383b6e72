package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ghostnote/internal/modules/wager/domain"
	wagerout "ghostnote/internal/modules/wager/port/out"
	"ghostnote/internal/platform/clock"
	apperrors "ghostnote/internal/platform/errors"
	"ghostnote/internal/platform/events"
	"ghostnote/internal/platform/kv"
	"ghostnote/internal/platform/logging"
	"ghostnote/internal/platform/tx"
)

type WagerService struct {
	clock     clock.Clock
	store     wagerout.WagerStore
	tx        tx.Manager
	publisher events.Publisher
	logger    *zap.Logger
}

func NewWagerService(clock clock.Clock, store wagerout.WagerStore, txm tx.Manager, publisher events.Publisher, logger *zap.Logger) *WagerService {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &WagerService{clock: clock, store: store, tx: txm, publisher: publisher, logger: logging.OrNop(logger)}
}

func (s *WagerService) Now() time.Time {
	return s.clock.Now()
}

func (s *WagerService) Seal(ctx context.Context, sessionID *string, prediction string, days int) (domain.Wager, error) {
	now := s.clock.Now()
	wager, err := domain.New(now.UnixMilli(), sessionID, prediction, days, now)
	if err != nil {
		return domain.Wager{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	err = s.tx.Within(ctx, func(ctx context.Context) error {
		wagers, err := s.loadForWrite(ctx)
		if err != nil {
			return err
		}
		for _, w := range wagers {
			if w.ID >= wager.ID {
				wager.ID = w.ID + 1
			}
		}
		return s.store.Save(ctx, append([]domain.Wager{wager}, wagers...))
	})
	if err != nil {
		return domain.Wager{}, fmt.Errorf("seal wager: %w", err)
	}
	s.logger.Info("wager sealed", zap.Int64("id", wager.ID), zap.Int("days", wager.Days))
	events.Emit(ctx, s.publisher, s.logger, events.SubjectWagerSealed, wager)
	return wager, nil
}

// List returns the ledger as persisted. A corrupt ledger reads as empty.
func (s *WagerService) List(ctx context.Context) ([]domain.Wager, error) {
	return s.load(ctx)
}

func (s *WagerService) Get(ctx context.Context, id int64) (domain.Wager, error) {
	wagers, err := s.load(ctx)
	if err != nil {
		return domain.Wager{}, err
	}
	for _, w := range wagers {
		if w.ID == id {
			return w, nil
		}
	}
	return domain.Wager{}, fmt.Errorf("wager %d: %w", id, apperrors.ErrNotFound)
}

func (s *WagerService) Stats(ctx context.Context) (domain.Stats, error) {
	wagers, err := s.load(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.Summarize(wagers, s.clock.Now()), nil
}

// ApplyAudit is the single read-modify-write that makes a wager AUDITED.
// Nothing is written when the wager is missing, already audited or the
// result is invalid.
func (s *WagerService) ApplyAudit(ctx context.Context, id int64, result domain.AuditResult) (domain.Wager, error) {
	var audited domain.Wager
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		wagers, err := s.load(ctx)
		if err != nil {
			return err
		}
		idx := -1
		for i, w := range wagers {
			if w.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("wager %d: %w", id, apperrors.ErrNotFound)
		}
		if wagers[idx].Audited() {
			return fmt.Errorf("wager %d: %w", id, apperrors.ErrAlreadyAudited)
		}
		resolved, err := wagers[idx].Resolve(result)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		wagers[idx] = resolved
		if err := s.store.Save(ctx, wagers); err != nil {
			return fmt.Errorf("save ledger: %w", err)
		}
		audited = resolved
		return nil
	})
	if err != nil {
		return domain.Wager{}, err
	}
	s.logger.Info("wager audited", zap.Int64("id", id), zap.Int("accuracy_score", result.AccuracyScore))
	events.Emit(ctx, s.publisher, s.logger, events.SubjectWagerAudited, audited)
	return audited, nil
}

func (s *WagerService) load(ctx context.Context) ([]domain.Wager, error) {
	wagers, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, kv.ErrMalformed) {
			s.logger.Warn("wager ledger is corrupt, treating as empty", zap.Error(err))
			return []domain.Wager{}, nil
		}
		return nil, fmt.Errorf("load wagers: %w", err)
	}
	return wagers, nil
}

// loadForWrite copies a corrupt ledger aside before it is replaced and
// refuses the write when the copy fails.
func (s *WagerService) loadForWrite(ctx context.Context) ([]domain.Wager, error) {
	wagers, err := s.store.Load(ctx)
	if err == nil {
		return wagers, nil
	}
	if !errors.Is(err, kv.ErrMalformed) {
		return nil, fmt.Errorf("load wagers: %w", err)
	}
	backup, backupErr := s.store.Backup(ctx, s.clock.Now())
	if backupErr != nil {
		return nil, fmt.Errorf("wager ledger is corrupt and could not be backed up: %w", errors.Join(err, backupErr))
	}
	s.logger.Warn("wager ledger is corrupt, starting over", zap.String("backup_key", backup), zap.Error(err))
	return []domain.Wager{}, nil
}
