package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ghostnote/internal/modules/archive/domain"
	archiveout "ghostnote/internal/modules/archive/port/out"
	strategy "ghostnote/internal/modules/strategy/domain"
	"ghostnote/internal/platform/clock"
	apperrors "ghostnote/internal/platform/errors"
	"ghostnote/internal/platform/events"
	"ghostnote/internal/platform/id"
	"ghostnote/internal/platform/kv"
	"ghostnote/internal/platform/logging"
)

type ArchiveService struct {
	clock     clock.Clock
	slugs     id.Generator
	store     archiveout.EntryStore
	writer    archiveout.BriefWriter
	renderer  archiveout.BriefRenderer
	publisher events.Publisher
	logger    *zap.Logger
}

func NewArchiveService(
	clock clock.Clock,
	slugs id.Generator,
	store archiveout.EntryStore,
	writer archiveout.BriefWriter,
	renderer archiveout.BriefRenderer,
	publisher events.Publisher,
	logger *zap.Logger,
) *ArchiveService {
	if slugs == nil {
		slugs = id.ArchiveSlug{Clock: clock}
	}
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &ArchiveService{
		clock:     clock,
		slugs:     slugs,
		store:     store,
		writer:    writer,
		renderer:  renderer,
		publisher: publisher,
		logger:    logging.OrNop(logger),
	}
}

// Publish snapshots the content under a fresh slug. The caller's values are
// copied so later edits to a draft never reach the archive.
func (s *ArchiveService) Publish(ctx context.Context, content strategy.Content, analysis *strategy.Analysis, mode, language string) (domain.Entry, error) {
	entry, err := domain.New(s.slugs.New(), s.clock.Now(), content.Clone(), analysis.Clone(), mode, language)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := s.store.Put(ctx, entry); err != nil {
		return domain.Entry{}, fmt.Errorf("publish archive: %w", err)
	}
	s.logger.Info("archive published", zap.String("slug", entry.ID), zap.String("mode", string(entry.Mode)))
	events.Emit(ctx, s.publisher, s.logger, events.SubjectArchivePublished, entry)
	return entry, nil
}

// Get resolves a slug. An unreadable entry is reported as missing.
func (s *ArchiveService) Get(ctx context.Context, slug string) (domain.Entry, error) {
	if slug == "" {
		return domain.Entry{}, fmt.Errorf("%w: slug is required", apperrors.ErrInvalidInput)
	}
	entry, err := s.store.Get(ctx, slug)
	if err != nil {
		if errors.Is(err, kv.ErrMalformed) {
			s.logger.Warn("archive entry is corrupt", zap.String("slug", slug), zap.Error(err))
			return domain.Entry{}, fmt.Errorf("archive %s: %w", slug, apperrors.ErrNotFound)
		}
		return domain.Entry{}, err
	}
	return entry, nil
}

func (s *ArchiveService) Export(ctx context.Context, slug, dir string) (string, error) {
	if s.writer == nil {
		return "", fmt.Errorf("%w: export is not configured", apperrors.ErrInvalidInput)
	}
	if dir == "" {
		return "", fmt.Errorf("%w: export directory is required", apperrors.ErrInvalidInput)
	}
	entry, err := s.Get(ctx, slug)
	if err != nil {
		return "", err
	}
	path, err := s.writer.Write(ctx, dir, entry)
	if err != nil {
		return "", fmt.Errorf("export archive %s: %w", slug, err)
	}
	s.logger.Info("archive exported", zap.String("slug", slug), zap.String("path", path))
	return path, nil
}

// Render returns the brief as markdown, styled when a renderer is set.
func (s *ArchiveService) Render(ctx context.Context, slug string, width int) (string, error) {
	entry, err := s.Get(ctx, slug)
	if err != nil {
		return "", err
	}
	brief := domain.Brief(entry)
	if s.renderer == nil {
		return brief, nil
	}
	styled, err := s.renderer.Render(brief, width)
	if err != nil {
		s.logger.Warn("brief styling failed, returning plain markdown", zap.Error(err))
		return brief, nil
	}
	return styled, nil
}
