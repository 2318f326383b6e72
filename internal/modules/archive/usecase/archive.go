package usecase

import (
	"context"

	"ghostnote/internal/modules/archive/domain"
	"ghostnote/internal/modules/archive/dto"
	archivein "ghostnote/internal/modules/archive/port/in"
	"ghostnote/internal/modules/archive/service"
)

const publicPathPrefix = "/archive/"

type Interactor struct {
	svc *service.ArchiveService
}

func NewInteractor(svc *service.ArchiveService) archivein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Publish(ctx context.Context, input dto.PublishInput) (dto.EntryOutput, error) {
	entry, err := i.svc.Publish(ctx, input.Content, input.Analysis, input.Mode, input.Language)
	if err != nil {
		return dto.EntryOutput{}, err
	}
	return toOutput(entry), nil
}

func (i *Interactor) Get(ctx context.Context, slug string) (dto.EntryOutput, error) {
	entry, err := i.svc.Get(ctx, slug)
	if err != nil {
		return dto.EntryOutput{}, err
	}
	return toOutput(entry), nil
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (string, error) {
	return i.svc.Export(ctx, input.Slug, input.Dir)
}

func (i *Interactor) Render(ctx context.Context, input dto.RenderInput) (string, error) {
	return i.svc.Render(ctx, input.Slug, input.Width)
}

func toOutput(e domain.Entry) dto.EntryOutput {
	return dto.EntryOutput{
		ID:          e.ID,
		Timestamp:   e.Timestamp,
		PublishedAt: e.PublishedAt(),
		Content:     e.Content,
		Analysis:    e.Analysis,
		Mode:        string(e.Mode),
		Language:    e.Language,
		PublicPath:  publicPathPrefix + e.ID,
	}
}
