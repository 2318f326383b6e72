package in

import (
	"context"

	"ghostnote/internal/modules/archive/dto"
	archivein "ghostnote/internal/modules/archive/port/in"
)

type CLIHandler struct {
	usecase archivein.Usecase
}

func NewCLIHandler(usecase archivein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Publish(ctx context.Context, input dto.PublishInput) (dto.EntryOutput, error) {
	return h.usecase.Publish(ctx, input)
}

func (h CLIHandler) Show(ctx context.Context, slug string, width int) (string, error) {
	return h.usecase.Render(ctx, dto.RenderInput{Slug: slug, Width: width})
}

func (h CLIHandler) Get(ctx context.Context, slug string) (dto.EntryOutput, error) {
	return h.usecase.Get(ctx, slug)
}

func (h CLIHandler) Export(ctx context.Context, slug, dir string) (string, error) {
	return h.usecase.Export(ctx, dto.ExportInput{Slug: slug, Dir: dir})
}
