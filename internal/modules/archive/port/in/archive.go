package in

import (
	"context"

	"ghostnote/internal/modules/archive/dto"
)

type Usecase interface {
	Publish(ctx context.Context, input dto.PublishInput) (dto.EntryOutput, error)
	Get(ctx context.Context, slug string) (dto.EntryOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (string, error)
	Render(ctx context.Context, input dto.RenderInput) (string, error)
}
