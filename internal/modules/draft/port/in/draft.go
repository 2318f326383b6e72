package in

import (
	"context"

	"ghostnote/internal/modules/draft/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.DraftOutput, error)
	Get(ctx context.Context, id int64) (dto.DraftOutput, error)
	Create(ctx context.Context, input dto.CreateInput) (dto.DraftOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.DraftOutput, error)
	AttachContent(ctx context.Context, input dto.AttachContentInput) (dto.DraftOutput, error)
	Delete(ctx context.Context, id int64) error
}
