package in

import (
	"context"

	"ghostnote/internal/modules/wager/dto"
)

type Usecase interface {
	Seal(ctx context.Context, input dto.SealInput) (dto.WagerOutput, error)
	List(ctx context.Context) ([]dto.WagerOutput, error)
	Get(ctx context.Context, id int64) (dto.WagerOutput, error)
	Stats(ctx context.Context) (dto.StatsOutput, error)
	ApplyAudit(ctx context.Context, input dto.ApplyAuditInput) (dto.WagerOutput, error)
}
