package in

import (
	"context"

	"ghostnote/internal/modules/strategy/dto"
)

type Usecase interface {
	Analyze(ctx context.Context, input dto.AnalyzeInput) (dto.Analysis, error)
	Generate(ctx context.Context, input dto.GenerateInput) (dto.SessionOutput, error)
	ShareText(ctx context.Context, input dto.ShareInput) (string, error)
}
