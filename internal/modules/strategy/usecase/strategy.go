package usecase

import (
	"context"
	"fmt"

	"ghostnote/internal/modules/strategy/domain"
	"ghostnote/internal/modules/strategy/dto"
	strategyin "ghostnote/internal/modules/strategy/port/in"
	"ghostnote/internal/modules/strategy/service"
	apperrors "ghostnote/internal/platform/errors"
)

type Interactor struct {
	svc *service.StrategyService
}

func NewInteractor(svc *service.StrategyService) strategyin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Analyze(_ context.Context, input dto.AnalyzeInput) (domain.Analysis, error) {
	return i.svc.Analyze(input.Transcript, input.Duration, input.ExecutiveState)
}

func (i *Interactor) Generate(ctx context.Context, input dto.GenerateInput) (dto.SessionOutput, error) {
	return i.svc.Generate(ctx, input.Transcript, input.Duration, input.Language, input.Variation)
}

func (i *Interactor) ShareText(_ context.Context, input dto.ShareInput) (string, error) {
	mode, err := domain.ParseMode(input.Mode)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return domain.ShareText(input.Content, mode), nil
}
