package usecase

import (
	"context"

	"ghostnote/internal/modules/audit/dto"
	auditin "ghostnote/internal/modules/audit/port/in"
	"ghostnote/internal/modules/audit/service"
)

type Interactor struct {
	svc *service.AuditService
}

func NewInteractor(svc *service.AuditService) auditin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Audit(ctx context.Context, input dto.AuditInput) (dto.AuditOutput, error) {
	result, err := i.svc.Audit(ctx, input.WagerID, input.FollowUp)
	if err != nil {
		return dto.AuditOutput{}, err
	}
	return dto.AuditOutput{
		WagerID:       input.WagerID,
		AccuracyScore: result.AccuracyScore,
		BlindSpot:     result.BlindSpot,
		GrowthInsight: result.GrowthInsight,
		Resolver:      i.svc.ResolverName(),
	}, nil
}
