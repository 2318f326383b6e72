package usecase

import (
	"context"
	"time"

	"ghostnote/internal/modules/wager/domain"
	"ghostnote/internal/modules/wager/dto"
	wagerin "ghostnote/internal/modules/wager/port/in"
	"ghostnote/internal/modules/wager/service"
)

type Interactor struct {
	svc *service.WagerService
}

func NewInteractor(svc *service.WagerService) wagerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Seal(ctx context.Context, input dto.SealInput) (dto.WagerOutput, error) {
	w, err := i.svc.Seal(ctx, input.SessionID, input.Prediction, input.Days)
	if err != nil {
		return dto.WagerOutput{}, err
	}
	return toOutput(w, i.svc.Now()), nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.WagerOutput, error) {
	wagers, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	now := i.svc.Now()
	out := make([]dto.WagerOutput, 0, len(wagers))
	for _, w := range wagers {
		out = append(out, toOutput(w, now))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id int64) (dto.WagerOutput, error) {
	w, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.WagerOutput{}, err
	}
	return toOutput(w, i.svc.Now()), nil
}

func (i *Interactor) Stats(ctx context.Context) (dto.StatsOutput, error) {
	stats, err := i.svc.Stats(ctx)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	return dto.StatsOutput{
		Total:           stats.Total,
		Pending:         stats.Pending,
		Due:             stats.Due,
		Audited:         stats.Audited,
		AverageAccuracy: stats.AverageAccuracy,
	}, nil
}

func (i *Interactor) ApplyAudit(ctx context.Context, input dto.ApplyAuditInput) (dto.WagerOutput, error) {
	w, err := i.svc.ApplyAudit(ctx, input.ID, domain.AuditResult{
		AccuracyScore: input.AccuracyScore,
		BlindSpot:     input.BlindSpot,
		GrowthInsight: input.GrowthInsight,
	})
	if err != nil {
		return dto.WagerOutput{}, err
	}
	return toOutput(w, i.svc.Now()), nil
}

func toOutput(w domain.Wager, now time.Time) dto.WagerOutput {
	return dto.WagerOutput{
		ID:            w.ID,
		SessionID:     w.SessionID,
		Prediction:    w.Prediction,
		Days:          w.Days,
		CreatedAt:     w.CreatedAt,
		ReviewDate:    w.ReviewDate,
		Status:        string(w.Status),
		DisplayStatus: string(w.DisplayStatus(now)),
		AccuracyScore: w.AccuracyScore,
		BlindSpot:     w.BlindSpot,
		GrowthInsight: w.GrowthInsight,
	}
}
