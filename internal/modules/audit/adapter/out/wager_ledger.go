package out

import (
	"context"

	"ghostnote/internal/modules/audit/domain"
	auditout "ghostnote/internal/modules/audit/port/out"
	wagerdto "ghostnote/internal/modules/wager/dto"
	wagerin "ghostnote/internal/modules/wager/port/in"
)

// WagerLedger reads and resolves wagers through the wager module's use cases.
type WagerLedger struct {
	wagers wagerin.Usecase
}

func NewWagerLedger(wagers wagerin.Usecase) auditout.Ledger {
	return &WagerLedger{wagers: wagers}
}

func (l *WagerLedger) Lookup(ctx context.Context, wagerID int64) (domain.Subject, error) {
	w, err := l.wagers.Get(ctx, wagerID)
	if err != nil {
		return domain.Subject{}, err
	}
	return domain.Subject{
		WagerID:    w.ID,
		Prediction: w.Prediction,
		Days:       w.Days,
		SealedAt:   w.CreatedAt,
		ReviewDate: w.ReviewDate,
		Audited:    w.Status == "AUDITED",
	}, nil
}

func (l *WagerLedger) Record(ctx context.Context, wagerID int64, result domain.Result) error {
	_, err := l.wagers.ApplyAudit(ctx, wagerdto.ApplyAuditInput{
		ID:            wagerID,
		AccuracyScore: result.AccuracyScore,
		BlindSpot:     result.BlindSpot,
		GrowthInsight: result.GrowthInsight,
	})
	return err
}
