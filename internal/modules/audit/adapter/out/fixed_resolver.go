package out

import (
	"context"

	"ghostnote/internal/modules/audit/domain"
	auditout "ghostnote/internal/modules/audit/port/out"
)

// FixedResolver answers every audit with the same verdict. It keeps the
// ledger usable offline and in demos.
type FixedResolver struct {
	Result domain.Result
}

func NewFixedResolver() auditout.Resolver {
	return &FixedResolver{Result: domain.Result{
		AccuracyScore: 85,
		BlindSpot:     "Overestimated the direct correlation between input and outcome.",
		GrowthInsight: "Focus on secondary effects in the next cycle.",
	}}
}

func (r *FixedResolver) Name() string { return "fixed" }

func (r *FixedResolver) Resolve(ctx context.Context, _ domain.Request) (domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return domain.Result{}, err
	}
	return r.Result, nil
}
