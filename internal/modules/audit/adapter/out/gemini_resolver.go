package out

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"ghostnote/internal/modules/audit/domain"
	auditout "ghostnote/internal/modules/audit/port/out"
	apperrors "ghostnote/internal/platform/errors"
)

// JSONModel is the slice of the LLM client the resolver needs.
type JSONModel interface {
	GenerateJSON(ctx context.Context, system, prompt string) (string, error)
}

type GeminiResolver struct {
	model JSONModel
}

func NewGeminiResolver(model JSONModel) auditout.Resolver {
	return &GeminiResolver{model: model}
}

const resolverInstruction = `You audit an executive's past prediction against what actually happened.
Reply with one JSON object only: {"accuracy_score": integer 0-100,
"blind_spot": one sentence on what they missed,
"growth_insight": one sentence on what to watch next time}.`

func (r *GeminiResolver) Name() string { return "gemini" }

func (r *GeminiResolver) Resolve(ctx context.Context, req domain.Request) (domain.Result, error) {
	prompt := fmt.Sprintf("Prediction (sealed %s for %d days):\n%s\n\nWhat happened:\n%s",
		req.SealedAt.Format("2006-01-02"), req.Days, req.Prediction, req.FollowUp)
	text, err := r.model.GenerateJSON(ctx, resolverInstruction, prompt)
	if err != nil {
		return domain.Result{}, err
	}
	var payload struct {
		AccuracyScore json.Number `json:"accuracy_score"`
		BlindSpot     string      `json:"blind_spot"`
		GrowthInsight string      `json:"growth_insight"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return domain.Result{}, fmt.Errorf("decode audit json: %w", err)
	}
	score, err := payload.AccuracyScore.Float64()
	if err != nil {
		return domain.Result{}, fmt.Errorf("accuracy score %q: %w", payload.AccuracyScore, err)
	}
	if score < 0 || score > 100 {
		return domain.Result{}, fmt.Errorf("%w: accuracy score %v outside 0-100", apperrors.ErrExternalService, score)
	}
	return domain.Result{
		AccuracyScore: int(math.Round(score)),
		BlindSpot:     payload.BlindSpot,
		GrowthInsight: payload.GrowthInsight,
	}, nil
}
