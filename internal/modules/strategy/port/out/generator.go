package out

import (
	"context"

	"ghostnote/internal/modules/strategy/domain"
)

type GenerateRequest struct {
	Transcript string
	Analysis   domain.Analysis
	Language   string
	Variation  bool
}

// Generator produces raw strategy JSON. Field names may use any historical
// alias; the service normalizes them.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (map[string]any, error)
}
