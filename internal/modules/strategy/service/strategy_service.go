package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"ghostnote/internal/modules/strategy/domain"
	"ghostnote/internal/modules/strategy/dto"
	strategyout "ghostnote/internal/modules/strategy/port/out"
	"ghostnote/internal/platform/clock"
	apperrors "ghostnote/internal/platform/errors"
	"ghostnote/internal/platform/id"
	"ghostnote/internal/platform/logging"
)

const defaultLanguage = "EN"

type StrategyService struct {
	clock     clock.Clock
	idGen     id.Generator
	generator strategyout.Generator
	logger    *zap.Logger
}

func NewStrategyService(clock clock.Clock, idGen id.Generator, generator strategyout.Generator, logger *zap.Logger) *StrategyService {
	return &StrategyService{clock: clock, idGen: idGen, generator: generator, logger: logging.OrNop(logger)}
}

func (s *StrategyService) Analyze(transcript string, duration time.Duration, executiveState string) (domain.Analysis, error) {
	if strings.TrimSpace(transcript) == "" {
		return domain.Analysis{}, fmt.Errorf("%w: transcript is required", apperrors.ErrInvalidInput)
	}
	return domain.EmphasisAudit(transcript, duration, executiveState), nil
}

func (s *StrategyService) Generate(ctx context.Context, transcript string, duration time.Duration, language string, variation bool) (dto.SessionOutput, error) {
	analysis, err := s.Analyze(transcript, duration, "")
	if err != nil {
		return dto.SessionOutput{}, err
	}
	if s.generator == nil {
		return dto.SessionOutput{}, fmt.Errorf("%w: no strategy generator configured", apperrors.ErrExternalService)
	}
	language = strings.ToUpper(strings.TrimSpace(language))
	if language == "" {
		language = defaultLanguage
	}

	raw, err := s.generator.Generate(ctx, strategyout.GenerateRequest{
		Transcript: transcript,
		Analysis:   analysis,
		Language:   language,
		Variation:  variation,
	})
	if err != nil {
		return dto.SessionOutput{}, fmt.Errorf("%w: generate strategy: %v", apperrors.ErrExternalService, err)
	}
	content := domain.Normalize(raw)
	if !content.Finalized() {
		return dto.SessionOutput{}, fmt.Errorf("%w: generator returned no thesis or judgment", apperrors.ErrExternalService)
	}
	if state, ok := raw["executive_state"].(string); ok && strings.TrimSpace(state) != "" {
		analysis.ExecutiveState = state
	}

	out := dto.SessionOutput{
		SessionID:   s.idGen.New(),
		GeneratedAt: s.clock.Now(),
		Language:    language,
		Content:     content,
		Analysis:    analysis,
	}
	s.logger.Info("strategy generated",
		zap.String("session_id", out.SessionID),
		zap.String("language", language),
		zap.Int("wpm", analysis.WPM),
	)
	return out, nil
}
