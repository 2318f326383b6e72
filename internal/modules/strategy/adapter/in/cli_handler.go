package in

import (
	"context"
	"time"

	"ghostnote/internal/modules/strategy/dto"
	strategyin "ghostnote/internal/modules/strategy/port/in"
)

type CLIHandler struct {
	usecase strategyin.Usecase
}

func NewCLIHandler(usecase strategyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Analyze(ctx context.Context, transcript string, duration time.Duration) (dto.Analysis, error) {
	return h.usecase.Analyze(ctx, dto.AnalyzeInput{Transcript: transcript, Duration: duration})
}

func (h CLIHandler) Generate(ctx context.Context, transcript string, duration time.Duration, language string, variation bool) (dto.SessionOutput, error) {
	return h.usecase.Generate(ctx, dto.GenerateInput{Transcript: transcript, Duration: duration, Language: language, Variation: variation})
}

func (h CLIHandler) ShareText(ctx context.Context, content dto.Content, mode string) (string, error) {
	return h.usecase.ShareText(ctx, dto.ShareInput{Content: content, Mode: mode})
}
