package in

import (
	"context"

	"ghostnote/internal/modules/draft/dto"
	draftin "ghostnote/internal/modules/draft/port/in"
)

type CLIHandler struct {
	usecase draftin.Usecase
}

func NewCLIHandler(usecase draftin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, title, transcript, tag, audioData string) (dto.DraftOutput, error) {
	return h.usecase.Create(ctx, dto.CreateInput{Title: title, Transcript: transcript, Tag: tag, AudioData: audioData})
}

func (h CLIHandler) List(ctx context.Context) ([]dto.DraftOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Show(ctx context.Context, id int64) (dto.DraftOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Update(ctx context.Context, input dto.UpdateInput) (dto.DraftOutput, error) {
	return h.usecase.Update(ctx, input)
}

func (h CLIHandler) Delete(ctx context.Context, id int64) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) AttachContent(ctx context.Context, input dto.AttachContentInput) (dto.DraftOutput, error) {
	return h.usecase.AttachContent(ctx, input)
}
