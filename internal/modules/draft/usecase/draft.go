package usecase

import (
	"context"

	"ghostnote/internal/modules/draft/domain"
	"ghostnote/internal/modules/draft/dto"
	draftin "ghostnote/internal/modules/draft/port/in"
	"ghostnote/internal/modules/draft/service"
)

type Interactor struct {
	svc *service.DraftService
}

func NewInteractor(svc *service.DraftService) draftin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.DraftOutput, error) {
	drafts, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DraftOutput, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, toOutput(d))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id int64) (dto.DraftOutput, error) {
	d, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.DraftOutput{}, err
	}
	return toOutput(d), nil
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.DraftOutput, error) {
	d, err := i.svc.Create(ctx, input.Title, input.Transcript, input.Tag, input.AudioData)
	if err != nil {
		return dto.DraftOutput{}, err
	}
	return toOutput(d), nil
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.DraftOutput, error) {
	d, err := i.svc.Update(ctx, input.ID, domain.Patch{
		Title:       input.Title,
		Transcript:  input.Transcript,
		Content:     input.Content,
		Analysis:    input.Analysis,
		LastUpdated: input.LastUpdated,
	})
	if err != nil {
		return dto.DraftOutput{}, err
	}
	return toOutput(d), nil
}

func (i *Interactor) AttachContent(ctx context.Context, input dto.AttachContentInput) (dto.DraftOutput, error) {
	d, err := i.svc.AttachContent(ctx, input.ID, input.Content, input.Analysis)
	if err != nil {
		return dto.DraftOutput{}, err
	}
	return toOutput(d), nil
}

func (i *Interactor) Delete(ctx context.Context, id int64) error {
	return i.svc.Delete(ctx, id)
}

func toOutput(d domain.Draft) dto.DraftOutput {
	return dto.DraftOutput{
		ID:          d.ID,
		Title:       d.Title,
		Transcript:  d.Transcript,
		Tag:         d.Tag,
		CreatedAt:   d.CreatedAt,
		HasAudio:    d.AudioData != "",
		Status:      string(d.Status()),
		Content:     d.Content,
		Analysis:    d.Analysis,
		LastUpdated: d.LastUpdated,
	}
}
