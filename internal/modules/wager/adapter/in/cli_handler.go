package in

import (
	"context"

	"ghostnote/internal/modules/wager/dto"
	wagerin "ghostnote/internal/modules/wager/port/in"
)

type CLIHandler struct {
	usecase wagerin.Usecase
}

func NewCLIHandler(usecase wagerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Seal(ctx context.Context, sessionID, prediction string, days int) (dto.WagerOutput, error) {
	var sid *string
	if sessionID != "" {
		sid = &sessionID
	}
	return h.usecase.Seal(ctx, dto.SealInput{SessionID: sid, Prediction: prediction, Days: days})
}

func (h CLIHandler) List(ctx context.Context) ([]dto.WagerOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Stats(ctx context.Context) (dto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}
