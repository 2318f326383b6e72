package in

import (
	"context"

	"ghostnote/internal/modules/audit/dto"
	auditin "ghostnote/internal/modules/audit/port/in"
)

type CLIHandler struct {
	usecase auditin.Usecase
}

func NewCLIHandler(usecase auditin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Audit(ctx context.Context, wagerID int64, followUp string) (dto.AuditOutput, error) {
	return h.usecase.Audit(ctx, dto.AuditInput{WagerID: wagerID, FollowUp: followUp})
}
