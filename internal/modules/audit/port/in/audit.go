package in

import (
	"context"

	"ghostnote/internal/modules/audit/dto"
)

type Usecase interface {
	Audit(ctx context.Context, input dto.AuditInput) (dto.AuditOutput, error)
}
