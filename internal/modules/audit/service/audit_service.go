package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ghostnote/internal/modules/audit/domain"
	auditout "ghostnote/internal/modules/audit/port/out"
	apperrors "ghostnote/internal/platform/errors"
	"ghostnote/internal/platform/logging"
)

type AuditService struct {
	ledger   auditout.Ledger
	resolver auditout.Resolver
	logger   *zap.Logger
}

func NewAuditService(ledger auditout.Ledger, resolver auditout.Resolver, logger *zap.Logger) *AuditService {
	return &AuditService{ledger: ledger, resolver: resolver, logger: logging.OrNop(logger)}
}

func (s *AuditService) ResolverName() string {
	if s.resolver == nil {
		return ""
	}
	return s.resolver.Name()
}

// Audit resolves a wager and records the outcome. The wager does not have to
// be DUE yet. Any resolver failure leaves the ledger untouched so the caller
// can retry with the same follow-up.
func (s *AuditService) Audit(ctx context.Context, wagerID int64, followUp string) (domain.Result, error) {
	followUp = strings.TrimSpace(followUp)
	if followUp == "" {
		return domain.Result{}, fmt.Errorf("%w: follow-up signal is required", apperrors.ErrInvalidInput)
	}
	if s.resolver == nil {
		return domain.Result{}, fmt.Errorf("%w: no audit resolver configured", apperrors.ErrExternalService)
	}

	subject, err := s.ledger.Lookup(ctx, wagerID)
	if err != nil {
		return domain.Result{}, err
	}
	if subject.Audited {
		return domain.Result{}, fmt.Errorf("wager %d: %w", wagerID, apperrors.ErrAlreadyAudited)
	}

	result, err := s.resolver.Resolve(ctx, domain.Request{
		WagerID:    subject.WagerID,
		Prediction: subject.Prediction,
		Days:       subject.Days,
		SealedAt:   subject.SealedAt,
		FollowUp:   followUp,
	})
	if err != nil {
		s.logger.Warn("audit resolver failed", zap.Int64("wager_id", wagerID), zap.String("resolver", s.resolver.Name()), zap.Error(err))
		if errors.Is(err, apperrors.ErrExternalService) {
			return domain.Result{}, err
		}
		return domain.Result{}, fmt.Errorf("%w: %s: %v", apperrors.ErrExternalService, s.resolver.Name(), err)
	}
	if err := result.Validate(); err != nil {
		return domain.Result{}, fmt.Errorf("%w: %s: %v", apperrors.ErrExternalService, s.resolver.Name(), err)
	}

	if err := s.ledger.Record(ctx, wagerID, result); err != nil {
		return domain.Result{}, fmt.Errorf("record audit: %w", err)
	}
	return result, nil
}
