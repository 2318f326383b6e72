package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	auditout "ghostnote/internal/modules/audit/adapter/out"
	"ghostnote/internal/modules/audit/domain"
	"ghostnote/internal/modules/audit/dto"
	auditin "ghostnote/internal/modules/audit/port/in"
	auditport "ghostnote/internal/modules/audit/port/out"
	"ghostnote/internal/modules/audit/service"
	"ghostnote/internal/modules/audit/usecase"
	wagerout "ghostnote/internal/modules/wager/adapter/out"
	wagerdto "ghostnote/internal/modules/wager/dto"
	wagerin "ghostnote/internal/modules/wager/port/in"
	wagerservice "ghostnote/internal/modules/wager/service"
	wagerusecase "ghostnote/internal/modules/wager/usecase"
	apperrors "ghostnote/internal/platform/errors"
	"ghostnote/internal/platform/kv"
	"ghostnote/internal/platform/tx"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type stubResolver struct {
	result domain.Result
	err    error
	calls  int
	last   domain.Request
}

func (s *stubResolver) Name() string { return "stub" }

func (s *stubResolver) Resolve(_ context.Context, req domain.Request) (domain.Result, error) {
	s.calls++
	s.last = req
	return s.result, s.err
}

var sealedAt = time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)

func setup(t *testing.T, resolver auditport.Resolver) (wagerin.Usecase, auditin.Usecase) {
	t.Helper()
	wagerSvc := wagerservice.NewWagerService(fixedClock{now: sealedAt}, wagerout.NewKVWagerStore(kv.NewMemoryStore()), &tx.MutexManager{}, nil, nil)
	wagers := wagerusecase.NewInteractor(wagerSvc)
	svc := service.NewAuditService(auditout.NewWagerLedger(wagers), resolver, nil)
	return wagers, usecase.NewInteractor(svc)
}

func TestSealThenAuditWithFixedResolver(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	wagers, audits := setup(t, auditout.NewFixedResolver())

	w, err := wagers.Seal(ctx, wagerdto.SealInput{Prediction: "Revenue will grow 20%", Days: 30})
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if w.Status != "PENDING" {
		t.Fatalf("sealed wager status = %s", w.Status)
	}

	out, err := audits.Audit(ctx, dto.AuditInput{WagerID: w.ID, FollowUp: "Revenue grew 12%, churn spiked."})
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if out.AccuracyScore != 85 || out.Resolver != "fixed" {
		t.Fatalf("unexpected audit output: %+v", out)
	}

	stored, err := wagers.Get(ctx, w.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != "AUDITED" || stored.AccuracyScore == nil || *stored.AccuracyScore < 0 || *stored.AccuracyScore > 100 {
		t.Fatalf("wager not audited: %+v", stored)
	}
	if stored.BlindSpot == "" || stored.GrowthInsight == "" {
		t.Fatalf("audit texts missing: %+v", stored)
	}
}

func TestAuditDoesNotRequireDue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	resolver := &stubResolver{result: domain.Result{AccuracyScore: 40, BlindSpot: "b", GrowthInsight: "g"}}
	wagers, audits := setup(t, resolver)

	w, _ := wagers.Seal(ctx, wagerdto.SealInput{Prediction: "Hiring freeze ends", Days: 365})
	if w.DisplayStatus != "PENDING" {
		t.Fatalf("expected PENDING wager, got %s", w.DisplayStatus)
	}
	if _, err := audits.Audit(ctx, dto.AuditInput{WagerID: w.ID, FollowUp: " Still frozen. "}); err != nil {
		t.Fatalf("audit of pending wager: %v", err)
	}
	if resolver.last.Prediction != "Hiring freeze ends" || resolver.last.FollowUp != "Still frozen." || resolver.last.Days != 365 {
		t.Fatalf("resolver got %+v", resolver.last)
	}
	if !resolver.last.SealedAt.Equal(sealedAt) {
		t.Fatalf("sealed at = %v", resolver.last.SealedAt)
	}
}

func TestResolverFailureLeavesLedgerUnchanged(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	resolver := &stubResolver{err: errors.New("backend 503")}
	wagers, audits := setup(t, resolver)
	w, _ := wagers.Seal(ctx, wagerdto.SealInput{Prediction: "p", Days: 30})

	_, err := audits.Audit(ctx, dto.AuditInput{WagerID: w.ID, FollowUp: "signal"})
	if !errors.Is(err, apperrors.ErrExternalService) {
		t.Fatalf("expected external service error, got %v", err)
	}
	stored, _ := wagers.Get(ctx, w.ID)
	if stored.Status != "PENDING" || stored.AccuracyScore != nil {
		t.Fatalf("failed audit must not persist anything: %+v", stored)
	}

	resolver.err = nil
	resolver.result = domain.Result{AccuracyScore: 77, BlindSpot: "b", GrowthInsight: "g"}
	if _, err := audits.Audit(ctx, dto.AuditInput{WagerID: w.ID, FollowUp: "signal"}); err != nil {
		t.Fatalf("retry with same follow-up: %v", err)
	}
	stored, _ = wagers.Get(ctx, w.ID)
	if stored.AccuracyScore == nil || *stored.AccuracyScore != 77 {
		t.Fatalf("retry should persist: %+v", stored)
	}
}

func TestInvalidResolverPayloadIsExternalFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cases := []domain.Result{
		{AccuracyScore: 130, BlindSpot: "b", GrowthInsight: "g"},
		{AccuracyScore: -1, BlindSpot: "b", GrowthInsight: "g"},
		{AccuracyScore: 50, BlindSpot: "", GrowthInsight: "g"},
		{AccuracyScore: 50, BlindSpot: "b", GrowthInsight: " "},
	}
	for _, result := range cases {
		wagers, audits := setup(t, &stubResolver{result: result})
		w, _ := wagers.Seal(ctx, wagerdto.SealInput{Prediction: "p", Days: 90})
		if _, err := audits.Audit(ctx, dto.AuditInput{WagerID: w.ID, FollowUp: "s"}); !errors.Is(err, apperrors.ErrExternalService) {
			t.Fatalf("result %+v: expected external service error, got %v", result, err)
		}
		stored, _ := wagers.Get(ctx, w.ID)
		if stored.Status != "PENDING" {
			t.Fatalf("invalid payload must not persist: %+v", stored)
		}
	}
}

func TestAuditPreconditions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	resolver := &stubResolver{result: domain.Result{AccuracyScore: 90, BlindSpot: "b", GrowthInsight: "g"}}
	wagers, audits := setup(t, resolver)

	if _, err := audits.Audit(ctx, dto.AuditInput{WagerID: 42, FollowUp: "x"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	w, _ := wagers.Seal(ctx, wagerdto.SealInput{Prediction: "p", Days: 30})
	if _, err := audits.Audit(ctx, dto.AuditInput{WagerID: w.ID, FollowUp: "  "}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := audits.Audit(ctx, dto.AuditInput{WagerID: w.ID, FollowUp: "done"}); err != nil {
		t.Fatalf("first audit: %v", err)
	}
	if _, err := audits.Audit(ctx, dto.AuditInput{WagerID: w.ID, FollowUp: "again"}); !errors.Is(err, apperrors.ErrAlreadyAudited) {
		t.Fatalf("expected already audited, got %v", err)
	}
	if resolver.calls != 1 {
		t.Fatalf("resolver should only run for the first audit, ran %d times", resolver.calls)
	}
}
