package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"

	wagerout "ghostnote/internal/modules/wager/adapter/out"
	"ghostnote/internal/modules/wager/domain"
	"ghostnote/internal/modules/wager/dto"
	wagerin "ghostnote/internal/modules/wager/port/in"
	"ghostnote/internal/modules/wager/service"
	"ghostnote/internal/modules/wager/usecase"
	apperrors "ghostnote/internal/platform/errors"
	"ghostnote/internal/platform/events"
	"ghostnote/internal/platform/kv"
	"ghostnote/internal/platform/tx"
)

type movableClock struct{ now time.Time }

func (c *movableClock) Now() time.Time { return c.now }

var start = time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

func newUsecase(store kv.Store) (*movableClock, *events.Recorder, wagerin.Usecase) {
	clk := &movableClock{now: start}
	rec := &events.Recorder{}
	svc := service.NewWagerService(clk, wagerout.NewKVWagerStore(store), &tx.MutexManager{}, rec, nil)
	return clk, rec, usecase.NewInteractor(svc)
}

func TestSealStartsPendingWithReviewDate(t *testing.T) {
	t.Parallel()
	_, rec, uc := newUsecase(kv.NewMemoryStore())

	w, err := uc.Seal(context.Background(), dto.SealInput{Prediction: "Revenue will grow 20%", Days: 30})
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if w.Status != string(domain.StatusPending) || w.DisplayStatus != string(domain.StatusPending) {
		t.Fatalf("unexpected status: %+v", w)
	}
	if diff := w.ReviewDate.Sub(start.Add(30 * 24 * time.Hour)); diff < -time.Second || diff > time.Second {
		t.Fatalf("review date off by %v", diff)
	}
	if w.SessionID != nil {
		t.Fatalf("session id should be null")
	}
	if msgs := rec.Messages(); len(msgs) != 1 || msgs[0].Subject != events.SubjectWagerSealed {
		t.Fatalf("expected sealed event, got %+v", msgs)
	}
}

func TestSealRejectsInvalidInputBeforeWriting(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	_, _, uc := newUsecase(store)
	for _, in := range []dto.SealInput{{Prediction: "", Days: 30}, {Prediction: "x", Days: 7}} {
		if _, err := uc.Seal(context.Background(), in); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %+v, got %v", in, err)
		}
	}
	if store.Keys() != 0 {
		t.Fatalf("rejected seals must not touch the store")
	}
}

func TestListKeepsPersistedOrderAndDerivesStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk, _, uc := newUsecase(kv.NewMemoryStore())

	short, err := uc.Seal(ctx, dto.SealInput{Prediction: "short", Days: 30})
	if err != nil {
		t.Fatalf("seal short: %v", err)
	}
	clk.now = start.Add(time.Minute)
	long, err := uc.Seal(ctx, dto.SealInput{Prediction: "long", Days: 365})
	if err != nil {
		t.Fatalf("seal long: %v", err)
	}

	clk.now = start.AddDate(0, 0, 31)
	wagers, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(wagers) != 2 || wagers[0].ID != long.ID || wagers[1].ID != short.ID {
		t.Fatalf("expected newest first as persisted, got %+v", wagers)
	}
	if wagers[1].DisplayStatus != string(domain.StatusDue) || wagers[1].Status != string(domain.StatusPending) {
		t.Fatalf("short wager should display DUE but stay stored PENDING: %+v", wagers[1])
	}
	if wagers[0].DisplayStatus != string(domain.StatusPending) {
		t.Fatalf("long wager should still be PENDING: %+v", wagers[0])
	}
}

func TestApplyAuditPersistsAndIsTerminal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	_, rec, uc := newUsecase(store)

	w, _ := uc.Seal(ctx, dto.SealInput{Prediction: "p", Days: 90})
	out, err := uc.ApplyAudit(ctx, dto.ApplyAuditInput{ID: w.ID, AccuracyScore: 85, BlindSpot: "b", GrowthInsight: "g"})
	if err != nil {
		t.Fatalf("apply audit: %v", err)
	}
	if out.Status != string(domain.StatusAudited) || out.AccuracyScore == nil || *out.AccuracyScore != 85 {
		t.Fatalf("unexpected audited wager: %+v", out)
	}

	_, err = uc.ApplyAudit(ctx, dto.ApplyAuditInput{ID: w.ID, AccuracyScore: 10, BlindSpot: "b", GrowthInsight: "g"})
	if !errors.Is(err, apperrors.ErrAlreadyAudited) {
		t.Fatalf("expected already audited, got %v", err)
	}
	stored, _ := uc.Get(ctx, w.ID)
	if *stored.AccuracyScore != 85 {
		t.Fatalf("second audit must not overwrite, got %d", *stored.AccuracyScore)
	}
	if len(rec.Messages()) != 2 {
		t.Fatalf("expected sealed and audited events, got %d", len(rec.Messages()))
	}
}

func TestApplyAuditRejectsBadResultWithoutWriting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, _, uc := newUsecase(kv.NewMemoryStore())
	w, _ := uc.Seal(ctx, dto.SealInput{Prediction: "p", Days: 30})

	if _, err := uc.ApplyAudit(ctx, dto.ApplyAuditInput{ID: w.ID, AccuracyScore: 140, BlindSpot: "b", GrowthInsight: "g"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := uc.ApplyAudit(ctx, dto.ApplyAuditInput{ID: 1, AccuracyScore: 50, BlindSpot: "b", GrowthInsight: "g"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	stored, _ := uc.Get(ctx, w.ID)
	if stored.Status != string(domain.StatusPending) || stored.AccuracyScore != nil {
		t.Fatalf("failed audit must leave the wager untouched: %+v", stored)
	}
}

func TestAuditFieldsPresentIffAudited(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	_, _, uc := newUsecase(store)
	a, _ := uc.Seal(ctx, dto.SealInput{Prediction: "a", Days: 30})
	if _, err := uc.Seal(ctx, dto.SealInput{Prediction: "b", Days: 30}); err != nil {
		t.Fatalf("seal: %v", err)
	}
	if _, err := uc.ApplyAudit(ctx, dto.ApplyAuditInput{ID: a.ID, AccuracyScore: 60, BlindSpot: "b", GrowthInsight: "g"}); err != nil {
		t.Fatalf("apply audit: %v", err)
	}

	raw, err := store.Get(ctx, wagerout.HistoryKey)
	if err != nil {
		t.Fatalf("read ledger: %v", err)
	}
	var stored []map[string]any
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("decode ledger: %v", err)
	}
	for _, w := range stored {
		_, hasScore := w["accuracy_score"]
		_, hasBlind := w["blind_spot"]
		_, hasGrowth := w["growth_insight"]
		audited := w["status"] == string(domain.StatusAudited)
		if audited != (hasScore && hasBlind && hasGrowth) || (!audited && (hasScore || hasBlind || hasGrowth)) {
			t.Fatalf("audit fields inconsistent with status: %v", w)
		}
		if _, ok := w["session_id"]; !ok {
			t.Fatalf("session_id must be stored even when null: %v", w)
		}
	}
}

func TestStatsAndCorruptLedger(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	_, _, uc := newUsecase(store)
	if err := store.Set(ctx, wagerout.HistoryKey, []byte("not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	wagers, err := uc.List(ctx)
	if err != nil || len(wagers) != 0 {
		t.Fatalf("corrupt ledger must list empty: %v %v", wagers, err)
	}
	stats, err := uc.Stats(ctx)
	if err != nil || stats != (dto.StatsOutput{}) {
		t.Fatalf("corrupt ledger stats = %+v, %v", stats, err)
	}
}

func TestSealOverCorruptLedgerBacksItUp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	_, _, uc := newUsecase(store)
	if err := store.Set(ctx, wagerout.HistoryKey, []byte("not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := uc.Seal(ctx, dto.SealInput{Prediction: "Churn falls", Days: 30}); err != nil {
		t.Fatalf("seal: %v", err)
	}
	backup, err := store.Get(ctx, wagerout.HistoryKey+".corrupt."+strconv.FormatInt(start.UnixMilli(), 10))
	if err != nil || string(backup) != "not json" {
		t.Fatalf("corrupt ledger not preserved: %q, %v", backup, err)
	}
	wagers, err := uc.List(ctx)
	if err != nil || len(wagers) != 1 {
		t.Fatalf("new ledger = %v, %v", wagers, err)
	}
}

func TestSealRefusedWhenCorruptLedgerCannotBeBackedUp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	_, _, uc := newUsecase(store)
	if err := store.Set(ctx, wagerout.HistoryKey, []byte("not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	store.SetErr = errors.New("read-only")

	if _, err := uc.Seal(ctx, dto.SealInput{Prediction: "Churn falls", Days: 30}); !errors.Is(err, kv.ErrMalformed) || !errors.Is(err, store.SetErr) {
		t.Fatalf("expected refused write, got %v", err)
	}
	if raw, _ := store.Get(ctx, wagerout.HistoryKey); string(raw) != "not json" {
		t.Fatalf("corrupt ledger was replaced: %q", raw)
	}
}
