package usecase_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	draftout "ghostnote/internal/modules/draft/adapter/out"
	"ghostnote/internal/modules/draft/domain"
	"ghostnote/internal/modules/draft/dto"
	draftin "ghostnote/internal/modules/draft/port/in"
	"ghostnote/internal/modules/draft/service"
	"ghostnote/internal/modules/draft/usecase"
	strategy "ghostnote/internal/modules/strategy/domain"
	apperrors "ghostnote/internal/platform/errors"
	"ghostnote/internal/platform/kv"
	"ghostnote/internal/platform/tx"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

var base = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func newUsecase(store kv.Store, times ...time.Time) draftin.Usecase {
	if len(times) == 0 {
		times = []time.Time{base}
	}
	svc := service.NewDraftService(&fakeClock{values: times}, draftout.NewKVDraftStore(store), &tx.MutexManager{}, nil)
	return usecase.NewInteractor(svc)
}

func ids(drafts []dto.DraftOutput) []int64 {
	out := make([]int64, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, d.ID)
	}
	return out
}

func TestCreatePrependsNewestFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(kv.NewMemoryStore(), base, base.Add(time.Second), base.Add(2*time.Second))

	for _, title := range []string{"first", "second", "third"} {
		if _, err := uc.Create(ctx, dto.CreateInput{Title: title}); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}
	drafts, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []int64{base.Add(2 * time.Second).UnixMilli(), base.Add(time.Second).UnixMilli(), base.UnixMilli()}
	if diff := cmp.Diff(want, ids(drafts)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if drafts[0].Title != "third" || drafts[0].Tag != domain.DefaultTag || drafts[0].Status != string(domain.StatusAudioOnly) {
		t.Fatalf("unexpected newest draft: %+v", drafts[0])
	}
}

func TestCreateBumpsCollidingIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(kv.NewMemoryStore(), base)

	a, err := uc.Create(ctx, dto.CreateInput{Title: "a"})
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	b, err := uc.Create(ctx, dto.CreateInput{Title: "b"})
	if err != nil {
		t.Fatalf("create b: %v", err)
	}
	if b.ID != a.ID+1 {
		t.Fatalf("same-millisecond create must get a fresh id: %d vs %d", a.ID, b.ID)
	}
	drafts, _ := uc.List(ctx)
	if len(drafts) != 2 || drafts[0].ID != b.ID {
		t.Fatalf("unexpected list: %v", ids(drafts))
	}
}

func TestCreateDefaultsBlankTitle(t *testing.T) {
	t.Parallel()
	uc := newUsecase(kv.NewMemoryStore(), time.Date(2026, 5, 10, 9, 5, 7, 0, time.UTC))

	got, err := uc.Create(context.Background(), dto.CreateInput{Title: "  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.Title != "Voice Note 09:05:07" {
		t.Fatalf("title = %q", got.Title)
	}
	if got.Transcript != domain.PlaceholderTranscript || got.Tag != domain.DefaultTag {
		t.Fatalf("defaults not applied: %+v", got)
	}
}

func TestCreateValidatesBeforeWriting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	uc := newUsecase(store)

	if _, err := uc.Create(ctx, dto.CreateInput{Title: "x", AudioData: "/tmp/a.webm"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for non data URI, got %v", err)
	}
	if store.Keys() != 0 {
		t.Fatalf("rejected input must not touch the store")
	}
}

func TestUpdateMergesContentAndKeepsTitle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(kv.NewMemoryStore())

	created, err := uc.Create(ctx, dto.CreateInput{Title: "Pricing rant", Transcript: "placeholder", AudioData: "data:audio/webm;base64,AAAA"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	stamp := base.Add(time.Hour)
	content := strategy.Content{Scribe: &strategy.Scribe{CoreThesis: "X"}}
	if _, err := uc.Update(ctx, dto.UpdateInput{ID: created.ID, Content: &content, LastUpdated: &stamp}); err != nil {
		t.Fatalf("update: %v", err)
	}

	drafts, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := drafts[0]
	if got.Content == nil || got.Content.Scribe.CoreThesis != "X" {
		t.Fatalf("content not merged: %+v", got.Content)
	}
	if got.Title != "Pricing rant" || !got.HasAudio || got.Status != string(domain.StatusComplete) {
		t.Fatalf("unexpected draft after update: %+v", got)
	}
	if got.LastUpdated == nil || !got.LastUpdated.Equal(stamp) {
		t.Fatalf("last_updated = %v", got.LastUpdated)
	}
}

func TestUpdateUnknownIDIsNotFound(t *testing.T) {
	t.Parallel()
	title := "x"
	_, err := newUsecase(kv.NewMemoryStore()).Update(context.Background(), dto.UpdateInput{ID: 99, Title: &title})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAttachContentStampsLastUpdated(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	later := base.Add(10 * time.Minute)
	uc := newUsecase(kv.NewMemoryStore(), base, later)

	created, err := uc.Create(ctx, dto.CreateInput{Title: "note", Transcript: "we should hire"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	analysis := strategy.Analysis{Duration: "1m 0s", WPM: 120, Intensity: strategy.IntensityMedium, ExecutiveState: "Reflective"}
	out, err := uc.AttachContent(ctx, dto.AttachContentInput{
		ID:       created.ID,
		Content:  strategy.Content{Strategist: &strategy.Strategist{Judgment: "Hire two."}},
		Analysis: &analysis,
	})
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if out.LastUpdated == nil || !out.LastUpdated.Equal(later) {
		t.Fatalf("last_updated = %v, want %v", out.LastUpdated, later)
	}
	if out.Analysis == nil || out.Analysis.WPM != 120 || out.Status != string(domain.StatusComplete) {
		t.Fatalf("unexpected draft: %+v", out)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(kv.NewMemoryStore(), base, base.Add(time.Second))

	keep, _ := uc.Create(ctx, dto.CreateInput{Title: "keep"})
	gone, _ := uc.Create(ctx, dto.CreateInput{Title: "gone"})

	if err := uc.Delete(ctx, gone.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	once, _ := uc.List(ctx)
	if err := uc.Delete(ctx, gone.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	twice, _ := uc.List(ctx)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("second delete changed state (-once +twice):\n%s", diff)
	}
	if len(twice) != 1 || twice[0].ID != keep.ID {
		t.Fatalf("unexpected drafts: %v", ids(twice))
	}
	if _, err := uc.Get(ctx, gone.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("deleted draft must be gone, got %v", err)
	}
}

func TestCorruptStoreListsEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	if err := store.Set(ctx, draftout.DraftsKey, []byte("[{broken")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	drafts, err := newUsecase(store).List(ctx)
	if err != nil {
		t.Fatalf("corrupt store must not fail list: %v", err)
	}
	if len(drafts) != 0 {
		t.Fatalf("expected empty list, got %d", len(drafts))
	}
}

func TestCreateOverCorruptStoreBacksItUp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	if err := store.Set(ctx, draftout.DraftsKey, []byte("[{broken")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	uc := newUsecase(store)

	if _, err := uc.Create(ctx, dto.CreateInput{Title: "after"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	backup, err := store.Get(ctx, draftout.DraftsKey+".corrupt."+strconv.FormatInt(base.UnixMilli(), 10))
	if err != nil || string(backup) != "[{broken" {
		t.Fatalf("corrupt collection not preserved: %q, %v", backup, err)
	}
	drafts, err := uc.List(ctx)
	if err != nil || len(drafts) != 1 || drafts[0].Title != "after" {
		t.Fatalf("new collection = %v, %v", drafts, err)
	}
}

func TestCreateRefusedWhenCorruptStoreCannotBeBackedUp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	if err := store.Set(ctx, draftout.DraftsKey, []byte("[{broken")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	store.SetErr = errors.New("read-only")

	if _, err := newUsecase(store).Create(ctx, dto.CreateInput{Title: "after"}); !errors.Is(err, kv.ErrMalformed) {
		t.Fatalf("expected refused write, got %v", err)
	}
	if raw, _ := store.Get(ctx, draftout.DraftsKey); string(raw) != "[{broken" {
		t.Fatalf("corrupt collection was replaced: %q", raw)
	}
}

func TestStoreWriteFailureIsReported(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	store.SetErr = errors.New("quota exceeded")
	if _, err := newUsecase(store).Create(context.Background(), dto.CreateInput{Title: "x"}); err == nil || !errors.Is(err, store.SetErr) {
		t.Fatalf("expected quota error, got %v", err)
	}
}

func TestDraftsPersistInLegacyShape(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	uc := newUsecase(store)
	if _, err := uc.Create(ctx, dto.CreateInput{Title: "t", AudioData: "data:audio/webm;base64,AA"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	var raw []map[string]any
	if _, err := kv.ReadJSON(ctx, store, draftout.DraftsKey, &raw); err != nil {
		t.Fatalf("read raw: %v", err)
	}
	for _, key := range []string{"id", "title", "transcript", "tag", "created_at", "audioData"} {
		if _, ok := raw[0][key]; !ok {
			t.Fatalf("stored draft is missing %q: %v", key, raw[0])
		}
	}
	if raw[0]["transcript"] != domain.PlaceholderTranscript {
		t.Fatalf("transcript default = %v", raw[0]["transcript"])
	}
}
