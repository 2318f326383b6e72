package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	archiveout "ghostnote/internal/modules/archive/adapter/out"
	"ghostnote/internal/modules/archive/dto"
	archivein "ghostnote/internal/modules/archive/port/in"
	"ghostnote/internal/modules/archive/service"
	"ghostnote/internal/modules/archive/usecase"
	strategy "ghostnote/internal/modules/strategy/domain"
	apperrors "ghostnote/internal/platform/errors"
	"ghostnote/internal/platform/events"
	"ghostnote/internal/platform/id"
	"ghostnote/internal/platform/kv"
)

type fakeClock struct{ now time.Time }

func (f fakeClock) Now() time.Time { return f.now }

var published = time.Date(2026, 9, 12, 8, 30, 0, 0, time.UTC)

var slugPattern = regexp.MustCompile(`^cos_[a-z0-9]+_[a-z0-9]+$`)

func newUsecase(store kv.Store) (*events.Recorder, archivein.Usecase) {
	clk := fakeClock{now: published}
	rec := &events.Recorder{}
	svc := service.NewArchiveService(
		clk,
		id.ArchiveSlug{Clock: clk},
		archiveout.NewKVEntryStore(store),
		archiveout.NewMarkdownBriefWriter(),
		nil,
		rec,
		nil,
	)
	return rec, usecase.NewInteractor(svc)
}

func TestPublishThenGetScribeEntry(t *testing.T) {
	t.Parallel()
	rec, uc := newUsecase(kv.NewMemoryStore())
	ctx := context.Background()

	out, err := uc.Publish(ctx, dto.PublishInput{
		Content:  strategy.Content{Scribe: &strategy.Scribe{CoreThesis: "Y"}},
		Analysis: &strategy.Analysis{Duration: "5m"},
		Mode:     "scribe",
		Language: "EN",
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !slugPattern.MatchString(out.ID) {
		t.Fatalf("slug %q does not match %s", out.ID, slugPattern)
	}
	if out.PublicPath != "/archive/"+out.ID {
		t.Fatalf("public path = %q", out.PublicPath)
	}

	got, err := uc.Get(ctx, out.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Mode != "scribe" {
		t.Fatalf("mode = %q", got.Mode)
	}
	if !got.PublishedAt.Equal(published) {
		t.Fatalf("published at = %v", got.PublishedAt)
	}
	if msgs := rec.Messages(); len(msgs) != 1 || msgs[0].Subject != events.SubjectArchivePublished {
		t.Fatalf("expected published event, got %+v", msgs)
	}
}

func TestPublishedSnapshotDoesNotAliasInput(t *testing.T) {
	t.Parallel()
	_, uc := newUsecase(kv.NewMemoryStore())
	ctx := context.Background()

	content := strategy.Content{
		Scribe: &strategy.Scribe{
			CoreThesis:       "Narrow the roadmap.",
			StrategicPillars: []strategy.Pillar{{Title: "Focus", Description: "Fewer bets."}},
			TacticalSteps:    []string{"Cut two projects"},
		},
		Strategist: &strategy.Strategist{Judgment: "Do it now.", RiskAudit: "Morale.", EmailDraft: "Team,"},
	}
	analysis := &strategy.Analysis{Duration: "2m", WPM: 150, Intensity: "High", ExecutiveState: "Decisive", Signals: []string{"Roadmap"}}
	want := dto.PublishInput{Content: content.Clone(), Analysis: analysis.Clone()}

	out, err := uc.Publish(ctx, dto.PublishInput{Content: content, Analysis: analysis, Mode: "strategist", Language: "en"})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	content.Scribe.CoreThesis = "changed"
	content.Scribe.TacticalSteps[0] = "changed"
	analysis.Signals[0] = "changed"

	got, err := uc.Get(ctx, out.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(want.Content, got.Content); diff != "" {
		t.Fatalf("content mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want.Analysis, got.Analysis); diff != "" {
		t.Fatalf("analysis mismatch (-want +got):\n%s", diff)
	}
	if got.Language != "EN" {
		t.Fatalf("language = %q", got.Language)
	}
}

func TestPublishThenGetKeepsEmptyListItems(t *testing.T) {
	t.Parallel()
	_, uc := newUsecase(kv.NewMemoryStore())
	ctx := context.Background()
	content := strategy.Content{Scribe: &strategy.Scribe{CoreThesis: "Y", TacticalSteps: []string{"ship", ""}}}

	out, err := uc.Publish(ctx, dto.PublishInput{Content: content, Mode: "scribe"})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	got, err := uc.Get(ctx, out.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(content, got.Content); diff != "" {
		t.Fatalf("read back differs from published input (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(out.Content, got.Content); diff != "" {
		t.Fatalf("publish result differs from read back (-want +got):\n%s", diff)
	}
}

func TestPublishTwiceCreatesIndependentEntries(t *testing.T) {
	t.Parallel()
	_, uc := newUsecase(kv.NewMemoryStore())
	input := dto.PublishInput{Content: strategy.Content{Scribe: &strategy.Scribe{CoreThesis: "Y"}}, Mode: "scribe"}

	first, err := uc.Publish(context.Background(), input)
	if err != nil {
		t.Fatalf("first publish: %v", err)
	}
	second, err := uc.Publish(context.Background(), input)
	if err != nil {
		t.Fatalf("second publish: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct slugs, both %q", first.ID)
	}
}

func TestPublishRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	_, uc := newUsecase(store)

	cases := []dto.PublishInput{
		{Content: strategy.Content{}, Mode: "scribe"},
		{Content: strategy.Content{Scribe: &strategy.Scribe{}}, Mode: "scribe"},
		{Content: strategy.Content{Scribe: &strategy.Scribe{CoreThesis: "Y"}}, Mode: "poet"},
	}
	for _, input := range cases {
		if _, err := uc.Publish(context.Background(), input); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %+v, got %v", input, err)
		}
	}
	if keys := store.Keys(); keys != 0 {
		t.Fatalf("nothing should be written, got %d keys", keys)
	}
}

func TestGetUnknownSlugIsNotFound(t *testing.T) {
	t.Parallel()
	_, uc := newUsecase(kv.NewMemoryStore())
	if _, err := uc.Get(context.Background(), "cos_missing_00000000"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetCorruptEntryIsNotFound(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	if err := store.Set(context.Background(), "ghostnote_archive_cos_bad_1", []byte("{not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, uc := newUsecase(store)
	if _, err := uc.Get(context.Background(), "cos_bad_1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestExportWritesManagedBlockAndKeepsNotes(t *testing.T) {
	t.Parallel()
	_, uc := newUsecase(kv.NewMemoryStore())
	ctx := context.Background()
	dir := t.TempDir()

	out, err := uc.Publish(ctx, dto.PublishInput{
		Content: strategy.Content{Scribe: &strategy.Scribe{CoreThesis: "Own the niche", TacticalSteps: []string{"Call ten customers"}}},
		Mode:    "scribe",
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	path, err := uc.Export(ctx, dto.ExportInput{Slug: out.ID, Dir: dir})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filepath.Base(path) != "own-the-niche-"+strings.ReplaceAll(out.ID, "_", "-")+".md" {
		t.Fatalf("unexpected file name %q", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	edited := strings.Replace(string(raw), "## Notes\n", "## Notes\n\nmy own thoughts\n", 1)
	if err := os.WriteFile(path, []byte(edited), 0o644); err != nil {
		t.Fatalf("edit export: %v", err)
	}
	if _, err := uc.Export(ctx, dto.ExportInput{Slug: out.ID, Dir: dir}); err != nil {
		t.Fatalf("re-export: %v", err)
	}
	raw, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("read re-export: %v", err)
	}
	text := string(raw)
	for _, want := range []string{"id: " + out.ID, "mode: scribe", "my own thoughts", "1. Call ten customers", "<!-- ghostnote:brief:start -->"} {
		if !strings.Contains(text, want) {
			t.Fatalf("export missing %q:\n%s", want, text)
		}
	}
	if strings.Count(text, "<!-- ghostnote:brief:start -->") != 1 {
		t.Fatalf("managed block duplicated:\n%s", text)
	}
}

func TestExportSameThesisKeepsSeparateFiles(t *testing.T) {
	t.Parallel()
	_, uc := newUsecase(kv.NewMemoryStore())
	ctx := context.Background()
	dir := t.TempDir()
	input := dto.PublishInput{Content: strategy.Content{Scribe: &strategy.Scribe{CoreThesis: "Own the niche"}}, Mode: "scribe"}

	paths := map[string]string{}
	for i := 0; i < 2; i++ {
		out, err := uc.Publish(ctx, input)
		if err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
		path, err := uc.Export(ctx, dto.ExportInput{Slug: out.ID, Dir: dir})
		if err != nil {
			t.Fatalf("export %d: %v", i, err)
		}
		paths[path] = out.ID
	}
	if len(paths) != 2 {
		t.Fatalf("entries sharing a thesis overwrote each other: %v", paths)
	}
	for path, slug := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if !strings.Contains(string(raw), "id: "+slug) {
			t.Fatalf("%s does not hold entry %s:\n%s", path, slug, raw)
		}
	}
}

func TestRenderWithoutRendererReturnsMarkdown(t *testing.T) {
	t.Parallel()
	_, uc := newUsecase(kv.NewMemoryStore())
	out, err := uc.Publish(context.Background(), dto.PublishInput{
		Content: strategy.Content{Strategist: &strategy.Strategist{Judgment: "Hold."}},
		Mode:    "strategist",
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	text, err := uc.Render(context.Background(), dto.RenderInput{Slug: out.ID})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(text, "# Hold.") {
		t.Fatalf("unexpected render:\n%s", text)
	}
}
