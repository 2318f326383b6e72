package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ghostnote/internal/modules/archive/domain"
	archiveout "ghostnote/internal/modules/archive/port/out"
	"ghostnote/internal/platform/markdown"
	"ghostnote/internal/platform/slug"
)

// MarkdownBriefWriter writes briefs as markdown notes with YAML frontmatter.
// The brief lives in a managed block; anything the reader adds around it
// survives a re-export.
type MarkdownBriefWriter struct{}

var briefBlock = markdown.Block{Start: domain.BriefStart, End: domain.BriefEnd}

func NewMarkdownBriefWriter() archiveout.BriefWriter {
	return MarkdownBriefWriter{}
}

func (MarkdownBriefWriter) Write(_ context.Context, dir string, entry domain.Entry) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, fileName(entry))

	body := ""
	if existing, err := os.ReadFile(path); err == nil {
		if _, existingBody, splitErr := markdown.SplitFrontmatter(string(existing)); splitErr == nil {
			body = existingBody
		}
	}
	if strings.TrimSpace(body) == "" {
		body = "## Notes\n"
	}
	body = briefBlock.Replace(body, domain.Brief(entry))

	rendered, err := markdown.RenderFrontmatter(toFrontmatter(entry), body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write brief markdown: %w", err)
	}
	return path, nil
}

// fileName leads with the thesis for browsing and ends with the entry slug,
// since two entries may share a thesis.
func fileName(entry domain.Entry) string {
	return slug.Make(entry.Title()) + "-" + slug.Make(entry.ID) + ".md"
}

func toFrontmatter(entry domain.Entry) []markdown.Field {
	fields := []markdown.Field{
		{Key: "id", Value: entry.ID},
		{Key: "title", Value: entry.Title()},
		{Key: "mode", Value: string(entry.Mode)},
		{Key: "language", Value: entry.Language},
		{Key: "published_at", Value: entry.PublishedAt().Format(time.RFC3339)},
		{Key: "public_path", Value: "/archive/" + entry.ID},
	}
	if entry.Analysis != nil && len(entry.Analysis.Signals) > 0 {
		fields = append(fields, markdown.Field{Key: "signals", Value: entry.Analysis.Signals})
	}
	return fields
}
