package domain

import (
	"fmt"
	"strings"
	"time"

	strategy "ghostnote/internal/modules/strategy/domain"
)

const (
	KeyPrefix       = "ghostnote_archive_"
	LegacyKeyPrefix = "archive:"

	DefaultLanguage = "EN"

	BriefStart = "<!-- ghostnote:brief:start -->"
	BriefEnd   = "<!-- ghostnote:brief:end -->"
)

// Entry is an immutable published snapshot. It is never updated or deleted.
type Entry struct {
	ID        string             `json:"id"`
	Timestamp int64              `json:"timestamp"`
	Content   strategy.Content   `json:"content"`
	Analysis  *strategy.Analysis `json:"analysis,omitempty"`
	Mode      strategy.Mode      `json:"mode"`
	Language  string             `json:"language"`
}

func New(slug string, now time.Time, content strategy.Content, analysis *strategy.Analysis, mode, language string) (Entry, error) {
	if strings.TrimSpace(slug) == "" {
		return Entry{}, fmt.Errorf("slug is required")
	}
	parsed, err := strategy.ParseMode(mode)
	if err != nil {
		return Entry{}, err
	}
	if content.IsZero() {
		return Entry{}, fmt.Errorf("content is empty")
	}
	language = strings.ToUpper(strings.TrimSpace(language))
	if language == "" {
		language = DefaultLanguage
	}
	return Entry{
		ID:        slug,
		Timestamp: now.UnixMilli(),
		Content:   content,
		Analysis:  analysis,
		Mode:      parsed,
		Language:  language,
	}, nil
}

func (e Entry) PublishedAt() time.Time {
	return time.UnixMilli(e.Timestamp).UTC()
}

// Title is the headline of the brief: the thesis, else the judgment.
func (e Entry) Title() string {
	if e.Content.Scribe != nil && strings.TrimSpace(e.Content.Scribe.CoreThesis) != "" {
		return e.Content.Scribe.CoreThesis
	}
	if e.Content.Strategist != nil && strings.TrimSpace(e.Content.Strategist.Judgment) != "" {
		return e.Content.Strategist.Judgment
	}
	return "Strategic Brief"
}

func Key(slug string) string {
	return KeyPrefix + slug
}

func LegacyKey(slug string) string {
	return LegacyKeyPrefix + slug
}
