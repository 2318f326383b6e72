package domain

import (
	"fmt"
	"strings"
	"time"

	strategy "ghostnote/internal/modules/strategy/domain"
)

const (
	// PlaceholderTranscript marks a draft whose audio was never transcribed.
	PlaceholderTranscript = "Audio recording saved as draft. Transmute to see insights."
	DefaultTag            = "💭 Brain Dump"
)

// DefaultTitle names an untitled recording after the time it was saved.
func DefaultTitle(now time.Time) string {
	return "Voice Note " + now.Format("15:04:05")
}

type Status string

const (
	StatusComplete    Status = "complete"
	StatusTranscribed Status = "transcribed"
	StatusAudioOnly   Status = "audio_only"
)

// Draft is a captured voice note before or after strategy generation.
// ID, Tag, CreatedAt and AudioData never change after creation.
type Draft struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	Transcript  string             `json:"transcript"`
	Tag         string             `json:"tag"`
	CreatedAt   time.Time          `json:"created_at"`
	AudioData   string             `json:"audioData,omitempty"`
	Content     *strategy.Content  `json:"content,omitempty"`
	LastUpdated *time.Time         `json:"last_updated,omitempty"`
	Analysis    *strategy.Analysis `json:"analysis,omitempty"`
}

func (d Draft) Status() Status {
	if d.Content != nil && d.Content.Finalized() {
		return StatusComplete
	}
	if d.Transcript != PlaceholderTranscript {
		return StatusTranscribed
	}
	return StatusAudioOnly
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if d.AudioData != "" && !strings.HasPrefix(d.AudioData, "data:") {
		return fmt.Errorf("audio data must be a data URI")
	}
	return nil
}

// Patch lists the mutable fields of a draft. Nil fields are left untouched;
// Content replaces the previous content wholesale.
type Patch struct {
	Title       *string
	Transcript  *string
	Content     *strategy.Content
	LastUpdated *time.Time
	Analysis    *strategy.Analysis
}

func (d Draft) Apply(p Patch) Draft {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Transcript != nil {
		d.Transcript = *p.Transcript
	}
	if p.Content != nil {
		c := *p.Content
		d.Content = &c
	}
	if p.LastUpdated != nil {
		t := *p.LastUpdated
		d.LastUpdated = &t
	}
	if p.Analysis != nil {
		a := *p.Analysis
		d.Analysis = &a
	}
	return d
}
