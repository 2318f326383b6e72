package dto

import (
	"time"

	strategy "ghostnote/internal/modules/strategy/domain"
)

type CreateInput struct {
	Title      string
	Transcript string
	Tag        string
	AudioData  string
}

type UpdateInput struct {
	ID          int64
	Title       *string
	Transcript  *string
	Content     *strategy.Content
	Analysis    *strategy.Analysis
	LastUpdated *time.Time
}

type AttachContentInput struct {
	ID       int64
	Content  strategy.Content
	Analysis *strategy.Analysis
}

type DraftOutput struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	Transcript  string             `json:"transcript"`
	Tag         string             `json:"tag"`
	CreatedAt   time.Time          `json:"created_at"`
	HasAudio    bool               `json:"has_audio"`
	Status      string             `json:"status"`
	Content     *strategy.Content  `json:"content,omitempty"`
	Analysis    *strategy.Analysis `json:"analysis,omitempty"`
	LastUpdated *time.Time         `json:"last_updated,omitempty"`
}
