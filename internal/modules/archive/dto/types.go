package dto

import (
	"time"

	strategy "ghostnote/internal/modules/strategy/domain"
)

type PublishInput struct {
	Content  strategy.Content
	Analysis *strategy.Analysis
	Mode     string
	Language string
}

type EntryOutput struct {
	ID          string             `json:"id"`
	Timestamp   int64              `json:"timestamp"`
	PublishedAt time.Time          `json:"published_at"`
	Content     strategy.Content   `json:"content"`
	Analysis    *strategy.Analysis `json:"analysis,omitempty"`
	Mode        string             `json:"mode"`
	Language    string             `json:"language"`
	PublicPath  string             `json:"public_path"`
}

type ExportInput struct {
	Slug string
	Dir  string
}

type RenderInput struct {
	Slug  string
	Width int
}
