package dto

import (
	"time"

	"ghostnote/internal/modules/strategy/domain"
)

type (
	Content  = domain.Content
	Analysis = domain.Analysis
)

type AnalyzeInput struct {
	Transcript     string
	Duration       time.Duration
	ExecutiveState string
}

type GenerateInput struct {
	Transcript string
	Duration   time.Duration
	Language   string
	Variation  bool
}

// SessionOutput is one generated result. SessionID is the weak reference a
// wager may carry.
type SessionOutput struct {
	SessionID   string    `json:"session_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Language    string    `json:"language"`
	Content     Content   `json:"content"`
	Analysis    Analysis  `json:"analysis"`
}

type ShareInput struct {
	Content Content
	Mode    string
}
