package domain

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusDue     Status = "DUE"
	StatusAudited Status = "AUDITED"
)

// Horizons are the review windows a prediction can be sealed for, in days.
var Horizons = []int{30, 90, 365}

func ValidHorizon(days int) bool {
	for _, h := range Horizons {
		if h == days {
			return true
		}
	}
	return false
}

// Wager is a sealed prediction. The three audit fields are set together, and
// only when Status is AUDITED.
type Wager struct {
	ID            int64     `json:"id"`
	SessionID     *string   `json:"session_id"`
	Prediction    string    `json:"prediction"`
	Days          int       `json:"days"`
	CreatedAt     time.Time `json:"created_at"`
	ReviewDate    time.Time `json:"review_date"`
	Status        Status    `json:"status"`
	AccuracyScore *int      `json:"accuracy_score,omitempty"`
	BlindSpot     string    `json:"blind_spot,omitempty"`
	GrowthInsight string    `json:"growth_insight,omitempty"`
}

func New(id int64, sessionID *string, prediction string, days int, now time.Time) (Wager, error) {
	prediction = strings.TrimSpace(prediction)
	if prediction == "" {
		return Wager{}, fmt.Errorf("prediction is required")
	}
	if !ValidHorizon(days) {
		return Wager{}, fmt.Errorf("days must be one of %v, got %d", Horizons, days)
	}
	if sessionID != nil && strings.TrimSpace(*sessionID) == "" {
		sessionID = nil
	}
	return Wager{
		ID:         id,
		SessionID:  sessionID,
		Prediction: prediction,
		Days:       days,
		CreatedAt:  now,
		ReviewDate: now.AddDate(0, 0, days),
		Status:     StatusPending,
	}, nil
}

// DisplayStatus derives the live status. DUE is never stored.
func (w Wager) DisplayStatus(now time.Time) Status {
	if w.Status == StatusAudited {
		return StatusAudited
	}
	if !now.Before(w.ReviewDate) {
		return StatusDue
	}
	return StatusPending
}

func (w Wager) Audited() bool {
	return w.Status == StatusAudited
}

// AuditResult is the resolution of a wager against what actually happened.
type AuditResult struct {
	AccuracyScore int    `json:"accuracy_score"`
	BlindSpot     string `json:"blind_spot"`
	GrowthInsight string `json:"growth_insight"`
}

func (r AuditResult) Validate() error {
	if r.AccuracyScore < 0 || r.AccuracyScore > 100 {
		return fmt.Errorf("accuracy score %d outside [0,100]", r.AccuracyScore)
	}
	if strings.TrimSpace(r.BlindSpot) == "" {
		return fmt.Errorf("blind spot is required")
	}
	if strings.TrimSpace(r.GrowthInsight) == "" {
		return fmt.Errorf("growth insight is required")
	}
	return nil
}

// Resolve moves the wager to its terminal state.
func (w Wager) Resolve(result AuditResult) (Wager, error) {
	if w.Audited() {
		return Wager{}, fmt.Errorf("wager %d is already audited", w.ID)
	}
	if err := result.Validate(); err != nil {
		return Wager{}, err
	}
	score := result.AccuracyScore
	w.Status = StatusAudited
	w.AccuracyScore = &score
	w.BlindSpot = result.BlindSpot
	w.GrowthInsight = result.GrowthInsight
	return w, nil
}

// Stats summarises a ledger the way the judgment dashboard shows it.
type Stats struct {
	Total           int `json:"total"`
	Pending         int `json:"pending"`
	Due             int `json:"due"`
	Audited         int `json:"audited"`
	AverageAccuracy int `json:"average_accuracy"`
}

func Summarize(wagers []Wager, now time.Time) Stats {
	stats := Stats{Total: len(wagers)}
	sum := 0
	for _, w := range wagers {
		switch w.DisplayStatus(now) {
		case StatusAudited:
			stats.Audited++
			if w.AccuracyScore != nil {
				sum += *w.AccuracyScore
			}
		case StatusDue:
			stats.Due++
		default:
			stats.Pending++
		}
	}
	if stats.Audited > 0 {
		// round half up
		stats.AverageAccuracy = (2*sum + stats.Audited) / (2 * stats.Audited)
	}
	return stats
}
