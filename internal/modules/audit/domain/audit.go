package domain

import (
	"fmt"
	"strings"
	"time"
)

// Subject is the wager being audited, as the engine sees it.
type Subject struct {
	WagerID    int64
	Prediction string
	Days       int
	SealedAt   time.Time
	ReviewDate time.Time
	Audited    bool
}

// Request is what a resolver receives: the sealed call and what happened.
type Request struct {
	WagerID    int64     `json:"wager_id"`
	Prediction string    `json:"prediction"`
	Days       int       `json:"days"`
	SealedAt   time.Time `json:"sealed_at"`
	FollowUp   string    `json:"follow_up"`
}

type Result struct {
	AccuracyScore int    `json:"accuracy_score"`
	BlindSpot     string `json:"blind_spot"`
	GrowthInsight string `json:"growth_insight"`
}

func (r Result) Validate() error {
	if r.AccuracyScore < 0 || r.AccuracyScore > 100 {
		return fmt.Errorf("accuracy score %d outside [0,100]", r.AccuracyScore)
	}
	if strings.TrimSpace(r.BlindSpot) == "" {
		return fmt.Errorf("resolver returned no blind spot")
	}
	if strings.TrimSpace(r.GrowthInsight) == "" {
		return fmt.Errorf("resolver returned no growth insight")
	}
	return nil
}
