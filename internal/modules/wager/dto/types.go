package dto

import "time"

type SealInput struct {
	SessionID  *string
	Prediction string
	Days       int
}

type ApplyAuditInput struct {
	ID            int64
	AccuracyScore int
	BlindSpot     string
	GrowthInsight string
}

type WagerOutput struct {
	ID            int64     `json:"id"`
	SessionID     *string   `json:"session_id"`
	Prediction    string    `json:"prediction"`
	Days          int       `json:"days"`
	CreatedAt     time.Time `json:"created_at"`
	ReviewDate    time.Time `json:"review_date"`
	Status        string    `json:"status"`
	DisplayStatus string    `json:"display_status"`
	AccuracyScore *int      `json:"accuracy_score,omitempty"`
	BlindSpot     string    `json:"blind_spot,omitempty"`
	GrowthInsight string    `json:"growth_insight,omitempty"`
}

type StatsOutput struct {
	Total           int `json:"total"`
	Pending         int `json:"pending"`
	Due             int `json:"due"`
	Audited         int `json:"audited"`
	AverageAccuracy int `json:"average_accuracy"`
}
