package dto

type AuditInput struct {
	WagerID  int64
	FollowUp string
}

type AuditOutput struct {
	WagerID       int64  `json:"wager_id"`
	AccuracyScore int    `json:"accuracy_score"`
	BlindSpot     string `json:"blind_spot"`
	GrowthInsight string `json:"growth_insight"`
	Resolver      string `json:"resolver"`
}
