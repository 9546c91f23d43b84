package model

import "time"

// CrediScore level constants
const (
	ScoreLevelExcellent = "Excellent"
	ScoreLevelVeryGood  = "Very Good"
	ScoreLevelGood      = "Good"
	ScoreLevelFair      = "Fair"
	ScoreLevelPoor      = "Poor"
)

// CrediScoreFactors holds the five weighted sub-factor scores.
// Maxima: payment history 25, consistency 20, diversity 15, growth 20,
// reputation 20 — they sum to 100.
type CrediScoreFactors struct {
	PaymentHistory       float64 `json:"payment_history"`
	FinancialConsistency float64 `json:"financial_consistency"`
	ClientDiversity      float64 `json:"client_diversity"`
	BusinessGrowth       float64 `json:"business_growth"`
	Reputation           float64 `json:"reputation"`
}

// CrediScoreMetrics is the derived creditworthiness composite. It is
// never mutated independently — always recomputed as a pure function of
// invoices, receipts, feedback and the user profile.
type CrediScoreMetrics struct {
	Score           int               `json:"score"` // 0-100
	Level           string            `json:"level"`
	Factors         CrediScoreFactors `json:"factors"`
	Recommendations []string          `json:"recommendations"`
	LastUpdated     time.Time         `json:"last_updated"`
}
