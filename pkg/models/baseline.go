package models

import "time"

// Default quality metrics applied when a baseline is established without
// explicit measurements.
const (
	DefaultErrorRateBaseline         = 0.05
	DefaultAccuracyBaseline          = 0.85
	DefaultComplianceScore           = 0.7
	DefaultCustomerSatisfactionScore = 7.5
)

// Baseline is the pre-adoption measurement record every ROI calculation is
// computed against. One baseline exists per project; replacing it is the
// only way to mutate it.
type Baseline struct {
	EstablishedAt          time.Time `json:"established_at"`
	DevelopmentCost        float64   `json:"development_cost"`
	CurrentSaaSSpend       float64   `json:"current_saas_spend"`
	TeamSize               int       `json:"team_size"`
	CurrentProcessingHours float64   `json:"current_processing_hours"`

	// Quality metrics. Error rate, accuracy, and compliance are fractions
	// in [0,1]; customer satisfaction is on a 1-10 scale.
	ErrorRateBaseline         float64 `json:"error_rate_baseline"`
	AccuracyBaseline          float64 `json:"accuracy_baseline"`
	ComplianceScore           float64 `json:"compliance_score"`
	CustomerSatisfactionScore float64 `json:"customer_satisfaction_score"`
}

// BaselineUpdate carries a partial baseline for merge-style updates.
// Nil fields leave the existing value unchanged.
type BaselineUpdate struct {
	DevelopmentCost           *float64 `json:"development_cost,omitempty"`
	CurrentSaaSSpend          *float64 `json:"current_saas_spend,omitempty"`
	TeamSize                  *int     `json:"team_size,omitempty"`
	CurrentProcessingHours    *float64 `json:"current_processing_hours,omitempty"`
	ErrorRateBaseline         *float64 `json:"error_rate_baseline,omitempty"`
	AccuracyBaseline          *float64 `json:"accuracy_baseline,omitempty"`
	ComplianceScore           *float64 `json:"compliance_score,omitempty"`
	CustomerSatisfactionScore *float64 `json:"customer_satisfaction_score,omitempty"`
}

// Apply merges the non-nil fields of the update over b and returns the
// result. EstablishedAt is preserved from the original record.
func (u BaselineUpdate) Apply(b Baseline) Baseline {
	if u.DevelopmentCost != nil {
		b.DevelopmentCost = *u.DevelopmentCost
	}
	if u.CurrentSaaSSpend != nil {
		b.CurrentSaaSSpend = *u.CurrentSaaSSpend
	}
	if u.TeamSize != nil {
		b.TeamSize = *u.TeamSize
	}
	if u.CurrentProcessingHours != nil {
		b.CurrentProcessingHours = *u.CurrentProcessingHours
	}
	if u.ErrorRateBaseline != nil {
		b.ErrorRateBaseline = *u.ErrorRateBaseline
	}
	if u.AccuracyBaseline != nil {
		b.AccuracyBaseline = *u.AccuracyBaseline
	}
	if u.ComplianceScore != nil {
		b.ComplianceScore = *u.ComplianceScore
	}
	if u.CustomerSatisfactionScore != nil {
		b.CustomerSatisfactionScore = *u.CustomerSatisfactionScore
	}
	return b
}

// BaselineHealth is the result of scoring a baseline for completeness.
// The score starts at 100 and each detected issue deducts points; the
// score is deliberately not clamped, a negative value means the baseline
// is critically incomplete.
type BaselineHealth struct {
	Score           int      `json:"score"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// Age returns how long ago the baseline was established.
func (b Baseline) Age(now time.Time) time.Duration {
	return now.Sub(b.EstablishedAt)
}
