package models

import "time"

// Period is the measurement window a snapshot covers.
type Period struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// StatisticalSignificance records whether the snapshot's ROI point
// estimate is distinguishable from zero effect.
type StatisticalSignificance struct {
	PValue        float64 `json:"p_value"`
	IsSignificant bool    `json:"is_significant"`
}

// ROISnapshot is an immutable, timestamped record of computed ROI metrics
// for a project over a stated period. The baseline is embedded as a full
// copy so the state it was measured against survives later baseline
// updates. BaselineHash is a content fingerprint of the embedded baseline
// used to detect drift between snapshots.
type ROISnapshot struct {
	ID           string                  `json:"id"`
	ProjectID    string                  `json:"project_id"`
	Timestamp    time.Time               `json:"timestamp"`
	Metrics      ROIMetrics              `json:"metrics"`
	Baseline     Baseline                `json:"baseline"`
	BaselineHash string                  `json:"baseline_hash"`
	Period       Period                  `json:"period"`
	Significance StatisticalSignificance `json:"significance"`
}
