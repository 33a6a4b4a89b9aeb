package models

import (
	"strings"
	"time"
)

// TrendDirection is the verdict on how a metric is moving over time.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
)

// MetricCategory groups metric paths into the three ROI dimensions.
type MetricCategory string

const (
	CategoryFinancial    MetricCategory = "financial"
	CategoryProductivity MetricCategory = "productivity"
	CategoryQuality      MetricCategory = "quality"
)

// CategorizeMetric infers a category from substring matches in the metric
// path. Paths that match neither financial nor productivity keywords fall
// through to quality.
func CategorizeMetric(path string) MetricCategory {
	p := strings.ToLower(path)
	for _, kw := range []string{"cost", "roi", "savings", "financial"} {
		if strings.Contains(p, kw) {
			return CategoryFinancial
		}
	}
	for _, kw := range []string{"time", "hours", "adoption", "productivity"} {
		if strings.Contains(p, kw) {
			return CategoryProductivity
		}
	}
	return CategoryQuality
}

// TrendDataPoint is one metric observation drawn from a stored snapshot.
type TrendDataPoint struct {
	Timestamp          time.Time          `json:"timestamp"`
	Value              float64            `json:"value"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
}

// ROITrend is the computed directional movement of a metric across an
// ordered sequence of snapshots. It is never persisted.
type ROITrend struct {
	MetricPath string           `json:"metric_path"`
	Category   MetricCategory   `json:"category"`
	DataPoints []TrendDataPoint `json:"data_points"`
	Trend      TrendDirection   `json:"trend"`
	// TrendConfidence is the explained-variance ratio (R squared) of a
	// linear fit, in [0,1]. Zero when fewer than 3 points exist or the
	// series has no variation.
	TrendConfidence float64 `json:"trend_confidence"`
	Slope           float64 `json:"slope"`
}
