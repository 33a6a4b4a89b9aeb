package roi

import (
	"gonum.org/v1/gonum/stat"

	"github.com/quallaa/quallaa-cli/pkg/models"
)

// slopeThreshold separates improving/declining from stable. The threshold
// is absolute on the raw metric scale, not normalized, so metrics with
// small numeric ranges read as stable more readily than large ones.
const slopeThreshold = 0.05

// FitTrend computes the direction and confidence of a metric series drawn
// from snapshots in persisted order. The caller guarantees at least two
// points; x is the snapshot index (0..n-1).
func FitTrend(path string, points []models.TrendDataPoint) models.ROITrend {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(i)
		ys[i] = p.Value
	}

	_, slope := stat.LinearRegression(xs, ys, nil, false)

	direction := models.TrendStable
	switch {
	case slope > slopeThreshold:
		direction = models.TrendImproving
	case slope < -slopeThreshold:
		direction = models.TrendDeclining
	}

	return models.ROITrend{
		MetricPath:      path,
		Category:        models.CategorizeMetric(path),
		DataPoints:      points,
		Trend:           direction,
		TrendConfidence: trendConfidence(xs, ys),
		Slope:           slope,
	}
}

// trendConfidence is the explained-variance ratio of the linear fit.
// Fewer than 3 points or a series with no variation yields 0.
func trendConfidence(xs, ys []float64) float64 {
	if len(ys) < 3 {
		return 0
	}
	mean := stat.Mean(ys, nil)
	totalVar := 0.0
	for _, y := range ys {
		d := y - mean
		totalVar += d * d
	}
	if totalVar == 0 {
		return 0
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, intercept, slope)
	if r2 < 0 {
		return 0
	}
	if r2 > 1 {
		return 1
	}
	return r2
}
