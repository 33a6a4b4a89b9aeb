package roi

import (
	"math"

	"github.com/quallaa/quallaa-cli/pkg/models"
	"github.com/quallaa/quallaa-cli/pkg/stats"
)

// DefaultAlpha is the significance threshold for p-values.
const DefaultAlpha = 0.05

// Significance approximates whether the ROI point estimate is
// distinguishable from zero effect. The interval half-width is treated as
// a 1.96-sigma bound, giving an approximate z-score of
// |ROI| / (halfWidth / 1.96); the two-tailed p-value follows from the
// normal CDF.
func Significance(roiEstimate float64, ci models.ConfidenceInterval, alpha float64) models.StatisticalSignificance {
	if alpha <= 0 || alpha >= 1 {
		alpha = DefaultAlpha
	}

	halfWidth := ci.HalfWidth()
	var p float64
	switch {
	case halfWidth <= 0 && roiEstimate == 0:
		// No effect and no spread: indistinguishable from zero.
		p = 1
	case halfWidth <= 0:
		// A point mass away from zero.
		p = 0
	default:
		z := math.Abs(roiEstimate) / (halfWidth / 1.96)
		p = 2 * (1 - stats.NormalCDF(z))
	}

	return models.StatisticalSignificance{
		PValue:        p,
		IsSignificant: p < alpha,
	}
}
