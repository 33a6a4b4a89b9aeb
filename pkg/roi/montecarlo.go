package roi

import (
	"sort"

	"github.com/quallaa/quallaa-cli/pkg/models"
	"github.com/quallaa/quallaa-cli/pkg/stats"
)

// confidenceInterval estimates an interval around the point-estimate ROI
// by Monte Carlo resampling: each trial perturbs the ROI by uniform
// relative noise in [-u, +u], where u is the adjusted uncertainty factor.
// The procedure is deterministic in shape but stochastic in value unless
// the random source is seeded.
func (c *Calculator) confidenceInterval(m models.ROIMetrics, confidenceLevel float64) models.ConfidenceInterval {
	u := c.uncertaintyFactor(m)
	roi := m.Financial.CurrentROI

	samples := make([]float64, c.trials)
	for i := range samples {
		noise := (c.rng.Float64()*2 - 1) * u
		samples[i] = roi * (1 + noise)
	}
	sort.Float64s(samples)

	alpha := 1 - confidenceLevel
	return models.ConfidenceInterval{
		Lower:           stats.Quantile(samples, alpha/2),
		Upper:           stats.Quantile(samples, 1-alpha/2),
		ConfidenceLevel: confidenceLevel,
	}
}

// uncertaintyFactor starts from the base uncertainty, discounts it when
// all three metric groups carry signal, applies the fixed maturity
// factor, and clamps the result.
func (c *Calculator) uncertaintyFactor(m models.ROIMetrics) float64 {
	u := c.baseUncertainty
	if countMetricGroups(m) >= 3 {
		u *= defaultGroupDiscount
	}
	u *= defaultMaturityFactor

	if u < c.minUncertainty {
		u = c.minUncertainty
	}
	if u > c.maxUncertainty {
		u = c.maxUncertainty
	}
	return u
}

// countMetricGroups counts metric groups carrying any non-zero signal.
func countMetricGroups(m models.ROIMetrics) int {
	n := 0
	if f := m.Financial; f.SaaSReplacementSavings != 0 || f.OperationalCostReduction != 0 ||
		f.NetBenefit != 0 || f.CurrentROI != 0 {
		n++
	}
	if p := m.Productivity; p.TimeSavedHours != 0 || p.ErrorReductionRate != 0 ||
		p.ProcessingTimeReduction != 0 || p.EmployeeAdoptionRate != 0 {
		n++
	}
	if q := m.Quality; q.AccuracyImprovement != 0 || q.DefectReduction != 0 ||
		q.ComplianceImprovement != 0 || q.CustomerSatisfactionDelta != 0 {
		n++
	}
	return n
}
