package roi

import (
	"sort"

	"github.com/quallaa/quallaa-cli/pkg/models"
)

// MetricAccessor extracts one metric value from a calculation result.
type MetricAccessor func(models.ROIMetrics) float64

// metricAccessors maps known dotted metric paths to typed extractors.
// Break-even months is excluded: its unbounded value does not average or
// regress meaningfully.
var metricAccessors = map[string]MetricAccessor{
	"financial.saasReplacementSavings":   func(m models.ROIMetrics) float64 { return m.Financial.SaaSReplacementSavings },
	"financial.operationalCostReduction": func(m models.ROIMetrics) float64 { return m.Financial.OperationalCostReduction },
	"financial.cumulativeSavings":        func(m models.ROIMetrics) float64 { return m.Financial.CumulativeSavings },
	"financial.netBenefit":               func(m models.ROIMetrics) float64 { return m.Financial.NetBenefit },
	"financial.currentROI":               func(m models.ROIMetrics) float64 { return m.Financial.CurrentROI },

	"productivity.timeSavedHours":          func(m models.ROIMetrics) float64 { return m.Productivity.TimeSavedHours },
	"productivity.errorReductionRate":      func(m models.ROIMetrics) float64 { return m.Productivity.ErrorReductionRate },
	"productivity.processingTimeReduction": func(m models.ROIMetrics) float64 { return m.Productivity.ProcessingTimeReduction },
	"productivity.throughputIncrease":      func(m models.ROIMetrics) float64 { return m.Productivity.ThroughputIncrease },
	"productivity.employeeAdoptionRate":    func(m models.ROIMetrics) float64 { return m.Productivity.EmployeeAdoptionRate },

	"quality.accuracyImprovement":       func(m models.ROIMetrics) float64 { return m.Quality.AccuracyImprovement },
	"quality.defectReduction":           func(m models.ROIMetrics) float64 { return m.Quality.DefectReduction },
	"quality.complianceImprovement":     func(m models.ROIMetrics) float64 { return m.Quality.ComplianceImprovement },
	"quality.customerSatisfactionDelta": func(m models.ROIMetrics) float64 { return m.Quality.CustomerSatisfactionDelta },
	"quality.reviewCycleReduction":      func(m models.ROIMetrics) float64 { return m.Quality.ReviewCycleReduction },
}

// AccessorFor resolves a dotted metric path to an extractor. Unknown
// paths resolve to a zero-valued accessor rather than an error, matching
// the trend analyzer's "missing path yields 0" contract.
func AccessorFor(path string) MetricAccessor {
	if acc, ok := metricAccessors[path]; ok {
		return acc
	}
	return func(models.ROIMetrics) float64 { return 0 }
}

// KnownMetricPaths returns every registered metric path, sorted.
func KnownMetricPaths() []string {
	paths := make([]string, 0, len(metricAccessors))
	for p := range metricAccessors {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
