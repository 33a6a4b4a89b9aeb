package roi

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quallaa/quallaa-cli/pkg/models"
)

func testBaseline() models.Baseline {
	return models.Baseline{
		EstablishedAt:             time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		DevelopmentCost:           25000,
		CurrentSaaSSpend:          1500,
		TeamSize:                  5,
		CurrentProcessingHours:    40,
		ErrorRateBaseline:         0.05,
		AccuracyBaseline:          0.85,
		ComplianceScore:           0.7,
		CustomerSatisfactionScore: 7.5,
	}
}

func testCurrent() models.CurrentMetrics {
	return models.CurrentMetrics{
		MonthsInOperation:           12,
		CurrentSaaSSpend:            500,
		MaintenanceCosts:            100,
		CurrentProcessingHours:      10,
		EmployeeAdoptionRate:        0.8,
		CurrentAccuracy:             0.95,
		CurrentErrorRate:            0.02,
		CurrentComplianceScore:      0.9,
		CurrentCustomerSatisfaction: 8.5,
	}
}

func seededCalculator(opts ...Option) *Calculator {
	base := []Option{WithRand(rand.New(rand.NewSource(42)))}
	return New(append(base, opts...)...)
}

func TestCalculate_ReferenceScenario(t *testing.T) {
	c := seededCalculator()
	m := c.Calculate(testBaseline(), testCurrent(), 0.95)

	// 1000/month SaaS savings and 30h/month at $75 over 12 months.
	assert.InDelta(t, 12000, m.Financial.SaaSReplacementSavings, 1e-9)
	assert.InDelta(t, 27000, m.Financial.OperationalCostReduction, 1e-9)
	assert.InDelta(t, 39000, m.Financial.CumulativeSavings, 1e-9)

	// 39000 - 25000 dev cost - 1200 maintenance.
	assert.InDelta(t, 12800, m.Financial.NetBenefit, 1e-9)
	assert.Greater(t, m.Financial.CurrentROI, 0.0)
	assert.InDelta(t, 51.2, m.Financial.CurrentROI, 1e-9)

	// 25000 / (1000 + 2250 - 100) = 7.94 -> 8 months.
	require.False(t, m.Financial.BreakEvenMonths.IsNever())
	assert.Equal(t, models.Months(8), m.Financial.BreakEvenMonths)

	assert.InDelta(t, 360, m.Productivity.TimeSavedHours, 1e-9)
	assert.InDelta(t, 60, m.Productivity.ErrorReductionRate, 1e-9)
	assert.InDelta(t, 75, m.Productivity.ProcessingTimeReduction, 1e-9)
	assert.InDelta(t, 300, m.Productivity.ThroughputIncrease, 1e-9)
	assert.InDelta(t, 80, m.Productivity.EmployeeAdoptionRate, 1e-9)

	assert.InDelta(t, (0.95-0.85)/0.85*100, m.Quality.AccuracyImprovement, 1e-9)
	assert.InDelta(t, 60, m.Quality.DefectReduction, 1e-9)
	assert.InDelta(t, 48, m.Quality.ReviewCycleReduction, 1e-9)
	assert.InDelta(t, 1.0, m.Quality.CustomerSatisfactionDelta, 1e-9)

	assert.False(t, m.CalculatedAt.IsZero())
}

func TestCalculate_SaaSSavingsMonotonic(t *testing.T) {
	c := seededCalculator()
	baseline := testBaseline()

	cheap := testCurrent()
	cheap.CurrentSaaSSpend = 200
	expensive := testCurrent()
	expensive.CurrentSaaSSpend = 900

	low := c.Calculate(baseline, expensive, 0.95)
	high := c.Calculate(baseline, cheap, 0.95)

	assert.Greater(t, high.Financial.SaaSReplacementSavings, low.Financial.SaaSReplacementSavings)
	assert.Greater(t, high.Financial.CurrentROI, low.Financial.CurrentROI)
}

func TestCalculate_ZeroBaselineHours(t *testing.T) {
	c := seededCalculator()
	baseline := testBaseline()
	baseline.CurrentProcessingHours = 0

	m := c.Calculate(baseline, testCurrent(), 0.95)

	assert.Zero(t, m.Productivity.ProcessingTimeReduction)
	assert.Zero(t, m.Productivity.ThroughputIncrease)
	assert.Zero(t, m.Financial.OperationalCostReduction)
	assert.Zero(t, m.Productivity.TimeSavedHours)
}

func TestCalculate_ZeroErrorRateBaseline(t *testing.T) {
	c := seededCalculator()
	baseline := testBaseline()
	baseline.ErrorRateBaseline = 0

	m := c.Calculate(baseline, testCurrent(), 0.95)

	assert.Zero(t, m.Productivity.ErrorReductionRate)
	assert.Zero(t, m.Quality.DefectReduction)
	assert.Zero(t, m.Quality.ReviewCycleReduction)
}

func TestCalculate_ZeroDevelopmentCost(t *testing.T) {
	c := seededCalculator()
	baseline := testBaseline()
	baseline.DevelopmentCost = 0

	m := c.Calculate(baseline, testCurrent(), 0.95)
	assert.Zero(t, m.Financial.CurrentROI)
}

func TestCalculate_BreakEvenNever(t *testing.T) {
	c := seededCalculator()
	baseline := testBaseline()

	current := testCurrent()
	// No savings at all and positive maintenance: never breaks even.
	current.CurrentSaaSSpend = baseline.CurrentSaaSSpend
	current.CurrentProcessingHours = baseline.CurrentProcessingHours
	current.MaintenanceCosts = 250

	m := c.Calculate(baseline, current, 0.95)
	assert.True(t, m.Financial.BreakEvenMonths.IsNever())
}

func TestCalculate_CustomHourlyRate(t *testing.T) {
	c := seededCalculator(WithHourlyRate(100))
	m := c.Calculate(testBaseline(), testCurrent(), 0.95)
	assert.InDelta(t, 30*100*12, m.Financial.OperationalCostReduction, 1e-9)
}

func TestCalculate_InvalidConfidenceLevelFallsBack(t *testing.T) {
	c := seededCalculator()
	m := c.Calculate(testBaseline(), testCurrent(), 0)
	assert.InDelta(t, 0.95, m.ConfidenceInterval.ConfidenceLevel, 1e-9)
}
