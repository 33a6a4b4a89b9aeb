package roi

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quallaa/quallaa-cli/pkg/models"
)

func TestConfidenceInterval_BracketsPointEstimate(t *testing.T) {
	c := seededCalculator()
	m := c.Calculate(testBaseline(), testCurrent(), 0.95)

	ci := m.ConfidenceInterval
	roi := m.Financial.CurrentROI

	require.Greater(t, roi, 0.0)
	assert.Less(t, ci.Lower, roi)
	assert.Greater(t, ci.Upper, roi)
	assert.InDelta(t, 0.95, ci.ConfidenceLevel, 1e-9)
}

func TestConfidenceInterval_WidthWithinClampBounds(t *testing.T) {
	c := seededCalculator()
	m := c.Calculate(testBaseline(), testCurrent(), 0.95)

	roi := m.Financial.CurrentROI
	half := m.ConfidenceInterval.HalfWidth()

	// Relative half-width is bounded by the uncertainty clamp [0.05, 0.30];
	// the 95% quantiles trim the extreme tails slightly.
	rel := half / roi
	assert.Greater(t, rel, 0.02)
	assert.Less(t, rel, 0.30)
}

func TestConfidenceInterval_DeterministicWithSeededSource(t *testing.T) {
	a := New(WithRand(rand.New(rand.NewSource(7))))
	b := New(WithRand(rand.New(rand.NewSource(7))))

	ma := a.Calculate(testBaseline(), testCurrent(), 0.95)
	mb := b.Calculate(testBaseline(), testCurrent(), 0.95)

	assert.Equal(t, ma.ConfidenceInterval.Lower, mb.ConfidenceInterval.Lower)
	assert.Equal(t, ma.ConfidenceInterval.Upper, mb.ConfidenceInterval.Upper)
}

func TestConfidenceInterval_UnseededRunsAgreeWithinTolerance(t *testing.T) {
	a := New(WithRand(rand.New(rand.NewSource(1))))
	b := New(WithRand(rand.New(rand.NewSource(2))))

	ma := a.Calculate(testBaseline(), testCurrent(), 0.95)
	mb := b.Calculate(testBaseline(), testCurrent(), 0.95)

	// Different random streams produce statistically similar but not
	// bit-identical intervals.
	roi := ma.Financial.CurrentROI
	assert.InDelta(t, ma.ConfidenceInterval.Lower, mb.ConfidenceInterval.Lower, roi*0.02)
	assert.InDelta(t, ma.ConfidenceInterval.Upper, mb.ConfidenceInterval.Upper, roi*0.02)
}

func TestUncertaintyFactor_GroupDiscountApplied(t *testing.T) {
	c := seededCalculator()

	full := c.Calculate(testBaseline(), testCurrent(), 0.95)
	require.Equal(t, 3, countMetricGroups(full))

	// 0.15 * 0.8 * 0.9 = 0.108, inside the clamp.
	assert.InDelta(t, 0.108, c.uncertaintyFactor(full), 1e-9)
}

func TestUncertaintyFactor_Clamped(t *testing.T) {
	low := seededCalculator(WithUncertainty(0.01))
	high := seededCalculator(WithUncertainty(0.9))
	m := low.Calculate(testBaseline(), testCurrent(), 0.95)

	assert.InDelta(t, 0.05, low.uncertaintyFactor(m), 1e-9)
	assert.InDelta(t, 0.30, high.uncertaintyFactor(m), 1e-9)
}

func TestCountMetricGroups_EmptyMetrics(t *testing.T) {
	c := seededCalculator()
	m := c.Calculate(models.Baseline{}, models.CurrentMetrics{}, 0.95)
	assert.Equal(t, 0, countMetricGroups(m))
}
