package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quallaa/quallaa-cli/pkg/models"
)

func newTrendFixture(t *testing.T, roiValues ...float64) *TrendService {
	t.Helper()
	snaps := NewSnapshotService(NewMemStore())
	for _, v := range roiValues {
		_, err := snaps.Create("proj", sampleBaseline(), sampleMetrics(t, v), samplePeriod())
		require.NoError(t, err)
	}
	return NewTrendService(snaps)
}

func TestTrendsImproving(t *testing.T) {
	svc := newTrendFixture(t, 100, 150, 200)

	trend, err := svc.Trends("proj", "financial.currentROI")
	require.NoError(t, err)

	assert.Equal(t, models.TrendImproving, trend.Trend)
	assert.Equal(t, models.CategoryFinancial, trend.Category)
	assert.InDelta(t, 1.0, trend.TrendConfidence, 1e-9)
	require.Len(t, trend.DataPoints, 3)
	assert.Equal(t, 100.0, trend.DataPoints[0].Value)
	assert.Equal(t, 200.0, trend.DataPoints[2].Value)
}

func TestTrendsInsufficientData(t *testing.T) {
	svc := newTrendFixture(t, 100)

	_, err := svc.Trends("proj", "financial.currentROI")
	require.ErrorIs(t, err, ErrInsufficientSnapshots)
	assert.Equal(t, "At least 2 snapshots required for trend analysis", err.Error())
}

func TestTrendsNoSnapshotsAtAll(t *testing.T) {
	svc := NewTrendService(NewSnapshotService(NewMemStore()))

	_, err := svc.Trends("proj", "financial.currentROI")
	assert.ErrorIs(t, err, ErrInsufficientSnapshots)
}

func TestTrendsIgnoresOtherProjects(t *testing.T) {
	snaps := NewSnapshotService(NewMemStore())
	_, err := snaps.Create("mine", sampleBaseline(), sampleMetrics(t, 100), samplePeriod())
	require.NoError(t, err)
	_, err = snaps.Create("other", sampleBaseline(), sampleMetrics(t, 999), samplePeriod())
	require.NoError(t, err)
	_, err = snaps.Create("mine", sampleBaseline(), sampleMetrics(t, 120), samplePeriod())
	require.NoError(t, err)

	svc := NewTrendService(snaps)
	trend, err := svc.Trends("mine", "financial.currentROI")
	require.NoError(t, err)

	require.Len(t, trend.DataPoints, 2)
	assert.Equal(t, 100.0, trend.DataPoints[0].Value)
	assert.Equal(t, 120.0, trend.DataPoints[1].Value)
}

func TestTrendsUnknownPathYieldsZeros(t *testing.T) {
	svc := newTrendFixture(t, 100, 150, 200)

	trend, err := svc.Trends("proj", "financial.noSuchMetric")
	require.NoError(t, err)

	assert.Equal(t, models.TrendStable, trend.Trend)
	assert.Zero(t, trend.TrendConfidence)
	for _, p := range trend.DataPoints {
		assert.Zero(t, p.Value)
	}
}

func TestTrendsAllPreservesPathOrder(t *testing.T) {
	svc := newTrendFixture(t, 100, 150, 200)

	paths := []string{
		"financial.currentROI",
		"productivity.timeSavedHours",
		"quality.defectReduction",
	}
	trends, err := svc.TrendsAll("proj", paths)
	require.NoError(t, err)
	require.Len(t, trends, 3)

	for i, path := range paths {
		assert.Equal(t, path, trends[i].MetricPath)
	}
	assert.Equal(t, models.CategoryFinancial, trends[0].Category)
	assert.Equal(t, models.CategoryProductivity, trends[1].Category)
	assert.Equal(t, models.CategoryQuality, trends[2].Category)
}

func TestTrendsAllPropagatesInsufficientData(t *testing.T) {
	svc := newTrendFixture(t, 100)

	_, err := svc.TrendsAll("proj", []string{"financial.currentROI"})
	assert.ErrorIs(t, err, ErrInsufficientSnapshots)
}
