package store

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quallaa/quallaa-cli/pkg/models"
	"github.com/quallaa/quallaa-cli/pkg/roi"
)

func sampleBaseline() models.Baseline {
	return models.Baseline{
		EstablishedAt:             time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
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

func sampleMetrics(t *testing.T, roiOverride float64) models.ROIMetrics {
	t.Helper()
	calc := roi.New(roi.WithRand(rand.New(rand.NewSource(1))))
	m := calc.Calculate(sampleBaseline(), models.CurrentMetrics{
		MonthsInOperation:      12,
		CurrentSaaSSpend:       500,
		MaintenanceCosts:       100,
		CurrentProcessingHours: 10,
		EmployeeAdoptionRate:   0.8,
		CurrentAccuracy:        0.95,
		CurrentErrorRate:       0.02,
	}, 0.95)
	if roiOverride != 0 {
		scale := roiOverride / m.Financial.CurrentROI
		m.Financial.CurrentROI = roiOverride
		m.ConfidenceInterval.Lower *= scale
		m.ConfidenceInterval.Upper *= scale
	}
	return m
}

func samplePeriod() models.Period {
	return models.Period{
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateSnapshot(t *testing.T) {
	svc := NewSnapshotService(NewMemStore())

	snap, err := svc.Create("billing-recon", sampleBaseline(), sampleMetrics(t, 0), samplePeriod())
	require.NoError(t, err)

	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, "billing-recon", snap.ProjectID)
	assert.False(t, snap.Timestamp.IsZero())
	assert.NotEmpty(t, snap.BaselineHash)
	assert.Equal(t, sampleBaseline(), snap.Baseline)

	// A solidly positive ROI with a proportionate interval reads as
	// significant under the normal approximation.
	assert.Less(t, snap.Significance.PValue, 0.05)
	assert.True(t, snap.Significance.IsSignificant)
}

func TestSnapshotIDsAreUnique(t *testing.T) {
	svc := NewSnapshotService(NewMemStore())

	a, err := svc.Create("p", sampleBaseline(), sampleMetrics(t, 0), samplePeriod())
	require.NoError(t, err)
	b, err := svc.Create("p", sampleBaseline(), sampleMetrics(t, 0), samplePeriod())
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestListEmptyLog(t *testing.T) {
	svc := NewSnapshotService(NewMemStore())

	snaps, err := svc.List("any")
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestListFiltersByProjectPreservingOrder(t *testing.T) {
	svc := NewSnapshotService(NewMemStore())

	first, err := svc.Create("alpha", sampleBaseline(), sampleMetrics(t, 100), samplePeriod())
	require.NoError(t, err)
	_, err = svc.Create("beta", sampleBaseline(), sampleMetrics(t, 150), samplePeriod())
	require.NoError(t, err)
	second, err := svc.Create("alpha", sampleBaseline(), sampleMetrics(t, 200), samplePeriod())
	require.NoError(t, err)

	all, err := svc.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	alpha, err := svc.List("alpha")
	require.NoError(t, err)
	require.Len(t, alpha, 2)
	assert.Equal(t, first.ID, alpha[0].ID)
	assert.Equal(t, second.ID, alpha[1].ID)
}

func TestSnapshotRoundTripRestoresTimestamps(t *testing.T) {
	svc := NewSnapshotService(NewMemStore())

	created, err := svc.Create("p", sampleBaseline(), sampleMetrics(t, 0), samplePeriod())
	require.NoError(t, err)

	loaded, err := svc.List("p")
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, created.Timestamp.Equal(got.Timestamp))
	assert.True(t, samplePeriod().StartDate.Equal(got.Period.StartDate))
	assert.True(t, samplePeriod().EndDate.Equal(got.Period.EndDate))

	// Numeric content survives intact.
	assert.Equal(t, created.Metrics.Financial, got.Metrics.Financial)
	assert.Equal(t, created.Metrics.Quality, got.Metrics.Quality)
	assert.Equal(t, created.Significance, got.Significance)
	assert.Equal(t, created.BaselineHash, got.BaselineHash)
}

func TestAppendNeverMutatesPriorEntries(t *testing.T) {
	mem := NewMemStore()
	svc := NewSnapshotService(mem)

	first, err := svc.Create("p", sampleBaseline(), sampleMetrics(t, 100), samplePeriod())
	require.NoError(t, err)

	beforeRaw, err := mem.Read("roi-snapshots")
	require.NoError(t, err)
	var before []models.ROISnapshot
	require.NoError(t, json.Unmarshal(beforeRaw, &before))

	_, err = svc.Create("p", sampleBaseline(), sampleMetrics(t, 150), samplePeriod())
	require.NoError(t, err)

	afterRaw, err := mem.Read("roi-snapshots")
	require.NoError(t, err)
	var after []models.ROISnapshot
	require.NoError(t, json.Unmarshal(afterRaw, &after))

	require.Len(t, after, 2)
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, first.ID, after[0].ID)
}

func TestListRejectsMalformedLog(t *testing.T) {
	mem := NewMemStore()
	require.NoError(t, mem.Write("roi-snapshots", []byte(`[{"id": ""}]`)))

	svc := NewSnapshotService(mem)
	_, err := svc.List("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestBaselineFingerprintDetectsDrift(t *testing.T) {
	svc := NewSnapshotService(NewMemStore())

	a, err := svc.Create("p", sampleBaseline(), sampleMetrics(t, 0), samplePeriod())
	require.NoError(t, err)

	changed := sampleBaseline()
	changed.DevelopmentCost = 50000
	b, err := svc.Create("p", changed, sampleMetrics(t, 0), samplePeriod())
	require.NoError(t, err)

	assert.NotEqual(t, a.BaselineHash, b.BaselineHash)
}

func TestSnapshotSignificanceInsignificantForTinyROI(t *testing.T) {
	svc := NewSnapshotService(NewMemStore())

	m := sampleMetrics(t, 0)
	m.Financial.CurrentROI = 0.5
	m.ConfidenceInterval = models.ConfidenceInterval{Lower: -20, Upper: 21, ConfidenceLevel: 0.95}

	snap, err := svc.Create("p", sampleBaseline(), m, samplePeriod())
	require.NoError(t, err)
	assert.False(t, snap.Significance.IsSignificant)
	assert.Greater(t, snap.Significance.PValue, 0.05)
}
