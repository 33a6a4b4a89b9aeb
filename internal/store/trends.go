package store

import (
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/quallaa/quallaa-cli/pkg/models"
	"github.com/quallaa/quallaa-cli/pkg/roi"
)

// TrendService computes metric trends across a project's stored
// snapshots.
type TrendService struct {
	snapshots *SnapshotService
}

// NewTrendService creates a trend service reading from the given
// snapshot service.
func NewTrendService(snapshots *SnapshotService) *TrendService {
	return &TrendService{snapshots: snapshots}
}

// Trends computes the directional trend of one metric path across the
// project's snapshots in persisted order. Fails when fewer than two
// snapshots exist.
func (s *TrendService) Trends(projectID, metricPath string) (*models.ROITrend, error) {
	snaps, err := s.snapshots.List(projectID)
	if err != nil {
		return nil, err
	}
	if len(snaps) < 2 {
		return nil, ErrInsufficientSnapshots
	}

	accessor := roi.AccessorFor(metricPath)
	points := make([]models.TrendDataPoint, len(snaps))
	for i, snap := range snaps {
		points[i] = models.TrendDataPoint{
			Timestamp:          snap.Timestamp,
			Value:              accessor(snap.Metrics),
			ConfidenceInterval: snap.Metrics.ConfidenceInterval,
		}
	}

	trend := roi.FitTrend(metricPath, points)
	return &trend, nil
}

// TrendsAll computes trends for several metric paths concurrently. The
// snapshot log is loaded once per path but never written, so the fan-out
// stays within the single-writer ownership model. Results preserve the
// order of paths; the first error wins.
func (s *TrendService) TrendsAll(projectID string, metricPaths []string) ([]models.ROITrend, error) {
	results := make([]models.ROITrend, len(metricPaths))

	var mu sync.Mutex
	var firstErr error

	p := pool.New().WithMaxGoroutines(4)
	for i, path := range metricPaths {
		p.Go(func() {
			trend, err := s.Trends(projectID, path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			results[i] = *trend
		})
	}
	p.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
