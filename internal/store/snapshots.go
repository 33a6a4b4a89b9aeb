package store

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/zeebo/blake3"

	"github.com/quallaa/quallaa-cli/pkg/models"
	"github.com/quallaa/quallaa-cli/pkg/roi"
)

// snapshotsKey is the storage key for the shared snapshot log. The log
// holds every project's snapshots; filtering happens at read time.
const snapshotsKey = "roi-snapshots"

// snapshotLogSchema validates the persisted log shape on load so a
// corrupted file surfaces as a storage error instead of a silent bad
// decode.
const snapshotLogSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "project_id", "timestamp", "metrics", "baseline", "period", "significance"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "project_id": {"type": "string", "minLength": 1},
      "timestamp": {"type": "string"},
      "baseline_hash": {"type": "string"},
      "metrics": {"type": "object"},
      "baseline": {"type": "object"},
      "period": {
        "type": "object",
        "required": ["start_date", "end_date"]
      },
      "significance": {
        "type": "object",
        "required": ["p_value", "is_significant"],
        "properties": {
          "p_value": {"type": "number"},
          "is_significant": {"type": "boolean"}
        }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func snapshotSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(snapshotLogSchema)))
		if err != nil {
			schemaErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("roi-snapshots.schema.json", doc); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = c.Compile("roi-snapshots.schema.json")
	})
	return compiledSchema, schemaErr
}

// SnapshotService owns the append-only snapshot log. Appends are
// read-modify-write with no locking; a concurrent external writer risks
// lost updates. Single-writer ownership is assumed.
type SnapshotService struct {
	port  Port
	alpha float64
	now   func() time.Time
}

// SnapshotOption configures a SnapshotService.
type SnapshotOption func(*SnapshotService)

// WithAlpha sets the significance threshold (default 0.05).
func WithAlpha(alpha float64) SnapshotOption {
	return func(s *SnapshotService) {
		if alpha > 0 && alpha < 1 {
			s.alpha = alpha
		}
	}
}

// WithSnapshotClock injects the time source.
func WithSnapshotClock(now func() time.Time) SnapshotOption {
	return func(s *SnapshotService) {
		s.now = now
	}
}

// NewSnapshotService creates a snapshot service on the given port.
func NewSnapshotService(port Port, opts ...SnapshotOption) *SnapshotService {
	s := &SnapshotService{
		port:  port,
		alpha: roi.DefaultAlpha,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create computes the significance verdict for the metrics, fingerprints
// the baseline, appends the snapshot to the log, and returns it. Prior
// entries are never mutated.
func (s *SnapshotService) Create(projectID string, baseline models.Baseline, metrics models.ROIMetrics, period models.Period) (*models.ROISnapshot, error) {
	snap := models.ROISnapshot{
		ID:           uuid.NewString(),
		ProjectID:    projectID,
		Timestamp:    s.now().UTC(),
		Metrics:      metrics,
		Baseline:     baseline,
		BaselineHash: fingerprintBaseline(baseline),
		Period:       period,
		Significance: roi.Significance(metrics.Financial.CurrentROI, metrics.ConfidenceInterval, s.alpha),
	}

	log, err := s.List("")
	if err != nil {
		return nil, err
	}
	log = append(log, snap)

	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot log: %w", err)
	}
	if err := s.port.Write(snapshotsKey, data); err != nil {
		return nil, err
	}
	return &snap, nil
}

// List loads the full log in insertion order, optionally filtered to one
// project. A missing log is an empty sequence, not an error. Temporal
// fields come back as typed timestamps.
func (s *SnapshotService) List(projectID string) ([]models.ROISnapshot, error) {
	data, err := s.port.Read(snapshotsKey)
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := validateSnapshotLog(data); err != nil {
		return nil, fmt.Errorf("snapshot log failed validation: %w", err)
	}

	var log []models.ROISnapshot
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("decode snapshot log: %w", err)
	}

	if projectID == "" {
		return log, nil
	}
	var filtered []models.ROISnapshot
	for _, snap := range log {
		if snap.ProjectID == projectID {
			filtered = append(filtered, snap)
		}
	}
	return filtered, nil
}

func validateSnapshotLog(data []byte) error {
	schema, err := snapshotSchema()
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	return schema.Validate(doc)
}

// fingerprintBaseline hashes the canonical JSON of a baseline so drift
// between snapshots is detectable without field-by-field comparison.
func fingerprintBaseline(b models.Baseline) string {
	data, err := json.Marshal(b)
	if err != nil {
		return ""
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
