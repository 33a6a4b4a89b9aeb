package store

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/quallaa/quallaa-cli/pkg/config"
	"github.com/quallaa/quallaa-cli/pkg/models"
)

// baselineKey is the project-scoped storage key for the baseline record.
const baselineKey = "roi-baseline"

// noBaselineReport is the fixed report body when no baseline exists.
const noBaselineReport = "No baseline established. Run 'quallaa baseline establish' to create one."

// EstablishInput carries the measurements for a new baseline. Required
// fields are plain values; optional quality metrics are pointers so
// omission falls back to the configured defaults.
type EstablishInput struct {
	DevelopmentCost        float64
	CurrentSaaSSpend       float64
	TeamSize               int
	CurrentProcessingHours float64

	ErrorRateBaseline         *float64
	AccuracyBaseline          *float64
	ComplianceScore           *float64
	CustomerSatisfactionScore *float64
}

// BaselineService persists and validates the single baseline record per
// project.
type BaselineService struct {
	port Port
	cfg  config.BaselineConfig
	now  func() time.Time
	warn io.Writer
}

// BaselineOption configures a BaselineService.
type BaselineOption func(*BaselineService)

// WithClock injects the time source.
func WithClock(now func() time.Time) BaselineOption {
	return func(s *BaselineService) {
		s.now = now
	}
}

// WithWarnWriter redirects non-fatal warnings (default os.Stderr).
func WithWarnWriter(w io.Writer) BaselineOption {
	return func(s *BaselineService) {
		s.warn = w
	}
}

// NewBaselineService creates a baseline service on the given port.
func NewBaselineService(port Port, cfg config.BaselineConfig, opts ...BaselineOption) *BaselineService {
	s := &BaselineService{
		port: port,
		cfg:  cfg,
		now:  time.Now,
		warn: os.Stderr,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Establish validates the inputs, applies quality defaults, and persists
// the baseline, overwriting any prior one. The returned baseline carries
// a freshly set EstablishedAt.
func (s *BaselineService) Establish(in EstablishInput) (*models.Baseline, error) {
	if err := validateEstablish(in); err != nil {
		return nil, err
	}

	b := models.Baseline{
		EstablishedAt:             s.now().UTC(),
		DevelopmentCost:           in.DevelopmentCost,
		CurrentSaaSSpend:          in.CurrentSaaSSpend,
		TeamSize:                  in.TeamSize,
		CurrentProcessingHours:    in.CurrentProcessingHours,
		ErrorRateBaseline:         orDefault(in.ErrorRateBaseline, s.cfg.DefaultErrorRate),
		AccuracyBaseline:          orDefault(in.AccuracyBaseline, s.cfg.DefaultAccuracy),
		ComplianceScore:           orDefault(in.ComplianceScore, s.cfg.DefaultComplianceScore),
		CustomerSatisfactionScore: orDefault(in.CustomerSatisfactionScore, s.cfg.DefaultCustomerSatisfaction),
	}

	if err := s.save(b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Get returns the persisted baseline, or nil if none exists. Storage
// failures other than "not found" propagate unchanged.
func (s *BaselineService) Get() (*models.Baseline, error) {
	data, err := s.port.Read(baselineKey)
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var b models.Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode baseline: %w", err)
	}
	return &b, nil
}

// Update merges the partial fields over the existing baseline and
// persists the result. EstablishedAt is preserved from the prior record.
func (s *BaselineService) Update(u models.BaselineUpdate) (*models.Baseline, error) {
	existing, err := s.Get()
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNoBaseline
	}

	merged := u.Apply(*existing)
	if err := s.save(merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Require returns the baseline or fails with an actionable error when
// absent. A baseline older than the configured staleness window emits a
// non-fatal warning; staleness never blocks.
func (s *BaselineService) Require() (*models.Baseline, error) {
	b, err := s.Get()
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBaselineRequired
	}

	if stale := b.EstablishedAt.AddDate(0, s.cfg.StaleMonths, 0); s.now().After(stale) {
		color.New(color.FgYellow).Fprintf(s.warn,
			"Warning: baseline is older than %d months (established %s). Consider re-establishing it.\n",
			s.cfg.StaleMonths, b.EstablishedAt.Format("2006-01-02"))
	}
	return b, nil
}

// Health scores a baseline for completeness. The score starts at 100 and
// is not clamped; a negative result means critically incomplete.
func (s *BaselineService) Health(b models.Baseline) models.BaselineHealth {
	h := models.BaselineHealth{Score: 100}

	deduct := func(points int, issue, rec string) {
		h.Score -= points
		h.Issues = append(h.Issues, issue)
		h.Recommendations = append(h.Recommendations, rec)
	}

	if b.DevelopmentCost <= 0 {
		deduct(25, "Development cost is not recorded",
			"Record total development cost so ROI can be computed against it")
	}
	if b.CurrentSaaSSpend <= 0 {
		deduct(20, "Current SaaS spend is not recorded",
			"Record monthly SaaS spend to measure replacement savings")
	}
	if b.TeamSize <= 0 {
		deduct(15, "Team size is not recorded",
			"Record team size to contextualize adoption metrics")
	}
	if b.CurrentProcessingHours <= 0 {
		deduct(20, "Processing hours are not recorded",
			"Record monthly processing hours to measure time savings")
	}
	if b.AccuracyBaseline < 0.5 {
		deduct(10, "Accuracy baseline is below 50%",
			"Re-measure baseline accuracy; values this low usually indicate a data problem")
	}
	if b.ErrorRateBaseline > 0.2 {
		deduct(10, "Error rate baseline exceeds 20%",
			"Verify the baseline error rate measurement before relying on quality deltas")
	}

	return h
}

// Report renders a deterministic textual report of the current baseline
// and its health assessment. Returns a fixed message when no baseline
// exists.
func (s *BaselineService) Report() (string, error) {
	b, err := s.Get()
	if err != nil {
		return "", err
	}
	if b == nil {
		return noBaselineReport, nil
	}

	h := s.Health(*b)

	var sb strings.Builder
	sb.WriteString("ROI Baseline Report\n")
	sb.WriteString("===================\n\n")
	fmt.Fprintf(&sb, "Established:          %s\n", b.EstablishedAt.Format("2006-01-02"))
	fmt.Fprintf(&sb, "Development cost:     $%.2f\n", b.DevelopmentCost)
	fmt.Fprintf(&sb, "Monthly SaaS spend:   $%.2f\n", b.CurrentSaaSSpend)
	fmt.Fprintf(&sb, "Team size:            %d\n", b.TeamSize)
	fmt.Fprintf(&sb, "Processing hours/mo:  %.1f\n", b.CurrentProcessingHours)
	fmt.Fprintf(&sb, "Error rate:           %.1f%%\n", b.ErrorRateBaseline*100)
	fmt.Fprintf(&sb, "Accuracy:             %.1f%%\n", b.AccuracyBaseline*100)
	fmt.Fprintf(&sb, "Compliance score:     %.2f\n", b.ComplianceScore)
	fmt.Fprintf(&sb, "Customer satisfaction: %.1f/10\n", b.CustomerSatisfactionScore)
	fmt.Fprintf(&sb, "\nHealth score: %d/100\n", h.Score)

	if len(h.Issues) > 0 {
		sb.WriteString("\nIssues:\n")
		for _, issue := range h.Issues {
			fmt.Fprintf(&sb, "  - %s\n", issue)
		}
		sb.WriteString("\nRecommendations:\n")
		for _, rec := range h.Recommendations {
			fmt.Fprintf(&sb, "  - %s\n", rec)
		}
	}

	return sb.String(), nil
}

func (s *BaselineService) save(b models.Baseline) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("encode baseline: %w", err)
	}
	return s.port.Write(baselineKey, data)
}

// validateEstablish checks required fields in a fixed order and reports
// the first invalid one.
func validateEstablish(in EstablishInput) error {
	if !finiteNonNegative(in.DevelopmentCost) {
		return &ValidationError{Field: "developmentCost"}
	}
	if !finiteNonNegative(in.CurrentSaaSSpend) {
		return &ValidationError{Field: "currentSaasSpend"}
	}
	if in.TeamSize < 1 {
		return &ValidationError{Field: "teamSize"}
	}
	if !finiteNonNegative(in.CurrentProcessingHours) {
		return &ValidationError{Field: "currentProcessingHours"}
	}
	return nil
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func orDefault(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}
