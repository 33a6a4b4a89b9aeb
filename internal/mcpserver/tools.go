package mcpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/quallaa/quallaa-cli/internal/store"
	"github.com/quallaa/quallaa-cli/pkg/models"
	"github.com/quallaa/quallaa-cli/pkg/roi"
)

// EstablishBaselineInput carries the baseline measurements. Optional
// quality metrics fall back to configured defaults when omitted.
type EstablishBaselineInput struct {
	DevelopmentCost        float64 `json:"development_cost" jsonschema:"Total cost of building the automation, in dollars."`
	CurrentSaaSSpend       float64 `json:"current_saas_spend" jsonschema:"Monthly SaaS spend the automation replaces, in dollars."`
	TeamSize               int     `json:"team_size" jsonschema:"Number of people on the affected team. Must be at least 1."`
	CurrentProcessingHours float64 `json:"current_processing_hours" jsonschema:"Monthly hours spent on the manual process before automation."`

	ErrorRateBaseline         *float64 `json:"error_rate_baseline,omitempty" jsonschema:"Baseline error rate as a fraction (0-1). Default 0.05."`
	AccuracyBaseline          *float64 `json:"accuracy_baseline,omitempty" jsonschema:"Baseline accuracy as a fraction (0-1). Default 0.85."`
	ComplianceScore           *float64 `json:"compliance_score,omitempty" jsonschema:"Baseline compliance score as a fraction (0-1). Default 0.7."`
	CustomerSatisfactionScore *float64 `json:"customer_satisfaction_score,omitempty" jsonschema:"Baseline customer satisfaction on a 0-10 scale. Default 7.5."`
}

// GetBaselineInput has no parameters.
type GetBaselineInput struct{}

// CalculateROIInput carries the current operational metrics for one ROI
// calculation.
type CalculateROIInput struct {
	ProjectID                   string  `json:"project_id,omitempty" jsonschema:"Project identifier for snapshot storage. Default: default."`
	MonthsInOperation           float64 `json:"months_in_operation" jsonschema:"How long the automation has been running, in months."`
	CurrentSaaSSpend            float64 `json:"current_saas_spend,omitempty" jsonschema:"Remaining monthly SaaS spend, in dollars."`
	MaintenanceCosts            float64 `json:"maintenance_costs,omitempty" jsonschema:"Monthly maintenance cost of the automation, in dollars."`
	CurrentProcessingHours      float64 `json:"current_processing_hours,omitempty" jsonschema:"Monthly hours the process takes now."`
	TasksAutomated              int     `json:"tasks_automated,omitempty" jsonschema:"Count of distinct tasks automated."`
	EmployeeAdoptionRate        float64 `json:"employee_adoption_rate,omitempty" jsonschema:"Fraction of the team using the automation (0-1)."`
	CurrentAccuracy             float64 `json:"current_accuracy,omitempty" jsonschema:"Current accuracy as a fraction (0-1)."`
	CurrentErrorRate            float64 `json:"current_error_rate,omitempty" jsonschema:"Current error rate as a fraction (0-1)."`
	CurrentComplianceScore      float64 `json:"current_compliance_score,omitempty" jsonschema:"Current compliance score as a fraction (0-1)."`
	CurrentCustomerSatisfaction float64 `json:"current_customer_satisfaction,omitempty" jsonschema:"Current customer satisfaction on a 0-10 scale."`
	Snapshot                    bool    `json:"snapshot,omitempty" jsonschema:"Persist the result as a snapshot for trend analysis."`
}

// AnalyzeTrendsInput selects the project and metric paths to fit.
type AnalyzeTrendsInput struct {
	ProjectID   string   `json:"project_id,omitempty" jsonschema:"Project identifier. Default: default."`
	MetricPaths []string `json:"metric_paths,omitempty" jsonschema:"Dotted metric paths such as financial.currentROI. Defaults to all known paths."`
}

func toolResult(data any) (*mcp.CallToolResult, any, error) {
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(out)},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func projectOrDefault(id string) string {
	if id == "" {
		return "default"
	}
	return id
}

func (s *Server) baselines() *store.BaselineService {
	return store.NewBaselineService(s.port, s.cfg.Baseline)
}

func (s *Server) snapshots() *store.SnapshotService {
	return store.NewSnapshotService(s.port, store.WithAlpha(s.cfg.Significance.Alpha))
}

func (s *Server) calculator() *roi.Calculator {
	return roi.New(
		roi.WithHourlyRate(s.cfg.Rates.HourlyRate),
		roi.WithReviewCycleFactor(s.cfg.Rates.ReviewCycleFactor),
		roi.WithTrials(s.cfg.Simulation.Trials),
		roi.WithUncertainty(s.cfg.Simulation.BaseUncertainty),
	)
}

func (s *Server) handleEstablishBaseline(ctx context.Context, req *mcp.CallToolRequest, input EstablishBaselineInput) (*mcp.CallToolResult, any, error) {
	b, err := s.baselines().Establish(store.EstablishInput{
		DevelopmentCost:           input.DevelopmentCost,
		CurrentSaaSSpend:          input.CurrentSaaSSpend,
		TeamSize:                  input.TeamSize,
		CurrentProcessingHours:    input.CurrentProcessingHours,
		ErrorRateBaseline:         input.ErrorRateBaseline,
		AccuracyBaseline:          input.AccuracyBaseline,
		ComplianceScore:           input.ComplianceScore,
		CustomerSatisfactionScore: input.CustomerSatisfactionScore,
	})
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(b)
}

func (s *Server) handleGetBaseline(ctx context.Context, req *mcp.CallToolRequest, input GetBaselineInput) (*mcp.CallToolResult, any, error) {
	svc := s.baselines()
	b, err := svc.Get()
	if err != nil {
		return toolError(err.Error())
	}
	if b == nil {
		return toolError("no baseline established")
	}
	return toolResult(struct {
		Baseline models.Baseline       `json:"baseline"`
		Health   models.BaselineHealth `json:"health"`
	}{Baseline: *b, Health: svc.Health(*b)})
}

func (s *Server) handleCalculateROI(ctx context.Context, req *mcp.CallToolRequest, input CalculateROIInput) (*mcp.CallToolResult, any, error) {
	b, err := s.baselines().Require()
	if err != nil {
		return toolError(err.Error())
	}

	current := models.CurrentMetrics{
		MonthsInOperation:           input.MonthsInOperation,
		CurrentSaaSSpend:            input.CurrentSaaSSpend,
		MaintenanceCosts:            input.MaintenanceCosts,
		CurrentProcessingHours:      input.CurrentProcessingHours,
		TasksAutomated:              input.TasksAutomated,
		EmployeeAdoptionRate:        input.EmployeeAdoptionRate,
		CurrentAccuracy:             input.CurrentAccuracy,
		CurrentErrorRate:            input.CurrentErrorRate,
		CurrentComplianceScore:      input.CurrentComplianceScore,
		CurrentCustomerSatisfaction: input.CurrentCustomerSatisfaction,
	}
	metrics := s.calculator().Calculate(*b, current, s.cfg.Simulation.ConfidenceLevel)

	if !input.Snapshot {
		return toolResult(metrics)
	}

	end := time.Now().UTC()
	period := models.Period{
		StartDate: end.AddDate(0, -int(input.MonthsInOperation), 0),
		EndDate:   end,
	}
	snap, err := s.snapshots().Create(projectOrDefault(input.ProjectID), *b, metrics, period)
	if err != nil {
		return toolError(fmt.Sprintf("save snapshot: %v", err))
	}
	return toolResult(snap)
}

func (s *Server) handleAnalyzeTrends(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeTrendsInput) (*mcp.CallToolResult, any, error) {
	paths := input.MetricPaths
	if len(paths) == 0 {
		paths = roi.KnownMetricPaths()
	}
	trends, err := store.NewTrendService(s.snapshots()).TrendsAll(projectOrDefault(input.ProjectID), paths)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(trends)
}
