package output

import (
	"fmt"
	"io"

	"github.com/quallaa/quallaa-cli/pkg/models"
)

// ROIReport renders a computed ROIMetrics value, optionally with the
// significance verdict a snapshot attached to it.
type ROIReport struct {
	ProjectID    string                          `json:"project_id,omitempty"`
	Metrics      models.ROIMetrics               `json:"metrics"`
	Significance *models.StatisticalSignificance `json:"significance,omitempty"`
}

func (r *ROIReport) RenderData() any { return r }

func (r *ROIReport) RenderText(w io.Writer, colored bool) error {
	f := r.Metrics.Financial
	rows := [][]string{
		{"SaaS replacement savings", fmt.Sprintf("$%.2f", f.SaaSReplacementSavings)},
		{"Operational cost reduction", fmt.Sprintf("$%.2f", f.OperationalCostReduction)},
		{"Cumulative savings", fmt.Sprintf("$%.2f", f.CumulativeSavings)},
		{"Net benefit", fmt.Sprintf("$%.2f", f.NetBenefit)},
		{"Current ROI", fmt.Sprintf("%.1f%%", f.CurrentROI)},
		{"Break-even", formatBreakEven(f.BreakEvenMonths)},
	}
	title := "ROI Report"
	if r.ProjectID != "" {
		title = "ROI Report: " + r.ProjectID
	}
	if err := NewTable(title, []string{"Financial", "Value"}, rows, nil, nil).RenderText(w, colored); err != nil {
		return err
	}

	p := r.Metrics.Productivity
	rows = [][]string{
		{"Time saved", fmt.Sprintf("%.1f hours", p.TimeSavedHours)},
		{"Error reduction", fmt.Sprintf("%.1f%%", p.ErrorReductionRate)},
		{"Processing time reduction", fmt.Sprintf("%.1f%%", p.ProcessingTimeReduction)},
		{"Throughput increase", fmt.Sprintf("%.1f%%", p.ThroughputIncrease)},
		{"Employee adoption", fmt.Sprintf("%.1f%%", p.EmployeeAdoptionRate)},
	}
	if err := NewTable("", []string{"Productivity", "Value"}, rows, nil, nil).RenderText(w, colored); err != nil {
		return err
	}

	q := r.Metrics.Quality
	rows = [][]string{
		{"Accuracy improvement", fmt.Sprintf("%.1f%%", q.AccuracyImprovement)},
		{"Defect reduction", fmt.Sprintf("%.1f%%", q.DefectReduction)},
		{"Compliance improvement", fmt.Sprintf("%.1f%%", q.ComplianceImprovement)},
		{"Customer satisfaction delta", fmt.Sprintf("%+.1f", q.CustomerSatisfactionDelta)},
		{"Review cycle reduction", fmt.Sprintf("%.1f%%", q.ReviewCycleReduction)},
	}
	if err := NewTable("", []string{"Quality", "Value"}, rows, nil, nil).RenderText(w, colored); err != nil {
		return err
	}

	ci := r.Metrics.ConfidenceInterval
	fmt.Fprintf(w, "%.0f%% confidence interval: [%.1f%%, %.1f%%]\n",
		ci.ConfidenceLevel*100, ci.Lower, ci.Upper)

	if r.Significance != nil {
		verdict := "not statistically significant"
		if r.Significance.IsSignificant {
			verdict = "statistically significant"
		}
		fmt.Fprintf(w, "p-value %.4f (%s)\n", r.Significance.PValue, verdict)
	}
	return nil
}

func (r *ROIReport) RenderMarkdown(w io.Writer) error {
	f := r.Metrics.Financial
	title := "ROI Report"
	if r.ProjectID != "" {
		title = "ROI Report: " + r.ProjectID
	}
	fmt.Fprintf(w, "# %s\n\n", title)

	fin := NewTable("Financial", []string{"Metric", "Value"}, [][]string{
		{"SaaS replacement savings", fmt.Sprintf("$%.2f", f.SaaSReplacementSavings)},
		{"Operational cost reduction", fmt.Sprintf("$%.2f", f.OperationalCostReduction)},
		{"Cumulative savings", fmt.Sprintf("$%.2f", f.CumulativeSavings)},
		{"Net benefit", fmt.Sprintf("$%.2f", f.NetBenefit)},
		{"Current ROI", fmt.Sprintf("%.1f%%", f.CurrentROI)},
		{"Break-even", formatBreakEven(f.BreakEvenMonths)},
	}, nil, nil)
	if err := fin.RenderMarkdown(w); err != nil {
		return err
	}

	p := r.Metrics.Productivity
	prod := NewTable("Productivity", []string{"Metric", "Value"}, [][]string{
		{"Time saved", fmt.Sprintf("%.1f hours", p.TimeSavedHours)},
		{"Error reduction", fmt.Sprintf("%.1f%%", p.ErrorReductionRate)},
		{"Processing time reduction", fmt.Sprintf("%.1f%%", p.ProcessingTimeReduction)},
		{"Throughput increase", fmt.Sprintf("%.1f%%", p.ThroughputIncrease)},
		{"Employee adoption", fmt.Sprintf("%.1f%%", p.EmployeeAdoptionRate)},
	}, nil, nil)
	if err := prod.RenderMarkdown(w); err != nil {
		return err
	}

	q := r.Metrics.Quality
	qual := NewTable("Quality", []string{"Metric", "Value"}, [][]string{
		{"Accuracy improvement", fmt.Sprintf("%.1f%%", q.AccuracyImprovement)},
		{"Defect reduction", fmt.Sprintf("%.1f%%", q.DefectReduction)},
		{"Compliance improvement", fmt.Sprintf("%.1f%%", q.ComplianceImprovement)},
		{"Customer satisfaction delta", fmt.Sprintf("%+.1f", q.CustomerSatisfactionDelta)},
		{"Review cycle reduction", fmt.Sprintf("%.1f%%", q.ReviewCycleReduction)},
	}, nil, nil)
	if err := qual.RenderMarkdown(w); err != nil {
		return err
	}

	ci := r.Metrics.ConfidenceInterval
	fmt.Fprintf(w, "%.0f%% confidence interval: [%.1f%%, %.1f%%]\n\n",
		ci.ConfidenceLevel*100, ci.Lower, ci.Upper)
	return nil
}

// BaselineReport renders a baseline alongside its health assessment.
type BaselineReport struct {
	Baseline models.Baseline       `json:"baseline"`
	Health   models.BaselineHealth `json:"health"`
}

func (r *BaselineReport) RenderData() any { return r }

func (r *BaselineReport) baselineTable() *Table {
	b := r.Baseline
	rows := [][]string{
		{"Established", b.EstablishedAt.Format("2006-01-02")},
		{"Development cost", fmt.Sprintf("$%.2f", b.DevelopmentCost)},
		{"Monthly SaaS spend", fmt.Sprintf("$%.2f", b.CurrentSaaSSpend)},
		{"Team size", fmt.Sprintf("%d", b.TeamSize)},
		{"Processing hours/mo", fmt.Sprintf("%.1f", b.CurrentProcessingHours)},
		{"Error rate", fmt.Sprintf("%.1f%%", b.ErrorRateBaseline*100)},
		{"Accuracy", fmt.Sprintf("%.1f%%", b.AccuracyBaseline*100)},
		{"Compliance score", fmt.Sprintf("%.2f", b.ComplianceScore)},
		{"Customer satisfaction", fmt.Sprintf("%.1f/10", b.CustomerSatisfactionScore)},
	}
	return NewTable("ROI Baseline", []string{"Measurement", "Value"}, rows, nil, nil)
}

func (r *BaselineReport) RenderText(w io.Writer, colored bool) error {
	if err := r.baselineTable().RenderText(w, colored); err != nil {
		return err
	}
	fmt.Fprintf(w, "Health score: %d/100\n", r.Health.Score)
	for _, issue := range r.Health.Issues {
		fmt.Fprintf(w, "  - %s\n", issue)
	}
	return nil
}

func (r *BaselineReport) RenderMarkdown(w io.Writer) error {
	if err := r.baselineTable().RenderMarkdown(w); err != nil {
		return err
	}
	fmt.Fprintf(w, "Health score: %d/100\n", r.Health.Score)
	for _, issue := range r.Health.Issues {
		fmt.Fprintf(w, "- %s\n", issue)
	}
	return nil
}

// SnapshotsReport renders a project's snapshot history, newest last.
type SnapshotsReport struct {
	ProjectID string               `json:"project_id"`
	Snapshots []models.ROISnapshot `json:"snapshots"`
}

func (r *SnapshotsReport) RenderData() any { return r }

func (r *SnapshotsReport) table() *Table {
	rows := make([][]string, len(r.Snapshots))
	for i, s := range r.Snapshots {
		rows[i] = []string{
			s.Timestamp.Format("2006-01-02"),
			s.ProjectID,
			fmt.Sprintf("%.1f%%", s.Metrics.Financial.CurrentROI),
			fmt.Sprintf("$%.2f", s.Metrics.Financial.NetBenefit),
			fmt.Sprintf("%.4f", s.Significance.PValue),
			fmt.Sprintf("%t", s.Significance.IsSignificant),
			s.BaselineHash[:min(12, len(s.BaselineHash))],
		}
	}
	title := "Snapshots"
	if r.ProjectID != "" {
		title = "Snapshots: " + r.ProjectID
	}
	return NewTable(title,
		[]string{"Date", "Project", "ROI", "Net Benefit", "p-value", "Significant", "Baseline"},
		rows, nil, nil)
}

func (r *SnapshotsReport) RenderText(w io.Writer, colored bool) error {
	if len(r.Snapshots) == 0 {
		_, err := fmt.Fprintln(w, "No snapshots recorded")
		return err
	}
	return r.table().RenderText(w, colored)
}

func (r *SnapshotsReport) RenderMarkdown(w io.Writer) error {
	if len(r.Snapshots) == 0 {
		_, err := fmt.Fprintln(w, "No snapshots recorded")
		return err
	}
	return r.table().RenderMarkdown(w)
}

// TrendReport renders one or more metric trends.
type TrendReport struct {
	ProjectID string            `json:"project_id"`
	Trends    []models.ROITrend `json:"trends"`
}

func (r *TrendReport) RenderData() any { return r }

func (r *TrendReport) RenderText(w io.Writer, colored bool) error {
	rows := make([][]string, len(r.Trends))
	for i, tr := range r.Trends {
		rows[i] = []string{
			tr.MetricPath,
			string(tr.Category),
			string(tr.Trend),
			fmt.Sprintf("%.4f", tr.Slope),
			fmt.Sprintf("%.2f", tr.TrendConfidence),
			fmt.Sprintf("%d", len(tr.DataPoints)),
		}
	}
	table := NewTable("Trends: "+r.ProjectID,
		[]string{"Metric", "Category", "Trend", "Slope", "Confidence", "Points"},
		rows, nil, nil)
	return table.RenderText(w, colored)
}

func (r *TrendReport) RenderMarkdown(w io.Writer) error {
	rows := make([][]string, len(r.Trends))
	for i, tr := range r.Trends {
		rows[i] = []string{
			tr.MetricPath,
			string(tr.Category),
			string(tr.Trend),
			fmt.Sprintf("%.4f", tr.Slope),
			fmt.Sprintf("%.2f", tr.TrendConfidence),
			fmt.Sprintf("%d", len(tr.DataPoints)),
		}
	}
	table := NewTable("Trends: "+r.ProjectID,
		[]string{"Metric", "Category", "Trend", "Slope", "Confidence", "Points"},
		rows, nil, nil)
	return table.RenderMarkdown(w)
}

func formatBreakEven(m models.Months) string {
	if m.IsNever() {
		return "never (negative monthly net savings)"
	}
	return fmt.Sprintf("%.0f months", float64(m))
}
