package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/quallaa/quallaa-cli/internal/output"
	"github.com/quallaa/quallaa-cli/internal/store"
	"github.com/quallaa/quallaa-cli/pkg/models"
)

func roiCmd() *cli.Command {
	return &cli.Command{
		Name:  "roi",
		Usage: "Calculate return on investment against the baseline",
		Subcommands: []*cli.Command{
			roiCalculateCmd(),
		},
	}
}

func roiCalculateCmd() *cli.Command {
	flags := append(outputFlags(),
		&cli.StringFlag{
			Name:    "project",
			Aliases: []string{"p"},
			Usage:   "Project identifier for snapshot storage",
		},
		&cli.Float64Flag{
			Name:     "months",
			Usage:    "Months the automation has been in operation",
			Required: true,
		},
		&cli.Float64Flag{
			Name:  "saas-spend",
			Usage: "Remaining monthly SaaS spend, in dollars",
		},
		&cli.Float64Flag{
			Name:  "maintenance",
			Usage: "Monthly maintenance cost of the automation, in dollars",
		},
		&cli.Float64Flag{
			Name:  "processing-hours",
			Usage: "Monthly hours the process takes now",
		},
		&cli.IntFlag{
			Name:  "tasks",
			Usage: "Count of distinct tasks automated",
		},
		&cli.Float64Flag{
			Name:  "adoption",
			Usage: "Fraction of the team using the automation (0-1)",
		},
		&cli.Float64Flag{
			Name:  "accuracy",
			Usage: "Current accuracy as a fraction (0-1)",
		},
		&cli.Float64Flag{
			Name:  "error-rate",
			Usage: "Current error rate as a fraction (0-1)",
		},
		&cli.Float64Flag{
			Name:  "compliance",
			Usage: "Current compliance score as a fraction (0-1)",
		},
		&cli.Float64Flag{
			Name:  "satisfaction",
			Usage: "Current customer satisfaction on a 0-10 scale",
		},
		&cli.BoolFlag{
			Name:  "snapshot",
			Usage: "Persist the result as a snapshot for trend analysis",
		},
		&cli.TimestampFlag{
			Name:   "period-start",
			Usage:  "Measurement period start (RFC 3339 date)",
			Layout: "2006-01-02",
		},
		&cli.TimestampFlag{
			Name:   "period-end",
			Usage:  "Measurement period end (RFC 3339 date)",
			Layout: "2006-01-02",
		},
	)
	return &cli.Command{
		Name:  "calculate",
		Usage: "Calculate ROI from current operational metrics",
		Description: `Computes financial, productivity, and quality metrics against the
stored baseline, with a Monte Carlo confidence interval around the ROI
point estimate. With --snapshot the result is appended to the project's
snapshot history and a significance verdict is attached.`,
		Flags:  flags,
		Action: runROICalculate,
	}
}

func runROICalculate(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	fs, err := openStore(cfg)
	if err != nil {
		return err
	}

	baselines := store.NewBaselineService(fs, cfg.Baseline)
	b, err := baselines.Require()
	if err != nil {
		return err
	}

	current := models.CurrentMetrics{
		MonthsInOperation:           c.Float64("months"),
		CurrentSaaSSpend:            c.Float64("saas-spend"),
		MaintenanceCosts:            c.Float64("maintenance"),
		CurrentProcessingHours:      c.Float64("processing-hours"),
		TasksAutomated:              c.Int("tasks"),
		EmployeeAdoptionRate:        c.Float64("adoption"),
		CurrentAccuracy:             c.Float64("accuracy"),
		CurrentErrorRate:            c.Float64("error-rate"),
		CurrentComplianceScore:      c.Float64("compliance"),
		CurrentCustomerSatisfaction: c.Float64("satisfaction"),
	}
	metrics := newCalculator(cfg).Calculate(*b, current, cfg.Simulation.ConfidenceLevel)

	report := &output.ROIReport{ProjectID: c.String("project"), Metrics: metrics}

	var snapshotID string
	if c.Bool("snapshot") {
		snapshots := store.NewSnapshotService(fs, store.WithAlpha(cfg.Significance.Alpha))
		snap, err := snapshots.Create(projectID(c), *b, metrics, calculatePeriod(c, current))
		if err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		report.ProjectID = snap.ProjectID
		report.Significance = &snap.Significance
		snapshotID = snap.ID
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if err := formatter.Output(report); err != nil {
		return err
	}
	if snapshotID != "" {
		color.Green("Snapshot %s saved", snapshotID)
	}
	return nil
}

// calculatePeriod resolves the measurement window. Explicit flags win;
// otherwise the window ends now and spans the months in operation.
func calculatePeriod(c *cli.Context, current models.CurrentMetrics) models.Period {
	end := time.Now().UTC()
	if t := c.Timestamp("period-end"); t != nil && !t.IsZero() {
		end = t.UTC()
	}
	start := end.AddDate(0, -int(current.MonthsInOperation), 0)
	if t := c.Timestamp("period-start"); t != nil && !t.IsZero() {
		start = t.UTC()
	}
	return models.Period{StartDate: start, EndDate: end}
}
