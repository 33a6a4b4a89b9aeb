package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/quallaa/quallaa-cli/internal/output"
	"github.com/quallaa/quallaa-cli/internal/store"
	"github.com/quallaa/quallaa-cli/pkg/models"
)

func baselineCmd() *cli.Command {
	return &cli.Command{
		Name:    "baseline",
		Aliases: []string{"bl"},
		Usage:   "Manage the ROI measurement baseline",
		Subcommands: []*cli.Command{
			baselineEstablishCmd(),
			baselineShowCmd(),
			baselineUpdateCmd(),
			baselineReportCmd(),
		},
	}
}

func baselineMetricFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:  "development-cost",
			Usage: "Total cost of building the automation, in dollars",
		},
		&cli.Float64Flag{
			Name:  "saas-spend",
			Usage: "Monthly SaaS spend being replaced, in dollars",
		},
		&cli.IntFlag{
			Name:  "team-size",
			Usage: "Number of people on the affected team",
		},
		&cli.Float64Flag{
			Name:  "processing-hours",
			Usage: "Monthly hours spent on the manual process",
		},
		&cli.Float64Flag{
			Name:  "error-rate",
			Usage: "Baseline error rate as a fraction (0-1)",
		},
		&cli.Float64Flag{
			Name:  "accuracy",
			Usage: "Baseline accuracy as a fraction (0-1)",
		},
		&cli.Float64Flag{
			Name:  "compliance",
			Usage: "Baseline compliance score as a fraction (0-1)",
		},
		&cli.Float64Flag{
			Name:  "satisfaction",
			Usage: "Baseline customer satisfaction on a 0-10 scale",
		},
	}
}

func baselineEstablishCmd() *cli.Command {
	return &cli.Command{
		Name:  "establish",
		Usage: "Record the pre-automation baseline (overwrites any existing one)",
		Description: `Records the measurements every later ROI calculation is computed
against. Required: --development-cost, --saas-spend, --team-size, and
--processing-hours. Quality metrics fall back to configured defaults
when omitted.`,
		Flags:  baselineMetricFlags(),
		Action: runBaselineEstablish,
	}
}

func runBaselineEstablish(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	fs, err := openStore(cfg)
	if err != nil {
		return err
	}

	svc := store.NewBaselineService(fs, cfg.Baseline)
	b, err := svc.Establish(store.EstablishInput{
		DevelopmentCost:           c.Float64("development-cost"),
		CurrentSaaSSpend:          c.Float64("saas-spend"),
		TeamSize:                  c.Int("team-size"),
		CurrentProcessingHours:    c.Float64("processing-hours"),
		ErrorRateBaseline:         optionalFloat(c, "error-rate"),
		AccuracyBaseline:          optionalFloat(c, "accuracy"),
		ComplianceScore:           optionalFloat(c, "compliance"),
		CustomerSatisfactionScore: optionalFloat(c, "satisfaction"),
	})
	if err != nil {
		return err
	}

	color.Green("Baseline established %s", b.EstablishedAt.Format("2006-01-02"))
	return nil
}

func baselineShowCmd() *cli.Command {
	return &cli.Command{
		Name:   "show",
		Usage:  "Show the stored baseline and its health assessment",
		Flags:  outputFlags(),
		Action: runBaselineShow,
	}
}

func runBaselineShow(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	fs, err := openStore(cfg)
	if err != nil {
		return err
	}

	svc := store.NewBaselineService(fs, cfg.Baseline)
	b, err := svc.Get()
	if err != nil {
		return err
	}
	if b == nil {
		color.Yellow("No baseline established. Run 'quallaa baseline establish' to create one.")
		return nil
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(&output.BaselineReport{Baseline: *b, Health: svc.Health(*b)})
}

func baselineUpdateCmd() *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: "Update individual baseline fields, preserving the rest",
		Description: `Merges the given flags over the stored baseline. The establishment
date is preserved; only the fields you pass change. Fails when no
baseline exists yet.`,
		Flags:  baselineMetricFlags(),
		Action: runBaselineUpdate,
	}
}

func runBaselineUpdate(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	fs, err := openStore(cfg)
	if err != nil {
		return err
	}

	var teamSize *int
	if c.IsSet("team-size") {
		v := c.Int("team-size")
		teamSize = &v
	}

	svc := store.NewBaselineService(fs, cfg.Baseline)
	b, err := svc.Update(models.BaselineUpdate{
		DevelopmentCost:           optionalFloat(c, "development-cost"),
		CurrentSaaSSpend:          optionalFloat(c, "saas-spend"),
		TeamSize:                  teamSize,
		CurrentProcessingHours:    optionalFloat(c, "processing-hours"),
		ErrorRateBaseline:         optionalFloat(c, "error-rate"),
		AccuracyBaseline:          optionalFloat(c, "accuracy"),
		ComplianceScore:           optionalFloat(c, "compliance"),
		CustomerSatisfactionScore: optionalFloat(c, "satisfaction"),
	})
	if err != nil {
		return err
	}

	color.Green("Baseline updated (established %s)", b.EstablishedAt.Format("2006-01-02"))
	return nil
}

func baselineReportCmd() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Print the textual baseline report",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
		},
		Action: runBaselineReport,
	}
}

func runBaselineReport(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	fs, err := openStore(cfg)
	if err != nil {
		return err
	}

	report, err := store.NewBaselineService(fs, cfg.Baseline).Report()
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	_, err = fmt.Fprint(formatter.Writer(), report)
	return err
}
