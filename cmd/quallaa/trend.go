package main

import (
	"github.com/urfave/cli/v2"

	"github.com/quallaa/quallaa-cli/internal/output"
	"github.com/quallaa/quallaa-cli/internal/store"
	"github.com/quallaa/quallaa-cli/pkg/roi"
)

func trendCmd() *cli.Command {
	flags := append(outputFlags(),
		&cli.StringFlag{
			Name:    "project",
			Aliases: []string{"p"},
			Usage:   "Project identifier",
		},
		&cli.StringSliceFlag{
			Name:    "metric",
			Aliases: []string{"m"},
			Usage:   "Dotted metric path such as financial.currentROI (repeatable, all known paths when omitted)",
		},
	)
	return &cli.Command{
		Name:    "trend",
		Aliases: []string{"tr"},
		Usage:   "Analyze metric trends across stored snapshots",
		Description: `Fits a linear trend over the project's snapshot history for each
selected metric and reports the direction (improving, declining, or
stable), the slope, and the fit confidence. Requires at least two
snapshots.`,
		Flags:  flags,
		Action: runTrendCmd,
	}
}

func runTrendCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	fs, err := openStore(cfg)
	if err != nil {
		return err
	}

	paths := c.StringSlice("metric")
	if len(paths) == 0 {
		paths = roi.KnownMetricPaths()
	}

	snapshots := store.NewSnapshotService(fs, store.WithAlpha(cfg.Significance.Alpha))
	trends, err := store.NewTrendService(snapshots).TrendsAll(projectID(c), paths)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(&output.TrendReport{ProjectID: projectID(c), Trends: trends})
}
