package main

import (
	"github.com/urfave/cli/v2"

	"github.com/quallaa/quallaa-cli/internal/output"
	"github.com/quallaa/quallaa-cli/internal/store"
)

func snapshotsCmd() *cli.Command {
	return &cli.Command{
		Name:    "snapshots",
		Aliases: []string{"snap"},
		Usage:   "Inspect stored ROI snapshots",
		Subcommands: []*cli.Command{
			snapshotsListCmd(),
		},
	}
}

func snapshotsListCmd() *cli.Command {
	flags := append(outputFlags(),
		&cli.StringFlag{
			Name:    "project",
			Aliases: []string{"p"},
			Usage:   "Filter snapshots by project identifier (all projects when omitted)",
		},
	)
	return &cli.Command{
		Name:   "list",
		Usage:  "List snapshots in recorded order",
		Flags:  flags,
		Action: runSnapshotsList,
	}
}

func runSnapshotsList(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	fs, err := openStore(cfg)
	if err != nil {
		return err
	}

	snaps, err := store.NewSnapshotService(fs).List(c.String("project"))
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(&output.SnapshotsReport{
		ProjectID: c.String("project"),
		Snapshots: snaps,
	})
}
