package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/quallaa/quallaa-cli/internal/output"
	"github.com/quallaa/quallaa-cli/internal/store"
	"github.com/quallaa/quallaa-cli/pkg/config"
	"github.com/quallaa/quallaa-cli/pkg/roi"
)

// outputFlags returns the format/output flags shared by reporting
// commands.
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text, json, markdown, toon",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write output to file",
		},
	}
}

// loadConfig loads configuration honoring the global --config flag.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		return cfg, nil
	}
	return config.LoadOrDefault(), nil
}

// newFormatter builds the output formatter from flags and config.
func newFormatter(c *cli.Context, cfg *config.Config) (*output.Formatter, error) {
	format := c.String("format")
	if format == "" {
		format = cfg.Output.Format
	}
	return output.NewFormatter(output.ParseFormat(format), c.String("output"), cfg.Output.Color)
}

// openStore opens the file-backed record store from config.
func openStore(cfg *config.Config) (*store.FileStore, error) {
	fs := store.NewFileStore(cfg.Storage.Dir)
	if err := fs.Ensure(); err != nil {
		return nil, fmt.Errorf("prepare storage dir %s: %w", cfg.Storage.Dir, err)
	}
	return fs, nil
}

func newCalculator(cfg *config.Config) *roi.Calculator {
	return roi.New(
		roi.WithHourlyRate(cfg.Rates.HourlyRate),
		roi.WithReviewCycleFactor(cfg.Rates.ReviewCycleFactor),
		roi.WithTrials(cfg.Simulation.Trials),
		roi.WithUncertainty(cfg.Simulation.BaseUncertainty),
	)
}

// optionalFloat maps a flag to a pointer, nil when the flag was not set.
func optionalFloat(c *cli.Context, name string) *float64 {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Float64(name)
	return &v
}

func projectID(c *cli.Context) string {
	if id := c.String("project"); id != "" {
		return id
	}
	return "default"
}
