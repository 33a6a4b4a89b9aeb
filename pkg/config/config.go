package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for quallaa.
type Config struct {
	// Business constants used by the ROI calculator
	Rates RatesConfig `koanf:"rates"`

	// Monte Carlo simulation settings
	Simulation SimulationConfig `koanf:"simulation"`

	// Statistical significance settings
	Significance SignificanceConfig `koanf:"significance"`

	// Baseline defaults and staleness policy
	Baseline BaselineConfig `koanf:"baseline"`

	// Storage settings
	Storage StorageConfig `koanf:"storage"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// RatesConfig carries the hardcoded business constants the calculator
// depends on. They have no stated empirical derivation; keeping them
// configurable beats guessing a correct value.
type RatesConfig struct {
	HourlyRate        float64 `koanf:"hourly_rate"`
	ReviewCycleFactor float64 `koanf:"review_cycle_factor"`
}

// SimulationConfig controls confidence interval estimation.
type SimulationConfig struct {
	Trials          int     `koanf:"trials"`
	BaseUncertainty float64 `koanf:"base_uncertainty"`
	ConfidenceLevel float64 `koanf:"confidence_level"`
}

// SignificanceConfig controls the p-value verdict.
type SignificanceConfig struct {
	Alpha float64 `koanf:"alpha"`
}

// BaselineConfig defines quality metric defaults and the staleness window.
type BaselineConfig struct {
	DefaultErrorRate            float64 `koanf:"default_error_rate"`
	DefaultAccuracy             float64 `koanf:"default_accuracy"`
	DefaultComplianceScore      float64 `koanf:"default_compliance_score"`
	DefaultCustomerSatisfaction float64 `koanf:"default_customer_satisfaction"`
	StaleMonths                 int     `koanf:"stale_months"`
}

// StorageConfig controls where baseline and snapshot records live.
type StorageConfig struct {
	Dir string `koanf:"dir"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		Rates: RatesConfig{
			HourlyRate:        75,
			ReviewCycleFactor: 0.8,
		},
		Simulation: SimulationConfig{
			Trials:          10000,
			BaseUncertainty: 0.15,
			ConfidenceLevel: 0.95,
		},
		Significance: SignificanceConfig{
			Alpha: 0.05,
		},
		Baseline: BaselineConfig{
			DefaultErrorRate:            0.05,
			DefaultAccuracy:             0.85,
			DefaultComplianceScore:      0.7,
			DefaultCustomerSatisfaction: 7.5,
			StaleMonths:                 6,
		},
		Storage: StorageConfig{
			Dir: ".quallaa",
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	// Determine parser based on extension
	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"quallaa.toml",
		"quallaa.yaml",
		"quallaa.yml",
		"quallaa.json",
		".quallaa.toml",
		".quallaa.yaml",
		".quallaa.yml",
		".quallaa.json",
	}

	searchDirs := []string{".", ".quallaa"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}
