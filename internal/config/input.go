package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
	"github.com/rpgo/earnings-projector/internal/domain"
	moneyutil "github.com/rpgo/earnings-projector/pkg/decimal"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. POPPROJ_PROJECTION_START_AGE
const EnvPrefix = "POPPROJ_"

// Configuration is the on-disk (YAML or TOML) and environment configuration
type Configuration struct {
	Population PopulationSettings `yaml:"population" toml:"population" envPrefix:"POPULATION_"`
	Projection ProjectionSettings `yaml:"projection" toml:"projection" envPrefix:"PROJECTION_"`
	Output     OutputSettings     `yaml:"output" toml:"output" envPrefix:"OUTPUT_"`
	Logging    LoggingSettings    `yaml:"logging" toml:"logging" envPrefix:"LOG_"`
}

// PopulationSettings controls synthetic population generation
type PopulationSettings struct {
	Size int   `yaml:"size" toml:"size" env:"SIZE"`
	Seed int64 `yaml:"seed" toml:"seed" env:"SEED"`
}

// ProjectionSettings holds the projection table parameters
type ProjectionSettings struct {
	StartAge      int      `yaml:"start_age" toml:"start_age" env:"START_AGE"`
	EndAge        int      `yaml:"end_age" toml:"end_age" env:"END_AGE"`
	MaxWorkYears  int      `yaml:"max_work_years" toml:"max_work_years" env:"MAX_WORK_YEARS"`
	InflationRate float64  `yaml:"inflation_rate" toml:"inflation_rate" env:"INFLATION_RATE"`
	BaseSalary    float64  `yaml:"base_salary" toml:"base_salary" env:"BASE_SALARY"`
	Cohorts       []string `yaml:"cohorts,omitempty" toml:"cohorts,omitempty" env:"COHORTS" envSeparator:","`
}

// OutputSettings selects the report format and destination
type OutputSettings struct {
	Format    string `yaml:"format" toml:"format" env:"FORMAT"`
	Directory string `yaml:"directory,omitempty" toml:"directory,omitempty" env:"DIRECTORY"`
}

// LoggingSettings configures the CLI logger
type LoggingSettings struct {
	Level string `yaml:"level" toml:"level" env:"LEVEL"`
	JSON  bool   `yaml:"json" toml:"json" env:"JSON"`
}

// ToProjectionConfig converts the settings into the engine's projection parameters
func (ps ProjectionSettings) ToProjectionConfig() domain.ProjectionConfig {
	return domain.ProjectionConfig{
		StartAge:      ps.StartAge,
		EndAge:        ps.EndAge,
		MaxWorkYears:  ps.MaxWorkYears,
		InflationRate: decimal.NewFromFloat(ps.InflationRate),
		BaseSalary:    moneyutil.NewMoney(ps.BaseSalary).Decimal,
	}
}

// CohortKeys parses the configured report cohorts
func (ps ProjectionSettings) CohortKeys() ([]domain.AgeMonthKey, error) {
	keys := make([]domain.AgeMonthKey, 0, len(ps.Cohorts))
	for _, raw := range ps.Cohorts {
		key, err := ParseCohortKey(raw)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// ParseCohortKey parses "30y6m" or "30:6" into an age-month key
func ParseCohortKey(raw string) (domain.AgeMonthKey, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	var yearsPart, monthsPart string
	switch {
	case strings.Contains(s, ":"):
		yearsPart, monthsPart, _ = strings.Cut(s, ":")
	case strings.HasSuffix(s, "m") && strings.Contains(s, "y"):
		yearsPart, monthsPart, _ = strings.Cut(strings.TrimSuffix(s, "m"), "y")
	default:
		return domain.AgeMonthKey{}, fmt.Errorf("cohort %q: expected form 30y6m or 30:6", raw)
	}
	years, err := strconv.Atoi(yearsPart)
	if err != nil {
		return domain.AgeMonthKey{}, fmt.Errorf("cohort %q: invalid years: %w", raw, err)
	}
	months, err := strconv.Atoi(monthsPart)
	if err != nil {
		return domain.AgeMonthKey{}, fmt.Errorf("cohort %q: invalid months: %w", raw, err)
	}
	key := domain.NewAgeMonthKey(years, months)
	if !key.Valid() {
		return domain.AgeMonthKey{}, fmt.Errorf("cohort %q: months must be between 0 and 11", raw)
	}
	return key, nil
}

// InputParser handles parsing of input configuration files
type InputParser struct {
	// LookupEnv overrides the environment source (tests only).
	LookupEnv map[string]string
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// DefaultConfiguration returns the built-in defaults
func (ip *InputParser) DefaultConfiguration() *Configuration {
	return &Configuration{
		Population: PopulationSettings{Size: 100},
		Projection: ProjectionSettings{
			StartAge:      20,
			EndAge:        59,
			MaxWorkYears:  40,
			InflationRate: 0.06,
			BaseSalary:    10000,
		},
		Output:  OutputSettings{Format: "console"},
		Logging: LoggingSettings{Level: "info"},
	}
}

// Load returns the validated defaults overlaid by filename (if not empty) and the environment
func (ip *InputParser) Load(filename string) (*Configuration, error) {
	config, err := ip.Read(filename)
	if err != nil {
		return nil, err
	}
	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// LoadFromFile loads and validates configuration from a YAML or TOML file.
// Fields missing from the file keep their default values.
func (ip *InputParser) LoadFromFile(filename string) (*Configuration, error) {
	if filename == "" {
		return nil, fmt.Errorf("configuration file name is required")
	}
	return ip.Load(filename)
}

// Read overlays filename (if not empty) and the environment onto the defaults
// without validating, so callers can apply further overrides first.
func (ip *InputParser) Read(filename string) (*Configuration, error) {
	config := ip.DefaultConfiguration()
	if filename != "" {
		if err := decodeFile(filename, config); err != nil {
			return nil, err
		}
	}
	if err := ip.ApplyEnvOverrides(config); err != nil {
		return nil, err
	}
	return config, nil
}

func decodeFile(filename string, config *Configuration) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		if err := toml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse TOML: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	return nil
}

// ApplyEnvOverrides overlays POPPROJ_* environment variables onto config
func (ip *InputParser) ApplyEnvOverrides(config *Configuration) error {
	opts := env.Options{Prefix: EnvPrefix}
	if ip.LookupEnv != nil {
		opts.Environment = ip.LookupEnv
	}
	if err := env.ParseWithOptions(config, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *Configuration) error {
	if config.Population.Size <= 0 {
		return fmt.Errorf("%w: population size must be positive", domain.ErrInvalidConfiguration)
	}
	if config.Projection.BaseSalary <= 0 {
		return fmt.Errorf("%w: base salary must be positive", domain.ErrInvalidConfiguration)
	}
	if err := config.Projection.ToProjectionConfig().Validate(); err != nil {
		return fmt.Errorf("projection: %w", err)
	}
	if _, err := config.Projection.CohortKeys(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}
	if strings.TrimSpace(config.Output.Format) == "" {
		return fmt.Errorf("%w: output format is required", domain.ErrInvalidConfiguration)
	}
	return nil
}
