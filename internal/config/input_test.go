package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rpgo/earnings-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// isolatedParser ignores the process environment
func isolatedParser(overrides map[string]string) *InputParser {
	if overrides == nil {
		overrides = map[string]string{}
	}
	return &InputParser{LookupEnv: overrides}
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestDefaultConfiguration(t *testing.T) {
	parser := isolatedParser(nil)
	config := parser.DefaultConfiguration()

	assert.Equal(t, 100, config.Population.Size)
	assert.Equal(t, 40, config.Projection.MaxWorkYears)
	assert.Equal(t, 0.06, config.Projection.InflationRate)
	assert.Equal(t, 10000.0, config.Projection.BaseSalary)
	assert.Equal(t, "console", config.Output.Format)
	assert.NoError(t, parser.ValidateConfiguration(config))
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", "population:\n"+
		"  size: 25\n"+
		"  seed: 42\n"+
		"projection:\n"+
		"  start_age: 30\n"+
		"  end_age: 30\n"+
		"  max_work_years: 40\n"+
		"  inflation_rate: 0.06\n"+
		"  cohorts: [\"30y0m\", \"30:6\"]\n"+
		"output:\n"+
		"  format: json\n")

	config, err := isolatedParser(nil).LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 25, config.Population.Size)
	assert.Equal(t, int64(42), config.Population.Seed)
	assert.Equal(t, 30, config.Projection.StartAge)
	assert.Equal(t, 10000.0, config.Projection.BaseSalary, "unset fields keep defaults")
	assert.Equal(t, "json", config.Output.Format)

	keys, err := config.Projection.CohortKeys()
	require.NoError(t, err)
	assert.Equal(t, []domain.AgeMonthKey{domain.NewAgeMonthKey(30, 0), domain.NewAgeMonthKey(30, 6)}, keys)

	pc := config.Projection.ToProjectionConfig()
	assert.True(t, pc.InflationRate.Equal(decimal.NewFromFloat(0.06)))
	assert.True(t, pc.BaseSalary.Equal(decimal.NewFromInt(10000)))
}

func TestLoadFromFile_TOML(t *testing.T) {
	path := writeTempConfig(t, "config.toml", `
[population]
size = 10

[projection]
start_age = 59
end_age = 59
max_work_years = 40
inflation_rate = 0.05
base_salary = 12000.0

[logging]
level = "debug"
json = true
`)

	config, err := isolatedParser(nil).LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 10, config.Population.Size)
	assert.Equal(t, 59, config.Projection.StartAge)
	assert.Equal(t, 0.05, config.Projection.InflationRate)
	assert.Equal(t, 12000.0, config.Projection.BaseSalary)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.True(t, config.Logging.JSON)
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	config, err := isolatedParser(nil).LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	path := writeTempConfig(t, "bad.yaml", "projection:\n\tstart_age: \"not-a-number\"\n")

	config, err := isolatedParser(nil).LoadFromFile(path)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromFile_InvalidTOML(t *testing.T) {
	path := writeTempConfig(t, "bad.toml", "[projection\nstart_age = ")

	_, err := isolatedParser(nil).LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")
}

func TestLoadFromFile_ValidationFailure(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", "projection:\n  start_age: 50\n  end_age: 40\n")

	_, err := isolatedParser(nil).LoadFromFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestApplyEnvOverrides(t *testing.T) {
	parser := isolatedParser(map[string]string{
		"POPPROJ_POPULATION_SIZE":           "7",
		"POPPROJ_PROJECTION_START_AGE":      "45",
		"POPPROJ_PROJECTION_INFLATION_RATE": "0.03",
		"POPPROJ_PROJECTION_COHORTS":        "45y0m,46y11m",
		"POPPROJ_OUTPUT_FORMAT":             "csv",
		"POPPROJ_LOG_LEVEL":                 "warn",
	})

	config, err := parser.Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, config.Population.Size)
	assert.Equal(t, 45, config.Projection.StartAge)
	assert.Equal(t, 59, config.Projection.EndAge, "unset variables keep defaults")
	assert.Equal(t, 0.03, config.Projection.InflationRate)
	assert.Equal(t, []string{"45y0m", "46y11m"}, config.Projection.Cohorts)
	assert.Equal(t, "csv", config.Output.Format)
	assert.Equal(t, "warn", config.Logging.Level)
}

func TestApplyEnvOverrides_BeatFile(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", "population:\n  size: 25\n")
	parser := isolatedParser(map[string]string{"POPPROJ_POPULATION_SIZE": "3"})

	config, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, config.Population.Size)
}

func TestApplyEnvOverrides_InvalidValue(t *testing.T) {
	parser := isolatedParser(map[string]string{"POPPROJ_PROJECTION_END_AGE": "sixty"})
	_, err := parser.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestValidateConfiguration(t *testing.T) {
	parser := isolatedParser(nil)
	tests := []struct {
		name    string
		mutate  func(*Configuration)
		message string
	}{
		{"zero population", func(c *Configuration) { c.Population.Size = 0 }, "population size must be positive"},
		{"negative salary", func(c *Configuration) { c.Projection.BaseSalary = -1 }, "base salary must be positive"},
		{"negative work years", func(c *Configuration) { c.Projection.MaxWorkYears = -1 }, "max work years cannot be negative"},
		{"bad inflation", func(c *Configuration) { c.Projection.InflationRate = 6 }, "inflation rate must be between"},
		{"bad cohort", func(c *Configuration) { c.Projection.Cohorts = []string{"30y12m"} }, "months must be between 0 and 11"},
		{"missing format", func(c *Configuration) { c.Output.Format = " " }, "output format is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := parser.DefaultConfiguration()
			tt.mutate(config)
			err := parser.ValidateConfiguration(config)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestParseCohortKey(t *testing.T) {
	tests := []struct {
		raw     string
		want    domain.AgeMonthKey
		wantErr bool
	}{
		{"30y6m", domain.NewAgeMonthKey(30, 6), false},
		{" 45Y0M ", domain.NewAgeMonthKey(45, 0), false},
		{"59:11", domain.NewAgeMonthKey(59, 11), false},
		{"59:12", domain.AgeMonthKey{}, true},
		{"thirty", domain.AgeMonthKey{}, true},
		{"xy3m", domain.AgeMonthKey{}, true},
		{"30:", domain.AgeMonthKey{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseCohortKey(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRead_DoesNotValidate(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", "projection:\n  start_age: 50\n  end_age: 40\n")
	parser := isolatedParser(map[string]string{"POPPROJ_POPULATION_SIZE": "0"})

	config, err := parser.Read(path)
	require.NoError(t, err)
	assert.Equal(t, 0, config.Population.Size)
	assert.Equal(t, 40, config.Projection.EndAge)

	_, err = parser.Load(path)
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}
