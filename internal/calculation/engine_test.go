package calculation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rpgo/earnings-projector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Debugf(format string, args ...any) { r.add("DEBUG", format, args...) }
func (r *recordingLogger) Infof(format string, args ...any)  { r.add("INFO", format, args...) }
func (r *recordingLogger) Warnf(format string, args ...any)  { r.add("WARN", format, args...) }
func (r *recordingLogger) Errorf(format string, args ...any) { r.add("ERROR", format, args...) }

func (r *recordingLogger) add(level, format string, args ...any) {
	r.lines = append(r.lines, level+" "+fmt.Sprintf(format, args...))
}

func (r *recordingLogger) count(level string) int {
	n := 0
	for _, l := range r.lines {
		if len(l) > len(level) && l[:len(level)] == level {
			n++
		}
	}
	return n
}

func pinEngineClock(t *testing.T) time.Time {
	t.Helper()
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	SetNowFunc(func() time.Time { return fixed })
	SetRunIDFunc(func() string { return "run-test" })
	t.Cleanup(func() {
		SetNowFunc(time.Now)
		SetRunIDFunc(newRunID)
	})
	return fixed
}

func TestProjectionEngine_Run(t *testing.T) {
	fixed := pinEngineClock(t)
	engine := NewProjectionEngine(42)
	logger := &recordingLogger{}
	engine.SetLogger(logger)

	report, table, err := engine.Run(context.Background(), RunConfig{
		PopulationSize: 50,
		Projection:     testProjectionConfig(20, 39, 40, 0.06),
		Cohorts:        []domain.AgeMonthKey{domain.NewAgeMonthKey(30, 0), domain.NewAgeMonthKey(45, 0)},
	})
	require.NoError(t, err)
	require.NotNil(t, table)

	assert.Equal(t, "run-test", report.RunID)
	assert.Equal(t, fixed, report.GeneratedAt)
	assert.Equal(t, int64(42), report.Seed)
	assert.Equal(t, 50, report.PopulationSize)
	assert.Len(t, report.Population, 50)
	assert.Equal(t, 20*12, report.CohortCount)
	assert.Equal(t, table.EntryCount(), report.EntryCount)
	assert.Equal(t, 50, len(report.Totals)+len(report.Omitted))

	for _, total := range report.Totals {
		assert.GreaterOrEqual(t, total.Key.Years, 20)
		assert.LessOrEqual(t, total.Key.Years, 39)
	}
	for _, id := range report.Omitted {
		ind, ok := report.Population.FindByID(id)
		require.True(t, ok)
		assert.True(t, ind.AgeYears < 20 || ind.AgeYears > 39, "individual %d should have been projected", id)
	}

	require.Len(t, report.Cohorts, 1, "cohort outside the table should be skipped")
	assert.Equal(t, domain.NewAgeMonthKey(30, 0), report.Cohorts[0].Key)
	assert.Len(t, report.Cohorts[0].Entries, 360)

	assert.Equal(t, 1, logger.count("WARN"))
	assert.GreaterOrEqual(t, logger.count("INFO"), 3)
}

func TestProjectionEngine_RunDefaultsPopulationSize(t *testing.T) {
	pinEngineClock(t)
	engine := NewProjectionEngine(9)
	report, _, err := engine.Run(context.Background(), RunConfig{Projection: testProjectionConfig(59, 59, 1, 0.02)})
	require.NoError(t, err)
	assert.Equal(t, DefaultPopulationSize, report.PopulationSize)
}

func TestProjectionEngine_RunInvalidConfiguration(t *testing.T) {
	engine := NewProjectionEngine(1)
	_, _, err := engine.Run(context.Background(), RunConfig{PopulationSize: 5, Projection: testProjectionConfig(50, 40, 40, 0.06)})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	_, _, err = engine.Run(context.Background(), RunConfig{PopulationSize: -1, Projection: DefaultProjectionConfig()})
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestProjectionEngine_ReproducibleWithSeed(t *testing.T) {
	pinEngineClock(t)
	rc := RunConfig{PopulationSize: 10, Projection: testProjectionConfig(30, 31, 40, 0.06)}

	a, _, err := NewProjectionEngine(77).Run(context.Background(), rc)
	require.NoError(t, err)
	b, _, err := NewProjectionEngine(77).Run(context.Background(), rc)
	require.NoError(t, err)

	assert.Equal(t, a.Population, b.Population)
	require.Equal(t, len(a.Totals), len(b.Totals))
	for i := range a.Totals {
		assert.True(t, a.Totals[i].TotalEarnings.Equal(b.Totals[i].TotalEarnings))
	}
}

func TestNewProjectionEngine_ZeroSeedUsesSeedFunc(t *testing.T) {
	SetSeedFunc(func() int64 { return 1234 })
	t.Cleanup(func() { SetSeedFunc(func() int64 { return time.Now().UnixNano() }) })

	engine := NewProjectionEngine(0)
	assert.Equal(t, int64(1234), engine.Seed)

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}
