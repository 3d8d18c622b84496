package calculation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sweepConfig(runs int) SweepConfig {
	cfg := DefaultProjectionConfig()
	cfg.StartAge, cfg.EndAge = 40, 41
	return SweepConfig{Runs: runs, BaseSeed: 1000, PopulationSize: 30, Projection: cfg}
}

func TestRunSweep(t *testing.T) {
	result, err := RunSweep(context.Background(), sweepConfig(6), nil)
	require.NoError(t, err)
	require.Len(t, result.Runs, 6)

	for i, r := range result.Runs {
		assert.Equal(t, int64(1000+i), r.Seed)
		assert.Equal(t, 30, r.Projected+r.Omitted)
		assert.False(t, r.MeanInvestmentFraction.IsNegative())
		assert.True(t, r.MeanInvestmentFraction.LessThanOrEqual(decimal.NewFromInt(1)))
	}

	p := result.GrandTotal
	assert.True(t, p.P10.LessThanOrEqual(p.P25))
	assert.True(t, p.P25.LessThanOrEqual(p.P50))
	assert.True(t, p.P50.LessThanOrEqual(p.P75))
	assert.True(t, p.P75.LessThanOrEqual(p.P90))
}

func TestRunSweep_MatchesSingleEngineRun(t *testing.T) {
	cfg := sweepConfig(1)
	result, err := RunSweep(context.Background(), cfg, nil)
	require.NoError(t, err)

	report, _, err := NewProjectionEngine(cfg.BaseSeed).Run(context.Background(), RunConfig{
		PopulationSize: cfg.PopulationSize,
		Projection:     cfg.Projection,
	})
	require.NoError(t, err)
	assert.True(t, result.Runs[0].GrandTotal.Equal(report.GrandTotal()))
	assert.True(t, result.MeanGrandTotal.Equal(report.GrandTotal()))
}

func TestRunSweep_Deterministic(t *testing.T) {
	first, err := RunSweep(context.Background(), sweepConfig(3), nil)
	require.NoError(t, err)
	second, err := RunSweep(context.Background(), sweepConfig(3), nil)
	require.NoError(t, err)
	assert.Equal(t, first.Runs, second.Runs)
	assert.Equal(t, int64(1002), second.Runs[2].Seed)
}

func TestRunSweep_Errors(t *testing.T) {
	_, err := RunSweep(context.Background(), sweepConfig(0), nil)
	assert.Error(t, err)

	bad := sweepConfig(2)
	bad.Projection.EndAge = 10
	_, err = RunSweep(context.Background(), bad, nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = RunSweep(ctx, sweepConfig(2), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculatePercentileRanges(t *testing.T) {
	values := make([]decimal.Decimal, 10)
	for i := range values {
		values[i] = decimal.NewFromInt(int64(10 - i))
	}
	p := calculatePercentileRanges(values)
	assert.Equal(t, "2", p.P10.String())
	assert.Equal(t, "3", p.P25.String())
	assert.Equal(t, "6", p.P50.String())
	assert.Equal(t, "8", p.P75.String())
	assert.Equal(t, "10", p.P90.String())
	assert.Equal(t, "10", values[0].String(), "input is not reordered")

	assert.Equal(t, PercentileRanges{}, calculatePercentileRanges(nil))
}
