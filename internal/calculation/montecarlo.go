package calculation

import (
	"context"
	"fmt"
	"sort"

	"github.com/rpgo/earnings-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// SweepConfig holds configuration for a Monte Carlo sweep over seeds
type SweepConfig struct {
	Runs           int
	BaseSeed       int64
	PopulationSize int
	Projection     domain.ProjectionConfig
}

// SweepOutcome is the result of a single seeded run
type SweepOutcome struct {
	Seed                   int64           `json:"seed"`
	GrandTotal             decimal.Decimal `json:"grand_total"`
	Projected              int             `json:"projected"`
	Omitted                int             `json:"omitted"`
	MeanInvestmentFraction decimal.Decimal `json:"mean_investment_fraction"`
}

// PercentileRanges represents percentile ranges across sweep runs
type PercentileRanges struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}

// SweepResult aggregates the outcomes of every run
type SweepResult struct {
	Runs               []SweepOutcome   `json:"runs"`
	MeanGrandTotal     decimal.Decimal  `json:"mean_grand_total"`
	GrandTotal         PercentileRanges `json:"grand_total_percentiles"`
	InvestmentFraction PercentileRanges `json:"investment_fraction_percentiles"`
}

// RunSweep repeats the full generate-and-build run once per seed, BaseSeed+i for
// run i, and summarizes how the population's projected earnings vary.
func RunSweep(ctx context.Context, cfg SweepConfig, logger Logger) (*SweepResult, error) {
	if cfg.Runs <= 0 {
		return nil, fmt.Errorf("sweep runs must be positive, got %d", cfg.Runs)
	}
	if err := cfg.Projection.Validate(); err != nil {
		return nil, err
	}
	logger = loggerOrNop(logger)
	baseSeed := ResolveSeed(cfg.BaseSeed)

	results := make([]SweepOutcome, cfg.Runs)
	for i := range results {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("sweep cancelled before run %d: %w", i, err)
		}
		outcome, err := runSingleSweep(ctx, cfg, baseSeed+int64(i))
		if err != nil {
			return nil, fmt.Errorf("sweep run %d: %w", i, err)
		}
		results[i] = outcome
		logger.Debugf("sweep run %d (seed %d): grand total %s", i, outcome.Seed, outcome.GrandTotal.StringFixed(2))
	}

	totals := make([]decimal.Decimal, len(results))
	fractions := make([]decimal.Decimal, len(results))
	for i, r := range results {
		totals[i] = r.GrandTotal
		fractions[i] = r.MeanInvestmentFraction
	}
	result := &SweepResult{
		Runs:               results,
		MeanGrandTotal:     decimal.Avg(totals[0], totals[1:]...),
		GrandTotal:         calculatePercentileRanges(totals),
		InvestmentFraction: calculatePercentileRanges(fractions),
	}
	logger.Infof("sweep of %d runs from seed %d: median grand total %s", cfg.Runs, baseSeed, result.GrandTotal.P50.StringFixed(2))
	return result, nil
}

// runSingleSweep runs one independent generate-and-build cycle
func runSingleSweep(ctx context.Context, cfg SweepConfig, seed int64) (SweepOutcome, error) {
	rng := NewSeededRNG(seed)
	size := cfg.PopulationSize
	if size == 0 {
		size = DefaultPopulationSize
	}
	population, err := GeneratePopulation(rng, size)
	if err != nil {
		return SweepOutcome{}, err
	}
	table, err := NewProjectionBuilder(rng, nil).Build(ctx, cfg.Projection)
	if err != nil {
		return SweepOutcome{}, err
	}

	totals, omitted := SummarizeEarnings(population, table)
	grand := decimal.Zero
	for _, t := range totals {
		grand = grand.Add(t.TotalEarnings)
	}
	return SweepOutcome{
		Seed:                   seed,
		GrandTotal:             grand,
		Projected:              len(totals),
		Omitted:                len(omitted),
		MeanInvestmentFraction: meanInvestmentFraction(table),
	}, nil
}

func meanInvestmentFraction(table *domain.ProjectionTable) decimal.Decimal {
	sum := decimal.Zero
	n := 0
	for _, key := range table.Keys() {
		entries, _ := table.Lookup(key)
		for _, e := range entries {
			sum = sum.Add(e.InvestmentFraction)
			n++
		}
	}
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n))).Round(6)
}

// calculatePercentileRanges sorts a copy of values and picks nearest-rank percentiles
func calculatePercentileRanges(values []decimal.Decimal) PercentileRanges {
	if len(values) == 0 {
		return PercentileRanges{}
	}
	sorted := append([]decimal.Decimal(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	n := len(sorted)
	return PercentileRanges{
		P10: sorted[n/10],
		P25: sorted[n/4],
		P50: sorted[n/2],
		P75: sorted[3*n/4],
		P90: sorted[9*n/10],
	}
}
