package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/earnings-projector/internal/domain"
	"github.com/rpgo/earnings-projector/pkg/dateutil"
	moneyutil "github.com/rpgo/earnings-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

const (
	// DefaultMaxWorkYears bounds the remaining working life of a cohort
	DefaultMaxWorkYears = 40

	// DefaultStartAge and DefaultEndAge cover every cohort still working
	DefaultStartAge = 20
	DefaultEndAge   = 59
)

var (
	// DefaultInflationRate is the annual nominal rate, compounded monthly
	DefaultInflationRate = decimal.NewFromFloat(0.06)

	// DefaultGrossSalary is the base monthly salary every cohort is projected from
	DefaultGrossSalary = decimal.NewFromInt(10000)

	expenditureMin = decimal.NewFromFloat(0.5)
	expenditureMax = decimal.NewFromFloat(0.7)
	savingsMin     = decimal.NewFromFloat(0.1)
	savingsMax     = decimal.NewFromFloat(0.3)
)

// DefaultProjectionConfig returns the standard projection parameters
func DefaultProjectionConfig() domain.ProjectionConfig {
	return domain.ProjectionConfig{
		StartAge:      DefaultStartAge,
		EndAge:        DefaultEndAge,
		MaxWorkYears:  DefaultMaxWorkYears,
		InflationRate: DefaultInflationRate,
		BaseSalary:    DefaultGrossSalary,
	}
}

// ProjectionBuilder computes projection tables
type ProjectionBuilder struct {
	RNG    RandomSource
	Logger Logger
}

// NewProjectionBuilder creates a builder drawing allocation fractions from rng
func NewProjectionBuilder(rng RandomSource, logger Logger) *ProjectionBuilder {
	return &ProjectionBuilder{RNG: rng, Logger: loggerOrNop(logger)}
}

// BuildProjections builds the full table for cfg using rng
func BuildProjections(rng RandomSource, cfg domain.ProjectionConfig) (*domain.ProjectionTable, error) {
	return NewProjectionBuilder(rng, nil).Build(context.Background(), cfg)
}

// Build computes the entries of every (age years, age months) cohort in
// [StartAge, EndAge] x [0, 11]. Cohorts with no remaining months are stored
// with an empty sequence. ctx is checked between cohorts.
func (pb *ProjectionBuilder) Build(ctx context.Context, cfg domain.ProjectionConfig) (*domain.ProjectionTable, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if pb.RNG == nil {
		return nil, fmt.Errorf("projection builder requires a random source")
	}
	logger := loggerOrNop(pb.Logger)

	// Earnings depend only on the month index, so one series serves every cohort.
	horizon := cfg.RemainingMonths(domain.NewAgeMonthKey(cfg.StartAge, 0))
	earnings := moneyutil.CompoundSeries(cfg.BaseSalary, cfg.InflationRate, horizon)

	table := domain.NewProjectionTable(cfg)
	for years := cfg.StartAge; years <= cfg.EndAge; years++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("projection build cancelled at age %d: %w", years, err)
		}
		for months := 0; months <= dateutil.MaxResidualMonths; months++ {
			key := domain.NewAgeMonthKey(years, months)
			remaining := cfg.RemainingMonths(key)
			table.Set(key, pb.buildCohort(cfg, earnings[:remaining]))
			logger.Debugf("cohort %s: %d months", key, remaining)
		}
	}

	logger.Infof("built projection table: %d cohorts, %d entries (ages %d-%d, max work years %d, inflation %s)",
		table.Len(), table.EntryCount(), cfg.StartAge, cfg.EndAge, cfg.MaxWorkYears, cfg.InflationRate.String())
	return table, nil
}

// buildCohort draws the allocation fractions for each month of a cohort
func (pb *ProjectionBuilder) buildCohort(cfg domain.ProjectionConfig, earnings []decimal.Decimal) []domain.MonthlyProjectionEntry {
	entries := make([]domain.MonthlyProjectionEntry, len(earnings))
	for m, amount := range earnings {
		expenditure := moneyutil.Uniform(expenditureMin, expenditureMax, pb.RNG.Float64())
		savings := moneyutil.Uniform(savingsMin, savingsMax, pb.RNG.Float64())
		entries[m] = domain.MonthlyProjectionEntry{
			Month:               m,
			Earnings:            amount,
			InflationRate:       cfg.InflationRate,
			ExpenditureFraction: expenditure,
			SavingsFraction:     savings,
			InvestmentFraction:  moneyutil.Residual(expenditure, savings),
		}
	}
	return entries
}
