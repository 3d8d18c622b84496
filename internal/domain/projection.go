package domain

import (
	"fmt"
	"slices"
	"sort"

	moneyutil "github.com/rpgo/earnings-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// RetirementAgeMonths is the fixed retirement point (age 60) in months
	RetirementAgeMonths = 60 * MonthsPerYear
)

// AgeMonthKey identifies a cohort by whole years and residual months (0-11)
type AgeMonthKey struct {
	Years  int `json:"age_years" yaml:"age_years"`
	Months int `json:"age_months" yaml:"age_months"`
}

// NewAgeMonthKey builds a key from whole years and residual months
func NewAgeMonthKey(years, months int) AgeMonthKey {
	return AgeMonthKey{Years: years, Months: months}
}

// Valid reports whether the key can exist in a projection table.
func (k AgeMonthKey) Valid() bool {
	return k.Years >= 0 && k.Months >= 0 && k.Months < MonthsPerYear
}

// TotalMonths returns the age expressed in months
func (k AgeMonthKey) TotalMonths() int {
	return k.Years*MonthsPerYear + k.Months
}

// Less orders keys by years, then months.
func (k AgeMonthKey) Less(other AgeMonthKey) bool {
	if k.Years != other.Years {
		return k.Years < other.Years
	}
	return k.Months < other.Months
}

func (k AgeMonthKey) String() string {
	return fmt.Sprintf("%dy%dm", k.Years, k.Months)
}

// MonthlyProjectionEntry is one simulated future month for a cohort.
// ExpenditureFraction + SavingsFraction + InvestmentFraction is exactly 1.
type MonthlyProjectionEntry struct {
	Month               int             `json:"month"`
	Earnings            decimal.Decimal `json:"earnings"`
	InflationRate       decimal.Decimal `json:"inflation_rate"`
	ExpenditureFraction decimal.Decimal `json:"expenditure_fraction"`
	SavingsFraction     decimal.Decimal `json:"savings_fraction"`
	InvestmentFraction  decimal.Decimal `json:"investment_fraction"`
}

// FractionTotal returns the sum of the three allocation fractions
func (e MonthlyProjectionEntry) FractionTotal() decimal.Decimal {
	return moneyutil.Sum(e.ExpenditureFraction, e.SavingsFraction, e.InvestmentFraction)
}

// Expenditure returns the earnings amount allocated to expenditure
func (e MonthlyProjectionEntry) Expenditure() decimal.Decimal {
	return e.Earnings.Mul(e.ExpenditureFraction)
}

// Savings returns the earnings amount allocated to savings
func (e MonthlyProjectionEntry) Savings() decimal.Decimal {
	return e.Earnings.Mul(e.SavingsFraction)
}

// Investment returns the earnings amount allocated to investment
func (e MonthlyProjectionEntry) Investment() decimal.Decimal {
	return e.Earnings.Mul(e.InvestmentFraction)
}

// ProjectionConfig holds the parameters a projection table is built from
type ProjectionConfig struct {
	StartAge      int             `json:"start_age" yaml:"start_age"`
	EndAge        int             `json:"end_age" yaml:"end_age"`
	MaxWorkYears  int             `json:"max_work_years" yaml:"max_work_years"`
	InflationRate decimal.Decimal `json:"inflation_rate" yaml:"inflation_rate"`
	BaseSalary    decimal.Decimal `json:"base_salary" yaml:"base_salary"`
}

var (
	minInflationRate = decimal.NewFromFloat(-0.10)
	maxInflationRate = decimal.NewFromFloat(0.20)
)

// Validate checks the configuration before a table is built
func (pc ProjectionConfig) Validate() error {
	if pc.StartAge < 0 {
		return fmt.Errorf("%w: start age cannot be negative, got %d", ErrInvalidConfiguration, pc.StartAge)
	}
	if pc.EndAge < 0 {
		return fmt.Errorf("%w: end age cannot be negative, got %d", ErrInvalidConfiguration, pc.EndAge)
	}
	if pc.EndAge < pc.StartAge {
		return fmt.Errorf("%w: end age (%d) cannot be before start age (%d)", ErrInvalidConfiguration, pc.EndAge, pc.StartAge)
	}
	if pc.MaxWorkYears < 0 {
		return fmt.Errorf("%w: max work years cannot be negative, got %d", ErrInvalidConfiguration, pc.MaxWorkYears)
	}
	if pc.InflationRate.LessThan(minInflationRate) || pc.InflationRate.GreaterThan(maxInflationRate) {
		return fmt.Errorf("%w: inflation rate must be between -10%% and 20%%, got %s%%",
			ErrInvalidConfiguration, pc.InflationRate.Mul(decimal.NewFromInt(100)).StringFixed(2))
	}
	if !pc.BaseSalary.IsPositive() {
		return fmt.Errorf("%w: base salary must be positive", ErrInvalidConfiguration)
	}
	return nil
}

// RemainingMonths returns the projection horizon for a cohort: the lesser of
// the configured working life and the months left before age 60, never negative.
func (pc ProjectionConfig) RemainingMonths(key AgeMonthKey) int {
	remaining := min(pc.MaxWorkYears*MonthsPerYear, RetirementAgeMonths-key.TotalMonths())
	return max(0, remaining)
}

// ProjectionTable maps each cohort to its chronological projection entries.
// It is populated once by the builder and only read afterwards.
type ProjectionTable struct {
	config  ProjectionConfig
	cohorts map[AgeMonthKey][]MonthlyProjectionEntry
}

// NewProjectionTable creates an empty table for the given configuration
func NewProjectionTable(config ProjectionConfig) *ProjectionTable {
	size := (config.EndAge - config.StartAge + 1) * MonthsPerYear
	return &ProjectionTable{
		config:  config,
		cohorts: make(map[AgeMonthKey][]MonthlyProjectionEntry, max(size, 0)),
	}
}

// Set stores a copy of the entries for a cohort. Only the builder calls it.
func (pt *ProjectionTable) Set(key AgeMonthKey, entries []MonthlyProjectionEntry) {
	if entries == nil {
		entries = []MonthlyProjectionEntry{}
	}
	pt.cohorts[key] = slices.Clone(entries)
}

// Lookup returns a copy of the entries for a cohort and whether the cohort was
// built. A built cohort with no remaining months yields an empty slice and true.
func (pt *ProjectionTable) Lookup(key AgeMonthKey) ([]MonthlyProjectionEntry, bool) {
	entries, ok := pt.cohorts[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(entries), true
}

// Config returns the configuration the table was built from
func (pt *ProjectionTable) Config() ProjectionConfig {
	return pt.config
}

// Len returns the number of cohorts in the table
func (pt *ProjectionTable) Len() int {
	return len(pt.cohorts)
}

// EntryCount returns the total number of entries across all cohorts
func (pt *ProjectionTable) EntryCount() int {
	n := 0
	for _, entries := range pt.cohorts {
		n += len(entries)
	}
	return n
}

// Keys returns all cohort keys in ascending order
func (pt *ProjectionTable) Keys() []AgeMonthKey {
	keys := make([]AgeMonthKey, 0, len(pt.cohorts))
	for k := range pt.cohorts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// SumEarnings totals the earnings of a sequence of entries
func SumEarnings(entries []MonthlyProjectionEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Earnings)
	}
	return total
}
