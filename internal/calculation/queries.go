package calculation

import (
	"fmt"
	"sort"

	"github.com/rpgo/earnings-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// TotalProjectedEarnings sums the cohort earnings of every individual keyed by ID.
// Individuals whose cohort is absent from the table are omitted.
func TotalProjectedEarnings(population domain.Population, table *domain.ProjectionTable) map[int]decimal.Decimal {
	totals := make(map[int]decimal.Decimal, len(population))
	for _, ind := range population {
		entries, ok := table.Lookup(ind.Key())
		if !ok {
			continue
		}
		totals[ind.ID] = domain.SumEarnings(entries)
	}
	return totals
}

// SummarizeEarnings returns per-individual totals sorted by ID, and the IDs
// of individuals without a cohort in the table.
func SummarizeEarnings(population domain.Population, table *domain.ProjectionTable) ([]domain.EarningsTotal, []int) {
	totals := make([]domain.EarningsTotal, 0, len(population))
	omitted := []int{}
	for _, ind := range population {
		entries, ok := table.Lookup(ind.Key())
		if !ok {
			omitted = append(omitted, ind.ID)
			continue
		}
		totals = append(totals, domain.EarningsTotal{
			ID:            ind.ID,
			Key:           ind.Key(),
			Months:        len(entries),
			TotalEarnings: domain.SumEarnings(entries),
		})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].ID < totals[j].ID })
	sort.Ints(omitted)
	return totals, omitted
}

// IndividualProjection returns the projected gross earnings for one individual.
// It fails with domain.ErrIDNotFound when no individual has the ID and with
// domain.ErrNoProjection when the individual's cohort was not built.
func IndividualProjection(table *domain.ProjectionTable, id int, population domain.Population) (decimal.Decimal, error) {
	ind, ok := population.FindByID(id)
	if !ok {
		return decimal.Zero, fmt.Errorf("individual %d: %w", id, domain.ErrIDNotFound)
	}
	entries, ok := table.Lookup(ind.Key())
	if !ok {
		return decimal.Zero, fmt.Errorf("individual %d (cohort %s): %w", id, ind.Key(), domain.ErrNoProjection)
	}
	return domain.SumEarnings(entries), nil
}

// CriticalValues returns the raw entries of the (ageYears, ageMonths) cohort.
// A cohort that was never built, including one with months outside [0, 11],
// fails with domain.ErrNoProjection. A built cohort with no remaining working
// months returns an empty slice and a nil error.
func CriticalValues(table *domain.ProjectionTable, ageYears, ageMonths int) ([]domain.MonthlyProjectionEntry, error) {
	key := domain.NewAgeMonthKey(ageYears, ageMonths)
	entries, ok := table.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("cohort %s: %w", key, domain.ErrNoProjection)
	}
	return entries, nil
}
