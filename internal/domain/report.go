package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EarningsTotal is the summed projected earnings for one individual
type EarningsTotal struct {
	ID            int             `json:"id"`
	Key           AgeMonthKey     `json:"cohort"`
	Months        int             `json:"months"`
	TotalEarnings decimal.Decimal `json:"total_earnings"`
}

// CohortProjection carries the raw entries of one cohort for reporting
type CohortProjection struct {
	Key     AgeMonthKey              `json:"cohort"`
	Entries []MonthlyProjectionEntry `json:"entries"`
}

// ProjectionReport is the complete result of a projection run
type ProjectionReport struct {
	RunID          string             `json:"run_id"`
	GeneratedAt    time.Time          `json:"generated_at"`
	Seed           int64              `json:"seed"`
	Config         ProjectionConfig   `json:"config"`
	PopulationSize int                `json:"population_size"`
	CohortCount    int                `json:"cohort_count"`
	EntryCount     int                `json:"entry_count"`
	Population     Population         `json:"population"`
	Totals         []EarningsTotal    `json:"totals"`
	Omitted        []int              `json:"omitted_ids"`
	Cohorts        []CohortProjection `json:"cohorts,omitempty"`
}

// GrandTotal sums the earnings of every individual in the report
func (r *ProjectionReport) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, t := range r.Totals {
		total = total.Add(t.TotalEarnings)
	}
	return total
}
