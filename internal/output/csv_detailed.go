package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/rpgo/earnings-projector/internal/domain"
)

// CSVDetailedExporter writes the raw monthly entries of every cohort selected in the report.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Cohort", "Month", "Earnings", "InflationRate", "ExpenditureFraction", "SavingsFraction", "InvestmentFraction", "Expenditure", "Savings", "Investment"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	cohorts := append([]domain.CohortProjection(nil), report.Cohorts...)
	sort.SliceStable(cohorts, func(i, j int) bool { return cohorts[i].Key.Less(cohorts[j].Key) })
	for _, cp := range cohorts {
		for _, e := range cp.Entries {
			row := []string{
				cp.Key.String(),
				intToString(e.Month),
				e.Earnings.StringFixed(2),
				e.InflationRate.String(),
				FormatFraction(e.ExpenditureFraction),
				FormatFraction(e.SavingsFraction),
				FormatFraction(e.InvestmentFraction),
				e.Expenditure().StringFixed(2),
				e.Savings().StringFixed(2),
				e.Investment().StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
