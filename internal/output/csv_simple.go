package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/rpgo/earnings-projector/internal/domain"
)

// CSVSummarizer implements the summary CSV output (one row per individual total).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"ID", "AgeYears", "AgeMonths", "Months", "TotalEarnings"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	totals := append([]domain.EarningsTotal(nil), report.Totals...)
	sort.Slice(totals, func(i, j int) bool { return totals[i].ID < totals[j].ID })
	for _, t := range totals {
		row := []string{
			intToString(t.ID),
			intToString(t.Key.Years),
			intToString(t.Key.Months),
			intToString(t.Months),
			t.TotalEarnings.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
