package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/rpgo/earnings-projector/internal/calculation"
)

// WriteSweepSummary prints the percentile table and per-run outcomes of a seed sweep.
func WriteSweepSummary(buf *bytes.Buffer, result *calculation.SweepResult) {
	fmt.Fprintf(buf, "SEED SWEEP (%d runs)\n", len(result.Runs))
	fmt.Fprintf(buf, "Mean grand total: %s\n", FormatGroupedCurrency(result.MeanGrandTotal))
	p := result.GrandTotal
	fmt.Fprintf(buf, "Grand total  P10 %s  P25 %s  P50 %s  P75 %s  P90 %s\n",
		FormatGroupedCurrency(p.P10), FormatGroupedCurrency(p.P25), FormatGroupedCurrency(p.P50),
		FormatGroupedCurrency(p.P75), FormatGroupedCurrency(p.P90))
	f := result.InvestmentFraction
	fmt.Fprintf(buf, "Investment   P10 %s  P50 %s  P90 %s\n", FormatFraction(f.P10), FormatFraction(f.P50), FormatFraction(f.P90))
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "%20s  %18s  %9s  %7s  %10s\n", "Seed", "GrandTotal", "Projected", "Omitted", "Investment")
	for _, r := range result.Runs {
		fmt.Fprintf(buf, "%20d  %18s  %9d  %7d  %10s\n", r.Seed, FormatGroupedCurrency(r.GrandTotal), r.Projected, r.Omitted, FormatFraction(r.MeanInvestmentFraction))
	}
}

// SweepCSV renders one row per sweep run.
func SweepCSV(result *calculation.SweepResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Seed", "GrandTotal", "Projected", "Omitted", "MeanInvestmentFraction"}); err != nil {
		return nil, err
	}
	for _, r := range result.Runs {
		row := []string{
			fmt.Sprintf("%d", r.Seed),
			r.GrandTotal.StringFixed(2),
			intToString(r.Projected),
			intToString(r.Omitted),
			FormatFraction(r.MeanInvestmentFraction),
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
