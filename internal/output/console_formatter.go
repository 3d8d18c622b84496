package output

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/rpgo/earnings-projector/internal/domain"
)

// PopulationPreviewRows is the number of individuals shown in the console preview.
const PopulationPreviewRows = 5

// ConsoleFormatter renders a plain text summary of a projection run.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	cfg := report.Config

	fmt.Fprintln(&buf, "POPULATION EARNINGS PROJECTION")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Run: %s  Seed: %d\n", report.RunID, report.Seed)
	fmt.Fprintf(&buf, "Ages %d-%d, max %d work years, inflation %s, base salary %s\n",
		cfg.StartAge, cfg.EndAge, cfg.MaxWorkYears, FormatRate(cfg.InflationRate), FormatGroupedCurrency(cfg.BaseSalary))
	sizes := report.Population.CohortSizes()
	fmt.Fprintf(&buf, "Population: %s in %s age cohorts  Table cohorts: %s  Entries: %s\n",
		FormatCount(report.PopulationSize), FormatCount(len(sizes)), FormatCount(report.CohortCount), FormatCount(report.EntryCount))
	fmt.Fprintln(&buf)

	WritePopulationPreview(&buf, report.Population, PopulationPreviewRows)
	fmt.Fprintln(&buf)
	WriteTotals(&buf, report)

	for _, cp := range report.Cohorts {
		fmt.Fprintln(&buf)
		WriteCohortEntries(&buf, cp.Key, cp.Entries)
		fmt.Fprintf(&buf, "Individuals in cohort: %s\n", FormatCount(sizes[cp.Key]))
	}
	return buf.Bytes(), nil
}

// WritePopulationPreview prints the first n individuals as a table.
func WritePopulationPreview(buf *bytes.Buffer, population domain.Population, n int) {
	fmt.Fprintln(buf, "POPULATION (first rows)")
	fmt.Fprintf(buf, "%5s  %-7s  %-10s  %4s  %6s  %12s\n", "ID", "Gender", "Born", "Age", "Months", "Salary")
	for _, ind := range population.Head(n) {
		fmt.Fprintf(buf, "%5d  %-7s  %-10s  %4d  %6d  %12s\n",
			ind.ID, ind.Gender, ind.DateOfBirth.Format("2006-01-02"), ind.AgeYears, ind.AgeMonths, FormatGroupedCurrency(ind.GrossSalary))
	}
}

// WriteTotals prints the projected lifetime earnings of every individual.
func WriteTotals(buf *bytes.Buffer, report *domain.ProjectionReport) {
	fmt.Fprintln(buf, "TOTAL PROJECTED EARNINGS")
	fmt.Fprintf(buf, "%5s  %-7s  %6s  %18s\n", "ID", "Cohort", "Months", "Total")
	totals := append([]domain.EarningsTotal(nil), report.Totals...)
	sort.Slice(totals, func(i, j int) bool { return totals[i].ID < totals[j].ID })
	for _, t := range totals {
		fmt.Fprintf(buf, "%5d  %-7s  %6d  %18s\n", t.ID, t.Key, t.Months, FormatGroupedCurrency(t.TotalEarnings))
	}
	fmt.Fprintf(buf, "Grand total: %s\n", FormatGroupedCurrency(report.GrandTotal()))
	if len(report.Omitted) > 0 {
		ids := make([]string, len(report.Omitted))
		for i, id := range report.Omitted {
			ids[i] = intToString(id)
		}
		fmt.Fprintf(buf, "No projection for IDs: %s\n", strings.Join(ids, ", "))
	}
}

// WriteCohortEntries prints the raw monthly entries of one cohort.
func WriteCohortEntries(buf *bytes.Buffer, key domain.AgeMonthKey, entries []domain.MonthlyProjectionEntry) {
	fmt.Fprintf(buf, "COHORT %s (%d months)\n", key, len(entries))
	if len(entries) == 0 {
		fmt.Fprintln(buf, "  no working months remain")
		return
	}
	fmt.Fprintf(buf, "%5s  %14s  %9s  %11s  %9s  %10s\n", "Month", "Earnings", "Inflation", "Expenditure", "Savings", "Investment")
	for _, e := range entries {
		fmt.Fprintf(buf, "%5d  %14s  %9s  %11s  %9s  %10s\n",
			e.Month, FormatGroupedCurrency(e.Earnings), FormatRate(e.InflationRate),
			FormatFraction(e.ExpenditureFraction), FormatFraction(e.SavingsFraction), FormatFraction(e.InvestmentFraction))
	}
}
