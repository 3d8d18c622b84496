package output

import (
	"fmt"

	"github.com/rpgo/earnings-projector/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	SheetPopulation = "Population"
	SheetTotals     = "Totals"
	SheetCohorts    = "Cohorts"
)

// XLSXFormatter writes the report as an Excel workbook with one sheet per table.
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string { return "xlsx" }

func (x XLSXFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName("Sheet1", SheetPopulation); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetTotals, SheetCohorts} {
		if _, err := wb.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	headerStyle, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	population := [][]interface{}{{"ID", "Gender", "DateOfBirth", "AgeYears", "AgeMonths", "GrossSalary"}}
	for _, ind := range report.Population {
		population = append(population, []interface{}{
			ind.ID, string(ind.Gender), ind.DateOfBirth.Format("2006-01-02"), ind.AgeYears, ind.AgeMonths, ind.GrossSalary.InexactFloat64(),
		})
	}

	totals := [][]interface{}{{"ID", "Cohort", "Months", "TotalEarnings"}}
	for _, t := range report.Totals {
		totals = append(totals, []interface{}{t.ID, t.Key.String(), t.Months, t.TotalEarnings.Round(2).InexactFloat64()})
	}

	cohorts := [][]interface{}{{"Cohort", "Month", "Earnings", "InflationRate", "ExpenditureFraction", "SavingsFraction", "InvestmentFraction", "Expenditure", "Savings", "Investment"}}
	for _, cp := range report.Cohorts {
		for _, e := range cp.Entries {
			cohorts = append(cohorts, []interface{}{
				cp.Key.String(),
				e.Month,
				e.Earnings.Round(2).InexactFloat64(),
				e.InflationRate.InexactFloat64(),
				e.ExpenditureFraction.InexactFloat64(),
				e.SavingsFraction.InexactFloat64(),
				e.InvestmentFraction.InexactFloat64(),
				e.Expenditure().Round(2).InexactFloat64(),
				e.Savings().Round(2).InexactFloat64(),
				e.Investment().Round(2).InexactFloat64(),
			})
		}
	}

	for sheet, rows := range map[string][][]interface{}{
		SheetPopulation: population,
		SheetTotals:     totals,
		SheetCohorts:    cohorts,
	} {
		if err := writeSheetRows(wb, sheet, rows); err != nil {
			return nil, err
		}
		if err := wb.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
			return nil, fmt.Errorf("style %s header: %w", sheet, err)
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheetRows(wb *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
