package excel

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"payrecon/domain/recon"
)

// WriteReport writes the two aggregates and the difference table as a
// three-sheet workbook
func WriteReport(w io.Writer, report Report) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("failed to create number style: %w", err)
	}

	invoiceRows := make([][]interface{}, 0, len(report.InvoiceAggregate))
	for _, r := range report.InvoiceAggregate {
		invoiceRows = append(invoiceRows, []interface{}{r.Key, r.Label, money(r.Total)})
	}
	payrollRows := make([][]interface{}, 0, len(report.PayrollAggregate))
	for _, r := range report.PayrollAggregate {
		payrollRows = append(payrollRows, []interface{}{r.Key, r.Label, money(r.Total)})
	}
	diffRows := make([][]interface{}, 0, len(report.Differences))
	for _, r := range report.Differences {
		diffRows = append(diffRows, []interface{}{
			r.Key, r.PayrollName, r.InvoiceHolder,
			money(r.InvoiceAmount), money(r.PayrollAmount), money(r.Difference),
		})
	}

	sheets := []struct {
		name      string
		headers   []string
		rows      [][]interface{}
		moneyCols string
	}{
		{SheetInvoiceAggregate, recon.InvoiceAggregateHeaders, invoiceRows, "C"},
		{SheetPayrollAggregate, recon.PayrollAggregateHeaders, payrollRows, "C"},
		{SheetDifferences, recon.DifferenceHeaders, diffRows, "D:F"},
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}
		if err := f.SetColStyle(s.name, s.moneyCols, moneyStyle); err != nil {
			return fmt.Errorf("failed to style sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, s.name, s.headers, s.rows, headerStyle); err != nil {
			return err
		}
		if err := f.SetColWidth(s.name, "A", "F", 18); err != nil {
			return fmt.Errorf("failed to size sheet %s: %w", s.name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}, headerStyle int) error {
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

// money converts an amount for a numeric cell; cents survive the float conversion
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
