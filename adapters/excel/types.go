package excel

import "payrecon/domain/recon"

// Export sheet names
const (
	SheetInvoiceAggregate = "aggregate-invoice"
	SheetPayrollAggregate = "aggregate-payroll"
	SheetDifferences      = "differences"
)

// WorkbookData holds the raw grids of both sources
type WorkbookData struct {
	Invoice recon.Grid
	Payroll recon.Grid
	// Sheets lists every sheet the workbook carries, for diagnostics
	Sheets []string
}

// Report is everything written to the export workbook
type Report struct {
	InvoiceAggregate []recon.AggregateRow
	PayrollAggregate []recon.AggregateRow
	Differences      []recon.ReconciliationRow
}
