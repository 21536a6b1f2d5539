package excel

// ExcelConfig holds configuration for the workbook data source
type ExcelConfig struct {
	InvoiceSheet string `json:"invoice_sheet"`
	PayrollSheet string `json:"payroll_sheet"`
	// MatchSheetCase allows "Fatura" to satisfy "FATURA" when no exact name exists
	MatchSheetCase bool `json:"match_sheet_case"`
}

// DefaultExcelConfig returns sensible defaults for workbook processing
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		InvoiceSheet:   "FATURA",
		PayrollSheet:   "FOLHA",
		MatchSheetCase: true,
	}
}
