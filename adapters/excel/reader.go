package excel

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"payrecon/domain/core"
	"payrecon/domain/recon"
	"payrecon/internal"
	"payrecon/internal/normalize"
)

// DataReader reads the invoice and payroll sheets of an uploaded workbook
type DataReader struct {
	config ExcelConfig
	logger *internal.Logger
}

// NewDataReader creates a new workbook reader
func NewDataReader(config ExcelConfig, logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{config: config, logger: logger.With("excel")}
}

// ReadFile opens a workbook on disk and reads both sheets
func (r *DataReader) ReadFile(path string) (*WorkbookData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &core.UnreadableSourceError{Cause: fmt.Errorf("failed to open workbook: %w", err)}
	}
	defer file.Close()
	return r.Read(file)
}

// Read parses a workbook container and returns the raw grids of the
// invoice and payroll sheets. Any failure is an UnreadableSourceError.
func (r *DataReader) Read(src io.Reader) (*WorkbookData, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, &core.UnreadableSourceError{Cause: fmt.Errorf("not a spreadsheet workbook: %w", err)}
	}
	defer f.Close()
	r.logger.Debug("[DataReader] workbook opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	data := &WorkbookData{Sheets: f.GetSheetList()}

	data.Invoice, err = r.readSheet(f, r.config.InvoiceSheet)
	if err != nil {
		return nil, err
	}
	data.Payroll, err = r.readSheet(f, r.config.PayrollSheet)
	if err != nil {
		return nil, err
	}

	r.logger.Info("[DataReader] workbook read in %.2fms (%s: %d rows, %s: %d rows)",
		float64(time.Since(startTime).Nanoseconds())/1e6,
		r.config.InvoiceSheet, len(data.Invoice), r.config.PayrollSheet, len(data.Payroll))
	return data, nil
}

// readSheet returns the raw cell values of a sheet without treating any row as header
func (r *DataReader) readSheet(f *excelize.File, name string) (recon.Grid, error) {
	sheet, ok := r.findSheet(f, name)
	if !ok {
		return nil, &core.UnreadableSourceError{
			Sheet: name,
			Cause: fmt.Errorf("sheet does not exist (workbook has: %s)", strings.Join(f.GetSheetList(), ", ")),
		}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &core.UnreadableSourceError{Sheet: name, Cause: err}
	}
	if len(rows) == 0 {
		r.logger.Warn("[DataReader] sheet %q has no cells", sheet)
	}
	return recon.Grid(rows), nil
}

// findSheet resolves a configured sheet name, exact first, then by
// normalized comparison when MatchSheetCase is set
func (r *DataReader) findSheet(f *excelize.File, name string) (string, bool) {
	if idx, err := f.GetSheetIndex(name); err == nil && idx >= 0 {
		return name, true
	}
	if !r.config.MatchSheetCase {
		return "", false
	}
	want := normalize.Normalize(name)
	for _, candidate := range f.GetSheetList() {
		if normalize.Normalize(candidate) == want {
			r.logger.Debug("[DataReader] sheet %q matched as %q", name, candidate)
			return candidate, true
		}
	}
	return "", false
}
