package app

import (
	"context"
	"io"
	"time"

	"payrecon/adapters/excel"
	"payrecon/internal"
)

// ReconciliationService reads uploaded workbooks and reconciles them
type ReconciliationService struct {
	settings Settings
	reader   *excel.DataReader
	logger   *internal.Logger
}

// NewReconciliationService creates a reconciliation service
func NewReconciliationService(settings Settings, logger *internal.Logger) *ReconciliationService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	excelConfig := excel.DefaultExcelConfig()
	excelConfig.InvoiceSheet = settings.InvoiceSheet
	excelConfig.PayrollSheet = settings.PayrollSheet

	return &ReconciliationService{
		settings: settings,
		reader:   excel.NewDataReader(excelConfig, logger),
		logger:   logger.With("reconcile"),
	}
}

// Settings returns the settings every run uses
func (s *ReconciliationService) Settings() Settings {
	return s.settings
}

// ReconcileWorkbook reads both sheets of a workbook and reconciles them
func (s *ReconciliationService) ReconcileWorkbook(ctx context.Context, src io.Reader) (*Result, error) {
	startTime := time.Now()

	data, err := s.reader.Read(src)
	if err != nil {
		s.logger.Warn("workbook rejected: %v", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := RunReconciliation(data.Invoice, data.Payroll, s.settings)
	if err != nil {
		s.logger.Warn("reconciliation aborted: %v", err)
		return nil, err
	}

	for _, rep := range []SourceReport{result.Invoice, result.Payroll} {
		s.logger.Debug("%s sheet %q: header row %d, %d rows, columns %v",
			rep.Kind, rep.Sheet, rep.HeaderRow, rep.RowCount, rep.Resolution)
		if s.logger.GetLevel() >= internal.LogLevelTrace {
			for _, row := range rep.Aggregate {
				s.logger.Trace("%s %s %q: %s over %d rows, %d without amount",
					rep.Kind, row.Key, row.Label, row.Total, row.Rows, row.MissingAmounts)
			}
		}
		if rep.AmountGaps > 0 {
			s.logger.Warn("%s sheet %q: %d rows without a usable amount counted as zero",
				rep.Kind, rep.Sheet, rep.AmountGaps)
		}
	}

	s.logger.Info("reconciled %d keys (%d mismatched) in %.2fms, fingerprint %s",
		result.Summary.Keys, result.Summary.Mismatched,
		float64(time.Since(startTime).Nanoseconds())/1e6, result.Fingerprint.Short())
	return result, nil
}

// Export writes the result as a three-sheet workbook
func (s *ReconciliationService) Export(w io.Writer, result *Result) error {
	return excel.WriteReport(w, ReportOf(result))
}

// ReportOf selects the tables of a result that are exported
func ReportOf(result *Result) excel.Report {
	return excel.Report{
		InvoiceAggregate: result.Invoice.Aggregate,
		PayrollAggregate: result.Payroll.Aggregate,
		Differences:      result.Differences,
	}
}
