package app

import (
	"fmt"

	"payrecon/adapters/coercer"
	"payrecon/domain/core"
	"payrecon/domain/recon"
	"payrecon/internal/aggregate"
	"payrecon/internal/config"
	"payrecon/internal/normalize"
	"payrecon/internal/reconcile"
	"payrecon/internal/schema"
)

// Settings drives one reconciliation run
type Settings struct {
	InvoiceSheet string
	PayrollSheet string
	// InvoiceHint and PayrollHint are skip-row counts tried before scanning
	InvoiceHint int
	PayrollHint int
	ScanRows    int
	Match       schema.MatchMode

	DropZeroDifference bool
	Coercion           coercer.CoercionConfig
	Synonyms           recon.SynonymMap
}

// DefaultSettings returns settings equal to an empty environment
func DefaultSettings() Settings {
	s, err := SettingsFromConfig(config.DefaultReconConfig())
	if err != nil {
		panic(err)
	}
	return s
}

// SettingsFromConfig converts the environment configuration into run settings
func SettingsFromConfig(c config.ReconConfig) (Settings, error) {
	mode, err := schema.ParseMatchMode(c.HeaderMatch)
	if err != nil {
		return Settings{}, err
	}
	synonyms := c.Synonyms
	if synonyms == nil {
		synonyms = config.DefaultSynonyms()
	}
	return Settings{
		InvoiceSheet:       c.InvoiceSheet,
		PayrollSheet:       c.PayrollSheet,
		InvoiceHint:        c.InvoiceSkipRows,
		PayrollHint:        c.PayrollSkipRows,
		ScanRows:           c.HeaderScanRows,
		Match:              mode,
		DropZeroDifference: c.DropZeroDifference,
		Coercion: coercer.CoercionConfig{
			NormalizeNames: c.NormalizeNames,
			KeyWidth:       c.KeyWidth,
		},
		Synonyms: synonyms,
	}, nil
}

// SourceReport describes how one sheet was interpreted
type SourceReport struct {
	Kind       recon.SourceKind     `json:"kind"`
	Sheet      string               `json:"sheet"`
	HeaderRow  int                  `json:"header_row"`
	Resolution recon.Resolution     `json:"resolution"`
	Labels     []string             `json:"labels"`
	RowCount   int                  `json:"row_count"`
	AmountGaps int                  `json:"amount_gaps"`
	Aggregate  []recon.AggregateRow `json:"aggregate"`
}

// Result is the outcome of a run
type Result struct {
	Invoice     SourceReport              `json:"invoice"`
	Payroll     SourceReport              `json:"payroll"`
	Differences []recon.ReconciliationRow `json:"differences"`
	Summary     reconcile.Summary         `json:"summary"`
	// Fingerprint identifies the difference table independently of row order
	Fingerprint core.Hash `json:"fingerprint"`
}

// RunReconciliation interprets both grids and reconciles them. It performs
// no I/O; any source error aborts the run before aggregation.
func RunReconciliation(invoiceGrid, payrollGrid recon.Grid, s Settings) (*Result, error) {
	fc := coercer.NewFieldCoercer(s.Coercion)

	invoice, err := interpretSource(recon.SourceInvoice, s.InvoiceSheet, invoiceGrid, s.InvoiceHint, s, fc)
	if err != nil {
		return nil, err
	}
	payroll, err := interpretSource(recon.SourcePayroll, s.PayrollSheet, payrollGrid, s.PayrollHint, s, fc)
	if err != nil {
		return nil, err
	}

	rows := reconcile.Reconcile(invoice.Aggregate, payroll.Aggregate, reconcile.Options{
		DropZeroDifference: s.DropZeroDifference,
	})

	return &Result{
		Invoice:     *invoice,
		Payroll:     *payroll,
		Differences: rows,
		Summary:     reconcile.Summarize(rows, invoice.Aggregate, payroll.Aggregate),
		Fingerprint: fingerprint(rows),
	}, nil
}

// interpretSource locates the header, resolves the columns and aggregates
// one sheet. When the first qualifying header row does not resolve every
// role the next candidate inside the scan window is tried.
func interpretSource(kind recon.SourceKind, sheet string, grid recon.Grid, hint int, s Settings, fc *coercer.FieldCoercer) (*SourceReport, error) {
	synonyms, ok := s.Synonyms[kind]
	if !ok {
		return nil, core.NewSynonymError(string(kind), "no synonyms configured")
	}

	opts := schema.LocateOptions{Sheet: sheet, MaxRows: s.ScanRows, Mode: s.Match, Hint: hint}
	candidates := schema.HeaderCandidates(grid, synonyms[recon.RoleKey], opts)
	if len(candidates) == 0 {
		_, err := schema.LocateHeader(grid, synonyms[recon.RoleKey], opts)
		return nil, err
	}

	var firstErr error
	for _, headerRow := range candidates {
		table := grid.WithHeaderAt(headerRow)
		labels := normalize.NormalizeAll(table.Header)

		res, missing := schema.Resolve(labels, synonyms)
		if len(missing) > 0 {
			if firstErr == nil {
				firstErr = &core.UnresolvedColumnsError{
					Source:  string(kind),
					Sheet:   sheet,
					Missing: schema.RoleNames(missing),
					Found:   nonEmpty(labels),
				}
			}
			continue
		}

		rows := fc.CoerceTable(table, res)
		return &SourceReport{
			Kind:       kind,
			Sheet:      sheet,
			HeaderRow:  headerRow,
			Resolution: res,
			Labels:     labels,
			RowCount:   len(rows),
			AmountGaps: coercer.CountGaps(rows),
			Aggregate:  aggregate.Aggregate(rows),
		}, nil
	}
	return nil, firstErr
}

func nonEmpty(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

func fingerprint(rows []recon.ReconciliationRow) core.Hash {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("%s|%s|%s|%s|%s|%s", r.Key, r.PayrollName, r.InvoiceHolder,
			r.InvoiceAmount.String(), r.PayrollAmount.String(), r.Difference.String())
	}
	return core.HashLines(lines)
}
