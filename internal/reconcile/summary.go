package reconcile

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"payrecon/domain/recon"
	"payrecon/internal/aggregate"
)

// Summary describes one reconciliation at a glance
type Summary struct {
	Keys          int             `json:"keys"`
	Matched       int             `json:"matched"`
	InvoiceOnly   int             `json:"invoice_only"`
	PayrollOnly   int             `json:"payroll_only"`
	Mismatched    int             `json:"mismatched"`
	InvoiceTotal  decimal.Decimal `json:"invoice_total"`
	PayrollTotal  decimal.Decimal `json:"payroll_total"`
	NetDifference decimal.Decimal `json:"net_difference"`

	// Descriptive statistics over the differences of the reported rows
	MeanDifference   float64 `json:"mean_difference"`
	MedianDifference float64 `json:"median_difference"`
	MaxAbsDifference float64 `json:"max_abs_difference"`
}

// Summarize counts how keys split across the two sources and describes the
// differences of rows. Key counts come from the aggregates so they are the
// same whether or not zero differences were dropped.
func Summarize(rows []recon.ReconciliationRow, invoice, payroll []recon.AggregateRow) Summary {
	inv := keySet(invoice)
	pay := keySet(payroll)

	s := Summary{
		InvoiceTotal: aggregate.Total(invoice),
		PayrollTotal: aggregate.Total(payroll),
	}
	s.NetDifference = s.InvoiceTotal.Sub(s.PayrollTotal)

	for k := range inv {
		if pay[k] {
			s.Matched++
		} else {
			s.InvoiceOnly++
		}
	}
	for k := range pay {
		if !inv[k] {
			s.PayrollOnly++
		}
	}
	s.Keys = s.Matched + s.InvoiceOnly + s.PayrollOnly

	diffs := make(stats.Float64Data, 0, len(rows))
	for _, r := range rows {
		if !r.Difference.IsZero() {
			s.Mismatched++
		}
		diffs = append(diffs, r.Difference.InexactFloat64())
	}
	if len(diffs) == 0 {
		return s
	}

	if mean, err := stats.Mean(diffs); err == nil {
		s.MeanDifference = round2(mean)
	}
	if median, err := stats.Median(diffs); err == nil {
		s.MedianDifference = round2(median)
	}
	lo, errLo := stats.Min(diffs)
	hi, errHi := stats.Max(diffs)
	if errLo == nil && errHi == nil {
		s.MaxAbsDifference = round2(math.Max(math.Abs(lo), math.Abs(hi)))
	}
	return s
}

func keySet(rows []recon.AggregateRow) map[string]bool {
	out := make(map[string]bool, len(rows))
	for _, r := range rows {
		out[r.Key] = true
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
