// Package reconcile joins the invoice and payroll aggregates on the
// identifying key and reports the per-key difference.
package reconcile

import (
	"slices"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"payrecon/domain/recon"
)

// Options controls the shape of the reconciliation output
type Options struct {
	// DropZeroDifference removes keys whose amounts agree
	DropZeroDifference bool
}

// side is one aggregate collapsed to a single entry per key
type side struct {
	labels []string
	total  decimal.Decimal
}

// Reconcile full outer-joins invoice and payroll on Key. A key absent from
// one side gets a zero amount and an empty name there. Several labels under
// one key are collapsed into a single row: amounts summed, names joined in
// sorted order. Difference is invoice minus payroll. Rows are sorted by key.
func Reconcile(invoice, payroll []recon.AggregateRow, opts Options) []recon.ReconciliationRow {
	inv := collapse(invoice)
	pay := collapse(payroll)

	keys := make([]string, 0, len(inv)+len(pay))
	for k := range inv {
		keys = append(keys, k)
	}
	for k := range pay {
		if _, ok := inv[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := make([]recon.ReconciliationRow, 0, len(keys))
	for _, k := range keys {
		i, p := inv[k], pay[k]
		row := recon.ReconciliationRow{
			Key:           k,
			PayrollName:   joinLabels(p.labels),
			InvoiceHolder: joinLabels(i.labels),
			InvoiceAmount: i.total,
			PayrollAmount: p.total,
		}
		row.Difference = row.InvoiceAmount.Sub(row.PayrollAmount)

		if opts.DropZeroDifference && row.Difference.IsZero() {
			continue
		}
		out = append(out, row)
	}
	return out
}

func collapse(rows []recon.AggregateRow) map[string]side {
	out := make(map[string]side, len(rows))
	for _, r := range rows {
		s := out[r.Key]
		s.total = s.total.Add(r.Total)
		if r.Label != "" && !slices.Contains(s.labels, r.Label) {
			s.labels = append(s.labels, r.Label)
		}
		out[r.Key] = s
	}
	return out
}

func joinLabels(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	sorted := make([]string, len(labels))
	copy(sorted, labels)
	sort.Strings(sorted)
	return strings.Join(sorted, " / ")
}
