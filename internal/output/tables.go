package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"payrecon/domain/recon"
	"payrecon/internal/reconcile"
)

// DifferencesTable renders reconciliation rows with the export column names
func DifferencesTable(rows []recon.ReconciliationRow) Data {
	data := Data{
		Title:        "Differences",
		Headers:      recon.DifferenceHeaders,
		RightAligned: []int{3, 4, 5},
		Rows:         make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		data.Rows = append(data.Rows, []string{
			r.Key, r.PayrollName, r.InvoiceHolder,
			Money(r.InvoiceAmount), Money(r.PayrollAmount), Money(r.Difference),
		})
	}
	return data
}

// AggregateTable renders one source's aggregate
func AggregateTable(kind recon.SourceKind, rows []recon.AggregateRow) Data {
	headers := recon.InvoiceAggregateHeaders
	title := "Invoice aggregate"
	if kind == recon.SourcePayroll {
		headers = recon.PayrollAggregateHeaders
		title = "Payroll aggregate"
	}
	data := Data{Title: title, Headers: headers, RightAligned: []int{2}}
	for _, r := range rows {
		data.Rows = append(data.Rows, []string{r.Key, r.Label, Money(r.Total)})
	}
	return data
}

// SummaryTable renders a summary as property/value pairs
func SummaryTable(s reconcile.Summary) Data {
	return Data{
		Title:        "Summary",
		Headers:      []string{"Property", "Value"},
		RightAligned: []int{1},
		Rows: [][]string{
			{"Keys", strconv.Itoa(s.Keys)},
			{"Matched", strconv.Itoa(s.Matched)},
			{"Invoice only", strconv.Itoa(s.InvoiceOnly)},
			{"Payroll only", strconv.Itoa(s.PayrollOnly)},
			{"Mismatched", strconv.Itoa(s.Mismatched)},
			{"Invoice total", Money(s.InvoiceTotal)},
			{"Payroll total", Money(s.PayrollTotal)},
			{"Net difference", Money(s.NetDifference)},
			{"Mean difference", fmt.Sprintf("%.2f", s.MeanDifference)},
			{"Median difference", fmt.Sprintf("%.2f", s.MedianDifference)},
			{"Max abs difference", fmt.Sprintf("%.2f", s.MaxAbsDifference)},
		},
	}
}

// SynonymsTable lists every accepted label per source and role
func SynonymsTable(m recon.SynonymMap) Data {
	data := Data{Title: "Column synonyms", Headers: []string{"Source", "Role", "Accepted labels"}}
	for _, kind := range []recon.SourceKind{recon.SourceInvoice, recon.SourcePayroll} {
		for _, role := range recon.Roles {
			variants, ok := m[kind][role]
			if !ok {
				continue
			}
			data.Rows = append(data.Rows, []string{string(kind), string(role), strings.Join(variants, " | ")})
		}
	}
	return data
}

// Money formats an amount with two decimals
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
