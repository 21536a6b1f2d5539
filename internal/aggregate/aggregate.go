// Package aggregate groups canonical rows by (key, label) and sums amounts.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"payrecon/domain/recon"
)

type groupKey struct {
	key   string
	label string
}

// Aggregate sums rows sharing the exact same (Key, Label) pair. Missing
// amounts contribute zero and are counted in MissingAmounts. The result is
// sorted by key, then label.
func Aggregate(rows []recon.CanonicalRow) []recon.AggregateRow {
	index := make(map[groupKey]int, len(rows))
	out := make([]recon.AggregateRow, 0)

	for _, r := range rows {
		k := groupKey{key: r.Key, label: r.Label}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, recon.AggregateRow{Key: r.Key, Label: r.Label, Total: decimal.Zero})
		}
		out[i].Rows++
		if r.Amount.Valid {
			out[i].Total = out[i].Total.Add(r.Amount.Decimal)
		} else {
			out[i].MissingAmounts++
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// Total returns the sum of every aggregate row
func Total(rows []recon.AggregateRow) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range rows {
		sum = sum.Add(r.Total)
	}
	return sum
}

// TotalFor returns the total of the (key, label) group, false if absent
func TotalFor(rows []recon.AggregateRow, key, label string) (decimal.Decimal, bool) {
	for _, r := range rows {
		if r.Key == key && r.Label == label {
			return r.Total, true
		}
	}
	return decimal.Zero, false
}
