package recon

import (
	"github.com/shopspring/decimal"
)

// SourceKind identifies which extract a table came from
type SourceKind string

const (
	SourceInvoice SourceKind = "invoice"
	SourcePayroll SourceKind = "payroll"
)

// Role is the logical purpose of a column
type Role string

const (
	RoleKey    Role = "key"
	RoleName   Role = "name"
	RoleAmount Role = "amount"
)

// Roles lists every logical role in canonical order.
var Roles = []Role{RoleKey, RoleName, RoleAmount}

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleKey, RoleName, RoleAmount:
		return true
	}
	return false
}

// RoleSynonyms maps each role to its accepted normalized label variants,
// earlier entries taking precedence.
type RoleSynonyms map[Role][]string

// SynonymMap holds the synonym table of every source kind.
type SynonymMap map[SourceKind]RoleSynonyms

// Grid is a raw, headerless sheet. Cells past the end of a row are absent
// and read as the empty string.
type Grid [][]string

// Cell returns the value at (row, col) or "" when absent.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return ""
	}
	return g[row][col]
}

// WithHeaderAt re-reads the grid using row i as header.
func (g Grid) WithHeaderAt(i int) Table {
	if i < 0 || i >= len(g) {
		return Table{}
	}
	header := make([]string, len(g[i]))
	copy(header, g[i])
	return Table{Header: header, Rows: g[i+1:]}
}

// Table is a sheet with an identified header row. Labels may be empty or
// repeated; columns are addressed by index.
type Table struct {
	Header []string
	Rows   [][]string
}

// Value returns the cell of row r in column col, "" when absent.
func (t Table) Value(r, col int) string {
	if r < 0 || r >= len(t.Rows) || col < 0 || col >= len(t.Rows[r]) {
		return ""
	}
	return t.Rows[r][col]
}

// Column is the physical column chosen for a role.
type Column struct {
	Index int    `json:"index"`
	Label string `json:"label"`
}

// Resolution maps each role to the column chosen for it.
type Resolution map[Role]Column

// CanonicalRow is one source row reduced to comparable fields.
type CanonicalRow struct {
	Key    string
	Label  string
	Amount decimal.NullDecimal
}

// AggregateRow is the sum of all rows sharing (Key, Label).
type AggregateRow struct {
	Key            string          `json:"key"`
	Label          string          `json:"label"`
	Total          decimal.Decimal `json:"total"`
	Rows           int             `json:"rows"`
	MissingAmounts int             `json:"missing_amounts"`
}

// ReconciliationRow is one key joined across both aggregates.
// Difference is always InvoiceAmount - PayrollAmount.
type ReconciliationRow struct {
	Key           string          `json:"key"`
	PayrollName   string          `json:"payroll_name"`
	InvoiceHolder string          `json:"invoice_holder"`
	InvoiceAmount decimal.Decimal `json:"invoice_amount"`
	PayrollAmount decimal.Decimal `json:"payroll_amount"`
	Difference    decimal.Decimal `json:"difference"`
}

// Column headers of the exported and displayed tables.
var (
	DifferenceHeaders       = []string{"key", "payroll_name", "invoice_holder", "invoice_amount", "payroll_amount", "difference"}
	InvoiceAggregateHeaders = []string{"key", "invoice_holder", "invoice_amount"}
	PayrollAggregateHeaders = []string{"key", "payroll_name", "payroll_amount"}
)
