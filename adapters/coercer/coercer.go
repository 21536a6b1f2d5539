package coercer

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"payrecon/domain/recon"
	"payrecon/internal/normalize"
)

// FieldCoercer turns raw cells into canonical keys, labels and amounts
type FieldCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	NormalizeNames bool `json:"normalize_names"` // Whether name fields go through normalize.Normalize
	KeyWidth       int  `json:"key_width"`       // Left-pad keys with zeros to this width, 0 disables
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NormalizeNames: true,
		KeyWidth:       0,
	}
}

// NewFieldCoercer creates a coercer with the given config
func NewFieldCoercer(config CoercionConfig) *FieldCoercer {
	return &FieldCoercer{config: config}
}

// CoerceKey keeps only the digits of raw. A key without digits yields ""
// and is still a valid key.
func (c *FieldCoercer) CoerceKey(raw string) string {
	raw = strings.TrimSpace(raw)

	// Numeric cells may be stored in exponent form (1.23456789E+10)
	if strings.ContainsAny(raw, "eE") {
		if d, err := decimal.NewFromString(raw); err == nil && d.IsInteger() && !d.IsNegative() {
			raw = d.String()
		}
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	key := b.String()

	if c.config.KeyWidth > 0 && key != "" && len(key) < c.config.KeyWidth {
		key = strings.Repeat("0", c.config.KeyWidth-len(key)) + key
	}
	return key
}

// CoerceAmount parses raw as a decimal number. Blank or unparseable input
// yields an invalid NullDecimal rather than an error.
//
// Spreadsheets store numbers as doubles, often written with 17 significant
// digits ("0.10000000000000001"). Those are read as float64 and kept at
// their shortest round-trip digits so 0.1 typed in one sheet equals 0.1
// typed in the other.
func (c *FieldCoercer) CoerceAmount(raw string) decimal.NullDecimal {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return decimal.NullDecimal{}
	}
	if f, err := strconv.ParseFloat(clean, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return decimal.NewNullDecimal(decimal.NewFromFloat(f))
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// CoerceLabel canonicalizes a name field
func (c *FieldCoercer) CoerceLabel(raw string) string {
	if c.config.NormalizeNames {
		return normalize.Normalize(raw)
	}
	return strings.TrimSpace(raw)
}

// CoerceTable converts every data row of table into a CanonicalRow using the
// columns chosen in res. Rows whose cells are all blank are skipped; they
// are spacing, not records.
func (c *FieldCoercer) CoerceTable(table recon.Table, res recon.Resolution) []recon.CanonicalRow {
	keyCol := res[recon.RoleKey].Index
	nameCol := res[recon.RoleName].Index
	amountCol := res[recon.RoleAmount].Index

	rows := make([]recon.CanonicalRow, 0, len(table.Rows))
	for i, row := range table.Rows {
		if isBlank(row) {
			continue
		}
		rows = append(rows, recon.CanonicalRow{
			Key:    c.CoerceKey(table.Value(i, keyCol)),
			Label:  c.CoerceLabel(table.Value(i, nameCol)),
			Amount: c.CoerceAmount(table.Value(i, amountCol)),
		})
	}
	return rows
}

// CountGaps returns how many rows carry no usable amount
func CountGaps(rows []recon.CanonicalRow) int {
	n := 0
	for _, r := range rows {
		if !r.Amount.Valid {
			n++
		}
	}
	return n
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
