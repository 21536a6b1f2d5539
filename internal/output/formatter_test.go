package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payrecon/domain/recon"
	"payrecon/internal/reconcile"
)

func sampleRows() []recon.ReconciliationRow {
	return []recon.ReconciliationRow{
		{
			Key: "12345678900", PayrollName: "ANA", InvoiceHolder: "ANA",
			InvoiceAmount: decimal.RequireFromString("50"),
			PayrollAmount: decimal.RequireFromString("45"),
			Difference:    decimal.RequireFromString("5"),
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"", "", false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormat_Explicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(FormatTable).Format(&buf, []Data{DifferencesTable(sampleRows()), SummaryTable(reconcile.Summary{Keys: 1})})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Differences")
	assert.Contains(t, out, "12345678900")
	assert.Contains(t, out, "50.00")
	assert.Contains(t, out, "5.00")
	assert.Contains(t, out, "Summary")
	assert.Contains(t, strings.ToUpper(out), "PAYROLL")
}

func TestTableFormatter_FallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, map[string]int{"keys": 2}))
	assert.JSONEq(t, `{"keys":2}`, buf.String())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, sampleRows()))
	assert.Contains(t, buf.String(), `"payroll_name": "ANA"`)
	assert.Contains(t, buf.String(), `"difference": "5"`)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, map[string][]string{"key": {"CPF"}}))
	assert.Equal(t, "key:\n- CPF\n", buf.String())
}

func TestAggregateTable(t *testing.T) {
	rows := []recon.AggregateRow{{Key: "1", Label: "ANA", Total: decimal.RequireFromString("10.5")}}

	inv := AggregateTable(recon.SourceInvoice, rows)
	assert.Equal(t, recon.InvoiceAggregateHeaders, inv.Headers)
	assert.Equal(t, [][]string{{"1", "ANA", "10.50"}}, inv.Rows)

	pay := AggregateTable(recon.SourcePayroll, rows)
	assert.Equal(t, recon.PayrollAggregateHeaders, pay.Headers)
}

func TestSynonymsTable(t *testing.T) {
	m := recon.SynonymMap{
		recon.SourcePayroll: {recon.RoleKey: {"CPF"}, recon.RoleAmount: {"VALOR TOTAL", "VALOR"}},
	}
	data := SynonymsTable(m)
	assert.Equal(t, [][]string{
		{"payroll", "key", "CPF"},
		{"payroll", "amount", "VALOR TOTAL | VALOR"},
	}, data.Rows)
}
