package excel

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"payrecon/domain/recon"
)

func TestWriteReport(t *testing.T) {
	report := Report{
		InvoiceAggregate: []recon.AggregateRow{
			{Key: "12345678900", Label: "ANA", Total: decimal.RequireFromString("50.00"), Rows: 2},
		},
		PayrollAggregate: []recon.AggregateRow{
			{Key: "12345678900", Label: "ANA", Total: decimal.RequireFromString("45.00"), Rows: 1},
			{Key: "98765432100", Label: "BRUNO", Total: decimal.RequireFromString("30"), Rows: 1},
		},
		Differences: []recon.ReconciliationRow{
			{
				Key: "12345678900", PayrollName: "ANA", InvoiceHolder: "ANA",
				InvoiceAmount: decimal.RequireFromString("50"),
				PayrollAmount: decimal.RequireFromString("45"),
				Difference:    decimal.RequireFromString("5"),
			},
			{
				Key: "98765432100", PayrollName: "BRUNO",
				PayrollAmount: decimal.RequireFromString("30"),
				Difference:    decimal.RequireFromString("-30"),
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetInvoiceAggregate, SheetPayrollAggregate, SheetDifferences}, f.GetSheetList())

	rows, err := f.GetRows(SheetDifferences, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, recon.DifferenceHeaders, rows[0])
	assert.Equal(t, []string{"12345678900", "ANA", "ANA", "50", "45", "5"}, rows[1])
	assert.Equal(t, []string{"98765432100", "BRUNO", "", "0", "30", "-30"}, rows[2])

	rows, err = f.GetRows(SheetPayrollAggregate, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, recon.PayrollAggregateHeaders, rows[0])

	rows, err = f.GetRows(SheetInvoiceAggregate, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, recon.InvoiceAggregateHeaders, rows[0])
}

func TestWriteReport_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, Report{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetDifferences)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
