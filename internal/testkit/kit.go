// Package testkit builds in-memory workbooks for tests and demo data.
package testkit

import (
	"bytes"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// Sheet is one named sheet of a fixture workbook. Cells may be strings,
// numbers or nil for a blank cell.
type Sheet struct {
	Name string
	Rows [][]interface{}
}

// StoredNumber is a numeric cell written verbatim as the sheet XML value,
// the way spreadsheet software stores doubles ("0.10000000000000001").
type StoredNumber string

// Workbook is a fixture workbook under construction
type Workbook struct {
	sheets []Sheet
}

// NewWorkbook creates an empty fixture workbook
func NewWorkbook() *Workbook {
	return &Workbook{}
}

// Sheet appends a sheet with the given rows
func (w *Workbook) Sheet(name string, rows ...[]interface{}) *Workbook {
	w.sheets = append(w.sheets, Sheet{Name: name, Rows: rows})
	return w
}

// Sheets returns the sheets added so far
func (w *Workbook) Sheets() []Sheet {
	return w.sheets
}

// Bytes renders the workbook as xlsx
func (w *Workbook) Bytes() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if len(w.sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	for i, s := range w.sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", s.Name, err)
		}
		for r := range s.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(s.Name, cell, &s.Rows[r]); err != nil {
				return nil, fmt.Errorf("failed to write %s row %d: %w", s.Name, r+1, err)
			}
			for c, v := range s.Rows[r] {
				stored, ok := v.(StoredNumber)
				if !ok {
					continue
				}
				name, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellDefault(s.Name, name, string(stored)); err != nil {
					return nil, fmt.Errorf("failed to write %s cell %s: %w", s.Name, name, err)
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// MustBytes is Bytes for fixtures that cannot fail
func (w *Workbook) MustBytes() []byte {
	b, err := w.Bytes()
	if err != nil {
		panic(err)
	}
	return b
}

// WriteFile renders the workbook to path
func (w *Workbook) WriteFile(path string) error {
	b, err := w.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Row is shorthand for a fixture row
func Row(cells ...interface{}) []interface{} {
	return cells
}

// InvoiceHeader is the column layout of a typical invoice extract
func InvoiceHeader() []interface{} {
	return Row("CPF", "Titular", "Beneficiário", "Parte do Segurado")
}

// PayrollHeader is the column layout of a typical payroll extract
func PayrollHeader() []interface{} {
	return Row("CPF", "Nome Funcionário", "Valor Total")
}

// ScenarioWorkbook is the canonical two-sheet fixture: a titled invoice
// sheet with its header on the second row and a payroll sheet with its
// header on the first. Ana differs by 5.00; Bruno is payroll-only;
// Carla matches exactly.
func ScenarioWorkbook() *Workbook {
	return NewWorkbook().
		Sheet("FATURA",
			Row("Fatura mensal - competência 03/2024"),
			InvoiceHeader(),
			Row("123.456.789-00", "Ana", "Ana", 30.00),
			Row("123.456.789-00", "Ana", "Pedro", 20.00),
			Row("111.222.333-44", "Carla", "Carla", 12.5),
		).
		Sheet("FOLHA",
			PayrollHeader(),
			Row("12345678900", "Ana", 45.00),
			Row("98765432100", "Bruno", 30.00),
			Row("11122233344", "Carla", 12.5),
		)
}
