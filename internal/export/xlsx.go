// Package export renders a projected table to spreadsheet and CSV form.
package export

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/stack-insights/statement-recon/constants"
	"github.com/stack-insights/statement-recon/internal/rows"
)

// column widths tuned for typical statement content
var columnWidths = map[string]float64{
	constants.FieldDate:         12,
	constants.FieldISIN:         20,
	constants.FieldSecurityName: 40,
	constants.FieldValue:        18,
	constants.FieldSpan:         60,
	constants.FieldSerialNo:     8,
}

const defaultColumnWidth = 18

// WriteXLSX renders the table as a single-sheet workbook. The header row is
// frozen and the value column gets a thousands-separated number format.
func WriteXLSX(table rows.Table, sheetName string) ([]byte, error) {
	if sheetName == "" {
		sheetName = "Extract"
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range table.Cells {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = cellValue(v)
		}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, addr, &cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := applyLayout(f, sheetName, table.Columns, len(table.Cells)); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func applyLayout(f *excelize.File, sheet string, columns []string, nrows int) error {
	for i, c := range columns {
		w, ok := columnWidths[c]
		if !ok {
			w = defaultColumnWidth
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, w); err != nil {
			return err
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	for i, c := range columns {
		if c != constants.FieldValue || nrows == 0 {
			continue
		}
		styleID, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr("#,##0.00")})
		if err != nil {
			return err
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		first := fmt.Sprintf("%s2", name)
		last := fmt.Sprintf("%s%d", name, nrows+1)
		if err := f.SetCellStyle(sheet, first, last, styleID); err != nil {
			return err
		}
	}
	return nil
}

// cellValue maps row values onto types excelize writes natively. Numbers
// parsed during canonicalization arrive as decimals; everything else is
// written as-is so figures copied verbatim from the statement survive.
func cellValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case decimal.Decimal:
		f, _ := t.Float64()
		return f
	default:
		return v
	}
}

func strPtr(s string) *string { return &s }
