package rows

import (
	"sort"

	"github.com/stack-insights/statement-recon/constants"
)

// Table is the projected, export-ready view of a batch: a stable column order
// and row-major cells (nil where a row lacks a field).
type Table struct {
	Columns []string
	Cells   [][]any
}

// Project orders every observed field into the export schema: the fixed
// leading columns, then the audit span, then all remaining observed fields in
// lexicographic order, with the serial number last. No field present in any
// row is ever dropped.
func Project(in []Row) Table {
	fixed := map[string]struct{}{
		constants.FieldSpan:     {},
		constants.FieldSerialNo: {},
	}
	for _, c := range constants.BaseColumns {
		fixed[c] = struct{}{}
	}

	extraSet := make(map[string]struct{})
	for _, r := range in {
		for k := range r {
			if _, skip := fixed[k]; !skip {
				extraSet[k] = struct{}{}
			}
		}
	}
	extras := make([]string, 0, len(extraSet))
	for k := range extraSet {
		extras = append(extras, k)
	}
	sort.Strings(extras)

	cols := make([]string, 0, len(constants.BaseColumns)+len(extras)+2)
	cols = append(cols, constants.BaseColumns...)
	cols = append(cols, constants.FieldSpan)
	cols = append(cols, extras...)
	cols = append(cols, constants.FieldSerialNo)

	cells := make([][]any, 0, len(in))
	for _, r := range in {
		row := make([]any, len(cols))
		for i, c := range cols {
			if v, ok := r[c]; ok {
				row[i] = v
			}
		}
		cells = append(cells, row)
	}
	return Table{Columns: cols, Cells: cells}
}
