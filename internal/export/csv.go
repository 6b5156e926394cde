package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/stack-insights/statement-recon/internal/rows"
)

// WriteCSV renders the table with a header line. Values are stringified the
// same way the rest of the pipeline prints them, so decimals keep their
// exact textual form.
func WriteCSV(table rows.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(table.Columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(table.Columns))
	for _, row := range table.Cells {
		for i, v := range row {
			record[i] = rows.Stringify(v)
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
