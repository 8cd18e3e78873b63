// Package export serializes a generated dataset into the supported output
// formats. All writers emit columns in schema order, and render nil values
// as empty (CSV/XLSX), null (JSON), or NULL (SQL).
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"dataforge/internal/dataset"
)

// WriteCSV writes a header row followed by one line per record.
func WriteCSV(w io.Writer, ds *dataset.Dataset) error {
	cw := csv.NewWriter(w)
	cols := ds.Columns()

	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}

	row := make([]string, len(cols))
	for i, rec := range ds.Records {
		for j, col := range cols {
			row[j] = cellString(rec[col])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// cellString renders a record value for CSV and XLSX cells. Nil becomes the
// empty string.
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
