package export

import (
	"encoding/json"
	"fmt"
	"io"

	"dataforge/internal/dataset"
)

// WriteJSON writes the dataset as a pretty-printed array of objects. Keys
// appear in schema order, not the map iteration order encoding/json would
// give for a plain map.
func WriteJSON(w io.Writer, ds *dataset.Dataset) error {
	cols := ds.Columns()

	if _, err := io.WriteString(w, "[\n"); err != nil {
		return err
	}

	for i, rec := range ds.Records {
		if i > 0 {
			if _, err := io.WriteString(w, ",\n"); err != nil {
				return err
			}
		}
		if err := writeObject(w, cols, rec); err != nil {
			return fmt.Errorf("json row %d: %w", i, err)
		}
	}

	_, err := io.WriteString(w, "\n]\n")
	return err
}

func writeObject(w io.Writer, cols []string, rec dataset.Record) error {
	if _, err := io.WriteString(w, "  {"); err != nil {
		return err
	}
	for j, col := range cols {
		if j > 0 {
			if _, err := io.WriteString(w, ", "); err != nil {
				return err
			}
		}
		key, err := json.Marshal(col)
		if err != nil {
			return err
		}
		val, err := json.Marshal(rec[col])
		if err != nil {
			return fmt.Errorf("field %s: %w", col, err)
		}
		if _, err := fmt.Fprintf(w, "%s: %s", key, val); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}")
	return err
}
