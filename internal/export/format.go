package export

import (
	"fmt"
	"io"

	"dataforge/internal/dataset"
)

// Formats lists the supported export formats.
var Formats = []string{"csv", "json", "sql", "xlsx"}

// ValidFormat reports whether name is a supported format.
func ValidFormat(name string) bool {
	for _, f := range Formats {
		if f == name {
			return true
		}
	}
	return false
}

// Write dispatches to the writer for format. The table and dialect arguments
// only apply to "sql"; empty values select a table named after the industry
// and the postgres dialect.
func Write(w io.Writer, ds *dataset.Dataset, format, table string, dialect Dialect) error {
	switch format {
	case "csv":
		return WriteCSV(w, ds)
	case "json":
		return WriteJSON(w, ds)
	case "sql":
		if dialect == "" {
			dialect = DialectPostgres
		}
		return WriteSQL(w, ds, table, dialect)
	case "xlsx":
		return WriteXLSX(w, ds)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
