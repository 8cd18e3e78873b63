package storage

import (
	"strings"

	"dataforge/internal/dataset"
	"dataforge/internal/schema"
)

// CreateTableSQL builds a CREATE TABLE IF NOT EXISTS statement for fields.
// typeFor maps a semantic field type to the backend's column type; quote
// quotes an identifier for the backend.
func CreateTableSQL(table string, fields []schema.Field, typeFor func(schema.FieldType) string, quote func(string) string) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(quote(table))
	b.WriteString(" (\n")
	for i, f := range fields {
		b.WriteString("  ")
		b.WriteString(quote(f.Name))
		b.WriteString(" ")
		b.WriteString(typeFor(f.Type))
		if i < len(fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(")")
	return b.String()
}

// RowValues extracts record values in field order, as driver-ready args.
// Missing and nil fields become nil (SQL NULL).
func RowValues(rec dataset.Record, fields []schema.Field) []any {
	vals := make([]any, len(fields))
	for i, f := range fields {
		vals[i] = rec[f.Name]
	}
	return vals
}
