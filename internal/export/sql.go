package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"dataforge/internal/dataset"
	"dataforge/internal/schema"
)

// Dialect selects the SQL flavor of the generated script.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
	DialectMSSQL    Dialect = "mssql"
)

// insertBatchSize bounds rows per INSERT statement. SQL Server rejects more
// than 1000 rows in a single VALUES list; the other dialects just benefit
// from bounded statement size.
const insertBatchSize = 500

// WriteSQL writes a self-contained script: one CREATE TABLE derived from the
// dataset's schema, then batched multi-row INSERTs with literal values.
func WriteSQL(w io.Writer, ds *dataset.Dataset, table string, dialect Dialect) error {
	switch dialect {
	case DialectPostgres, DialectSQLite, DialectMSSQL:
	default:
		return fmt.Errorf("unsupported sql dialect %q", dialect)
	}
	if table == "" {
		table = ds.Industry.String() + "_data"
	}

	fields := schema.Get(ds.Industry)

	if err := writeCreateTable(w, table, fields, dialect); err != nil {
		return err
	}

	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = quoteIdent(f.Name, dialect)
	}
	head := fmt.Sprintf("INSERT INTO %s (%s) VALUES\n", quoteIdent(table, dialect), strings.Join(cols, ", "))

	for start := 0; start < len(ds.Records); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(ds.Records) {
			end = len(ds.Records)
		}
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		for i, rec := range ds.Records[start:end] {
			sep := ",\n"
			if start+i == end-1 {
				sep = ";\n"
			}
			if err := writeValuesRow(w, fields, rec, dialect, sep); err != nil {
				return fmt.Errorf("sql row %d: %w", start+i, err)
			}
		}
	}
	return nil
}

func writeCreateTable(w io.Writer, table string, fields []schema.Field, dialect Dialect) error {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", quoteIdent(table, dialect))
	for i, f := range fields {
		fmt.Fprintf(&b, "  %s %s", quoteIdent(f.Name, dialect), columnType(f.Type, dialect))
		if i < len(fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(");\n\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeValuesRow(w io.Writer, fields []schema.Field, rec dataset.Record, dialect Dialect, sep string) error {
	var b strings.Builder
	b.WriteString("  (")
	for j, f := range fields {
		if j > 0 {
			b.WriteString(", ")
		}
		b.WriteString(sqlLiteral(rec[f.Name], dialect))
	}
	b.WriteString(")")
	b.WriteString(sep)
	_, err := io.WriteString(w, b.String())
	return err
}

// columnType maps a semantic field type to a column type per dialect.
func columnType(t schema.FieldType, dialect Dialect) string {
	switch t {
	case schema.TypeNumber:
		if dialect == DialectSQLite {
			return "REAL"
		}
		return "DOUBLE PRECISION"
	case schema.TypeCurrency:
		if dialect == DialectSQLite {
			return "REAL"
		}
		return "NUMERIC(14,2)"
	case schema.TypeBoolean:
		switch dialect {
		case DialectMSSQL:
			return "BIT"
		case DialectSQLite:
			return "INTEGER"
		default:
			return "BOOLEAN"
		}
	default:
		// IDs, strings, emails, addresses and formatted dates all travel as
		// text. Generated date fields are preformatted strings, and TEXT
		// keeps the script portable.
		if dialect == DialectMSSQL {
			return "NVARCHAR(255)"
		}
		return "TEXT"
	}
}

// sqlLiteral renders one value as a SQL literal. Strings double embedded
// single quotes; nil becomes NULL.
func sqlLiteral(v any, dialect Dialect) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(t, "'", "''") + "'"
	case bool:
		if dialect == DialectPostgres {
			if t {
				return "TRUE"
			}
			return "FALSE"
		}
		if t {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return "'" + strings.ReplaceAll(fmt.Sprint(t), "'", "''") + "'"
	}
}

func quoteIdent(name string, dialect Dialect) string {
	switch dialect {
	case DialectMSSQL:
		return "[" + name + "]"
	default:
		return `"` + name + `"`
	}
}
