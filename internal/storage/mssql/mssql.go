// Package mssql implements the storage.Sink interface on SQL Server via
// database/sql and the go-mssqldb driver.
package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/microsoft/go-mssqldb"

	"dataforge/internal/dataset"
	"dataforge/internal/schema"
	"dataforge/internal/storage"
)

// insertBatchSize bounds rows per statement. SQL Server caps both the rows
// in a VALUES list (1000) and the parameters per statement (2100); 100 rows
// of a 16-column schema stays under both.
const insertBatchSize = 100

type sink struct {
	db *sql.DB
}

func init() {
	storage.Register("mssql", New)
}

func New(ctx context.Context, cfg storage.Config) (storage.Sink, error) {
	db, err := sql.Open("sqlserver", cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sink{db: db}, nil
}

func (s *sink) Close() { _ = s.db.Close() }

func (s *sink) EnsureTable(ctx context.Context, ds *dataset.Dataset) error {
	table := storage.TableName(ds)
	fields := schema.Get(ds.Industry)

	// SQL Server has no CREATE TABLE IF NOT EXISTS; guard with an object
	// check instead.
	var b strings.Builder
	fmt.Fprintf(&b, "IF OBJECT_ID(N'%s', N'U') IS NULL\nCREATE TABLE %s (\n", table, quote(table))
	for i, f := range fields {
		fmt.Fprintf(&b, "  %s %s", quote(f.Name), columnType(f.Type))
		if i < len(fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(")")

	if _, err := s.db.ExecContext(ctx, b.String()); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	return nil
}

func (s *sink) InsertRecords(ctx context.Context, ds *dataset.Dataset) (int64, error) {
	fields := schema.Get(ds.Industry)
	table := storage.TableName(ds)

	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = quote(f.Name)
	}
	head := fmt.Sprintf("INSERT INTO %s (%s) VALUES ", quote(table), strings.Join(cols, ", "))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var total int64
	for start := 0; start < len(ds.Records); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(ds.Records) {
			end = len(ds.Records)
		}
		batch := ds.Records[start:end]

		var b strings.Builder
		b.WriteString(head)
		args := make([]any, 0, len(batch)*len(fields))
		p := 1
		for i, rec := range batch {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString("(")
			for j, v := range storage.RowValues(rec, fields) {
				if j > 0 {
					b.WriteString(",")
				}
				fmt.Fprintf(&b, "@p%d", p)
				args = append(args, v)
				p++
			}
			b.WriteString(")")
		}

		res, err := tx.ExecContext(ctx, b.String(), args...)
		if err != nil {
			return total, fmt.Errorf("insert into %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}

	if err := tx.Commit(); err != nil {
		return total, err
	}
	return total, nil
}

func columnType(t schema.FieldType) string {
	switch t {
	case schema.TypeNumber:
		return "FLOAT"
	case schema.TypeCurrency:
		return "NUMERIC(14,2)"
	case schema.TypeBoolean:
		return "BIT"
	default:
		return "NVARCHAR(255)"
	}
}

func quote(name string) string { return "[" + name + "]" }
