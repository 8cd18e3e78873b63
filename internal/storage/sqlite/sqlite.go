// Package sqlite implements the storage.Sink interface on SQLite via the
// pure-Go modernc.org driver (no cgo, so ":memory:" works in tests anywhere).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"dataforge/internal/dataset"
	"dataforge/internal/schema"
	"dataforge/internal/storage"
)

// insertBatchSize bounds rows per INSERT. SQLite's default variable limit is
// 32766 (3.32+); the widest schema has 16 columns, so 500 rows stays far
// under it.
const insertBatchSize = 500

type sink struct {
	db *sql.DB
}

func init() {
	storage.Register("sqlite", New)
}

func New(ctx context.Context, cfg storage.Config) (storage.Sink, error) {
	db, err := sql.Open("sqlite", cfg.DSN)
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
	ddl := storage.CreateTableSQL(storage.TableName(ds), schema.Get(ds.Industry), columnType, quote)
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", storage.TableName(ds), err)
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
	placeholders := "(" + strings.TrimRight(strings.Repeat("?,", len(fields)), ",") + ")"
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
		for i, rec := range batch {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(placeholders)
			args = append(args, storage.RowValues(rec, fields)...)
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
	case schema.TypeNumber, schema.TypeCurrency:
		return "REAL"
	case schema.TypeBoolean:
		return "INTEGER"
	default:
		return "TEXT"
	}
}

func quote(name string) string { return `"` + name + `"` }
