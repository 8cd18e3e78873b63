// Package postgres implements the storage.Sink interface on Postgres via
// pgx v5.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dataforge/internal/dataset"
	"dataforge/internal/schema"
	"dataforge/internal/storage"
)

type sink struct {
	pool *pgxpool.Pool
}

func init() {
	storage.Register("postgres", New)
}

func New(ctx context.Context, cfg storage.Config) (storage.Sink, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &sink{pool: pool}, nil
}

func (s *sink) Close() { s.pool.Close() }

func (s *sink) EnsureTable(ctx context.Context, ds *dataset.Dataset) error {
	ddl := storage.CreateTableSQL(storage.TableName(ds), schema.Get(ds.Industry), columnType, quote)
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", storage.TableName(ds), err)
	}
	return nil
}

// InsertRecords streams all rows with COPY, the fastest bulk path pgx offers.
// The dataset is fully generated before it reaches storage, so a row-source
// over the slice is enough.
func (s *sink) InsertRecords(ctx context.Context, ds *dataset.Dataset) (int64, error) {
	fields := schema.Get(ds.Industry)

	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.Name
	}

	n, err := s.pool.CopyFrom(
		ctx,
		pgx.Identifier{storage.TableName(ds)},
		cols,
		pgx.CopyFromSlice(len(ds.Records), func(i int) ([]any, error) {
			return storage.RowValues(ds.Records[i], fields), nil
		}),
	)
	if err != nil {
		return n, fmt.Errorf("copy into %s: %w", storage.TableName(ds), err)
	}
	return n, nil
}

func columnType(t schema.FieldType) string {
	switch t {
	case schema.TypeNumber:
		return "DOUBLE PRECISION"
	case schema.TypeCurrency:
		return "NUMERIC(14,2)"
	case schema.TypeBoolean:
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}

func quote(name string) string { return `"` + name + `"` }
