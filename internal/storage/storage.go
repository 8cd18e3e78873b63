// Package storage persists generated datasets into relational databases.
// Backends register themselves with the factory; callers pick one by kind.
package storage

import (
	"context"
	"fmt"
	"sync"

	"dataforge/internal/dataset"
)

// Config is the minimal configuration needed to create a sink.
//
// Edge cases:
//   - Kind must be non-empty and must match a registered backend kind.
//   - DSN is passed through to the backend factory; validation is
//     backend-specific.
type Config struct {
	Kind string
	DSN  string
}

// Sink is a backend-agnostic destination for one dataset.
//
// IMPORTANT: the interface is intentionally minimal. Each backend implements
// the semantics in its own idiomatic way (pgx batches, database/sql prepared
// statements, etc).
type Sink interface {
	// EnsureTable creates the dataset's table if it does not exist. The
	// table name and column types derive from the dataset's schema.
	EnsureTable(ctx context.Context, ds *dataset.Dataset) error

	// InsertRecords bulk-inserts all records and returns the number of rows
	// written. EnsureTable must have been called first.
	InsertRecords(ctx context.Context, ds *dataset.Dataset) (int64, error)

	// Close releases backend resources. Treat Close as "call once".
	Close()
}

type factory func(ctx context.Context, cfg Config) (Sink, error)

var (
	mu        sync.RWMutex
	factories = map[string]factory{}
)

// Register registers a sink backend under a kind (e.g. "postgres").
//
// When to use:
//   - Call Register from an init() function in a backend package.
//
// Panics:
//   - If kind is empty, f is nil, or kind is already registered. Failing
//     fast avoids ambiguous backend selection.
func Register(kind string, f factory) {
	mu.Lock()
	defer mu.Unlock()

	if kind == "" {
		panic("storage: Register called with empty kind")
	}
	if f == nil {
		panic("storage: Register called with nil factory")
	}
	if _, exists := factories[kind]; exists {
		panic(fmt.Sprintf("storage: factory already registered for kind=%q", kind))
	}

	factories[kind] = f
}

// New constructs a Sink using the registered backend factory.
//
// Errors:
//   - If cfg.Kind is empty or not registered.
//   - Whatever error the registered factory returns.
func New(ctx context.Context, cfg Config) (Sink, error) {
	if cfg.Kind == "" {
		return nil, fmt.Errorf("storage: missing Kind")
	}

	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("storage: unsupported kind %q", cfg.Kind)
	}
	return f(ctx, cfg)
}

// Kinds returns the registered backend kinds, for error messages and CLI
// help text.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()

	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	return kinds
}

// TableName is the default table for a dataset, e.g. "healthcare_data".
func TableName(ds *dataset.Dataset) string {
	return ds.Industry.String() + "_data"
}
