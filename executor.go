package sqlorm

import "context"

// Row is one result row keyed by column name.
type Row map[string]any

// Executor runs portable statements (? placeholders) against a shared
// connection pool. Implementations must release the connection on every
// return path and pass driver errors through unchanged.
type Executor interface {
	// Query returns up to limit rows; limit <= 0 returns all rows.
	Query(ctx context.Context, query string, args []any, limit int) ([]Row, error)
	// Execute runs a mutation and returns the affected row count.
	Execute(ctx context.Context, query string, args []any) (int64, error)
}
