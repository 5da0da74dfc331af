//go:build !wasm

package sqlorm

import (
	"context"
	"database/sql"
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/jmoiron/sqlx"
	"github.com/tinywasm/fmt"
)

const rebindCacheSize = 512

var _ Executor = (*Pool)(nil)

// Pool is the Executor backed by a database/sql connection pool.
// It is safe for concurrent use.
type Pool struct {
	logSink
	db       *sqlx.DB
	bindType int

	mu      sync.Mutex
	rebound *lru.Cache
}

// Open creates the connection pool described by cfg and checks that the
// database is reachable. Call Close at shutdown.
func Open(ctx context.Context, cfg Config) (_ *Pool, rerr error) {
	cfg = cfg.withDefaults()
	db, err := sqlx.Open(cfg.Driver, cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Err(err, "opening database pool")
	}
	// Close the pool if it never becomes usable.
	defer func() {
		if rerr != nil {
			db.Close()
		}
	}()

	db.SetMaxOpenConns(cfg.MaxSize)
	db.SetMaxIdleConns(cfg.MinSize)
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Err(err, "connecting to database")
	}
	return NewPool(db), nil
}

// NewPool wraps an open handle. The driver name recorded on db selects the
// placeholder syntax statements are rebound to.
func NewPool(db *sqlx.DB) *Pool {
	return &Pool{
		db:       db,
		bindType: sqlx.BindType(db.DriverName()),
		rebound:  lru.New(rebindCacheSize),
	}
}

// Close releases every pooled connection.
func (p *Pool) Close() error {
	return p.db.Close()
}

// Stats reports the pool's connection counts.
func (p *Pool) Stats() sql.DBStats {
	return p.db.Stats()
}

// rebind translates ? placeholders to the driver's syntax.
func (p *Pool) rebind(query string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if q, ok := p.rebound.Get(query); ok {
		return q.(string)
	}
	q := sqlx.Rebind(p.bindType, query)
	p.rebound.Add(query, q)
	return q
}

// Query implements Executor.
func (p *Pool) Query(ctx context.Context, query string, args []any, limit int) ([]Row, error) {
	conn, err := p.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryxContext(ctx, p.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for (limit <= 0 || len(out) < limit) && rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		out = append(out, normalize(row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	p.log("rows returned:", len(out))
	return out, nil
}

// Execute implements Executor.
func (p *Pool) Execute(ctx context.Context, query string, args []any) (int64, error) {
	conn, err := p.db.Connx(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, p.rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// normalize turns driver byte slices into strings. MySQL returns text
// columns as []byte when scanning into interface values.
func normalize(row map[string]any) Row {
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
		}
	}
	return Row(row)
}
