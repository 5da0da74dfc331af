package sqlorm

import (
	"context"

	"github.com/tinywasm/fmt"
)

// DB runs model operations through an Executor.
// Consumers instantiate it via New().
type DB struct {
	logSink
	exec Executor
}

// New creates a new DB instance.
func New(exec Executor) *DB {
	return &DB{exec: exec}
}

// Find loads the record whose primary key equals pk.
// It returns nil and no error when no row matches.
func (db *DB) Find(ctx context.Context, m *Model, pk any) (*Record, error) {
	if m == nil || m.schema == nil {
		return nil, ErrNilModel
	}
	p := findPlan(m, pk)
	if err := validate(p); err != nil {
		return nil, err
	}
	db.log("SQL:", p.Query)
	rows, err := db.exec.Query(ctx, p.Query, p.Args, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return m.fromRow(rows[0]), nil
}

// Save inserts the record, filling missing fields from their defaults.
// It returns the affected row count; a count other than 1 is logged as an
// anomaly but is not an error.
func (db *DB) Save(ctx context.Context, r *Record) (int64, error) {
	return db.mutate(ctx, ActionCreate, r)
}

// Update writes every ordinary field of the record to the row with its
// primary key. A model with no ordinary fields yields a statement with an
// empty set list; see Schema.Settable.
func (db *DB) Update(ctx context.Context, r *Record) (int64, error) {
	return db.mutate(ctx, ActionUpdate, r)
}

// Delete removes the row with the record's primary key.
func (db *DB) Delete(ctx context.Context, r *Record) (int64, error) {
	return db.mutate(ctx, ActionDelete, r)
}

func (db *DB) mutate(ctx context.Context, action Action, r *Record) (int64, error) {
	if _, err := r.schema(); err != nil {
		return 0, err
	}
	p := plan(action, r)
	if err := validate(p); err != nil {
		return 0, err
	}
	db.log("SQL:", p.Query)
	affected, err := db.exec.Execute(ctx, p.Query, p.Args)
	if err != nil {
		return affected, err
	}
	if IsAnomaly(affected) {
		db.log(fmt.Sprintf("failed to %s record: affected rows: %d", action.String(), affected))
	}
	return affected, nil
}

// IsAnomaly reports whether a single-row mutation affected an unexpected
// number of rows.
func IsAnomaly(affected int64) bool {
	return affected != 1
}

// RawExecutor returns the underlying executor instance.
func (db *DB) RawExecutor() Executor {
	return db.exec
}
