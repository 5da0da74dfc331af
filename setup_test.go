package sqlorm_test

import (
	"context"
	"errors"
	"strings"

	"github.com/tinywasm/sqlorm"
)

// MockExecutor captures execution calls.
type MockExecutor struct {
	ExecutedQueries []string
	ExecutedArgs    [][]any
	Limits          []int
	ReturnRows      []sqlorm.Row
	ReturnQueryErr  error
	ReturnAffected  int64
	ReturnExecErr   error
}

func (m *MockExecutor) Query(ctx context.Context, query string, args []any, limit int) ([]sqlorm.Row, error) {
	m.ExecutedQueries = append(m.ExecutedQueries, query)
	m.ExecutedArgs = append(m.ExecutedArgs, args)
	m.Limits = append(m.Limits, limit)
	return m.ReturnRows, m.ReturnQueryErr
}

func (m *MockExecutor) Execute(ctx context.Context, query string, args []any) (int64, error) {
	m.ExecutedQueries = append(m.ExecutedQueries, query)
	m.ExecutedArgs = append(m.ExecutedArgs, args)
	return m.ReturnAffected, m.ReturnExecErr
}

var errDuplicateEntry = errors.New("duplicate entry for primary key")

// MemExecutor stores rows of a single table in memory. It reads column
// order out of the statement text, so it only agrees with the caller when
// templates and arguments line up.
type MemExecutor struct {
	pk   string
	rows map[any]sqlorm.Row
}

func NewMemExecutor(m *sqlorm.Model) *MemExecutor {
	return &MemExecutor{pk: m.Schema().PrimaryKey(), rows: make(map[any]sqlorm.Row)}
}

func (m *MemExecutor) Query(ctx context.Context, query string, args []any, limit int) ([]sqlorm.Row, error) {
	cols := splitColumns(between(query, "select ", " from"))
	row, ok := m.rows[args[0]]
	if !ok {
		return nil, nil
	}
	out := make(sqlorm.Row, len(cols))
	for _, c := range cols {
		out[c] = row[c]
	}
	return []sqlorm.Row{out}, nil
}

func (m *MemExecutor) Execute(ctx context.Context, query string, args []any) (int64, error) {
	switch {
	case strings.HasPrefix(query, "insert"):
		row := zip(splitColumns(between(query, "(", ")")), args)
		key := row[m.pk]
		if _, ok := m.rows[key]; ok {
			return 0, errDuplicateEntry
		}
		m.rows[key] = row
		return 1, nil
	case strings.HasPrefix(query, "update"):
		var cols []string
		for _, set := range splitColumns(between(query, " set ", " where")) {
			cols = append(cols, strings.TrimSuffix(set, " = ?"))
		}
		key := args[len(args)-1]
		row, ok := m.rows[key]
		if !ok {
			return 0, nil
		}
		for c, v := range zip(cols, args) {
			row[c] = v
		}
		return 1, nil
	case strings.HasPrefix(query, "delete"):
		if _, ok := m.rows[args[0]]; !ok {
			return 0, nil
		}
		delete(m.rows, args[0])
		return 1, nil
	}
	return 0, errors.New("unsupported statement: " + query)
}

func between(s, start, end string) string {
	i := strings.Index(s, start)
	if i < 0 {
		return ""
	}
	s = s[i+len(start):]
	if j := strings.Index(s, end); j >= 0 {
		s = s[:j]
	}
	return s
}

func splitColumns(list string) []string {
	var cols []string
	for _, c := range strings.Split(list, ",") {
		c = strings.TrimSpace(strings.ReplaceAll(c, "`", ""))
		if c != "" {
			cols = append(cols, c)
		}
	}
	return cols
}

func zip(cols []string, args []any) sqlorm.Row {
	row := make(sqlorm.Row, len(cols))
	for i, c := range cols {
		if i < len(args) {
			row[c] = args[i]
		}
	}
	return row
}

func blogModel() *sqlorm.Model {
	return sqlorm.MustDeclare("Blog",
		sqlorm.StringField("id", sqlorm.PrimaryKey()),
		sqlorm.StringField("name"),
		sqlorm.TextField("summary"),
	)
}

func userModel() *sqlorm.Model {
	return sqlorm.MustDeclareTable("User", "users",
		sqlorm.StringField("id", sqlorm.PrimaryKey()),
		sqlorm.StringField("name"),
		sqlorm.StringField("email", sqlorm.DDL("varchar(50)")),
		sqlorm.BooleanField("admin"),
		sqlorm.FloatField("created_at", sqlorm.Default(func() any { return 1.5 })),
	)
}
