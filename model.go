package sqlorm

// Model is a declared record type. Its schema is derived once by Declare
// and shared by every Record the model creates.
type Model struct {
	schema *Schema
}

// Declare derives the schema for a record type whose table is named after it.
func Declare(name string, fields ...Field) (*Model, error) {
	return DeclareTable(name, "", fields...)
}

// DeclareTable is Declare with an explicit table name.
func DeclareTable(name, table string, fields ...Field) (*Model, error) {
	s, err := Derive(name, table, fields...)
	if err != nil {
		return nil, err
	}
	return &Model{schema: s}, nil
}

// MustDeclare is like Declare but panics on a schema error.
// It is meant for package-level variable initialization.
func MustDeclare(name string, fields ...Field) *Model {
	return MustDeclareTable(name, "", fields...)
}

// MustDeclareTable is like DeclareTable but panics on a schema error.
func MustDeclareTable(name, table string, fields ...Field) *Model {
	m, err := DeclareTable(name, table, fields...)
	if err != nil {
		panic(err)
	}
	return m
}

// Schema returns the derived schema.
func (m *Model) Schema() *Schema { return m.schema }

// New creates a record holding values. Every key must be a declared field.
func (m *Model) New(values map[string]any) (*Record, error) {
	if m == nil || m.schema == nil {
		return nil, ErrNilModel
	}
	r := &Record{model: m, values: make(map[string]any, len(values))}
	for k, v := range values {
		if _, ok := m.schema.mapping[k]; !ok {
			return nil, errWith(ErrUnknownField, k, "in", m.schema.name)
		}
		r.values[k] = v
	}
	return r, nil
}

// fromRow wraps a row returned by the Executor. Columns are kept as-is.
func (m *Model) fromRow(row Row) *Record {
	r := &Record{model: m, values: make(map[string]any, len(row))}
	for k, v := range row {
		r.values[k] = v
	}
	return r
}
