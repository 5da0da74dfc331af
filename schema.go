package sqlorm

import "github.com/tinywasm/fmt"

// Schema is the derived, immutable description of a declared model: its
// table, primary key, ordinary fields in declaration order and the canonical
// statement templates. Templates use ? as the placeholder; the Executor
// translates it to the driver's syntax.
type Schema struct {
	name       string
	table      string
	primaryKey string
	fields     []string // ordinary fields, declaration order, primary key excluded
	mapping    map[string]Field

	selectSQL string
	insertSQL string
	updateSQL string
	deleteSQL string
	findSQL   string
	createSQL string
}

// Derive validates a declaration and computes its schema. table falls back
// to name when empty. Exactly one field must be a primary key; on any error
// no schema is returned.
func Derive(name, table string, fields ...Field) (*Schema, error) {
	if name == "" {
		return nil, errWith(ErrEmptyName, "model name")
	}
	if table == "" {
		table = name
	}

	s := &Schema{
		name:    name,
		table:   table,
		mapping: make(map[string]Field, len(fields)),
	}
	for _, f := range fields {
		if f.name == "" {
			return nil, errWith(ErrEmptyName, "field of", name)
		}
		if _, dup := s.mapping[f.name]; dup {
			return nil, errWith(ErrDuplicateField, f.name, "in", name)
		}
		s.mapping[f.name] = f

		if f.primaryKey {
			if s.primaryKey != "" {
				return nil, errWith(ErrDuplicatePrimaryKey, "for field", f.name, "in", name)
			}
			s.primaryKey = f.name
			continue
		}
		s.fields = append(s.fields, f.name)
	}
	if s.primaryKey == "" {
		return nil, errWith(ErrMissingPrimaryKey, "in", name)
	}

	s.buildTemplates()
	return s, nil
}

func (s *Schema) buildTemplates() {
	pk := quote(s.primaryKey)
	table := quote(s.table)

	ordinary := make([]string, len(s.fields))
	sets := make([]string, len(s.fields))
	for i, name := range s.fields {
		ordinary[i] = quote(name)
		sets[i] = quote(name) + " = ?"
	}

	// select reads the key first; insert writes it last, matching the
	// argument order Save produces.
	selectCols := append([]string{pk}, ordinary...)
	insertCols := append(append([]string{}, ordinary...), pk)

	s.selectSQL = fmt.Sprintf("select %s from %s", join(selectCols), table)
	s.insertSQL = fmt.Sprintf("insert into %s (%s) values (%s)", table, join(insertCols), placeholders(len(insertCols)))
	s.updateSQL = fmt.Sprintf("update %s set %s where %s = ?", table, join(sets), pk)
	s.deleteSQL = fmt.Sprintf("delete from %s where %s = ?", table, pk)
	s.findSQL = fmt.Sprintf("%s where %s = ?", s.selectSQL, pk)

	defs := make([]string, 0, len(selectCols)+1)
	defs = append(defs, pk+" "+s.mapping[s.primaryKey].sqlType+" not null")
	for _, name := range s.fields {
		defs = append(defs, quote(name)+" "+s.mapping[name].sqlType)
	}
	defs = append(defs, "primary key ("+pk+")")
	s.createSQL = fmt.Sprintf("create table %s (%s)", table, join(defs))
}

func (s *Schema) Name() string       { return s.name }
func (s *Schema) Table() string      { return s.table }
func (s *Schema) PrimaryKey() string { return s.primaryKey }

// Fields returns the ordinary field names in declaration order.
func (s *Schema) Fields() []string {
	return append([]string(nil), s.fields...)
}

// Field looks up a declared field, primary key included.
func (s *Schema) Field(name string) (Field, bool) {
	f, ok := s.mapping[name]
	return f, ok
}

// Settable reports whether the update template has any columns to set.
// A schema holding only a primary key derives "update `t` set  where ..."
// which most drivers reject.
func (s *Schema) Settable() bool { return len(s.fields) > 0 }

func (s *Schema) SelectSQL() string { return s.selectSQL }
func (s *Schema) InsertSQL() string { return s.insertSQL }
func (s *Schema) UpdateSQL() string { return s.updateSQL }
func (s *Schema) DeleteSQL() string { return s.deleteSQL }

// FindSQL is SelectSQL filtered by primary key.
func (s *Schema) FindSQL() string { return s.findSQL }

// CreateTableSQL renders a create table statement from the field column types.
func (s *Schema) CreateTableSQL() string { return s.createSQL }

func quote(name string) string {
	return "`" + name + "`"
}

func join(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	return fmt.Convert(parts).Join(", ").String()
}

func placeholders(n int) string {
	marks := make([]string, n)
	for i := range marks {
		marks[i] = "?"
	}
	return join(marks)
}
