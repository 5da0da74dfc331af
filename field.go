package sqlorm

import "github.com/tinywasm/fmt"

// Field describes one column of a declared model.
// It is a sealed value type constructed via NewField or the kind factories;
// a Field never changes after construction.
type Field struct {
	name       string
	kind       FieldKind
	sqlType    string
	primaryKey bool
	def        any // literal, func() any, or nil
}

func (f Field) Name() string     { return f.name }
func (f Field) Kind() FieldKind  { return f.kind }
func (f Field) SQLType() string  { return f.sqlType }
func (f Field) PrimaryKey() bool { return f.primaryKey }

// Default returns the declared default as given: a literal, a func() any
// producer, or nil when the field has none.
func (f Field) Default() any { return f.def }

func (f Field) String() string {
	return fmt.Sprintf("<%s,%s:%s>", f.kind.String(), f.sqlType, f.name)
}

// resolveDefault invokes a producer default or returns a literal one.
// ok is false when the field declares no default.
func (f Field) resolveDefault() (any, bool) {
	switch d := f.def.(type) {
	case nil:
		return nil, false
	case func() any:
		return d(), true
	default:
		return d, true
	}
}

// NewField builds a descriptor from raw parts. No validation is applied;
// prefer the kind factories, which pick column types and key eligibility.
func NewField(name, sqlType string, primaryKey bool, def any) Field {
	return Field{
		name:       name,
		kind:       KindString,
		sqlType:    sqlType,
		primaryKey: primaryKey,
		def:        def,
	}
}

// FieldOption customizes a Field built by one of the kind factories.
type FieldOption func(*Field)

// PrimaryKey marks the field as the model's primary key.
// BooleanField and TextField ignore it.
func PrimaryKey() FieldOption {
	return func(f *Field) { f.primaryKey = true }
}

// Default sets the field default. v may be a func() any, which is called
// each time a record without a stored value needs one.
func Default(v any) FieldOption {
	return func(f *Field) { f.def = v }
}

// DDL overrides the column type, e.g. DDL("varchar(50)").
func DDL(sqlType string) FieldOption {
	return func(f *Field) { f.sqlType = sqlType }
}

func newKindField(name string, kind FieldKind, sqlType string, def any, opts []FieldOption) Field {
	f := Field{name: name, kind: kind, sqlType: sqlType, def: def}
	for _, opt := range opts {
		opt(&f)
	}
	if !kind.keyable() {
		f.primaryKey = false
	}
	return f
}

// StringField declares a varchar(100) column with no default.
func StringField(name string, opts ...FieldOption) Field {
	return newKindField(name, KindString, sqlTypeString, nil, opts)
}

// IntegerField declares a bigint column defaulting to 0.
func IntegerField(name string, opts ...FieldOption) Field {
	return newKindField(name, KindInteger, sqlTypeInteger, int64(0), opts)
}

// FloatField declares a real column defaulting to 0.0.
func FloatField(name string, opts ...FieldOption) Field {
	return newKindField(name, KindFloat, sqlTypeFloat, float64(0), opts)
}

// BooleanField declares a boolean column defaulting to false.
// Boolean fields can never be primary keys.
func BooleanField(name string, opts ...FieldOption) Field {
	return newKindField(name, KindBool, sqlTypeBool, false, opts)
}

// TextField declares a mediumtext column with no default.
// Text fields can never be primary keys.
func TextField(name string, opts ...FieldOption) Field {
	return newKindField(name, KindText, sqlTypeText, nil, opts)
}
