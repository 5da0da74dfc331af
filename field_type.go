package sqlorm

// FieldKind represents the abstract storage type of a declared field.
type FieldKind int

const (
	KindString FieldKind = iota
	KindInteger
	KindFloat
	KindBool
	KindText
)

// Default column types for each kind. DDL() overrides them per field.
const (
	sqlTypeString  = "varchar(100)"
	sqlTypeInteger = "bigint"
	sqlTypeFloat   = "real"
	sqlTypeBool    = "boolean"
	sqlTypeText    = "mediumtext"
)

func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "StringField"
	case KindInteger:
		return "IntegerField"
	case KindFloat:
		return "FloatField"
	case KindBool:
		return "BooleanField"
	case KindText:
		return "TextField"
	}
	return "Field"
}

// keyable reports whether fields of this kind may be declared as primary key.
func (k FieldKind) keyable() bool {
	return k != KindBool && k != KindText
}
