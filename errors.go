package sqlorm

import (
	"errors"

	"github.com/tinywasm/fmt"
)

// ErrDuplicatePrimaryKey is returned by Derive when more than one field is a primary key.
var ErrDuplicatePrimaryKey = errors.New("duplicate primary key")

// ErrMissingPrimaryKey is returned by Derive when no field is a primary key.
var ErrMissingPrimaryKey = errors.New("primary key not found")

// ErrDuplicateField is returned by Derive when two fields share a name.
var ErrDuplicateField = errors.New("duplicate field")

// ErrEmptyName is returned when a model or field is declared without a name.
var ErrEmptyName = errors.New("empty name")

// ErrUnknownField is returned when a record is accessed by a name its schema does not declare.
var ErrUnknownField = errors.New("unknown field")

// ErrNoAttribute is returned by Record.Get when a declared field holds no value.
var ErrNoAttribute = errors.New("no such attribute")

// ErrValidation is returned when a statement's placeholders and arguments disagree.
var ErrValidation = errors.New("validation error")

// ErrNilModel is returned when a record or model without a schema is used.
var ErrNilModel = errors.New("nil model")

// detailError carries context on top of a sentinel that errors.Is still matches.
type detailError struct {
	err error
	msg string
}

func (e *detailError) Error() string { return e.msg }
func (e *detailError) Unwrap() error { return e.err }

// errWith appends detail to a sentinel's message.
func errWith(sentinel error, detail ...any) error {
	return &detailError{
		err: sentinel,
		msg: fmt.Err(append([]any{sentinel}, detail...)...).Error(),
	}
}
