package sqlorm

// Record is one row of a declared model, held as a name to value store.
// A Record is not safe for concurrent mutation.
type Record struct {
	model  *Model
	values map[string]any
}

// Model returns the record's declared type.
func (r *Record) Model() *Model { return r.model }

func (r *Record) schema() (*Schema, error) {
	if r == nil || r.model == nil || r.model.schema == nil {
		return nil, ErrNilModel
	}
	return r.model.schema, nil
}

// Get returns the stored value of a declared field. It fails with
// ErrUnknownField for undeclared names and ErrNoAttribute when the field
// holds no value.
func (r *Record) Get(name string) (any, error) {
	s, err := r.schema()
	if err != nil {
		return nil, err
	}
	if _, ok := s.mapping[name]; !ok {
		return nil, errWith(ErrUnknownField, name, "in", s.name)
	}
	v, ok := r.values[name]
	if !ok {
		return nil, errWith(ErrNoAttribute, name)
	}
	return v, nil
}

// Set stores a value for a declared field.
func (r *Record) Set(name string, value any) error {
	s, err := r.schema()
	if err != nil {
		return err
	}
	if _, ok := s.mapping[name]; !ok {
		return errWith(ErrUnknownField, name, "in", s.name)
	}
	r.values[name] = value
	return nil
}

// Value returns the stored value, if any. It never fails.
func (r *Record) Value(name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[name]
	return v, ok
}

// ValueOrDefault returns the stored value, or resolves the field default
// when the value is missing or nil. A resolved default is stored on the
// record, so a producer default runs at most once per record.
// ok is false when there is neither a value nor a default.
func (r *Record) ValueOrDefault(name string) (any, bool) {
	s, err := r.schema()
	if err != nil {
		return nil, false
	}
	if v, ok := r.values[name]; ok && v != nil {
		return v, true
	}
	f, ok := s.mapping[name]
	if !ok {
		return nil, false
	}
	v, ok := f.resolveDefault()
	if !ok {
		return nil, false
	}
	r.values[name] = v
	return v, true
}

// Map returns a copy of the stored values.
func (r *Record) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}
