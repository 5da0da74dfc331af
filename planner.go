package sqlorm

// plan binds a record's current values to one of its schema's templates.
// Ordinary fields are resolved through ValueOrDefault in schema order and
// the primary key is appended last, matching the insert and update templates.
// Only create fills a missing key from its default; update and delete target
// the key the record already holds.
func plan(action Action, r *Record) Plan {
	s := r.model.schema
	switch action {
	case ActionCreate, ActionUpdate:
		args := make([]any, 0, len(s.fields)+1)
		for _, name := range s.fields {
			v, _ := r.ValueOrDefault(name)
			args = append(args, v)
		}
		var pk any
		if action == ActionCreate {
			pk, _ = r.ValueOrDefault(s.primaryKey)
		} else {
			pk, _ = r.Value(s.primaryKey)
		}
		args = append(args, pk)

		query := s.insertSQL
		if action == ActionUpdate {
			query = s.updateSQL
		}
		return Plan{Mode: action, Query: query, Args: args}
	case ActionDelete:
		pk, _ := r.Value(s.primaryKey)
		return Plan{Mode: action, Query: s.deleteSQL, Args: []any{pk}}
	}
	return Plan{Mode: action}
}

// findPlan selects one row by primary key.
func findPlan(m *Model, pk any) Plan {
	return Plan{Mode: ActionReadOne, Query: m.schema.findSQL, Args: []any{pk}}
}
