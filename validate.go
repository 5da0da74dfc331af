package sqlorm

func validate(p Plan) error {
	if p.Query == "" {
		return errWith(ErrValidation, "empty statement")
	}
	if n := countPlaceholders(p.Query); n != len(p.Args) {
		return errWith(ErrValidation, "placeholders and arguments length mismatch")
	}
	return nil
}

// countPlaceholders counts ? marks outside back-quoted identifiers.
func countPlaceholders(query string) int {
	n := 0
	quoted := false
	for i := 0; i < len(query); i++ {
		switch query[i] {
		case '`':
			quoted = !quoted
		case '?':
			if !quoted {
				n++
			}
		}
	}
	return n
}
