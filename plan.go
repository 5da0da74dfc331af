package sqlorm

// Action represents the type of database operation.
type Action int

const (
	ActionCreate Action = iota
	ActionReadOne
	ActionUpdate
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "insert"
	case ActionReadOne:
		return "select"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	}
	return "unknown"
}

// Plan describes how the Executor should run the operation.
type Plan struct {
	Mode  Action
	Query string
	Args  []any
}
