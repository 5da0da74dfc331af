package sqlorm

// logSink forwards messages to an optional caller-supplied function.
type logSink struct {
	logFn func(messages ...any)
}

// SetLog sets the log function for informational messages and warnings.
// If not set, messages are silently discarded.
func (l *logSink) SetLog(fn func(messages ...any)) {
	l.logFn = fn
}

func (l *logSink) log(messages ...any) {
	if l.logFn != nil {
		l.logFn(messages...)
	}
}
