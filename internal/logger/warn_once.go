package logger

import "sync"

var warned sync.Map

// WarnOnce logs msg at warn level the first time it is seen.
func WarnOnce(msg string, args ...any) {
	if _, loaded := warned.LoadOrStore(msg, struct{}{}); loaded {
		return
	}
	Warn(msg, args...)
}
