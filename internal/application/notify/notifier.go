// Package notify is the write-only user-notification sink (the toast analog).
// Nothing is ever read back from it; it carries no control flow.
package notify

import "log"

type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier reports notifications to the structured log channel. The UI
// layer swaps in its own sink.
type LogNotifier struct{}

func (LogNotifier) Success(msg string) { log.Printf("[toast] success: %s", msg) }
func (LogNotifier) Error(msg string)   { log.Printf("[toast] error: %s", msg) }

// Success is a nil-safe helper for optional notifiers.
func Success(n Notifier, msg string) {
	if n != nil {
		n.Success(msg)
	}
}

// Error is a nil-safe helper for optional notifiers.
func Error(n Notifier, msg string) {
	if n != nil {
		n.Error(msg)
	}
}
