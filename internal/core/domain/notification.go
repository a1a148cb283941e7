package domain

import "time"

// Severity classifies a notification for display.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Default display durations per severity. Failures stay up longer so the
// user has time to read them.
const (
	SuccessDuration = 3000 * time.Millisecond
	ErrorDuration   = 5000 * time.Millisecond
)

// Notification is one queued toast message.
type Notification struct {
	Text     string
	Severity Severity
	Duration time.Duration
}
