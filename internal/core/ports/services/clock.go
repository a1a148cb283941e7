package services

import "time"

// Timer is the stoppable handle returned by Clock.AfterFunc.
type Timer interface {
	Stop() bool
}

// Clock abstracts time for components with temporal behavior (the
// notifier's auto-hide). Production uses the real clock; tests drive a
// manual one so timing assertions need no real sleeps.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

type realTimer struct {
	*time.Timer
}

func (t realTimer) Stop() bool { return t.Timer.Stop() }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return realTimer{time.AfterFunc(d, f)}
}

// RealClock returns a Clock backed by the system clock.
func RealClock() Clock { return realClock{} }
