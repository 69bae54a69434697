package surface

import "time"

// Timer is a pending callback scheduled on a Clock.
type Timer = interface{ Stop() bool }

// Clock schedules the debounced dialect detection.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// AfterFunc wraps time.AfterFunc.
func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Executor runs a unit of background work.
type Executor func(func())

// GoExecutor runs each unit on its own goroutine.
func GoExecutor(f func()) { go f() }

// SyncExecutor runs work on the calling goroutine.
func SyncExecutor(f func()) { f() }
