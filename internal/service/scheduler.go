package service

import "time"

// TimerScheduler implements ports.Scheduler with real timers.
type TimerScheduler struct{}

// AfterFunc runs fn after d on its own goroutine.
func (TimerScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// SyncScheduler implements ports.Scheduler by invoking fn immediately
// on the calling goroutine. Tests use it to make the dealer's deferred
// turn deterministic.
type SyncScheduler struct{}

func (SyncScheduler) AfterFunc(_ time.Duration, fn func()) {
	fn()
}
