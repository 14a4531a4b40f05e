package session

import (
	"sync"
	"time"
)

// Scheduler runs a task once after a delay. Implementations must not block
// the caller for the length of the delay.
type Scheduler interface {
	Schedule(delay time.Duration, task func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(delay time.Duration, task func())

// Schedule calls f(delay, task).
func (f SchedulerFunc) Schedule(delay time.Duration, task func()) {
	f(delay, task)
}

// TimerScheduler runs tasks on timer goroutines using time.AfterFunc.
type TimerScheduler struct {
	wg sync.WaitGroup
}

// NewTimerScheduler creates a wall-clock scheduler.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

// Schedule runs task after delay on its own goroutine.
func (t *TimerScheduler) Schedule(delay time.Duration, task func()) {
	t.wg.Add(1)
	time.AfterFunc(delay, func() {
		defer t.wg.Done()
		task()
	})
}

// Wait blocks until every scheduled task has run.
func (t *TimerScheduler) Wait() {
	t.wg.Wait()
}
