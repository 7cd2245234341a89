// Package scheduler provides one-shot deadline scheduling with an injected
// clock, so components that need deadlines stay free of timing side effects
// and remain unit-testable.
package scheduler

import (
	"sync"
	"time"
)

// Clock abstracts time for testability
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock backed by the system time
type RealClock struct{}

// Now returns the current time in UTC
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// Scheduler arms one-shot wake-ups keyed by id. Arming an id that is already
// armed replaces the previous deadline.
type Scheduler interface {
	Arm(id string, at time.Time, fn func())
	Cancel(id string)
}

// TimerScheduler implements Scheduler on in-process timers. Timers do not
// survive a process restart; the store's guarded transition keeps this safe
// but leaves a durability gap covered by the redis store backend's key TTL.
type TimerScheduler struct {
	clock  Clock
	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewTimerScheduler creates a timer-backed scheduler
func NewTimerScheduler(clock Clock) *TimerScheduler {
	if clock == nil {
		clock = RealClock{}
	}
	return &TimerScheduler{
		clock:  clock,
		timers: make(map[string]*time.Timer),
	}
}

// Arm schedules fn to run once at the given time. A deadline in the past
// fires immediately.
func (s *TimerScheduler) Arm(id string, at time.Time, fn func()) {
	delay := at.Sub(s.clock.Now())
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.timers[id]; ok {
		existing.Stop()
	}

	s.timers[id] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()

		fn()
	})
}

// Cancel stops the timer for id if one is armed
func (s *TimerScheduler) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}
}

// Armed returns the number of currently armed timers
func (s *TimerScheduler) Armed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels every armed timer
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}
