package reaction

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Scheduler defers a callback by a pacing delay. The delay exists purely for
// animation sequencing, not logical concurrency; state may be stale by the
// time the callback fires, so callbacks must capture ids only and re-resolve
// from authoritative state. After returns a task id for log correlation.
type Scheduler interface {
	After(d time.Duration, fn func()) string
}

// TimerScheduler schedules on real timers.
type TimerScheduler struct{}

func (TimerScheduler) After(d time.Duration, fn func()) string {
	time.AfterFunc(d, fn)
	return uuid.NewString()
}

// ManualScheduler queues callbacks until Fire is called. Used in tests and
// by hosts that pump deferred reactions from their own frame loop.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []func()
}

func (s *ManualScheduler) After(d time.Duration, fn func()) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, fn)
	return uuid.NewString()
}

// Fire runs all queued callbacks in schedule order and clears the queue.
func (s *ManualScheduler) Fire() {
	s.mu.Lock()
	fns := s.pending
	s.pending = nil
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Pending reports the number of queued callbacks.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
