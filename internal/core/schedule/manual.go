package schedule

import (
	"sync"
	"time"
)

// Manual is a Scheduler driven by simulated time. Callbacks run synchronously
// inside Advance, in due order, which makes it the event loop for tests.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

// NewManual creates a Manual scheduler starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the simulated time.
func (manual *Manual) Now() time.Time {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return manual.now
}

// AfterFunc schedules fn once after delay.
func (manual *Manual) AfterFunc(delay time.Duration, fn func()) Timer {
	return manual.add(delay, 0, fn)
}

// Every schedules fn repeatedly at interval.
func (manual *Manual) Every(interval time.Duration, fn func()) Timer {
	if interval <= 0 {
		interval = time.Nanosecond
	}
	return manual.add(interval, interval, fn)
}

// Pending returns the number of live timers.
func (manual *Manual) Pending() int {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	count := 0
	for _, timer := range manual.timers {
		if !timer.stopped {
			count++
		}
	}
	return count
}

// Advance moves simulated time forward by delta, firing every timer that
// comes due on the way.
func (manual *Manual) Advance(delta time.Duration) {
	manual.mu.Lock()
	target := manual.now.Add(delta)
	manual.mu.Unlock()

	for {
		manual.mu.Lock()
		next := manual.nextDueLocked(target)
		if next == nil {
			manual.now = target
			manual.mu.Unlock()
			return
		}
		manual.now = next.due
		if next.interval > 0 {
			next.due = next.due.Add(next.interval)
		} else {
			next.stopped = true
		}
		fn := next.fn
		manual.pruneLocked()
		manual.mu.Unlock()

		fn()
	}
}

func (manual *Manual) add(delay, interval time.Duration, fn func()) *manualTimer {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	manual.seq++
	timer := &manualTimer{
		owner:    manual,
		seq:      manual.seq,
		due:      manual.now.Add(delay),
		interval: interval,
		fn:       fn,
	}
	manual.timers = append(manual.timers, timer)
	return timer
}

func (manual *Manual) nextDueLocked(target time.Time) *manualTimer {
	var next *manualTimer
	for _, timer := range manual.timers {
		if timer.stopped || timer.due.After(target) {
			continue
		}
		if next == nil || timer.due.Before(next.due) || (timer.due.Equal(next.due) && timer.seq < next.seq) {
			next = timer
		}
	}
	return next
}

func (manual *Manual) pruneLocked() {
	live := manual.timers[:0]
	for _, timer := range manual.timers {
		if !timer.stopped {
			live = append(live, timer)
		}
	}
	manual.timers = live
}

type manualTimer struct {
	owner    *Manual
	seq      uint64
	due      time.Time
	interval time.Duration
	fn       func()
	stopped  bool
}

func (timer *manualTimer) Stop() {
	timer.owner.mu.Lock()
	defer timer.owner.mu.Unlock()
	timer.stopped = true
	timer.owner.pruneLocked()
}
