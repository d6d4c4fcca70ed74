// Package schedule delivers timer callbacks onto a single event loop.
package schedule

import (
	"sync/atomic"
	"time"
)

// Timer is a pending one-shot or repeating callback.
type Timer interface {
	// Stop cancels the timer. No callback runs after Stop returns when Stop
	// is called from the event loop.
	Stop()
}

// Scheduler creates timers whose callbacks run on the event loop.
type Scheduler interface {
	Now() time.Time
	AfterFunc(delay time.Duration, fn func()) Timer
	Every(interval time.Duration, fn func()) Timer
}

// Loop is the production Scheduler. Go timers fire on their own goroutines and
// hand the callback to dispatch, which must run it on the event loop (fyne.Do).
type Loop struct {
	dispatch func(func())
}

// NewLoop creates a Loop. A nil dispatch runs callbacks on the timer goroutine.
func NewLoop(dispatch func(func())) *Loop {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Loop{dispatch: dispatch}
}

// Now returns wall-clock time.
func (loop *Loop) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules fn once after delay.
func (loop *Loop) AfterFunc(delay time.Duration, fn func()) Timer {
	timer := &loopTimer{}
	timer.timer = time.AfterFunc(delay, func() {
		loop.dispatch(func() {
			// The flag is re-checked on the loop: a callback queued before Stop is dropped.
			if !timer.stopped.CompareAndSwap(false, true) {
				return
			}
			fn()
		})
	})
	return timer
}

// Every schedules fn repeatedly at interval until stopped.
func (loop *Loop) Every(interval time.Duration, fn func()) Timer {
	timer := &loopTimer{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-timer.done:
				return
			case <-timer.ticker.C:
				loop.dispatch(func() {
					if timer.stopped.Load() {
						return
					}
					fn()
				})
			}
		}
	}()
	return timer
}

type loopTimer struct {
	stopped atomic.Bool
	timer   *time.Timer
	ticker  *time.Ticker
	done    chan struct{}
}

func (timer *loopTimer) Stop() {
	if timer.stopped.Swap(true) {
		return
	}
	if timer.timer != nil {
		timer.timer.Stop()
	}
	if timer.ticker != nil {
		timer.ticker.Stop()
		close(timer.done)
	}
}
