package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

func TestManualAfterFuncFiresOnce(t *testing.T) {
	manual := NewManual(epoch)
	fired := 0
	manual.AfterFunc(time.Minute, func() { fired++ })

	manual.Advance(59 * time.Second)
	assert.Equal(t, 0, fired)

	manual.Advance(time.Second)
	assert.Equal(t, 1, fired)

	manual.Advance(time.Hour)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, manual.Pending())
}

func TestManualEveryRepeatsUntilStopped(t *testing.T) {
	manual := NewManual(epoch)
	fired := 0
	var timer Timer
	timer = manual.Every(time.Second, func() {
		fired++
		if fired == 3 {
			timer.Stop()
		}
	})

	manual.Advance(10 * time.Second)
	assert.Equal(t, 3, fired)
	assert.Equal(t, 0, manual.Pending())
}

func TestManualStopPreventsCallback(t *testing.T) {
	manual := NewManual(epoch)
	fired := false
	timer := manual.AfterFunc(time.Second, func() { fired = true })
	timer.Stop()

	manual.Advance(time.Minute)
	assert.False(t, fired)
}

func TestManualNowFollowsFiringTimer(t *testing.T) {
	manual := NewManual(epoch)
	var seen []time.Duration
	manual.AfterFunc(2*time.Second, func() {
		seen = append(seen, manual.Now().Sub(epoch))
		manual.AfterFunc(time.Second, func() {
			seen = append(seen, manual.Now().Sub(epoch))
		})
	})

	manual.Advance(5 * time.Second)
	assert.Equal(t, []time.Duration{2 * time.Second, 3 * time.Second}, seen)
	assert.Equal(t, 5*time.Second, manual.Now().Sub(epoch))
}

func TestLoopStopDropsQueuedCallback(t *testing.T) {
	queued := make(chan func(), 1)
	loop := NewLoop(func(fn func()) { queued <- fn })

	var fired atomic.Int32
	timer := loop.AfterFunc(time.Millisecond, func() { fired.Add(1) })

	var callback func()
	select {
	case callback = <-queued:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}

	timer.Stop()
	callback()
	assert.Equal(t, int32(0), fired.Load())
}

func TestLoopEveryDelivers(t *testing.T) {
	loop := NewLoop(nil)
	var fired atomic.Int32
	timer := loop.Every(time.Millisecond, func() { fired.Add(1) })

	assert.Eventually(t, func() bool { return fired.Load() >= 3 }, time.Second, time.Millisecond)
	timer.Stop()
	timer.Stop()
}
