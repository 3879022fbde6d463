package mindpaper

import (
	"sort"
	"time"
)

// TimerHandle identifies a scheduled timer. The zero handle is never issued.
type TimerHandle uint64

type timerEntry struct {
	id TimerHandle
	at time.Time
	fn func()
}

// TimerQueue is a cooperative single-threaded timer queue. Time only moves
// when the owner calls Advance, so timers fire on the input dispatch path and
// never concurrently with it.
type TimerQueue struct {
	now     time.Time
	nextID  TimerHandle
	entries []timerEntry
}

// NewTimerQueue returns a queue whose clock starts at now.
func NewTimerQueue(now time.Time) *TimerQueue {
	return &TimerQueue{now: now}
}

// Now returns the queue's current time.
func (q *TimerQueue) Now() time.Time { return q.now }

// Schedule runs fn once, after the given delay has elapsed on the queue's
// clock.
func (q *TimerQueue) Schedule(after time.Duration, fn func()) TimerHandle {
	q.nextID++
	e := timerEntry{id: q.nextID, at: q.now.Add(after), fn: fn}
	// Keep entries ordered by deadline; equal deadlines keep insertion order.
	i := sort.Search(len(q.entries), func(i int) bool {
		return q.entries[i].at.After(e.at)
	})
	q.entries = append(q.entries, timerEntry{})
	copy(q.entries[i+1:], q.entries[i:])
	q.entries[i] = e
	return e.id
}

// Cancel removes a pending timer. It reports whether the timer was pending.
// Cancelling a fired or unknown handle is a no-op.
func (q *TimerQueue) Cancel(h TimerHandle) bool {
	if h == 0 {
		return false
	}
	for i := range q.entries {
		if q.entries[i].id == h {
			copy(q.entries[i:], q.entries[i+1:])
			q.entries[len(q.entries)-1] = timerEntry{}
			q.entries = q.entries[:len(q.entries)-1]
			return true
		}
	}
	return false
}

// Pending reports whether h is still scheduled.
func (q *TimerQueue) Pending(h TimerHandle) bool {
	for i := range q.entries {
		if q.entries[i].id == h {
			return true
		}
	}
	return false
}

// Len returns the number of pending timers.
func (q *TimerQueue) Len() int { return len(q.entries) }

// Advance moves the clock to now and fires every timer that is due, in
// deadline order. Callbacks may schedule or cancel timers. Advancing
// backwards is ignored. Returns the number of timers fired.
func (q *TimerQueue) Advance(now time.Time) int {
	if now.Before(q.now) {
		return 0
	}
	fired := 0
	for len(q.entries) > 0 && !q.entries[0].at.After(now) {
		e := q.entries[0]
		copy(q.entries, q.entries[1:])
		q.entries[len(q.entries)-1] = timerEntry{}
		q.entries = q.entries[:len(q.entries)-1]
		q.now = e.at
		e.fn()
		fired++
	}
	q.now = now
	return fired
}

// Clear drops every pending timer.
func (q *TimerQueue) Clear() {
	for i := range q.entries {
		q.entries[i] = timerEntry{}
	}
	q.entries = q.entries[:0]
}
