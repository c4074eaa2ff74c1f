// Package scheduler provides a single-threaded virtual clock with a
// time-ordered callback queue. Nothing advances on its own: the owner calls
// Advance, so every run is reproducible and tests never sleep.
package scheduler

import (
	"container/heap"
	"time"
)

// Clock is a virtual clock. It is not safe for concurrent use; all callbacks
// run synchronously on the goroutine that calls Advance.
type Clock struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
}

// New creates a clock at time zero with an empty queue.
func New() *Clock {
	return &Clock{}
}

// After schedules fn to run once the clock has advanced by d.
// Negative delays are treated as zero. Callbacks due at the same instant
// fire in the order they were scheduled.
func (c *Clock) After(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	if d < 0 {
		d = 0
	}
	c.seq++
	heap.Push(&c.queue, &timer{at: c.now + d, seq: c.seq, fn: fn})
}

// Now returns the elapsed virtual time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Pending returns the number of callbacks waiting to fire.
func (c *Clock) Pending() int {
	return c.queue.Len()
}

// Advance moves the clock forward by d, firing every callback that becomes
// due, including ones scheduled by callbacks inside the window.
// Returns the number of callbacks fired.
func (c *Clock) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	return c.RunUntil(c.now + d)
}

// RunUntil fires callbacks in time order until the next one is due after
// deadline, then sets the clock to deadline. A deadline in the past only
// fires callbacks already due.
func (c *Clock) RunUntil(deadline time.Duration) int {
	fired := 0
	for c.queue.Len() > 0 && c.queue[0].at <= deadline {
		t := heap.Pop(&c.queue).(*timer)
		if t.at > c.now {
			c.now = t.at
		}
		t.fn()
		fired++
	}
	if deadline > c.now {
		c.now = deadline
	}
	return fired
}

// Next jumps straight to the earliest pending callback and fires it.
// Returns false when the queue is empty.
func (c *Clock) Next() bool {
	if c.queue.Len() == 0 {
		return false
	}
	c.RunUntil(c.queue[0].at)
	return true
}

type timer struct {
	at  time.Duration
	seq uint64
	fn  func()
}

// timerQueue is a min-heap ordered by due time, then by scheduling order.
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) {
	*q = append(*q, x.(*timer))
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
