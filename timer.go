package grip

import (
	"container/heap"
	"time"
)

// Timer is a pending callback scheduled with Scene.AfterFunc. Timers fire
// from Scene.Update on the scene's goroutine, never concurrently.
type Timer struct {
	due     time.Time
	seq     uint64
	fn      func()
	index   int // heap index; -1 once removed
	stopped bool
	fired   bool
	q       *timerQueue
}

// Stop cancels the timer. It reports whether the call prevented the
// callback from running. Stop on a nil Timer returns false.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped || t.fired {
		return false
	}
	t.stopped = true
	if t.index >= 0 && t.q != nil {
		heap.Remove(t.q, t.index)
	}
	return true
}

// Pending reports whether the timer is still waiting to fire.
func (t *Timer) Pending() bool {
	return t != nil && !t.stopped && !t.fired
}

// timerQueue is a min-heap ordered by due time, then scheduling order.
type timerQueue struct {
	items []*Timer
	seq   uint64
}

func (q *timerQueue) Len() int { return len(q.items) }

func (q *timerQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.due.Equal(b.due) {
		return a.seq < b.seq
	}
	return a.due.Before(b.due)
}

func (q *timerQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].index = i
	q.items[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(q.items)
	q.items = append(q.items, t)
}

func (q *timerQueue) Pop() any {
	old := q.items
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	q.items = old[:n-1]
	return t
}

func (q *timerQueue) schedule(due time.Time, fn func()) *Timer {
	q.seq++
	t := &Timer{due: due, seq: q.seq, fn: fn, q: q}
	heap.Push(q, t)
	return t
}

// fireDue runs every timer due at or before now. Timers scheduled by the
// callbacks themselves wait for the next call, even when already due.
func (q *timerQueue) fireDue(now time.Time) int {
	limit := q.seq
	fired := 0
	var deferred []*Timer
	for len(q.items) > 0 {
		t := q.items[0]
		if t.due.After(now) {
			break
		}
		heap.Pop(q)
		if t.seq > limit {
			deferred = append(deferred, t)
			continue
		}
		t.fired = true
		fired++
		t.fn()
	}
	for _, t := range deferred {
		if !t.stopped {
			heap.Push(q, t)
		}
	}
	return fired
}

// AfterFunc schedules fn to run from Update once d has elapsed on the
// scene's clock.
func (s *Scene) AfterFunc(d time.Duration, fn func()) *Timer {
	return s.timers.schedule(s.Now().Add(d), fn)
}
