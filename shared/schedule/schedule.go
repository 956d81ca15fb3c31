// Package schedule is a delayed-task queue driven by an external game clock.
// Each task carries a guard that is evaluated when the task comes due; a task
// whose guard fails is dropped without running.
package schedule

import (
	"container/heap"
	"time"
)

// Guard reports whether a due task is still valid.
type Guard func() bool

type task struct {
	at    time.Duration
	seq   uint64
	name  string
	guard Guard
	fn    func()
}

type taskHeap []*task

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].at == h[j].at {
		return h[i].seq < h[j].seq
	}
	return h[i].at < h[j].at
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any) { *h = append(*h, x.(*task)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

// Stats counts what a Run call did.
type Stats struct {
	Fired   int
	Dropped int
}

// Queue orders tasks by due time, then by insertion order.
type Queue struct {
	tasks taskHeap
	seq   uint64
}

// After schedules fn to run once the clock reaches now+delay.
func (q *Queue) After(now, delay time.Duration, name string, guard Guard, fn func()) {
	q.seq++
	heap.Push(&q.tasks, &task{
		at:    now + delay,
		seq:   q.seq,
		name:  name,
		guard: guard,
		fn:    fn,
	})
}

// Run fires every task due at or before now. Tasks scheduled by a running
// task are picked up in the same call if they are already due.
func (q *Queue) Run(now time.Duration) Stats {
	var st Stats
	for q.tasks.Len() > 0 && q.tasks[0].at <= now {
		t := heap.Pop(&q.tasks).(*task)
		if t.guard != nil && !t.guard() {
			st.Dropped++
			continue
		}
		t.fn()
		st.Fired++
	}
	return st
}

// Pending returns the names of queued tasks in due order.
func (q *Queue) Pending() []string {
	cp := make(taskHeap, len(q.tasks))
	copy(cp, q.tasks)
	names := make([]string, 0, len(cp))
	for cp.Len() > 0 {
		names = append(names, heap.Pop(&cp).(*task).name)
	}
	return names
}

// Len returns the number of queued tasks.
func (q *Queue) Len() int { return q.tasks.Len() }

// Clear drops every queued task.
func (q *Queue) Clear() {
	q.tasks = q.tasks[:0]
}
