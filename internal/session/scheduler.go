package session

import (
	"sort"
	"time"
)

// Scheduler runs f once after d. The returned Timer cancels the task.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable scheduled task.
type Timer interface {
	// Stop cancels the task. It reports whether the task was still pending.
	Stop() bool
}

// Task describes a scheduled task awaiting delivery.
type Task struct {
	ID    uint64
	Delay time.Duration
}

// TaskQueue is a Scheduler that never runs tasks on its own. The owner
// drains newly scheduled tasks, waits out their delay on its own event
// loop, and calls Fire. Stopped tasks are dropped, so a late Fire is a
// no-op. It is not safe for concurrent use.
type TaskQueue struct {
	nextID  uint64
	pending map[uint64]func()
	fresh   []Task
}

var _ Scheduler = (*TaskQueue)(nil)

// NewTaskQueue creates an empty TaskQueue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{pending: make(map[uint64]func())}
}

// AfterFunc queues f.
func (q *TaskQueue) AfterFunc(d time.Duration, f func()) Timer {
	q.nextID++
	id := q.nextID
	q.pending[id] = f
	q.fresh = append(q.fresh, Task{ID: id, Delay: d})
	return queueTimer{q: q, id: id}
}

// Drain returns tasks scheduled since the previous Drain that are still pending.
func (q *TaskQueue) Drain() []Task {
	var out []Task
	for _, t := range q.fresh {
		if _, ok := q.pending[t.ID]; ok {
			out = append(out, t)
		}
	}
	q.fresh = nil
	return out
}

// Fire runs the task with the given id if it is still pending.
func (q *TaskQueue) Fire(id uint64) bool {
	f, ok := q.pending[id]
	if !ok {
		return false
	}
	delete(q.pending, id)
	f()
	return true
}

// FireNext runs the oldest pending task. It reports whether one ran.
func (q *TaskQueue) FireNext() bool {
	if len(q.pending) == 0 {
		return false
	}
	ids := make([]uint64, 0, len(q.pending))
	for id := range q.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return q.Fire(ids[0])
}

// Pending returns the number of tasks that have not fired or been stopped.
func (q *TaskQueue) Pending() int {
	return len(q.pending)
}

type queueTimer struct {
	q  *TaskQueue
	id uint64
}

func (t queueTimer) Stop() bool {
	if _, ok := t.q.pending[t.id]; !ok {
		return false
	}
	delete(t.q.pending, t.id)
	return true
}
