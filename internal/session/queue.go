package session

import (
	"sort"
	"time"
)

type queued struct {
	due  time.Time
	task Task
}

// Queue holds deferred tasks ordered by due time. Tasks due at the same
// instant come out in the order they were pushed.
type Queue struct {
	lastID uint64
	items  []queued
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push schedules t to run t.Delay after now and returns it with its ID set.
func (q *Queue) Push(now time.Time, t Task) Task {
	q.lastID++
	t.ID = q.lastID
	due := now.Add(t.Delay)

	i := sort.Search(len(q.items), func(i int) bool {
		return q.items[i].due.After(due)
	})
	q.items = append(q.items, queued{})
	copy(q.items[i+1:], q.items[i:])
	q.items[i] = queued{due: due, task: t}
	return t
}

// Next reports when the earliest task is due.
func (q *Queue) Next() (time.Time, bool) {
	if len(q.items) == 0 {
		return time.Time{}, false
	}
	return q.items[0].due, true
}

// Due removes and returns every task due at or before now.
func (q *Queue) Due(now time.Time) []Task {
	n := 0
	for n < len(q.items) && !q.items[n].due.After(now) {
		n++
	}
	if n == 0 {
		return nil
	}
	tasks := make([]Task, n)
	for i := range tasks {
		tasks[i] = q.items[i].task
	}
	q.items = append(q.items[:0], q.items[n:]...)
	return tasks
}

// CancelBefore drops every task scheduled by a generation older than gen and
// returns how many were dropped.
func (q *Queue) CancelBefore(gen uint64) int {
	kept := q.items[:0]
	for _, it := range q.items {
		if it.task.Generation >= gen {
			kept = append(kept, it)
		}
	}
	dropped := len(q.items) - len(kept)
	clear(q.items[len(kept):])
	q.items = kept
	return dropped
}

func (q *Queue) Len() int {
	return len(q.items)
}
