// Package schedule defines deferred tasks owned by UI components and a
// deterministic scheduler for driving them without a real clock.
package schedule

import (
	"sort"
	"time"
)

// Task is a scheduled callback.
type Task interface {
	// Cancel prevents the task from running. It reports true if the task
	// had not yet run or been cancelled.
	Cancel() bool
}

// Scheduler runs callbacks after a delay. A zero delay means the next tick of
// the event loop, never synchronously.
type Scheduler interface {
	After(d time.Duration, fn func()) Task
}

// Manual is a Scheduler driven by an explicit virtual clock. Tasks only run
// from Advance or Flush, on the caller's goroutine.
type Manual struct {
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	due  time.Duration
	seq  int
	fn   func()
	done bool
}

func (t *manualTask) Cancel() bool {
	if t.done {
		return false
	}
	t.done = true
	return true
}

// NewManual creates a Manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// After schedules fn to run once the clock has advanced by d.
func (m *Manual) After(d time.Duration, fn func()) Task {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTask{due: m.now + d, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending returns the number of tasks that have not run or been cancelled.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.tasks {
		if !t.done {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, running every task that becomes due
// in due-time order. Tasks scheduled by running tasks are honored if they
// fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	deadline := m.now + d

	for {
		next := m.next(deadline)
		if next == nil {
			break
		}
		if next.due > m.now {
			m.now = next.due
		}
		next.done = true
		next.fn()
	}

	m.now = deadline
	m.compact()
}

// Flush runs every pending task, advancing the clock as far as needed.
func (m *Manual) Flush() {
	for {
		var last time.Duration
		found := false
		for _, t := range m.tasks {
			if !t.done && (!found || t.due > last) {
				last = t.due
				found = true
			}
		}
		if !found {
			return
		}
		if last < m.now {
			last = m.now
		}
		m.Advance(last - m.now)
	}
}

func (m *Manual) next(deadline time.Duration) *manualTask {
	var due []*manualTask
	for _, t := range m.tasks {
		if !t.done && t.due <= deadline {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}

func (m *Manual) compact() {
	kept := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.done {
			kept = append(kept, t)
		}
	}
	m.tasks = kept
}
