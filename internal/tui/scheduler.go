package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/alertkit/internal/core/schedule"
)

// taskDueMsg is delivered when a scheduled task's delay has elapsed.
type taskDueMsg struct {
	task *teaTask
}

type teaTask struct {
	delay time.Duration
	fn    func()
	done  bool
}

func (t *teaTask) Cancel() bool {
	if t.done {
		return false
	}
	t.done = true
	return true
}

// teaScheduler runs tasks on the Bubble Tea event loop. After queues the
// task; the model turns queued tasks into commands at the end of each update
// and runs them when their message arrives, so callbacks never race the UI.
type teaScheduler struct {
	queued []*teaTask
}

var _ schedule.Scheduler = (*teaScheduler)(nil)

func (s *teaScheduler) After(d time.Duration, fn func()) schedule.Task {
	t := &teaTask{delay: max(d, 0), fn: fn}
	s.queued = append(s.queued, t)
	return t
}

// Drain returns a command delivering every queued task.
func (s *teaScheduler) Drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(s.queued))
	for _, t := range s.queued {
		if t.delay == 0 {
			cmds = append(cmds, func() tea.Msg { return taskDueMsg{task: t} })
			continue
		}
		cmds = append(cmds, tea.Tick(t.delay, func(time.Time) tea.Msg {
			return taskDueMsg{task: t}
		}))
	}
	s.queued = nil

	return tea.Batch(cmds...)
}

// run executes a due task unless it was cancelled.
func (s *teaScheduler) run(t *teaTask) {
	if t.done {
		return
	}
	t.done = true
	t.fn()
}
