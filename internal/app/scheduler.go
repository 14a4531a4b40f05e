package app

import (
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/chatclone/internal/logger"
)

// ReplyDueMsg fires when a scheduled reply's delay has elapsed
type ReplyDueMsg struct {
	ID int
}

// TickScheduler implements session.Scheduler on top of the Bubble Tea event
// loop. Each scheduled task becomes a tea.Tick command; the task runs when
// the model receives the matching ReplyDueMsg, so store callbacks never race
// with Update.
type TickScheduler struct {
	mu     sync.Mutex
	nextID int
	tasks  map[int]func()
	order  []int
	cmds   []tea.Cmd
}

// NewTickScheduler creates an empty scheduler
func NewTickScheduler() *TickScheduler {
	return &TickScheduler{tasks: make(map[int]func())}
}

// Schedule records task and queues a tick command for it. The command is
// handed to Bubble Tea by the next Drain.
func (s *TickScheduler) Schedule(delay time.Duration, task func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.tasks[id] = task
	s.order = append(s.order, id)
	s.cmds = append(s.cmds, tea.Tick(delay, func(time.Time) tea.Msg {
		return ReplyDueMsg{ID: id}
	}))
	logger.WithComponent("scheduler").Debug("reply tick queued", "id", id, "delay", delay)
}

// Drain returns the tick commands queued since the last call
func (s *TickScheduler) Drain() tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cmds) == 0 {
		return nil
	}
	cmds := s.cmds
	s.cmds = nil
	return tea.Batch(cmds...)
}

// Fire runs the task for id. It reports false when the task already ran.
func (s *TickScheduler) Fire(id int) bool {
	s.mu.Lock()
	task, ok := s.tasks[id]
	if ok {
		delete(s.tasks, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()

	if ok {
		task()
	}
	return ok
}

// FireAll runs every outstanding task in scheduling order, including tasks
// scheduled while firing. It returns how many ran.
func (s *TickScheduler) FireAll() int {
	n := 0
	for {
		s.mu.Lock()
		if len(s.order) == 0 {
			s.mu.Unlock()
			return n
		}
		id := s.order[0]
		s.mu.Unlock()

		if s.Fire(id) {
			n++
		}
	}
}

// Pending returns how many tasks have not run yet
func (s *TickScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
