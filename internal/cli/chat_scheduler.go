package cli

import (
	"sync"
	"time"

	"github.com/alexanderramin/dilsehat/internal/assistant"
	tea "github.com/charmbracelet/bubbletea"
)

// tickScheduler hands chat reply callbacks to the bubbletea loop. Each
// scheduled reply becomes a tea.Tick and its callback runs inside Update,
// so history never changes behind the renderer's back.
type tickScheduler struct {
	mu     sync.Mutex
	queued []*tickTimer
}

func (s *tickScheduler) AfterFunc(d time.Duration, f func()) assistant.Timer {
	t := &tickTimer{delay: d, f: f}
	s.mu.Lock()
	s.queued = append(s.queued, t)
	s.mu.Unlock()
	return t
}

// Flush returns one tick command per reply scheduled since the last call.
func (s *tickScheduler) Flush() tea.Cmd {
	s.mu.Lock()
	queued := s.queued
	s.queued = nil
	s.mu.Unlock()

	cmds := make([]tea.Cmd, 0, len(queued))
	for _, t := range queued {
		cmds = append(cmds, tea.Tick(t.delay, func(time.Time) tea.Msg {
			return chatReplyDueMsg{timer: t}
		}))
	}
	return tea.Batch(cmds...)
}

type tickTimer struct {
	delay time.Duration
	f     func()

	mu   sync.Mutex
	done bool
}

func (t *tickTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

// fire runs the callback unless the timer was stopped or already fired.
func (t *tickTimer) fire() bool {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return false
	}
	t.done = true
	t.mu.Unlock()

	t.f()
	return true
}
