package tui

import (
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/lazyfeed/internal/debounce"
)

// callbackMsg carries a scheduled function into the bubbletea loop.
type callbackMsg struct {
	fn func()
}

// Scheduler implements debounce.Scheduler by delivering each due callback to
// the program as a message. Update runs it on the program goroutine.
//
// Messages scheduled before Bind are queued and flushed by Bind.
type Scheduler struct {
	mu      sync.Mutex
	send    func(tea.Msg)
	pending []tea.Msg
}

// NewScheduler creates an unbound Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Bind sets the function used to deliver messages, usually
// (*tea.Program).Send, and flushes anything queued before it was bound.
func (s *Scheduler) Bind(send func(tea.Msg)) {
	s.mu.Lock()
	s.send = send
	queued := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, msg := range queued {
		go send(msg)
	}
}

// Schedule implements debounce.Scheduler. The callback never runs inline:
// Program.Send blocks until Update reads the message, and Schedule may be
// called from inside Update.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) debounce.CancelFunc {
	var canceled atomic.Bool
	msg := callbackMsg{fn: func() {
		if !canceled.Load() {
			fn()
		}
	}}

	if delay <= 0 {
		s.post(msg)
		return func() { canceled.Store(true) }
	}

	timer := time.AfterFunc(delay, func() {
		if !canceled.Load() {
			s.post(msg)
		}
	})
	return func() {
		canceled.Store(true)
		timer.Stop()
	}
}

func (s *Scheduler) post(msg tea.Msg) {
	s.mu.Lock()
	send := s.send
	if send == nil {
		s.pending = append(s.pending, msg)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	go send(msg)
}
