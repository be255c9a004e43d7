package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/boardpack/internal/widget"
)

// timerFiredMsg carries a timer callback back into Update so widget state is
// only ever touched from the event loop.
type timerFiredMsg struct {
	fire func()
}

// loopScheduler arms wall-clock timers whose callbacks are posted to the
// program instead of running on the timer goroutine.
type loopScheduler struct {
	fired    chan func()
	done     chan struct{}
	stopOnce sync.Once
}

func newLoopScheduler() *loopScheduler {
	return &loopScheduler{
		fired: make(chan func(), 4),
		done:  make(chan struct{}),
	}
}

var _ widget.Scheduler = (*loopScheduler)(nil)

func (s *loopScheduler) AfterFunc(d time.Duration, fn func()) widget.Timer {
	return time.AfterFunc(d, func() {
		select {
		case s.fired <- fn:
		case <-s.done:
		}
	})
}

// wait blocks until a timer fires or the scheduler stops.
func (s *loopScheduler) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-s.fired:
			return timerFiredMsg{fire: fn}
		case <-s.done:
			return nil
		}
	}
}

func (s *loopScheduler) stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}
