package session

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
)

// Session owns the current State and the queue of deferred tasks. The host
// dispatches actions, carries out the returned audio effects and calls
// Advance whenever the wake-up reported by NextWake has passed.
type Session struct {
	ID    string
	clock clock.Clock
	state State
	queue *Queue
	log   *slog.Logger
}

func New(opts Options, clk clock.Clock, logger *slog.Logger) *Session {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	id := uuid.NewString()
	return &Session{
		ID:    id,
		clock: clk,
		state: NewState(opts),
		queue: NewQueue(),
		log:   logger.With("session_id", id),
	}
}

func (s *Session) State() State {
	return s.state
}

// Dispatch reduces a and returns the effects the host has to run.
func (s *Session) Dispatch(a Action) []Effect {
	prevGen := s.state.Generation
	next, effects := Reduce(s.state, a)
	s.state = next

	if next.Generation != prevGen {
		dropped := s.queue.CancelBefore(next.Generation)
		s.log.Info("session reset", "generation", next.Generation, "cancelled_tasks", dropped)
	}

	out := effects[:0:0]
	now := s.clock.Now()
	for _, eff := range effects {
		if sched, ok := eff.(Schedule); ok {
			t := s.queue.Push(now, sched.Task)
			s.log.Debug("task scheduled", "task_id", t.ID, "kind", t.Kind, "delay", t.Delay)
			continue
		}
		out = append(out, eff)
	}
	s.log.Debug("action dispatched", "action", actionName(a), "effects", len(out))
	return out
}

// Advance fires every task that is due according to the session clock.
func (s *Session) Advance() []Effect {
	var out []Effect
	for _, t := range s.queue.Due(s.clock.Now()) {
		s.log.Debug("task fired", "task_id", t.ID, "kind", t.Kind)
		out = append(out, s.Dispatch(Fire{Task: t})...)
	}
	return out
}

// NextWake reports how long until the next task is due. It is zero when a
// task is already overdue.
func (s *Session) NextWake() (time.Duration, bool) {
	due, ok := s.queue.Next()
	if !ok {
		return 0, false
	}
	return max(due.Sub(s.clock.Now()), 0), true
}

func (s *Session) Now() time.Time {
	return s.clock.Now()
}

func (s *Session) Pending() int {
	return s.queue.Len()
}

func actionName(a Action) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", a), "session.")
}
