package initiative

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/looplab/fsm"

	"github.com/KirkDiggler/rpg-initiative/internal/errors"
	"github.com/KirkDiggler/rpg-initiative/internal/pkg/clock"
)

const (
	eventStart   = "start"
	eventAdvance = "advance"
	eventReset   = "reset"

	tickInterval = time.Second
)

// sequencer is the turn/round state machine and its elapsed-seconds clock.
// All methods except run must be called with guard held.
type sequencer struct {
	machine *fsm.FSM
	clock   clock.Clock
	onTick  func(elapsed int64)
	guard   *sync.Mutex

	turn      int
	round     int
	elapsed   int64
	startedAt time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

func newSequencer(c clock.Clock, onTick func(elapsed int64)) *sequencer {
	return &sequencer{
		machine: fsm.NewFSM(
			string(StateNotStarted),
			fsm.Events{
				{Name: eventStart, Src: []string{string(StateNotStarted)}, Dst: string(StateRunning)},
				{Name: eventAdvance, Src: []string{string(StateRunning)}, Dst: string(StateRunning)},
				{Name: eventReset, Src: []string{string(StateNotStarted), string(StateRunning)}, Dst: string(StateNotStarted)},
			},
			fsm.Callbacks{},
		),
		clock:  c,
		onTick: onTick,
	}
}

func (s *sequencer) state() CombatState {
	return CombatState(s.machine.Current())
}

func (s *sequencer) running() bool {
	return s.state() == StateRunning
}

// fire triggers event, treating a self transition as success
func (s *sequencer) fire(event string) error {
	err := s.machine.Event(context.Background(), event)
	var noTransition fsm.NoTransitionError
	if err == nil || stderrors.As(err, &noTransition) {
		return nil
	}
	return errors.Wrapf(err, "sequencer %s", event)
}

func (s *sequencer) start(combatantCount int) error {
	if combatantCount == 0 {
		return errors.FailedPrecondition("add combatants first")
	}
	if !s.machine.Can(eventStart) {
		return errors.FailedPrecondition("combat already running")
	}
	if err := s.fire(eventStart); err != nil {
		return err
	}

	s.round = 1
	s.turn = 1
	s.elapsed = 0
	s.startedAt = s.clock.Now()
	s.startClock()
	return nil
}

// advance moves to the next turn, wrapping to turn 1 of the next round
// after the last combatant
func (s *sequencer) advance(combatantCount int) error {
	if !s.machine.Can(eventAdvance) {
		return errors.FailedPrecondition("start combat first")
	}
	if combatantCount == 0 {
		return errors.FailedPrecondition("add combatants first")
	}
	if err := s.fire(eventAdvance); err != nil {
		return err
	}

	if s.turn < combatantCount {
		s.turn++
		return nil
	}
	s.turn = 1
	s.round++
	return nil
}

// fit keeps a running turn within a list that changed size. The turn stays
// on the same index, or moves to the last combatant when that index is gone.
// An empty list leaves turn 0 until combatants are added again.
func (s *sequencer) fit(combatantCount int) {
	if !s.running() {
		return
	}
	switch {
	case combatantCount == 0:
		s.turn = 0
	case s.turn > combatantCount:
		s.turn = combatantCount
	case s.turn < 1:
		s.turn = 1
	}
}

// reset returns to not_started from any state. The returned channel closes
// once the clock goroutine has exited; it is nil when no clock was running.
func (s *sequencer) reset() <-chan struct{} {
	// reset is valid from every state
	_ = s.fire(eventReset)

	s.turn = 0
	s.round = 0
	s.elapsed = 0
	return s.stopClock()
}

func (s *sequencer) startClock() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	ticker := s.clock.NewTicker(tickInterval)

	s.cancel = cancel
	s.done = done
	go s.run(ctx, ticker, done)
}

func (s *sequencer) stopClock() <-chan struct{} {
	if s.cancel == nil {
		return nil
	}
	s.cancel()
	done := s.done
	s.cancel = nil
	s.done = nil
	return done
}

func (s *sequencer) run(ctx context.Context, ticker clock.Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case at := <-ticker.Chan():
			s.guard.Lock()
			if ctx.Err() != nil {
				s.guard.Unlock()
				return
			}
			// ticks the ticker dropped while the lock was held are
			// recovered from the tick time
			if since := int64(at.Sub(s.startedAt) / time.Second); since > s.elapsed {
				s.elapsed = since
			}
			elapsed := s.elapsed
			s.guard.Unlock()

			if s.onTick != nil {
				s.onTick(elapsed)
			}
		}
	}
}
