// Package turn sequences one player action and the monster reaction it
// provokes as a small state machine: awaiting_input, player_turn,
// monster_turn.
package turn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/looplab/fsm"
)

// States.
const (
	AwaitingInput = "awaiting_input"
	PlayerTurn    = "player_turn"
	MonsterTurn   = "monster_turn"
)

// Events.
const (
	evInput   = "input"
	evResolve = "resolve"
	evSettle  = "settle"
)

// maxSteps bounds the transitions taken inside one Tick. A full turn needs
// three.
const maxSteps = 4

// ErrRunaway reports that a Tick failed to return to AwaitingInput within
// maxSteps transitions, or that the machine was found in a state its events
// cannot leave. Either is a logic fault.
var ErrRunaway = errors.New("turn: scheduler exceeded its step guard")

// Driver runs the simulation on the scheduler's behalf.
type Driver interface {
	// RunPipeline performs one full system pass.
	RunPipeline()
	// MonstersPending reports whether any monster still holds an intent.
	MonstersPending() bool
}

// Scheduler owns the turn state machine.
type Scheduler struct {
	machine *fsm.FSM
	driver  Driver
	logger  *slog.Logger
}

// NewScheduler starts in AwaitingInput. A nil logger discards output.
func NewScheduler(driver Driver, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Scheduler{driver: driver, logger: logger}
	s.machine = fsm.NewFSM(
		AwaitingInput,
		fsm.Events{
			{Name: evInput, Src: []string{AwaitingInput}, Dst: PlayerTurn},
			{Name: evResolve, Src: []string{PlayerTurn}, Dst: MonsterTurn},
			{Name: evSettle, Src: []string{MonsterTurn}, Dst: AwaitingInput},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				s.logger.Debug("turn transition", "event", e.Event, "from", e.Src, "to", e.Dst)
			},
		},
	)
	return s
}

// State returns the current state name.
func (s *Scheduler) State() string { return s.machine.Current() }

// Tick advances the machine for one external tick. consumed reports whether
// a turn-consuming input arrived; without one nothing happens. passes is the
// number of pipeline runs performed. On ErrRunaway the machine is reset to
// AwaitingInput.
func (s *Scheduler) Tick(ctx context.Context, consumed bool) (passes int, err error) {
	for step := 0; step < maxSteps; step++ {
		switch s.machine.Current() {
		case AwaitingInput:
			if step > 0 || !consumed {
				return passes, nil
			}
			err = s.machine.Event(ctx, evInput)
		case PlayerTurn:
			s.driver.RunPipeline()
			passes++
			err = s.machine.Event(ctx, evResolve)
		case MonsterTurn:
			if s.driver.MonstersPending() {
				s.driver.RunPipeline()
				passes++
			}
			err = s.machine.Event(ctx, evSettle)
		default:
			err = fmt.Errorf("turn: unknown state %q", s.machine.Current())
		}
		if err != nil {
			return passes, s.fault(err, passes)
		}
	}
	if s.machine.Current() == AwaitingInput {
		return passes, nil
	}
	return passes, s.fault(nil, passes)
}

func (s *Scheduler) fault(cause error, passes int) error {
	s.logger.Error("turn scheduler runaway",
		"state", s.machine.Current(), "passes", passes, "error", cause)
	s.machine.SetState(AwaitingInput)
	if cause != nil {
		return fmt.Errorf("%w: %w", ErrRunaway, cause)
	}
	return ErrRunaway
}
