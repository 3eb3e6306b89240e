package session

import (
	"context"
	"errors"
)

// Observer is told about every event the driver applies, with the state
// that resulted.
type Observer func(ev Event, st State)

// Driver runs a Machine and an Executor synchronously. It suits line-mode
// sessions where blocking on each effect is fine.
type Driver struct {
	machine  *Machine
	executor *Executor
	observe  Observer
}

// NewDriver creates a Driver. observe may be nil.
func NewDriver(m *Machine, e *Executor, observe Observer) *Driver {
	return &Driver{machine: m, executor: e, observe: observe}
}

// State returns the machine's current state.
func (d *Driver) State() State {
	return d.machine.State()
}

// Dispatch applies ev and then runs the resulting effects, feeding their
// events back in until none remain. Stale events are dropped silently.
func (d *Driver) Dispatch(ctx context.Context, ev Event) error {
	queue := []Event{ev}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		effects, err := d.machine.Handle(next)
		if errors.Is(err, ErrStale) {
			continue
		}
		if err != nil {
			return err
		}
		if d.observe != nil {
			d.observe(next, d.machine.State())
		}

		for _, eff := range effects {
			if out := d.executor.Run(ctx, eff); out != nil {
				queue = append(queue, out)
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Start selects a topic and loads its quiz.
func (d *Driver) Start(ctx context.Context, sel TopicSelected) error {
	return d.Dispatch(ctx, sel)
}

// Answer submits an answer to the current question and waits until the
// session has moved on.
func (d *Driver) Answer(ctx context.Context, answer string) error {
	return d.Dispatch(ctx, AnswerSubmitted{Answer: answer})
}

// Reset discards the session.
func (d *Driver) Reset(ctx context.Context) error {
	return d.Dispatch(ctx, NewQuizRequested{})
}
