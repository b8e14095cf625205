package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/rpattn/agenthub/internal/domain"
)

// DeliveryHook runs when a request enters the Delivered status, before the
// status change is accepted. Returning an error cancels the transition.
type DeliveryHook func(ctx context.Context) error

// Machine drives an agent request's status lifecycle. Transitions between
// statuses are deliberately permissive; the one guarded edge is entering
// Delivered, which must derive a delivered agent exactly once.
type Machine struct {
	fsm *fsm.FSM
}

// NewRequestMachine builds a machine positioned at the request's current
// status with the delivery hook armed.
func NewRequestMachine(current domain.RequestStatus, onDeliver DeliveryHook) *Machine {
	events := make(fsm.Events, 0, len(domain.RequestStatuses))
	for _, status := range domain.RequestStatuses {
		events = append(events, fsm.EventDesc{
			Name: string(status),
			Src:  otherStatuses(status),
			Dst:  string(status),
		})
	}

	callbacks := fsm.Callbacks{
		"before_" + string(domain.RequestStatusDelivered): func(ctx context.Context, e *fsm.Event) {
			if onDeliver == nil {
				return
			}
			if err := onDeliver(ctx); err != nil {
				e.Cancel(err)
			}
		},
	}

	return &Machine{fsm: fsm.NewFSM(string(current), events, callbacks)}
}

// Transition moves the machine to the target status, firing the delivery
// hook when the target is Delivered. Moving to the current status is a no-op.
func (m *Machine) Transition(ctx context.Context, to domain.RequestStatus) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown request status %q", domain.ErrInvalidInput, to)
	}
	if m.Current() == to {
		return nil
	}
	err := m.fsm.Event(ctx, string(to))
	var canceled fsm.CanceledError
	if errors.As(err, &canceled) && canceled.Err != nil {
		return canceled.Err
	}
	return err
}

// Current returns the machine's current status.
func (m *Machine) Current() domain.RequestStatus {
	return domain.RequestStatus(m.fsm.Current())
}

func otherStatuses(target domain.RequestStatus) []string {
	src := make([]string, 0, len(domain.RequestStatuses)-1)
	for _, status := range domain.RequestStatuses {
		if status != target {
			src = append(src, string(status))
		}
	}
	return src
}
