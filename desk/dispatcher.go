package desk

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type ActionKind string

const (
	ActionSwitchView       ActionKind = "switch-view"
	ActionSubmitEmployee   ActionKind = "submit-employee"
	ActionEditEmployee     ActionKind = "edit-employee"
	ActionRefreshEmployees ActionKind = "refresh-employees"
	ActionCheckIn          ActionKind = "check-in"
	ActionCheckout         ActionKind = "checkout"
	ActionMarkAbsent       ActionKind = "mark-absent"
	ActionMarkLeave        ActionKind = "mark-leave"
	ActionQueryAttendance  ActionKind = "query-attendance"
	ActionGeneratePayroll  ActionKind = "generate-payroll"
	ActionRefreshPayroll   ActionKind = "refresh-payroll"
	ActionViewSlip         ActionKind = "view-slip"
)

// Action is one user intent. View is set for ActionSwitchView, ID for row actions.
type Action struct {
	Kind ActionKind
	View View
	ID   uint
}

type Handler func(ctx context.Context, a Action) error

var ErrUnknownAction = errors.New("unknown action")

// Dispatcher maps each action kind to exactly one handler.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[ActionKind]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: map[ActionKind]Handler{}}
}

func (d *Dispatcher) Handle(kind ActionKind, h Handler) {
	d.mu.Lock()
	d.handlers[kind] = h
	d.mu.Unlock()
}

func (d *Dispatcher) Dispatch(ctx context.Context, a Action) error {
	d.mu.RLock()
	h, ok := d.handlers[a.Kind]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
	}
	return h(ctx, a)
}

// Kinds lists the registered action kinds.
func (d *Dispatcher) Kinds() []ActionKind {
	d.mu.RLock()
	defer d.mu.RUnlock()
	kinds := make([]ActionKind, 0, len(d.handlers))
	for k := range d.handlers {
		kinds = append(kinds, k)
	}
	return kinds
}
