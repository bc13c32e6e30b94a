package desk

import (
	"fmt"
	"sync"
)

type View string

const (
	ViewEmployees  View = "employees"
	ViewAttendance View = "attendance"
	ViewPayroll    View = "payroll"
)

var DefaultViews = []View{ViewEmployees, ViewAttendance, ViewPayroll}

type Panel struct {
	View   View
	Active bool
}

// ViewRouter keeps exactly one panel visible.
type ViewRouter struct {
	mu     sync.RWMutex
	views  []View
	active View
}

// NewViewRouter starts on initial; an unknown initial view falls back to the first one.
func NewViewRouter(initial View, views ...View) *ViewRouter {
	if len(views) == 0 {
		views = DefaultViews
	}
	r := &ViewRouter{views: views, active: views[0]}
	if r.known(initial) {
		r.active = initial
	}
	return r
}

func (r *ViewRouter) known(v View) bool {
	for _, view := range r.views {
		if view == v {
			return true
		}
	}
	return false
}

// Switch hides every panel but v. An unknown view leaves the current one active.
func (r *ViewRouter) Switch(v View) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.known(v) {
		return fmt.Errorf("unknown view %q", v)
	}
	r.active = v
	return nil
}

func (r *ViewRouter) Active() View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

func (r *ViewRouter) Panels() []Panel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	panels := make([]Panel, len(r.views))
	for i, v := range r.views {
		panels[i] = Panel{View: v, Active: v == r.active}
	}
	return panels
}
