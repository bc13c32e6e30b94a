package desk

import (
	"fmt"
	"strconv"
	"sync"

	v1 "axiapac.com/hrdesk/hrpayroll/v1"
	"axiapac.com/hrdesk/utils"
)

// Registry mirrors the last employee list fetched from the backend.
// It is only ever replaced as a whole.
type Registry struct {
	mu        sync.RWMutex
	employees []v1.EmployeeDTO
	byID      map[uint]int
}

func NewRegistry() *Registry {
	return &Registry{byID: map[uint]int{}}
}

func (r *Registry) Replace(employees []v1.EmployeeDTO) {
	list := make([]v1.EmployeeDTO, len(employees))
	copy(list, employees)
	byID := make(map[uint]int, len(list))
	for i, emp := range list {
		byID[emp.ID] = i
	}

	r.mu.Lock()
	r.employees = list
	r.byID = byID
	r.mu.Unlock()
}

// Snapshot returns a copy that later replacements do not touch.
func (r *Registry) Snapshot() []v1.EmployeeDTO {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]v1.EmployeeDTO, len(r.employees))
	copy(out, r.employees)
	return out
}

func (r *Registry) Lookup(id uint) (v1.EmployeeDTO, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	if !ok {
		return v1.EmployeeDTO{}, false
	}
	return r.employees[i], true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.employees)
}

// Option is one entry of an employee selection list.
type Option struct {
	Value string
	Label string
}

func (r *Registry) Options() []Option {
	return utils.Map(r.Snapshot(), func(e v1.EmployeeDTO) Option {
		return Option{
			Value: strconv.FormatUint(uint64(e.ID), 10),
			Label: fmt.Sprintf("%d — %s", e.ID, e.Name),
		}
	})
}
