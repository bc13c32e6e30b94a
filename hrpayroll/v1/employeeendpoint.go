package v1

import (
	"context"
	"fmt"
	"time"
)

type EmployeeDTO struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Position   string    `json:"position"`
	BaseSalary float64   `json:"base_salary"`
	Allowance  float64   `json:"allowance"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// EmployeeFields is the body of both create and update.
type EmployeeFields struct {
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	BaseSalary float64 `json:"base_salary"`
	Allowance  float64 `json:"allowance"`
}

type EmployeeEndpoint struct {
	transport *Transport
}

func (ep *EmployeeEndpoint) List(ctx context.Context) ([]EmployeeDTO, error) {
	resp, err := ep.transport.Get(ctx, "/employees", nil)
	if err != nil {
		return nil, err
	}
	return decode[[]EmployeeDTO](resp, statusOK)
}

func (ep *EmployeeEndpoint) Get(ctx context.Context, id uint) (*EmployeeDTO, error) {
	resp, err := ep.transport.Get(ctx, fmt.Sprintf("/employees/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return decode[*EmployeeDTO](resp, statusOK)
}

func (ep *EmployeeEndpoint) Create(ctx context.Context, fields EmployeeFields) (*EmployeeDTO, error) {
	resp, err := ep.transport.Post(ctx, "/employees", fields, nil)
	if err != nil {
		return nil, err
	}
	return decode[*EmployeeDTO](resp, statusCreated)
}

func (ep *EmployeeEndpoint) Update(ctx context.Context, id uint, fields EmployeeFields) (*EmployeeDTO, error) {
	resp, err := ep.transport.Put(ctx, fmt.Sprintf("/employees/%d", id), fields, nil)
	if err != nil {
		return nil, err
	}
	return decode[*EmployeeDTO](resp, statusOK)
}
