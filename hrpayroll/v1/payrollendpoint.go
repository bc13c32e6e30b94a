package v1

import (
	"context"
	"fmt"
	"time"
)

type PayrollSlipDTO struct {
	ID               uint      `json:"id"`
	EmployeeID       uint      `json:"employee_id"`
	Period           time.Time `json:"period"`
	BaseSalary       float64   `json:"base_salary"`
	Allowance        float64   `json:"allowance"`
	TotalAbsent      int       `json:"total_absent"`
	AbsenceDeduction float64   `json:"absence_deduction"`
	TakeHomePay      float64   `json:"take_home_pay"`
	GeneratedAt      time.Time `json:"generated_at"`
}

type GeneratePayrollInput struct {
	EmployeeID uint   `json:"employee_id"`
	Period     string `json:"period"` // yyyy-MM-dd, first day of the month
}

type PayrollEndpoint struct {
	transport *Transport
}

func (ep *PayrollEndpoint) Generate(ctx context.Context, input GeneratePayrollInput) (*PayrollSlipDTO, error) {
	resp, err := ep.transport.Post(ctx, "/payroll/generate", input, nil)
	if err != nil {
		return nil, err
	}
	return decode[*PayrollSlipDTO](resp, statusCreated)
}

func (ep *PayrollEndpoint) ListSlips(ctx context.Context) ([]PayrollSlipDTO, error) {
	resp, err := ep.transport.Get(ctx, "/payroll/slips", nil)
	if err != nil {
		return nil, err
	}
	return decode[[]PayrollSlipDTO](resp, statusOK)
}

func (ep *PayrollEndpoint) GetSlip(ctx context.Context, id uint) (*PayrollSlipDTO, error) {
	resp, err := ep.transport.Get(ctx, fmt.Sprintf("/payroll/slips/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return decode[*PayrollSlipDTO](resp, statusOK)
}
