package desk

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	v1 "axiapac.com/hrdesk/hrpayroll/v1"
)

type PayrollService interface {
	Generate(ctx context.Context, input v1.GeneratePayrollInput) (*v1.PayrollSlipDTO, error)
	ListSlips(ctx context.Context) ([]v1.PayrollSlipDTO, error)
	GetSlip(ctx context.Context, id uint) (*v1.PayrollSlipDTO, error)
}

// PayrollInput is the raw text of the generate form. Month is YYYY-MM.
type PayrollInput struct {
	EmployeeID string
	Month      string
}

// NormalizePeriod turns a YYYY-MM month into the first day of that month.
func NormalizePeriod(month string) string {
	month = strings.TrimSpace(month)
	if month == "" {
		return ""
	}
	return month + "-01"
}

// PayrollController generates slips and keeps the slip list.
type PayrollController struct {
	service PayrollService
	locale  Locale

	Message       StatusLine
	SlipsMessage  StatusLine
	DetailMessage StatusLine

	mu     sync.RWMutex
	input  PayrollInput
	slips  []v1.PayrollSlipDTO
	table  Table
	detail *v1.PayrollSlipDTO
}

func NewPayrollController(service PayrollService, locale Locale) *PayrollController {
	return &PayrollController{
		service: service,
		locale:  locale,
		table:   RenderPayrollSlips(nil, locale),
	}
}

func (c *PayrollController) SetInput(in PayrollInput) {
	c.mu.Lock()
	c.input = in
	c.mu.Unlock()
}

func (c *PayrollController) Input() PayrollInput {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.input
}

// Generate sends the form without local checks; the backend rejects bad input.
func (c *PayrollController) Generate(ctx context.Context) {
	in := c.Input()
	employeeID, _ := strconv.ParseUint(strings.TrimSpace(in.EmployeeID), 10, 64)

	c.Message.Set("Generating...")
	slip, err := c.service.Generate(ctx, v1.GeneratePayrollInput{
		EmployeeID: uint(employeeID),
		Period:     NormalizePeriod(in.Month),
	})
	if err != nil {
		c.Message.Set("Failed to generate: " + v1.ErrorMessage(err))
		return
	}

	c.Message.Set(fmt.Sprintf("Payroll generated (ID: %s)", slipIDText(slip)))
	c.SetInput(PayrollInput{})
	c.FetchSlips(ctx)
}

func (c *PayrollController) FetchSlips(ctx context.Context) {
	c.SlipsMessage.Set("Loading...")
	slips, err := c.service.ListSlips(ctx)
	if err != nil {
		c.SlipsMessage.Set("Failed to load payroll slips: " + v1.ErrorMessage(err))
		c.mu.Lock()
		c.slips = nil
		c.table = RenderPayrollSlips(nil, c.locale)
		c.mu.Unlock()
		return
	}

	table := RenderPayrollSlips(slips, c.locale)
	c.mu.Lock()
	c.slips = slips
	c.table = table
	c.mu.Unlock()
	c.SlipsMessage.Set("")
}

func (c *PayrollController) Table() Table {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.table
}

// Slips returns a copy of the last fetched slip list.
func (c *PayrollController) Slips() []v1.PayrollSlipDTO {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]v1.PayrollSlipDTO, len(c.slips))
	copy(out, c.slips)
	return out
}

// ViewSlip fetches one slip for the detail panel. A failure clears the panel.
func (c *PayrollController) ViewSlip(ctx context.Context, id uint) {
	slip, err := c.service.GetSlip(ctx, id)
	if err != nil {
		c.DetailMessage.Set("Failed to load payroll slip: " + v1.ErrorMessage(err))
		c.setDetail(nil)
		return
	}
	c.setDetail(slip)
	c.DetailMessage.Set("")
}

func (c *PayrollController) setDetail(slip *v1.PayrollSlipDTO) {
	c.mu.Lock()
	c.detail = slip
	c.mu.Unlock()
}

func (c *PayrollController) Detail() (v1.PayrollSlipDTO, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.detail == nil {
		return v1.PayrollSlipDTO{}, false
	}
	return *c.detail, true
}

func slipIDText(s *v1.PayrollSlipDTO) string {
	if s == nil {
		return "?"
	}
	return formatID(s.ID)
}
