package helper

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"axiapac.com/hrdesk/desk"
	v1 "axiapac.com/hrdesk/hrpayroll/v1"
	"axiapac.com/hrdesk/hrpayroll/v1/common"
)

type EmployeeLister interface {
	List(ctx context.Context) ([]v1.EmployeeDTO, error)
}

type SlipGenerator interface {
	Generate(ctx context.Context, input v1.GeneratePayrollInput) (*v1.PayrollSlipDTO, error)
}

// RunDetail is the optional detail of the scheduled event. Month is YYYY-MM.
type RunDetail struct {
	Month string `json:"month"`
}

type Outcome struct {
	EmployeeID  uint
	Name        string
	SlipID      uint
	TakeHomePay float64
	Error       string
}

type Summary struct {
	Period    string
	Generated []Outcome
	Failed    []Outcome
}

// PreviousPeriod is the first day of the month before now's month in loc.
func PreviousPeriod(now time.Time, loc *time.Location) string {
	local := now.In(loc)
	first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -1, 0).Format(common.DateLayout)
}

// ResolvePeriod uses the month from the event detail, or the previous month.
func ResolvePeriod(detail json.RawMessage, now time.Time, loc *time.Location) (string, error) {
	var d RunDetail
	if len(detail) > 0 {
		if err := json.Unmarshal(detail, &d); err != nil {
			return "", fmt.Errorf("parse event detail: %w", err)
		}
	}
	if d.Month == "" {
		return PreviousPeriod(now, loc), nil
	}
	period := desk.NormalizePeriod(d.Month)
	if _, err := common.ParseDateOnly(period); err != nil {
		return "", fmt.Errorf("month %q: %w", d.Month, err)
	}
	return period, nil
}

// Run generates one slip per employee for period. A rejected employee does not stop the run.
func Run(ctx context.Context, employees EmployeeLister, payroll SlipGenerator, period string) (*Summary, error) {
	list, err := employees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %s", v1.ErrorMessage(err))
	}

	summary := &Summary{Period: period}
	for _, emp := range list {
		out := Outcome{EmployeeID: emp.ID, Name: emp.Name}
		slip, err := payroll.Generate(ctx, v1.GeneratePayrollInput{EmployeeID: emp.ID, Period: period})
		if err != nil {
			out.Error = v1.ErrorMessage(err)
			summary.Failed = append(summary.Failed, out)
			continue
		}
		out.SlipID = slip.ID
		out.TakeHomePay = slip.TakeHomePay
		summary.Generated = append(summary.Generated, out)
	}
	return summary, nil
}

func (s *Summary) Subject() string {
	return fmt.Sprintf("Payroll run %s: %d generated, %d failed", s.Period, len(s.Generated), len(s.Failed))
}

func (s *Summary) Text() string {
	var b strings.Builder
	b.WriteString(s.Subject())
	b.WriteString("\n")
	for _, o := range s.Generated {
		fmt.Fprintf(&b, "  %d %s: slip %d, take home %v\n", o.EmployeeID, o.Name, o.SlipID, o.TakeHomePay)
	}
	for _, o := range s.Failed {
		fmt.Fprintf(&b, "  %d %s: %s\n", o.EmployeeID, o.Name, o.Error)
	}
	return b.String()
}

type Notifier interface {
	Info(message string) error
	Error(message string) error
}

// Notify posts the run outcome. A failed run, or one with rejected employees, goes to the error channel.
func Notify(n Notifier, period string, summary *Summary, runErr error) error {
	if runErr != nil {
		return n.Error(fmt.Sprintf("Payroll run %s failed: %v", period, runErr))
	}
	if len(summary.Failed) > 0 {
		return n.Error(summary.Text())
	}
	return n.Info(summary.Text())
}
