package desk

import (
	"context"
	"sync"
	"time"

	v1 "axiapac.com/hrdesk/hrpayroll/v1"
)

type Services struct {
	Employees   EmployeeService
	Attendances AttendanceService
	Payroll     PayrollService
}

func ServicesFrom(client *v1.HrPayrollClient) Services {
	return Services{
		Employees:   client.Employees,
		Attendances: client.Attendances,
		Payroll:     client.Payroll,
	}
}

type Options struct {
	Locale      Locale
	Now         func() time.Time
	InitialView View
}

// Desk wires the controllers to one Registry and one Dispatcher.
type Desk struct {
	Registry     *Registry
	Employees    *EmployeeList
	EmployeeForm *EmployeeForm
	Attendance   *AttendanceController
	Payroll      *PayrollController
	Router       *ViewRouter
	Dispatcher   *Dispatcher
}

func New(services Services, opts Options) *Desk {
	if opts.Locale.DateLayout == "" {
		opts.Locale = DefaultLocale()
	}
	if opts.InitialView == "" {
		opts.InitialView = ViewEmployees
	}

	registry := NewRegistry()
	list := NewEmployeeList(services.Employees, registry, opts.Locale)
	d := &Desk{
		Registry:     registry,
		Employees:    list,
		EmployeeForm: NewEmployeeForm(services.Employees, registry, list.Fetch),
		Attendance:   NewAttendanceController(services.Attendances, opts.Locale, opts.Now),
		Payroll:      NewPayrollController(services.Payroll, opts.Locale),
		Router:       NewViewRouter(opts.InitialView, DefaultViews...),
		Dispatcher:   NewDispatcher(),
	}
	d.registerHandlers()
	return d
}

func (d *Desk) registerHandlers() {
	d.Dispatcher.Handle(ActionSwitchView, func(_ context.Context, a Action) error {
		return d.Router.Switch(a.View)
	})
	d.Dispatcher.Handle(ActionSubmitEmployee, func(ctx context.Context, _ Action) error {
		d.EmployeeForm.Submit(ctx)
		return nil
	})
	d.Dispatcher.Handle(ActionEditEmployee, func(_ context.Context, a Action) error {
		d.EmployeeForm.BeginEdit(a.ID)
		return nil
	})
	d.Dispatcher.Handle(ActionRefreshEmployees, run(d.Employees.Fetch))
	d.Dispatcher.Handle(ActionCheckIn, run(d.Attendance.CheckIn))
	d.Dispatcher.Handle(ActionCheckout, run(d.Attendance.Checkout))
	d.Dispatcher.Handle(ActionMarkAbsent, run(d.Attendance.MarkAbsent))
	d.Dispatcher.Handle(ActionMarkLeave, run(d.Attendance.MarkLeave))
	d.Dispatcher.Handle(ActionQueryAttendance, run(d.Attendance.SearchHistory))
	d.Dispatcher.Handle(ActionGeneratePayroll, run(d.Payroll.Generate))
	d.Dispatcher.Handle(ActionRefreshPayroll, run(d.Payroll.FetchSlips))
	d.Dispatcher.Handle(ActionViewSlip, func(ctx context.Context, a Action) error {
		d.Payroll.ViewSlip(ctx, a.ID)
		return nil
	})
}

// run adapts a controller operation that reports through its own status line.
func run(op func(ctx context.Context)) Handler {
	return func(ctx context.Context, _ Action) error {
		op(ctx)
		return nil
	}
}

// Start loads the employee list and the payroll slips.
func (d *Desk) Start(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		d.Employees.Fetch(ctx)
	}()
	go func() {
		defer wg.Done()
		d.Payroll.FetchSlips(ctx)
	}()
	wg.Wait()
}

// EmployeeOptions feeds every employee selection list.
func (d *Desk) EmployeeOptions() []Option {
	return d.Registry.Options()
}
