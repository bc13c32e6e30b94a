package desk_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"axiapac.com/hrdesk/desk"
	v1 "axiapac.com/hrdesk/hrpayroll/v1"
	"axiapac.com/hrdesk/hrpayroll/v1/hrpayrolltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)

func testLocale() desk.Locale {
	loc := desk.DefaultLocale()
	loc.Location = time.UTC
	return loc
}

func newDesk(t *testing.T) (*desk.Desk, *hrpayrolltest.Server) {
	t.Helper()
	fake := hrpayrolltest.New()
	fake.Now = func() time.Time { return testNow }
	ts := httptest.NewServer(fake.Handler())
	t.Cleanup(ts.Close)

	client := v1.NewHrPayrollClient(ts.URL+"/api/v1", "")
	client.Transport.Logger = nil
	d := desk.New(desk.ServicesFrom(client), desk.Options{
		Locale: testLocale(),
		Now:    func() time.Time { return testNow },
	})
	return d, fake
}

func lastBody(t *testing.T, fake *hrpayrolltest.Server) map[string]any {
	t.Helper()
	requests := fake.Requests()
	require.NotEmpty(t, requests)
	var body map[string]any
	require.NoError(t, json.Unmarshal(requests[len(requests)-1].Body, &body))
	return body
}

func TestStart(t *testing.T) {
	d, fake := newDesk(t)
	fake.SeedEmployee(v1.EmployeeFields{Name: "Ana", Position: "Clerk", BaseSalary: 1000})
	fake.SeedEmployee(v1.EmployeeFields{Name: "Ben", Position: "Driver", BaseSalary: 900})

	d.Start(context.Background())

	assert.Equal(t, 1, fake.Hits("GET", "/api/v1/employees"))
	assert.Equal(t, 1, fake.Hits("GET", "/api/v1/payroll/slips"))
	assert.Equal(t, 2, d.Registry.Len())
	assert.Len(t, d.Employees.Table().Rows, 2)
	assert.Equal(t, "No payroll slips found.", d.Payroll.Table().Rows[0].Cells[0].HTML)
	assert.Equal(t, []desk.Option{
		{Value: "1", Label: "1 — Ana"},
		{Value: "2", Label: "2 — Ben"},
	}, d.EmployeeOptions())

	q := d.Attendance.Query()
	assert.Equal(t, "2024-03-05", q.From)
	assert.Equal(t, "2024-03-05", q.To)
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()
	d, fake := newDesk(t)
	emp := fake.SeedEmployee(v1.EmployeeFields{Name: "Ana", Position: "Clerk", BaseSalary: 1000, Allowance: 50})

	require.NoError(t, d.Dispatcher.Dispatch(ctx, desk.Action{Kind: desk.ActionRefreshEmployees}))
	assert.Equal(t, 1, d.Registry.Len())

	require.NoError(t, d.Dispatcher.Dispatch(ctx, desk.Action{Kind: desk.ActionSwitchView, View: desk.ViewPayroll}))
	assert.Equal(t, desk.ViewPayroll, d.Router.Active())

	err := d.Dispatcher.Dispatch(ctx, desk.Action{Kind: desk.ActionSwitchView, View: "reports"})
	assert.Error(t, err)
	assert.Equal(t, desk.ViewPayroll, d.Router.Active())

	require.NoError(t, d.Dispatcher.Dispatch(ctx, desk.Action{Kind: desk.ActionEditEmployee, ID: emp.ID}))
	id, editing := d.EmployeeForm.Mode().EmployeeID()
	assert.True(t, editing)
	assert.Equal(t, emp.ID, id)

	err = d.Dispatcher.Dispatch(ctx, desk.Action{Kind: "print"})
	assert.ErrorIs(t, err, desk.ErrUnknownAction)

	assert.ElementsMatch(t, []desk.ActionKind{
		desk.ActionSwitchView, desk.ActionSubmitEmployee, desk.ActionEditEmployee,
		desk.ActionRefreshEmployees, desk.ActionCheckIn, desk.ActionCheckout,
		desk.ActionMarkAbsent, desk.ActionMarkLeave, desk.ActionQueryAttendance,
		desk.ActionGeneratePayroll, desk.ActionRefreshPayroll, desk.ActionViewSlip,
	}, d.Dispatcher.Kinds())
}
